package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/provider-aggregator/internal/models"
)

// AddCoverage добавляет запись покрытия. Повторное добавление той же пары
// (provider_id, zip_code) обновляет флаг has_service, не создавая дубликат.
func (s *Storage) AddCoverage(ctx context.Context, coverage models.Coverage) (int, error) {
	const op = "storage.AddCoverage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO coverage (provider_id, zip_code, has_service)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (provider_id, zip_code)
			  DO UPDATE SET has_service = EXCLUDED.has_service
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		coverage.ProviderID, coverage.ZipCode, coverage.HasService).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// RemoveCoverage удаляет запись покрытия и возвращает количество удалённых строк.
func (s *Storage) RemoveCoverage(ctx context.Context, providerID int, zipCode string) (int, error) {
	const op = "storage.RemoveCoverage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM coverage WHERE provider_id = $1 AND zip_code = $2`
	result, err := s.DB.ExecContext(ctx, query, providerID, zipCode)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListProvidersByZip возвращает провайдеров, обслуживающих заданный ZIP-код.
// Порядок результата не гарантируется.
func (s *Storage) ListProvidersByZip(ctx context.Context, zipCode string) ([]models.Provider, error) {
	const op = "storage.ListProvidersByZip"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.name, p.logo, p.website
			  FROM providers p
			  JOIN coverage c ON c.provider_id = p.id
			  WHERE c.zip_code = $1
			    AND c.has_service = true`
	rows, err := s.DB.QueryContext(ctx, query, zipCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Provider
	for rows.Next() {
		var item models.Provider
		if err := rows.Scan(&item.ID, &item.Name, &item.Logo, &item.Website); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListZipsByProvider возвращает ZIP-коды, в которых провайдер предоставляет сервис.
func (s *Storage) ListZipsByProvider(ctx context.Context, providerID int) ([]string, error) {
	const op = "storage.ListZipsByProvider"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT zip_code
			  FROM coverage
			  WHERE provider_id = $1
			    AND has_service = true
			  ORDER BY zip_code`
	rows, err := s.DB.QueryContext(ctx, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var zip string
		if err := rows.Scan(&zip); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, zip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
