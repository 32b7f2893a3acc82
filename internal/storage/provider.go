package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/provider-aggregator/internal/models"
)

// CreateProvider вставляет нового провайдера и возвращает его ID.
func (s *Storage) CreateProvider(ctx context.Context, provider models.Provider) (int, error) {
	const op = "storage.CreateProvider"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO providers (name, logo, website)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		provider.Name, provider.Logo, provider.Website).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadProvider возвращает провайдера по его ID.
func (s *Storage) ReadProvider(ctx context.Context, id int) (*models.Provider, error) {
	const op = "storage.ReadProvider"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, logo, website
			  FROM providers WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Provider
	if err := row.Scan(&result.ID, &result.Name, &result.Logo, &result.Website); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListProviders возвращает список всех провайдеров.
func (s *Storage) ListProviders(ctx context.Context) ([]models.Provider, error) {
	const op = "storage.ListProviders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, logo, website
			  FROM providers
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
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

// UpdateProvider обновляет данные провайдера и возвращает количество изменённых строк.
func (s *Storage) UpdateProvider(ctx context.Context, provider models.Provider) (int, error) {
	const op = "storage.UpdateProvider"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE providers
			  SET name = $1, logo = $2, website = $3
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query,
		provider.Name, provider.Logo, provider.Website, provider.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveProvider удаляет провайдера по ID и возвращает количество удалённых строк.
// Зоны покрытия и тарифные планы провайдера удаляются каскадно (ON DELETE CASCADE).
func (s *Storage) RemoveProvider(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveProvider"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM providers WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
