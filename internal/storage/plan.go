package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/provider-aggregator/internal/models"
)

// featuresToJSON сериализует список возможностей для JSONB-колонки.
// Nil-срез сохраняется как NULL ("список неизвестен"), пустой - как '[]'.
func featuresToJSON(features []string) (any, error) {
	if features == nil {
		return nil, nil
	}
	data, err := json.Marshal(features)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func featuresFromJSON(raw sql.NullString) ([]string, error) {
	if !raw.Valid {
		return nil, nil
	}
	var features []string
	if err := json.Unmarshal([]byte(raw.String), &features); err != nil {
		return nil, err
	}
	if features == nil {
		features = []string{}
	}
	return features, nil
}

// CreatePlan вставляет новый тарифный план и возвращает его ID.
func (s *Storage) CreatePlan(ctx context.Context, plan models.Plan) (int, error) {
	const op = "storage.CreatePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := featuresToJSON(plan.Features)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO plans (provider_id, name, download_speed, upload_speed,
			      price, promo, contract_length, data_cap, equipment_fee,
			      installation_fee, features)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING id`
	var newID int
	err = s.DB.QueryRowContext(ctx, query,
		plan.ProviderID, plan.Name, plan.DownloadSpeed, plan.UploadSpeed,
		plan.Price, plan.Promo, plan.ContractLength, plan.DataCap,
		plan.EquipmentFee, plan.InstallationFee, features).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadPlan возвращает тарифный план по его ID.
func (s *Storage) ReadPlan(ctx context.Context, id int) (*models.Plan, error) {
	const op = "storage.ReadPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, provider_id, name, download_speed, upload_speed, price,
			      promo, contract_length, data_cap, equipment_fee, installation_fee, features
			  FROM plans WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	item, err := scanPlan(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// ListPlans возвращает список всех тарифных планов.
func (s *Storage) ListPlans(ctx context.Context) ([]models.Plan, error) {
	const op = "storage.ListPlans"

	query := `SELECT id, provider_id, name, download_speed, upload_speed, price,
			      promo, contract_length, data_cap, equipment_fee, installation_fee, features
			  FROM plans
			  ORDER BY id`
	return s.queryPlans(ctx, op, query)
}

// ListPlansByProvider возвращает тарифные планы одного провайдера.
// Для неизвестного провайдера возвращается пустой список, не ошибка.
func (s *Storage) ListPlansByProvider(ctx context.Context, providerID int) ([]models.Plan, error) {
	const op = "storage.ListPlansByProvider"

	query := `SELECT id, provider_id, name, download_speed, upload_speed, price,
			      promo, contract_length, data_cap, equipment_fee, installation_fee, features
			  FROM plans
			  WHERE provider_id = $1
			  ORDER BY id`
	return s.queryPlans(ctx, op, query, providerID)
}

func (s *Storage) queryPlans(ctx context.Context, op, query string, args ...any) ([]models.Plan, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Plan
	for rows.Next() {
		item, err := scanPlan(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanPlan(scan func(dest ...any) error) (*models.Plan, error) {
	var item models.Plan
	var features sql.NullString
	if err := scan(&item.ID, &item.ProviderID, &item.Name, &item.DownloadSpeed,
		&item.UploadSpeed, &item.Price, &item.Promo, &item.ContractLength,
		&item.DataCap, &item.EquipmentFee, &item.InstallationFee, &features); err != nil {
		return nil, err
	}
	parsed, err := featuresFromJSON(features)
	if err != nil {
		return nil, err
	}
	item.Features = parsed
	return &item, nil
}

// UpdatePlan обновляет данные тарифного плана и возвращает количество изменённых строк.
func (s *Storage) UpdatePlan(ctx context.Context, plan models.Plan) (int, error) {
	const op = "storage.UpdatePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := featuresToJSON(plan.Features)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE plans
			  SET name = $1, download_speed = $2, upload_speed = $3, price = $4,
			      promo = $5, contract_length = $6, data_cap = $7,
			      equipment_fee = $8, installation_fee = $9, features = $10
			  WHERE id = $11`
	result, err := s.DB.ExecContext(ctx, query,
		plan.Name, plan.DownloadSpeed, plan.UploadSpeed, plan.Price,
		plan.Promo, plan.ContractLength, plan.DataCap,
		plan.EquipmentFee, plan.InstallationFee, features, plan.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemovePlan удаляет тарифный план по ID и возвращает количество удалённых строк.
func (s *Storage) RemovePlan(ctx context.Context, id int) (int, error) {
	const op = "storage.RemovePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM plans WHERE id = $1`
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
