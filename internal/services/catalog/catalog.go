// Package catalog содержит бизнес-логику каталога: провайдеры, тарифные
// планы, зоны покрытия и сборку сравнения планов, включая кеширование
// одиночных чтений.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/provider-aggregator/internal/models"
	"github.com/magabrotheeeer/provider-aggregator/internal/storage"
)

// Repository определяет методы хранилища каталога.
type Repository interface {
	// CreateProvider добавляет провайдера и возвращает его ID.
	CreateProvider(ctx context.Context, provider models.Provider) (int, error)
	// ReadProvider возвращает провайдера по ID.
	ReadProvider(ctx context.Context, id int) (*models.Provider, error)
	// ListProviders возвращает всех провайдеров.
	ListProviders(ctx context.Context) ([]models.Provider, error)
	// UpdateProvider обновляет провайдера и возвращает количество изменённых записей.
	UpdateProvider(ctx context.Context, provider models.Provider) (int, error)
	// RemoveProvider удаляет провайдера (каскадно) и возвращает количество удалённых записей.
	RemoveProvider(ctx context.Context, id int) (int, error)
	// AddCoverage идемпотентно добавляет запись покрытия.
	AddCoverage(ctx context.Context, coverage models.Coverage) (int, error)
	// RemoveCoverage удаляет запись покрытия и возвращает количество удалённых записей.
	RemoveCoverage(ctx context.Context, providerID int, zipCode string) (int, error)
	// ListProvidersByZip возвращает провайдеров, обслуживающих ZIP-код.
	ListProvidersByZip(ctx context.Context, zipCode string) ([]models.Provider, error)
	// ListZipsByProvider возвращает ZIP-коды провайдера.
	ListZipsByProvider(ctx context.Context, providerID int) ([]string, error)
	// CreatePlan добавляет тарифный план и возвращает его ID.
	CreatePlan(ctx context.Context, plan models.Plan) (int, error)
	// ReadPlan возвращает тарифный план по ID.
	ReadPlan(ctx context.Context, id int) (*models.Plan, error)
	// ListPlans возвращает все тарифные планы.
	ListPlans(ctx context.Context) ([]models.Plan, error)
	// ListPlansByProvider возвращает тарифные планы одного провайдера.
	ListPlansByProvider(ctx context.Context, providerID int) ([]models.Plan, error)
	// UpdatePlan обновляет тарифный план и возвращает количество изменённых записей.
	UpdatePlan(ctx context.Context, plan models.Plan) (int, error)
	// RemovePlan удаляет тарифный план и возвращает количество удалённых записей.
	RemovePlan(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// ErrNotFound возвращается, когда запрошенная запись каталога отсутствует.
var ErrNotFound = storage.ErrNotFound

// CatalogService реализует бизнес-логику каталога, включая кеширование.
// Кешируются только одиночные чтения провайдера и плана: их можно точечно
// инвалидировать при мутации. Списочные выборки и покрытие всегда идут
// в хранилище, чтобы движок рекомендаций видел мутации немедленно.
type CatalogService struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo Repository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ListProviders возвращает всех провайдеров.
func (s *CatalogService) ListProviders(ctx context.Context) ([]models.Provider, error) {
	return s.repo.ListProviders(ctx)
}

// ReadProvider возвращает провайдера по ID, используя кеш или хранилище.
func (s *CatalogService) ReadProvider(ctx context.Context, id int) (*models.Provider, error) {
	var result *models.Provider
	cacheKey := fmt.Sprintf("provider:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read provider from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && result != nil {
		return result, nil
	}
	result, err = s.repo.ReadProvider(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache provider", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// CreateProvider создает провайдера и возвращает его ID.
func (s *CatalogService) CreateProvider(ctx context.Context, req models.DummyProvider) (int, error) {
	provider := models.Provider{
		Name:    req.Name,
		Logo:    req.Logo,
		Website: req.Website,
	}
	id, err := s.repo.CreateProvider(ctx, provider)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new provider", slog.Int("id", id))
	return id, nil
}

// UpdateProvider применяет частичное обновление: меняются только переданные поля.
// Возвращает количество изменённых записей.
func (s *CatalogService) UpdateProvider(ctx context.Context, id int, patch models.UpdateProvider) (int, error) {
	existing, err := s.repo.ReadProvider(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.Logo != nil {
		existing.Logo = patch.Logo
	}
	if patch.Website != nil {
		existing.Website = patch.Website
	}

	count, err := s.repo.UpdateProvider(ctx, *existing)
	if err != nil {
		return 0, err
	}

	cacheKey := fmt.Sprintf("provider:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate provider cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return count, nil
}

// RemoveProvider удаляет провайдера каскадно вместе с планами и покрытием.
// Кеш планов провайдера сбрасывается до удаления, иначе ReadPlan продолжит
// отдавать удалённые каскадом планы до истечения TTL.
func (s *CatalogService) RemoveProvider(ctx context.Context, id int) (int, error) {
	const op = "services.catalog.RemoveProvider"

	plans, err := s.repo.ListPlansByProvider(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	for _, plan := range plans {
		planKey := fmt.Sprintf("plan:%d", plan.ID)
		if err := s.cache.Invalidate(planKey); err != nil {
			s.log.Warn("failed to invalidate plan cache", slog.String("key", planKey), slog.Any("err", err))
		}
	}

	cacheKey := fmt.Sprintf("provider:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate provider cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return s.repo.RemoveProvider(ctx, id)
}

// ListProvidersByZip возвращает провайдеров, обслуживающих заданный ZIP-код.
// Пустой список - нормальный результат, не ошибка.
func (s *CatalogService) ListProvidersByZip(ctx context.Context, zipCode string) ([]models.Provider, error) {
	return s.repo.ListProvidersByZip(ctx, zipCode)
}

// ListZipsByProvider возвращает ZIP-коды, в которых провайдер предоставляет сервис.
func (s *CatalogService) ListZipsByProvider(ctx context.Context, providerID int) ([]string, error) {
	return s.repo.ListZipsByProvider(ctx, providerID)
}

// AddCoverage идемпотентно добавляет запись покрытия и возвращает её ID.
// Отсутствие флага has_service в запросе трактуется как true.
func (s *CatalogService) AddCoverage(ctx context.Context, req models.DummyCoverage) (int, error) {
	hasService := true
	if req.HasService != nil {
		hasService = *req.HasService
	}
	coverage := models.Coverage{
		ProviderID: req.ProviderID,
		ZipCode:    req.ZipCode,
		HasService: hasService,
	}
	id, err := s.repo.AddCoverage(ctx, coverage)
	if err != nil {
		return 0, err
	}
	s.log.Info("coverage added",
		slog.Int("provider_id", req.ProviderID),
		slog.String("zip_code", req.ZipCode))
	return id, nil
}

// RemoveCoverage удаляет запись покрытия. Возвращает true, если запись
// действительно существовала и была удалена.
func (s *CatalogService) RemoveCoverage(ctx context.Context, providerID int, zipCode string) (bool, error) {
	count, err := s.repo.RemoveCoverage(ctx, providerID, zipCode)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListPlans возвращает тарифные планы: все, либо только одного провайдера.
// Неизвестный провайдер дает пустой список, не ошибку.
func (s *CatalogService) ListPlans(ctx context.Context, providerID *int) ([]models.Plan, error) {
	if providerID == nil {
		return s.repo.ListPlans(ctx)
	}
	return s.repo.ListPlansByProvider(ctx, *providerID)
}

// ReadPlan возвращает тарифный план по ID, используя кеш или хранилище.
func (s *CatalogService) ReadPlan(ctx context.Context, id int) (*models.Plan, error) {
	var result *models.Plan
	cacheKey := fmt.Sprintf("plan:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read plan from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && result != nil {
		return result, nil
	}
	result, err = s.repo.ReadPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache plan", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// CreatePlan создает тарифный план и возвращает его ID.
func (s *CatalogService) CreatePlan(ctx context.Context, req models.DummyPlan) (int, error) {
	plan := models.Plan{
		ProviderID:      req.ProviderID,
		Name:            req.Name,
		DownloadSpeed:   req.DownloadSpeed,
		UploadSpeed:     req.UploadSpeed,
		Price:           req.Price,
		Promo:           req.Promo,
		ContractLength:  req.ContractLength,
		DataCap:         req.DataCap,
		EquipmentFee:    req.EquipmentFee,
		InstallationFee: req.InstallationFee,
		Features:        req.Features,
	}
	id, err := s.repo.CreatePlan(ctx, plan)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new plan", slog.Int("id", id), slog.Int("provider_id", req.ProviderID))
	return id, nil
}

// UpdatePlan применяет частичное обновление тарифного плана.
// Для поля Features nil-указатель оставляет сохранённое значение
// ("список неизвестен" и "явно пустой список" не схлопываются).
func (s *CatalogService) UpdatePlan(ctx context.Context, id int, patch models.UpdatePlan) (int, error) {
	existing, err := s.repo.ReadPlan(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.DownloadSpeed != nil {
		existing.DownloadSpeed = *patch.DownloadSpeed
	}
	if patch.UploadSpeed != nil {
		existing.UploadSpeed = *patch.UploadSpeed
	}
	if patch.Price != nil {
		existing.Price = *patch.Price
	}
	if patch.Promo != nil {
		existing.Promo = patch.Promo
	}
	if patch.ContractLength != nil {
		existing.ContractLength = patch.ContractLength
	}
	if patch.DataCap != nil {
		existing.DataCap = patch.DataCap
	}
	if patch.EquipmentFee != nil {
		existing.EquipmentFee = patch.EquipmentFee
	}
	if patch.InstallationFee != nil {
		existing.InstallationFee = patch.InstallationFee
	}
	if patch.Features != nil {
		features := make([]string, len(*patch.Features))
		copy(features, *patch.Features)
		existing.Features = features
	}

	count, err := s.repo.UpdatePlan(ctx, *existing)
	if err != nil {
		return 0, err
	}

	cacheKey := fmt.Sprintf("plan:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate plan cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return count, nil
}

// RemovePlan удаляет тарифный план и возвращает количество удалённых записей.
func (s *CatalogService) RemovePlan(ctx context.Context, id int) (int, error) {
	cacheKey := fmt.Sprintf("plan:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate plan cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return s.repo.RemovePlan(ctx, id)
}

// Compare собирает сравнение планов: для каждого переданного ID находит план
// и его провайдера, сохраняя порядок, заданный вызывающей стороной.
// Нераспознанные ID молча пропускаются; пустой результат возможен, только
// если не распознан ни один ID.
func (s *CatalogService) Compare(ctx context.Context, planIDs []int) ([]models.RecommendedPlan, error) {
	var result []models.RecommendedPlan
	for _, id := range planIDs {
		plan, err := s.ReadPlan(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		provider, err := s.ReadProvider(ctx, plan.ProviderID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		result = append(result, models.RecommendedPlan{
			Plan:     *plan,
			Provider: *provider,
		})
	}
	return result, nil
}
