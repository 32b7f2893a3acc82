// Package memstorage реализует хранилище каталога в памяти процесса:
// карты, защищённые мьютексом, с автоинкрементными идентификаторами.
// Контракт методов совпадает с postgres-хранилищем, бэкенд выбирается
// при старте приложения. Данные теряются при перезапуске.
package memstorage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/magabrotheeeer/provider-aggregator/internal/models"
	"github.com/magabrotheeeer/provider-aggregator/internal/storage"
)

type coverageEntry struct {
	id         int
	hasService bool
}

// Storage хранит каталог в памяти процесса.
type Storage struct {
	mu sync.RWMutex

	providers   map[int]models.Provider
	coverage    map[string]map[int]coverageEntry // zip -> providerID -> запись
	plans       map[int]models.Plan
	preferences map[int]models.Preferences

	nextProviderID    int
	nextCoverageID    int
	nextPlanID        int
	nextPreferencesID int
}

// New создает пустое хранилище в памяти.
func New() *Storage {
	return &Storage{
		providers:         make(map[int]models.Provider),
		coverage:          make(map[string]map[int]coverageEntry),
		plans:             make(map[int]models.Plan),
		preferences:       make(map[int]models.Preferences),
		nextProviderID:    1,
		nextCoverageID:    1,
		nextPlanID:        1,
		nextPreferencesID: 1,
	}
}

func copyPlan(plan models.Plan) models.Plan {
	if plan.Features != nil {
		features := make([]string, len(plan.Features))
		copy(features, plan.Features)
		plan.Features = features
	}
	return plan
}

// CreateProvider добавляет провайдера и возвращает его ID.
func (s *Storage) CreateProvider(_ context.Context, provider models.Provider) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	provider.ID = s.nextProviderID
	s.nextProviderID++
	s.providers[provider.ID] = provider
	return provider.ID, nil
}

// ReadProvider возвращает провайдера по его ID.
func (s *Storage) ReadProvider(_ context.Context, id int) (*models.Provider, error) {
	const op = "memstorage.ReadProvider"
	s.mu.RLock()
	defer s.mu.RUnlock()

	provider, ok := s.providers[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return &provider, nil
}

// ListProviders возвращает всех провайдеров в порядке возрастания ID.
func (s *Storage) ListProviders(_ context.Context) ([]models.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Provider, 0, len(s.providers))
	for _, provider := range s.providers {
		result = append(result, provider)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if len(result) == 0 {
		return nil, nil
	}
	return result, nil
}

// UpdateProvider обновляет провайдера и возвращает количество изменённых записей.
func (s *Storage) UpdateProvider(_ context.Context, provider models.Provider) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.providers[provider.ID]; !ok {
		return 0, nil
	}
	s.providers[provider.ID] = provider
	return 1, nil
}

// RemoveProvider удаляет провайдера вместе с его тарифными планами
// и записями покрытия (каскадное удаление, как в postgres-бэкенде).
func (s *Storage) RemoveProvider(_ context.Context, id int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.providers[id]; !ok {
		return 0, nil
	}
	delete(s.providers, id)

	for planID, plan := range s.plans {
		if plan.ProviderID == id {
			delete(s.plans, planID)
		}
	}
	for zip, entries := range s.coverage {
		delete(entries, id)
		if len(entries) == 0 {
			delete(s.coverage, zip)
		}
	}
	return 1, nil
}

// AddCoverage добавляет запись покрытия. Повторное добавление той же пары
// (providerID, zipCode) обновляет флаг has_service, сохраняя исходный ID.
func (s *Storage) AddCoverage(_ context.Context, coverage models.Coverage) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.coverage[coverage.ZipCode]
	if !ok {
		entries = make(map[int]coverageEntry)
		s.coverage[coverage.ZipCode] = entries
	}

	if existing, ok := entries[coverage.ProviderID]; ok {
		existing.hasService = coverage.HasService
		entries[coverage.ProviderID] = existing
		return existing.id, nil
	}

	entry := coverageEntry{id: s.nextCoverageID, hasService: coverage.HasService}
	s.nextCoverageID++
	entries[coverage.ProviderID] = entry
	return entry.id, nil
}

// RemoveCoverage удаляет запись покрытия и возвращает количество удалённых записей.
func (s *Storage) RemoveCoverage(_ context.Context, providerID int, zipCode string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.coverage[zipCode]
	if !ok {
		return 0, nil
	}
	if _, ok := entries[providerID]; !ok {
		return 0, nil
	}
	delete(entries, providerID)
	if len(entries) == 0 {
		delete(s.coverage, zipCode)
	}
	return 1, nil
}

// ListProvidersByZip возвращает провайдеров, обслуживающих заданный ZIP-код,
// в порядке возрастания ID.
func (s *Storage) ListProvidersByZip(_ context.Context, zipCode string) ([]models.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.coverage[zipCode]

	var result []models.Provider
	for providerID, entry := range entries {
		if !entry.hasService {
			continue
		}
		if provider, ok := s.providers[providerID]; ok {
			result = append(result, provider)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ListZipsByProvider возвращает отсортированный список ZIP-кодов провайдера.
func (s *Storage) ListZipsByProvider(_ context.Context, providerID int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []string
	for zip, entries := range s.coverage {
		if entry, ok := entries[providerID]; ok && entry.hasService {
			result = append(result, zip)
		}
	}
	sort.Strings(result)
	return result, nil
}

// CreatePlan добавляет тарифный план и возвращает его ID.
func (s *Storage) CreatePlan(_ context.Context, plan models.Plan) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan.ID = s.nextPlanID
	s.nextPlanID++
	s.plans[plan.ID] = copyPlan(plan)
	return plan.ID, nil
}

// ReadPlan возвращает тарифный план по его ID.
func (s *Storage) ReadPlan(_ context.Context, id int) (*models.Plan, error) {
	const op = "memstorage.ReadPlan"
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	plan = copyPlan(plan)
	return &plan, nil
}

// ListPlans возвращает все тарифные планы в порядке возрастания ID.
func (s *Storage) ListPlans(_ context.Context) ([]models.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Plan, 0, len(s.plans))
	for _, plan := range s.plans {
		result = append(result, copyPlan(plan))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if len(result) == 0 {
		return nil, nil
	}
	return result, nil
}

// ListPlansByProvider возвращает тарифные планы одного провайдера.
// Для неизвестного провайдера возвращается пустой список, не ошибка.
func (s *Storage) ListPlansByProvider(_ context.Context, providerID int) ([]models.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Plan
	for _, plan := range s.plans {
		if plan.ProviderID == providerID {
			result = append(result, copyPlan(plan))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// UpdatePlan обновляет тарифный план и возвращает количество изменённых записей.
func (s *Storage) UpdatePlan(_ context.Context, plan models.Plan) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[plan.ID]; !ok {
		return 0, nil
	}
	s.plans[plan.ID] = copyPlan(plan)
	return 1, nil
}

// RemovePlan удаляет тарифный план и возвращает количество удалённых записей.
func (s *Storage) RemovePlan(_ context.Context, id int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[id]; !ok {
		return 0, nil
	}
	delete(s.plans, id)
	return 1, nil
}

// SavePreferences сохраняет предпочтения пользователя и возвращает ID записи.
func (s *Storage) SavePreferences(_ context.Context, prefs models.Preferences) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs.ID = s.nextPreferencesID
	s.nextPreferencesID++
	s.preferences[prefs.ID] = prefs
	return prefs.ID, nil
}
