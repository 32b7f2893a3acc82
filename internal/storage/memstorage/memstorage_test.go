package memstorage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/provider-aggregator/internal/models"
	"github.com/magabrotheeeer/provider-aggregator/internal/storage"
)

func newProvider(t *testing.T, s *Storage, name string) int {
	t.Helper()
	id, err := s.CreateProvider(context.Background(), models.Provider{Name: name})
	require.NoError(t, err)
	return id
}

func TestAddCoverage_Idempotent(t *testing.T) {
	s := New()
	ctx := context.Background()
	providerID := newProvider(t, s, "Acme")

	firstID, err := s.AddCoverage(ctx, models.Coverage{ProviderID: providerID, ZipCode: "10001", HasService: true})
	require.NoError(t, err)

	secondID, err := s.AddCoverage(ctx, models.Coverage{ProviderID: providerID, ZipCode: "10001", HasService: true})
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	providers, err := s.ListProvidersByZip(ctx, "10001")
	require.NoError(t, err)
	assert.Len(t, providers, 1)
}

func TestAddCoverage_HasServiceOverwrite(t *testing.T) {
	s := New()
	ctx := context.Background()
	providerID := newProvider(t, s, "Acme")

	_, err := s.AddCoverage(ctx, models.Coverage{ProviderID: providerID, ZipCode: "10001", HasService: true})
	require.NoError(t, err)

	// Повторное добавление с has_service=false скрывает провайдера из выдачи.
	_, err = s.AddCoverage(ctx, models.Coverage{ProviderID: providerID, ZipCode: "10001", HasService: false})
	require.NoError(t, err)

	providers, err := s.ListProvidersByZip(ctx, "10001")
	require.NoError(t, err)
	assert.Empty(t, providers)
}

func TestRemoveCoverage(t *testing.T) {
	s := New()
	ctx := context.Background()
	providerID := newProvider(t, s, "Acme")

	_, err := s.AddCoverage(ctx, models.Coverage{ProviderID: providerID, ZipCode: "10001", HasService: true})
	require.NoError(t, err)

	removed, err := s.RemoveCoverage(ctx, providerID, "10001")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	// Повторное удаление сообщает, что удалять было нечего.
	removed, err = s.RemoveCoverage(ctx, providerID, "10001")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestRemoveProvider_Cascades(t *testing.T) {
	s := New()
	ctx := context.Background()
	providerID := newProvider(t, s, "Acme")

	planID, err := s.CreatePlan(ctx, models.Plan{
		ProviderID:    providerID,
		Name:          "Fiber 500",
		DownloadSpeed: 500,
		UploadSpeed:   500,
		Price:         5999,
	})
	require.NoError(t, err)
	_, err = s.AddCoverage(ctx, models.Coverage{ProviderID: providerID, ZipCode: "10001", HasService: true})
	require.NoError(t, err)

	removed, err := s.RemoveProvider(ctx, providerID)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = s.ReadPlan(ctx, planID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	providers, err := s.ListProvidersByZip(ctx, "10001")
	require.NoError(t, err)
	assert.Empty(t, providers)
}

func TestListPlansByProvider_UnknownProvider(t *testing.T) {
	s := New()

	plans, err := s.ListPlansByProvider(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestPlanFeatures_NilVersusEmpty(t *testing.T) {
	s := New()
	ctx := context.Background()
	providerID := newProvider(t, s, "Acme")

	unknownID, err := s.CreatePlan(ctx, models.Plan{
		ProviderID:    providerID,
		Name:          "Basic",
		DownloadSpeed: 100,
		UploadSpeed:   10,
		Price:         3999,
		Features:      nil,
	})
	require.NoError(t, err)

	emptyID, err := s.CreatePlan(ctx, models.Plan{
		ProviderID:    providerID,
		Name:          "Bare",
		DownloadSpeed: 100,
		UploadSpeed:   10,
		Price:         2999,
		Features:      []string{},
	})
	require.NoError(t, err)

	unknown, err := s.ReadPlan(ctx, unknownID)
	require.NoError(t, err)
	assert.Nil(t, unknown.Features)

	empty, err := s.ReadPlan(ctx, emptyID)
	require.NoError(t, err)
	require.NotNil(t, empty.Features)
	assert.Empty(t, empty.Features)
}

func TestReadProvider_NotFound(t *testing.T) {
	s := New()

	_, err := s.ReadProvider(context.Background(), 42)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestListProvidersByZip_Ordering(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := newProvider(t, s, "Acme")
	second := newProvider(t, s, "Globex")

	_, err := s.AddCoverage(ctx, models.Coverage{ProviderID: second, ZipCode: "10001", HasService: true})
	require.NoError(t, err)
	_, err = s.AddCoverage(ctx, models.Coverage{ProviderID: first, ZipCode: "10001", HasService: true})
	require.NoError(t, err)

	// Два вызова подряд дают идентичный порядок.
	got1, err := s.ListProvidersByZip(ctx, "10001")
	require.NoError(t, err)
	got2, err := s.ListProvidersByZip(ctx, "10001")
	require.NoError(t, err)
	assert.Equal(t, got1, got2)
	assert.Equal(t, []int{first, second}, []int{got1[0].ID, got1[1].ID})
}
