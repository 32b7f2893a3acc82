package recommendation

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/provider-aggregator/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListProvidersByZip(ctx context.Context, zipCode string) ([]models.Provider, error) {
	args := m.Called(ctx, zipCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Provider), args.Error(1)
}

func (m *RepoMock) ListPlansByProvider(ctx context.Context, providerID int) ([]models.Plan, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Plan), args.Error(1)
}

func (m *RepoMock) SavePreferences(ctx context.Context, prefs models.Preferences) (int, error) {
	args := m.Called(ctx, prefs)
	return args.Int(0), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func intPtr(v int) *int { return &v }

func acme() models.Provider {
	return models.Provider{ID: 1, Name: "Acme"}
}

func basePrefs() models.DummyPreferences {
	return models.DummyPreferences{
		ZipCode:   "10001",
		UsageType: "general",
		UserCount: 1,
	}
}

func newService(repo *RepoMock) *RecommendationService {
	repo.On("SavePreferences", mock.Anything, mock.Anything).Return(1, nil).Maybe()
	return NewRecommendationService(repo, nil, newNoopLogger())
}

func TestRecommend_NoProviders(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListProvidersByZip", mock.Anything, "99999").Return([]models.Provider{}, nil)
	service := newService(repo)

	prefs := basePrefs()
	prefs.ZipCode = "99999"
	result, err := service.Recommend(context.Background(), prefs)
	require.NoError(t, err)

	assert.Equal(t, MsgNoProviders, result.Message)
	assert.Empty(t, result.Recommendations)
	// Каталог планов при пустом покрытии не опрашивается.
	repo.AssertNotCalled(t, "ListPlansByProvider", mock.Anything, mock.Anything)
}

func TestRecommend_NoPlans(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListProvidersByZip", mock.Anything, "10001").Return([]models.Provider{acme()}, nil)
	repo.On("ListPlansByProvider", mock.Anything, 1).Return([]models.Plan{}, nil)
	service := newService(repo)

	result, err := service.Recommend(context.Background(), basePrefs())
	require.NoError(t, err)

	assert.Equal(t, MsgNoPlans, result.Message)
	assert.Empty(t, result.Recommendations)
}

func TestRecommend_GamingFilter(t *testing.T) {
	planA := models.Plan{ID: 1, ProviderID: 1, Name: "Plan A", UploadSpeed: 10, DownloadSpeed: 50, Price: 4000}
	planB := models.Plan{ID: 2, ProviderID: 1, Name: "Plan B", UploadSpeed: 25, DownloadSpeed: 100, Price: 6000}

	repo := new(RepoMock)
	repo.On("ListProvidersByZip", mock.Anything, "10001").Return([]models.Provider{acme()}, nil)
	repo.On("ListPlansByProvider", mock.Anything, 1).Return([]models.Plan{planA, planB}, nil)
	service := newService(repo)

	prefs := basePrefs()
	prefs.NeedsGaming = true
	result, err := service.Recommend(context.Background(), prefs)
	require.NoError(t, err)

	assert.Equal(t, MsgRecommendations, result.Message)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Plan B", result.Recommendations[0].Name)
	assert.Equal(t, "Acme", result.Recommendations[0].Provider.Name)
}

func TestRecommend_4KStreamingMultipleUsers(t *testing.T) {
	planC := models.Plan{ID: 1, ProviderID: 1, Name: "Plan C", DownloadSpeed: 40, UploadSpeed: 20, Price: 3000}
	planD := models.Plan{ID: 2, ProviderID: 1, Name: "Plan D", DownloadSpeed: 120, UploadSpeed: 20, Price: 7000}

	repo := new(RepoMock)
	repo.On("ListProvidersByZip", mock.Anything, "10001").Return([]models.Provider{acme()}, nil)
	repo.On("ListPlansByProvider", mock.Anything, 1).Return([]models.Plan{planC, planD}, nil)
	service := newService(repo)

	prefs := basePrefs()
	prefs.NeedsStreaming = true
	prefs.StreamingQuality = "4K"
	prefs.UserCount = 3 // порог 75 Мбит/с
	result, err := service.Recommend(context.Background(), prefs)
	require.NoError(t, err)

	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Plan D", result.Recommendations[0].Name)
}

func TestRecommend_HDStreamingThreshold(t *testing.T) {
	planSlow := models.Plan{ID: 1, ProviderID: 1, Name: "Plan Slow", DownloadSpeed: 19, UploadSpeed: 5, Price: 2000}
	planEdge := models.Plan{ID: 2, ProviderID: 1, Name: "Plan Edge", DownloadSpeed: 20, UploadSpeed: 5, Price: 3000}

	repo := new(RepoMock)
	repo.On("ListProvidersByZip", mock.Anything, "10001").Return([]models.Provider{acme()}, nil)
	repo.On("ListPlansByProvider", mock.Anything, 1).Return([]models.Plan{planSlow, planEdge}, nil)
	service := newService(repo)

	prefs := basePrefs()
	prefs.NeedsStreaming = true
	prefs.StreamingQuality = "HD"
	prefs.UserCount = 4 // порог 20 Мбит/с, ровно на границе план проходит
	result, err := service.Recommend(context.Background(), prefs)
	require.NoError(t, err)

	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Plan Edge", result.Recommendations[0].Name)
}

func TestRecommend_StreamingFilterSkippedWithoutUserCount(t *testing.T) {
	planC := models.Plan{ID: 1, ProviderID: 1, Name: "Plan C", DownloadSpeed: 40, UploadSpeed: 20, Price: 3000}

	repo := new(RepoMock)
	repo.On("ListProvidersByZip", mock.Anything, "10001").Return([]models.Provider{acme()}, nil)
	repo.On("ListPlansByProvider", mock.Anything, 1).Return([]models.Plan{planC}, nil)
	service := newService(repo)

	prefs := basePrefs()
	prefs.NeedsStreaming = true
	prefs.StreamingQuality = "4K"
	prefs.UserCount = 0 // мимо HTTP-валидации, но движок не должен отбросить всё
	result, err := service.Recommend(context.Background(), prefs)
	require.NoError(t, err)

	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Plan C", result.Recommendations[0].Name)
}

func TestRecommend_SpeedWinsOverPrice(t *testing.T) {
	plans := []models.Plan{
		{ID: 1, ProviderID: 1, Name: "Cheap", DownloadSpeed: 50, UploadSpeed: 10, Price: 2000},
		{ID: 2, ProviderID: 1, Name: "Fast", DownloadSpeed: 300, UploadSpeed: 30, Price: 9000},
		{ID: 3, ProviderID: 1, Name: "Middle", DownloadSpeed: 100, UploadSpeed: 20, Price: 5000},
	}

	repo := new(RepoMock)
	repo.On("ListProvidersByZip", mock.Anything, "10001").Return([]models.Provider{acme()}, nil)
	repo.On("ListPlansByProvider", mock.Anything, 1).Return(plans, nil)
	service := newService(repo)

	prefs := basePrefs()
	prefs.PrioritizeSpeed = true
	prefs.PrioritizePrice = true
	result, err := service.Recommend(context.Background(), prefs)
	require.NoError(t, err)

	require.Len(t, result.Recommendations, 3)
	assert.Equal(t, "Fast", result.Recommendations[0].Name)
	assert.Equal(t, "Middle", result.Recommendations[1].Name)
	assert.Equal(t, "Cheap", result.Recommendations[2].Name)
}

func TestRecommend_BudgetFilterAfterSort(t *testing.T) {
	planA := models.Plan{ID: 1, ProviderID: 1, Name: "Plan A", DownloadSpeed: 50, UploadSpeed: 10, Price: 4000}
	planB := models.Plan{ID: 2, ProviderID: 1, Name: "Plan B", DownloadSpeed: 100, UploadSpeed: 25, Price: 6000}

	repo := new(RepoMock)
	repo.On("ListProvidersByZip", mock.Anything, "10001").Return([]models.Provider{acme()}, nil)
	repo.On("ListPlansByProvider", mock.Anything, 1).Return([]models.Plan{planA, planB}, nil)
	service := newService(repo)

	prefs := basePrefs()
	prefs.PrioritizeSpeed = true
	prefs.MaxBudget = intPtr(5000)
	result, err := service.Recommend(context.Background(), prefs)
	require.NoError(t, err)

	// По скорости порядок [B, A], бюджет отсеивает B, остается [A].
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Plan A", result.Recommendations[0].Name)
}

func TestRecommend_BudgetPreservesRelativeOrder(t *testing.T) {
	plans := []models.Plan{
		{ID: 1, ProviderID: 1, Name: "P1", DownloadSpeed: 10, UploadSpeed: 5, Price: 1000},
		{ID: 2, ProviderID: 1, Name: "P2", DownloadSpeed: 10, UploadSpeed: 5, Price: 9000},
		{ID: 3, ProviderID: 1, Name: "P3", DownloadSpeed: 10, UploadSpeed: 5, Price: 2000},
		{ID: 4, ProviderID: 1, Name: "P4", DownloadSpeed: 10, UploadSpeed: 5, Price: 3000},
	}

	repo := new(RepoMock)
	repo.On("ListProvidersByZip", mock.Anything, "10001").Return([]models.Provider{acme()}, nil)
	repo.On("ListPlansByProvider", mock.Anything, 1).Return(plans, nil)
	service := newService(repo)

	prefs := basePrefs()
	prefs.PrioritizePrice = true
	prefs.MaxBudget = intPtr(3000)
	result, err := service.Recommend(context.Background(), prefs)
	require.NoError(t, err)

	require.Len(t, result.Recommendations, 3)
	assert.Equal(t, "P1", result.Recommendations[0].Name)
	assert.Equal(t, "P3", result.Recommendations[1].Name)
	assert.Equal(t, "P4", result.Recommendations[2].Name)
}

func TestRecommend_TruncatesToFive(t *testing.T) {
	var plans []models.Plan
	for i := 1; i <= 8; i++ {
		plans = append(plans, models.Plan{
			ID:            i,
			ProviderID:    1,
			Name:          "Plan",
			DownloadSpeed: 1000 - i*10,
			UploadSpeed:   20,
			Price:         3000 + i*100,
		})
	}

	repo := new(RepoMock)
	repo.On("ListProvidersByZip", mock.Anything, "10001").Return([]models.Provider{acme()}, nil)
	repo.On("ListPlansByProvider", mock.Anything, 1).Return(plans, nil)
	service := newService(repo)

	prefs := basePrefs()
	prefs.PrioritizeSpeed = true
	result, err := service.Recommend(context.Background(), prefs)
	require.NoError(t, err)

	require.Len(t, result.Recommendations, 5)
	for i, rec := range result.Recommendations {
		assert.Equal(t, plans[i].ID, rec.ID, "ожидаются первые пять планов по убыванию скорости")
	}
}

func TestRecommend_AllFilteredOutIsStillSuccess(t *testing.T) {
	planA := models.Plan{ID: 1, ProviderID: 1, Name: "Plan A", UploadSpeed: 5, DownloadSpeed: 50, Price: 4000}

	repo := new(RepoMock)
	repo.On("ListProvidersByZip", mock.Anything, "10001").Return([]models.Provider{acme()}, nil)
	repo.On("ListPlansByProvider", mock.Anything, 1).Return([]models.Plan{planA}, nil)
	service := newService(repo)

	prefs := basePrefs()
	prefs.NeedsVideoConferencing = true
	result, err := service.Recommend(context.Background(), prefs)
	require.NoError(t, err)

	// Пустой результат после фильтров - успех с общим сообщением,
	// а не сообщение о пустом покрытии.
	assert.Equal(t, MsgRecommendations, result.Message)
	assert.NotNil(t, result.Recommendations)
	assert.Empty(t, result.Recommendations)
}

func TestRecommend_NoPrioritiesKeepsIterationOrder(t *testing.T) {
	globex := models.Provider{ID: 2, Name: "Globex"}
	acmePlans := []models.Plan{
		{ID: 1, ProviderID: 1, Name: "A1", DownloadSpeed: 300, UploadSpeed: 20, Price: 9000},
		{ID: 2, ProviderID: 1, Name: "A2", DownloadSpeed: 50, UploadSpeed: 10, Price: 2000},
	}
	globexPlans := []models.Plan{
		{ID: 3, ProviderID: 2, Name: "G1", DownloadSpeed: 100, UploadSpeed: 15, Price: 4000},
	}

	repo := new(RepoMock)
	repo.On("ListProvidersByZip", mock.Anything, "10001").Return([]models.Provider{acme(), globex}, nil)
	repo.On("ListPlansByProvider", mock.Anything, 1).Return(acmePlans, nil)
	repo.On("ListPlansByProvider", mock.Anything, 2).Return(globexPlans, nil)
	service := newService(repo)

	result, err := service.Recommend(context.Background(), basePrefs())
	require.NoError(t, err)

	require.Len(t, result.Recommendations, 3)
	assert.Equal(t, []string{"A1", "A2", "G1"}, []string{
		result.Recommendations[0].Name,
		result.Recommendations[1].Name,
		result.Recommendations[2].Name,
	})
}

func TestRecommend_Deterministic(t *testing.T) {
	plans := []models.Plan{
		{ID: 1, ProviderID: 1, Name: "A", DownloadSpeed: 100, UploadSpeed: 20, Price: 4000},
		{ID: 2, ProviderID: 1, Name: "B", DownloadSpeed: 100, UploadSpeed: 20, Price: 4000},
		{ID: 3, ProviderID: 1, Name: "C", DownloadSpeed: 200, UploadSpeed: 30, Price: 6000},
	}

	repo := new(RepoMock)
	repo.On("ListProvidersByZip", mock.Anything, "10001").Return([]models.Provider{acme()}, nil)
	repo.On("ListPlansByProvider", mock.Anything, 1).Return(plans, nil)
	service := newService(repo)

	prefs := basePrefs()
	prefs.PrioritizeSpeed = true

	first, err := service.Recommend(context.Background(), prefs)
	require.NoError(t, err)
	second, err := service.Recommend(context.Background(), prefs)
	require.NoError(t, err)

	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, first.Recommendations, second.Recommendations)
	// Стабильная сортировка: равные по скорости планы сохраняют исходный порядок.
	assert.Equal(t, "C", first.Recommendations[0].Name)
	assert.Equal(t, "A", first.Recommendations[1].Name)
	assert.Equal(t, "B", first.Recommendations[2].Name)
}

func TestRecommend_AnalyticsFailuresDoNotFailRequest(t *testing.T) {
	planA := models.Plan{ID: 1, ProviderID: 1, Name: "Plan A", DownloadSpeed: 50, UploadSpeed: 10, Price: 4000}

	repo := new(RepoMock)
	repo.On("SavePreferences", mock.Anything, mock.Anything).Return(0, assert.AnError)
	repo.On("ListProvidersByZip", mock.Anything, "10001").Return([]models.Provider{acme()}, nil)
	repo.On("ListPlansByProvider", mock.Anything, 1).Return([]models.Plan{planA}, nil)

	publisher := new(PublisherMock)
	publisher.On("Publish", "preferences", mock.Anything).Return(assert.AnError)

	service := NewRecommendationService(repo, publisher, newNoopLogger())

	result, err := service.Recommend(context.Background(), basePrefs())
	require.NoError(t, err)
	assert.Equal(t, MsgRecommendations, result.Message)
	require.Len(t, result.Recommendations, 1)
	publisher.AssertExpectations(t)
}
