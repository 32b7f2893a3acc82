package recommend

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/provider-aggregator/internal/models"
)

// MockService реализует интерфейс recommend.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Recommend(ctx context.Context, req models.DummyPreferences) (*models.RecommendationResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.RecommendationResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRecommendHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный подбор планов",
			body: `{"zip_code":"10001","usage_type":"general","user_count":2}`,
			setupMock: func(m *MockService) {
				m.On("Recommend", mock.Anything, mock.Anything).Return(&models.RecommendationResult{
					Message: "Based on your preferences, here are our recommendations",
					Recommendations: []models.RecommendedPlan{
						{
							Plan:     models.Plan{ID: 1, ProviderID: 1, Name: "Fiber 300"},
							Provider: models.Provider{ID: 1, Name: "Acme"},
						},
					},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"Based on your preferences, here are our recommendations"`,
		},
		{
			name: "пустое покрытие",
			body: `{"zip_code":"99999","usage_type":"general","user_count":1}`,
			setupMock: func(m *MockService) {
				m.On("Recommend", mock.Anything, mock.Anything).Return(&models.RecommendationResult{
					Message:         "No providers available in your area",
					Recommendations: []models.RecommendedPlan{},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"recommendations":[]`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"zip_code":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "короткий zip не проходит валидацию",
			body:           `{"zip_code":"123","usage_type":"general","user_count":1}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field ZipCode must be exactly 5 characters long`,
		},
		{
			name:           "неизвестное качество стриминга",
			body:           `{"zip_code":"10001","usage_type":"general","user_count":1,"streaming_quality":"8K"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field StreamingQuality must be one of`,
		},
		{
			name: "ошибка сервиса",
			body: `{"zip_code":"10001","usage_type":"general","user_count":1}`,
			setupMock: func(m *MockService) {
				m.On("Recommend", mock.Anything, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not build recommendations"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
