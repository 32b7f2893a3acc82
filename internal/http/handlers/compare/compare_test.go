package compare

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

// MockService реализует интерфейс compare.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Compare(ctx context.Context, planIDs []int) ([]models.RecommendedPlan, error) {
	args := m.Called(ctx, planIDs)
	if res := args.Get(0); res != nil {
		return res.([]models.RecommendedPlan), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCompareHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "успешное сравнение в заданном порядке",
			query: "?planIds=3,1",
			setupMock: func(m *MockService) {
				m.On("Compare", mock.Anything, []int{3, 1}).Return([]models.RecommendedPlan{
					{Plan: models.Plan{ID: 3, Name: "C"}, Provider: models.Provider{ID: 2, Name: "Globex"}},
					{Plan: models.Plan{ID: 1, Name: "A"}, Provider: models.Provider{ID: 1, Name: "Acme"}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"C"`,
		},
		{
			name:  "часть ID не распознана",
			query: "?planIds=1,99",
			setupMock: func(m *MockService) {
				m.On("Compare", mock.Anything, []int{1, 99}).Return([]models.RecommendedPlan{
					{Plan: models.Plan{ID: 1, Name: "A"}, Provider: models.Provider{ID: 1, Name: "Acme"}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"A"`,
		},
		{
			name:  "ни один ID не распознан",
			query: "?planIds=98,99",
			setupMock: func(m *MockService) {
				m.On("Compare", mock.Anything, []int{98, 99}).Return([]models.RecommendedPlan{}, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"no plans found"`,
		},
		{
			name:           "параметр отсутствует",
			query:          "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"planIds query parameter is required"`,
		},
		{
			name:           "нечисловой ID",
			query:          "?planIds=1,abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"planIds must be a comma-separated list of integers"`,
		},
		{
			name:  "ошибка сервиса",
			query: "?planIds=1",
			setupMock: func(m *MockService) {
				m.On("Compare", mock.Anything, []int{1}).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not compare plans"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/compare"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
