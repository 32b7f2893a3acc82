package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/provider-aggregator/internal/models"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) UpdatePlan(ctx context.Context, id int, patch models.UpdatePlan) (int, error) {
	args := m.Called(ctx, id, patch)
	return args.Int(0), args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное частичное обновление",
			id:   "5",
			body: `{"price":4500}`,
			setupMock: func(m *MockService) {
				m.On("UpdatePlan", mock.Anything, 5, mock.MatchedBy(func(p models.UpdatePlan) bool {
					return p.Price != nil && *p.Price == 4500 && p.Name == nil && p.Features == nil
				})).Return(1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"updated":1`,
		},
		{
			name: "пустой массив features передается явно",
			id:   "5",
			body: `{"features":[]}`,
			setupMock: func(m *MockService) {
				m.On("UpdatePlan", mock.Anything, 5, mock.MatchedBy(func(p models.UpdatePlan) bool {
					return p.Features != nil && len(*p.Features) == 0
				})).Return(1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"updated":1`,
		},
		{
			name:           "некорректный id в URL",
			id:             "abc",
			body:           `{"price":4500}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"failed to decode id from url"`,
		},
		{
			name:           "некорректный JSON",
			id:             "5",
			body:           `{"price":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "отрицательная цена не проходит валидацию",
			id:             "5",
			body:           `{"price":-100}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Price must be greater than 0`,
		},
		{
			name: "план не найден",
			id:   "404",
			body: `{"price":4500}`,
			setupMock: func(m *MockService) {
				m.On("UpdatePlan", mock.Anything, 404, mock.Anything).Return(0, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"plan not found"`,
		},
		{
			name: "ошибка сервиса",
			id:   "5",
			body: `{"price":4500}`,
			setupMock: func(m *MockService) {
				m.On("UpdatePlan", mock.Anything, 5, mock.Anything).Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not update plan"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/plans/"+tt.id, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
