// Package list реализует HTTP-обработчик для получения списка тарифных планов.
//
// Необязательный query-параметр providerId ограничивает выборку планами
// одного провайдера; неизвестный провайдер дает пустой список.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/provider-aggregator/internal/http/response"
	"github.com/magabrotheeeer/provider-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/provider-aggregator/internal/models"
)

// Handler обрабатывает запросы на получение списка тарифных планов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения списка планов.
type Service interface {
	ListPlans(ctx context.Context, providerID *int) ([]models.Plan, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список тарифных планов
// @Description Возвращает тарифные планы, опционально отфильтрованные по провайдеру.
// @Tags Plans
// @Produce json
// @Param providerId query int false "ID провайдера"
// @Success 200 {object} map[string]any "Список планов"
// @Failure 400 {object} response.ErrorResponse "Некорректный providerId"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var providerID *int
	if raw := r.URL.Query().Get("providerId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			log.Error("failed to decode providerId from query", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("providerId must be an integer"))
			return
		}
		providerID = &id
	}

	plans, err := h.service.ListPlans(r.Context(), providerID)
	if err != nil {
		log.Error("failed to list plans", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list plans"))
		return
	}
	if plans == nil {
		plans = []models.Plan{}
	}

	log.Info("success to list plans", slog.Int("count", len(plans)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plans": plans,
	}))
}
