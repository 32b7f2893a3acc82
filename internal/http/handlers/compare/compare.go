// Package compare реализует HTTP-обработчик сравнения тарифных планов.
//
// Handler принимает query-параметр planIds со списком ID через запятую,
// собирает планы вместе с их провайдерами и возвращает их в порядке,
// заданном запросом. Нераспознанные ID молча пропускаются; 404 возвращается,
// только если не распознан ни один ID.
package compare

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/provider-aggregator/internal/http/response"
	"github.com/magabrotheeeer/provider-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/provider-aggregator/internal/models"
)

// Handler управляет HTTP-запросами на сравнение планов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сравнения планов.
type Service interface {
	Compare(ctx context.Context, planIDs []int) ([]models.RecommendedPlan, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сравнить тарифные планы
// @Description Возвращает планы с данными провайдеров для сравнения. Порядок соответствует порядку переданных ID.
// @Tags Plans
// @Produce json
// @Param planIds query string true "ID планов через запятую, например 1,5,9"
// @Success 200 {object} map[string]any "Планы для сравнения"
// @Failure 400 {object} response.ErrorResponse "Отсутствующий или некорректный planIds"
// @Failure 404 {object} response.ErrorResponse "Ни один план не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /compare [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.compare"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	raw := r.URL.Query().Get("planIds")
	if raw == "" {
		log.Error("missing planIds query parameter")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("planIds query parameter is required"))
		return
	}

	var planIDs []int
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			log.Error("failed to decode planIds from query", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("planIds must be a comma-separated list of integers"))
			return
		}
		planIDs = append(planIDs, id)
	}

	plans, err := h.service.Compare(r.Context(), planIDs)
	if err != nil {
		log.Error("failed to compare plans", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compare plans"))
		return
	}
	if len(plans) == 0 {
		log.Info("no plans resolved for comparison", slog.Any("plan_ids", planIDs))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("no plans found"))
		return
	}

	log.Info("success to compare plans", slog.Int("count", len(plans)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plans": plans,
	}))
}
