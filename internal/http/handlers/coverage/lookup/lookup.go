// Package lookup реализует HTTP-обработчик поиска провайдеров по ZIP-коду.
//
// Пустой список провайдеров - нормальный ответ: значит, в этой зоне
// никто не предоставляет сервис.
package lookup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/provider-aggregator/internal/http/response"
	"github.com/magabrotheeeer/provider-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/provider-aggregator/internal/lib/zipcode"
	"github.com/magabrotheeeer/provider-aggregator/internal/models"
)

// Handler обрабатывает запросы на поиск провайдеров, обслуживающих ZIP-код.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска покрытия.
type Service interface {
	ListProvidersByZip(ctx context.Context, zipCode string) ([]models.Provider, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Провайдеры по ZIP-коду
// @Description Возвращает провайдеров, активных в заданном ZIP-коде.
// @Tags Coverage
// @Produce json
// @Param zip path string true "Пятизначный ZIP-код"
// @Success 200 {object} map[string]any "Список провайдеров"
// @Failure 400 {object} response.ErrorResponse "Некорректный ZIP-код"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /coverage/{zip} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coverage.lookup"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	zip := chi.URLParam(r, "zip")
	if !zipcode.Valid(zip) {
		log.Error("invalid zip code in url", slog.String("zip_code", zip))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("zip code must be exactly 5 digits"))
		return
	}

	providers, err := h.service.ListProvidersByZip(r.Context(), zip)
	if err != nil {
		log.Error("failed to list providers by zip", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list providers"))
		return
	}
	if providers == nil {
		providers = []models.Provider{}
	}

	log.Info("success to list providers by zip",
		slog.String("zip_code", zip), slog.Int("count", len(providers)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"providers": providers,
	}))
}
