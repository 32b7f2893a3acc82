// Package zipcodes реализует HTTP-обработчик для получения ZIP-кодов,
// в которых провайдер предоставляет сервис.
package zipcodes

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/provider-aggregator/internal/http/response"
	"github.com/magabrotheeeer/provider-aggregator/internal/lib/sl"
)

// Handler обрабатывает запросы на получение зоны покрытия провайдера.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения зоны покрытия.
type Service interface {
	ListZipsByProvider(ctx context.Context, providerID int) ([]string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary ZIP-коды провайдера
// @Description Возвращает отсортированный список ZIP-кодов, где провайдер активен.
// @Tags Providers
// @Produce json
// @Param id path int true "ID провайдера"
// @Success 200 {object} map[string]any "Список ZIP-кодов"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /providers/{id}/zipcodes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.provider.zipcodes"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	providerID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	zips, err := h.service.ListZipsByProvider(r.Context(), providerID)
	if err != nil {
		log.Error("failed to list zip codes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list zip codes"))
		return
	}
	if zips == nil {
		zips = []string{}
	}

	log.Info("success to list zip codes",
		slog.Int("provider_id", providerID), slog.Int("count", len(zips)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"zip_codes": zips,
	}))
}
