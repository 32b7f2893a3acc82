// Package list реализует HTTP-обработчик для получения списка всех провайдеров.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/provider-aggregator/internal/http/response"
	"github.com/magabrotheeeer/provider-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/provider-aggregator/internal/models"
)

// Handler обрабатывает запросы на получение списка провайдеров.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения списка провайдеров.
type Service interface {
	ListProviders(ctx context.Context) ([]models.Provider, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список провайдеров
// @Description Возвращает всех интернет-провайдеров каталога.
// @Tags Providers
// @Produce json
// @Success 200 {object} map[string]any "Список провайдеров"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /providers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.provider.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	providers, err := h.service.ListProviders(r.Context())
	if err != nil {
		log.Error("failed to list providers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list providers"))
		return
	}
	if providers == nil {
		providers = []models.Provider{}
	}

	log.Info("success to list providers", slog.Int("count", len(providers)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"providers": providers,
	}))
}
