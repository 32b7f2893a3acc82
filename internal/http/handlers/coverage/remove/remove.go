// Package remove реализует HTTP-обработчик удаления записи покрытия.
package remove

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/provider-aggregator/internal/http/response"
	"github.com/magabrotheeeer/provider-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/provider-aggregator/internal/models"
)

// Handler управляет HTTP-запросами на удаление покрытия.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики удаления покрытия.
type Service interface {
	RemoveCoverage(ctx context.Context, providerID int, zipCode string) (bool, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Удалить покрытие
// @Description Удаляет запись покрытия для пары "провайдер - ZIP-код".
// @Tags Coverage
// @Accept json
// @Produce json
// @Param request body models.DummyRemoveCoverage true "Пара провайдер - ZIP-код"
// @Success 200 {object} map[string]any "Признак удаления записи"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Запись покрытия не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /coverage [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coverage.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRemoveCoverage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	removed, err := h.service.RemoveCoverage(r.Context(), req.ProviderID, req.ZipCode)
	if err != nil {
		log.Error("failed to remove coverage", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove coverage"))
		return
	}
	if !removed {
		log.Info("coverage not found",
			slog.Int("provider_id", req.ProviderID), slog.String("zip_code", req.ZipCode))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("coverage not found"))
		return
	}

	log.Info("success to remove coverage",
		slog.Int("provider_id", req.ProviderID), slog.String("zip_code", req.ZipCode))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"removed": true,
	}))
}
