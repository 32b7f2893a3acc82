// Package add реализует HTTP-обработчик добавления записи покрытия.
//
// Добавление идемпотентно: повторный запрос для той же пары
// "провайдер - ZIP-код" перезаписывает флаг наличия сервиса,
// не создавая дубликата.
package add

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

// Handler управляет HTTP-запросами на добавление покрытия.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики добавления покрытия.
type Service interface {
	AddCoverage(ctx context.Context, req models.DummyCoverage) (int, error)
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
// @Summary Добавить покрытие
// @Description Идемпотентно отмечает, что провайдер обслуживает ZIP-код.
// @Tags Coverage
// @Accept json
// @Produce json
// @Param request body models.DummyCoverage true "Данные покрытия"
// @Success 201 {object} map[string]any "ID записи покрытия"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /coverage [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coverage.add"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyCoverage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.AddCoverage(r.Context(), req)
	if err != nil {
		log.Error("failed to add coverage", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not add coverage"))
		return
	}

	log.Info("success to add coverage", slog.Int("id", id))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
