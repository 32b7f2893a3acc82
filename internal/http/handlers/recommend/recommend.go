// Package recommend реализует HTTP-обработчик подбора тарифных планов.
//
// Handler принимает анкету пользователя, валидирует её и передает движку
// рекомендаций. Ответ всегда содержит человеко-читаемое сообщение
// и список рекомендованных планов (возможно, пустой).
package recommend

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

// Handler управляет HTTP-запросами на подбор тарифных планов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс движка рекомендаций.
type Service interface {
	Recommend(ctx context.Context, req models.DummyPreferences) (*models.RecommendationResult, error)
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
// @Summary Подобрать тарифные планы
// @Description Подбирает до пяти тарифных планов по анкете пользователя: зона покрытия, потребности, приоритеты и бюджет.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body models.DummyPreferences true "Анкета пользователя"
// @Success 200 {object} map[string]any "Сообщение и список рекомендаций"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /recommendations [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recommend"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPreferences
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

	result, err := h.service.Recommend(r.Context(), req)
	if err != nil {
		log.Error("failed to build recommendations", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build recommendations"))
		return
	}

	log.Info("success to build recommendations",
		slog.Int("count", len(result.Recommendations)))
	render.JSON(w, r, response.StatusOKWithData(result))
}
