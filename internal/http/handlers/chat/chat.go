// Package chat реализует HTTP-обработчик консультанта по интернет-сервису.
package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/provider-aggregator/internal/assistant"
	"github.com/magabrotheeeer/provider-aggregator/internal/http/response"
	"github.com/magabrotheeeer/provider-aggregator/internal/lib/sl"
)

// Request описывает вопрос пользователя консультанту.
type Request struct {
	Message string `json:"message" validate:"required"`
	Context string `json:"context,omitempty"`
}

// Handler управляет HTTP-запросами к консультанту.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс консультанта.
type Service interface {
	Answer(ctx context.Context, message, userContext string) (*assistant.Reply, error)
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
// @Summary Задать вопрос консультанту
// @Description Отвечает на вопрос об интернет-сервисе: технологии, скорости, оборудование.
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body chat.Request true "Вопрос пользователя"
// @Success 200 {object} map[string]any "Ответ консультанта"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или пустой вопрос"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /assistant/chat [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.chat"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	reply, err := h.service.Answer(r.Context(), req.Message, req.Context)
	if err != nil {
		log.Error("failed to answer question", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not generate response"))
		return
	}

	log.Info("success to answer question", slog.Bool("is_ai", reply.IsAI))
	render.JSON(w, r, response.StatusOKWithData(reply))
}
