// Package geocode реализует HTTP-обработчик обратного геокодирования:
// преобразование координат пользователя в ZIP-код.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/provider-aggregator/internal/geocoding"
	"github.com/magabrotheeeer/provider-aggregator/internal/http/response"
	"github.com/magabrotheeeer/provider-aggregator/internal/lib/sl"
)

// Request описывает координаты для обратного геокодирования.
type Request struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon *float64 `json:"lon" validate:"required,gte=-180,lte=180"`
}

// Handler управляет HTTP-запросами обратного геокодирования.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс клиента обратного геокодирования.
type Service interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (*geocoding.Location, error)
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
// @Summary Определить ZIP-код по координатам
// @Description Преобразует широту и долготу в ZIP-код через сервис геокодирования.
// @Tags Geocoding
// @Accept json
// @Produce json
// @Param request body geocode.Request true "Координаты"
// @Success 200 {object} map[string]any "ZIP-код и населенный пункт"
// @Failure 400 {object} response.ErrorResponse "Некорректные координаты"
// @Failure 404 {object} response.ErrorResponse "ZIP-код не определен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервиса геокодирования"
// @Router /geocode/reverse [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.geocode"
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

	location, err := h.service.ReverseGeocode(r.Context(), *req.Lat, *req.Lon)
	if err != nil {
		if errors.Is(err, geocoding.ErrNoZipCode) {
			log.Info("zip code not determined",
				slog.Float64("lat", *req.Lat), slog.Float64("lon", *req.Lon))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("could not determine zip code from coordinates"))
			return
		}
		log.Error("failed to reverse geocode", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("geocoding service error"))
		return
	}

	log.Info("success to reverse geocode", slog.String("zip_code", location.ZipCode))
	render.JSON(w, r, response.StatusOKWithData(location))
}
