// Package provideraggregator предоставляет маршруты для основного приложения.
package provideraggregator

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/provider-aggregator/internal/assistant"
	"github.com/magabrotheeeer/provider-aggregator/internal/geocoding"
	"github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/chat"
	"github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/compare"
	coverageadd "github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/coverage/add"
	coveragelookup "github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/coverage/lookup"
	coverageremove "github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/coverage/remove"
	"github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/geocode"
	"github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/health"
	plancreate "github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/plan/create"
	planlist "github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/plan/list"
	planread "github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/plan/read"
	planremove "github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/plan/remove"
	planupdate "github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/plan/update"
	providercreate "github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/provider/create"
	providerlist "github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/provider/list"
	providerread "github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/provider/read"
	providerremove "github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/provider/remove"
	providerupdate "github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/provider/update"
	providerzipcodes "github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/provider/zipcodes"
	"github.com/magabrotheeeer/provider-aggregator/internal/http/handlers/recommend"
	"github.com/magabrotheeeer/provider-aggregator/internal/http/middlewarectx"
	catalogservice "github.com/magabrotheeeer/provider-aggregator/internal/services/catalog"
	recservice "github.com/magabrotheeeer/provider-aggregator/internal/services/recommendation"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, catalogService *catalogservice.CatalogService, recommendationService *recservice.RecommendationService, advisor *assistant.Advisor, geoClient *geocoding.Client) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Get("/providers", providerlist.New(logger, catalogService).ServeHTTP)
		r.Post("/providers", providercreate.New(logger, catalogService).ServeHTTP)
		r.Get("/providers/{id}", providerread.New(logger, catalogService).ServeHTTP)
		r.Put("/providers/{id}", providerupdate.New(logger, catalogService).ServeHTTP)
		r.Delete("/providers/{id}", providerremove.New(logger, catalogService).ServeHTTP)
		r.Get("/providers/{id}/zipcodes", providerzipcodes.New(logger, catalogService).ServeHTTP)

		r.Get("/coverage/{zip}", coveragelookup.New(logger, catalogService).ServeHTTP)
		r.Post("/coverage", coverageadd.New(logger, catalogService).ServeHTTP)
		r.Delete("/coverage", coverageremove.New(logger, catalogService).ServeHTTP)

		r.Get("/plans", planlist.New(logger, catalogService).ServeHTTP)
		r.Post("/plans", plancreate.New(logger, catalogService).ServeHTTP)
		r.Get("/plans/{id}", planread.New(logger, catalogService).ServeHTTP)
		r.Put("/plans/{id}", planupdate.New(logger, catalogService).ServeHTTP)
		r.Delete("/plans/{id}", planremove.New(logger, catalogService).ServeHTTP)

		r.Post("/recommendations", recommend.New(logger, recommendationService).ServeHTTP)
		r.Get("/compare", compare.New(logger, catalogService).ServeHTTP)

		r.Post("/assistant/chat", chat.New(logger, advisor).ServeHTTP)
		r.Post("/geocode/reverse", geocode.New(logger, geoClient).ServeHTTP)

		r.Get("/health", health.New(logger).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
