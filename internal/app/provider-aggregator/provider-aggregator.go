package provideraggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/provider-aggregator/internal/assistant"
	"github.com/magabrotheeeer/provider-aggregator/internal/cache"
	"github.com/magabrotheeeer/provider-aggregator/internal/config"
	"github.com/magabrotheeeer/provider-aggregator/internal/geocoding"
	"github.com/magabrotheeeer/provider-aggregator/internal/migrations"
	"github.com/magabrotheeeer/provider-aggregator/internal/rabbitmq"
	catalogservice "github.com/magabrotheeeer/provider-aggregator/internal/services/catalog"
	recservice "github.com/magabrotheeeer/provider-aggregator/internal/services/recommendation"
	"github.com/magabrotheeeer/provider-aggregator/internal/storage"
	"github.com/magabrotheeeer/provider-aggregator/internal/storage/memstorage"
)

// Repository объединяет требования обоих сервисов к хранилищу.
// Его реализуют и postgres-хранилище, и хранилище в памяти.
type Repository interface {
	catalogservice.Repository
	recservice.Repository
}

type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *storage.Storage // nil при хранилище в памяти
	amqpConn *amqp.Connection // nil, если очередь аналитики не сконфигурирована
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	var repo Repository
	var db *storage.Storage

	switch cfg.StorageDriver {
	case "postgres":
		var err error
		db, err = storage.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		if err = migrations.Run(db.DB, "./migrations"); err != nil {
			return nil, err
		}
		repo = db
		logger.Info("using postgres storage")
	case "memory":
		repo = memstorage.New()
		logger.Info("using in-memory storage")
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.StorageDriver)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var publisher recservice.AnalyticsPublisher
	var amqpConn *amqp.Connection
	if cfg.RabbitMQConnection != "" {
		amqpConn, err = rabbitmq.Connect(cfg.RabbitMQConnection, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetAnalyticsQueues())
		if err != nil {
			return nil, err
		}
		publisher = rabbitmq.NewPublisher(ch)
		logger.Info("analytics queue connected")
	} else {
		logger.Info("analytics queue is not configured, preferences are stored only")
	}

	catalogSvc := catalogservice.NewCatalogService(repo, cacheRedis, logger)
	recommendationSvc := recservice.NewRecommendationService(repo, publisher, logger)
	// Внешний AI-клиент не подключен: консультант отвечает по правилам.
	advisor := assistant.NewAdvisor(nil, logger)
	geoClient := geocoding.NewClient(cfg.NominatimURL, cfg.UserAgent, cfg.Geocoding.Timeout)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, catalogSvc, recommendationSvc, advisor, geoClient)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		amqpConn: amqpConn,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.db != nil {
			a.db.DB.Close()
		}
		if a.amqpConn != nil {
			a.amqpConn.Close()
		}
		return err
	}
}
