// Package courseplatform собирает основное HTTP-приложение платформы:
// хранилище, кэш, gRPC-клиент авторизации, сервисы и маршруты.
package courseplatform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	_ "github.com/courseforge/course-platform/docs"
	"github.com/courseforge/course-platform/internal/cache"
	"github.com/courseforge/course-platform/internal/config"
	"github.com/courseforge/course-platform/internal/grpc/client"
	"github.com/courseforge/course-platform/internal/migrations"
	"github.com/courseforge/course-platform/internal/paymentprovider"
	accessservice "github.com/courseforge/course-platform/internal/services/access"
	blogservice "github.com/courseforge/course-platform/internal/services/blog"
	courseservice "github.com/courseforge/course-platform/internal/services/course"
	paymentservice "github.com/courseforge/course-platform/internal/services/payment"
	progressservice "github.com/courseforge/course-platform/internal/services/progress"
	"github.com/courseforge/course-platform/internal/storage"
)

// App объединяет HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New создает приложение: подключает базу данных, применяет миграции,
// инициализирует Redis, gRPC-клиент авторизации и все сервисы.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	authClient, err := client.NewAuthClient(cfg.GRPCAuthAddress)
	if err != nil {
		return nil, err
	}

	providerClient := paymentprovider.NewClient(cfg.ShopID, cfg.ProviderKey, cfg.ProviderURL)

	accessService := accessservice.New(db, db, cacheRedis, logger)
	courseService := courseservice.New(db, cacheRedis, logger)
	blogService := blogservice.New(db, cacheRedis, logger)
	progressService := progressservice.New(db, logger)
	paymentService := paymentservice.New(db, providerClient, accessService, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, &Services{
		Auth:     authClient,
		Access:   accessService,
		Course:   courseService,
		Blog:     blogService,
		Progress: progressService,
		Payment:  paymentService,
		Stats:    db,
		Ready:    func() error { return storage.CheckDatabaseReady(db) },
	}, cfg.WebhookSecretKey)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
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
		a.db.DB.Close()
		return err
	}
}
