// Package businessform собирает приложение мастера подбора формы бизнеса:
// хранилище архива, Redis для снимков сессий, таблицы правил и HTTP-сервер.
package businessform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/EgorCode/businessform-sub002/internal/cache"
	"github.com/EgorCode/businessform-sub002/internal/config"
	"github.com/EgorCode/businessform-sub002/internal/migrations"
	"github.com/EgorCode/businessform-sub002/internal/rules"
	wizardservice "github.com/EgorCode/businessform-sub002/internal/services/wizard"
	"github.com/EgorCode/businessform-sub002/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Таблицы правил грузятся один раз и далее только читаются.
	ruleSet, err := rules.Load(cfg.RulesPath, cfg.FiscalYear)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded tax rules", slog.Int("fiscal_year", ruleSet.FiscalYear))

	sessionTTL := cfg.SessionTTL
	if sessionTTL == 0 {
		sessionTTL = 30 * time.Minute
	}
	wizardService := wizardservice.New(cacheRedis, db, ruleSet, sessionTTL, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, wizardService)

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
		_ = a.db.DB.Close()
		return err
	}
}
