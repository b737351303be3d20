package internal

import (
	"context"
	"errors"
	"fmt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"os/signal"
	"repopulse/internal/checkpoint"
	"repopulse/internal/controllers"
	"repopulse/internal/providers"
	"repopulse/internal/services"
	"repopulse/internal/structures"
	"strconv"
	"syscall"
	"time"
)

type App struct {
	// WebServer is the status server; nil when metrics are disabled.
	WebServer *http.Server

	conf     *structures.Config
	logger   providers.Logger
	pipeline services.PipelineServiceInterface
	store    checkpoint.StoreInterface
}

func NewApp(historyController *controllers.HistoryController, healthController *controllers.HealthController, pipeline services.PipelineServiceInterface, store checkpoint.StoreInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	app := &App{
		conf:     conf,
		logger:   logger,
		pipeline: pipeline,
		store:    store,
	}
	if !conf.Metrics.Enabled {
		return app
	}

	// Inner mux: history routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}
	instrumentedAPI := providers.MetricsMiddleware(metrics, apiMux)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", instrumentedAPI)

	app.WebServer = &http.Server{
		Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return app
}

// Run executes one pipeline run, serving the status endpoints meanwhile.
// SIGINT and SIGTERM cancel the run; the checkpoint keeps every repository
// finished before the signal.
func (a *App) Run(ctx context.Context) (services.RunSummary, error) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)

	serverErr := make(chan error, 1)
	if a.WebServer != nil {
		go func() {
			a.logger.Infof(providers.TypeApp, "Status server listening on %s", a.WebServer.Addr)
			if err := a.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
				cancel()
			}
		}()
	}

	summary, runErr := a.pipeline.Run(ctx)
	if errors.Is(runErr, context.Canceled) {
		a.logger.Infof(providers.TypeApp, "Shutdown signal received, run interrupted")
	}

	if a.WebServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := a.WebServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Errorf(providers.TypeApp, "Status server shutdown: %s", err)
		}
	}

	select {
	case err := <-serverErr:
		return summary, fmt.Errorf("server error: %w", err)
	default:
	}
	if runErr != nil {
		return summary, runErr
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return summary, nil
}

func (a *App) Close() {
	a.store.Close()
	a.logger.Close()
}
