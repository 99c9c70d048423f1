package observability

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nickofolas/reposterminator/internal/conf"
	"github.com/nickofolas/reposterminator/internal/errors"
	"github.com/nickofolas/reposterminator/internal/logging"
)

// Endpoint serves /healthz and /metrics for operational monitoring.
type Endpoint struct {
	echo          *echo.Echo
	listenAddress string
	log           *slog.Logger
}

// NewEndpoint creates the monitoring endpoint. It returns an error when the
// health server is not enabled in the settings.
func NewEndpoint(settings *conf.Settings, registry *prometheus.Registry) (*Endpoint, error) {
	if !settings.Monitor.Health.Enabled {
		return nil, errors.Newf("health endpoint not enabled in settings").
			Component("observability").
			Category(errors.CategoryConfiguration).
			Build()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return &Endpoint{
		echo:          e,
		listenAddress: settings.Monitor.Health.Addr,
		log:           logging.ForService("observability"),
	}, nil
}

// Start runs the HTTP server in a goroutine until the context is canceled.
func (e *Endpoint) Start(ctx context.Context) {
	go func() {
		e.log.Info("Starting health endpoint", "addr", e.listenAddress)
		if err := e.echo.Start(e.listenAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.log.Error("Health endpoint failed", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.echo.Shutdown(shutdownCtx); err != nil {
			e.log.Error("Health endpoint shutdown failed", "error", err)
		}
	}()
}
