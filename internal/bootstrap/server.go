package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skybook/skybook/api"
	"github.com/skybook/skybook/config"
	"github.com/skybook/skybook/internal/auth"
	"github.com/skybook/skybook/internal/metrics"
)

// Handlers bundles everything the HTTP server exposes.
type Handlers struct {
	Auth     *api.AuthHandler
	Flights  *api.FlightHandler
	Routes   *api.RouteHandler
	Bookings *api.BookingHandler
	Finance  *api.FinanceHandler
	Trips    *api.TripHandler
	Export   *api.ExportHandler

	AuthService *auth.Service
	Metrics     *metrics.Metrics
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, h Handlers) error {
	engine := newEngine(h)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newEngine(h Handlers) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(auth.Middleware(h.AuthService))
	engine.Use(api.CountErrors(h.Metrics))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1")
	h.Auth.Register(v1.Group("/auth"))
	h.Flights.Register(v1.Group("/flights"))
	h.Routes.Register(v1.Group("/routes"))
	h.Bookings.Register(v1.Group("/bookings"))
	h.Finance.Register(v1.Group("/finance"))
	h.Trips.Register(v1.Group("/trips"))
	h.Export.Register(v1.Group("/export"))

	return engine
}
