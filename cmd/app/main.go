package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skybook/skybook/api"
	"github.com/skybook/skybook/config"
	"github.com/skybook/skybook/internal/auth"
	"github.com/skybook/skybook/internal/bootstrap"
	"github.com/skybook/skybook/internal/cache"
	"github.com/skybook/skybook/internal/export"
	"github.com/skybook/skybook/internal/kafka"
	"github.com/skybook/skybook/internal/logger"
	"github.com/skybook/skybook/internal/metrics"
	"github.com/skybook/skybook/internal/pricing"
	"github.com/skybook/skybook/internal/repository"
	"github.com/skybook/skybook/internal/service/booking"
	"github.com/skybook/skybook/internal/service/finance"
	"github.com/skybook/skybook/internal/service/flights"
	"github.com/skybook/skybook/internal/service/routes"
	"github.com/skybook/skybook/internal/service/trip"
	"github.com/skybook/skybook/internal/store"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog := logger.New()
	defer func() { _ = zlog.Sync() }()

	st, cleanup, err := newStore(ctx, cfg)
	if err != nil {
		zlog.Fatalw("init store", "error", err)
	}
	defer cleanup()

	userRepo, err := repository.NewUserRepository(ctx, st, zlog)
	if err != nil {
		zlog.Fatalw("load users", "error", err)
	}
	routeRepo, err := repository.NewRouteRepository(ctx, st, zlog)
	if err != nil {
		zlog.Fatalw("load routes", "error", err)
	}
	flightRepo, err := repository.NewFlightRepository(ctx, st, zlog)
	if err != nil {
		zlog.Fatalw("load flights", "error", err)
	}
	bookingRepo, err := repository.NewBookingRepository(ctx, st, zlog)
	if err != nil {
		zlog.Fatalw("load bookings", "error", err)
	}
	financeRepo, err := repository.NewFinanceRepository(ctx, st, zlog)
	if err != nil {
		zlog.Fatalw("load expenses", "error", err)
	}

	m := metrics.New(cfg.Metrics.Namespace)
	newID := uuid.NewString

	var flightCache flights.Cache
	if cfg.Redis.Addr != "" {
		flightCache = cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	}

	var producer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
	}

	flightService := flights.NewFlightService(flightRepo, routeRepo, flightCache, newID, m, zlog)
	routeService := routes.NewRouteService(routeRepo, newID, zlog)

	bookingOpts := []booking.BookingServiceOption{
		booking.WithProcessingDelay(time.Duration(cfg.Booking.ProcessingDelayMS) * time.Millisecond),
		booking.WithMetrics(m),
	}
	financeOpts := []finance.FinanceServiceOption{finance.WithMetrics(m)}
	if producer != nil {
		bookingOpts = append(bookingOpts, booking.WithProducer(producer, cfg.Kafka.BookingEventsTopic))
		financeOpts = append(financeOpts, finance.WithProducer(producer, cfg.Kafka.BookingEventsTopic))
	}
	bookingService := booking.NewBookingService(bookingRepo, newID, zlog, bookingOpts...)
	financeService := finance.NewFinanceService(financeRepo, bookingRepo, newID, zlog, financeOpts...)

	calc := pricing.NewCalculator(nil)
	tripService := trip.NewTripService(flightService, bookingService, calc, newID, zlog)
	authService := auth.NewService(userRepo, newID, zlog)
	exporter := export.NewExporter(userRepo, routeRepo, flightRepo, bookingRepo, financeRepo)

	handlers := bootstrap.Handlers{
		Auth:        api.NewAuthHandler(authService),
		Flights:     api.NewFlightHandler(flightService),
		Routes:      api.NewRouteHandler(routeService),
		Bookings:    api.NewBookingHandler(bookingService),
		Finance:     api.NewFinanceHandler(financeService),
		Trips:       api.NewTripHandler(tripService),
		Export:      api.NewExportHandler(exporter),
		AuthService: authService,
		Metrics:     m,
	}

	zlog.Infow("starting server", "address", cfg.HTTP.Address, "store", cfg.Store.Backend)
	if err := bootstrap.Run(ctx, cfg, handlers); err != nil {
		zlog.Fatalw("server error", "error", err)
	}
}

func newStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.Store.Backend {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		pg := store.NewPGStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pg, pool.Close, nil
	case "memory":
		return store.NewMemoryStore(), func() {}, nil
	default:
		fs, err := store.NewFileStore(cfg.Store.Dir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}
}
