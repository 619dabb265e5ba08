package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mertkaracam/theater-chain-system/internal/domain"
	"github.com/mertkaracam/theater-chain-system/internal/repository"
	appvalidator "github.com/mertkaracam/theater-chain-system/internal/validator"
	"github.com/mertkaracam/theater-chain-system/internal/vcs"
	"github.com/mertkaracam/theater-chain-system/internal/worker"
	"github.com/redis/go-redis/v9"
)

var (
	version = vcs.Version()
)

type application struct {
	config    config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate
	clock     domain.Clock

	chainRepo domain.TheaterChainRepository
}

type config struct {
	port             int
	env              string
	otelCollectorUrl string
	db               struct {
		dsn          string
		maxOpenConns int
		maxIdleTime  time.Duration
	}
	redis struct {
		url          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  time.Duration
	}
	sweep struct {
		interval time.Duration
	}
}

func Run() error {
	var cfg config

	flag.IntVar(&cfg.port, "port", 3000, "server port")
	flag.StringVar(&cfg.env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.otelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	flag.StringVar(&cfg.db.dsn, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.db.maxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.redis.url, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.redis.maxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.redis.maxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.redis.maxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.DurationVar(&cfg.sweep.interval, "sweep-interval", time.Minute, "Expired reservation sweep interval")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	validator := appvalidator.NewValidator()

	db, err := newDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := newRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	clock := domain.UTCClock{}

	app := &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		redis:     redisClient,
		validator: validator,
		clock:     clock,
		chainRepo: repository.NewPostgresTheaterChainRepository(db, clock),
	}

	shutdownTelemetry, err := app.initTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.run()
}

func newRedisClient(cfg config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.redis.url,
		MaxIdleConns:    cfg.redis.maxIdleConns,
		MaxActiveConns:  cfg.redis.maxOpenConns,
		ConnMaxIdleTime: cfg.redis.maxIdleTime,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func newDatabasePool(cfg config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.db.maxIdleTime
	config.MaxConns = int32(cfg.db.maxOpenConns)

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	sweeper := worker.NewReservationSweeper(app.chainRepo, app.logger, app.config.sweep.interval)
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go sweeper.Start(sweepCtx)

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		stopSweeper()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		stopSweeper()
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(app.recoverPanic)

	r.Get("/health", app.GetHealth)

	r.Route("/v1/theater-chains", func(r chi.Router) {
		r.Post("/", app.CreateTheaterChain)

		r.Route("/{chainID}", func(r chi.Router) {
			r.Get("/", app.GetTheaterChain)

			r.Route("/movies", func(r chi.Router) {
				r.Get("/", app.GetMovies)
				r.Post("/", app.AddMovie)
				r.Get("/{movieID}", app.GetMovie)
				r.Put("/{movieID}", app.UpdateMovie)
				r.Put("/{movieID}/no-longer-available", app.MarkMovieAsNoLongerAvailable)
				r.Put("/{movieID}/available", app.MarkMovieAsAvailable)
			})

			r.Route("/theaters", func(r chi.Router) {
				r.Get("/", app.GetTheaters)
				r.Post("/", app.AddTheater)

				r.Route("/{theaterID}", func(r chi.Router) {
					r.Get("/", app.GetTheater)
					r.Put("/", app.UpdateTheater)
					r.Delete("/", app.RemoveTheater)
					r.Get("/movies", app.GetTheaterMoviesWithActiveShowtimes)

					r.Route("/screens", func(r chi.Router) {
						r.Post("/", app.AddScreen)
						r.Put("/{screenID}", app.UpdateScreen)
						r.Put("/{screenID}/disable", app.DisableScreen)
						r.Put("/{screenID}/reenable", app.ReenableScreen)
					})

					r.Route("/showtimes", func(r chi.Router) {
						r.Get("/", app.GetActiveShowtimes)
						r.Post("/", app.AddShowtime)
						r.Put("/{showtimeID}", app.UpdateShowtime)
						r.Delete("/{showtimeID}", app.RemoveShowtime)

						r.Route("/{showtimeID}/reservations", func(r chi.Router) {
							r.Post("/", app.ReserveSeats)
							r.Put("/{reservationID}/confirm", app.ConfirmReservation)
						})
					})
				})
			})
		})
	})

	return r
}
