package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"talent/internal/domain/directory"
	"talent/internal/domain/interview"
	"talent/internal/domain/pipeline"
	"talent/internal/platform/cache"
	"talent/internal/platform/config"
	"talent/internal/platform/db"
	"talent/internal/platform/jobs"
	authhandler "talent/internal/transport/http/handlers/auth"
	candidateshandler "talent/internal/transport/http/handlers/candidates"
	directoryhandler "talent/internal/transport/http/handlers/directory"
	interviewshandler "talent/internal/transport/http/handlers/interviews"
	"talent/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Cache  *cache.Client
	Router http.Handler

	cancelJobs context.CancelFunc
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	var cacheClient *cache.Client
	if cfg.RedisAddr != "" {
		cacheClient, err = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			slog.Warn("redis unavailable, statistics cache disabled", "err", err)
			cacheClient = nil
		}
	}

	directoryStore := directory.NewStore(pool)
	pipelineService := pipeline.NewService(pipeline.NewStore(pool))
	interviewService := interview.NewService(interview.NewStore(pool), directoryStore).
		WithCache(cacheClient, cfg.StatisticsCacheTTL)

	jobsCtx, cancelJobs := context.WithCancel(context.Background())
	jobsService := jobs.New(pool, cfg)
	jobsService.Start(jobsCtx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(pool, cfg.JWTSecret)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Get("/auth/me", authHandler.HandleMe)

		candidateshandler.NewHandler(pipelineService).RegisterRoutes(r)
		interviewshandler.NewHandler(interviewService, directoryStore).RegisterRoutes(r)
		directoryhandler.NewHandler(directoryStore).RegisterRoutes(r)
	})

	return &App{
		Config:     cfg,
		DB:         pool,
		Cache:      cacheClient,
		Router:     router,
		cancelJobs: cancelJobs,
	}, nil
}

func (a *App) Close() {
	if a.cancelJobs != nil {
		a.cancelJobs()
	}
	if a.Cache != nil {
		_ = a.Cache.Close()
	}
	a.DB.Close()
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("server start failed: %v", err)
	}
	defer app.Close()

	log.Printf("talent server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
