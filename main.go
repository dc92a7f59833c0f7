package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-tracker/internal/cache"
	"finance-tracker/internal/config"
	"finance-tracker/internal/controllers"
	"finance-tracker/internal/database"
	"finance-tracker/internal/jwt"
	"finance-tracker/internal/logging"
	"finance-tracker/internal/repository"
	"finance-tracker/internal/repository/memory"
	"finance-tracker/internal/server"
	"finance-tracker/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()
	log := logging.NewJSONLogger(cfg.SlogLevel())

	if err := cfg.Validate(); err != nil {
		log.Error(ctx, "invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	// Initialize repositories
	var (
		userRepo repository.UserRepository
		txRepo   repository.TransactionRepository
	)
	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		userRepo, txRepo = store.Users(), store.Transactions()
		log.Warn(ctx, "using in-memory storage; data is lost on exit")
	default:
		db, err := database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close() // Close connection when program exits

		// Run database migrations
		if err := database.RunMigrations(ctx, db); err != nil {
			return err
		}
		userRepo = repository.NewUserRepository(db)
		txRepo = repository.NewTransactionRepository(db)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		c, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn(ctx, "failed to connect to Redis, continuing without cache", "error", err)
		} else {
			log.Info(ctx, "connected to Redis cache")
			cacheClient = c
			defer c.Close()
		}
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	txService := service.NewTransactionService(txRepo, cacheClient, time.Duration(cfg.CacheTTLSeconds)*time.Second, log)

	router := server.NewRouter(server.Dependencies{
		AuthController:        controllers.NewAuthController(authService, log),
		TransactionController: controllers.NewTransactionController(txService, log),
		JWTService:            jwtService,
		Logger:                log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "server starting", "addr", srv.Addr, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
