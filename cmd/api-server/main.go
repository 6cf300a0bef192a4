package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"bookshelf/database"
	"bookshelf/internal/config"
	"bookshelf/internal/http-api/handler"
	"bookshelf/internal/http-api/middleware"
	"bookshelf/internal/http-api/repository"
	"bookshelf/internal/http-api/router"
	"bookshelf/internal/http-api/service"
	"bookshelf/internal/logger"
	"bookshelf/internal/ratelimit"
	"bookshelf/internal/session"
	"bookshelf/internal/storage"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("server_error", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger *slog.Logger) error {
	// Connect to the database
	db, err := database.ConnectDB(cfg, appLogger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db, appLogger); err != nil {
		return err
	}

	// Sessions
	sessions, closeSessions, err := newSessionStore(cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	// Thumbnail storage
	media, err := newMediaStore(cfg)
	if err != nil {
		return err
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	shelfRepo := repository.NewShelfRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	loginLimiter := ratelimit.PerMinute(cfg.LoginRatePerMinute, cfg.LoginRateBurst)
	defer loginLimiter.Stop()

	csrf := middleware.DefaultCSRFOptions()
	csrf.CookieSecure = cfg.SessionCookieSecure

	engine, err := router.New(router.Deps{
		Logger:        appLogger,
		AuthService:   service.NewAuthService(userRepo, sessions),
		ShelfService:  service.NewShelfService(shelfRepo, reviewRepo, likeRepo, media),
		ReviewService: service.NewReviewService(reviewRepo, shelfRepo),
		LikeService:   service.NewLikeService(likeRepo, reviewRepo),
		TaskService:   service.NewTaskService(taskRepo),
		Media:         media,
		LoginLimiter:  loginLimiter,
		Cookie:        handler.CookieConfig{TTL: cfg.SessionTTL, Secure: cfg.SessionCookieSecure},
		CSRF:          csrf,
		MaxUpload:     int64(cfg.UploadMaxBytes),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		appLogger.Info("starting_http_server",
			"addr", srv.Addr,
			"session_backend", cfg.SessionBackend,
			"media_backend", cfg.MediaBackend,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		appLogger.Info("received_shutdown_signal")
	case err := <-errChan:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	appLogger.Info("server_stopped_gracefully")
	return nil
}

func newSessionStore(cfg *config.Config) (session.Store, func(), error) {
	switch cfg.SessionBackend {
	case "jwt":
		return session.NewJWTStore(cfg.JWTSecret, cfg.SessionTTL, session.NewMemoryRevoker()), func() {}, nil
	default:
		client, err := session.NewRedisClient(cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		return session.NewRedisStore(client, cfg.SessionTTL), closeRedis(client), nil
	}
}

func closeRedis(client *redis.Client) func() {
	return func() {
		if err := client.Close(); err != nil {
			slog.Warn("redis_close_failed", "error", err)
		}
	}
}

func newMediaStore(cfg *config.Config) (storage.Store, error) {
	if cfg.MediaBackend == "minio" {
		store, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	store, err := storage.NewFileStore(cfg.MediaRoot)
	if err != nil {
		return nil, err
	}
	return store, nil
}
