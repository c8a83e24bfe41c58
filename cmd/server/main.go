package main

import (
	"context"
	"encoding/hex"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/intega-app/intega/internal/api"
	"github.com/intega-app/intega/internal/factory"
	redisstorage "github.com/intega-app/intega/internal/storage/redis"
	"github.com/intega-app/intega/internal/web"
	"github.com/intega-app/intega/internal/web/templates"
)

func main() {
	// Environment from .env when present, real env wins
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	if cfg.StorageType == factory.StorageTypePostgres {
		cfg.PostgresDSN = os.Getenv("DATABASE_DSN")
		if cfg.PostgresDSN == "" {
			logger.Error("DATABASE_DSN required when STORAGE_TYPE=postgres")
			os.Exit(1)
		}
	}

	cfg.SessionHashKey = keyFromEnv(logger, "INTEGA_SESSION_HASH_KEY")
	cfg.SessionBlockKey = keyFromEnv(logger, "INTEGA_SESSION_BLOCK_KEY")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create application factory
	app, err := factory.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	renderer, err := templates.New()
	if err != nil {
		logger.Error("failed to parse templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		Binder:      app.Binder,
		Store:       app.Store,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		Binder:      app.Binder,
		Store:       app.Store,
		Renderer:    renderer,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// keyFromEnv decodes a hex-encoded cookie key from the environment.
// Returns nil when unset, leaving the fallback to the factory.
func keyFromEnv(logger *slog.Logger, name string) []byte {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	key, err := hex.DecodeString(raw)
	if err != nil {
		logger.Error("invalid key, expected hex", slog.String("var", name))
		os.Exit(1)
	}
	return key
}
