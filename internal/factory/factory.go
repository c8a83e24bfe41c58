package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/gorilla/securecookie"

	"github.com/intega-app/intega/internal/dependencies/clock"
	"github.com/intega-app/intega/internal/services/auth"
	"github.com/intega-app/intega/internal/services/session"
	"github.com/intega-app/intega/internal/storage"
	"github.com/intega-app/intega/internal/storage/memory"
	"github.com/intega-app/intega/internal/storage/postgres"
	redisstorage "github.com/intega-app/intega/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	Store storage.UserStore

	Clock clock.Clock

	AuthService *auth.Service
	Binder      *session.Binder
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresDSN is the database connection string (required if StorageType is "postgres")
	PostgresDSN string
	// SessionHashKey authenticates session cookies. If nil, an ephemeral
	// key is generated and sessions do not survive restarts.
	SessionHashKey []byte
	// SessionBlockKey encrypts session cookies (optional)
	SessionBlockKey []byte
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.UserStore
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypePostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("PostgresDSN required when StorageType is postgres")
		}
		pgStore, err := postgres.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	hashKey := cfg.SessionHashKey
	if hashKey == nil {
		logger.Warn("no session hash key configured, sessions will not survive restarts")
		hashKey = securecookie.GenerateRandomKey(64)
	}

	return newWithDependencies(store, clock.New(), hashKey, cfg.SessionBlockKey, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.UserStore, clk clock.Clock, hashKey, blockKey []byte, logger *slog.Logger) *App {
	cookieStore := session.NewCookieStore(hashKey, blockKey)

	return &App{
		Store:       store,
		Clock:       clk,
		AuthService: auth.New(store, clk, logger),
		Binder:      session.NewBinder(cookieStore, store),
	}
}
