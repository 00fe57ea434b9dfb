package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io/fs"
	"log"
	"os"
	"runtime"

	"storefront/internal/accounts"
	"storefront/internal/auth"
	"storefront/internal/browsing"
	"storefront/internal/cart"
	"storefront/internal/clientstore"
	"storefront/internal/db"
	"storefront/internal/images"
	"storefront/internal/metrics"
	"storefront/internal/ratelimiter"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

var version = "0.3.0"

//	@title			Storefront API
//	@description	Session gating and local cart for the storefront.

//	@BasePath	/v1

func main() {
	// a missing .env is fine, the environment may already be set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider, closeStorage, err := newStorageProvider(ctx, cfg)
	if err != nil {
		logger.Fatal(err)
	}
	defer closeStorage()
	logger.Infow("client storage ready", "driver", cfg.storage.driver)

	contexts := browsing.NewRegistry(provider,
		cart.WithLogger(logger),
		cart.WithErrorSink(func(action string, err error) {
			metrics.CartPersistFailures.WithLabelValues(action).Inc()
			logger.Errorw("cart not persisted", "action", action, "error", err)
		}),
	)
	if cfg.contextIdle > 0 {
		go contexts.RunSweeper(ctx, cfg.contextIdle/2, cfg.contextIdle, func(n int) {
			metrics.BrowsingContexts.Set(float64(contexts.Len()))
			logger.Infow("idle browsing contexts dropped", "count", n)
		})
	}

	resolver, err := images.NewResolver(cfg.cloudinary)
	if err != nil {
		logger.Fatal(err)
	}

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)
	go rateLimiter.Run(ctx)

	app := &application{
		config:   cfg,
		logger:   logger,
		contexts: contexts,
		authenticator: auth.NewJWTAuthenticator(
			cfg.auth.token.secret,
			cfg.auth.token.iss,
			cfg.auth.token.iss,
			cfg.auth.token.exp,
		),
		accounts: accounts.NewClient(accounts.Config{
			BaseURL: cfg.accounts.url,
			Timeout: cfg.accounts.timeout,
		}, logger),
		images:      resolver,
		rateLimiter: rateLimiter,
	}

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("browsing_contexts", expvar.Func(func() any {
		return contexts.Len()
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}

// newStorageProvider opens the configured client storage backend. The
// returned func releases its connections.
func newStorageProvider(ctx context.Context, cfg config) (clientstore.Provider, func(), error) {
	switch cfg.storage.driver {
	case "redis":
		client, err := clientstore.NewRedisClient(ctx, cfg.redis.addr, cfg.redis.password, cfg.redis.db)
		if err != nil {
			return nil, nil, err
		}
		return clientstore.NewRedis(client, cfg.storage.ttl), func() { _ = client.Close() }, nil

	case "postgres":
		pool, err := db.New(cfg.db.addr, cfg.db.maxConns, cfg.db.maxIdleTime)
		if err != nil {
			return nil, nil, err
		}
		pg := clientstore.NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pg, pool.Close, nil

	default:
		return clientstore.NewMemory(cfg.storage.quota), func() {}, nil
	}
}
