package main

import (
	"fmt"
	"time"

	"storefront/internal/ratelimiter"

	"github.com/kelseyhightower/envconfig"
)

type config struct {
	addr        string
	env         string
	apiURL      string
	frontendURL string
	storage     storageConfig
	db          dbConfig
	redis       redisConfig
	accounts    accountsConfig
	auth        authConfig
	cookie      cookieConfig
	rateLimiter ratelimiter.Config
	contextIdle time.Duration
	cloudinary  string
}

type storageConfig struct {
	driver string
	quota  int
	ttl    time.Duration
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
}

type redisConfig struct {
	addr     string
	password string
	db       int
}

type accountsConfig struct {
	url     string
	timeout time.Duration
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type basicConfig struct {
	user string
	pass string
}

type tokenConfig struct {
	secret string
	exp    time.Duration
	iss    string
}

type cookieConfig struct {
	secure bool
}

// envSpec is the raw environment. Every variable has a default except the
// context token secret.
type envSpec struct {
	Addr        string `envconfig:"ADDR" default:":8080"`
	Env         string `envconfig:"ENV" default:"development"`
	ExternalURL string `envconfig:"EXTERNAL_URL" default:"localhost:8080"`
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:5173"`

	StorageDriver string        `envconfig:"STORAGE_DRIVER" default:"memory"`
	StorageQuota  int           `envconfig:"STORAGE_QUOTA_BYTES" default:"5242880"`
	StorageTTL    time.Duration `envconfig:"STORAGE_TTL" default:"720h"`

	DBAddr        string `envconfig:"DB_ADDR"`
	DBMaxConns    int32  `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	DBMaxIdleTime string `envconfig:"DB_MAX_IDLE_TIME" default:"15m"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	AccountsURL     string        `envconfig:"ACCOUNTS_URL" default:"http://127.0.0.1:8000"`
	AccountsTimeout time.Duration `envconfig:"ACCOUNTS_TIMEOUT" default:"10s"`

	BasicUser string `envconfig:"AUTH_BASIC_USER" default:"admin"`
	BasicPass string `envconfig:"AUTH_BASIC_PASS"`

	ContextSecret   string        `envconfig:"CONTEXT_TOKEN_SECRET" required:"true"`
	ContextTokenExp time.Duration `envconfig:"CONTEXT_TOKEN_EXP" default:"720h"`
	ContextIdle     time.Duration `envconfig:"CONTEXT_IDLE_TIMEOUT" default:"30m"`
	CookieSecure    bool          `envconfig:"COOKIE_SECURE" default:"false"`

	CloudinaryURL string `envconfig:"CLOUDINARY_URL"`

	RateLimiterRequests int  `envconfig:"RATELIMITER_REQUESTS_COUNT" default:"20"`
	RateLimiterEnabled  bool `envconfig:"RATE_LIMITER_ENABLED" default:"true"`
}

func loadConfig() (config, error) {
	var env envSpec
	if err := envconfig.Process("", &env); err != nil {
		return config{}, fmt.Errorf("failed to load config: %w", err)
	}

	if env.ContextSecret == "" {
		return config{}, fmt.Errorf("CONTEXT_TOKEN_SECRET must not be empty")
	}

	switch env.StorageDriver {
	case "memory", "redis":
	case "postgres":
		if env.DBAddr == "" {
			return config{}, fmt.Errorf("DB_ADDR is required for the postgres storage driver")
		}
	default:
		return config{}, fmt.Errorf("unknown STORAGE_DRIVER %q", env.StorageDriver)
	}

	return config{
		addr:        env.Addr,
		env:         env.Env,
		apiURL:      env.ExternalURL,
		frontendURL: env.FrontendURL,
		storage: storageConfig{
			driver: env.StorageDriver,
			quota:  env.StorageQuota,
			ttl:    env.StorageTTL,
		},
		db: dbConfig{
			addr:        env.DBAddr,
			maxConns:    env.DBMaxConns,
			maxIdleTime: env.DBMaxIdleTime,
		},
		redis: redisConfig{
			addr:     env.RedisAddr,
			password: env.RedisPassword,
			db:       env.RedisDB,
		},
		accounts: accountsConfig{
			url:     env.AccountsURL,
			timeout: env.AccountsTimeout,
		},
		auth: authConfig{
			basic: basicConfig{
				user: env.BasicUser,
				pass: env.BasicPass,
			},
			token: tokenConfig{
				secret: env.ContextSecret,
				exp:    env.ContextTokenExp,
				iss:    "storefront",
			},
		},
		cookie:      cookieConfig{secure: env.CookieSecure},
		contextIdle: env.ContextIdle,
		cloudinary:  env.CloudinaryURL,
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: env.RateLimiterRequests,
			TimeFrame:            time.Minute,
			Enabled:              env.RateLimiterEnabled,
		},
	}, nil
}
