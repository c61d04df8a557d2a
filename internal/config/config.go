package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Env   string `env:"APP_ENV" envDefault:"dev"`
	Port  int    `env:"PORT" envDefault:"8080"`
	Store string `env:"APP_STORE" envDefault:"postgres"`

	// DBURL wins over the individual DB_* parts when set.
	DBURL      string `env:"DATABASE_URL"`
	DBHost     string `env:"DB_HOST" envDefault:"127.0.0.1"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"authhub"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"authhub"`
	DBName     string `env:"DB_NAME" envDefault:"authhub"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// JWTSecret signs every access token. It is read once at startup.
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	RedisAddr      string `env:"REDIS_ADDR"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	ActivityStream string `env:"ACTIVITY_STREAM" envDefault:"authhub:activity"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"authhub"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	MaxBodyBytes       int64    `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	SeedEmail    string `env:"SEED_EMAIL"`
	SeedPassword string `env:"SEED_PASSWORD"`
}

// Load reads an optional .env file and then the process environment.
// A missing JWT_SECRET is a startup error.
func Load() (Config, error) {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DBURL == "" {
		cfg.DBURL = cfg.buildDBURL()
	}

	switch cfg.Store {
	case StorePostgres, StoreMemory:
	default:
		return Config{}, fmt.Errorf("APP_STORE must be %q or %q, got %q", StorePostgres, StoreMemory, cfg.Store)
	}

	return cfg, nil
}

func (c Config) buildDBURL() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
