package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string  `env:"PORT,          default=8080"`
	Env           string  `env:"ENV,           default=development"`
	LogLevel      string  `env:"LOG_LEVEL,     default=info"`
	VisitorSecret string  `env:"VISITOR_SECRET"`
	GSTPercent    float64 `env:"GST_PERCENT,   default=18"`

	API   APIConfig
	Redis RedisConfig
}

type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=https://api.diycomponents.in"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=30s"`
}

type RedisConfig struct {
	Addr          string        `env:"REDIS_ADDR,           default=localhost:6379"`
	DB            int           `env:"REDIS_DB,             default=0"`
	PoolSize      int           `env:"REDIS_POOL_SIZE,      default=10"`
	MinIdleConns  int           `env:"REDIS_MIN_IDLE_CONNS, default=2"`
	CacheTTL      time.Duration `env:"CATALOG_CACHE_TTL,    default=5m"`
	CredentialTTL time.Duration `env:"CREDENTIAL_TTL,       default=720h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
