package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store drivers
const (
	DriverRedis  = "redis"
	DriverMemory = "memory"
	DriverBolt   = "bolt"
)

type RedisConfig struct {
	// URL is a redis:// connection string. When set it wins over Host/Port.
	URL          string        `envconfig:"REDIS_URL"`
	Host         string        `envconfig:"REDIS_HOST" default:"localhost"`
	Port         string        `envconfig:"REDIS_PORT" default:"6379"`
	Password     string        `envconfig:"REDIS_PASSWORD"`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	KeyPrefix    string        `envconfig:"REDIS_KEY_PREFIX"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
}

// Addr returns host:port
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type BoltConfig struct {
	Path          string        `envconfig:"BOLT_PATH" default:"gamecache.bbolt"`
	Bucket        string        `envconfig:"BOLT_BUCKET" default:"cache"`
	PurgeInterval time.Duration `envconfig:"BOLT_PURGE_INTERVAL" default:"5m"`
}

type Config struct {
	AppEnv          string        `envconfig:"APP_ENV" default:"development"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	StoreDriver           string        `envconfig:"STORE_DRIVER" default:"redis"`
	MemoryCleanupInterval time.Duration `envconfig:"MEMORY_CLEANUP_INTERVAL" default:"1m"`
	Redis                 RedisConfig   `ignored:"true"`
	Bolt                  BoltConfig    `ignored:"true"`

	GamesCacheKey string        `envconfig:"GAMES_CACHE_KEY" default:"Games_Cache"`
	GamesCacheTTL time.Duration `envconfig:"GAMES_CACHE_TTL" default:"60s"`

	RateLimitRPS       float64  `envconfig:"RATE_LIMIT_RPS" default:"1"`
	RateLimitBurst     int      `envconfig:"RATE_LIMIT_BURST" default:"5"`
	RateLimitWhitelist []string `envconfig:"RATE_LIMIT_WHITELIST" default:"127.0.0.1"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"https://*,http://localhost:8080"`
}

// FromEnv loads and validates the configuration from the environment
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Redis); err != nil {
		return Config{}, fmt.Errorf("load redis config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Bolt); err != nil {
		return Config{}, fmt.Errorf("load bolt config: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(cfg.StoreDriver)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverRedis, DriverMemory, DriverBolt:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: must be one of redis, memory, bolt", c.StoreDriver)
	}
	if c.GamesCacheKey == "" {
		return fmt.Errorf("GAMES_CACHE_KEY cannot be empty")
	}
	if c.GamesCacheTTL <= 0 {
		return fmt.Errorf("GAMES_CACHE_TTL must be positive, got %s", c.GamesCacheTTL)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v rps burst %d", c.RateLimitRPS, c.RateLimitBurst)
	}
	return nil
}
