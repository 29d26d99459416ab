package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the taxi client and its stub server.
type Config struct {
	Remote   RemoteConfig
	Client   ClientConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Stub     StubConfig
}

// RemoteConfig holds ride API connection settings.
type RemoteConfig struct {
	BaseURL string        `mapstructure:"RIDE_API_BASE_URL"`
	Timeout time.Duration `mapstructure:"RIDE_API_TIMEOUT"`
}

// ClientConfig holds screen behavior and local storage settings.
type ClientConfig struct {
	// Cooldown is the fixed window after a request completes, fails, or
	// is cancelled during which new requests are disallowed.
	Cooldown time.Duration `mapstructure:"CLIENT_COOLDOWN"`
	// ErrorDisplay is the fixed window after which a surfaced error is
	// auto-cleared if not dismissed first.
	ErrorDisplay time.Duration `mapstructure:"CLIENT_ERROR_DISPLAY"`
	// StoreBackend selects the local ride store: "memory" or "postgres".
	StoreBackend string `mapstructure:"CLIENT_STORE_BACKEND"`
	// HistoryCacheTTL bounds how long a remote history response is
	// served from Redis before the API is hit again.
	HistoryCacheTTL time.Duration `mapstructure:"CLIENT_HISTORY_CACHE_TTL"`
	// CacheEnabled toggles the Redis history cache.
	CacheEnabled bool `mapstructure:"CLIENT_CACHE_ENABLED"`
}

// PostgresConfig holds PostgreSQL connection settings for the local
// ride store.
type PostgresConfig struct {
	Host     string `mapstructure:"POSTGRES_HOST"`
	Port     int    `mapstructure:"POSTGRES_PORT"`
	User     string `mapstructure:"POSTGRES_USER"`
	Password string `mapstructure:"POSTGRES_PASSWORD"`
	DBName   string `mapstructure:"POSTGRES_DB"`
	SSLMode  string `mapstructure:"POSTGRES_SSLMODE"`
	MaxConns int32  `mapstructure:"POSTGRES_MAX_CONNS"`
	MinConns int32  `mapstructure:"POSTGRES_MIN_CONNS"`
}

// RedisConfig holds Redis connection settings for the history cache.
type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     int    `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
	PoolSize int    `mapstructure:"REDIS_POOL_SIZE"`
}

// StubConfig holds settings for the local ride API stub server.
type StubConfig struct {
	Host         string        `mapstructure:"STUB_HOST"`
	Port         int           `mapstructure:"STUB_PORT"`
	ReadTimeout  time.Duration `mapstructure:"STUB_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"STUB_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `mapstructure:"STUB_IDLE_TIMEOUT"`
}

// DSN returns the PostgreSQL connection string.
func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

// Addr returns the Redis address in host:port format.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Addr returns the stub server listen address in host:port format.
func (s *StubConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration from environment variables and .env file.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// ── Defaults ────────────────────────────────────────
	viper.SetDefault("RIDE_API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("RIDE_API_TIMEOUT", "10s")

	viper.SetDefault("CLIENT_COOLDOWN", "3s")
	viper.SetDefault("CLIENT_ERROR_DISPLAY", "3s")
	viper.SetDefault("CLIENT_STORE_BACKEND", "memory")
	viper.SetDefault("CLIENT_HISTORY_CACHE_TTL", "30s")
	viper.SetDefault("CLIENT_CACHE_ENABLED", false)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "taxiapp")
	viper.SetDefault("POSTGRES_PASSWORD", "taxiapp_secret")
	viper.SetDefault("POSTGRES_DB", "taxiapp_db")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("POSTGRES_MAX_CONNS", 10)
	viper.SetDefault("POSTGRES_MIN_CONNS", 2)

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_POOL_SIZE", 20)

	viper.SetDefault("STUB_HOST", "0.0.0.0")
	viper.SetDefault("STUB_PORT", 8080)
	viper.SetDefault("STUB_READ_TIMEOUT", "5s")
	viper.SetDefault("STUB_WRITE_TIMEOUT", "10s")
	viper.SetDefault("STUB_IDLE_TIMEOUT", "120s")

	// Try to read .env file. If it doesn't exist (e.g., inside Docker),
	// env vars injected by the environment are used instead.
	_ = viper.ReadInConfig()

	cfg := &Config{}

	// ── Remote API ──────────────────────────────────────
	cfg.Remote = RemoteConfig{
		BaseURL: viper.GetString("RIDE_API_BASE_URL"),
		Timeout: viper.GetDuration("RIDE_API_TIMEOUT"),
	}

	// ── Client behavior ─────────────────────────────────
	cfg.Client = ClientConfig{
		Cooldown:        viper.GetDuration("CLIENT_COOLDOWN"),
		ErrorDisplay:    viper.GetDuration("CLIENT_ERROR_DISPLAY"),
		StoreBackend:    viper.GetString("CLIENT_STORE_BACKEND"),
		HistoryCacheTTL: viper.GetDuration("CLIENT_HISTORY_CACHE_TTL"),
		CacheEnabled:    viper.GetBool("CLIENT_CACHE_ENABLED"),
	}

	// ── Postgres ────────────────────────────────────────
	cfg.Postgres = PostgresConfig{
		Host:     viper.GetString("POSTGRES_HOST"),
		Port:     viper.GetInt("POSTGRES_PORT"),
		User:     viper.GetString("POSTGRES_USER"),
		Password: viper.GetString("POSTGRES_PASSWORD"),
		DBName:   viper.GetString("POSTGRES_DB"),
		SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		MaxConns: viper.GetInt32("POSTGRES_MAX_CONNS"),
		MinConns: viper.GetInt32("POSTGRES_MIN_CONNS"),
	}

	// ── Redis ───────────────────────────────────────────
	cfg.Redis = RedisConfig{
		Host:     viper.GetString("REDIS_HOST"),
		Port:     viper.GetInt("REDIS_PORT"),
		Password: viper.GetString("REDIS_PASSWORD"),
		DB:       viper.GetInt("REDIS_DB"),
		PoolSize: viper.GetInt("REDIS_POOL_SIZE"),
	}

	// ── Stub server ─────────────────────────────────────
	cfg.Stub = StubConfig{
		Host:         viper.GetString("STUB_HOST"),
		Port:         viper.GetInt("STUB_PORT"),
		ReadTimeout:  viper.GetDuration("STUB_READ_TIMEOUT"),
		WriteTimeout: viper.GetDuration("STUB_WRITE_TIMEOUT"),
		IdleTimeout:  viper.GetDuration("STUB_IDLE_TIMEOUT"),
	}

	return cfg, nil
}
