package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// AuthMode selects how identities are issued and resolved.
type AuthMode string

const (
	// AuthModeToken issues stateless signed bearer tokens.
	AuthModeToken AuthMode = "token"
	// AuthModeSession issues opaque server-side sessions backed by Redis.
	AuthModeSession AuthMode = "session"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Currency CurrencyConfig
	OTel     OTelConfig
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Debug       bool
	Version     string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// MongoDBConfig holds MongoDB connection settings
type MongoDBConfig struct {
	URI                    string
	Database               string
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Addr returns the Redis address
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// AuthConfig holds authentication settings
type AuthConfig struct {
	Mode          AuthMode
	JWTSecret     string
	TokenTTL      time.Duration // bearer token validity
	SessionTTL    time.Duration // server-side session validity
	SessionCookie string
	BcryptCost    int
}

// CurrencyConfig holds currency proxy settings
type CurrencyConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	CacheTTL       time.Duration
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled       bool
	CollectorAddr string
	SampleRatio   float64
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// .env is optional, environment variables still apply
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			_ = err
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{}
	bindConfig(v, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithPath loads configuration from a specific file
func LoadWithPath(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{}
	bindConfig(v, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("APP_NAME", "travel-brain")
	v.SetDefault("APP_ENVIRONMENT", "development")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("APP_VERSION", "1.0.0")

	// Server defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 3004)
	v.SetDefault("SERVER_READ_TIMEOUT", "30s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "30s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "120s")

	// MongoDB defaults
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "travel_brain")
	v.SetDefault("MONGODB_SERVER_SELECTION_TIMEOUT", "30s")
	v.SetDefault("MONGODB_SOCKET_TIMEOUT", "45s")

	// Redis defaults
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 100)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 10)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "5s")
	v.SetDefault("REDIS_READ_TIMEOUT", "3s")
	v.SetDefault("REDIS_WRITE_TIMEOUT", "3s")

	// Auth defaults
	v.SetDefault("AUTH_MODE", "token")
	v.SetDefault("AUTH_JWT_SECRET", defaultJWTSecret)
	v.SetDefault("AUTH_TOKEN_TTL", "168h") // 7 days
	v.SetDefault("AUTH_SESSION_TTL", "24h")
	v.SetDefault("AUTH_SESSION_COOKIE", "sid")
	v.SetDefault("AUTH_BCRYPT_COST", 10)

	// Currency defaults
	v.SetDefault("CURRENCY_BASE_URL", "https://api.frankfurter.app")
	v.SetDefault("CURRENCY_REQUEST_TIMEOUT", "10s")
	v.SetDefault("CURRENCY_CACHE_TTL", "1h")

	// OTel defaults
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_COLLECTOR_ADDR", "localhost:4317")
	v.SetDefault("OTEL_SAMPLE_RATIO", 1.0)
}

func bindConfig(v *viper.Viper, cfg *Config) {
	// App
	cfg.App.Name = v.GetString("APP_NAME")
	cfg.App.Environment = v.GetString("APP_ENVIRONMENT")
	cfg.App.Debug = v.GetBool("APP_DEBUG")
	cfg.App.Version = v.GetString("APP_VERSION")

	// Server
	cfg.Server.Host = v.GetString("SERVER_HOST")
	cfg.Server.Port = v.GetInt("SERVER_PORT")
	cfg.Server.ReadTimeout = v.GetDuration("SERVER_READ_TIMEOUT")
	cfg.Server.WriteTimeout = v.GetDuration("SERVER_WRITE_TIMEOUT")
	cfg.Server.IdleTimeout = v.GetDuration("SERVER_IDLE_TIMEOUT")

	// MongoDB
	cfg.MongoDB.URI = v.GetString("MONGODB_URI")
	cfg.MongoDB.Database = v.GetString("MONGODB_DATABASE")
	cfg.MongoDB.ServerSelectionTimeout = v.GetDuration("MONGODB_SERVER_SELECTION_TIMEOUT")
	cfg.MongoDB.SocketTimeout = v.GetDuration("MONGODB_SOCKET_TIMEOUT")

	// Redis
	cfg.Redis.Host = v.GetString("REDIS_HOST")
	cfg.Redis.Port = v.GetInt("REDIS_PORT")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")
	cfg.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")
	cfg.Redis.MinIdleConns = v.GetInt("REDIS_MIN_IDLE_CONNS")
	cfg.Redis.DialTimeout = v.GetDuration("REDIS_DIAL_TIMEOUT")
	cfg.Redis.ReadTimeout = v.GetDuration("REDIS_READ_TIMEOUT")
	cfg.Redis.WriteTimeout = v.GetDuration("REDIS_WRITE_TIMEOUT")

	// Auth
	cfg.Auth.Mode = AuthMode(v.GetString("AUTH_MODE"))
	cfg.Auth.JWTSecret = v.GetString("AUTH_JWT_SECRET")
	cfg.Auth.TokenTTL = v.GetDuration("AUTH_TOKEN_TTL")
	cfg.Auth.SessionTTL = v.GetDuration("AUTH_SESSION_TTL")
	cfg.Auth.SessionCookie = v.GetString("AUTH_SESSION_COOKIE")
	cfg.Auth.BcryptCost = v.GetInt("AUTH_BCRYPT_COST")

	// Currency
	cfg.Currency.BaseURL = v.GetString("CURRENCY_BASE_URL")
	cfg.Currency.RequestTimeout = v.GetDuration("CURRENCY_REQUEST_TIMEOUT")
	cfg.Currency.CacheTTL = v.GetDuration("CURRENCY_CACHE_TTL")

	// OTel
	cfg.OTel.Enabled = v.GetBool("OTEL_ENABLED")
	cfg.OTel.CollectorAddr = v.GetString("OTEL_COLLECTOR_ADDR")
	cfg.OTel.SampleRatio = v.GetFloat64("OTEL_SAMPLE_RATIO")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Auth.Mode != AuthModeToken && c.Auth.Mode != AuthModeSession {
		return fmt.Errorf("invalid auth mode: %q (must be %q or %q)", c.Auth.Mode, AuthModeToken, AuthModeSession)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	// The embedded default secret is acceptable only outside production
	if c.IsProduction() && c.Auth.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT secret must be changed in production")
	}

	if c.MongoDB.URI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.MongoDB.Database == "" {
		return fmt.Errorf("MONGODB_DATABASE is required")
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
