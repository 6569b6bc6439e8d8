package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Review   ReviewConfig
	Uploads  UploadConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host             string
	Port             string
	User             string
	Password         string
	Name             string
	SSLMode          string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
	StatementTimeout time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL string
}

// CacheConfig holds caching TTL configuration for the product catalog.
// Review collections and rating statistics are never cached.
type CacheConfig struct {
	ProductListTTL   time.Duration
	ProductDetailTTL time.Duration
}

// AuthConfig holds JWT signing configuration
type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
}

// ReviewConfig holds review submission policy configuration
type ReviewConfig struct {
	// StrictSubmit rejects a second submission for the same
	// (product, author) pair instead of updating it in place
	StrictSubmit bool
}

// UploadConfig holds profile photo upload configuration
type UploadConfig struct {
	Dir string
}

// Load reads configuration from environment variables and returns a Config struct
func Load() (*Config, error) {
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "30s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8080")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "streetkicks")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("DB_STATEMENT_TIMEOUT", "5s")

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("NATS_URL", "nats://localhost:4222")

	viper.SetDefault("CACHE_TTL_PRODUCT_LIST", "120s")
	viper.SetDefault("CACHE_TTL_PRODUCT_DETAIL", "300s")

	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_TOKEN_EXPIRY", "1h")

	viper.SetDefault("REVIEW_STRICT_SUBMIT", false)

	viper.SetDefault("UPLOAD_DIR", "uploads")

	readTimeout, err := time.ParseDuration(viper.GetString("SERVER_READ_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(viper.GetString("SERVER_WRITE_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := time.ParseDuration(viper.GetString("SERVER_SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT: %w", err)
	}

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
	}

	statementTimeout, err := time.ParseDuration(viper.GetString("DB_STATEMENT_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_STATEMENT_TIMEOUT: %w", err)
	}

	productListTTL, err := time.ParseDuration(viper.GetString("CACHE_TTL_PRODUCT_LIST"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_PRODUCT_LIST: %w", err)
	}

	productDetailTTL, err := time.ParseDuration(viper.GetString("CACHE_TTL_PRODUCT_DETAIL"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_PRODUCT_DETAIL: %w", err)
	}

	tokenExpiry, err := time.ParseDuration(viper.GetString("JWT_TOKEN_EXPIRY"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TOKEN_EXPIRY: %w", err)
	}

	allowedOriginsStr := viper.GetString("CORS_ALLOWED_ORIGINS")
	allowedOrigins := strings.Split(allowedOriginsStr, ",")
	for i := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
	}

	config := &Config{
		Env: viper.GetString("ENV"),
		Server: ServerConfig{
			Port:            viper.GetString("SERVER_PORT"),
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
			AllowedOrigins:  allowedOrigins,
		},
		Database: DatabaseConfig{
			Host:             viper.GetString("DB_HOST"),
			Port:             viper.GetString("DB_PORT"),
			User:             viper.GetString("DB_USER"),
			Password:         viper.GetString("DB_PASSWORD"),
			Name:             viper.GetString("DB_NAME"),
			SSLMode:          viper.GetString("DB_SSLMODE"),
			MaxOpenConns:     viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:     viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime:  connMaxLifetime,
			StatementTimeout: statementTimeout,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		NATS: NATSConfig{
			URL: viper.GetString("NATS_URL"),
		},
		Cache: CacheConfig{
			ProductListTTL:   productListTTL,
			ProductDetailTTL: productDetailTTL,
		},
		Auth: AuthConfig{
			JWTSecret:   viper.GetString("JWT_SECRET"),
			TokenExpiry: tokenExpiry,
		},
		Review: ReviewConfig{
			StrictSubmit: viper.GetBool("REVIEW_STRICT_SUBMIT"),
		},
		Uploads: UploadConfig{
			Dir: viper.GetString("UPLOAD_DIR"),
		},
	}

	if config.Auth.JWTSecret == "" && config.Env != "development" {
		return nil, fmt.Errorf("JWT_SECRET must be set outside development")
	}

	return config, nil
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
