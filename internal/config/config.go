package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	MongoDB MongoConfig
	S3      S3Config
	Redis   RedisConfig
	Upload  UploadConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string   `env:"SERVER_PORT" envDefault:"7000"`
	Env          string   `env:"SERVER_ENV" envDefault:"development"`
	LogLevel     string   `env:"LOG_LEVEL" envDefault:"info"`
	StaticDir    string   `env:"STATIC_DIR" envDefault:"frontend"`
	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`
}

// MongoConfig holds document store configuration
type MongoConfig struct {
	URL               string        `env:"MONGODB_URL" envDefault:"mongodb://localhost:27017"`
	DBName            string        `env:"MONGODB_DB_NAME" envDefault:"ecommerce"`
	ReviewsCollection string        `env:"MONGODB_REVIEWS_COLLECTION" envDefault:"reviews"`
	ConnectTimeout    time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
}

// S3Config holds object store configuration
type S3Config struct {
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	Region          string `env:"AWS_S3_REGION" envDefault:"ap-northeast-2"`
	Bucket          string `env:"AWS_S3_BUCKET_NAME"`
	Endpoint        string `env:"AWS_S3_ENDPOINT"`
	UseSSL          bool   `env:"AWS_S3_USE_SSL" envDefault:"true"`
	PublicURL       string `env:"AWS_S3_PUBLIC_URL"`
}

// RedisConfig holds the recent-reviews cache configuration. An empty Addr disables the cache.
type RedisConfig struct {
	Addr      string        `env:"REDIS_ADDR"`
	Password  string        `env:"REDIS_PASSWORD"`
	DB        int           `env:"REDIS_DB" envDefault:"0"`
	RecentTTL time.Duration `env:"REDIS_RECENT_TTL" envDefault:"30s"`
}

// UploadConfig holds image upload limits
type UploadConfig struct {
	MaxBytes int64 `env:"UPLOAD_MAX_BYTES" envDefault:"10485760"`
}

// NewConfig creates a new Config
func NewConfig() (*Config, error) {
	cfg := new(Config)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Enabled reports whether credentials for the object store were supplied.
func (c S3Config) Enabled() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != "" && c.Bucket != ""
}

// ResolvedEndpoint returns the configured endpoint or the regional AWS one.
func (c S3Config) ResolvedEndpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return fmt.Sprintf("s3.%s.amazonaws.com", c.Region)
}

// ObjectBaseURL is the prefix that, joined with an object key, gives a public URL.
func (c S3Config) ObjectBaseURL() string {
	if c.PublicURL != "" {
		return strings.TrimRight(c.PublicURL, "/")
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
}
