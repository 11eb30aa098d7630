package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// MinJWTSecretLength is the shortest accepted signing secret
const MinJWTSecretLength = 16

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Upload storage configuration
	Upload UploadConfig

	// Token and password settings
	Auth AuthConfig

	// Related-content settings
	Related RelatedConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port              string        `env:"PORT" envDefault:"5000"`
	ReadTimeout       time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout      time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	MaxBodyBytes      int64         `env:"MAX_BODY_BYTES" envDefault:"52428800"` // 50MB, inline images travel in JSON
	CORSAllowedOrigin string        `env:"CORS_ALLOWED_ORIGIN" envDefault:"*"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host           string        `env:"DB_HOST" envDefault:"localhost"`
	Port           string        `env:"DB_PORT" envDefault:"5432"`
	User           string        `env:"DB_USER" envDefault:"postgres"`
	Password       string        `env:"DB_PASSWORD" envDefault:"postgres"`
	Name           string        `env:"DB_NAME" envDefault:"blogify"`
	SSLMode        string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns   int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns   int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	MaxLifetime    time.Duration `env:"DB_MAX_LIFETIME" envDefault:"5m"`
	MigrationsPath string        `env:"MIGRATIONS_PATH" envDefault:"migrations"`
}

// UploadConfig holds image storage settings
type UploadConfig struct {
	Dir                 string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	PublicPath          string `env:"UPLOAD_PUBLIC_PATH" envDefault:"/uploads"`
	MaxImageBytes       int64  `env:"MAX_IMAGE_BYTES" envDefault:"10485760"`        // 10MB
	MaxProfileImageSize int64  `env:"MAX_PROFILE_IMAGE_BYTES" envDefault:"5242880"` // 5MB
}

// AuthConfig holds token and password hashing settings
type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET"`
	JWTTTL     time.Duration `env:"JWT_TTL" envDefault:"24h"`
	JWTIssuer  string        `env:"JWT_ISSUER" envDefault:"blogify"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	// Accounts registered with one of these emails get the admin role
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`
}

// RelatedConfig holds related-content settings
type RelatedConfig struct {
	DefaultLimit int `env:"RELATED_DEFAULT_LIMIT" envDefault:"3"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if len(c.Auth.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes long", MinJWTSecretLength)
	}
	if c.Auth.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.Upload.Dir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	if c.Upload.MaxImageBytes <= 0 || c.Upload.MaxProfileImageSize <= 0 {
		return fmt.Errorf("image size limits must be positive")
	}
	if c.Related.DefaultLimit <= 0 {
		return fmt.Errorf("RELATED_DEFAULT_LIMIT must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}
