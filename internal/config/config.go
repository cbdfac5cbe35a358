package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env    string `env:"ENV" env-default:"development"`
	Port   string `env:"PORT" env-default:"4004"`
	APIKey string `env:"API_KEY"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// Database
	DBDriver   string `env:"DB_DRIVER" env-default:"postgres"`
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"risks"`
	DBPassword string `env:"DB_PASSWORD" env-default:"risks"`
	DBName     string `env:"DB_NAME" env-default:"risks"`
	DBSSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
	DBPath     string `env:"DB_PATH" env-default:"risks.db"`

	CRM   CRMConfig
	Cache CacheConfig
}

// CRMConfig describes the upstream SAP CRM opportunity service.
type CRMConfig struct {
	BaseURL     string        `env:"SAP_CRM_BASE_URL" env-default:"https://my1001209.de1.demo.crm.cloud.sap"`
	Endpoint    string        `env:"SAP_CRM_ENDPOINT" env-default:"/sap/c4c/api/v1/opportunity-service/opportunities"`
	Token       string        `env:"SAP_CRM_TOKEN"`
	Username    string        `env:"SAP_CRM_USERNAME"`
	Password    string        `env:"SAP_CRM_PASSWORD"`
	PackageName string        `env:"SAP_CRM_PACKAGE_NAME" env-default:"SAPSalesServiceCloudV2"`
	APIName     string        `env:"SAP_CRM_API_NAME" env-default:"SalesSvcCloudV2_opportunity"`
	Timeout     time.Duration `env:"CRM_TIMEOUT" env-default:"30s"`

	// EmptyPolicy decides what a degenerate upstream response turns into:
	// "fail", "empty" or "placeholder". Defaults to "fail" in production
	// and "empty" everywhere else.
	EmptyPolicy string `env:"CRM_EMPTY_POLICY"`

	// FieldTableFile optionally points at a YAML file of extra candidate
	// keys for tenants with custom field names.
	FieldTableFile string `env:"CRM_FIELD_TABLE_FILE"`
}

// CacheConfig selects the opportunity cache backend.
type CacheConfig struct {
	// Driver is "memory", "redis" or "none".
	Driver   string        `env:"CACHE_DRIVER" env-default:"memory"`
	RedisURL string        `env:"REDIS_URL" env-default:"redis://localhost:6379/0"`
	TTL      time.Duration `env:"CACHE_TTL" env-default:"5m"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.CRM.EmptyPolicy == "" {
		if cfg.IsProduction() {
			cfg.CRM.EmptyPolicy = "fail"
		} else {
			cfg.CRM.EmptyPolicy = "empty"
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// MigrationURL returns the postgres:// URL golang-migrate expects.
func (c *Config) MigrationURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: must be postgres or sqlite", c.DBDriver)
	}

	switch strings.ToLower(c.CRM.EmptyPolicy) {
	case "fail", "empty", "placeholder":
		c.CRM.EmptyPolicy = strings.ToLower(c.CRM.EmptyPolicy)
	default:
		return fmt.Errorf("invalid CRM_EMPTY_POLICY %q: must be fail, empty, or placeholder", c.CRM.EmptyPolicy)
	}
	if c.CRM.EmptyPolicy == "placeholder" && c.IsProduction() {
		return fmt.Errorf("CRM_EMPTY_POLICY placeholder is not allowed in production")
	}

	switch c.Cache.Driver {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("invalid CACHE_DRIVER %q: must be memory, redis, or none", c.Cache.Driver)
	}

	if c.CRM.Timeout <= 0 {
		return fmt.Errorf("CRM_TIMEOUT must be positive, got %v", c.CRM.Timeout)
	}
	return nil
}
