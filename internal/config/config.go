package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the optional YAML file that is layered under the environment.
const ConfigFileEnv = "DESIGNSIGHT_CONFIG"

type Config struct {
	// Server
	Port        string   `yaml:"port" env:"PORT"`
	Environment string   `yaml:"environment" env:"NODE_ENV"`
	BaseURL     string   `yaml:"base_url" env:"EXPORT_BASE_URL"`
	LogLevel    string   `yaml:"log_level" env:"LOG_LEVEL"`
	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`

	// MongoDB
	MongoURI      string `yaml:"mongodb_uri" env:"MONGODB_URI"`
	MongoUser     string `yaml:"mongodb_user" env:"MONGODB_USER"`
	MongoPassword string `yaml:"mongodb_password" env:"MONGODB_PASSWORD"`
	MongoDatabase string `yaml:"mongodb_database" env:"MONGODB_DATABASE"`

	// Supabase
	SupabaseURL           string        `yaml:"supabase_url" env:"SUPABASE_URL"`
	SupabaseServiceKey    string        `yaml:"supabase_service_key" env:"SUPABASE_SERVICE_KEY"`
	SupabaseStorageBucket string        `yaml:"supabase_storage_bucket" env:"SUPABASE_STORAGE_BUCKET"`
	SignedURLExpiry       time.Duration `yaml:"signed_url_expiry" env:"SIGNED_URL_EXPIRY"`

	// Uploads
	MaxUploadBytes int64 `yaml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES"`

	// Google Cloud Vision
	VisionAPIKey     string        `yaml:"vision_api_key" env:"GOOGLE_VISION_API_KEY"`
	VisionAPIBaseURL string        `yaml:"vision_api_base_url" env:"GOOGLE_VISION_API_BASE_URL"`
	VisionTimeout    time.Duration `yaml:"vision_timeout" env:"GOOGLE_VISION_TIMEOUT"`

	// PDF export
	ChromiumPath string        `yaml:"chromium_path" env:"CHROMIUM_PATH"`
	PDFTimeout   time.Duration `yaml:"pdf_timeout" env:"PDF_TIMEOUT"`

	// Maintenance routes are open unless a secret is configured
	MaintenanceJWTSecret string `yaml:"maintenance_jwt_secret" env:"MAINTENANCE_JWT_SECRET"`
}

func Default() *Config {
	return &Config{
		Port:                  "4000",
		Environment:           "development",
		BaseURL:               "http://localhost:4000",
		LogLevel:              "info",
		MongoDatabase:         "designsight",
		SupabaseStorageBucket: "designsight",
		SignedURLExpiry:       7 * 24 * time.Hour,
		MaxUploadBytes:        10 << 20,
		VisionAPIBaseURL:      "https://vision.googleapis.com/v1/",
		VisionTimeout:         30 * time.Second,
		PDFTimeout:            60 * time.Second,
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order of precedence (later wins).
func Load() (*Config, error) {
	// .env is a convenience for local development only
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseServiceKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_KEY is required")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.SignedURLExpiry < time.Second {
		return fmt.Errorf("SIGNED_URL_EXPIRY must be at least one second")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
