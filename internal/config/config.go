package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Storage struct {
		// Backend selects where note files live: drive, minio or local.
		Backend       string `yaml:"backend" env:"STORAGE_BACKEND"`
		MaxUploadMB   int64  `yaml:"max_upload_mb" env:"STORAGE_MAX_UPLOAD_MB"`
		AcceptedTypes string `yaml:"accepted_types" env:"STORAGE_ACCEPTED_TYPES"`

		Drive struct {
			BaseURL string `yaml:"base_url" env:"DRIVE_BASE_URL"`
			Timeout string `yaml:"timeout" env:"DRIVE_TIMEOUT"`
		} `yaml:"drive"`

		Minio struct {
			Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
			AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
			SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
			Bucket    string `yaml:"bucket" env:"MINIO_BUCKET"`
			UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL"`
		} `yaml:"minio"`

		Local struct {
			Path    string `yaml:"path" env:"LOCAL_STORAGE_PATH"`
			BaseURL string `yaml:"base_url" env:"LOCAL_STORAGE_BASE_URL"`
		} `yaml:"local"`
	} `yaml:"storage"`

	Notes struct {
		// ResultCap bounds the candidate set fetched per list request.
		ResultCap int `yaml:"result_cap" env:"NOTES_RESULT_CAP"`
	} `yaml:"notes"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err = yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "campusplus"
	config.Database.SSLMode = "disable"
	config.Database.MaxConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "12h"
	config.JWT.Issuer = "campusplus.app"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Storage.Backend = "local"
	config.Storage.MaxUploadMB = 25
	config.Storage.AcceptedTypes = ".pdf,.doc,.docx,.ppt,.pptx,.txt"
	config.Storage.Drive.Timeout = "60s"
	config.Storage.Minio.Bucket = "campusplus-notes"
	config.Storage.Local.Path = "./uploads"
	config.Storage.Local.BaseURL = "/uploads"

	config.Notes.ResultCap = 500
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	switch config.Storage.Backend {
	case "drive":
		if config.Storage.Drive.BaseURL == "" {
			return fmt.Errorf("drive base URL is required for the drive backend")
		}
		if _, err := time.ParseDuration(config.Storage.Drive.Timeout); err != nil {
			return fmt.Errorf("invalid drive timeout format: %w", err)
		}
	case "minio":
		if config.Storage.Minio.Endpoint == "" {
			return fmt.Errorf("minio endpoint is required for the minio backend")
		}
	case "local":
		if config.Storage.Local.Path == "" {
			return fmt.Errorf("local storage path is required for the local backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", config.Storage.Backend)
	}

	if config.Notes.ResultCap <= 0 {
		return fmt.Errorf("notes result cap must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// AcceptedExtensions parses the accepted types list into extensions.
func (c *Config) AcceptedExtensions() []string {
	parts := strings.Split(c.Storage.AcceptedTypes, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		if ext := strings.TrimSpace(p); ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

// MaxUploadBytes returns the upload size ceiling in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.Storage.MaxUploadMB * 1024 * 1024
}
