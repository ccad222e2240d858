package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface, shared by the
// interactive client and the reference server.
type Config struct {
	API    APIConfig
	Client ClientConfig
	Server ServerConfig
}

// APIConfig holds options for reaching the remote product store.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// ClientConfig holds client-side behaviour options.
type ClientConfig struct {
	InvoiceFileName string
	DownloadDir     string
	RefreshCron     string // empty disables the periodic re-sync
}

// ServerConfig holds options for the reference inventory server.
type ServerConfig struct {
	Port     string
	Username string
	Password string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	timeout, err := strconv.Atoi(getenvWithDefault("MINIERP_API_TIMEOUT_SECONDS", "15"))
	if err != nil {
		return nil, fmt.Errorf("MINIERP_API_TIMEOUT_SECONDS must be an integer: %w", err)
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL:        getenvWithDefault("MINIERP_API_BASE_URL", "http://localhost:8080"),
			TimeoutSeconds: timeout,
		},
		Client: ClientConfig{
			InvoiceFileName: getenvWithDefault("MINIERP_INVOICE_FILENAME", "Lieferschein_Altenburg.pdf"),
			DownloadDir:     getenvWithDefault("MINIERP_DOWNLOAD_DIR", "."),
			RefreshCron:     os.Getenv("MINIERP_REFRESH_CRON"),
		},
		Server: ServerConfig{
			Port:     getenvWithDefault("MINIERP_SERVER_PORT", "8080"),
			Username: getenvWithDefault("MINIERP_SERVER_USERNAME", "admin"),
			Password: getenvWithDefault("MINIERP_SERVER_PASSWORD", "admin123"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.API.BaseURL == "" {
		return errors.New("MINIERP_API_BASE_URL must not be empty")
	}

	if c.API.TimeoutSeconds <= 0 {
		return errors.New("MINIERP_API_TIMEOUT_SECONDS must be positive")
	}

	if c.Client.InvoiceFileName == "" {
		return errors.New("MINIERP_INVOICE_FILENAME must not be empty")
	}

	if c.Client.DownloadDir == "" {
		return errors.New("MINIERP_DOWNLOAD_DIR must not be empty")
	}

	switch {
	case c.Server.Port == "":
		return errors.New("MINIERP_SERVER_PORT must be provided")
	case c.Server.Username == "":
		return errors.New("MINIERP_SERVER_USERNAME must be provided")
	case c.Server.Password == "":
		return errors.New("MINIERP_SERVER_PASSWORD must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
