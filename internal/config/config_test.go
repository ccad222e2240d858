package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
		assert.Equal(t, 15, cfg.API.TimeoutSeconds)
		assert.Equal(t, "Lieferschein_Altenburg.pdf", cfg.Client.InvoiceFileName)
		assert.Equal(t, "admin", cfg.Server.Username)
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("MINIERP_API_BASE_URL", "https://erp.example.com")
		t.Setenv("MINIERP_API_TIMEOUT_SECONDS", "30")

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "https://erp.example.com", cfg.API.BaseURL)
		assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	})

	t.Run("InvalidTimeout", func(t *testing.T) {
		t.Setenv("MINIERP_API_TIMEOUT_SECONDS", "soon")

		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := Config{
		API:    APIConfig{BaseURL: "http://localhost:8080", TimeoutSeconds: 15},
		Client: ClientConfig{InvoiceFileName: "Lieferschein_Altenburg.pdf", DownloadDir: "."},
		Server: ServerConfig{Port: "8080", Username: "admin", Password: "admin123"},
	}

	t.Run("Valid", func(t *testing.T) {
		cfg := valid
		assert.NoError(t, cfg.Validate())
	})

	t.Run("MissingBaseURL", func(t *testing.T) {
		cfg := valid
		cfg.API.BaseURL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("NonPositiveTimeout", func(t *testing.T) {
		cfg := valid
		cfg.API.TimeoutSeconds = 0
		assert.Error(t, cfg.Validate())
	})
}
