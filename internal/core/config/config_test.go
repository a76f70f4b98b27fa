package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("QUOTE_CACHE_TTL")

	os.Setenv("DB_PASSWORD", "secret")
	defer os.Unsetenv("DB_PASSWORD")

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 50.0, cfg.Pricing.DeclaredValueFloor)
	assert.Equal(t, 15*time.Minute, cfg.Pricing.QuoteCacheTTL)
	assert.Equal(t, 240*time.Hour, cfg.Shiprocket.TokenTTL)
	assert.Equal(t, 5000.0, cfg.Delhivery.VolumetricDivisor)
	assert.Equal(t, 6000.0, cfg.EcomExpress.VolumetricDivisor)
	assert.Equal(t, 1.0, cfg.EcomExpress.MinBillableKg)
	assert.False(t, cfg.Shiprocket.Enabled)
	assert.Empty(t, cfg.Kafka.Brokers)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	os.Setenv("APP_ENV", "production")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("DB_PASSWORD", "secret")
	os.Setenv("SHIPROCKET_ENABLED", "true")
	os.Setenv("SHIPROCKET_EMAIL", "ops@shipquickr.in")
	os.Setenv("SHIPROCKET_TIMEOUT", "3s")
	os.Setenv("DELHIVERY_TOKEN_2KG", "tok-2kg")
	defer func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("DB_PASSWORD")
		os.Unsetenv("SHIPROCKET_ENABLED")
		os.Unsetenv("SHIPROCKET_EMAIL")
		os.Unsetenv("SHIPROCKET_TIMEOUT")
		os.Unsetenv("DELHIVERY_TOKEN_2KG")
	}()

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.True(t, cfg.Shiprocket.Enabled)
	assert.Equal(t, "ops@shipquickr.in", cfg.Shiprocket.Email)
	assert.Equal(t, 3*time.Second, cfg.Shiprocket.Timeout)
	assert.Equal(t, "tok-2kg", cfg.Delhivery.Token2kg)
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
DB_PASSWORD=staging-secret
DECLARED_VALUE_FLOOR=100
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, 100.0, cfg.Pricing.DeclaredValueFloor)
}

// TestLoad_ValidationFailure verifies that missing required fields return an error.
func TestLoad_ValidationFailure(t *testing.T) {
	os.Unsetenv("DB_PASSWORD")

	cfg, err := Load(".")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "missing required configuration: DB_PASSWORD")
}

func TestProxyConfig_Settings(t *testing.T) {
	p := ProxyConfig{Enabled: true, Hostname: "proxy.local", Port: 3128}
	s := p.Settings()

	assert.True(t, s.HasProxy())
	assert.Equal(t, "http://proxy.local:3128", s.HostPort())
}

func TestLoadRateCards(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		cards, err := LoadRateCards(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Empty(t, cards.Manual)
		assert.Empty(t, cards.EcomExpress)
	})

	t.Run("Valid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ratecards.yaml")
		content := []byte(`
manual:
  - name: ShipQuickr Local
    service_type: surface
    volumetric_divisor: 5000
    min_billable_kg: 0.5
    awb_prefix: SQL
    base_weight_kg: 0.5
    base_rate: 40
    additional_rate_per_kg: 30
    cod_fixed_charge: 20
    expected_delivery_days: "3-5"
ecomexpress:
  standard:
    base_weight_kg: 0.5
    base_rate: 45
    additional_rate_per_kg: 35
    cod_fixed_charge: 30
    cod_percent: 1.5
`)
		require.NoError(t, os.WriteFile(path, content, 0644))

		cards, err := LoadRateCards(path)
		require.NoError(t, err)
		require.Len(t, cards.Manual, 1)

		m := cards.Manual[0]
		assert.Equal(t, "ShipQuickr Local", m.Name)
		assert.Equal(t, 5000.0, m.VolumetricDivisor)
		assert.Equal(t, 40.0, m.Card.BaseRate)
		assert.Equal(t, 20.0, m.Card.CodFixedCharge)
		assert.Equal(t, "3-5", m.Card.ExpectedDeliveryDays)

		require.Contains(t, cards.EcomExpress, "standard")
		assert.Equal(t, 1.5, cards.EcomExpress["standard"].CodPercent)
	})

	t.Run("NamelessCourier", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ratecards.yaml")
		require.NoError(t, os.WriteFile(path, []byte("manual:\n  - base_weight_kg: 0.5\n"), 0644))

		_, err := LoadRateCards(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "has no name")
	})
}
