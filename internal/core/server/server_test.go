package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shipquickr/internal/core/config"
	"shipquickr/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestNew verifies that New creates a Server with the correct configuration.
func TestNew(t *testing.T) {
	cfg := &config.AppConfig{
		ServerPort: 8080,
	}

	logger.Init("development", "debug")
	srv := New(cfg)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.App)
	assert.Equal(t, cfg, srv.cfg)
}

// TestServer_Run_Error verifies that Run returns an error when binding fails (e.g., privileged port).
func TestServer_Run_Error(t *testing.T) {
	// Privileged port 1 should fail
	cfg := &config.AppConfig{
		ServerPort: 1,
	}
	logger.Init("development", "error")

	srv := New(cfg)

	errCh := make(chan error)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(1 * time.Second):
		srv.Shutdown(time.Second)
		t.Log("Server unexpectedly started or timed out on Error test")
	}
}

func TestServer_Health(t *testing.T) {
	logger.Init("development", "error")

	t.Run("AllHealthy", func(t *testing.T) {
		srv := New(&config.AppConfig{})
		srv.AddCheck("database", func(ctx context.Context) error { return nil })

		resp, err := srv.App.Test(httptest.NewRequest("GET", "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Checks map[string]string `json:"checks"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "ok", body.Checks["database"])
	})

	t.Run("OneDown", func(t *testing.T) {
		srv := New(&config.AppConfig{})
		srv.AddCheck("database", func(ctx context.Context) error { return nil })
		srv.AddCheck("cache", func(ctx context.Context) error { return errors.New("dial tcp: connection refused") })

		resp, err := srv.App.Test(httptest.NewRequest("GET", "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestServer_RecoversPanics(t *testing.T) {
	logger.Init("development", "error")
	srv := New(&config.AppConfig{})
	srv.App.Get("/boom", func(c *fiber.Ctx) error {
		panic("courier registry corrupted")
	})

	resp, err := srv.App.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Ray-ID"))
}

func TestServer_LogsPanics(t *testing.T) {
	tests := []struct {
		env       string
		wantStack bool
	}{
		{"production", false},
		{"development", true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			core, logs := observer.New(zapcore.ErrorLevel)
			logger.Set(zap.New(core))
			defer logger.Set(nil)

			srv := New(&config.AppConfig{Environment: tt.env})
			srv.App.Get("/boom", func(c *fiber.Ctx) error {
				panic("rate card missing")
			})

			resp, err := srv.App.Test(httptest.NewRequest("GET", "/boom", nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

			entries := logs.FilterMessage("Panic while handling request").All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, "rate card missing", fields["panic"])
			assert.Equal(t, "/boom", fields["path"])
			assert.Equal(t, resp.Header.Get("X-Ray-ID"), fields["ray_id"])

			_, hasStack := fields["stack"]
			assert.Equal(t, tt.wantStack, hasStack)
		})
	}
}
