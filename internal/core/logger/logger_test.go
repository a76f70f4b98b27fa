package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestInit verifies logger initialization for different environments.
func TestInit(t *testing.T) {
	t.Run("Development", func(t *testing.T) {
		err := Init("development", "debug")
		require.NoError(t, err)
		assert.NotNil(t, globalLogger)
		assert.True(t, globalLogger.Core().Enabled(zap.DebugLevel))
	})

	t.Run("Production", func(t *testing.T) {
		err := Init("production", "info")
		require.NoError(t, err)
		assert.NotNil(t, globalLogger)
		assert.False(t, globalLogger.Core().Enabled(zap.DebugLevel))
		assert.True(t, globalLogger.Core().Enabled(zap.InfoLevel))
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		err := Init("development", "invalid_level")
		require.NoError(t, err)
	})
}

// TestGet verifies that Get returns the global logger.
func TestGet(t *testing.T) {
	globalLogger = nil
	assert.NotNil(t, Get())

	require.NoError(t, Init("development", "info"))
	assert.NotNil(t, Get())
	assert.Same(t, globalLogger, Get())
}

// TestForCourier verifies the courier field is attached to every entry.
func TestForCourier(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	globalLogger = zap.New(core)
	defer func() { globalLogger = nil }()

	ForCourier("delhivery").Info("quote failed")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "quote failed", entry.Message)
	assert.Equal(t, "delhivery", entry.ContextMap()["courier"])
}

// TestSync verifies that Sync does not panic even if logger is nil.
func TestSync(t *testing.T) {
	globalLogger = nil
	Sync()

	require.NoError(t, Init("development", "info"))
	Sync()
}

func TestForOrder(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	globalLogger = zap.New(core)
	defer func() { globalLogger = nil }()

	log := ForOrder("ord-1")
	log.Info("ignored")
	log.Warn("lock expired", zap.String("courier", "shiprocket"))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "ord-1", fields["order_id"])
	assert.Equal(t, "shiprocket", fields["courier"])
}

func TestSet(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Set(zap.New(core))
	defer Set(nil)

	Get().Info("replaced")
	assert.Equal(t, 1, logs.Len())

	Set(nil)
	assert.NotNil(t, Get())
}
