package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.Logger

// Init initializes the global logger.
// For "development" env, it produces pretty console logs.
// For "production" env, it produces JSON logs.
func Init(environment string, level string) error {
	var config zap.Config

	if environment == "production" {
		config = zap.NewProductionConfig()
		config.InitialFields = map[string]interface{}{"service": "shipquickr"}
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := zapcore.ParseLevel(level)
	if err == nil {
		config.Level = zap.NewAtomicLevelAt(l)
	}

	logger, err := config.Build()
	if err != nil {
		return err
	}

	globalLogger = logger
	return nil
}

// Set replaces the global logger, e.g. with an observer core in tests.
func Set(l *zap.Logger) {
	globalLogger = l
}

// Get returns the global logger instance.
// If not initialized, it returns a no-op logger to prevent panics.
func Get() *zap.Logger {
	if globalLogger == nil {
		return zap.NewNop()
	}
	return globalLogger
}

// ForCourier returns the global logger tagged with the courier name.
// Every courier adapter logs through one of these so failures can be filtered per provider.
func ForCourier(name string) *zap.Logger {
	return Get().With(zap.String("courier", name))
}

// ForOrder returns the global logger tagged with the order being booked or cancelled.
func ForOrder(orderID string) *zap.Logger {
	return Get().With(zap.String("order_id", orderID))
}

// Sync flushes any buffered log entries.
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}
