package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"shipquickr/internal/core/proxy"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Database holds the database configuration.
	Database DatabaseConfig `mapstructure:",squash"`
	// Redis holds the cache configuration.
	Redis RedisConfig `mapstructure:",squash"`
	// Kafka holds the event publishing configuration.
	Kafka KafkaConfig `mapstructure:",squash"`
	// Pricing holds the rate shopping and booking knobs.
	Pricing PricingConfig `mapstructure:",squash"`
	// Proxy holds the optional outbound proxy used for courier APIs.
	Proxy ProxyConfig `mapstructure:",squash"`

	// Shiprocket holds the aggregator API configuration.
	Shiprocket ShiprocketConfig `mapstructure:",squash"`
	// Delhivery holds the direct API configuration.
	Delhivery DelhiveryConfig `mapstructure:",squash"`
	// EcomExpress holds the Ecom Express API configuration.
	EcomExpress EcomExpressConfig `mapstructure:",squash"`
}

// DatabaseConfig holds database connection details.
type DatabaseConfig struct {
	// Host is the database server hostname.
	Host string `mapstructure:"DB_HOST" default:"localhost"`
	// Port is the database connection port.
	Port int `mapstructure:"DB_PORT" default:"5432"`
	// User is the database role.
	User string `mapstructure:"DB_USER" default:"postgres"`
	// Password is the database role password.
	Password string `mapstructure:"DB_PASSWORD" required:"true"`
	// Name is the database name.
	Name string `mapstructure:"DB_NAME" default:"shipquickr"`
	// SSLMode is passed through to lib/pq.
	SSLMode string `mapstructure:"DB_SSLMODE" default:"disable"`
}

// RedisConfig holds the Redis connection details.
type RedisConfig struct {
	// URL is in the format redis://[:password@]host[:port][/database].
	URL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
}

// KafkaConfig holds the broker list and topic for shipment events.
// An empty broker list disables publishing.
type KafkaConfig struct {
	Brokers       []string `mapstructure:"KAFKA_BROKERS"`
	ShipmentTopic string   `mapstructure:"KAFKA_SHIPMENT_TOPIC" default:"shipments"`
}

// PricingConfig holds the rate shopping and booking knobs.
type PricingConfig struct {
	// DeclaredValueFloor is the minimum declared value sent to couriers.
	DeclaredValueFloor float64 `mapstructure:"DECLARED_VALUE_FLOOR" default:"50"`
	// QuoteCacheTTL is how long a priced quote list stays valid for booking.
	QuoteCacheTTL time.Duration `mapstructure:"QUOTE_CACHE_TTL" default:"15m"`
	// BookingLockTTL bounds how long a single booking attempt may hold the order lock.
	BookingLockTTL time.Duration `mapstructure:"BOOKING_LOCK_TTL" default:"2m"`
	// RateCardFile is the YAML file holding manual courier and Ecom Express rate cards.
	RateCardFile string `mapstructure:"RATE_CARD_FILE" default:"ratecards.yaml"`
}

// ProxyConfig holds the optional outbound proxy settings.
type ProxyConfig struct {
	Enabled  bool   `mapstructure:"OUTBOUND_PROXY_ENABLED" default:"false"`
	Hostname string `mapstructure:"OUTBOUND_PROXY_HOST"`
	Port     int    `mapstructure:"OUTBOUND_PROXY_PORT"`
	Username string `mapstructure:"OUTBOUND_PROXY_USERNAME"`
	Password string `mapstructure:"OUTBOUND_PROXY_PASSWORD"`
}

// Settings converts the config into proxy settings for the HTTP client.
func (p ProxyConfig) Settings() proxy.Settings {
	return proxy.Settings{
		Enabled:  p.Enabled,
		Hostname: p.Hostname,
		Port:     p.Port,
		Username: p.Username,
		Password: p.Password,
	}
}

// ShiprocketConfig holds the credentials for the Shiprocket aggregator.
type ShiprocketConfig struct {
	// Enabled registers the adapter at startup.
	Enabled bool `mapstructure:"SHIPROCKET_ENABLED" default:"false"`
	// URL is the base URL of the external API.
	URL string `mapstructure:"SHIPROCKET_URL" default:"https://apiv2.shiprocket.in/v1/external"`
	// Email is the API user login.
	Email string `mapstructure:"SHIPROCKET_EMAIL"`
	// Password is the API user password.
	Password string `mapstructure:"SHIPROCKET_PASSWORD"`
	// Timeout bounds every call made to the API.
	Timeout time.Duration `mapstructure:"SHIPROCKET_TIMEOUT" default:"10s"`
	// TokenTTL is how long a session token is trusted after login.
	TokenTTL time.Duration `mapstructure:"SHIPROCKET_TOKEN_TTL" default:"240h"`
	// VolumetricDivisor converts cubic centimetres into kilograms.
	VolumetricDivisor float64 `mapstructure:"SHIPROCKET_VOLUMETRIC_DIVISOR" default:"5000"`
	// MinBillableKg is the lowest weight the courier bills.
	MinBillableKg float64 `mapstructure:"SHIPROCKET_MIN_BILLABLE_KG" default:"0.5"`
}

// DelhiveryConfig holds the per weight band tokens for Delhivery surface.
type DelhiveryConfig struct {
	Enabled           bool          `mapstructure:"DELHIVERY_ENABLED" default:"false"`
	URL               string        `mapstructure:"DELHIVERY_URL" default:"https://track.delhivery.com"`
	Token500g         string        `mapstructure:"DELHIVERY_TOKEN_500G"`
	Token2kg          string        `mapstructure:"DELHIVERY_TOKEN_2KG"`
	Token5kg          string        `mapstructure:"DELHIVERY_TOKEN_5KG"`
	Timeout           time.Duration `mapstructure:"DELHIVERY_TIMEOUT" default:"10s"`
	VolumetricDivisor float64       `mapstructure:"DELHIVERY_VOLUMETRIC_DIVISOR" default:"5000"`
	MinBillableKg     float64       `mapstructure:"DELHIVERY_MIN_BILLABLE_KG" default:"0.5"`
}

// EcomExpressConfig holds the Ecom Express form credentials.
type EcomExpressConfig struct {
	Enabled           bool          `mapstructure:"ECOM_ENABLED" default:"false"`
	URL               string        `mapstructure:"ECOM_URL" default:"https://api.ecomexpress.in"`
	Username          string        `mapstructure:"ECOM_USERNAME"`
	Password          string        `mapstructure:"ECOM_PASSWORD"`
	Timeout           time.Duration `mapstructure:"ECOM_TIMEOUT" default:"10s"`
	VolumetricDivisor float64       `mapstructure:"ECOM_VOLUMETRIC_DIVISOR" default:"6000"`
	MinBillableKg     float64       `mapstructure:"ECOM_MIN_BILLABLE_KG" default:"1"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields, binds env keys and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("failed to bind %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && isZero(val.Field(i)) {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
