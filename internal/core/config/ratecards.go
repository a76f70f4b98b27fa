package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// RateCard is a weight-banded price list for couriers without a live rate API.
type RateCard struct {
	// BaseWeightKg is the weight covered by BaseRate.
	BaseWeightKg float64 `mapstructure:"base_weight_kg"`
	// BaseRate is the freight charged up to BaseWeightKg.
	BaseRate float64 `mapstructure:"base_rate"`
	// AdditionalRatePerKg is charged for every started kilogram above BaseWeightKg.
	AdditionalRatePerKg float64 `mapstructure:"additional_rate_per_kg"`
	// CodFixedCharge is the flat COD handling fee.
	CodFixedCharge float64 `mapstructure:"cod_fixed_charge"`
	// CodPercent is a percentage of the collectable value, added on top of CodFixedCharge.
	CodPercent float64 `mapstructure:"cod_percent"`
	// ExpectedDeliveryDays is shown to the customer as-is (e.g. "3-5").
	ExpectedDeliveryDays string `mapstructure:"expected_delivery_days"`
}

// ManualCourierConfig describes one rule-based courier.
type ManualCourierConfig struct {
	Name              string  `mapstructure:"name"`
	ServiceType       string  `mapstructure:"service_type"`
	VolumetricDivisor float64 `mapstructure:"volumetric_divisor"`
	MinBillableKg     float64 `mapstructure:"min_billable_kg"`
	AWBPrefix         string  `mapstructure:"awb_prefix"`

	Card RateCard `mapstructure:",squash"`
}

// RateCards holds every static price list the service knows about.
type RateCards struct {
	// Manual lists the rule-based couriers, one adapter each.
	Manual []ManualCourierConfig `mapstructure:"manual"`
	// EcomExpress maps a canonical service type (standard, surface, express) to its card.
	EcomExpress map[string]RateCard `mapstructure:"ecomexpress"`
}

// LoadRateCards reads the YAML rate card file.
// A missing file yields empty rate cards so the rule-based couriers are simply not registered.
func LoadRateCards(path string) (*RateCards, error) {
	cards := &RateCards{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cards, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading rate card file: %w", err)
	}

	if err := v.Unmarshal(cards); err != nil {
		return nil, fmt.Errorf("unable to decode rate cards: %w", err)
	}

	for i, m := range cards.Manual {
		if m.Name == "" {
			return nil, fmt.Errorf("manual courier #%d has no name", i+1)
		}
		if m.Card.BaseWeightKg <= 0 {
			return nil, fmt.Errorf("manual courier %q: base_weight_kg must be positive", m.Name)
		}
	}

	return cards, nil
}
