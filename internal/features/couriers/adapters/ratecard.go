package adapters

import (
	"shipquickr/internal/core/config"
	"shipquickr/internal/features/rates/domain"

	"github.com/shopspring/decimal"
)

// cardPrice prices a shipment from a weight-banded rate card.
// Freight is the base rate up to the base weight plus the per-kg rate for every started kilogram above it.
// The COD fee is the fixed charge plus a percentage of the collectable value; either part may be zero.
func cardPrice(card config.RateCard, chargeableKg float64, spec domain.ShipmentSpec) (freight, cod float64) {
	f := decimal.NewFromFloat(card.BaseRate)

	over := decimal.NewFromFloat(chargeableKg).Sub(decimal.NewFromFloat(card.BaseWeightKg))
	if over.IsPositive() {
		f = f.Add(over.Ceil().Mul(decimal.NewFromFloat(card.AdditionalRatePerKg)))
	}

	if spec.IsCOD() {
		pct := decimal.NewFromFloat(spec.CollectableValue).
			Mul(decimal.NewFromFloat(card.CodPercent)).
			Div(decimal.NewFromInt(100))
		cod = decimal.NewFromFloat(card.CodFixedCharge).Add(pct).InexactFloat64()
	}

	return f.InexactFloat64(), cod
}
