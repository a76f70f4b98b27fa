package domain

import "math"

const (
	// WeightEpsilonKg replaces missing or non-positive weights and dimensions.
	// Rate shopping degrades gracefully on a bad field instead of rejecting the request.
	WeightEpsilonKg = 0.01
	// DefaultVolumetricDivisor is used when a policy carries no divisor.
	DefaultVolumetricDivisor = 5000.0
)

// WeightPolicy is a courier's billing rule for weight.
// Couriers disagree on both numbers (5000 vs 6000, 0.5kg vs 1kg), so every adapter owns one.
type WeightPolicy struct {
	// VolumetricDivisor converts cubic centimetres into kilograms.
	VolumetricDivisor float64
	// MinBillableKg is the lowest weight the courier bills.
	MinBillableKg float64
}

// VolumetricWeight returns L*W*H/divisor in kilograms.
func VolumetricWeight(dims Dimensions, divisor float64) float64 {
	if !positive(divisor) {
		divisor = DefaultVolumetricDivisor
	}
	return coerce(dims.LengthCm) * coerce(dims.WidthCm) * coerce(dims.HeightCm) / divisor
}

// ChargeableWeight returns max(actual, volumetric, minimum billable).
func ChargeableWeight(actualKg float64, dims Dimensions, policy WeightPolicy) float64 {
	chargeable := max(coerce(actualKg), VolumetricWeight(dims, policy.VolumetricDivisor))
	if positive(policy.MinBillableKg) {
		chargeable = max(chargeable, policy.MinBillableKg)
	}
	return chargeable
}

func coerce(v float64) float64 {
	if !positive(v) {
		return WeightEpsilonKg
	}
	return v
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
