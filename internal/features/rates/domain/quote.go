package domain

import "strings"

// RateQuote is one courier service offering in raw courier cost.
// Every adapter emits exactly this shape; provider-specific translation stays inside the adapter.
type RateQuote struct {
	// Provider is the name of the adapter that produced the quote.
	Provider string `json:"provider"`
	// CourierName is what the customer picks, e.g. "Delhivery Surface".
	CourierName string `json:"courierName"`
	// ServiceType is free-form per provider, e.g. "Surface" or "Regular Air".
	ServiceType string `json:"serviceType"`
	// ChargeableWeightKg echoes the weight the courier billed.
	ChargeableWeightKg float64 `json:"chargeableWeight"`
	// RawFreightCharge is the courier's freight cost before markup.
	RawFreightCharge float64 `json:"rawFreightCharge"`
	// RawCodCharge is the courier's COD handling cost before markup; 0 for prepaid.
	RawCodCharge float64 `json:"rawCodCharge"`
	// RawTotalPrice is RawFreightCharge + RawCodCharge.
	RawTotalPrice float64 `json:"rawTotalPrice"`
	// ExpectedDeliveryDays is optional and shown as-is.
	ExpectedDeliveryDays string `json:"expectedDeliveryDays,omitempty"`
	// CourierPartnerID is the provider's own identifier, needed again at booking.
	CourierPartnerID string `json:"courierPartnerId,omitempty"`
}

// NewRateQuote builds a quote and derives the raw total.
// Prepaid shipments never carry a COD charge.
func NewRateQuote(provider, courierName, serviceType string, chargeableKg, freight, cod float64, mode PaymentMode) RateQuote {
	if mode != PaymentModeCOD || cod < 0 {
		cod = 0
	}
	if freight < 0 {
		freight = 0
	}
	return RateQuote{
		Provider:           provider,
		CourierName:        courierName,
		ServiceType:        serviceType,
		ChargeableWeightKg: chargeableKg,
		RawFreightCharge:   freight,
		RawCodCharge:       cod,
		RawTotalPrice:      freight + cod,
	}
}

// FinalQuote is a RateQuote with platform markup applied.
type FinalQuote struct {
	RateQuote

	FinalFreightCharge float64 `json:"finalFreightCharge"`
	FinalCodCharge     float64 `json:"finalCodCharge"`
	FinalTotalPrice    float64 `json:"finalTotalPrice"`
}

// QuoteSelection identifies the row of a rate listing the merchant picked.
// Provider is optional. It is needed when an aggregator and a direct integration
// both offer a courier under the same name.
type QuoteSelection struct {
	CourierName string
	Provider    string
}

// Matches reports whether q is the selected row. Names compare case-insensitively.
func (s QuoteSelection) Matches(q RateQuote) bool {
	if !strings.EqualFold(q.CourierName, s.CourierName) {
		return false
	}
	return s.Provider == "" || strings.EqualFold(q.Provider, s.Provider)
}

func (s QuoteSelection) String() string {
	if s.Provider == "" {
		return s.CourierName
	}
	return s.Provider + "/" + s.CourierName
}
