package ports

import (
	"context"

	markupdomain "shipquickr/internal/features/markup/domain"
	"shipquickr/internal/features/rates/domain"
)

// CourierAdapter defines the interface every courier integration implements for rate shopping.
type CourierAdapter interface {
	// Name identifies the adapter. Quotes carry it as Provider so booking can find the adapter again.
	Name() string
	// Quote returns the courier's offers for the shipment.
	// It never fails: authentication, network and parsing problems are logged and yield nil.
	Quote(ctx context.Context, spec domain.ShipmentSpec) []domain.RateQuote
}

// MarkupSource provides the active markup rule.
type MarkupSource interface {
	// ActiveRule returns nil without error when no rule exists.
	ActiveRule(ctx context.Context) (*markupdomain.MarkupRule, error)
}

// RateService defines the primary port for rate shopping.
type RateService interface {
	// GetRates returns priced quotes sorted by final total, cheapest first.
	GetRates(ctx context.Context, spec domain.ShipmentSpec) ([]domain.FinalQuote, error)
	// SelectQuote returns the priced quote the merchant picked, preferring the snapshot the user was shown.
	SelectQuote(ctx context.Context, spec domain.ShipmentSpec, sel domain.QuoteSelection) (*domain.FinalQuote, error)
}
