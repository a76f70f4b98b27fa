package ports

import (
	"context"

	ratesdomain "shipquickr/internal/features/rates/domain"
	"shipquickr/internal/features/shipments/domain"
)

// CourierBooker defines the interface a courier integration implements to book shipments.
type CourierBooker interface {
	// Name matches the Provider recorded on the courier's quotes.
	Name() string
	// Book assigns an AWB and manifests the shipment.
	// An error means nothing usable was booked and the order may be retried.
	Book(ctx context.Context, req domain.BookingRequest) (*domain.Manifest, error)
}

// QuoteSelector resolves the priced quote the merchant picked.
type QuoteSelector interface {
	SelectQuote(ctx context.Context, spec ratesdomain.ShipmentSpec, sel ratesdomain.QuoteSelection) (*ratesdomain.FinalQuote, error)
}

// TxRunner runs fn inside one database transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ShipmentService defines the primary port for booking and cancelling shipments.
type ShipmentService interface {
	ConfirmShipment(ctx context.Context, orderID string, sel ratesdomain.QuoteSelection) (*domain.BookingResult, error)
	CancelShipment(ctx context.Context, orderID, reason string) (*domain.CancellationResult, error)
}
