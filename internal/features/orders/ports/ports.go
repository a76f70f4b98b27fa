package ports

import (
	"context"

	"shipquickr/internal/features/orders/domain"
)

// OrderStore defines the secondary port for order persistence.
type OrderStore interface {
	// FindUnshipped returns the order only while it is still unshipped, otherwise nil.
	FindUnshipped(ctx context.Context, orderID string) (*domain.Order, error)
	// GetByID returns domain.ErrOrderNotFound when the order does not exist.
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	// UpdateBookingResult moves an unshipped order to its booked state.
	// It returns domain.ErrStatusConflict when the order is no longer unshipped.
	UpdateBookingResult(ctx context.Context, orderID string, update domain.BookingUpdate) error
	// MarkCancelled moves a booked order to cancelled.
	// It returns domain.ErrStatusConflict when the order is not booked.
	MarkCancelled(ctx context.Context, orderID string) error
}
