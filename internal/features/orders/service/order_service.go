package service

import (
	"context"
	"errors"

	"shipquickr/internal/features/orders/domain"
	"shipquickr/internal/features/orders/ports"
)

// ErrOwnerMismatch is returned when the order belongs to another user.
var ErrOwnerMismatch = errors.New("order does not belong to user")

// OrderService handles the business logic for retrieving orders.
type OrderService struct {
	store ports.OrderStore
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(store ports.OrderStore) *OrderService {
	return &OrderService{
		store: store,
	}
}

// GetOrder retrieves an order by ID and checks that userID owns it.
func (s *OrderService) GetOrder(ctx context.Context, orderID, userID string) (*domain.Order, error) {
	order, err := s.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		return nil, ErrOwnerMismatch
	}

	return order, nil
}
