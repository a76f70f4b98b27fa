package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shipquickr/internal/core/database"
	"shipquickr/internal/features/orders/domain"
	ratesdomain "shipquickr/internal/features/rates/domain"
)

const orderColumns = `id, user_id, status, payment_mode, declared_value, collectable_value,
	weight_kg, length_cm, width_cm, height_cm, product_name, quantity,
	warehouse_name, pickup_address, pickup_pincode, pickup_phone,
	customer_name, customer_phone, customer_email, customer_address, customer_city, customer_state, customer_pincode,
	awb_number, courier_name, shipping_cost, created_at, updated_at`

// PostgresOrderStore implements ports.OrderStore on the orders table.
// Every method joins the transaction carried by ctx, if any.
type PostgresOrderStore struct {
	db *sql.DB
}

// NewPostgresOrderStore creates a new PostgresOrderStore.
func NewPostgresOrderStore(db *sql.DB) *PostgresOrderStore {
	return &PostgresOrderStore{db: db}
}

// FindUnshipped returns the order if it is still unshipped, or nil.
func (s *PostgresOrderStore) FindUnshipped(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND status = 'unshipped'`

	order, err := scanOrder(database.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order %s: %w", orderID, err)
	}
	return order, nil
}

// GetByID returns the order in any state.
func (s *PostgresOrderStore) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(database.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order %s: %w", orderID, err)
	}
	return order, nil
}

// UpdateBookingResult compare-and-swaps the order from unshipped to its booked state.
func (s *PostgresOrderStore) UpdateBookingResult(ctx context.Context, orderID string, update domain.BookingUpdate) error {
	query := `
		UPDATE orders
		SET status = $1, awb_number = $2, courier_name = $3, shipping_cost = $4, updated_at = now()
		WHERE id = $5 AND status = 'unshipped'`

	res, err := database.QuerierFrom(ctx, s.db).ExecContext(ctx, query,
		string(update.Status), update.AWBNumber, update.CourierName, update.ShippingCost, orderID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", orderID, err)
	}
	return expectOneRow(res, orderID)
}

// MarkCancelled moves a booked order to cancelled.
func (s *PostgresOrderStore) MarkCancelled(ctx context.Context, orderID string) error {
	query := `
		UPDATE orders
		SET status = 'cancelled', updated_at = now()
		WHERE id = $1 AND status IN ('manifested', 'pending_manifest')`

	res, err := database.QuerierFrom(ctx, s.db).ExecContext(ctx, query, orderID)
	if err != nil {
		return fmt.Errorf("failed to cancel order %s: %w", orderID, err)
	}
	return expectOneRow(res, orderID)
}

func expectOneRow(res sql.Result, orderID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for order %s: %w", orderID, err)
	}
	if n == 0 {
		return fmt.Errorf("order %s: %w", orderID, domain.ErrStatusConflict)
	}
	return nil
}

func scanOrder(row *sql.Row) (*domain.Order, error) {
	var (
		o           domain.Order
		status      string
		paymentMode string
		awb         sql.NullString
		courier     sql.NullString
		cost        sql.NullFloat64
	)

	err := row.Scan(
		&o.ID, &o.UserID, &status, &paymentMode, &o.DeclaredValue, &o.CollectableValue,
		&o.WeightKg, &o.Dimensions.LengthCm, &o.Dimensions.WidthCm, &o.Dimensions.HeightCm, &o.ProductName, &o.Quantity,
		&o.Pickup.WarehouseName, &o.Pickup.Address, &o.Pickup.Pincode, &o.Pickup.Phone,
		&o.Customer.Name, &o.Customer.Phone, &o.Customer.Email, &o.Customer.Address, &o.Customer.City, &o.Customer.State, &o.Customer.Pincode,
		&awb, &courier, &cost, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Status = domain.OrderStatus(status)
	o.PaymentMode = ratesdomain.PaymentMode(paymentMode)
	o.AWBNumber = awb.String
	o.CourierName = courier.String
	o.ShippingCost = cost.Float64
	return &o, nil
}
