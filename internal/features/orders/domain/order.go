package domain

import (
	"errors"
	"time"

	ratesdomain "shipquickr/internal/features/rates/domain"
)

// OrderStatus represents the current state of an order.
type OrderStatus string

const (
	// OrderStatusUnshipped indicates the order is waiting to be booked with a courier.
	OrderStatusUnshipped OrderStatus = "unshipped"
	// OrderStatusManifested indicates the courier has registered the shipment for pickup.
	OrderStatusManifested OrderStatus = "manifested"
	// OrderStatusPendingManifest indicates an AWB was assigned but registration with the courier is deferred.
	OrderStatusPendingManifest OrderStatus = "pending_manifest"
	// OrderStatusCancelled indicates a booked shipment was cancelled and refunded.
	OrderStatusCancelled OrderStatus = "cancelled"
)

var (
	// ErrOrderNotFound is returned when the order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrStatusConflict is returned when a status transition finds the order in an unexpected state.
	ErrStatusConflict = errors.New("order status changed concurrently")
)

// PickupLocation is the warehouse the courier collects from.
type PickupLocation struct {
	WarehouseName string `json:"warehouse_name"`
	Address       string `json:"address"`
	Pincode       string `json:"pincode"`
	Phone         string `json:"phone"`
}

// Customer is the consignee.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Order represents a merchant order as far as shipping needs it.
type Order struct {
	// ID is the unique identifier for the order. It doubles as the booking idempotency key.
	ID string `json:"order_id"`
	// UserID is the merchant that owns the order and the wallet it is paid from.
	UserID string `json:"user_id"`
	// Status represents the current state of the order.
	Status OrderStatus `json:"status"`
	// PaymentMode is COD or Prepaid.
	PaymentMode ratesdomain.PaymentMode `json:"payment_mode"`
	// DeclaredValue is the merchandise value.
	DeclaredValue float64 `json:"declared_value"`
	// CollectableValue is what the courier collects on delivery for COD orders.
	CollectableValue float64 `json:"collectable_value"`
	// WeightKg is the actual package weight.
	WeightKg float64 `json:"weight_kg"`
	// Dimensions are the package dimensions.
	Dimensions ratesdomain.Dimensions `json:"dimensions"`
	// ProductName describes the contents for the courier manifest.
	ProductName string `json:"product_name"`
	// Quantity is the number of units in the package.
	Quantity int `json:"quantity"`
	// Pickup is where the courier collects the package.
	Pickup PickupLocation `json:"pickup"`
	// Customer is where the package goes.
	Customer Customer `json:"customer"`
	// AWBNumber is set once the order is booked.
	AWBNumber string `json:"awb_number,omitempty"`
	// CourierName is set once the order is booked.
	CourierName string `json:"courier_name,omitempty"`
	// ShippingCost is the final price charged for the booking.
	ShippingCost float64 `json:"shipping_cost,omitempty"`
	// CreatedAt is the timestamp when the order was created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the timestamp of the last status change.
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingUpdate is what a successful booking writes back to the order.
type BookingUpdate struct {
	Status       OrderStatus
	AWBNumber    string
	CourierName  string
	ShippingCost float64
}

// ShipmentSpec builds the rate shopping input for the order.
func (o *Order) ShipmentSpec(declaredFloor float64) (ratesdomain.ShipmentSpec, error) {
	return ratesdomain.NewShipmentSpec(ratesdomain.ShipmentInput{
		OriginPincode:      o.Pickup.Pincode,
		DestinationPincode: o.Customer.Pincode,
		ActualWeightKg:     o.WeightKg,
		Dimensions:         o.Dimensions,
		PaymentMode:        string(o.PaymentMode),
		DeclaredValue:      o.DeclaredValue,
		CollectableValue:   o.CollectableValue,
	}, declaredFloor)
}

// IsBooked reports whether the order holds a live courier booking.
func (o *Order) IsBooked() bool {
	return o.Status == OrderStatusManifested || o.Status == OrderStatusPendingManifest
}
