package domain

import "time"

// Event types published on the shipment topic.
const (
	EventShipmentBooked    = "shipment.booked"
	EventShipmentCancelled = "shipment.cancelled"
)

// ShipmentEvent is the payload published for every booking state change.
// It is keyed by order ID so all events of one order stay ordered.
type ShipmentEvent struct {
	Type        string        `json:"type"`
	OrderID     string        `json:"orderId"`
	UserID      string        `json:"userId"`
	AWBNumber   string        `json:"awbNumber,omitempty"`
	CourierName string        `json:"courierName,omitempty"`
	Status      BookingStatus `json:"status,omitempty"`
	Amount      float64       `json:"amount"`
	Reason      string        `json:"reason,omitempty"`
	OccurredAt  time.Time     `json:"occurredAt"`
}
