package domain

import (
	ratesdomain "shipquickr/internal/features/rates/domain"
)

// BookingStatus is the outcome of a courier booking.
type BookingStatus string

const (
	// BookingStatusManifested means the courier registered the shipment for pickup.
	BookingStatusManifested BookingStatus = "manifested"
	// BookingStatusPendingManifest means an AWB exists but registration happens later, outside the booking call.
	BookingStatusPendingManifest BookingStatus = "pending_manifest"
	// BookingStatusFailed means the courier rejected or never completed the booking.
	BookingStatusFailed BookingStatus = "failed"
)

// Address is a postal address with a contact.
type Address struct {
	Name    string
	Phone   string
	Email   string
	Line    string
	City    string
	State   string
	Pincode string
}

// BookingRequest is everything a courier needs to assign an AWB and manifest a shipment.
type BookingRequest struct {
	OrderID     string
	Quote       ratesdomain.FinalQuote
	Spec        ratesdomain.ShipmentSpec
	Warehouse   string
	Pickup      Address
	Consignee   Address
	ProductName string
	Quantity    int
}

// Manifest is what a courier returns from a booking.
type Manifest struct {
	AWBNumber         string
	CourierName       string
	Status            BookingStatus
	ManifestConfirmed bool
}

// BookingResult is returned to the merchant once a shipment is confirmed.
type BookingResult struct {
	OrderID           string        `json:"orderId"`
	AWBNumber         string        `json:"awbNumber"`
	CourierName       string        `json:"courierName"`
	Status            BookingStatus `json:"bookingStatus"`
	ManifestConfirmed bool          `json:"manifestConfirmed"`
	ShippingCost      float64       `json:"shippingCost"`
	WalletBalance     float64       `json:"walletBalance"`
}

// CancellationResult is returned once a booked shipment is cancelled.
type CancellationResult struct {
	OrderID       string  `json:"orderId"`
	RefundAmount  float64 `json:"refundAmount"`
	WalletBalance float64 `json:"walletBalance"`
}
