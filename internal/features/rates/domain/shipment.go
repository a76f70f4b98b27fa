package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// PaymentMode is how the end customer pays for the goods.
type PaymentMode string

const (
	// PaymentModeCOD means the courier collects the goods value on delivery.
	PaymentModeCOD PaymentMode = "COD"
	// PaymentModePrepaid means the goods are already paid for.
	PaymentModePrepaid PaymentMode = "Prepaid"
)

var (
	// ErrInvalidShipment is the parent of every shipment validation error.
	ErrInvalidShipment = errors.New("invalid shipment")
	// ErrInvalidPincode is returned when a pincode is not six digits.
	ErrInvalidPincode = fmt.Errorf("%w: pincode must be 6 digits", ErrInvalidShipment)
	// ErrInvalidPaymentMode is returned for anything other than COD or Prepaid.
	ErrInvalidPaymentMode = fmt.Errorf("%w: payment mode must be COD or Prepaid", ErrInvalidShipment)
	// ErrMissingCollectableValue is returned for COD shipments without a positive collectable value.
	ErrMissingCollectableValue = fmt.Errorf("%w: collectable value is required for COD", ErrInvalidShipment)
	// ErrNegativeValue is returned when a declared or collectable value is negative.
	ErrNegativeValue = fmt.Errorf("%w: values cannot be negative", ErrInvalidShipment)
)

var pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// ParsePaymentMode accepts COD and Prepaid in any letter case.
func ParsePaymentMode(s string) (PaymentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cod":
		return PaymentModeCOD, nil
	case "prepaid":
		return PaymentModePrepaid, nil
	default:
		return "", ErrInvalidPaymentMode
	}
}

// Dimensions are the outer package dimensions in centimetres.
type Dimensions struct {
	LengthCm float64 `json:"length"`
	WidthCm  float64 `json:"width"`
	HeightCm float64 `json:"height"`
}

// ShipmentInput is the raw, unvalidated description of a shipment.
type ShipmentInput struct {
	OriginPincode      string
	DestinationPincode string
	ActualWeightKg     float64
	Dimensions         Dimensions
	PaymentMode        string
	DeclaredValue      float64
	CollectableValue   float64
}

// ShipmentSpec is a validated shipment ready for rate shopping.
// Weight and dimensions are kept as received; each courier normalizes them with its own WeightPolicy.
type ShipmentSpec struct {
	OriginPincode      string      `json:"pickupPincode"`
	DestinationPincode string      `json:"destinationPincode"`
	ActualWeightKg     float64     `json:"weight"`
	Dimensions         Dimensions  `json:"dimensions"`
	PaymentMode        PaymentMode `json:"paymentMode"`
	DeclaredValue      float64     `json:"declaredValue"`
	CollectableValue   float64     `json:"collectableValue"`
}

// NewShipmentSpec validates the input and clamps the declared value.
// The declared value is raised to at least the collectable value (COD only) and to at least declaredFloor.
func NewShipmentSpec(in ShipmentInput, declaredFloor float64) (ShipmentSpec, error) {
	origin := strings.TrimSpace(in.OriginPincode)
	destination := strings.TrimSpace(in.DestinationPincode)
	if !pincodePattern.MatchString(origin) || !pincodePattern.MatchString(destination) {
		return ShipmentSpec{}, ErrInvalidPincode
	}

	mode, err := ParsePaymentMode(in.PaymentMode)
	if err != nil {
		return ShipmentSpec{}, err
	}

	if in.DeclaredValue < 0 || in.CollectableValue < 0 {
		return ShipmentSpec{}, ErrNegativeValue
	}

	collectable := 0.0
	if mode == PaymentModeCOD {
		if in.CollectableValue <= 0 {
			return ShipmentSpec{}, ErrMissingCollectableValue
		}
		collectable = in.CollectableValue
	}

	declared := max(in.DeclaredValue, collectable, declaredFloor)

	return ShipmentSpec{
		OriginPincode:      origin,
		DestinationPincode: destination,
		ActualWeightKg:     in.ActualWeightKg,
		Dimensions:         in.Dimensions,
		PaymentMode:        mode,
		DeclaredValue:      declared,
		CollectableValue:   collectable,
	}, nil
}

// IsCOD reports whether the courier has to collect cash.
func (s ShipmentSpec) IsCOD() bool {
	return s.PaymentMode == PaymentModeCOD
}

// Fingerprint identifies the shipment for quote caching.
// Two specs with the same fingerprint get the same quotes.
func (s ShipmentSpec) Fingerprint() string {
	canonical := fmt.Sprintf("%s|%s|%.3f|%.2f|%.2f|%.2f|%s|%.2f|%.2f",
		s.OriginPincode, s.DestinationPincode, s.ActualWeightKg,
		s.Dimensions.LengthCm, s.Dimensions.WidthCm, s.Dimensions.HeightCm,
		s.PaymentMode, s.DeclaredValue, s.CollectableValue,
	)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
