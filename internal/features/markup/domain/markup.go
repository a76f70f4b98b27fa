package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ChargeType says how a markup amount is applied to a raw charge.
type ChargeType string

const (
	ChargeTypeFixed      ChargeType = "fixed"
	ChargeTypePercentage ChargeType = "percentage"
)

var (
	ErrInvalidChargeType = errors.New("invalid charge type")
	ErrNegativeAmount    = errors.New("markup amount cannot be negative")
)

// MarkupRule is the platform markup layered on top of raw courier prices.
// The most recently created rule is the active one.
type MarkupRule struct {
	ID                  string     `json:"id"`
	FreightChargeType   ChargeType `json:"freight_charge_type"`
	FreightChargeAmount float64    `json:"freight_charge_amount"`
	CodChargeType       ChargeType `json:"cod_charge_type"`
	CodChargeAmount     float64    `json:"cod_charge_amount"`
	CreatedAt           time.Time  `json:"created_at"`
}

// NewMarkupRule creates a new MarkupRule and validates it.
func NewMarkupRule(freightType ChargeType, freightAmount float64, codType ChargeType, codAmount float64) (*MarkupRule, error) {
	if !freightType.valid() || !codType.valid() {
		return nil, ErrInvalidChargeType
	}
	if freightAmount < 0 || codAmount < 0 {
		return nil, ErrNegativeAmount
	}

	return &MarkupRule{
		ID:                  uuid.NewString(),
		FreightChargeType:   freightType,
		FreightChargeAmount: freightAmount,
		CodChargeType:       codType,
		CodChargeAmount:     codAmount,
		CreatedAt:           time.Now().UTC(),
	}, nil
}

func (t ChargeType) valid() bool {
	return t == ChargeTypeFixed || t == ChargeTypePercentage
}
