package adapters

import (
	"context"
	"strings"

	"shipquickr/internal/core/config"
	"shipquickr/internal/core/logger"
	"shipquickr/internal/features/rates/domain"
	shipmentdomain "shipquickr/internal/features/shipments/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ManualAdapter prices a courier from a static rate card and books it without any remote call.
// Operations staff hand the generated AWB to the courier, so bookings stay pending_manifest.
type ManualAdapter struct {
	cfg    config.ManualCourierConfig
	policy domain.WeightPolicy
	newID  func() string
}

// NewManualAdapter creates a ManualAdapter for one rate card courier.
func NewManualAdapter(cfg config.ManualCourierConfig) *ManualAdapter {
	return &ManualAdapter{
		cfg: cfg,
		policy: domain.WeightPolicy{
			VolumetricDivisor: cfg.VolumetricDivisor,
			MinBillableKg:     cfg.MinBillableKg,
		},
		newID: uuid.NewString,
	}
}

// Name implements ports.CourierAdapter.
func (a *ManualAdapter) Name() string {
	return a.cfg.Name
}

// Quote implements ports.CourierAdapter. It always yields exactly one quote.
func (a *ManualAdapter) Quote(ctx context.Context, spec domain.ShipmentSpec) []domain.RateQuote {
	chargeable := domain.ChargeableWeight(spec.ActualWeightKg, spec.Dimensions, a.policy)
	freight, cod := cardPrice(a.cfg.Card, chargeable, spec)

	q := domain.NewRateQuote(a.cfg.Name, a.cfg.Name, a.serviceType(), chargeable, freight, cod, spec.PaymentMode)
	q.ExpectedDeliveryDays = a.cfg.Card.ExpectedDeliveryDays
	return []domain.RateQuote{q}
}

// Book implements ports.CourierBooker by synthesizing an AWB locally.
func (a *ManualAdapter) Book(ctx context.Context, req shipmentdomain.BookingRequest) (*shipmentdomain.Manifest, error) {
	awb := a.awbPrefix() + strings.ToUpper(strings.ReplaceAll(a.newID(), "-", "")[:12])

	logger.ForCourier(a.Name()).Info("Manual AWB generated, awaiting manifest by operations",
		zap.String("order_id", req.OrderID),
		zap.String("awb", awb),
	)

	return &shipmentdomain.Manifest{
		AWBNumber:         awb,
		CourierName:       a.cfg.Name,
		Status:            shipmentdomain.BookingStatusPendingManifest,
		ManifestConfirmed: false,
	}, nil
}

func (a *ManualAdapter) serviceType() string {
	if st, ok := domain.MapServiceName(a.cfg.ServiceType); ok {
		return st.Title()
	}
	return a.cfg.ServiceType
}

func (a *ManualAdapter) awbPrefix() string {
	if a.cfg.AWBPrefix != "" {
		return strings.ToUpper(a.cfg.AWBPrefix)
	}
	return "SQ"
}
