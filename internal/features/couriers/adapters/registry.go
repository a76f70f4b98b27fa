package adapters

import (
	"context"

	"shipquickr/internal/core/config"
	"shipquickr/internal/core/logger"
	"shipquickr/internal/features/rates/domain"
	shipmentdomain "shipquickr/internal/features/shipments/domain"

	"go.uber.org/zap"
)

// Courier is an integration that can both quote and book.
type Courier interface {
	Name() string
	Quote(ctx context.Context, spec domain.ShipmentSpec) []domain.RateQuote
	Book(ctx context.Context, req shipmentdomain.BookingRequest) (*shipmentdomain.Manifest, error)
}

// Build returns the enabled API couriers followed by one manual courier per rate card.
func Build(cfg *config.AppConfig, cards *config.RateCards) []Courier {
	var couriers []Courier
	proxySettings := cfg.Proxy.Settings()

	if cfg.Shiprocket.Enabled {
		couriers = append(couriers, NewShiprocketAdapter(cfg.Shiprocket, proxySettings))
	}
	if cfg.Delhivery.Enabled {
		couriers = append(couriers, NewDelhiveryAdapter(cfg.Delhivery, proxySettings))
	}
	if cfg.EcomExpress.Enabled {
		if cards == nil || len(cards.EcomExpress) == 0 {
			logger.Get().Warn("Ecom Express enabled without rate cards, it will not quote")
		} else {
			couriers = append(couriers, NewEcomExpressAdapter(cfg.EcomExpress, cards.EcomExpress, proxySettings))
		}
	}

	couriers = append(couriers, Manual(cards)...)

	names := make([]string, 0, len(couriers))
	for _, c := range couriers {
		names = append(names, c.Name())
	}
	logger.Get().Info("Couriers registered", zap.Strings("couriers", names))

	return couriers
}

// Manual returns one ManualAdapter per configured rate card courier.
func Manual(cards *config.RateCards) []Courier {
	if cards == nil {
		return nil
	}
	couriers := make([]Courier, 0, len(cards.Manual))
	for _, m := range cards.Manual {
		couriers = append(couriers, NewManualAdapter(m))
	}
	return couriers
}
