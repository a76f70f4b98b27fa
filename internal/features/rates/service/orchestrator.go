package service

import (
	"context"
	"fmt"
	"time"

	"shipquickr/internal/core/logger"
	"shipquickr/internal/features/rates/domain"
	"shipquickr/internal/features/rates/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Orchestrator fans a rate request out to every registered courier adapter.
type Orchestrator struct {
	adapters []ports.CourierAdapter
}

// NewOrchestrator creates an Orchestrator over the given adapters.
func NewOrchestrator(adapters []ports.CourierAdapter) *Orchestrator {
	return &Orchestrator{
		adapters: adapters,
	}
}

// Adapters returns the registered adapters in registration order.
func (o *Orchestrator) Adapters() []ports.CourierAdapter {
	return o.adapters
}

// FetchAllQuotes queries every adapter concurrently and merges their quotes in registration order.
// Every adapter runs to completion; a panicking adapter contributes nothing and never affects the others.
// There is no global deadline, adapters bound their own latency.
func (o *Orchestrator) FetchAllQuotes(ctx context.Context, spec domain.ShipmentSpec) []domain.RateQuote {
	results := make([][]domain.RateQuote, len(o.adapters))

	var g errgroup.Group
	for i, adapter := range o.adapters {
		i, adapter := i, adapter
		g.Go(func() error {
			results[i] = quoteSafely(ctx, adapter, spec)
			return nil
		})
	}
	_ = g.Wait()

	var merged []domain.RateQuote
	for _, quotes := range results {
		merged = append(merged, quotes...)
	}
	return merged
}

func quoteSafely(ctx context.Context, adapter ports.CourierAdapter, spec domain.ShipmentSpec) (quotes []domain.RateQuote) {
	log := logger.ForCourier(adapter.Name())
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("Courier adapter panicked", zap.String("panic", fmt.Sprint(r)))
			quotes = nil
		}
	}()

	quotes = adapter.Quote(ctx, spec)
	log.Debug("Courier quotes received",
		zap.Int("count", len(quotes)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return quotes
}
