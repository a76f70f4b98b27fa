package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"shipquickr/internal/core/cache"
	"shipquickr/internal/core/logger"
	"shipquickr/internal/features/rates/domain"
	"shipquickr/internal/features/rates/ports"

	"go.uber.org/zap"
)

var (
	// ErrNoRatesFound is returned when no adapter produced a quote for the shipment.
	ErrNoRatesFound = errors.New("no rates found")
	// ErrQuoteNotFound is returned when the selected courier has no quote for the shipment.
	ErrQuoteNotFound = errors.New("quote not found for selected courier")
	// ErrAmbiguousQuote is returned when the courier name is offered by several providers
	// and the selection does not name one.
	ErrAmbiguousQuote = errors.New("courier offered by more than one provider")
)

const quoteCachePrefix = "quotes:"

// RateServiceImpl implements ports.RateService.
type RateServiceImpl struct {
	orchestrator *Orchestrator
	markup       ports.MarkupSource
	cache        cache.Cache
	ttl          time.Duration
}

// NewRateService creates a new RateServiceImpl.
// A nil cache disables quote snapshots, every SelectQuote then re-quotes.
func NewRateService(orchestrator *Orchestrator, markup ports.MarkupSource, c cache.Cache, ttl time.Duration) *RateServiceImpl {
	return &RateServiceImpl{
		orchestrator: orchestrator,
		markup:       markup,
		cache:        c,
		ttl:          ttl,
	}
}

// GetRates fetches raw quotes from every courier, prices them and snapshots the result.
func (s *RateServiceImpl) GetRates(ctx context.Context, spec domain.ShipmentSpec) ([]domain.FinalQuote, error) {
	raw := s.orchestrator.FetchAllQuotes(ctx, spec)
	if len(raw) == 0 {
		return nil, ErrNoRatesFound
	}

	rule, err := s.markup.ActiveRule(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load markup rule: %w", err)
	}

	quotes := ApplyMarkup(raw, rule, spec.PaymentMode)
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].FinalTotalPrice < quotes[j].FinalTotalPrice
	})

	s.snapshot(ctx, spec, quotes)
	return quotes, nil
}

// SelectQuote returns the selected quote, preferring the snapshot the user was shown.
// Several rows from one provider resolve to the cheapest; rows from different providers
// need sel.Provider.
func (s *RateServiceImpl) SelectQuote(ctx context.Context, spec domain.ShipmentSpec, sel domain.QuoteSelection) (*domain.FinalQuote, error) {
	quotes, ok := s.loadSnapshot(ctx, spec)
	if !ok {
		var err error
		quotes, err = s.GetRates(ctx, spec)
		if errors.Is(err, ErrNoRatesFound) {
			return nil, ErrQuoteNotFound
		}
		if err != nil {
			return nil, err
		}
	}

	var match *domain.FinalQuote
	for i := range quotes {
		if !sel.Matches(quotes[i].RateQuote) {
			continue
		}
		if match == nil {
			match = &quotes[i]
			continue
		}
		if match.Provider != quotes[i].Provider {
			return nil, fmt.Errorf("%w: %q from %s and %s", ErrAmbiguousQuote, sel.CourierName, match.Provider, quotes[i].Provider)
		}
	}
	if match == nil {
		return nil, ErrQuoteNotFound
	}
	return match, nil
}

func (s *RateServiceImpl) snapshot(ctx context.Context, spec domain.ShipmentSpec, quotes []domain.FinalQuote) {
	if s.cache == nil {
		return
	}

	if err := cache.SetJSON(ctx, s.cache, quoteCachePrefix+spec.Fingerprint(), quotes, s.ttl); err != nil {
		logger.Get().Warn("Failed to cache quote snapshot", zap.Error(err))
	}
}

func (s *RateServiceImpl) loadSnapshot(ctx context.Context, spec domain.ShipmentSpec) ([]domain.FinalQuote, bool) {
	if s.cache == nil {
		return nil, false
	}

	var quotes []domain.FinalQuote
	err := cache.GetJSON(ctx, s.cache, quoteCachePrefix+spec.Fingerprint(), &quotes)
	switch {
	case errors.Is(err, cache.ErrKeyNotFound):
		return nil, false
	case err != nil:
		logger.Get().Warn("Quote snapshot unavailable", zap.Error(err))
		return nil, false
	}
	return quotes, true
}
