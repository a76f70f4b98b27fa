package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"shipquickr/internal/features/rates/domain"
	"shipquickr/internal/features/rates/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAdapter is a canned CourierAdapter for testing.
type stubAdapter struct {
	name   string
	quotes []domain.RateQuote
	panics bool
	delay  time.Duration
	calls  atomic.Int32
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Quote(ctx context.Context, spec domain.ShipmentSpec) []domain.RateQuote {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.panics {
		panic("upstream returned garbage")
	}
	return s.quotes
}

func quoteFrom(provider, courier string, freight float64) domain.RateQuote {
	return domain.RateQuote{Provider: provider, CourierName: courier, RawFreightCharge: freight, RawTotalPrice: freight}
}

func testSpec(t *testing.T) domain.ShipmentSpec {
	t.Helper()
	spec, err := domain.NewShipmentSpec(domain.ShipmentInput{
		OriginPincode:      "110001",
		DestinationPincode: "400001",
		ActualWeightKg:     0.3,
		Dimensions:         domain.Dimensions{LengthCm: 10, WidthCm: 10, HeightCm: 10},
		PaymentMode:        "Prepaid",
		DeclaredValue:      500,
	}, 50)
	require.NoError(t, err)
	return spec
}

func TestOrchestrator_FetchAllQuotes_PartialFailure(t *testing.T) {
	first := &stubAdapter{name: "first", quotes: []domain.RateQuote{quoteFrom("first", "A", 10)}}
	broken := &stubAdapter{name: "broken", panics: true}
	third := &stubAdapter{name: "third", quotes: []domain.RateQuote{quoteFrom("third", "C", 30), quoteFrom("third", "D", 40)}}

	o := NewOrchestrator([]ports.CourierAdapter{first, broken, third})
	quotes := o.FetchAllQuotes(context.Background(), testSpec(t))

	require.Len(t, quotes, 3)
	assert.Equal(t, "A", quotes[0].CourierName)
	assert.Equal(t, "C", quotes[1].CourierName)
	assert.Equal(t, "D", quotes[2].CourierName)
	assert.EqualValues(t, 1, broken.calls.Load())
}

func TestOrchestrator_FetchAllQuotes_AllEmpty(t *testing.T) {
	o := NewOrchestrator([]ports.CourierAdapter{
		&stubAdapter{name: "a"},
		&stubAdapter{name: "b", panics: true},
		&stubAdapter{name: "c", quotes: []domain.RateQuote{}},
	})

	assert.Empty(t, o.FetchAllQuotes(context.Background(), testSpec(t)))
}

func TestOrchestrator_FetchAllQuotes_RunsConcurrently(t *testing.T) {
	var adapters []ports.CourierAdapter
	for _, name := range []string{"a", "b", "c", "d"} {
		adapters = append(adapters, &stubAdapter{
			name:   name,
			delay:  200 * time.Millisecond,
			quotes: []domain.RateQuote{quoteFrom(name, name, 1)},
		})
	}
	o := NewOrchestrator(adapters)

	start := time.Now()
	quotes := o.FetchAllQuotes(context.Background(), testSpec(t))

	assert.Len(t, quotes, 4)
	assert.Less(t, time.Since(start), 700*time.Millisecond)
}

func TestOrchestrator_NoAdapters(t *testing.T) {
	o := NewOrchestrator(nil)

	assert.Empty(t, o.FetchAllQuotes(context.Background(), testSpec(t)))
	assert.Empty(t, o.Adapters())
}
