package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipquickr/internal/core/cache"
	"shipquickr/internal/core/events"
	"shipquickr/internal/core/logger"
	ordersdomain "shipquickr/internal/features/orders/domain"
	orderports "shipquickr/internal/features/orders/ports"
	ratesdomain "shipquickr/internal/features/rates/domain"
	ratesservice "shipquickr/internal/features/rates/service"
	"shipquickr/internal/features/shipments/domain"
	"shipquickr/internal/features/shipments/ports"
	walletdomain "shipquickr/internal/features/wallet/domain"
	walletports "shipquickr/internal/features/wallet/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrAlreadyProcessed is returned when the order is locked by another booking or no longer unshipped.
	ErrAlreadyProcessed = errors.New("order already processed")
	// ErrInsufficientFunds is returned when a prepaid order costs more than the wallet holds.
	ErrInsufficientFunds = walletdomain.ErrInsufficientFunds
	// ErrCourierUnavailable is returned when the selected courier cannot quote or book the shipment.
	ErrCourierUnavailable = errors.New("courier unavailable")
	// ErrOrderNotFound is returned when the order does not exist.
	ErrOrderNotFound = ordersdomain.ErrOrderNotFound
	// ErrNotCancellable is returned when cancelling an order that holds no booking.
	ErrNotCancellable = errors.New("order has no booking to cancel")
	// ErrAmbiguousCourier is returned when the courier name is offered by several providers
	// and the request does not say which one.
	ErrAmbiguousCourier = ratesservice.ErrAmbiguousQuote
)

const lockKeyPrefix = "booking:"

// DefaultLockTTL bounds a booking attempt when no TTL is configured.
const DefaultLockTTL = 2 * time.Minute

// Dispatcher books a priced quote with its courier, debits the wallet and records the result.
type Dispatcher struct {
	orders        orderports.OrderStore
	wallet        walletports.Wallet
	quotes        ports.QuoteSelector
	tx            ports.TxRunner
	locks         cache.Cache
	publisher     events.Publisher
	bookers       map[string]ports.CourierBooker
	declaredFloor float64
	lockTTL       time.Duration
	now           func() time.Time
}

// Dependencies groups the collaborators of a Dispatcher.
type Dependencies struct {
	Orders    orderports.OrderStore
	Wallet    walletports.Wallet
	Quotes    ports.QuoteSelector
	Tx        ports.TxRunner
	Locks     cache.Cache
	Publisher events.Publisher
	Bookers   []ports.CourierBooker
}

// NewDispatcher creates a new instance of Dispatcher.
// Bookers are matched to quotes by Name, which must equal the quote's Provider.
func NewDispatcher(deps Dependencies, declaredFloor float64, lockTTL time.Duration) *Dispatcher {
	bookers := make(map[string]ports.CourierBooker, len(deps.Bookers))
	for _, b := range deps.Bookers {
		bookers[b.Name()] = b
	}

	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}

	return &Dispatcher{
		orders:        deps.Orders,
		wallet:        deps.Wallet,
		quotes:        deps.Quotes,
		tx:            deps.Tx,
		locks:         deps.Locks,
		publisher:     publisher,
		bookers:       bookers,
		declaredFloor: declaredFloor,
		lockTTL:       lockTTL,
		now:           time.Now,
	}
}

// ConfirmShipment books the order with the selected courier.
// The wallet is debited only after the courier confirmed the booking, and in the same
// transaction that moves the order out of unshipped.
func (d *Dispatcher) ConfirmShipment(ctx context.Context, orderID string, sel ratesdomain.QuoteSelection) (*domain.BookingResult, error) {
	log := logger.ForOrder(orderID).With(zap.Stringer("courier", sel))

	release, err := d.lock(ctx, orderID)
	if err != nil {
		return nil, err
	}
	defer release()

	order, err := d.orders.FindUnshipped(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, ErrAlreadyProcessed
	}

	spec, err := order.ShipmentSpec(d.declaredFloor)
	if err != nil {
		return nil, err
	}

	quote, err := d.quotes.SelectQuote(ctx, spec, sel)
	if err != nil {
		switch {
		case errors.Is(err, ratesservice.ErrQuoteNotFound):
			return nil, fmt.Errorf("%w: no quote from %q for this shipment", ErrCourierUnavailable, sel)
		case errors.Is(err, ratesservice.ErrAmbiguousQuote):
			return nil, err
		}
		return nil, fmt.Errorf("failed to resolve quote: %w", err)
	}

	booker, ok := d.bookers[quote.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: no booking integration for provider %q", ErrCourierUnavailable, quote.Provider)
	}

	price := quote.FinalTotalPrice
	// a free prepaid quote has nothing to debit
	charge := !spec.IsCOD() && price > 0

	if charge {
		balance, err := d.wallet.GetBalance(ctx, order.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to read wallet balance: %w", err)
		}
		if balance < price {
			return nil, fmt.Errorf("%w: balance %.2f, price %.2f", ErrInsufficientFunds, balance, price)
		}
	}

	manifest, err := booker.Book(ctx, bookingRequest(order, spec, *quote))
	if err != nil {
		log.Warn("Courier booking failed, order left unshipped", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCourierUnavailable, err)
	}

	update := ordersdomain.BookingUpdate{
		Status:       orderStatus(manifest.Status),
		AWBNumber:    manifest.AWBNumber,
		CourierName:  manifest.CourierName,
		ShippingCost: price,
	}

	var balance float64
	err = d.tx.RunInTx(ctx, func(ctx context.Context) error {
		if charge {
			b, err := d.wallet.Debit(ctx, order.UserID, price, order.ID)
			if err != nil {
				return err
			}
			balance = b
		}
		return d.orders.UpdateBookingResult(ctx, order.ID, update)
	})
	if err != nil {
		log.Error("Shipment booked with courier but not recorded, needs manual reconciliation",
			zap.String("awb", manifest.AWBNumber),
			zap.String("courier_name", manifest.CourierName),
			zap.Float64("price", price),
			zap.Error(err),
		)
		switch {
		case errors.Is(err, ordersdomain.ErrStatusConflict):
			return nil, ErrAlreadyProcessed
		case errors.Is(err, walletdomain.ErrInsufficientFunds):
			return nil, fmt.Errorf("%w: balance changed during booking", ErrInsufficientFunds)
		default:
			return nil, fmt.Errorf("failed to record booking: %w", err)
		}
	}

	if !charge {
		balance = d.balanceOrZero(ctx, order.UserID)
	}

	log.Info("Shipment booked",
		zap.String("awb", manifest.AWBNumber),
		zap.String("status", string(manifest.Status)),
		zap.Float64("price", price),
	)

	d.publish(ctx, domain.ShipmentEvent{
		Type:        domain.EventShipmentBooked,
		OrderID:     order.ID,
		UserID:      order.UserID,
		AWBNumber:   manifest.AWBNumber,
		CourierName: manifest.CourierName,
		Status:      manifest.Status,
		Amount:      price,
	})

	return &domain.BookingResult{
		OrderID:           order.ID,
		AWBNumber:         manifest.AWBNumber,
		CourierName:       manifest.CourierName,
		Status:            manifest.Status,
		ManifestConfirmed: manifest.ManifestConfirmed,
		ShippingCost:      price,
		WalletBalance:     balance,
	}, nil
}

// CancelShipment cancels a booked order and refunds prepaid shipping to the wallet.
// Cancelling the AWB with the courier itself is left to operations.
func (d *Dispatcher) CancelShipment(ctx context.Context, orderID, reason string) (*domain.CancellationResult, error) {
	if reason == "" {
		reason = "cancelled by merchant"
	}

	release, err := d.lock(ctx, orderID)
	if err != nil {
		return nil, err
	}
	defer release()

	order, err := d.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsBooked() {
		return nil, ErrNotCancellable
	}

	var refund float64
	if order.PaymentMode != ratesdomain.PaymentModeCOD {
		refund = order.ShippingCost
	}

	var balance float64
	err = d.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := d.orders.MarkCancelled(ctx, order.ID); err != nil {
			return err
		}
		if refund <= 0 {
			return nil
		}
		b, err := d.wallet.Credit(ctx, order.UserID, refund, order.ID, reason)
		if err != nil {
			return err
		}
		balance = b
		return nil
	})
	if err != nil {
		if errors.Is(err, ordersdomain.ErrStatusConflict) {
			return nil, ErrNotCancellable
		}
		return nil, fmt.Errorf("failed to cancel shipment: %w", err)
	}

	if refund <= 0 {
		balance = d.balanceOrZero(ctx, order.UserID)
	}

	logger.ForOrder(order.ID).Info("Shipment cancelled",
		zap.String("awb", order.AWBNumber),
		zap.Float64("refund", refund),
	)

	d.publish(ctx, domain.ShipmentEvent{
		Type:        domain.EventShipmentCancelled,
		OrderID:     order.ID,
		UserID:      order.UserID,
		AWBNumber:   order.AWBNumber,
		CourierName: order.CourierName,
		Amount:      refund,
		Reason:      reason,
	})

	return &domain.CancellationResult{
		OrderID:       order.ID,
		RefundAmount:  refund,
		WalletBalance: balance,
	}, nil
}

// lock takes the per-order booking lock. A held lock means another request is working on the order.
// The release only frees the lock while this caller still owns it.
func (d *Dispatcher) lock(ctx context.Context, orderID string) (func(), error) {
	key := lockKeyPrefix + orderID

	token := []byte(uuid.NewString())

	ok, err := d.locks.SetNX(ctx, key, token, d.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire booking lock: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyProcessed
	}

	return func() {
		released, err := d.locks.CompareAndDelete(context.WithoutCancel(ctx), key, token)
		if err != nil {
			logger.ForOrder(orderID).Warn("Failed to release booking lock", zap.Error(err))
			return
		}
		if !released {
			logger.ForOrder(orderID).Warn("Booking lock expired before release")
		}
	}, nil
}

func (d *Dispatcher) balanceOrZero(ctx context.Context, userID string) float64 {
	balance, err := d.wallet.GetBalance(ctx, userID)
	if err != nil {
		logger.Get().Warn("Failed to read wallet balance", zap.String("user_id", userID), zap.Error(err))
		return 0
	}
	return balance
}

// publish is best effort; the booking is already committed.
func (d *Dispatcher) publish(ctx context.Context, ev domain.ShipmentEvent) {
	ev.OccurredAt = d.now().UTC()
	if err := d.publisher.Publish(ctx, ev.OrderID, ev); err != nil {
		logger.Get().Warn("Failed to publish shipment event",
			zap.String("type", ev.Type),
			zap.String("order_id", ev.OrderID),
			zap.Error(err),
		)
	}
}

func bookingRequest(order *ordersdomain.Order, spec ratesdomain.ShipmentSpec, quote ratesdomain.FinalQuote) domain.BookingRequest {
	return domain.BookingRequest{
		OrderID:   order.ID,
		Quote:     quote,
		Spec:      spec,
		Warehouse: order.Pickup.WarehouseName,
		Pickup: domain.Address{
			Name:    order.Pickup.WarehouseName,
			Phone:   order.Pickup.Phone,
			Line:    order.Pickup.Address,
			Pincode: order.Pickup.Pincode,
		},
		Consignee: domain.Address{
			Name:    order.Customer.Name,
			Phone:   order.Customer.Phone,
			Email:   order.Customer.Email,
			Line:    order.Customer.Address,
			City:    order.Customer.City,
			State:   order.Customer.State,
			Pincode: order.Customer.Pincode,
		},
		ProductName: order.ProductName,
		Quantity:    order.Quantity,
	}
}

func orderStatus(s domain.BookingStatus) ordersdomain.OrderStatus {
	if s == domain.BookingStatusPendingManifest {
		return ordersdomain.OrderStatusPendingManifest
	}
	return ordersdomain.OrderStatusManifested
}

var _ ports.ShipmentService = (*Dispatcher)(nil)
