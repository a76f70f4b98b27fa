package adapters

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shipquickr/internal/core/config"
	"shipquickr/internal/core/httpclient"
	"shipquickr/internal/core/logger"
	"shipquickr/internal/core/proxy"
	"shipquickr/internal/features/rates/domain"
	shipmentdomain "shipquickr/internal/features/shipments/domain"

	"go.uber.org/zap"
)

// ShiprocketName is the provider name carried by Shiprocket quotes.
const ShiprocketName = "shiprocket"

// ShiprocketAdapter talks to the Shiprocket aggregator, which resells many couriers behind one API.
type ShiprocketAdapter struct {
	client  *http.Client
	config  config.ShiprocketConfig
	policy  domain.WeightPolicy
	session *tokenSession
	now     func() time.Time
}

// NewShiprocketAdapter creates a new instance of ShiprocketAdapter.
func NewShiprocketAdapter(cfg config.ShiprocketConfig, proxySettings proxy.Settings) *ShiprocketAdapter {
	a := &ShiprocketAdapter{
		client: httpclient.NewCourierClient(ShiprocketName, cfg.Timeout, proxySettings),
		config: cfg,
		policy: domain.WeightPolicy{
			VolumetricDivisor: cfg.VolumetricDivisor,
			MinBillableKg:     cfg.MinBillableKg,
		},
		now: time.Now,
	}
	a.session = newTokenSession(a.login)
	return a
}

// Name implements ports.CourierAdapter.
func (a *ShiprocketAdapter) Name() string {
	return ShiprocketName
}

// SessionState exposes the token lifecycle for health reporting.
func (a *ShiprocketAdapter) SessionState() SessionState {
	return a.session.State()
}

// Quote implements ports.CourierAdapter.
func (a *ShiprocketAdapter) Quote(ctx context.Context, spec domain.ShipmentSpec) []domain.RateQuote {
	quotes, err := a.fetchQuotes(ctx, spec)
	if err != nil {
		logger.ForCourier(ShiprocketName).Warn("Shiprocket quote failed",
			zap.String("origin", spec.OriginPincode),
			zap.String("destination", spec.DestinationPincode),
			zap.Error(err),
		)
		return nil
	}
	return quotes
}

type shiprocketLoginResponse struct {
	Token string `json:"token"`
}

func (a *ShiprocketAdapter) login(ctx context.Context) (string, time.Time, error) {
	req, err := newJSONRequest(ctx, http.MethodPost, a.config.URL+"/auth/login", map[string]string{
		"email":    a.config.Email,
		"password": a.config.Password,
	})
	if err != nil {
		return "", time.Time{}, err
	}

	var resp shiprocketLoginResponse
	if err := doJSON(a.client, req, &resp); err != nil {
		return "", time.Time{}, err
	}

	logger.ForCourier(ShiprocketName).Info("Shiprocket session established")
	return resp.Token, a.now().Add(a.config.TokenTTL), nil
}

type shiprocketServiceabilityResponse struct {
	Status int `json:"status"`
	Data   struct {
		AvailableCourierCompanies []shiprocketCourier `json:"available_courier_companies"`
	} `json:"data"`
}

type shiprocketCourier struct {
	CourierCompanyID      int     `json:"courier_company_id"`
	CourierName           string  `json:"courier_name"`
	FreightCharge         float64 `json:"freight_charge"`
	CodCharges            float64 `json:"cod_charges"`
	EstimatedDeliveryDays any     `json:"estimated_delivery_days"`
	IsSurface             bool    `json:"is_surface"`
}

func (a *ShiprocketAdapter) fetchQuotes(ctx context.Context, spec domain.ShipmentSpec) ([]domain.RateQuote, error) {
	chargeable := domain.ChargeableWeight(spec.ActualWeightKg, spec.Dimensions, a.policy)

	params := url.Values{}
	params.Set("pickup_postcode", spec.OriginPincode)
	params.Set("delivery_postcode", spec.DestinationPincode)
	params.Set("weight", strconv.FormatFloat(chargeable, 'f', 3, 64))
	params.Set("length", strconv.FormatFloat(spec.Dimensions.LengthCm, 'f', -1, 64))
	params.Set("breadth", strconv.FormatFloat(spec.Dimensions.WidthCm, 'f', -1, 64))
	params.Set("height", strconv.FormatFloat(spec.Dimensions.HeightCm, 'f', -1, 64))
	params.Set("declared_value", strconv.FormatFloat(spec.DeclaredValue, 'f', 2, 64))
	params.Set("cod", "0")
	if spec.IsCOD() {
		params.Set("cod", "1")
	}

	var resp shiprocketServiceabilityResponse
	if err := a.authorized(ctx, http.MethodGet, "/courier/serviceability/?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	quotes := make([]domain.RateQuote, 0, len(resp.Data.AvailableCourierCompanies))
	for _, c := range resp.Data.AvailableCourierCompanies {
		serviceType := "Air"
		if c.IsSurface {
			serviceType = "Surface"
		}

		q := domain.NewRateQuote(ShiprocketName, c.CourierName, serviceType, chargeable, c.FreightCharge, c.CodCharges, spec.PaymentMode)
		if c.EstimatedDeliveryDays != nil {
			q.ExpectedDeliveryDays = fmt.Sprint(c.EstimatedDeliveryDays)
		}
		q.CourierPartnerID = strconv.Itoa(c.CourierCompanyID)
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// authorized performs a call with the session token. A 401 drops the token so the next request logs in again.
func (a *ShiprocketAdapter) authorized(ctx context.Context, method, path string, body, out any) error {
	token, err := a.session.Token(ctx)
	if err != nil {
		return err
	}

	req, err := newJSONRequest(ctx, method, a.config.URL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	err = doJSON(a.client, req, out)
	if isUnauthorized(err) {
		a.session.Invalidate()
	}
	return err
}

type shiprocketOrderItem struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Units        int     `json:"units"`
	SellingPrice float64 `json:"selling_price"`
}

type shiprocketCreateOrderRequest struct {
	OrderID             string                `json:"order_id"`
	OrderDate           string                `json:"order_date"`
	PickupLocation      string                `json:"pickup_location"`
	BillingCustomerName string                `json:"billing_customer_name"`
	BillingAddress      string                `json:"billing_address"`
	BillingCity         string                `json:"billing_city"`
	BillingPincode      string                `json:"billing_pincode"`
	BillingState        string                `json:"billing_state"`
	BillingCountry      string                `json:"billing_country"`
	BillingEmail        string                `json:"billing_email"`
	BillingPhone        string                `json:"billing_phone"`
	ShippingIsBilling   bool                  `json:"shipping_is_billing"`
	OrderItems          []shiprocketOrderItem `json:"order_items"`
	PaymentMethod       string                `json:"payment_method"`
	SubTotal            float64               `json:"sub_total"`
	Length              float64               `json:"length"`
	Breadth             float64               `json:"breadth"`
	Height              float64               `json:"height"`
	Weight              float64               `json:"weight"`
}

type shiprocketCreateOrderResponse struct {
	OrderID    int64  `json:"order_id"`
	ShipmentID int64  `json:"shipment_id"`
	Status     string `json:"status"`
}

type shiprocketAssignAWBResponse struct {
	AWBAssignStatus int `json:"awb_assign_status"`
	Response        struct {
		Data struct {
			AWBCode     string `json:"awb_code"`
			CourierName string `json:"courier_name"`
		} `json:"data"`
	} `json:"response"`
	Message string `json:"message"`
}

type shiprocketPickupResponse struct {
	PickupStatus int `json:"pickup_status"`
	Response     struct {
		PickupScheduledDate string `json:"pickup_scheduled_date"`
	} `json:"response"`
	Message string `json:"message"`
}

// Book implements ports.CourierBooker: create order, assign AWB, then schedule pickup.
// Pickup generation is Shiprocket's manifest step; when it fails the whole booking fails.
func (a *ShiprocketAdapter) Book(ctx context.Context, req shipmentdomain.BookingRequest) (*shipmentdomain.Manifest, error) {
	log := logger.ForCourier(ShiprocketName).With(zap.String("order_id", req.OrderID))

	courierID, err := strconv.Atoi(req.Quote.CourierPartnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid courier company id %q: %w", req.Quote.CourierPartnerID, err)
	}

	paymentMethod := "Prepaid"
	if req.Spec.IsCOD() {
		paymentMethod = "COD"
	}
	subTotal := req.Spec.DeclaredValue
	if req.Spec.IsCOD() {
		subTotal = req.Spec.CollectableValue
	}
	quantity := max(req.Quantity, 1)

	var created shiprocketCreateOrderResponse
	err = a.authorized(ctx, http.MethodPost, "/orders/create/adhoc", shiprocketCreateOrderRequest{
		OrderID:             req.OrderID,
		OrderDate:           a.now().Format("2006-01-02 15:04"),
		PickupLocation:      req.Warehouse,
		BillingCustomerName: req.Consignee.Name,
		BillingAddress:      req.Consignee.Line,
		BillingCity:         req.Consignee.City,
		BillingPincode:      req.Consignee.Pincode,
		BillingState:        req.Consignee.State,
		BillingCountry:      "India",
		BillingEmail:        req.Consignee.Email,
		BillingPhone:        req.Consignee.Phone,
		ShippingIsBilling:   true,
		OrderItems: []shiprocketOrderItem{{
			Name:         req.ProductName,
			SKU:          req.OrderID,
			Units:        quantity,
			SellingPrice: domain.Round2(subTotal / float64(quantity)),
		}},
		PaymentMethod: paymentMethod,
		SubTotal:      subTotal,
		Length:        req.Spec.Dimensions.LengthCm,
		Breadth:       req.Spec.Dimensions.WidthCm,
		Height:        req.Spec.Dimensions.HeightCm,
		Weight:        req.Quote.ChargeableWeightKg,
	}, &created)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if created.ShipmentID == 0 {
		return nil, fmt.Errorf("create order: no shipment id returned (status %q)", created.Status)
	}

	var assigned shiprocketAssignAWBResponse
	err = a.authorized(ctx, http.MethodPost, "/courier/assign/awb", map[string]any{
		"shipment_id": created.ShipmentID,
		"courier_id":  courierID,
	}, &assigned)
	if err != nil {
		return nil, fmt.Errorf("assign awb: %w", err)
	}
	awb := strings.TrimSpace(assigned.Response.Data.AWBCode)
	if assigned.AWBAssignStatus != 1 || awb == "" {
		return nil, fmt.Errorf("assign awb: rejected: %s", assigned.Message)
	}

	var pickup shiprocketPickupResponse
	err = a.authorized(ctx, http.MethodPost, "/courier/generate/pickup", map[string]any{
		"shipment_id": []int64{created.ShipmentID},
	}, &pickup)
	if err == nil && pickup.PickupStatus != 1 {
		err = fmt.Errorf("rejected: %s", pickup.Message)
	}
	if err != nil {
		log.Warn("AWB assigned but pickup failed, AWB is orphaned at the courier", zap.String("awb", awb), zap.Error(err))
		return nil, fmt.Errorf("generate pickup: %w", err)
	}

	courierName := assigned.Response.Data.CourierName
	if courierName == "" {
		courierName = req.Quote.CourierName
	}

	log.Info("Shiprocket shipment manifested",
		zap.String("awb", awb),
		zap.String("pickup_date", pickup.Response.PickupScheduledDate),
	)

	return &shipmentdomain.Manifest{
		AWBNumber:         awb,
		CourierName:       courierName,
		Status:            shipmentdomain.BookingStatusManifested,
		ManifestConfirmed: true,
	}, nil
}
