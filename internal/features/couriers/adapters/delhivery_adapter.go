package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"shipquickr/internal/core/config"
	"shipquickr/internal/core/httpclient"
	"shipquickr/internal/core/logger"
	"shipquickr/internal/core/proxy"
	"shipquickr/internal/features/rates/domain"
	shipmentdomain "shipquickr/internal/features/shipments/domain"

	"go.uber.org/zap"
)

// DelhiveryName is the provider name carried by Delhivery quotes.
const DelhiveryName = "delhivery"

// delhiveryCourierName is the only service this integration sells.
const delhiveryCourierName = "Delhivery Surface"

// delhiveryBand is one weight-banded Delhivery account. Each band has its own API token.
type delhiveryBand struct {
	Label string
	MaxKg float64
	Token string
}

// DelhiveryAdapter quotes and books Delhivery surface shipments directly.
type DelhiveryAdapter struct {
	client *http.Client
	config config.DelhiveryConfig
	policy domain.WeightPolicy
	bands  []delhiveryBand
}

// NewDelhiveryAdapter creates a new instance of DelhiveryAdapter.
func NewDelhiveryAdapter(cfg config.DelhiveryConfig, proxySettings proxy.Settings) *DelhiveryAdapter {
	return &DelhiveryAdapter{
		client: httpclient.NewCourierClient(DelhiveryName, cfg.Timeout, proxySettings),
		config: cfg,
		policy: domain.WeightPolicy{
			VolumetricDivisor: cfg.VolumetricDivisor,
			MinBillableKg:     cfg.MinBillableKg,
		},
		bands: []delhiveryBand{
			{Label: "500g", MaxKg: 0.5, Token: cfg.Token500g},
			{Label: "2kg", MaxKg: 2, Token: cfg.Token2kg},
			{Label: "5kg", MaxKg: 5, Token: cfg.Token5kg},
		},
	}
}

// Name implements ports.CourierAdapter.
func (a *DelhiveryAdapter) Name() string {
	return DelhiveryName
}

// bandFor returns the smallest configured band that covers the weight.
func (a *DelhiveryAdapter) bandFor(chargeableKg float64) (delhiveryBand, bool) {
	for _, b := range a.bands {
		if b.Token != "" && chargeableKg <= b.MaxKg {
			return b, true
		}
	}
	return delhiveryBand{}, false
}

func (a *DelhiveryAdapter) bandByLabel(label string) (delhiveryBand, bool) {
	for _, b := range a.bands {
		if b.Label == label && b.Token != "" {
			return b, true
		}
	}
	return delhiveryBand{}, false
}

// Quote implements ports.CourierAdapter.
func (a *DelhiveryAdapter) Quote(ctx context.Context, spec domain.ShipmentSpec) []domain.RateQuote {
	q, err := a.fetchQuote(ctx, spec)
	if err != nil {
		logger.ForCourier(DelhiveryName).Warn("Delhivery quote failed",
			zap.String("origin", spec.OriginPincode),
			zap.String("destination", spec.DestinationPincode),
			zap.Error(err),
		)
		return nil
	}
	return []domain.RateQuote{*q}
}

type delhiveryPincodeResponse struct {
	DeliveryCodes []struct {
		PostalCode struct {
			Pin     json.Number `json:"pin"`
			COD     string      `json:"cod"`
			PrePaid string      `json:"pre_paid"`
		} `json:"postal_code"`
	} `json:"delivery_codes"`
}

type delhiveryCharge struct {
	TotalAmount float64 `json:"total_amount"`
	ChargeCOD   float64 `json:"charge_COD"`
}

func (a *DelhiveryAdapter) fetchQuote(ctx context.Context, spec domain.ShipmentSpec) (*domain.RateQuote, error) {
	chargeable := domain.ChargeableWeight(spec.ActualWeightKg, spec.Dimensions, a.policy)

	band, ok := a.bandFor(chargeable)
	if !ok {
		return nil, fmt.Errorf("no token configured for %.2fkg", chargeable)
	}

	if err := a.checkServiceable(ctx, band.Token, spec); err != nil {
		return nil, err
	}

	mode := "Pre-paid"
	if spec.IsCOD() {
		mode = "COD"
	}

	params := url.Values{}
	params.Set("md", "S")
	params.Set("ss", "Delivered")
	params.Set("o_pin", spec.OriginPincode)
	params.Set("d_pin", spec.DestinationPincode)
	params.Set("cgm", strconv.Itoa(int(math.Ceil(chargeable*1000))))
	params.Set("pt", mode)
	params.Set("cod", strconv.FormatFloat(spec.CollectableValue, 'f', 2, 64))

	req, err := a.newRequest(ctx, band.Token, "/api/kinko/v1/invoice/charges/.json?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var charges []delhiveryCharge
	if err := doJSON(a.client, req, &charges); err != nil {
		return nil, err
	}
	if len(charges) == 0 {
		return nil, fmt.Errorf("empty charges response")
	}

	c := charges[0]
	q := domain.NewRateQuote(DelhiveryName, delhiveryCourierName, "Surface", chargeable, c.TotalAmount-c.ChargeCOD, c.ChargeCOD, spec.PaymentMode)
	q.CourierPartnerID = band.Label
	return &q, nil
}

// checkServiceable confirms the destination pincode accepts the payment mode.
func (a *DelhiveryAdapter) checkServiceable(ctx context.Context, token string, spec domain.ShipmentSpec) error {
	req, err := a.newRequest(ctx, token, "/c/api/pin-codes/json/?filter_codes="+url.QueryEscape(spec.DestinationPincode))
	if err != nil {
		return err
	}

	var resp delhiveryPincodeResponse
	if err := doJSON(a.client, req, &resp); err != nil {
		return err
	}

	for _, dc := range resp.DeliveryCodes {
		pc := dc.PostalCode
		if pc.Pin.String() != "" && pc.Pin.String() != spec.DestinationPincode {
			continue
		}
		if spec.IsCOD() && strings.EqualFold(pc.COD, "Y") {
			return nil
		}
		if !spec.IsCOD() && strings.EqualFold(pc.PrePaid, "Y") {
			return nil
		}
	}
	return errNotServiceable
}

func (a *DelhiveryAdapter) newRequest(ctx context.Context, token, path string) (*http.Request, error) {
	req, err := newJSONRequest(ctx, http.MethodGet, a.config.URL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+token)
	return req, nil
}

type delhiveryShipment struct {
	Waybill        string  `json:"waybill"`
	Name           string  `json:"name"`
	Add            string  `json:"add"`
	Pin            string  `json:"pin"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	Country        string  `json:"country"`
	Phone          string  `json:"phone"`
	Order          string  `json:"order"`
	PaymentMode    string  `json:"payment_mode"`
	ProductsDesc   string  `json:"products_desc"`
	CodAmount      float64 `json:"cod_amount"`
	TotalAmount    float64 `json:"total_amount"`
	Quantity       string  `json:"quantity"`
	Weight         float64 `json:"weight"`
	ShipmentLength float64 `json:"shipment_length"`
	ShipmentWidth  float64 `json:"shipment_width"`
	ShipmentHeight float64 `json:"shipment_height"`
	ShippingMode   string  `json:"shipping_mode"`
}

type delhiveryPickupLocation struct {
	Name string `json:"name"`
}

type delhiveryCreatePayload struct {
	Shipments      []delhiveryShipment     `json:"shipments"`
	PickupLocation delhiveryPickupLocation `json:"pickup_location"`
}

type delhiveryCreateResponse struct {
	Success  bool `json:"success"`
	Packages []struct {
		Waybill string   `json:"waybill"`
		Status  string   `json:"status"`
		Remarks []string `json:"remarks"`
	} `json:"packages"`
	Rmk string `json:"rmk"`
}

// Book implements ports.CourierBooker: fetch a waybill, then manifest it with the create API.
func (a *DelhiveryAdapter) Book(ctx context.Context, req shipmentdomain.BookingRequest) (*shipmentdomain.Manifest, error) {
	log := logger.ForCourier(DelhiveryName).With(zap.String("order_id", req.OrderID))

	band, ok := a.bandByLabel(req.Quote.CourierPartnerID)
	if !ok {
		band, ok = a.bandFor(req.Quote.ChargeableWeightKg)
	}
	if !ok {
		return nil, fmt.Errorf("no token configured for %.2fkg", req.Quote.ChargeableWeightKg)
	}

	waybill, err := a.fetchWaybill(ctx, band.Token)
	if err != nil {
		return nil, fmt.Errorf("fetch waybill: %w", err)
	}

	mode := "Prepaid"
	var codAmount float64
	if req.Spec.IsCOD() {
		mode = "COD"
		codAmount = req.Spec.CollectableValue
	}

	payload := delhiveryCreatePayload{
		Shipments: []delhiveryShipment{{
			Waybill:        waybill,
			Name:           req.Consignee.Name,
			Add:            req.Consignee.Line,
			Pin:            req.Consignee.Pincode,
			City:           req.Consignee.City,
			State:          req.Consignee.State,
			Country:        "India",
			Phone:          req.Consignee.Phone,
			Order:          req.OrderID,
			PaymentMode:    mode,
			ProductsDesc:   req.ProductName,
			CodAmount:      codAmount,
			TotalAmount:    req.Spec.DeclaredValue,
			Quantity:       strconv.Itoa(max(req.Quantity, 1)),
			Weight:         math.Ceil(req.Quote.ChargeableWeightKg * 1000),
			ShipmentLength: req.Spec.Dimensions.LengthCm,
			ShipmentWidth:  req.Spec.Dimensions.WidthCm,
			ShipmentHeight: req.Spec.Dimensions.HeightCm,
			ShippingMode:   "Surface",
		}},
		PickupLocation: delhiveryPickupLocation{Name: req.Warehouse},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal shipment: %w", err)
	}

	form := url.Values{}
	form.Set("format", "json")
	form.Set("data", string(data))

	httpReq, err := newFormRequest(ctx, a.config.URL+"/api/cmu/create.json", form)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Token "+band.Token)

	var resp delhiveryCreateResponse
	if err := doJSON(a.client, httpReq, &resp); err != nil {
		return nil, fmt.Errorf("create shipment: %w", err)
	}
	if !resp.Success || len(resp.Packages) == 0 {
		return nil, fmt.Errorf("create shipment: rejected: %s", resp.Rmk)
	}

	pkg := resp.Packages[0]
	awb := pkg.Waybill
	if awb == "" {
		awb = waybill
	}

	log.Info("Delhivery shipment manifested", zap.String("awb", awb), zap.String("status", pkg.Status))

	return &shipmentdomain.Manifest{
		AWBNumber:         awb,
		CourierName:       delhiveryCourierName,
		Status:            shipmentdomain.BookingStatusManifested,
		ManifestConfirmed: true,
	}, nil
}

// fetchWaybill reserves one waybill number. The API answers with a bare JSON string.
func (a *DelhiveryAdapter) fetchWaybill(ctx context.Context, token string) (string, error) {
	req, err := a.newRequest(ctx, token, "/waybill/api/fetch/json/?count=1")
	if err != nil {
		return "", err
	}

	var waybill string
	if err := doJSON(a.client, req, &waybill); err != nil {
		return "", err
	}

	waybill = strings.TrimSpace(waybill)
	if waybill == "" {
		return "", fmt.Errorf("empty waybill")
	}
	return waybill, nil
}
