package adapters

import (
	"context"
	"encoding/json"
	"fmt"
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

// EcomExpressName is the provider name carried by Ecom Express quotes.
const EcomExpressName = "ecomexpress"

// EcomExpressAdapter uses the live Ecom Express serviceability API and prices each
// offered service from a local rate card.
type EcomExpressAdapter struct {
	client *http.Client
	config config.EcomExpressConfig
	cards  map[string]config.RateCard
	policy domain.WeightPolicy
}

// NewEcomExpressAdapter creates a new instance of EcomExpressAdapter.
// cards is keyed by canonical service type.
func NewEcomExpressAdapter(cfg config.EcomExpressConfig, cards map[string]config.RateCard, proxySettings proxy.Settings) *EcomExpressAdapter {
	return &EcomExpressAdapter{
		client: httpclient.NewCourierClient(EcomExpressName, cfg.Timeout, proxySettings),
		config: cfg,
		cards:  cards,
		policy: domain.WeightPolicy{
			VolumetricDivisor: cfg.VolumetricDivisor,
			MinBillableKg:     cfg.MinBillableKg,
		},
	}
}

// Name implements ports.CourierAdapter.
func (a *EcomExpressAdapter) Name() string {
	return EcomExpressName
}

// Quote implements ports.CourierAdapter.
func (a *EcomExpressAdapter) Quote(ctx context.Context, spec domain.ShipmentSpec) []domain.RateQuote {
	quotes, err := a.fetchQuotes(ctx, spec)
	if err != nil {
		logger.ForCourier(EcomExpressName).Warn("Ecom Express quote failed",
			zap.String("origin", spec.OriginPincode),
			zap.String("destination", spec.DestinationPincode),
			zap.Error(err),
		)
		return nil
	}
	return quotes
}

// ynBool decodes the API's mixed boolean encodings: true, 1, "Y", "yes", "true".
type ynBool bool

func (b *ynBool) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*b = ynBool(v)
	case float64:
		*b = v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "y", "yes", "true", "1":
			*b = true
		default:
			*b = false
		}
	default:
		*b = false
	}
	return nil
}

type ecomPincode struct {
	Pincode  json.Number `json:"pincode"`
	Active   ynBool      `json:"active"`
	COD      ynBool      `json:"cod"`
	Services []string    `json:"services"`
}

func (a *EcomExpressAdapter) credentials() url.Values {
	form := url.Values{}
	form.Set("username", a.config.Username)
	form.Set("password", a.config.Password)
	return form
}

func (a *EcomExpressAdapter) fetchQuotes(ctx context.Context, spec domain.ShipmentSpec) ([]domain.RateQuote, error) {
	form := a.credentials()
	form.Set("pincode", spec.DestinationPincode)

	req, err := newFormRequest(ctx, a.config.URL+"/apiv2/pincodes/", form)
	if err != nil {
		return nil, err
	}

	var pincodes []ecomPincode
	if err := doJSON(a.client, req, &pincodes); err != nil {
		return nil, err
	}

	var entry *ecomPincode
	for i := range pincodes {
		if pincodes[i].Pincode.String() == spec.DestinationPincode {
			entry = &pincodes[i]
			break
		}
	}
	if entry == nil || !bool(entry.Active) {
		return nil, errNotServiceable
	}
	if spec.IsCOD() && !bool(entry.COD) {
		return nil, fmt.Errorf("%w: COD not available", errNotServiceable)
	}

	log := logger.ForCourier(EcomExpressName)
	chargeable := domain.ChargeableWeight(spec.ActualWeightKg, spec.Dimensions, a.policy)

	seen := make(map[domain.ServiceType]bool)
	var quotes []domain.RateQuote
	for _, name := range entry.Services {
		st, ok := domain.MapServiceName(name)
		if !ok {
			log.Warn("Dropping unmapped service", zap.String("service", name))
			continue
		}
		if seen[st] {
			continue
		}
		seen[st] = true

		card, ok := a.cards[string(st)]
		if !ok {
			log.Warn("No rate card for service", zap.String("service", name), zap.String("service_type", string(st)))
			continue
		}

		freight, cod := cardPrice(card, chargeable, spec)
		q := domain.NewRateQuote(EcomExpressName, "Ecom Express "+st.Title(), st.Title(), chargeable, freight, cod, spec.PaymentMode)
		q.ExpectedDeliveryDays = card.ExpectedDeliveryDays
		q.CourierPartnerID = string(st)
		quotes = append(quotes, q)
	}

	if len(quotes) == 0 {
		return nil, fmt.Errorf("no priced services among %v", entry.Services)
	}
	return quotes, nil
}

type ecomFetchAWBResponse struct {
	Success ynBool        `json:"success"`
	AWB     []json.Number `json:"awb"`
	Error   []string      `json:"error"`
}

type ecomManifestItem struct {
	AWBNumber        string  `json:"AWB_NUMBER"`
	OrderNumber      string  `json:"ORDER_NUMBER"`
	Product          string  `json:"PRODUCT"`
	Consignee        string  `json:"CONSIGNEE"`
	ConsigneeAddress string  `json:"CONSIGNEE_ADDRESS1"`
	DestinationCity  string  `json:"DESTINATION_CITY"`
	Pincode          string  `json:"PINCODE"`
	State            string  `json:"STATE"`
	Mobile           string  `json:"MOBILE"`
	ItemDescription  string  `json:"ITEM_DESCRIPTION"`
	Pieces           int     `json:"PIECES"`
	CollectableValue float64 `json:"COLLECTABLE_VALUE"`
	DeclaredValue    float64 `json:"DECLARED_VALUE"`
	ActualWeight     float64 `json:"ACTUAL_WEIGHT"`
	Length           float64 `json:"LENGTH"`
	Breadth          float64 `json:"BREADTH"`
	Height           float64 `json:"HEIGHT"`
	PickupName       string  `json:"PICKUP_NAME"`
	PickupAddress    string  `json:"PICKUP_ADDRESS_LINE1"`
	PickupPincode    string  `json:"PICKUP_PINCODE"`
	PickupMobile     string  `json:"PICKUP_MOBILE"`
}

type ecomManifestResponse struct {
	Shipments []struct {
		AWB     json.Number `json:"awb"`
		Success ynBool      `json:"success"`
		Reason  string      `json:"reason"`
	} `json:"shipments"`
}

// Book implements ports.CourierBooker: reserve an AWB, then manifest it.
func (a *EcomExpressAdapter) Book(ctx context.Context, req shipmentdomain.BookingRequest) (*shipmentdomain.Manifest, error) {
	log := logger.ForCourier(EcomExpressName).With(zap.String("order_id", req.OrderID))

	product := "PPD"
	if req.Spec.IsCOD() {
		product = "COD"
	}

	awb, err := a.fetchAWB(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("fetch awb: %w", err)
	}

	var collectable float64
	if req.Spec.IsCOD() {
		collectable = req.Spec.CollectableValue
	}

	items := []ecomManifestItem{{
		AWBNumber:        awb,
		OrderNumber:      req.OrderID,
		Product:          product,
		Consignee:        req.Consignee.Name,
		ConsigneeAddress: req.Consignee.Line,
		DestinationCity:  req.Consignee.City,
		Pincode:          req.Consignee.Pincode,
		State:            req.Consignee.State,
		Mobile:           req.Consignee.Phone,
		ItemDescription:  req.ProductName,
		Pieces:           max(req.Quantity, 1),
		CollectableValue: collectable,
		DeclaredValue:    req.Spec.DeclaredValue,
		ActualWeight:     req.Quote.ChargeableWeightKg,
		Length:           req.Spec.Dimensions.LengthCm,
		Breadth:          req.Spec.Dimensions.WidthCm,
		Height:           req.Spec.Dimensions.HeightCm,
		PickupName:       req.Pickup.Name,
		PickupAddress:    req.Pickup.Line,
		PickupPincode:    req.Pickup.Pincode,
		PickupMobile:     req.Pickup.Phone,
	}}

	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}

	form := a.credentials()
	form.Set("json_input", string(data))

	httpReq, err := newFormRequest(ctx, a.config.URL+"/apiv2/manifest_awb/", form)
	if err != nil {
		return nil, err
	}

	var resp ecomManifestResponse
	if err := doJSON(a.client, httpReq, &resp); err != nil {
		return nil, fmt.Errorf("manifest awb: %w", err)
	}
	if len(resp.Shipments) == 0 || !bool(resp.Shipments[0].Success) {
		reason := "empty response"
		if len(resp.Shipments) > 0 {
			reason = resp.Shipments[0].Reason
		}
		log.Warn("AWB reserved but manifest rejected", zap.String("awb", awb), zap.String("reason", reason))
		return nil, fmt.Errorf("manifest awb: rejected: %s", reason)
	}

	log.Info("Ecom Express shipment manifested", zap.String("awb", awb))

	return &shipmentdomain.Manifest{
		AWBNumber:         awb,
		CourierName:       req.Quote.CourierName,
		Status:            shipmentdomain.BookingStatusManifested,
		ManifestConfirmed: true,
	}, nil
}

func (a *EcomExpressAdapter) fetchAWB(ctx context.Context, product string) (string, error) {
	form := a.credentials()
	form.Set("count", strconv.Itoa(1))
	form.Set("type", product)

	req, err := newFormRequest(ctx, a.config.URL+"/apiv2/fetch_awb/", form)
	if err != nil {
		return "", err
	}

	var resp ecomFetchAWBResponse
	if err := doJSON(a.client, req, &resp); err != nil {
		return "", err
	}
	if !bool(resp.Success) || len(resp.AWB) == 0 {
		return "", fmt.Errorf("rejected: %s", strings.Join(resp.Error, "; "))
	}
	return resp.AWB[0].String(), nil
}
