package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shipquickr/internal/features/rates/domain"
	"shipquickr/internal/features/rates/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRateService is a mock implementation of ports.RateService
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) GetRates(ctx context.Context, spec domain.ShipmentSpec) ([]domain.FinalQuote, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinalQuote), args.Error(1)
}

func (m *MockRateService) SelectQuote(ctx context.Context, spec domain.ShipmentSpec, sel domain.QuoteSelection) (*domain.FinalQuote, error) {
	args := m.Called(ctx, spec, sel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinalQuote), args.Error(1)
}

func setupApp(svc *MockRateService) *fiber.App {
	app := fiber.New()
	app.Use(requestid.New(requestid.Config{
		Header: "X-Ray-ID",
		Generator: func() string {
			return "test-ray-id"
		},
	}))
	h := NewRateHandler(svc, 50)
	app.Post("/rates", h.GetRates)
	return app
}

func postRates(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", "/rates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

const codBody = `{
	"pickupPincode": 110001,
	"destinationPincode": "400001",
	"weight": "0.3",
	"length": 10,
	"width": 10,
	"height": 10,
	"paymentMode": "COD",
	"declaredValue": 500,
	"collectableValue": 500
}`

func TestRateHandler_GetRates_Success(t *testing.T) {
	svc := new(MockRateService)
	app := setupApp(svc)

	quotes := []domain.FinalQuote{{
		RateQuote:          domain.RateQuote{CourierName: "Local Surface", RawFreightCharge: 40, RawCodCharge: 20, RawTotalPrice: 60},
		FinalFreightCharge: 50,
		FinalCodCharge:     25,
		FinalTotalPrice:    75,
	}}

	svc.On("GetRates", mock.Anything, mock.MatchedBy(func(spec domain.ShipmentSpec) bool {
		return spec.OriginPincode == "110001" &&
			spec.ActualWeightKg == 0.3 &&
			spec.PaymentMode == domain.PaymentModeCOD &&
			spec.CollectableValue == 500
	})).Return(quotes, nil).Once()

	resp := postRates(t, app, codBody)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body RatesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Rates, 1)
	assert.Equal(t, 75.0, body.Rates[0].FinalTotalPrice)
	svc.AssertExpectations(t)
}

func TestRateHandler_GetRates_LenientWeight(t *testing.T) {
	svc := new(MockRateService)
	app := setupApp(svc)

	svc.On("GetRates", mock.Anything, mock.MatchedBy(func(spec domain.ShipmentSpec) bool {
		return spec.ActualWeightKg == 0 && spec.Dimensions.LengthCm == 0
	})).Return([]domain.FinalQuote{{}}, nil).Once()

	resp := postRates(t, app, `{"pickupPincode":"110001","destinationPincode":"400001","weight":"heavy","length":"n/a","paymentMode":"Prepaid"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestRateHandler_GetRates_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"MalformedJSON", `{"pickupPincode":`},
		{"BadPincode", `{"pickupPincode":"1100","destinationPincode":"400001","paymentMode":"Prepaid"}`},
		{"BadPaymentMode", `{"pickupPincode":"110001","destinationPincode":"400001","paymentMode":"UPI"}`},
		{"CODWithoutCollectable", `{"pickupPincode":"110001","destinationPincode":"400001","paymentMode":"COD"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockRateService)
			app := setupApp(svc)

			resp := postRates(t, app, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var errResp ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
			assert.NotEmpty(t, errResp.Error)
			assert.Equal(t, "test-ray-id", errResp.RayID)
			svc.AssertNotCalled(t, "GetRates", mock.Anything, mock.Anything)
		})
	}
}

func TestRateHandler_GetRates_NoRates(t *testing.T) {
	svc := new(MockRateService)
	app := setupApp(svc)

	svc.On("GetRates", mock.Anything, mock.Anything).Return(nil, service.ErrNoRatesFound).Once()

	resp := postRates(t, app, codBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestRateHandler_GetRates_InternalError(t *testing.T) {
	svc := new(MockRateService)
	app := setupApp(svc)

	svc.On("GetRates", mock.Anything, mock.Anything).Return(nil, errors.New("pq: connection refused")).Once()

	resp := postRates(t, app, codBody)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, "Internal server error", errResp.Error)
	svc.AssertExpectations(t)
}

func TestFlexFloat(t *testing.T) {
	var v struct {
		A flexFloat `json:"a"`
		B flexFloat `json:"b"`
		C flexFloat `json:"c"`
		D flexFloat `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":1.5,"b":" 2.25 ","c":"abc","d":null}`), &v))

	assert.Equal(t, flexFloat(1.5), v.A)
	assert.Equal(t, flexFloat(2.25), v.B)
	assert.Zero(t, v.C)
	assert.Zero(t, v.D)
}
