package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shipquickr/internal/core/config"
	"shipquickr/internal/core/proxy"
	ratesdomain "shipquickr/internal/features/rates/domain"
	shipmentdomain "shipquickr/internal/features/shipments/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEcomServer(t *testing.T, pincodes string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/apiv2/pincodes/", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("username") != "ecom-user" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(pincodes))
	})
	mux.HandleFunc("/apiv2/fetch_awb/", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("type") == "COD" {
			w.Write([]byte(`{"success": "yes", "awb": [702001234]}`))
			return
		}
		w.Write([]byte(`{"success": "yes", "awb": ["801001234"]}`))
	})
	mux.HandleFunc("/apiv2/manifest_awb/", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		var items []ecomManifestItem
		if err := json.Unmarshal([]byte(r.PostForm.Get("json_input")), &items); err != nil || len(items) != 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if items[0].Pincode == "999999" {
			w.Write([]byte(`{"shipments": [{"awb": "` + items[0].AWBNumber + `", "success": false, "reason": "pincode not serviceable"}]}`))
			return
		}
		w.Write([]byte(`{"shipments": [{"awb": "` + items[0].AWBNumber + `", "success": true}]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestEcom(baseURL string) *EcomExpressAdapter {
	return NewEcomExpressAdapter(config.EcomExpressConfig{
		URL:               baseURL,
		Username:          "ecom-user",
		Password:          "secret",
		Timeout:           2 * time.Second,
		VolumetricDivisor: 6000,
		MinBillableKg:     1,
	}, map[string]config.RateCard{
		"standard": {BaseWeightKg: 0.5, BaseRate: 45, AdditionalRatePerKg: 35, CodFixedCharge: 30, CodPercent: 1.5, ExpectedDeliveryDays: "4-6"},
		"express":  {BaseWeightKg: 0.5, BaseRate: 90, AdditionalRatePerKg: 60, CodFixedCharge: 30},
	}, proxy.Settings{})
}

func TestEcomExpressAdapter_Quote(t *testing.T) {
	srv := newEcomServer(t, `[{"pincode": 400001, "active": true, "cod": "Y", "services": ["Regular Air", "Express Plus", "Standard", "Bulk Cargo"]}]`)
	a := newTestEcom(srv.URL)

	quotes := a.Quote(context.Background(), newSpec(t, "COD", 0.3, 1000))
	require.Len(t, quotes, 2)

	std := quotes[0]
	assert.Equal(t, "ecomexpress", std.Provider)
	assert.Equal(t, "Ecom Express Standard", std.CourierName)
	assert.Equal(t, "Standard", std.ServiceType)
	assert.Equal(t, 1.0, std.ChargeableWeightKg)
	assert.Equal(t, 80.0, std.RawFreightCharge)
	assert.Equal(t, 45.0, std.RawCodCharge)
	assert.Equal(t, "4-6", std.ExpectedDeliveryDays)
	assert.Equal(t, "standard", std.CourierPartnerID)

	exp := quotes[1]
	assert.Equal(t, "Ecom Express Express", exp.CourierName)
	assert.Equal(t, 150.0, exp.RawFreightCharge)
}

func TestEcomExpressAdapter_Quote_MissingRateCardDropsService(t *testing.T) {
	srv := newEcomServer(t, `[{"pincode": "400001", "active": "Y", "cod": "Y", "services": ["Surface", "Standard"]}]`)
	a := newTestEcom(srv.URL)

	quotes := a.Quote(context.Background(), newSpec(t, "Prepaid", 0.3, 0))
	require.Len(t, quotes, 1)
	assert.Equal(t, "Ecom Express Standard", quotes[0].CourierName)
	assert.Zero(t, quotes[0].RawCodCharge)
}

func TestEcomExpressAdapter_Quote_NotServiceable(t *testing.T) {
	tests := []struct {
		name     string
		pincodes string
		mode     string
	}{
		{"Inactive", `[{"pincode": 400001, "active": false, "cod": true, "services": ["Standard"]}]`, "Prepaid"},
		{"Unknown", `[]`, "Prepaid"},
		{"NoCOD", `[{"pincode": 400001, "active": true, "cod": "N", "services": ["Standard"]}]`, "COD"},
		{"NothingMapped", `[{"pincode": 400001, "active": true, "cod": true, "services": ["Bulk Cargo"]}]`, "Prepaid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newEcomServer(t, tt.pincodes)
			a := newTestEcom(srv.URL)
			assert.Empty(t, a.Quote(context.Background(), newSpec(t, tt.mode, 0.3, 500)))
		})
	}
}

func TestEcomExpressAdapter_Quote_BadCredentials(t *testing.T) {
	srv := newEcomServer(t, `[]`)
	a := newTestEcom(srv.URL)
	a.config.Username = "someone-else"

	assert.Empty(t, a.Quote(context.Background(), newSpec(t, "Prepaid", 0.3, 0)))
}

func ecomBooking(t *testing.T, mode string, pincode string) shipmentdomain.BookingRequest {
	return shipmentdomain.BookingRequest{
		OrderID: "ord-3",
		Quote: ratesdomain.FinalQuote{RateQuote: ratesdomain.RateQuote{
			Provider:           "ecomexpress",
			CourierName:        "Ecom Express Standard",
			ChargeableWeightKg: 1,
			CourierPartnerID:   "standard",
		}},
		Spec:        newSpec(t, mode, 0.3, 500),
		Consignee:   shipmentdomain.Address{Name: "Meera", Pincode: pincode},
		ProductName: "Lamp",
	}
}

func TestEcomExpressAdapter_Book(t *testing.T) {
	srv := newEcomServer(t, `[]`)
	a := newTestEcom(srv.URL)

	m, err := a.Book(context.Background(), ecomBooking(t, "COD", "400001"))
	require.NoError(t, err)
	assert.Equal(t, "702001234", m.AWBNumber)
	assert.Equal(t, "Ecom Express Standard", m.CourierName)
	assert.Equal(t, shipmentdomain.BookingStatusManifested, m.Status)
	assert.True(t, m.ManifestConfirmed)

	m, err = a.Book(context.Background(), ecomBooking(t, "Prepaid", "400001"))
	require.NoError(t, err)
	assert.Equal(t, "801001234", m.AWBNumber)
}

func TestEcomExpressAdapter_Book_ManifestRejected(t *testing.T) {
	srv := newEcomServer(t, `[]`)
	a := newTestEcom(srv.URL)

	_, err := a.Book(context.Background(), ecomBooking(t, "Prepaid", "999999"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pincode not serviceable")
}

func TestYNBool(t *testing.T) {
	for input, want := range map[string]bool{
		`true`: true, `false`: false, `1`: true, `0`: false,
		`"Y"`: true, `"n"`: false, `"yes"`: true, `null`: false,
	} {
		var b ynBool
		require.NoError(t, json.Unmarshal([]byte(input), &b), input)
		assert.Equal(t, want, bool(b), input)
	}
}
