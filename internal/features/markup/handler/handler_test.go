package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shipquickr/internal/features/markup/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMarkupService is a mock implementation of ports.MarkupService
type MockMarkupService struct {
	mock.Mock
}

func (m *MockMarkupService) SetRule(ctx context.Context, freightType domain.ChargeType, freightAmount float64, codType domain.ChargeType, codAmount float64) (*domain.MarkupRule, error) {
	args := m.Called(ctx, freightType, freightAmount, codType, codAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarkupRule), args.Error(1)
}

func (m *MockMarkupService) ActiveRule(ctx context.Context) (*domain.MarkupRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarkupRule), args.Error(1)
}

func setupApp(service *MockMarkupService) *fiber.App {
	app := fiber.New()
	handler := NewMarkupHandler(service)
	app.Post("/admin/markup", handler.SetRule)
	app.Get("/admin/markup", handler.GetRule)
	return app
}

func postRule(t *testing.T, app *fiber.App, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/admin/markup", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestMarkupHandler_SetRule(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockMarkupService)
		app := setupApp(mockService)

		reqBody := SetMarkupRequest{
			FreightChargeType:   domain.ChargeTypeFixed,
			FreightChargeAmount: 10,
			CodChargeType:       domain.ChargeTypeFixed,
			CodChargeAmount:     5,
		}
		rule := &domain.MarkupRule{ID: "rule-1", FreightChargeType: domain.ChargeTypeFixed, FreightChargeAmount: 10}
		mockService.On("SetRule", mock.Anything, domain.ChargeTypeFixed, 10.0, domain.ChargeTypeFixed, 5.0).Return(rule, nil).Once()

		resp := postRule(t, app, reqBody)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var got domain.MarkupRule
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "rule-1", got.ID)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidType", func(t *testing.T) {
		mockService := new(MockMarkupService)
		app := setupApp(mockService)

		mockService.On("SetRule", mock.Anything, domain.ChargeType("flat"), 10.0, domain.ChargeTypeFixed, 0.0).
			Return(nil, domain.ErrInvalidChargeType).Once()

		resp := postRule(t, app, SetMarkupRequest{FreightChargeType: "flat", FreightChargeAmount: 10, CodChargeType: domain.ChargeTypeFixed})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidBody", func(t *testing.T) {
		mockService := new(MockMarkupService)
		app := setupApp(mockService)

		req := httptest.NewRequest("POST", "/admin/markup", bytes.NewReader([]byte("{")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockService.AssertNotCalled(t, "SetRule")
	})

	t.Run("InternalError", func(t *testing.T) {
		mockService := new(MockMarkupService)
		app := setupApp(mockService)

		mockService.On("SetRule", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("db error")).Once()

		resp := postRule(t, app, SetMarkupRequest{FreightChargeType: domain.ChargeTypeFixed, CodChargeType: domain.ChargeTypeFixed})

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Internal server error", body.Error)
	})
}

func TestMarkupHandler_GetRule(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockMarkupService)
		app := setupApp(mockService)

		mockService.On("ActiveRule", mock.Anything).Return(&domain.MarkupRule{ID: "rule-1"}, nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/admin/markup", nil))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockMarkupService)
		app := setupApp(mockService)

		mockService.On("ActiveRule", mock.Anything).Return(nil, nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/admin/markup", nil))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockService.AssertExpectations(t)
	})

	t.Run("InternalError", func(t *testing.T) {
		mockService := new(MockMarkupService)
		app := setupApp(mockService)

		mockService.On("ActiveRule", mock.Anything).Return(nil, errors.New("db error")).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/admin/markup", nil))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockService.AssertExpectations(t)
	})
}
