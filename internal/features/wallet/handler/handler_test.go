package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shipquickr/internal/features/wallet/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockWallet is a mock implementation of ports.Wallet
type MockWallet struct {
	mock.Mock
}

func (m *MockWallet) GetBalance(ctx context.Context, userID string) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockWallet) Debit(ctx context.Context, userID string, amount float64, orderID string) (float64, error) {
	args := m.Called(ctx, userID, amount, orderID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockWallet) Credit(ctx context.Context, userID string, amount float64, orderID, reason string) (float64, error) {
	args := m.Called(ctx, userID, amount, orderID, reason)
	return args.Get(0).(float64), args.Error(1)
}

func setupApp(wallet *MockWallet) *fiber.App {
	app := fiber.New()
	app.Get("/wallet/:userId", NewWalletHandler(wallet).GetBalance)
	return app
}

func TestWalletHandler_GetBalance(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		wallet := new(MockWallet)
		wallet.On("GetBalance", mock.Anything, "user-1").Return(120.75, nil).Once()

		resp, err := setupApp(wallet).Test(httptest.NewRequest("GET", "/wallet/user-1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body domain.Balance
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "user-1", body.UserID)
		assert.Equal(t, 120.75, body.Balance)
		wallet.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		wallet := new(MockWallet)
		wallet.On("GetBalance", mock.Anything, "user-1").Return(0.0, errors.New("db down")).Once()

		resp, err := setupApp(wallet).Test(httptest.NewRequest("GET", "/wallet/user-1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		wallet.AssertExpectations(t)
	})
}
