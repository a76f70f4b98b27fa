package handler

import (
	"net/http"

	"shipquickr/internal/core/logger"
	"shipquickr/internal/features/wallet/domain"
	"shipquickr/internal/features/wallet/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WalletHandler handles HTTP requests for wallet balances.
type WalletHandler struct {
	wallet ports.Wallet
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(wallet ports.Wallet) *WalletHandler {
	return &WalletHandler{
		wallet: wallet,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	RayID string `json:"ray_id,omitempty"`
}

// GetBalance handles GET /wallet/:userId.
// @Summary Get wallet balance
// @Description Returns the merchant's current wallet balance.
// @Tags Wallet
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} domain.Balance
// @Failure 500 {object} ErrorResponse
// @Router /wallet/{userId} [get]
func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	rayID, _ := c.Locals("requestid").(string)
	userID := c.Params("userId")

	balance, err := h.wallet.GetBalance(c.UserContext(), userID)
	if err != nil {
		logger.Get().Error("Failed to get wallet balance",
			zap.String("user_id", userID),
			zap.String("ray_id", rayID),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal server error",
			RayID: rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(domain.Balance{
		UserID:  userID,
		Balance: balance,
	})
}
