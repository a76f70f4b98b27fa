package handler

import (
	"errors"
	"net/http"

	"shipquickr/internal/core/logger"
	"shipquickr/internal/features/orders/domain"
	"shipquickr/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	// service is the OrderService instance.
	service *service.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(s *service.OrderService) *OrderHandler {
	return &OrderHandler{
		service: s,
	}
}

// GetOrder handles GET /orders/:id.
// @Summary Get Order by ID
// @Description Fetch an order with its booking details. The userId must own the order.
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Param userId query string true "User ID"
// @Success 200 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	userID := c.Query("userId")

	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	if userID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "userId is required",
			RayID: rayID,
		})
	}

	order, err := h.service.GetOrder(c.UserContext(), orderID, userID)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "Internal server error"

		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			status = http.StatusNotFound
			msg = "Order not found"
		case errors.Is(err, service.ErrOwnerMismatch):
			status = http.StatusForbidden
			msg = "Order belongs to another user"
		default:
			logger.Get().Error("Failed to fetch order",
				zap.String("order_id", orderID),
				zap.String("ray_id", rayID),
				zap.Error(err),
			)
		}

		return c.Status(status).JSON(ErrorResponse{
			Error: msg,
			RayID: rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(order)
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Error is the error description.
	Error string `json:"error"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}
