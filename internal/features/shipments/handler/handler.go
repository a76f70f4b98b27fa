package handler

import (
	"errors"
	"net/http"
	"strings"

	"shipquickr/internal/core/logger"
	ratesdomain "shipquickr/internal/features/rates/domain"
	"shipquickr/internal/features/shipments/ports"
	"shipquickr/internal/features/shipments/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ShipmentHandler handles HTTP requests for booking and cancelling shipments.
type ShipmentHandler struct {
	service ports.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler.
func NewShipmentHandler(s ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{
		service: s,
	}
}

// ConfirmRequest is the body of POST /shipment/confirm.
type ConfirmRequest struct {
	OrderID         string `json:"orderId"`
	SelectedCourier string `json:"selectedCourier"`
	// Provider is the quote's provider. Required only when the courier name appears under several providers.
	Provider string `json:"provider,omitempty"`
}

// CancelRequest is the body of POST /shipment/cancel.
type CancelRequest struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Error is the error description.
	Error string `json:"error"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// ConfirmShipment handles POST /shipment/confirm.
// @Summary Book a shipment
// @Description Books the order with the selected courier at the quoted price and debits the wallet for prepaid orders.
// @Tags Shipments
// @Accept json
// @Produce json
// @Param booking body ConfirmRequest true "Order and courier"
// @Success 200 {object} domain.BookingResult
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /shipment/confirm [post]
func (h *ShipmentHandler) ConfirmShipment(c *fiber.Ctx) error {
	rayID, _ := c.Locals("requestid").(string)

	var req ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
			RayID: rayID,
		})
	}

	req.OrderID = strings.TrimSpace(req.OrderID)
	req.SelectedCourier = strings.TrimSpace(req.SelectedCourier)
	req.Provider = strings.TrimSpace(req.Provider)
	if req.OrderID == "" || req.SelectedCourier == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "orderId and selectedCourier are required",
			RayID: rayID,
		})
	}

	sel := ratesdomain.QuoteSelection{CourierName: req.SelectedCourier, Provider: req.Provider}
	result, err := h.service.ConfirmShipment(c.UserContext(), req.OrderID, sel)
	if err != nil {
		status, msg := http.StatusInternalServerError, "Internal server error"
		switch {
		case errors.Is(err, service.ErrAlreadyProcessed):
			status, msg = http.StatusBadRequest, "Order already processed or being processed"
		case errors.Is(err, service.ErrAmbiguousCourier):
			status, msg = http.StatusBadRequest, "Courier is offered by more than one provider, set provider"
		case errors.Is(err, ratesdomain.ErrInvalidShipment):
			status, msg = http.StatusBadRequest, err.Error()
		case errors.Is(err, service.ErrInsufficientFunds):
			status, msg = http.StatusPaymentRequired, "Insufficient wallet balance"
		case errors.Is(err, service.ErrCourierUnavailable):
			status, msg = http.StatusServiceUnavailable, "Selected courier is unavailable, please choose another"
		default:
			logger.Get().Error("Failed to confirm shipment",
				zap.String("ray_id", rayID),
				zap.String("order_id", req.OrderID),
				zap.Error(err),
			)
		}
		return c.Status(status).JSON(ErrorResponse{
			Error: msg,
			RayID: rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(result)
}

// CancelShipment handles POST /shipment/cancel.
// @Summary Cancel a shipment
// @Description Cancels a booked order and refunds prepaid shipping to the wallet.
// @Tags Shipments
// @Accept json
// @Produce json
// @Param cancellation body CancelRequest true "Order and reason"
// @Success 200 {object} domain.CancellationResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /shipment/cancel [post]
func (h *ShipmentHandler) CancelShipment(c *fiber.Ctx) error {
	rayID, _ := c.Locals("requestid").(string)

	var req CancelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
			RayID: rayID,
		})
	}

	req.OrderID = strings.TrimSpace(req.OrderID)
	if req.OrderID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "orderId is required",
			RayID: rayID,
		})
	}

	result, err := h.service.CancelShipment(c.UserContext(), req.OrderID, strings.TrimSpace(req.Reason))
	if err != nil {
		status, msg := http.StatusInternalServerError, "Internal server error"
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			status, msg = http.StatusNotFound, "Order not found"
		case errors.Is(err, service.ErrNotCancellable):
			status, msg = http.StatusConflict, "Order has no active booking"
		case errors.Is(err, service.ErrAlreadyProcessed):
			status, msg = http.StatusConflict, "Order is being processed"
		default:
			logger.Get().Error("Failed to cancel shipment",
				zap.String("ray_id", rayID),
				zap.String("order_id", req.OrderID),
				zap.Error(err),
			)
		}
		return c.Status(status).JSON(ErrorResponse{
			Error: msg,
			RayID: rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(result)
}
