package handler

import (
	"errors"
	"net/http"

	"shipquickr/internal/core/logger"
	"shipquickr/internal/features/markup/domain"
	"shipquickr/internal/features/markup/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MarkupHandler handles HTTP requests for the platform markup rule.
type MarkupHandler struct {
	service ports.MarkupService
}

// NewMarkupHandler creates a new MarkupHandler.
func NewMarkupHandler(service ports.MarkupService) *MarkupHandler {
	return &MarkupHandler{
		service: service,
	}
}

// SetMarkupRequest represents the request body for creating a markup rule.
type SetMarkupRequest struct {
	FreightChargeType   domain.ChargeType `json:"freight_charge_type"`
	FreightChargeAmount float64           `json:"freight_charge_amount"`
	CodChargeType       domain.ChargeType `json:"cod_charge_type"`
	CodChargeAmount     float64           `json:"cod_charge_amount"`
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	RayID string `json:"ray_id,omitempty"`
}

// SetRule handles POST /admin/markup.
// @Summary Set the markup rule
// @Description Creates a new markup rule. The newest rule is the active one.
// @Tags Markup
// @Accept json
// @Produce json
// @Param rule body SetMarkupRequest true "Markup rule"
// @Success 201 {object} domain.MarkupRule
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/markup [post]
func (h *MarkupHandler) SetRule(c *fiber.Ctx) error {
	rayID, _ := c.Locals("requestid").(string)

	var req SetMarkupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
			RayID: rayID,
		})
	}

	rule, err := h.service.SetRule(c.UserContext(), req.FreightChargeType, req.FreightChargeAmount, req.CodChargeType, req.CodChargeAmount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidChargeType) || errors.Is(err, domain.ErrNegativeAmount) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error: "Charge types must be fixed or percentage and amounts cannot be negative",
				RayID: rayID,
			})
		}
		logger.Get().Error("Failed to set markup rule", zap.String("ray_id", rayID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal server error",
			RayID: rayID,
		})
	}

	logger.Get().Info("Markup rule updated",
		zap.String("rule_id", rule.ID),
		zap.String("freight_type", string(rule.FreightChargeType)),
		zap.Float64("freight_amount", rule.FreightChargeAmount),
		zap.String("cod_type", string(rule.CodChargeType)),
		zap.Float64("cod_amount", rule.CodChargeAmount),
	)

	return c.Status(http.StatusCreated).JSON(rule)
}

// GetRule handles GET /admin/markup.
// @Summary Get the active markup rule
// @Description Retrieves the markup rule currently applied to quotes.
// @Tags Markup
// @Produce json
// @Success 200 {object} domain.MarkupRule
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/markup [get]
func (h *MarkupHandler) GetRule(c *fiber.Ctx) error {
	rayID, _ := c.Locals("requestid").(string)

	rule, err := h.service.ActiveRule(c.UserContext())
	if err != nil {
		logger.Get().Error("Failed to get markup rule", zap.String("ray_id", rayID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal server error",
			RayID: rayID,
		})
	}

	if rule == nil {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error: "No markup rule configured, prices are passed through",
			RayID: rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(rule)
}
