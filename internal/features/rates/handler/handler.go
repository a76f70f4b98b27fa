package handler

import (
	"errors"
	"net/http"

	"shipquickr/internal/core/logger"
	"shipquickr/internal/features/rates/domain"
	"shipquickr/internal/features/rates/ports"
	"shipquickr/internal/features/rates/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RateHandler handles HTTP requests for rate shopping.
type RateHandler struct {
	service       ports.RateService
	declaredFloor float64
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(s ports.RateService, declaredFloor float64) *RateHandler {
	return &RateHandler{
		service:       s,
		declaredFloor: declaredFloor,
	}
}

// RateRequest is the body of POST /rates. Numbers may also be sent as strings.
type RateRequest struct {
	PickupPincode      flexString `json:"pickupPincode" swaggertype:"string"`
	DestinationPincode flexString `json:"destinationPincode" swaggertype:"string"`
	Weight             flexFloat  `json:"weight" swaggertype:"number"`
	Length             flexFloat  `json:"length" swaggertype:"number"`
	Width              flexFloat  `json:"width" swaggertype:"number"`
	Height             flexFloat  `json:"height" swaggertype:"number"`
	PaymentMode        string     `json:"paymentMode"`
	DeclaredValue      flexFloat  `json:"declaredValue" swaggertype:"number"`
	CollectableValue   flexFloat  `json:"collectableValue" swaggertype:"number"`
}

// RatesResponse wraps the priced quotes.
type RatesResponse struct {
	Rates []domain.FinalQuote `json:"rates"`
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Error is the error description.
	Error string `json:"error"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

func (r RateRequest) input() domain.ShipmentInput {
	return domain.ShipmentInput{
		OriginPincode:      string(r.PickupPincode),
		DestinationPincode: string(r.DestinationPincode),
		ActualWeightKg:     float64(r.Weight),
		Dimensions: domain.Dimensions{
			LengthCm: float64(r.Length),
			WidthCm:  float64(r.Width),
			HeightCm: float64(r.Height),
		},
		PaymentMode:      r.PaymentMode,
		DeclaredValue:    float64(r.DeclaredValue),
		CollectableValue: float64(r.CollectableValue),
	}
}

// GetRates handles POST /rates.
// @Summary Shop shipping rates
// @Description Queries every configured courier concurrently and returns marked-up quotes, cheapest first.
// @Tags Rates
// @Accept json
// @Produce json
// @Param shipment body RateRequest true "Shipment details"
// @Success 200 {object} RatesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /rates [post]
func (h *RateHandler) GetRates(c *fiber.Ctx) error {
	rayID, _ := c.Locals("requestid").(string)

	var req RateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
			RayID: rayID,
		})
	}

	spec, err := domain.NewShipmentSpec(req.input(), h.declaredFloor)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
			RayID: rayID,
		})
	}

	quotes, err := h.service.GetRates(c.UserContext(), spec)
	if err != nil {
		if errors.Is(err, service.ErrNoRatesFound) {
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Error: "No courier services this route",
				RayID: rayID,
			})
		}

		logger.Get().Error("Failed to get rates",
			zap.String("ray_id", rayID),
			zap.String("origin", spec.OriginPincode),
			zap.String("destination", spec.DestinationPincode),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal server error",
			RayID: rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(RatesResponse{Rates: quotes})
}
