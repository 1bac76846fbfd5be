package handler

import (
	"github.com/gin-gonic/gin"
	apprating "github.com/shipkaro/backend/internal/application/rating"
	"github.com/shipkaro/backend/internal/interfaces/http/middleware"
)

// RatingHandler exposes serviceability checks and order pricing
type RatingHandler struct {
	BaseHandler
	serviceability *apprating.ServiceabilityService
	pricing        *apprating.OrderPricingService
}

func NewRatingHandler(serviceability *apprating.ServiceabilityService, pricing *apprating.OrderPricingService) *RatingHandler {
	return &RatingHandler{
		serviceability: serviceability,
		pricing:        pricing,
	}
}

// RegisterRoutes registers rating routes
func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	serviceability := rg.Group("/serviceability")
	{
		serviceability.POST("", h.AvailableCouriers)
		serviceability.POST("/cheapest", h.CheapestCourier)
	}

	rates := rg.Group("/rates")
	{
		rates.POST("/calculate", h.CalculateRate)
	}
}

// AvailableCouriers ranks the tenant's couriers for a shipment
func (h *RatingHandler) AvailableCouriers(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req apprating.ServiceabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.serviceability.AvailableCouriers(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CheapestCourier returns the lowest landed-cost courier, optionally
// restricted to an allow-list
func (h *RatingHandler) CheapestCourier(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req apprating.CheapestCourierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	option, err := h.serviceability.CheapestCourier(c.Request.Context(), tenantID, req.ServiceabilityRequest, req.AllowedCouriers)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, option)
}

// CalculateRate prices a single order against the aggregator rate tables
func (h *RatingHandler) CalculateRate(c *gin.Context) {
	var req apprating.PriceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.pricing.PriceOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
