package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apprating "github.com/shipkaro/backend/internal/application/rating"
	"github.com/shipkaro/backend/internal/interfaces/http/dto"
	"github.com/shipkaro/backend/internal/interfaces/http/middleware"
)

// ContractHandler manages per-tenant courier contracts
type ContractHandler struct {
	BaseHandler
	contracts *apprating.ContractService
}

func NewContractHandler(contracts *apprating.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// RegisterRoutes registers contract routes
func (h *ContractHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contracts := rg.Group("/contracts")
	{
		contracts.POST("", h.Create)
		contracts.GET("", h.List)
		contracts.GET("/:id", h.Get)
		contracts.PUT("/:id", h.Update)
		contracts.DELETE("/:id", h.Delete)
	}
}

// Create creates a courier contract for the tenant
func (h *ContractHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req apprating.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.contracts.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List lists the tenant's contracts; ?active_only=true restricts to active ones
func (h *ContractHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	activeOnly := c.Query("active_only") == "true"

	resp, err := h.contracts.List(c.Request.Context(), tenantID, activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get returns a single contract by ID
func (h *ContractHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	contractID, ok := h.bindContractID(c)
	if !ok {
		return
	}

	resp, err := h.contracts.GetByID(c.Request.Context(), tenantID, contractID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update partially updates a contract
func (h *ContractHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	contractID, ok := h.bindContractID(c)
	if !ok {
		return
	}

	var req apprating.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.contracts.Update(c.Request.Context(), tenantID, contractID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a contract
func (h *ContractHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	contractID, ok := h.bindContractID(c)
	if !ok {
		return
	}

	if err := h.contracts.Delete(c.Request.Context(), tenantID, contractID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// bindContractID binds and parses the :id path parameter. On failure a
// validation response has already been written.
func (h *ContractHandler) bindContractID(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.HandleValidationError(c, err)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid contract ID")
		return uuid.Nil, false
	}
	return id, true
}
