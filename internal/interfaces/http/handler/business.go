package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/invoicing/backend/internal/application/identity"
)

// BusinessHandler handles business registration and settings endpoints
type BusinessHandler struct {
	BaseHandler
	businessService *identityapp.BusinessService
}

// NewBusinessHandler creates a new BusinessHandler
func NewBusinessHandler(businessService *identityapp.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// Register registers a new business together with its owner user. This is a
// public endpoint.
// POST /businesses/register
func (h *BusinessHandler) Register(c *gin.Context) {
	var req identityapp.RegisterBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.businessService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns the authenticated caller's business.
// GET /businesses/current
func (h *BusinessHandler) Get(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	business, err := h.businessService.Get(c.Request.Context(), businessID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, business)
}

// Update updates the business profile.
// PUT /businesses/current
func (h *BusinessHandler) Update(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	business, err := h.businessService.Update(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, business)
}

// UpdateNumbering updates the document numbering settings. The starting
// number only takes effect for sequence groups that have not issued a
// number yet.
// PUT /businesses/current/numbering
func (h *BusinessHandler) UpdateNumbering(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.UpdateNumberingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	business, err := h.businessService.UpdateNumbering(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, business)
}
