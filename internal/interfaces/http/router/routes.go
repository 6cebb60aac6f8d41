package router

import (
	"github.com/gin-gonic/gin"
	"github.com/invoicing/backend/internal/interfaces/http/handler"
)

// AuthRoutes registers the authentication endpoints. Login and refresh are
// public; the JWT middleware's skip list must match.
type AuthRoutes struct {
	handler *handler.AuthHandler
}

// NewAuthRoutes creates the auth route registrar
func NewAuthRoutes(h *handler.AuthHandler) *AuthRoutes {
	return &AuthRoutes{handler: h}
}

// RegisterRoutes implements RouteRegistrar
func (r *AuthRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", r.handler.Login)
		auth.POST("/refresh", r.handler.RefreshToken)
		auth.POST("/logout", r.handler.Logout)
		auth.GET("/me", r.handler.GetCurrentUser)
		auth.PUT("/password", r.handler.ChangePassword)
	}
}

// BusinessRoutes registers business registration and settings endpoints.
// Registration is public; the rest operate on the caller's own business.
type BusinessRoutes struct {
	handler *handler.BusinessHandler
}

// NewBusinessRoutes creates the business route registrar
func NewBusinessRoutes(h *handler.BusinessHandler) *BusinessRoutes {
	return &BusinessRoutes{handler: h}
}

// RegisterRoutes implements RouteRegistrar
func (r *BusinessRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	businesses := rg.Group("/businesses")
	{
		businesses.POST("/register", r.handler.Register)
		businesses.GET("/current", r.handler.Get)
		businesses.PUT("/current", r.handler.Update)
		businesses.PUT("/current/numbering", r.handler.UpdateNumbering)
	}
}

// CustomerRoutes registers the customer management endpoints
type CustomerRoutes struct {
	handler *handler.CustomerHandler
}

// NewCustomerRoutes creates the customer route registrar
func NewCustomerRoutes(h *handler.CustomerHandler) *CustomerRoutes {
	return &CustomerRoutes{handler: h}
}

// RegisterRoutes implements RouteRegistrar
func (r *CustomerRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", r.handler.Create)
		customers.GET("", r.handler.List)
		customers.GET("/:id", r.handler.GetByID)
		customers.PUT("/:id", r.handler.Update)
		customers.POST("/:id/deactivate", r.handler.Deactivate)
		customers.POST("/:id/activate", r.handler.Activate)
	}
}

// InvoiceRoutes registers the invoice lifecycle endpoints
type InvoiceRoutes struct {
	handler *handler.InvoiceHandler
}

// NewInvoiceRoutes creates the invoice route registrar
func NewInvoiceRoutes(h *handler.InvoiceHandler) *InvoiceRoutes {
	return &InvoiceRoutes{handler: h}
}

// RegisterRoutes implements RouteRegistrar
func (r *InvoiceRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", r.handler.Create)
		invoices.GET("", r.handler.List)
		invoices.GET("/:id", r.handler.GetByID)
		invoices.PUT("/:id", r.handler.Update)
		invoices.PUT("/:id/items", r.handler.ReplaceItems)
		invoices.POST("/:id/finalize", r.handler.Finalize)
		invoices.DELETE("/:id", r.handler.Delete)
	}
}
