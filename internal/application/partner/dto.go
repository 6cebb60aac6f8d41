package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/partner"
)

// CreateCustomerRequest creates a new customer
type CreateCustomerRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	TaxID         string `json:"tax_id" binding:"omitempty,max=20"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone" binding:"omitempty,max=50"`
	StreetAddress string `json:"street_address" binding:"omitempty,max=200"`
	City          string `json:"city" binding:"omitempty,max=100"`
	PostalCode    string `json:"postal_code" binding:"omitempty,max=20"`
	Notes         string `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateCustomerRequest updates an existing customer.
// Nil fields are left unchanged.
type UpdateCustomerRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=200"`
	TaxID         *string `json:"tax_id" binding:"omitempty,max=20"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	StreetAddress *string `json:"street_address" binding:"omitempty,max=200"`
	City          *string `json:"city" binding:"omitempty,max=100"`
	PostalCode    *string `json:"postal_code" binding:"omitempty,max=20"`
	Notes         *string `json:"notes" binding:"omitempty,max=1000"`
}

// CustomerListFilter contains filtering options for customer listing
type CustomerListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	TaxID         string    `json:"tax_id,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	StreetAddress string    `json:"street_address,omitempty"`
	City          string    `json:"city,omitempty"`
	PostalCode    string    `json:"postal_code,omitempty"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a customer entity to its API representation
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		TaxID:         c.TaxID,
		Email:         c.Email,
		Phone:         c.Phone,
		StreetAddress: c.StreetAddress,
		City:          c.City,
		PostalCode:    c.PostalCode,
		Status:        string(c.Status),
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of customers to API representations
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
