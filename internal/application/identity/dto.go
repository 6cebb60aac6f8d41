package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/identity"
)

// RegisterBusinessRequest registers a new business together with its first user
type RegisterBusinessRequest struct {
	BusinessName string `json:"business_name" binding:"required,min=1,max=200"`
	TaxID        string `json:"tax_id" binding:"required,len=9,numeric"`
	BusinessType string `json:"business_type" binding:"required,oneof=exempt_dealer licensed_dealer company"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8,max=72"`
	DisplayName  string `json:"display_name" binding:"omitempty,max=100"`
}

// UpdateBusinessRequest updates the business profile
type UpdateBusinessRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"omitempty,max=50"`
	Address string `json:"address" binding:"omitempty,max=500"`
}

// UpdateNumberingRequest configures document numbering for a business
type UpdateNumberingRequest struct {
	InvoiceNumberPrefix   string `json:"invoice_number_prefix" binding:"omitempty,max=16"`
	StartingInvoiceNumber int64  `json:"starting_invoice_number" binding:"min=1"`
}

// BusinessResponse represents a business in API responses
type BusinessResponse struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	TaxID                 string    `json:"tax_id"`
	Type                  string    `json:"type"`
	Status                string    `json:"status"`
	Email                 string    `json:"email,omitempty"`
	Phone                 string    `json:"phone,omitempty"`
	Address               string    `json:"address,omitempty"`
	Timezone              string    `json:"timezone"`
	InvoiceNumberPrefix   string    `json:"invoice_number_prefix"`
	StartingInvoiceNumber int64     `json:"starting_invoice_number"`
	VATExempt             bool      `json:"vat_exempt"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ToBusinessResponse converts a business aggregate to its API representation
func ToBusinessResponse(b *identity.Business) BusinessResponse {
	return BusinessResponse{
		ID:                    b.ID,
		Name:                  b.Name,
		TaxID:                 b.TaxID,
		Type:                  string(b.Type),
		Status:                string(b.Status),
		Email:                 b.Email,
		Phone:                 b.Phone,
		Address:               b.Address,
		Timezone:              b.Timezone,
		InvoiceNumberPrefix:   b.InvoiceNumberPrefix,
		StartingInvoiceNumber: b.StartingInvoiceNumber,
		VATExempt:             b.IsVATExempt(),
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
}

// RegisterBusinessResponse is returned after a successful registration
type RegisterBusinessResponse struct {
	Business BusinessResponse `json:"business"`
	User     UserInfo         `json:"user"`
}

// LoginRequest authenticates a user by email and password
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest exchanges a refresh token for a new token pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest revokes the caller's tokens
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"omitempty"`
}

// ChangePasswordRequest changes the current user's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserInfo represents the authenticated user in responses
type UserInfo struct {
	ID          uuid.UUID `json:"id"`
	BusinessID  uuid.UUID `json:"business_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
}

// ToUserInfo converts a user entity to its API representation
func ToUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:          u.ID,
		BusinessID:  u.BusinessID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}
}

// LoginResponse carries the issued token pair and user info
type LoginResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenResponse carries the rotated token pair
type RefreshTokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}
