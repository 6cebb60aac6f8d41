package identity

import (
	"context"

	"github.com/google/uuid"
)

// BusinessRepository defines the interface for business persistence
type BusinessRepository interface {
	// FindByID finds a business by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Business, error)

	// FindByTaxID finds a business by its tax registration number
	FindByTaxID(ctx context.Context, taxID string) (*Business, error)

	// Save creates or updates a business
	Save(ctx context.Context, business *Business) error
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email address
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAllForBusiness lists the users of a business
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}
