package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByIDForBusiness finds a customer by ID, scoped to a business
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Customer, error)

	// FindAllForBusiness lists customers for a business with filtering
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// FindByStatus lists customers by status for a business
	FindByStatus(ctx context.Context, businessID uuid.UUID, status CustomerStatus, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// CountForBusiness counts customers for a business
	CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error)
}
