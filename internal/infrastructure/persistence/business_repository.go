package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/identity"
	"github.com/invoicing/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBusinessRepository implements BusinessRepository using GORM
type GormBusinessRepository struct {
	db *gorm.DB
}

// NewGormBusinessRepository creates a new GormBusinessRepository
func NewGormBusinessRepository(db *gorm.DB) *GormBusinessRepository {
	return &GormBusinessRepository{db: db}
}

// FindByID finds a business by ID
func (r *GormBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Business, error) {
	var business identity.Business
	if err := r.db.WithContext(ctx).First(&business, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &business, nil
}

// FindByTaxID finds a business by its tax registration number
func (r *GormBusinessRepository) FindByTaxID(ctx context.Context, taxID string) (*identity.Business, error) {
	var business identity.Business
	if err := r.db.WithContext(ctx).First(&business, "tax_id = ?", taxID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &business, nil
}

// Save creates or updates a business
func (r *GormBusinessRepository) Save(ctx context.Context, business *identity.Business) error {
	return r.db.WithContext(ctx).Save(business).Error
}

// Ensure GormBusinessRepository implements BusinessRepository
var _ identity.BusinessRepository = (*GormBusinessRepository)(nil)
