package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/invoicing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSequenceRepository implements SequenceRepository using GORM.
//
// Allocation is a single atomic INSERT ... ON CONFLICT DO UPDATE ...
// RETURNING statement. Concurrent allocations for the same stream serialize
// on the counter row's lock inside the database, so no two transactions can
// read the same value. Numbers handed to transactions that later roll back
// are burned.
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Allocate atomically hands out the next number for a numbering stream.
// The counter row is created on first use; the first allocated number is
// startingNumber itself.
func (r *GormSequenceRepository) Allocate(ctx context.Context, businessID uuid.UUID, group invoicing.SequenceGroup, startingNumber int64) (int64, error) {
	// On insert the row records the state after handing out startingNumber
	seq := invoicing.DocumentSequence{
		BusinessID: businessID,
		Group:      group,
		NextNumber: startingNumber + 1,
	}

	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "business_id"}, {Name: "sequence_group"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"next_number": gorm.Expr("document_sequences.next_number + 1"),
					"updated_at":  gorm.Expr("NOW()"),
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "next_number"}}},
		).
		Create(&seq).Error
	if err != nil {
		return 0, err
	}

	// next_number is the post-allocation state; the assigned number precedes it
	return seq.NextNumber - 1, nil
}

// Peek returns the number the next allocation would assign without advancing
// the counter. The value is advisory only.
func (r *GormSequenceRepository) Peek(ctx context.Context, businessID uuid.UUID, group invoicing.SequenceGroup, startingNumber int64) (int64, error) {
	var seq invoicing.DocumentSequence
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND sequence_group = ?", businessID, group).
		First(&seq).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return startingNumber, nil
		}
		return 0, err
	}
	return seq.NextNumber, nil
}

// Ensure GormSequenceRepository implements SequenceRepository
var _ invoicing.SequenceRepository = (*GormSequenceRepository)(nil)
