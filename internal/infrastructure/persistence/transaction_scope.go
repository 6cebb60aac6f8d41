package persistence

import (
	"context"

	appinvoicing "github.com/invoicing/backend/internal/application/invoicing"
	"github.com/invoicing/backend/internal/domain/invoicing"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Invoice writes are bound to the transaction and roll back together. The
// sequence repository deliberately stays on the base connection: the counter
// upsert commits on its own, so a finalization that rolls back afterwards
// burns its allocated number instead of handing it to the next caller.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction. The transaction commits when
// fn returns nil and rolls back when it returns an error or panics.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinvoicing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx, db: s.db})
	})
}

// gormTransactionalRepositories provides repositories for a single
// finalization attempt
type gormTransactionalRepositories struct {
	tx *gorm.DB
	db *gorm.DB
}

func (r *gormTransactionalRepositories) InvoiceRepo() invoicing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// SequenceRepo returns a repository on the base connection so counter
// advances survive a rollback of the surrounding transaction. While the
// allocation runs, the finalization holds two pooled connections at once;
// config validation keeps max_open_conns at 2 or more for this reason.
func (r *gormTransactionalRepositories) SequenceRepo() invoicing.SequenceRepository {
	return NewGormSequenceRepository(r.db)
}

// Ensure implementations satisfy the application interfaces
var _ appinvoicing.TransactionScope = (*GormTransactionScope)(nil)
var _ appinvoicing.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
