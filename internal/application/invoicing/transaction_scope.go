package invoicing

import (
	"context"

	"github.com/invoicing/backend/internal/domain/invoicing"
)

// TransactionScope provides transactional access to the repositories the
// finalization flow touches. All repository operations inside Execute share
// one database transaction and commit or roll back together. A sequence
// number allocated inside a rolled-back transaction is burned with it, which
// is exactly the gapless-on-success guarantee: gaps can appear, duplicates
// cannot.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the finalization repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// InvoiceRepo returns the invoice repository scoped to the current transaction
	InvoiceRepo() invoicing.InvoiceRepository
	// SequenceRepo returns the sequence repository scoped to the current transaction
	SequenceRepo() invoicing.SequenceRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	invoiceRepo  invoicing.InvoiceRepository
	sequenceRepo invoicing.SequenceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	invoiceRepo invoicing.InvoiceRepository,
	sequenceRepo invoicing.SequenceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		invoiceRepo:  invoiceRepo,
		sequenceRepo: sequenceRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the invoice repository.
func (s *NoOpTransactionScope) InvoiceRepo() invoicing.InvoiceRepository {
	return s.invoiceRepo
}

// SequenceRepo returns the sequence repository.
func (s *NoOpTransactionScope) SequenceRepo() invoicing.SequenceRepository {
	return s.sequenceRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
