package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/invoicing"
	"github.com/invoicing/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// preloadItems orders line items by position so the aggregate always sees
// them in document order.
func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// FindByIDForBusiness finds an invoice with its items, scoped to a business
func (r *GormInvoiceRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*invoicing.Invoice, error) {
	var invoice invoicing.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items", preloadItems).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByIDForBusinessLocked finds an invoice holding a row-level write lock
// until the surrounding transaction ends. The lock covers the invoice row;
// items are loaded in a follow-up query.
func (r *GormInvoiceRepository) FindByIDForBusinessLocked(ctx context.Context, businessID, id uuid.UUID) (*invoicing.Invoice, error) {
	var invoice invoicing.Invoice
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoice.ID).
		Order("position ASC").
		Find(&invoice.Items).Error; err != nil {
		return nil, err
	}

	return &invoice, nil
}

// FindAllForBusiness lists invoices for a business with filtering
func (r *GormInvoiceRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]invoicing.Invoice, error) {
	var invoices []invoicing.Invoice
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&invoicing.Invoice{}).
			Preload("Items", preloadItems).
			Where("business_id = ?", businessID),
		filter,
	)

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByStatus lists invoices by status for a business
func (r *GormInvoiceRepository) FindByStatus(ctx context.Context, businessID uuid.UUID, status invoicing.InvoiceStatus, filter shared.Filter) ([]invoicing.Invoice, error) {
	var invoices []invoicing.Invoice
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&invoicing.Invoice{}).
			Preload("Items", preloadItems).
			Where("business_id = ? AND status = ?", businessID, status),
		filter,
	)

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByCustomer lists invoices referencing a customer
func (r *GormInvoiceRepository) FindByCustomer(ctx context.Context, businessID, customerID uuid.UUID, filter shared.Filter) ([]invoicing.Invoice, error) {
	var invoices []invoicing.Invoice
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&invoicing.Invoice{}).
			Preload("Items", preloadItems).
			Where("business_id = ? AND customer_id = ?", businessID, customerID),
		filter,
	)

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save creates or updates an invoice together with its items. Items are
// replaced wholesale so removed positions do not linger.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *invoicing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(invoice).Error; err != nil {
			return err
		}

		if err := tx.Where("invoice_id = ?", invoice.ID).
			Delete(&invoicing.InvoiceItem{}).Error; err != nil {
			return err
		}

		if len(invoice.Items) > 0 {
			if err := tx.Create(&invoice.Items).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteForBusiness deletes an invoice and its items, scoped to a business
func (r *GormInvoiceRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("business_id = ? AND id = ?", businessID, id).
			Delete(&invoicing.Invoice{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		return tx.Where("invoice_id = ?", id).
			Delete(&invoicing.InvoiceItem{}).Error
	})
}

// CountForBusiness counts invoices for a business
func (r *GormInvoiceRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&invoicing.Invoice{}).Where("business_id = ?", businessID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts invoices by status for a business
func (r *GormInvoiceRepository) CountByStatus(ctx context.Context, businessID uuid.UUID, status invoicing.InvoiceStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&invoicing.Invoice{}).
		Where("business_id = ? AND status = ?", businessID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InvoiceSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("full_number ILIKE ? OR customer_name ILIKE ? OR notes ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "document_type":
			query = query.Where("document_type = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "invoice_date_from":
			query = query.Where("invoice_date >= ?", value)
		case "invoice_date_to":
			query = query.Where("invoice_date <= ?", value)
		}
	}

	return query
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ invoicing.InvoiceRepository = (*GormInvoiceRepository)(nil)
