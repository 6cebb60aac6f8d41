package invoicing

import (
	"context"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/invoicing"
	"github.com/invoicing/backend/internal/domain/partner"
	"github.com/invoicing/backend/internal/domain/shared"
)

// InvoiceService handles draft invoice operations. Finalization lives in
// FinalizeService because it crosses aggregate boundaries.
type InvoiceService struct {
	invoiceRepo  invoicing.InvoiceRepository
	customerRepo partner.CustomerRepository
	metrics      MetricsRecorder
	events       shared.EventPublisher
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo invoicing.InvoiceRepository, customerRepo partner.CustomerRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
	}
}

// WithMetrics attaches a metrics recorder and returns the service
func (s *InvoiceService) WithMetrics(metrics MetricsRecorder) *InvoiceService {
	s.metrics = metrics
	return s
}

// WithEvents attaches an event publisher and returns the service
func (s *InvoiceService) WithEvents(events shared.EventPublisher) *InvoiceService {
	s.events = events
	return s
}

// Create creates a new draft invoice
func (s *InvoiceService) Create(ctx context.Context, businessID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if req.CustomerID != nil {
		if _, err := s.customerRepo.FindByIDForBusiness(ctx, businessID, *req.CustomerID); err != nil {
			return nil, shared.ErrCustomerNotFound
		}
	}

	invoice, err := invoicing.NewInvoice(businessID, invoicing.DocumentType(req.DocumentType), req.CustomerID, req.InvoiceDate)
	if err != nil {
		return nil, err
	}

	if len(req.Items) > 0 {
		items, err := buildItems(invoice.ID, req.Items)
		if err != nil {
			return nil, err
		}
		if err := invoice.ReplaceItems(items); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		invoice.SetNotes(req.Notes)
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, invoice)

	if s.metrics != nil {
		s.metrics.RecordDraftCreated(ctx, businessID.String(), req.DocumentType)
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, businessID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForBusiness(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, businessID uuid.UUID, filter InvoiceListFilter) ([]InvoiceListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}

	var (
		invoices []invoicing.Invoice
		err      error
	)
	switch {
	case filter.Status != "":
		invoices, err = s.invoiceRepo.FindByStatus(ctx, businessID, invoicing.InvoiceStatus(filter.Status), domainFilter)
	case filter.CustomerID != nil:
		invoices, err = s.invoiceRepo.FindByCustomer(ctx, businessID, *filter.CustomerID, domainFilter)
	default:
		invoices, err = s.invoiceRepo.FindAllForBusiness(ctx, businessID, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.CountForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceListItemResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceListItemResponse(&invoices[i])
	}
	return responses, total, nil
}

// Update updates a draft invoice's header fields
func (s *InvoiceService) Update(ctx context.Context, businessID, invoiceID uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForBusiness(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.IsDraft() {
		return nil, shared.ErrNotDraft
	}

	if req.CustomerID != nil {
		if _, err := s.customerRepo.FindByIDForBusiness(ctx, businessID, *req.CustomerID); err != nil {
			return nil, shared.ErrCustomerNotFound
		}
		if err := invoice.SetCustomer(req.CustomerID); err != nil {
			return nil, err
		}
	}
	if req.InvoiceDate != nil {
		if err := invoice.SetInvoiceDate(*req.InvoiceDate); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		invoice.SetNotes(*req.Notes)
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// ReplaceItems replaces the full line item list of a draft invoice
func (s *InvoiceService) ReplaceItems(ctx context.Context, businessID, invoiceID uuid.UUID, req ReplaceItemsRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForBusiness(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.IsDraft() {
		return nil, shared.ErrNotDraft
	}

	items, err := buildItems(invoice.ID, req.Items)
	if err != nil {
		return nil, err
	}
	if err := invoice.ReplaceItems(items); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Delete deletes a draft invoice. Finalized invoices are legal documents and
// can never be deleted.
func (s *InvoiceService) Delete(ctx context.Context, businessID, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByIDForBusiness(ctx, businessID, invoiceID)
	if err != nil {
		return err
	}
	if !invoice.IsDraft() {
		return shared.ErrNotDraft
	}

	return s.invoiceRepo.DeleteForBusiness(ctx, businessID, invoiceID)
}

func buildItems(invoiceID uuid.UUID, inputs []InvoiceItemInput) ([]invoicing.InvoiceItem, error) {
	items := make([]invoicing.InvoiceItem, 0, len(inputs))
	for _, input := range inputs {
		item, err := invoicing.NewInvoiceItem(
			invoiceID,
			input.Position,
			input.Description,
			input.CatalogNumber,
			input.Quantity,
			input.UnitPrice,
			input.DiscountPercent,
			input.VATRate,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}
