package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/partner"
	"github.com/invoicing/backend/internal/domain/shared"
	"github.com/invoicing/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	events       shared.EventPublisher
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
	}
}

// WithEvents attaches an event publisher and returns the service
func (s *CustomerService) WithEvents(events shared.EventPublisher) *CustomerService {
	s.events = events
	return s
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, businessID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(businessID, req.Name)
	if err != nil {
		return nil, err
	}

	if req.TaxID != "" || req.Email != "" || req.Phone != "" || req.StreetAddress != "" ||
		req.City != "" || req.PostalCode != "" || req.Notes != "" {
		if err := customer.Update(req.Name, req.TaxID, req.Email, req.Phone,
			req.StreetAddress, req.City, req.PostalCode, req.Notes); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, customer)

	logger.L(ctx).Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("business_id", businessID.String()))

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, businessID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForBusiness(ctx, businessID, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, businessID uuid.UUID, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}

	var (
		customers []partner.Customer
		err       error
	)
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
		customers, err = s.customerRepo.FindByStatus(ctx, businessID, partner.CustomerStatus(filter.Status), domainFilter)
	} else {
		customers, err = s.customerRepo.FindAllForBusiness(ctx, businessID, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.customerRepo.CountForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerResponses(customers), total, nil
}

// Update updates a customer
func (s *CustomerService) Update(ctx context.Context, businessID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForBusiness(ctx, businessID, customerID)
	if err != nil {
		return nil, err
	}

	name := customer.Name
	taxID := customer.TaxID
	email := customer.Email
	phone := customer.Phone
	streetAddress := customer.StreetAddress
	city := customer.City
	postalCode := customer.PostalCode
	notes := customer.Notes

	if req.Name != nil {
		name = *req.Name
	}
	if req.TaxID != nil {
		taxID = *req.TaxID
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.StreetAddress != nil {
		streetAddress = *req.StreetAddress
	}
	if req.City != nil {
		city = *req.City
	}
	if req.PostalCode != nil {
		postalCode = *req.PostalCode
	}
	if req.Notes != nil {
		notes = *req.Notes
	}

	if err := customer.Update(name, taxID, email, phone, streetAddress, city, postalCode, notes); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Deactivate deactivates a customer. Deactivated customers keep their
// history but cannot be assigned to new finalized invoices.
func (s *CustomerService) Deactivate(ctx context.Context, businessID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForBusiness(ctx, businessID, customerID)
	if err != nil {
		return nil, err
	}

	if err := customer.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, customer)

	logger.L(ctx).Info("customer deactivated",
		zap.String("customer_id", customerID.String()),
		zap.String("business_id", businessID.String()))

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Activate reactivates a customer
func (s *CustomerService) Activate(ctx context.Context, businessID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForBusiness(ctx, businessID, customerID)
	if err != nil {
		return nil, err
	}

	if err := customer.Activate(); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}
