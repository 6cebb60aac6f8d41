package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/partner"
	"github.com/invoicing/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testCustomer(t *testing.T, businessID uuid.UUID) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(businessID, "Acme Ltd")
	require.NoError(t, err)
	return customer
}

func strPtr(s string) *string {
	return &s
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()
	businessID := uuid.New()

	repo := new(MockCustomerRepository)
	repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

	service := NewCustomerService(repo)

	result, err := service.Create(ctx, businessID, CreateCustomerRequest{
		Name:          "Acme Ltd",
		TaxID:         "514123456",
		Email:         "billing@acme.example",
		StreetAddress: "1 Herzl St",
		City:          "Tel Aviv",
		PostalCode:    "6100001",
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", result.Name)
	assert.Equal(t, "514123456", result.TaxID)
	assert.Equal(t, "active", result.Status)
	repo.AssertExpectations(t)
}

func TestCustomerService_Create_EmptyName(t *testing.T) {
	ctx := context.Background()

	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)

	_, err := service.Create(ctx, uuid.New(), CreateCustomerRequest{Name: "  "})

	require.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCustomerService_Create_InvalidEmail(t *testing.T) {
	ctx := context.Background()

	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)

	_, err := service.Create(ctx, uuid.New(), CreateCustomerRequest{
		Name:  "Acme Ltd",
		Email: "not-an-email",
	})

	require.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCustomerService_Update_PartialFields(t *testing.T) {
	ctx := context.Background()
	businessID := uuid.New()

	customer := testCustomer(t, businessID)
	require.NoError(t, customer.Update("Acme Ltd", "514123456", "old@acme.example", "", "", "", "", ""))

	repo := new(MockCustomerRepository)
	repo.On("FindByIDForBusiness", ctx, businessID, customer.ID).Return(customer, nil)
	repo.On("Save", ctx, customer).Return(nil)

	service := NewCustomerService(repo)

	result, err := service.Update(ctx, businessID, customer.ID, UpdateCustomerRequest{
		Email: strPtr("new@acme.example"),
		City:  strPtr("Haifa"),
	})

	require.NoError(t, err)
	assert.Equal(t, "new@acme.example", result.Email)
	assert.Equal(t, "Haifa", result.City)
	// Untouched fields survive
	assert.Equal(t, "Acme Ltd", result.Name)
	assert.Equal(t, "514123456", result.TaxID)
}

func TestCustomerService_Deactivate(t *testing.T) {
	ctx := context.Background()
	businessID := uuid.New()

	customer := testCustomer(t, businessID)

	repo := new(MockCustomerRepository)
	repo.On("FindByIDForBusiness", ctx, businessID, customer.ID).Return(customer, nil)
	repo.On("Save", ctx, customer).Return(nil)

	service := NewCustomerService(repo)

	result, err := service.Deactivate(ctx, businessID, customer.ID)

	require.NoError(t, err)
	assert.Equal(t, "inactive", result.Status)
}

func TestCustomerService_Deactivate_AlreadyInactive(t *testing.T) {
	ctx := context.Background()
	businessID := uuid.New()

	customer := testCustomer(t, businessID)
	require.NoError(t, customer.Deactivate())

	repo := new(MockCustomerRepository)
	repo.On("FindByIDForBusiness", ctx, businessID, customer.ID).Return(customer, nil)

	service := NewCustomerService(repo)

	_, err := service.Deactivate(ctx, businessID, customer.ID)

	require.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCustomerService_Activate(t *testing.T) {
	ctx := context.Background()
	businessID := uuid.New()

	customer := testCustomer(t, businessID)
	require.NoError(t, customer.Deactivate())

	repo := new(MockCustomerRepository)
	repo.On("FindByIDForBusiness", ctx, businessID, customer.ID).Return(customer, nil)
	repo.On("Save", ctx, customer).Return(nil)

	service := NewCustomerService(repo)

	result, err := service.Activate(ctx, businessID, customer.ID)

	require.NoError(t, err)
	assert.Equal(t, "active", result.Status)
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	businessID := uuid.New()

	first := testCustomer(t, businessID)
	second := testCustomer(t, businessID)

	repo := new(MockCustomerRepository)
	repo.On("FindAllForBusiness", ctx, businessID, mock.AnythingOfType("shared.Filter")).
		Return([]partner.Customer{*first, *second}, nil)
	repo.On("CountForBusiness", ctx, businessID, mock.AnythingOfType("shared.Filter")).
		Return(int64(2), nil)

	service := NewCustomerService(repo)

	results, total, err := service.List(ctx, businessID, CustomerListFilter{})

	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, int64(2), total)
}

func TestCustomerService_List_ByStatus(t *testing.T) {
	ctx := context.Background()
	businessID := uuid.New()

	customer := testCustomer(t, businessID)

	repo := new(MockCustomerRepository)
	repo.On("FindByStatus", ctx, businessID, partner.CustomerStatusActive, mock.AnythingOfType("shared.Filter")).
		Return([]partner.Customer{*customer}, nil)
	repo.On("CountForBusiness", ctx, businessID, mock.AnythingOfType("shared.Filter")).
		Return(int64(1), nil)

	service := NewCustomerService(repo)

	results, total, err := service.List(ctx, businessID, CustomerListFilter{Status: "active"})

	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, int64(1), total)
	repo.AssertNotCalled(t, "FindAllForBusiness", mock.Anything, mock.Anything, mock.Anything)
}

// capturingPublisher records published domain events
type capturingPublisher struct {
	published []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) {
	p.published = append(p.published, events...)
}

func TestCustomerService_Create_PublishesEvent(t *testing.T) {
	ctx := context.Background()
	businessID := uuid.New()

	repo := new(MockCustomerRepository)
	repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

	publisher := &capturingPublisher{}
	service := NewCustomerService(repo).WithEvents(publisher)

	_, err := service.Create(ctx, businessID, CreateCustomerRequest{Name: "Acme Ltd"})
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, partner.EventTypeCustomerCreated, publisher.published[0].EventType())
	assert.Equal(t, businessID, publisher.published[0].BusinessID())
}
