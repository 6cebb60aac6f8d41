package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apppartner "github.com/invoicing/backend/internal/application/partner"
	"github.com/invoicing/backend/internal/domain/partner"
	"github.com/invoicing/backend/internal/domain/shared"
	"github.com/invoicing/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, businessID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByStatus(ctx context.Context, businessID uuid.UUID, status partner.CustomerStatus, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, businessID, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// authStub injects the identity a JWT would carry, so handler tests do not
// need to mint real tokens.
func authStub(businessID, userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTBusinessIDKey, businessID.String())
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Next()
	}
}

func setupCustomerRouter(handler *CustomerHandler, businessID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(authStub(businessID, uuid.New()))

	customers := r.Group("/api/v1/customers")
	{
		customers.POST("", handler.Create)
		customers.GET("", handler.List)
		customers.GET("/:id", handler.GetByID)
		customers.PUT("/:id", handler.Update)
		customers.POST("/:id/deactivate", handler.Deactivate)
		customers.POST("/:id/activate", handler.Activate)
	}
	return r
}

func createTestCustomer(t *testing.T, businessID uuid.UUID) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(businessID, "Acme Ltd")
	require.NoError(t, err)
	require.NoError(t, customer.Update("Acme Ltd", "514123456", "billing@acme.co.il", "", "Herzl 1", "Tel Aviv", "6688101", ""))
	return customer
}

func TestCustomerHandler_Create(t *testing.T) {
	businessID := uuid.New()
	repo := new(MockCustomerRepository)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)

	handler := NewCustomerHandler(apppartner.NewCustomerService(repo))
	router := setupCustomerRouter(handler, businessID)

	body, _ := json.Marshal(apppartner.CreateCustomerRequest{
		Name:  "Acme Ltd",
		TaxID: "514123456",
		Email: "billing@acme.co.il",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response["success"].(bool))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Acme Ltd", data["name"])
	assert.Equal(t, "active", data["status"])
	repo.AssertExpectations(t)
}

func TestCustomerHandler_Create_InvalidBody(t *testing.T) {
	businessID := uuid.New()
	handler := NewCustomerHandler(apppartner.NewCustomerService(new(MockCustomerRepository)))
	router := setupCustomerRouter(handler, businessID)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewReader([]byte(`{"name":""}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
}

func TestCustomerHandler_GetByID_NotFound(t *testing.T) {
	businessID := uuid.New()
	customerID := uuid.New()
	repo := new(MockCustomerRepository)
	repo.On("FindByIDForBusiness", mock.Anything, businessID, customerID).Return(nil, shared.ErrNotFound)

	handler := NewCustomerHandler(apppartner.NewCustomerService(repo))
	router := setupCustomerRouter(handler, businessID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/"+customerID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
}

func TestCustomerHandler_GetByID_InvalidID(t *testing.T) {
	businessID := uuid.New()
	handler := NewCustomerHandler(apppartner.NewCustomerService(new(MockCustomerRepository)))
	router := setupCustomerRouter(handler, businessID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerHandler_List(t *testing.T) {
	businessID := uuid.New()
	repo := new(MockCustomerRepository)
	customer := createTestCustomer(t, businessID)
	repo.On("FindAllForBusiness", mock.Anything, businessID, mock.AnythingOfType("shared.Filter")).
		Return([]partner.Customer{*customer}, nil)
	repo.On("CountForBusiness", mock.Anything, businessID, mock.AnythingOfType("shared.Filter")).
		Return(int64(1), nil)

	handler := NewCustomerHandler(apppartner.NewCustomerService(repo))
	router := setupCustomerRouter(handler, businessID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers?page=1&page_size=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response["success"].(bool))
	meta := response["meta"].(map[string]interface{})
	assert.Equal(t, float64(1), meta["total"])
	assert.Equal(t, float64(10), meta["page_size"])
}

func TestCustomerHandler_List_RejectsBadStatus(t *testing.T) {
	businessID := uuid.New()
	handler := NewCustomerHandler(apppartner.NewCustomerService(new(MockCustomerRepository)))
	router := setupCustomerRouter(handler, businessID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers?status=archived", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerHandler_Deactivate(t *testing.T) {
	businessID := uuid.New()
	repo := new(MockCustomerRepository)
	customer := createTestCustomer(t, businessID)
	repo.On("FindByIDForBusiness", mock.Anything, businessID, customer.ID).Return(customer, nil)
	repo.On("Save", mock.Anything, customer).Return(nil)

	handler := NewCustomerHandler(apppartner.NewCustomerService(repo))
	router := setupCustomerRouter(handler, businessID)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers/"+customer.ID.String()+"/deactivate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "inactive", data["status"])
	repo.AssertExpectations(t)
}
