package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/shared"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// IsValid checks if the status is a valid CustomerStatus
func (s CustomerStatus) IsValid() bool {
	switch s {
	case CustomerStatusActive, CustomerStatusInactive:
		return true
	}
	return false
}

// String returns the string representation of CustomerStatus
func (s CustomerStatus) String() string {
	return string(s)
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Customer represents a billable party. Invoices reference customers by ID
// while in draft; at finalization the relevant fields are copied onto the
// invoice, so deactivating or editing a customer never touches issued
// documents.
type Customer struct {
	shared.BusinessAggregateRoot
	Name          string         `gorm:"type:varchar(200);not null"`
	TaxID         string         `gorm:"type:varchar(50)"`
	Email         string         `gorm:"type:varchar(200);index"`
	Phone         string         `gorm:"type:varchar(50)"`
	StreetAddress string         `gorm:"type:varchar(200)"`
	City          string         `gorm:"type:varchar(100)"`
	PostalCode    string         `gorm:"type:varchar(20)"`
	Status        CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes         string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new active customer
func NewCustomer(businessID uuid.UUID, name string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}

	customer := &Customer{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Name:                  name,
		Status:                CustomerStatusActive,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's details
func (c *Customer) Update(name, taxID, email, phone, streetAddress, city, postalCode, notes string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	if email != "" && !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	c.Name = name
	c.TaxID = taxID
	c.Email = email
	c.Phone = phone
	c.StreetAddress = streetAddress
	c.City = city
	c.PostalCode = postalCode
	c.Notes = notes
	c.UpdatedAt = time.Now()

	c.AddDomainEvent(NewCustomerUpdatedEvent(c))

	return nil
}

// Deactivate marks the customer inactive. Inactive customers keep their
// historical invoices but cannot appear on newly finalized ones.
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}
	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()

	c.AddDomainEvent(NewCustomerDeactivatedEvent(c))

	return nil
}

// Activate restores an inactive customer
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}
	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

func validateCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}
