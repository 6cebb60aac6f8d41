package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/invoicing/backend/internal/domain/shared"
)

// BusinessStatus represents the status of a business account
type BusinessStatus string

const (
	BusinessStatusActive    BusinessStatus = "active"
	BusinessStatusSuspended BusinessStatus = "suspended"
)

// IsValid checks if the status is a valid BusinessStatus
func (s BusinessStatus) IsValid() bool {
	switch s {
	case BusinessStatusActive, BusinessStatusSuspended:
		return true
	}
	return false
}

// BusinessType is the registration form of the business with the Israeli tax
// authority. The type determines the VAT treatment of issued documents.
type BusinessType string

const (
	// BusinessTypeExemptDealer (osek patur) may not charge VAT at all.
	BusinessTypeExemptDealer BusinessType = "exempt_dealer"
	// BusinessTypeLicensedDealer (osek murshe) charges the standard rate.
	BusinessTypeLicensedDealer BusinessType = "licensed_dealer"
	// BusinessTypeCompany is a registered company, same VAT treatment as a
	// licensed dealer.
	BusinessTypeCompany BusinessType = "company"
)

// IsValid checks if the business type is known
func (t BusinessType) IsValid() bool {
	switch t {
	case BusinessTypeExemptDealer, BusinessTypeLicensedDealer, BusinessTypeCompany:
		return true
	}
	return false
}

// String returns the string representation of BusinessType
func (t BusinessType) String() string {
	return string(t)
}

var taxIDRegex = regexp.MustCompile(`^\d{9}$`)

// Business is the tenant of the system. Every customer, invoice and counter
// row belongs to exactly one business.
type Business struct {
	shared.BaseAggregateRoot
	Name     string         `gorm:"type:varchar(200);not null"`
	TaxID    string         `gorm:"type:varchar(20);not null;uniqueIndex"`
	Type     BusinessType   `gorm:"type:varchar(20);not null"`
	Status   BusinessStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Email    string         `gorm:"type:varchar(200)"`
	Phone    string         `gorm:"type:varchar(50)"`
	Address  string         `gorm:"type:text"`
	LogoURL  string         `gorm:"type:varchar(500)"`
	Timezone string         `gorm:"type:varchar(64);not null;default:'Asia/Jerusalem'"`

	// InvoiceNumberPrefix is prepended to every document number this
	// business issues, e.g. "INV" yields "INV-0001".
	InvoiceNumberPrefix string `gorm:"type:varchar(16)"`
	// StartingInvoiceNumber is the number the first document in each
	// numbering stream receives. Changing it after documents exist has no
	// effect on streams that already allocated.
	StartingInvoiceNumber int64 `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (Business) TableName() string {
	return "businesses"
}

// NewBusiness creates a new active business
func NewBusiness(name, taxID string, businessType BusinessType) (*Business, error) {
	if err := validateBusinessName(name); err != nil {
		return nil, err
	}
	if !taxIDRegex.MatchString(taxID) {
		return nil, shared.NewDomainError("INVALID_TAX_ID", "Tax ID must be exactly 9 digits")
	}
	if !businessType.IsValid() {
		return nil, shared.NewDomainError("INVALID_BUSINESS_TYPE", "Unknown business type")
	}

	business := &Business{
		BaseAggregateRoot:     shared.NewBaseAggregateRoot(),
		Name:                  name,
		TaxID:                 taxID,
		Type:                  businessType,
		Status:                BusinessStatusActive,
		Timezone:              "Asia/Jerusalem",
		StartingInvoiceNumber: 1,
	}

	business.AddDomainEvent(NewBusinessCreatedEvent(business))

	return business, nil
}

// IsVATExempt returns true when the business may not charge VAT
func (b *Business) IsVATExempt() bool {
	return b.Type == BusinessTypeExemptDealer
}

// IsActive returns true if the business account is active
func (b *Business) IsActive() bool {
	return b.Status == BusinessStatusActive
}

// Update updates the business profile
func (b *Business) Update(name, email, phone, address string) error {
	if err := validateBusinessName(name); err != nil {
		return err
	}

	b.Name = name
	b.Email = strings.TrimSpace(email)
	b.Phone = strings.TrimSpace(phone)
	b.Address = address
	b.UpdatedAt = time.Now()

	b.AddDomainEvent(NewBusinessUpdatedEvent(b))

	return nil
}

// SetNumbering configures the document number prefix and starting number.
// The starting number only affects numbering streams that have not yet
// allocated their first document.
func (b *Business) SetNumbering(prefix string, startingNumber int64) error {
	if len(prefix) > 16 {
		return shared.NewDomainError("INVALID_PREFIX", "Invoice number prefix cannot exceed 16 characters")
	}
	if startingNumber < 1 {
		return shared.NewDomainError("INVALID_STARTING_NUMBER", "Starting invoice number must be at least 1")
	}

	b.InvoiceNumberPrefix = strings.ToUpper(strings.TrimSpace(prefix))
	b.StartingInvoiceNumber = startingNumber
	b.UpdatedAt = time.Now()
	return nil
}

// Suspend suspends the business account
func (b *Business) Suspend() error {
	if b.Status == BusinessStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Business is already suspended")
	}
	b.Status = BusinessStatusSuspended
	b.UpdatedAt = time.Now()
	return nil
}

// Activate restores a suspended business account
func (b *Business) Activate() error {
	if b.Status == BusinessStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Business is already active")
	}
	b.Status = BusinessStatusActive
	b.UpdatedAt = time.Now()
	return nil
}

func validateBusinessName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Business name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Business name cannot exceed 200 characters")
	}
	return nil
}
