package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Invoicing domain errors. These are the expected, user-facing failure
// conditions of the finalization flow; the HTTP layer maps them to status
// codes without string matching.
var (
	ErrNotDraft           = NewDomainError("NOT_DRAFT", "Invoice is not in draft status")
	ErrMissingCustomer    = NewDomainError("MISSING_CUSTOMER", "Invoice has no customer assigned")
	ErrCustomerNotFound   = NewDomainError("CUSTOMER_NOT_FOUND", "Customer does not exist")
	ErrCustomerInactive   = NewDomainError("CUSTOMER_INACTIVE", "Customer has been deactivated")
	ErrNoLineItems        = NewDomainError("NO_LINE_ITEMS", "Invoice has no line items")
	ErrInvalidInvoiceDate = NewDomainError("INVALID_INVOICE_DATE", "Invoice date is too far in the future")
	ErrInvalidVATRate     = NewDomainError("INVALID_VAT_RATE", "Line item VAT rate is not allowed for this business")
)
