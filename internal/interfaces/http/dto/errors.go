package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeInvalidCredentials is used when login credentials are wrong
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	// ErrCodeTokenRevoked is used when the auth token has been revoked
	ErrCodeTokenRevoked = "ERR_TOKEN_REVOKED"
	// ErrCodeAccountDeactivated is used when the user account is deactivated
	ErrCodeAccountDeactivated = "ERR_ACCOUNT_DEACTIVATED"
	// ErrCodeBusinessSuspended is used when the owning business is suspended
	ErrCodeBusinessSuspended = "ERR_BUSINESS_SUSPENDED"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Invoicing business rule error codes
const (
	// ErrCodeNotDraft is used when a mutation targets a finalized invoice
	ErrCodeNotDraft = "ERR_NOT_DRAFT"
	// ErrCodeMissingCustomer is used when finalization requires a customer
	ErrCodeMissingCustomer = "ERR_MISSING_CUSTOMER"
	// ErrCodeCustomerNotFound is used when the referenced customer does not exist
	ErrCodeCustomerNotFound = "ERR_CUSTOMER_NOT_FOUND"
	// ErrCodeCustomerInactive is used when the referenced customer is deactivated
	ErrCodeCustomerInactive = "ERR_CUSTOMER_INACTIVE"
	// ErrCodeNoLineItems is used when finalization requires at least one line item
	ErrCodeNoLineItems = "ERR_NO_LINE_ITEMS"
	// ErrCodeInvalidInvoiceDate is used when the invoice date is out of range
	ErrCodeInvalidInvoiceDate = "ERR_INVALID_INVOICE_DATE"
	// ErrCodeInvalidVATRate is used when a line carries a disallowed VAT rate
	ErrCodeInvalidVATRate = "ERR_INVALID_VAT_RATE"
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation: http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	ErrCodeAccountDeactivated: http.StatusForbidden,
	ErrCodeBusinessSuspended:  http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Invoicing rules. A finalized invoice being immutable is a state
	// conflict; the finalization preconditions are semantic failures.
	ErrCodeNotDraft:           http.StatusConflict,
	ErrCodeMissingCustomer:    http.StatusUnprocessableEntity,
	ErrCodeCustomerNotFound:   http.StatusUnprocessableEntity,
	ErrCodeCustomerInactive:   http.StatusUnprocessableEntity,
	ErrCodeNoLineItems:        http.StatusUnprocessableEntity,
	ErrCodeInvalidInvoiceDate: http.StatusUnprocessableEntity,
	ErrCodeInvalidVATRate:     http.StatusUnprocessableEntity,
	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:       http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain-layer error codes to standardized codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,
	"NOT_DRAFT":            ErrCodeNotDraft,
	"MISSING_CUSTOMER":     ErrCodeMissingCustomer,
	"CUSTOMER_NOT_FOUND":   ErrCodeCustomerNotFound,
	"CUSTOMER_INACTIVE":    ErrCodeCustomerInactive,
	"NO_LINE_ITEMS":        ErrCodeNoLineItems,
	"INVALID_INVOICE_DATE": ErrCodeInvalidInvoiceDate,
	"INVALID_VAT_RATE":     ErrCodeInvalidVATRate,
	"INVALID_CREDENTIALS":  ErrCodeInvalidCredentials,
	"ACCOUNT_DEACTIVATED":  ErrCodeAccountDeactivated,
	"BUSINESS_SUSPENDED":   ErrCodeBusinessSuspended,
	"TOKEN_EXPIRED":        ErrCodeTokenExpired,
	"TOKEN_INVALID":        ErrCodeTokenInvalid,
	"TOKEN_REVOKED":        ErrCodeTokenRevoked,
	"TOKEN_MAX_REFRESH":    ErrCodeTokenInvalid,
	"TOKEN_ERROR":          ErrCodeUnauthorized,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
