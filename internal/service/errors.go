package service

import (
	"errors"

	"gorm.io/gorm"
)

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller's role does not allow the action
	ErrForbidden = errors.New("forbidden")

	// ErrExternalService is returned when an LLM, supplier API or storage call fails
	ErrExternalService = errors.New("external service failure")
)

// Aggregate-specific errors
var (
	ErrJobNotFound          = errors.New("job not found")
	ErrVersionNotFound      = errors.New("version not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrChatSessionNotFound  = errors.New("chat session not found")
	ErrSupplierNotFound     = errors.New("supplier config not found")
	ErrInvoiceNotFound      = errors.New("supplier invoice not found")
	ErrBidNotFound          = errors.New("bid not found")
	ErrServiceCallNotFound  = errors.New("service call not found")
	ErrUserNotFound         = errors.New("user not found")

	// ErrInvalidColumn is returned for ledger columns outside 1..15
	ErrInvalidColumn = errors.New("column_number must be between 1 and 15")

	// ErrNegativeQuantity is returned for ledger quantities below zero
	ErrNegativeQuantity = errors.New("quantity must not be negative")

	// ErrInvalidLedger is returned for an unknown ledger kind
	ErrInvalidLedger = errors.New("invalid entry type")

	ErrNotPDF       = errors.New("file must be a PDF")
	ErrNoQuoteLines = errors.New("no line items found in PDF")
	ErrCSVParse     = errors.New("could not parse CSV")
	ErrNoImportFile = errors.New("a CSV or PDF file is required")

	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyMessage       = errors.New("Empty message")
)

// isNotFound reports whether err means the row does not exist.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
