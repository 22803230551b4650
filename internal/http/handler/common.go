package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"go.uber.org/zap"
)

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.ErrorResponse{Error: message})
}

// respondValidationError lists each failing field under its JSON name.
func respondValidationError(w http.ResponseWriter, err error) {
	fields := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = formatValidationError(fe)
		}
	}
	respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
		Error:   "Validation failed",
		Message: "One or more fields failed validation",
		Fields:  fields,
	})
}

func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// decodeJSON reads and validates a request body. It writes the 400 itself
// and reports false when the body is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return true
		}
		respondValidationError(w, err)
		return false
	}
	return true
}

// pathID parses a positive integer URL parameter, writing a 400 otherwise.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func queryID(r *http.Request, name string) *int64 {
	id, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// readUpload reads one multipart file field; a missing field returns nil
// data and an empty name.
func readUpload(r *http.Request, field string) ([]byte, string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		return nil, "", err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

// parseMultipart bounds the body to maxMB and parses it, writing a 413 or
// 400 on failure.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxMB int64) bool {
	limit := maxMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large: maximum size is %dMB", maxMB))
			return false
		}
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return false
	}
	return true
}

type errorMapping struct {
	target  error
	status  int
	message string
}

// errorMappings is checked in order; an empty message uses the error text.
var errorMappings = []errorMapping{
	{service.ErrUserContextRequired, http.StatusUnauthorized, "Not authenticated"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
	{service.ErrUnauthorized, http.StatusUnauthorized, "Not authenticated"},
	{service.ErrForbidden, http.StatusForbidden, "Forbidden"},

	{service.ErrJobNotFound, http.StatusNotFound, "Job not found"},
	{service.ErrVersionNotFound, http.StatusNotFound, "Version not found"},
	{service.ErrNotificationNotFound, http.StatusNotFound, "Notification not found"},
	{service.ErrChatSessionNotFound, http.StatusNotFound, "Session not found"},
	{service.ErrSupplierNotFound, http.StatusNotFound, "Supplier config not found"},
	{service.ErrInvoiceNotFound, http.StatusNotFound, "Invoice not found"},
	{service.ErrBidNotFound, http.StatusNotFound, "Bid not found"},
	{service.ErrServiceCallNotFound, http.StatusNotFound, "Service call not found"},
	{service.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{service.ErrNotFound, http.StatusNotFound, "Not found"},

	{service.ErrUsernameTaken, http.StatusBadRequest, "Username already exists"},
	{service.ErrInvalidColumn, http.StatusBadRequest, ""},
	{service.ErrNegativeQuantity, http.StatusBadRequest, ""},
	{service.ErrInvalidLedger, http.StatusBadRequest, "Invalid entry type"},
	{service.ErrNotPDF, http.StatusBadRequest, "File must be a PDF"},
	{service.ErrNoQuoteLines, http.StatusBadRequest, "No line items found in PDF"},
	{service.ErrCSVParse, http.StatusBadRequest, ""},
	{service.ErrNoImportFile, http.StatusBadRequest, "A CSV or PDF file is required"},
	{service.ErrEmptyMessage, http.StatusBadRequest, "Empty message"},
	{service.ErrInvalidInput, http.StatusBadRequest, ""},
	{service.ErrConflict, http.StatusBadRequest, ""},
}

// invalidInputPrefix is stripped so clients see only the detail.
var invalidInputPrefix = service.ErrInvalidInput.Error() + ": "

// handleServiceError maps a service error onto its status and body. Errors
// it does not recognize are logged and reported as 500.
func handleServiceError(w http.ResponseWriter, logger *zap.Logger, err error, action string) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		msg := m.message
		if msg == "" {
			msg = strings.TrimPrefix(err.Error(), invalidInputPrefix)
		}
		respondError(w, m.status, msg)
		return
	}

	if errors.Is(err, service.ErrExternalService) {
		logger.Warn("external service failed", zap.String("action", action), zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "External service failure",
			Message: err.Error(),
		})
		return
	}

	logger.Error("request failed", zap.String("action", action), zap.Error(err))
	respondError(w, http.StatusInternalServerError, "Internal server error")
}
