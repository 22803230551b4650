package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"go.uber.org/zap"
)

// SupplierHandler serves supplier configs, supplier invoice import and the
// invoice list.
type SupplierHandler struct {
	suppliers   *service.SupplierService
	imports     *service.InvoiceImportService
	maxUploadMB int64
	logger      *zap.Logger
}

func NewSupplierHandler(
	suppliers *service.SupplierService,
	imports *service.InvoiceImportService,
	maxUploadMB int64,
	logger *zap.Logger,
) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers, imports: imports, maxUploadMB: maxUploadMB, logger: logger}
}

// ListConfigs godoc
// @Summary List supplier configs
// @Tags Suppliers
// @Produce json
// @Success 200 {array} domain.SupplierConfig
// @Security BearerAuth
// @Router /suppliers [get]
func (h *SupplierHandler) ListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.suppliers.ListConfigs(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "list suppliers")
		return
	}
	respondJSON(w, http.StatusOK, configs)
}

// TestConnection godoc
// @Summary Test a supplier API connection
// @Tags Suppliers
// @Produce json
// @Param id path int true "Supplier config ID"
// @Success 200 {object} domain.ConnectionTestResult
// @Security BearerAuth
// @Router /suppliers/{id}/test [post]
func (h *SupplierHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	result, err := h.suppliers.TestConnection(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "test supplier connection")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Sync godoc
// @Summary Pull invoices from a supplier API
// @Tags Suppliers
// @Produce json
// @Param id path int true "Supplier config ID"
// @Success 200 {object} domain.SyncStats
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /suppliers/{id}/sync [post]
func (h *SupplierHandler) Sync(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	stats, err := h.suppliers.Sync(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "sync supplier")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// Import godoc
// @Summary Import supplier invoices
// @Description Accepts a CSV export, a PDF of the invoices, or both. Invoices are upserted, linked to jobs and reviewed.
// @Tags Supplier Invoices
// @Accept multipart/form-data
// @Produce json
// @Param supplier_config_id formData int true "Supplier config ID"
// @Param csv formData file false "CSV export"
// @Param pdf formData file false "Invoice PDF"
// @Success 200 {object} domain.ImportResult
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /supplier-invoices/import [post]
func (h *SupplierHandler) Import(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r, h.maxUploadMB) {
		return
	}
	supplierID, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("supplier_config_id")), 10, 64)
	if err != nil || supplierID <= 0 {
		respondError(w, http.StatusBadRequest, "supplier_config_id is required")
		return
	}

	files := service.ImportFiles{SupplierConfigID: supplierID}
	if files.CSV, files.CSVName, err = readUpload(r, "csv"); err != nil {
		respondError(w, http.StatusBadRequest, "Could not read CSV upload")
		return
	}
	if files.PDF, files.PDFName, err = readUpload(r, "pdf"); err != nil {
		respondError(w, http.StatusBadRequest, "Could not read PDF upload")
		return
	}

	result, err := h.imports.Import(r.Context(), files)
	if err != nil {
		handleServiceError(w, h.logger, err, "import supplier invoices")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ListInvoices godoc
// @Summary List supplier invoices
// @Tags Supplier Invoices
// @Produce json
// @Param supplier_config_id query int false "Supplier config"
// @Param job_id query int false "Linked job"
// @Param status query string false "Status"
// @Param search query string false "Invoice, PO or ship-to text"
// @Param date_from query string false "Invoice date from (YYYY-MM-DD)"
// @Param date_to query string false "Invoice date to (YYYY-MM-DD)"
// @Param unlinked query bool false "Only invoices without a job"
// @Success 200 {array} domain.SupplierInvoice
// @Security BearerAuth
// @Router /supplier-invoices [get]
func (h *SupplierHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := &repository.SupplierInvoiceFilters{
		SupplierConfigID: queryID(r, "supplier_config_id"),
		JobID:            queryID(r, "job_id"),
		Status:           q.Get("status"),
		Search:           strings.TrimSpace(q.Get("search")),
		DateFrom:         q.Get("date_from"),
		DateTo:           q.Get("date_to"),
		Unlinked:         q.Get("unlinked") == "true",
	}
	invoices, err := h.imports.ListInvoices(r.Context(), filters)
	if err != nil {
		handleServiceError(w, h.logger, err, "list supplier invoices")
		return
	}
	respondJSON(w, http.StatusOK, invoices)
}

// LinkJob godoc
// @Summary Link an invoice to a job by hand
// @Description A null job_id clears the link. Manual links survive later imports.
// @Tags Supplier Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param request body domain.LinkInvoiceRequest true "Job"
// @Success 200 {object} domain.SupplierInvoice
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /supplier-invoices/{id}/job [put]
func (h *SupplierHandler) LinkJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req domain.LinkInvoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	invoice, err := h.imports.LinkJob(r.Context(), id, req.JobID)
	if err != nil {
		handleServiceError(w, h.logger, err, "link supplier invoice")
		return
	}
	respondJSON(w, http.StatusOK, invoice)
}
