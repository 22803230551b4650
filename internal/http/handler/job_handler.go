package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"go.uber.org/zap"
)

// JobHandler serves jobs, their material ledgers and the version log.
type JobHandler struct {
	jobs        *service.JobService
	ledger      *service.LedgerService
	maxUploadMB int64
	logger      *zap.Logger
}

func NewJobHandler(jobs *service.JobService, ledger *service.LedgerService, maxUploadMB int64, logger *zap.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, ledger: ledger, maxUploadMB: maxUploadMB, logger: logger}
}

// List godoc
// @Summary List jobs
// @Tags Jobs
// @Produce json
// @Param status query string false "Stage filter" Enums(Needs Bid, Bid Complete, In Progress, Complete)
// @Success 200 {array} domain.Job
// @Security BearerAuth
// @Router /jobs [get]
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		handleServiceError(w, h.logger, err, "list jobs")
		return
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	respondJSON(w, http.StatusOK, jobs)
}

// Create godoc
// @Summary Create a job
// @Description New jobs start in Needs Bid; without a tax rate the zip code lookup fills it in
// @Tags Jobs
// @Accept json
// @Produce json
// @Param request body domain.CreateJobRequest true "Job"
// @Success 201 {object} domain.Job
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /jobs [post]
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateJobRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	job, err := h.jobs.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "create job")
		return
	}
	respondJSON(w, http.StatusCreated, job)
}

// Get godoc
// @Summary Job with its ledgers
// @Tags Jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} domain.JobView
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	view, err := h.ledger.GetJobView(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get job")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Update godoc
// @Summary Update job fields
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param request body domain.UpdateJobRequest true "Fields to change"
// @Success 200 {object} domain.Job
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /jobs/{id} [put]
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req domain.UpdateJobRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	job, err := h.jobs.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "update job")
		return
	}
	respondJSON(w, http.StatusOK, job)
}

// Delete godoc
// @Summary Delete a job
// @Tags Jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} domain.OKResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /jobs/{id} [delete]
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.jobs.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err, "delete job")
		return
	}
	respondJSON(w, http.StatusOK, domain.OKResponse{OK: true})
}

// ReplaceLineItems godoc
// @Summary Replace the master line item list
// @Description Rows with an id are updated, rows without are inserted, missing rows are deleted with their ledger cells
// @Tags Ledger
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param request body domain.ReplaceLineItemsRequest true "Line items"
// @Success 200 {object} domain.JobView
// @Security BearerAuth
// @Router /jobs/{id}/line-items [put]
func (h *JobHandler) ReplaceLineItems(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req domain.ReplaceLineItemsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	view, err := h.ledger.ReplaceLineItems(r.Context(), id, req.LineItems)
	if err != nil {
		handleServiceError(w, h.logger, err, "replace line items")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// SaveEntries godoc
// @Summary Write ledger cells
// @Description A zero quantity clears the cell
// @Tags Ledger
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param kind path string true "Ledger" Enums(received, shipped, invoiced)
// @Param request body domain.SaveEntriesRequest true "Cells"
// @Success 200 {object} domain.JobView
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /jobs/{id}/entries/{kind} [put]
func (h *JobHandler) SaveEntries(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req domain.SaveEntriesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	view, err := h.ledger.SaveEntries(r.Context(), id, chi.URLParam(r, "kind"), req.Entries)
	if err != nil {
		handleServiceError(w, h.logger, err, "save entries")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// ListVersions godoc
// @Summary Version log of a job
// @Tags Versions
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {array} domain.VersionSummary
// @Security BearerAuth
// @Router /jobs/{id}/versions [get]
func (h *JobHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	versions, err := h.ledger.ListVersions(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "list versions")
		return
	}
	respondJSON(w, http.StatusOK, versions)
}

// GetVersion godoc
// @Summary One version with its snapshot
// @Tags Versions
// @Produce json
// @Param id path int true "Job ID"
// @Param vid path int true "Version ID"
// @Success 200 {object} domain.VersionDetail
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /jobs/{id}/versions/{vid} [get]
func (h *JobHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	vid, ok := pathID(w, r, "vid")
	if !ok {
		return
	}
	version, err := h.ledger.GetVersion(r.Context(), id, vid)
	if err != nil {
		handleServiceError(w, h.logger, err, "get version")
		return
	}
	respondJSON(w, http.StatusOK, version)
}

// Revert godoc
// @Summary Restore a job to a version
// @Description The current state is saved as a new version first
// @Tags Versions
// @Produce json
// @Param id path int true "Job ID"
// @Param vid path int true "Version ID"
// @Success 200 {object} domain.JobView
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /jobs/{id}/versions/{vid}/revert [post]
func (h *JobHandler) Revert(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	vid, ok := pathID(w, r, "vid")
	if !ok {
		return
	}
	view, err := h.ledger.Revert(r.Context(), id, vid)
	if err != nil {
		handleServiceError(w, h.logger, err, "revert job")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// ImportQuote godoc
// @Summary Parse a supplier quote PDF
// @Description Returns the parsed lines for review; nothing is written
// @Tags Ledger
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Job ID"
// @Param file formData file true "Quote PDF"
// @Success 200 {object} domain.QuoteImportResponse
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /jobs/{id}/import-quote [post]
func (h *JobHandler) ImportQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if !parseMultipart(w, r, h.maxUploadMB) {
		return
	}
	data, filename, err := readUpload(r, "file")
	if err != nil || data == nil {
		respondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	resp, err := h.ledger.ImportQuotePDF(r.Context(), id, filename, data)
	if err != nil {
		handleServiceError(w, h.logger, err, "import quote")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Analytics godoc
// @Summary Stage analytics
// @Tags Jobs
// @Produce json
// @Success 200 {object} domain.Analytics
// @Security BearerAuth
// @Router /analytics [get]
func (h *JobHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.jobs.Analytics(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "analytics")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// TaxLookup godoc
// @Summary Sales tax for a zip code
// @Tags Jobs
// @Produce json
// @Param zip path string true "Zip code"
// @Success 200 {object} domain.TaxInfo
// @Security BearerAuth
// @Router /tax-lookup/{zip} [get]
func (h *JobHandler) TaxLookup(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.jobs.TaxLookup(strings.TrimSpace(chi.URLParam(r, "zip"))))
}
