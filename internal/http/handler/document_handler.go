package handler

import (
	"net/http"
	"strings"

	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"go.uber.org/zap"
)

// DocumentHandler answers duplicate checks for uploads before they are
// stored.
type DocumentHandler struct {
	duplicates  *service.DuplicateService
	maxUploadMB int64
	logger      *zap.Logger
}

func NewDocumentHandler(duplicates *service.DuplicateService, maxUploadMB int64, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{duplicates: duplicates, maxUploadMB: maxUploadMB, logger: logger}
}

// CheckDuplicate godoc
// @Summary Check an upload for duplicates
// @Description Exact matches use the file hash; PDFs of a known doc type may also get a metadata match
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Upload"
// @Param doc_type formData string false "Document type" Enums(closeout, contract, license, plan, submittal, supplier_quote)
// @Success 200 {object} domain.DuplicateResult
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /documents/check-duplicate [post]
func (h *DocumentHandler) CheckDuplicate(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r, h.maxUploadMB) {
		return
	}
	data, filename, err := readUpload(r, "file")
	if err != nil || data == nil {
		respondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	result, err := h.duplicates.Check(r.Context(), data, strings.TrimSpace(r.FormValue("doc_type")), filename)
	if err != nil {
		handleServiceError(w, h.logger, err, "check duplicate")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
