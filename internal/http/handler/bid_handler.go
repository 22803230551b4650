package handler

import (
	"net/http"

	"github.com/jwilson7981/job-tracker-sub000/internal/auth"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"go.uber.org/zap"
)

// BidHandler serves saved bids and the stateless bid calculator.
type BidHandler struct {
	bids   *service.BidService
	logger *zap.Logger
}

func NewBidHandler(bids *service.BidService, logger *zap.Logger) *BidHandler {
	return &BidHandler{bids: bids, logger: logger}
}

// List godoc
// @Summary List bids
// @Tags Bids
// @Produce json
// @Param status query string false "Bid status"
// @Success 200 {array} domain.Bid
// @Security BearerAuth
// @Router /bids [get]
func (h *BidHandler) List(w http.ResponseWriter, r *http.Request) {
	bids, err := h.bids.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		handleServiceError(w, h.logger, err, "list bids")
		return
	}
	if bids == nil {
		bids = []domain.Bid{}
	}
	respondJSON(w, http.StatusOK, bids)
}

// Get godoc
// @Summary Get a bid
// @Tags Bids
// @Produce json
// @Param id path int true "Bid ID"
// @Success 200 {object} domain.Bid
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /bids/{id} [get]
func (h *BidHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	bid, err := h.bids.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get bid")
		return
	}
	respondJSON(w, http.StatusOK, bid)
}

// Create godoc
// @Summary Create a bid
// @Description Totals are computed from the inputs; client totals are ignored
// @Tags Bids
// @Accept json
// @Produce json
// @Param request body domain.BidRequest true "Bid"
// @Success 201 {object} domain.Bid
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /bids [post]
func (h *BidHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.BidRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var createdBy *int64
	if user, ok := auth.FromContext(r.Context()); ok {
		createdBy = &user.UserID
	}
	bid, err := h.bids.Create(r.Context(), &req, createdBy)
	if err != nil {
		handleServiceError(w, h.logger, err, "create bid")
		return
	}
	respondJSON(w, http.StatusCreated, bid)
}

// Update godoc
// @Summary Update a bid
// @Tags Bids
// @Accept json
// @Produce json
// @Param id path int true "Bid ID"
// @Param request body domain.BidRequest true "Bid"
// @Success 200 {object} domain.Bid
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /bids/{id} [put]
func (h *BidHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req domain.BidRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	bid, err := h.bids.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "update bid")
		return
	}
	respondJSON(w, http.StatusOK, bid)
}

// Delete godoc
// @Summary Delete a bid
// @Tags Bids
// @Produce json
// @Param id path int true "Bid ID"
// @Success 200 {object} domain.OKResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /bids/{id} [delete]
func (h *BidHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.bids.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err, "delete bid")
		return
	}
	respondJSON(w, http.StatusOK, domain.OKResponse{OK: true})
}

// Calculate godoc
// @Summary Run the bid calculator
// @Description Missing inputs take their defaults; nothing is saved
// @Tags Bids
// @Accept json
// @Produce json
// @Param request body domain.BidInputs true "Calculator inputs"
// @Success 200 {object} domain.BidCalculation
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /bids/calculate [post]
func (h *BidHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var in domain.BidInputs
	if !decodeJSON(w, r, &in) {
		return
	}
	respondJSON(w, http.StatusOK, h.bids.Calculate(in))
}
