package handler

import (
	"net/http"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"go.uber.org/zap"
)

type ServiceCallHandler struct {
	calls  *service.ServiceCallService
	logger *zap.Logger
}

func NewServiceCallHandler(calls *service.ServiceCallService, logger *zap.Logger) *ServiceCallHandler {
	return &ServiceCallHandler{calls: calls, logger: logger}
}

// List godoc
// @Summary List service calls
// @Tags Service Calls
// @Produce json
// @Param status query string false "Status" Enums(Open, Assigned, In Progress, Resolved, Closed)
// @Success 200 {array} domain.ServiceCallRow
// @Security BearerAuth
// @Router /service-calls [get]
func (h *ServiceCallHandler) List(w http.ResponseWriter, r *http.Request) {
	calls, err := h.calls.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		handleServiceError(w, h.logger, err, "list service calls")
		return
	}
	if calls == nil {
		calls = []domain.ServiceCallRow{}
	}
	respondJSON(w, http.StatusOK, calls)
}

// Create godoc
// @Summary Open a service call
// @Description The assignee, if any, is notified
// @Tags Service Calls
// @Accept json
// @Produce json
// @Param request body domain.CreateServiceCallRequest true "Service call"
// @Success 201 {object} domain.ServiceCall
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /service-calls [post]
func (h *ServiceCallHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateServiceCallRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	call, err := h.calls.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "create service call")
		return
	}
	respondJSON(w, http.StatusCreated, call)
}

// UpdateStatus godoc
// @Summary Change a service call's status
// @Tags Service Calls
// @Accept json
// @Produce json
// @Param id path int true "Service call ID"
// @Param request body domain.UpdateServiceCallStatusRequest true "Status"
// @Success 200 {object} domain.ServiceCall
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /service-calls/{id}/status [put]
func (h *ServiceCallHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req domain.UpdateServiceCallStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	call, err := h.calls.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "update service call")
		return
	}
	respondJSON(w, http.StatusOK, call)
}
