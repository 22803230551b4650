package handler

import (
	"net/http"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"go.uber.org/zap"
)

// NotificationHandler serves the caller's notifications.
type NotificationHandler struct {
	notificationService *service.NotificationService
	logger              *zap.Logger
}

func NewNotificationHandler(notificationService *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, logger: logger}
}

// List godoc
// @Summary List my notifications
// @Description The most recent notifications, newest first
// @Tags Notifications
// @Produce json
// @Param unread_only query bool false "Only unread" default(false)
// @Success 200 {array} domain.Notification
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.notificationService.ListRecent(r.Context(), r.URL.Query().Get("unread_only") == "true")
	if err != nil {
		handleServiceError(w, h.logger, err, "list notifications")
		return
	}
	if items == nil {
		items = []domain.Notification{}
	}
	respondJSON(w, http.StatusOK, items)
}

// GetUnreadCount godoc
// @Summary Unread notification count
// @Tags Notifications
// @Produce json
// @Success 200 {object} domain.UnreadCount
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationService.UnreadCount(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "count unread notifications")
		return
	}
	respondJSON(w, http.StatusOK, domain.UnreadCount{Count: count})
}

// MarkAsRead godoc
// @Summary Mark a notification read
// @Tags Notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} domain.OKResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.notificationService.MarkAsRead(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err, "mark notification read")
		return
	}
	respondJSON(w, http.StatusOK, domain.OKResponse{OK: true})
}

// MarkAllAsRead godoc
// @Summary Mark all my notifications read
// @Tags Notifications
// @Produce json
// @Success 200 {object} domain.OKResponse
// @Security BearerAuth
// @Router /notifications/read-all [put]
func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notificationService.MarkAllAsRead(r.Context()); err != nil {
		handleServiceError(w, h.logger, err, "mark all notifications read")
		return
	}
	respondJSON(w, http.StatusOK, domain.OKResponse{OK: true})
}
