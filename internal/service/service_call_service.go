package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"go.uber.org/zap"
)

const (
	serviceCallNotificationTitle = "New Service Call Assigned"
	serviceCallNotificationLink  = "/service-calls"
	serviceCallSummaryLength     = 100
)

// ServiceCallService logs customer service calls and notifies assignees.
type ServiceCallService struct {
	callRepo      *repository.ServiceCallRepository
	notifications *NotificationService
	logger        *zap.Logger
}

// NewServiceCallService creates a new service call service instance
func NewServiceCallService(
	callRepo *repository.ServiceCallRepository,
	notifications *NotificationService,
	logger *zap.Logger,
) *ServiceCallService {
	return &ServiceCallService{
		callRepo:      callRepo,
		notifications: notifications,
		logger:        logger,
	}
}

// List returns service calls, optionally filtered by status.
func (s *ServiceCallService) List(ctx context.Context, status string) ([]domain.ServiceCallRow, error) {
	calls, err := s.callRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list service calls: %w", err)
	}
	return calls, nil
}

// Create opens a service call. When it is assigned, the assignee gets a
// notification; a failed notification does not fail the call.
func (s *ServiceCallService) Create(ctx context.Context, req *domain.CreateServiceCallRequest) (*domain.ServiceCall, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	call := &domain.ServiceCall{
		JobID:         positiveID(req.JobID),
		CallerName:    strings.TrimSpace(req.CallerName),
		CallerPhone:   strings.TrimSpace(req.CallerPhone),
		CallerEmail:   strings.TrimSpace(req.CallerEmail),
		Description:   description,
		Priority:      req.Priority,
		AssignedTo:    positiveID(req.AssignedTo),
		ScheduledDate: req.ScheduledDate,
	}
	if userID, err := currentUserID(ctx); err == nil {
		call.CreatedBy = &userID
	}

	if err := s.callRepo.Create(ctx, call); err != nil {
		return nil, fmt.Errorf("failed to create service call: %w", err)
	}

	s.logger.Info("service call created",
		zap.Int64("serviceCallID", call.ID),
		zap.String("priority", call.Priority),
	)

	if call.AssignedTo != nil {
		s.notifications.Notify(ctx, *call.AssignedTo, domain.NotificationTypeServiceCall,
			serviceCallNotificationTitle,
			"A new service call has been assigned to you: "+truncateRunes(description, serviceCallSummaryLength),
			serviceCallNotificationLink,
		)
	}
	return call, nil
}

// UpdateStatus moves a call to status, recording the resolution when given.
func (s *ServiceCallService) UpdateStatus(ctx context.Context, id int64, req *domain.UpdateServiceCallStatusRequest) (*domain.ServiceCall, error) {
	if err := s.callRepo.UpdateStatus(ctx, id, req.Status, strings.TrimSpace(req.Resolution)); err != nil {
		if isNotFound(err) {
			return nil, ErrServiceCallNotFound
		}
		return nil, fmt.Errorf("failed to update service call: %w", err)
	}
	call, err := s.callRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload service call: %w", err)
	}
	return call, nil
}

func positiveID(id *int64) *int64 {
	if id == nil || *id <= 0 {
		return nil
	}
	return id
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
