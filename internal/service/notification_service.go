package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwilson7981/job-tracker-sub000/internal/auth"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"go.uber.org/zap"
)

// RecentNotificationLimit caps the notification list.
const RecentNotificationLimit = 50

// ErrUserContextRequired is returned when user context is not available
var ErrUserContextRequired = errors.New("user context required")

// NotificationService is the append-only per-user notification log.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	userRepo         *repository.UserRepository
	logger           *zap.Logger
}

// NewNotificationService creates a new NotificationService instance
func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// Create appends a notification for userID.
func (s *NotificationService) Create(
	ctx context.Context,
	userID int64,
	notificationType domain.NotificationType,
	title, message, link string,
) (*domain.Notification, error) {
	notification := &domain.Notification{
		UserID:  userID,
		Type:    string(notificationType),
		Title:   title,
		Message: message,
		Link:    link,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.logger.Info("notification created",
		zap.Int64("notificationID", notification.ID),
		zap.Int64("userID", userID),
		zap.String("type", string(notificationType)),
	)
	return notification, nil
}

// Notify is Create for callers whose own operation must not fail when the
// notification cannot be written. Errors are logged and dropped.
func (s *NotificationService) Notify(
	ctx context.Context,
	userID int64,
	notificationType domain.NotificationType,
	title, message, link string,
) {
	if _, err := s.Create(ctx, userID, notificationType, title, message, link); err != nil {
		s.logger.Warn("failed to create notification",
			zap.Int64("userID", userID),
			zap.String("type", string(notificationType)),
			zap.Error(err),
		)
	}
}

// NotifyRoles notifies every active user holding one of roles and returns
// how many notifications were written.
func (s *NotificationService) NotifyRoles(
	ctx context.Context,
	roles []domain.Role,
	notificationType domain.NotificationType,
	title, message, link string,
) (int, error) {
	users, err := s.userRepo.ListActiveByRole(ctx, roles...)
	if err != nil {
		return 0, fmt.Errorf("failed to list recipients: %w", err)
	}

	var sent, failedCount int
	for _, u := range users {
		if _, err := s.Create(ctx, u.ID, notificationType, title, message, link); err != nil {
			s.logger.Warn("failed to create notification for user",
				zap.Int64("userID", u.ID),
				zap.Error(err),
			)
			failedCount++
			continue
		}
		sent++
	}

	if failedCount > 0 {
		s.logger.Warn("batch notification creation completed with failures",
			zap.Int("total", len(users)),
			zap.Int("failed", failedCount),
		)
	}
	return sent, nil
}

func currentUserID(ctx context.Context) (int64, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return 0, ErrUserContextRequired
	}
	return userCtx.UserID, nil
}

// ListRecent returns the caller's newest notifications.
func (s *NotificationService) ListRecent(ctx context.Context, unreadOnly bool) ([]domain.Notification, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	notifications, err := s.notificationRepo.ListByUser(ctx, userID, RecentNotificationLimit, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount returns how many of the caller's notifications are unread.
func (s *NotificationService) UnreadCount(ctx context.Context) (int64, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return 0, err
	}
	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkAsRead marks one of the caller's notifications read. Another user's
// notification is reported as not found.
func (s *NotificationService) MarkAsRead(ctx context.Context, id int64) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	if err := s.notificationRepo.MarkAsRead(ctx, id, userID); err != nil {
		if isNotFound(err) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

// MarkAllAsRead marks every caller notification read.
func (s *NotificationService) MarkAllAsRead(ctx context.Context) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	if err := s.notificationRepo.MarkAllAsRead(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}
