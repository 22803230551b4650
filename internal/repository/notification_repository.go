package repository

import (
	"context"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	if notification.CreatedAt == "" {
		notification.CreatedAt = nowLocal()
	}
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListByUser returns the newest notifications for a user, at most limit.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, limit int, unreadOnly bool) ([]domain.Notification, error) {
	var notifications []domain.Notification

	query := r.db.WithContext(ctx).Model(&domain.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Order("created_at DESC, id DESC").Find(&notifications).Error
	return notifications, err
}

// MarkAsRead marks one notification read. Notifications owned by another
// user are reported as not found.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id, userID int64) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// ExistsSince reports whether a notification with the same user, type and
// title was already created on or after since.
func (r *NotificationRepository) ExistsSince(ctx context.Context, userID int64, notificationType, title, since string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_id = ? AND type = ? AND title = ? AND created_at >= ?", userID, notificationType, title, since).
		Count(&count).Error
	return count > 0, err
}
