package repository

import (
	"context"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) CreateSession(ctx context.Context, session *domain.ChatSession) error {
	session.CreatedAt = nowLocal()
	if session.Title == "" {
		session.Title = domain.DefaultChatTitle
	}
	return r.db.WithContext(ctx).Create(session).Error
}

// GetSession returns the session only when it belongs to userID.
func (r *ChatRepository) GetSession(ctx context.Context, id, userID int64) (*domain.ChatSession, error) {
	var session domain.ChatSession
	err := r.db.WithContext(ctx).First(&session, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ChatRepository) ListSessions(ctx context.Context, userID int64) ([]domain.ChatSession, error) {
	var sessions []domain.ChatSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *ChatRepository) DeleteSession(ctx context.Context, id, userID int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.ChatSession{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ChatRepository) UpdateTitle(ctx context.Context, id int64, title string) error {
	return r.db.WithContext(ctx).
		Model(&domain.ChatSession{}).
		Where("id = ?", id).
		Update("title", title).Error
}

func (r *ChatRepository) AddMessage(ctx context.Context, msg *domain.ChatMessage) error {
	msg.CreatedAt = nowLocal()
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListMessages returns the session's messages oldest first.
func (r *ChatRepository) ListMessages(ctx context.Context, sessionID int64) ([]domain.ChatMessage, error) {
	var messages []domain.ChatMessage
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&messages).Error
	return messages, err
}

// RecentMessages returns at most limit of the newest messages, oldest first.
func (r *ChatRepository) RecentMessages(ctx context.Context, sessionID int64, limit int) ([]domain.ChatMessage, error) {
	var messages []domain.ChatMessage
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// CountUserMessages returns how many user-role messages the session has.
func (r *ChatRepository) CountUserMessages(ctx context.Context, sessionID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ChatMessage{}).
		Where("session_id = ? AND role = ?", sessionID, domain.ChatRoleUser).
		Count(&count).Error
	return count, err
}
