// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct-message data operations
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	ListBetween(ctx context.Context, userID1, userID2 uint) ([]models.Message, error)
	MarkRead(ctx context.Context, receiverID, senderID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
	UpdateContent(ctx context.Context, id uint, content string) error
	CountUnread(ctx context.Context, receiverID uint) (int64, error)
}

type messageRepository struct {
	db      *gorm.DB
	log     *observability.RepoLogger
	metrics *observability.DatabaseMetrics
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{
		db:      db,
		log:     observability.NewRepoLogger("messages"),
		metrics: observability.NewDatabaseMetrics(db),
	}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewStoreError(err)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"message_id": message.ID, "receiver_id": message.ReceiverID})
	cache.InvalidateUnreadCount(ctx, message.ReceiverID)
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := readDB(r.db).WithContext(ctx).First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewStoreError(err)
	}
	return &message, nil
}

// ListBetween returns the conversation between two users in either direction,
// oldest first.
func (r *messageRepository) ListBetween(ctx context.Context, userID1, userID2 uint) ([]models.Message, error) {
	defer r.metrics.TrackQuery("list", "messages")()

	var messages []models.Message
	if err := readDB(r.db).WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID1, userID2, userID2, userID1).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return messages, nil
}

// MarkRead flips every unread message from senderID to receiverID and
// returns the number of rows affected.
func (r *messageRepository) MarkRead(ctx context.Context, receiverID, senderID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND read = ?", receiverID, senderID, false).
		Update("read", true)
	if result.Error != nil {
		return 0, models.NewStoreError(result.Error)
	}
	cache.InvalidateUnreadCount(ctx, receiverID)
	return result.RowsAffected, nil
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Message{}, id).Error; err != nil {
		r.log.LogError(ctx, err, "delete")
		return models.NewStoreError(err)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"message_id": id})
	return nil
}

// UpdateContent replaces the message body and forces the read flag on, so an
// edited message never resurfaces as unread.
func (r *messageRepository) UpdateContent(ctx context.Context, id uint, content string) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"content": content, "read": true}).Error; err != nil {
		r.log.LogError(ctx, err, "update")
		return models.NewStoreError(err)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"message_id": id})
	return nil
}

func (r *messageRepository) CountUnread(ctx context.Context, receiverID uint) (int64, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_id = ? AND read = ?", receiverID, false).
		Count(&count).Error; err != nil {
		return 0, models.NewStoreError(err)
	}
	return count, nil
}
