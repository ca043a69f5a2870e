// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// FriendRepository defines the interface for friend-relationship data operations
type FriendRepository interface {
	Create(ctx context.Context, friend *models.Friend) error
	ListForUser(ctx context.Context, userID uint) ([]models.Friend, error)
	ListForUserWithUsers(ctx context.Context, userID uint) ([]models.Friend, error)
	GetBetween(ctx context.Context, userID1, userID2 uint) (*models.Friend, error)
	GetPendingFrom(ctx context.Context, requesterID, targetID uint) (*models.Friend, error)
	UpdateStatus(ctx context.Context, friendID uint, status models.FriendStatus) error
	RemoveWithMessages(ctx context.Context, userID1, userID2 uint) error
}

type friendRepository struct {
	db      *gorm.DB
	log     *observability.RepoLogger
	metrics *observability.DatabaseMetrics
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{
		db:      db,
		log:     observability.NewRepoLogger("friends"),
		metrics: observability.NewDatabaseMetrics(db),
	}
}

func (r *friendRepository) Create(ctx context.Context, friend *models.Friend) error {
	if err := r.db.WithContext(ctx).Create(friend).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewStoreError(err)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"friend_id": friend.ID, "status": friend.Status})
	return nil
}

// ListForUser returns every relationship record involving the user,
// regardless of status or direction.
func (r *friendRepository) ListForUser(ctx context.Context, userID uint) ([]models.Friend, error) {
	defer r.metrics.TrackQuery("list", "friends")()

	var friends []models.Friend
	if err := readDB(r.db).WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("status ASC").
		Find(&friends).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return friends, nil
}

func (r *friendRepository) ListForUserWithUsers(ctx context.Context, userID uint) ([]models.Friend, error) {
	defer r.metrics.TrackQuery("list", "friends")()

	var friends []models.Friend
	if err := readDB(r.db).WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Preload("User1").
		Preload("User2").
		Order("status ASC").
		Find(&friends).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return friends, nil
}

// GetBetween finds the relationship record linking two users in either
// direction. Returns nil without error when none exists.
func (r *friendRepository) GetBetween(ctx context.Context, userID1, userID2 uint) (*models.Friend, error) {
	var friend models.Friend
	if err := readDB(r.db).WithContext(ctx).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
			userID1, userID2, userID2, userID1).
		First(&friend).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewStoreError(err)
	}
	return &friend, nil
}

// GetPendingFrom finds a PENDING request specifically from requester to
// target. Returns nil without error when none exists.
func (r *friendRepository) GetPendingFrom(ctx context.Context, requesterID, targetID uint) (*models.Friend, error) {
	var friend models.Friend
	if err := readDB(r.db).WithContext(ctx).
		Where("user1_id = ? AND user2_id = ? AND status = ?",
			requesterID, targetID, models.FriendStatusPending).
		First(&friend).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewStoreError(err)
	}
	return &friend, nil
}

func (r *friendRepository) UpdateStatus(ctx context.Context, friendID uint, status models.FriendStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Friend{}).
		Where("id = ?", friendID).
		Update("status", status).Error; err != nil {
		r.log.LogError(ctx, err, "update")
		return models.NewStoreError(err)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"friend_id": friendID, "status": status})
	return nil
}

// RemoveWithMessages deletes the relationship record between two users and
// all messages exchanged between them, as one transaction. Partial failure
// rolls back both, so messages are never orphaned from a vanished link.
func (r *friendRepository) RemoveWithMessages(ctx context.Context, userID1, userID2 uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
				userID1, userID2, userID2, userID1).
			Delete(&models.Friend{}).Error; err != nil {
			return err
		}
		return tx.
			Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
				userID1, userID2, userID2, userID1).
			Delete(&models.Message{}).Error
	})
	if err != nil {
		r.log.LogError(ctx, err, "delete")
		return models.NewStoreError(err)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"user1_id": userID1, "user2_id": userID2})
	return nil
}
