// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	DeleteCascade(ctx context.Context, id uint) error
	LikeOnce(ctx context.Context, authorID, commentID, postID uint) (bool, error)
	Unlike(ctx context.Context, authorID, commentID uint) error
	CountLikes(ctx context.Context, commentID uint) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := readDB(r.db).WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewStoreError(err)
	}
	return &comment, nil
}

// DeleteCascade removes a comment and its likes in one transaction.
func (r *commentRepository) DeleteCascade(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
	if err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

// LikeOnce records a comment like if none exists, atomically against the
// unique (author, comment) index, and reports whether a row was created.
func (r *commentRepository) LikeOnce(ctx context.Context, authorID, commentID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO comment_likes (author_id, comment_id, post_id, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (author_id, comment_id) DO NOTHING`,
		authorID, commentID, postID, time.Now(),
	)
	if result.Error != nil {
		return false, models.NewStoreError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *commentRepository) Unlike(ctx context.Context, authorID, commentID uint) error {
	if err := r.db.WithContext(ctx).
		Where("author_id = ? AND comment_id = ?", authorID, commentID).
		Delete(&models.CommentLike{}).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *commentRepository) CountLikes(ctx context.Context, commentID uint) (int64, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error; err != nil {
		return 0, models.NewStoreError(err)
	}
	return count, nil
}
