package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/revalidate"
	"ripple/internal/validation"
)

// PostService handles post and comment mutations plus like toggles.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	broadcaster *revalidate.Broadcaster
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, broadcaster *revalidate.Broadcaster) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		broadcaster: broadcaster,
	}
}

func (s *PostService) stale(ctx context.Context, views ...revalidate.View) {
	if s.broadcaster != nil {
		s.broadcaster.Stale(ctx, views...)
	}
}

// CreatePost creates a post authored by the given user.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, content, imageURL string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if err := validation.PostContent(content, imageURL != ""); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		AuthorID: authorID,
		Content:  content,
		ImageURL: imageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.stale(ctx, revalidate.ViewTimeline, revalidate.ViewProfile(authorID))
	return post, nil
}

// DeletePost removes a post and all its dependents. Only the author may
// delete; anyone else gets a not-found, which also avoids leaking whether
// the post exists.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return models.NewNotFoundError("post", postID)
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	s.stale(ctx, revalidate.ViewTimeline, revalidate.ViewProfile(userID))
	return nil
}

// CreateComment attaches a comment to an existing post.
func (s *PostService) CreateComment(ctx context.Context, authorID, postID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if err := validation.CommentContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.stale(ctx, revalidate.ViewTimeline)
	return comment, nil
}

// DeleteComment removes a comment and its likes in one transaction. Only
// the comment's author may delete it.
func (s *PostService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		return models.NewNotFoundError("comment", commentID)
	}

	if err := s.commentRepo.DeleteCascade(ctx, commentID); err != nil {
		return err
	}

	s.stale(ctx, revalidate.ViewTimeline)
	return nil
}

// TogglePostLike flips the user's like on a post and reports the resulting
// state. The insert is conditional at the database level, so two concurrent
// toggles cannot produce a duplicate like.
func (s *PostService) TogglePostLike(ctx context.Context, userID, postID uint) (liked bool, err error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, err
	}

	created, err := s.postRepo.LikeOnce(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if !created {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return false, err
		}
	}

	s.stale(ctx, revalidate.ViewTimeline)
	return created, nil
}

// ToggleCommentLike flips the user's like on a comment and reports the
// resulting state.
func (s *PostService) ToggleCommentLike(ctx context.Context, userID, commentID uint) (liked bool, err error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return false, err
	}

	created, err := s.commentRepo.LikeOnce(ctx, userID, comment.ID, comment.PostID)
	if err != nil {
		return false, err
	}
	if !created {
		if err := s.commentRepo.Unlike(ctx, userID, commentID); err != nil {
			return false, err
		}
	}

	s.stale(ctx, revalidate.ViewTimeline)
	return created, nil
}
