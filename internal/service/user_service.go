package service

import (
	"context"
	"strings"

	"ripple/internal/cache"
	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/revalidate"
	"ripple/internal/validation"
)

// UserService resolves identities to local users and manages user listings
// and profiles.
type UserService struct {
	userRepo    repository.UserRepository
	friendRepo  repository.FriendRepository
	broadcaster *revalidate.Broadcaster
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, friendRepo repository.FriendRepository, broadcaster *revalidate.Broadcaster) *UserService {
	return &UserService{
		userRepo:    userRepo,
		friendRepo:  friendRepo,
		broadcaster: broadcaster,
	}
}

func (s *UserService) stale(ctx context.Context, views ...revalidate.View) {
	if s.broadcaster != nil {
		s.broadcaster.Stale(ctx, views...)
	}
}

// EnsureUser resolves a verified identity to a local user record, creating
// one on first sign-in. Name, email, and picture track the identity
// provider; later sign-ins refresh them when they drift.
func (s *UserService) EnsureUser(ctx context.Context, identity *middleware.Identity) (*models.User, error) {
	if identity == nil || identity.Subject == "" {
		return nil, models.NewUnauthenticatedError("missing identity")
	}

	user, err := s.userRepo.GetBySubject(ctx, identity.Subject)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &models.User{
			Subject:        identity.Subject,
			Name:           identity.Name,
			Email:          identity.Email,
			ProfilePicture: identity.Picture,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		s.stale(ctx, revalidate.ViewFriends)
		return user, nil
	}

	if user.Name != identity.Name || user.Email != identity.Email || user.ProfilePicture != identity.Picture {
		user.Name = identity.Name
		user.Email = identity.Email
		user.ProfilePicture = identity.Picture
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		cache.InvalidateUser(ctx, user.ID)
	}
	return user, nil
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// relationshipIndex maps counterpart IDs to the relationship status the
// viewer has with them.
func (s *UserService) relationshipIndex(ctx context.Context, viewerID uint) (map[uint]models.FriendStatus, error) {
	friends, err := s.friendRepo.ListForUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	index := make(map[uint]models.FriendStatus, len(friends))
	for i := range friends {
		index[friends[i].CounterpartID(viewerID)] = friends[i].Status
	}
	return index, nil
}

// ListOthers returns every user except the viewer, each annotated with the
// viewer's relationship status toward them (empty when unconnected).
func (s *UserService) ListOthers(ctx context.Context, viewerID uint) ([]models.UserSummary, error) {
	users, err := s.userRepo.ListExcluding(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	index, err := s.relationshipIndex(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, models.UserSummary{
			User:               users[i],
			RelationshipStatus: index[users[i].ID],
		})
	}
	return summaries, nil
}

// Search returns users whose name matches the query, case-insensitively,
// excluding the viewer and annotated like ListOthers.
func (s *UserService) Search(ctx context.Context, viewerID uint, query string) ([]models.UserSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.UserSummary{}, nil
	}

	users, err := s.userRepo.Search(ctx, query, viewerID)
	if err != nil {
		return nil, err
	}
	index, err := s.relationshipIndex(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, models.UserSummary{
			User:               users[i],
			RelationshipStatus: index[users[i].ID],
		})
	}
	return summaries, nil
}

// GetProfile returns the user's extended profile.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.userRepo.GetProfile(ctx, userID)
}

// UpsertProfile creates or replaces the user's extended profile fields.
func (s *UserService) UpsertProfile(ctx context.Context, userID uint, profile *models.Profile) (*models.Profile, error) {
	if err := validation.Bio(profile.Bio); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	profile.UserID = userID
	if err := s.userRepo.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.stale(ctx, revalidate.ViewProfile(userID))
	return profile, nil
}
