package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/revalidate"
)

// FriendService manages the relationship lifecycle between two users:
// request (PENDING), accept (ACCEPTED), and removal.
type FriendService struct {
	friendRepo  repository.FriendRepository
	userRepo    repository.UserRepository
	broadcaster *revalidate.Broadcaster
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository, broadcaster *revalidate.Broadcaster) *FriendService {
	return &FriendService{
		friendRepo:  friendRepo,
		userRepo:    userRepo,
		broadcaster: broadcaster,
	}
}

func (s *FriendService) stale(ctx context.Context, views ...revalidate.View) {
	if s.broadcaster != nil {
		s.broadcaster.Stale(ctx, views...)
	}
}

// AddFriend creates a PENDING relationship from requester to target. A
// second request in the same direction while one is pending is a conflict;
// a request in the opposite direction is allowed and produces its own row.
func (s *FriendService) AddFriend(ctx context.Context, requesterID, targetID uint) (*models.Friend, error) {
	if requesterID == targetID {
		return nil, models.NewValidationError("cannot send a friend request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	pending, err := s.friendRepo.GetPendingFrom(ctx, requesterID, targetID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, models.NewConflictError("friend request already pending")
	}

	friend := &models.Friend{
		User1ID: requesterID,
		User2ID: targetID,
		Status:  models.FriendStatusPending,
	}
	if err := s.friendRepo.Create(ctx, friend); err != nil {
		return nil, err
	}

	s.stale(ctx, revalidate.ViewFriends, revalidate.ViewProfile(targetID))
	return friend, nil
}

// AcceptFriend marks the relationship between the two users as ACCEPTED.
// The record is resolved in either direction, so the accepting side does
// not need to know who initiated the request.
func (s *FriendService) AcceptFriend(ctx context.Context, userID, otherID uint) (*models.Friend, error) {
	friend, err := s.friendRepo.GetBetween(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	if friend == nil {
		return nil, models.NewNotFoundError("friend request", otherID)
	}

	if err := s.friendRepo.UpdateStatus(ctx, friend.ID, models.FriendStatusAccepted); err != nil {
		return nil, err
	}
	friend.Status = models.FriendStatusAccepted

	s.stale(ctx, revalidate.ViewFriends, revalidate.ViewTimeline)
	return friend, nil
}

// RemoveFriend deletes the relationship between the two users together with
// every direct message they exchanged, in one transaction. Removing a
// relationship that does not exist is a not-found failure, as with accept.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, otherID uint) error {
	friend, err := s.friendRepo.GetBetween(ctx, userID, otherID)
	if err != nil {
		return err
	}
	if friend == nil {
		return models.NewNotFoundError("friend relationship", otherID)
	}

	if err := s.friendRepo.RemoveWithMessages(ctx, userID, otherID); err != nil {
		return err
	}

	s.stale(ctx,
		revalidate.ViewFriends,
		revalidate.ViewTimeline,
		revalidate.ViewConversation(userID, otherID),
		revalidate.ViewUnread(otherID),
	)
	return nil
}

// ListFriends returns every relationship the user participates in, each
// paired with the counterpart user, regardless of status. Callers filter on
// Status to separate accepted friends from open requests.
func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]models.FriendEntry, error) {
	friends, err := s.friendRepo.ListForUserWithUsers(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]models.FriendEntry, 0, len(friends))
	for i := range friends {
		f := friends[i]
		counterpart := f.User2
		if f.User2ID == userID {
			counterpart = f.User1
		}
		entries = append(entries, models.FriendEntry{
			Friend: f,
			User:   counterpart,
		})
	}
	return entries, nil
}
