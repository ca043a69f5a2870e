package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// FeedPageSize is the fixed number of posts per feed slice per page.
const FeedPageSize = 5

// FeedService assembles the two-slice timeline feed: posts from the
// requesting user's network and posts from everyone else, each offset-
// paginated with a total count.
type FeedService struct {
	friendRepo repository.FriendRepository
	postRepo   repository.PostRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(friendRepo repository.FriendRepository, postRepo repository.PostRepository) *FeedService {
	return &FeedService{
		friendRepo: friendRepo,
		postRepo:   postRepo,
	}
}

// NormalizePage clamps a 1-based page number; zero and negative values fall
// back to the first page. Handlers parse non-numeric input to 0, so "abc"
// lands here too.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// inNetworkIDs computes the author set treated as the user's network: the
// user plus the counterpart of every relationship record. Relationship
// status is deliberately not filtered, so PENDING counterparts are already
// in-network; this mirrors the shipped behavior and is load-bearing for the
// disjointness of the two slices.
func (s *FeedService) inNetworkIDs(ctx context.Context, userID uint) ([]uint, error) {
	friends, err := s.friendRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(friends)+1)
	ids = append(ids, userID)
	seen := map[uint]struct{}{userID: {}}
	for i := range friends {
		id := friends[i].CounterpartID(userID)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// Timeline computes one page of the partitioned feed for the user. The two
// slices are disjoint and together cover all posts for a fixed snapshot of
// the relationship data; pages are independent stateless queries.
func (s *FeedService) Timeline(ctx context.Context, userID uint, page int) (*models.FeedPage, error) {
	pageNumber := NormalizePage(page)
	skip := (pageNumber - 1) * FeedPageSize

	networkIDs, err := s.inNetworkIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	timeline, err := s.postRepo.ListByAuthors(ctx, networkIDs, FeedPageSize, skip)
	if err != nil {
		return nil, err
	}
	discover, err := s.postRepo.ListExcludingAuthors(ctx, networkIDs, FeedPageSize, skip)
	if err != nil {
		return nil, err
	}
	timelineCount, err := s.postRepo.CountByAuthors(ctx, networkIDs)
	if err != nil {
		return nil, err
	}
	discoverCount, err := s.postRepo.CountExcludingAuthors(ctx, networkIDs)
	if err != nil {
		return nil, err
	}

	if len(timeline) == 0 {
		observability.FeedPagesServed.WithLabelValues("timeline_empty").Inc()
	} else {
		observability.FeedPagesServed.WithLabelValues("timeline").Inc()
	}

	return &models.FeedPage{
		Timeline:      timeline,
		Discover:      discover,
		TimelineCount: timelineCount,
		DiscoverCount: discoverCount,
		Page:          pageNumber,
		PageSize:      FeedPageSize,
	}, nil
}

// UserPosts returns one page of a single author's posts plus the total count.
func (s *FeedService) UserPosts(ctx context.Context, authorID uint, page int) (*models.UserPostsPage, error) {
	pageNumber := NormalizePage(page)
	skip := (pageNumber - 1) * FeedPageSize

	posts, err := s.postRepo.ListByAuthor(ctx, authorID, FeedPageSize, skip)
	if err != nil {
		return nil, err
	}
	count, err := s.postRepo.CountByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	return &models.UserPostsPage{
		Posts:      posts,
		PostsCount: count,
		Page:       pageNumber,
		PageSize:   FeedPageSize,
	}, nil
}
