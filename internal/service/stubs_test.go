package service

import (
	"context"

	"ripple/internal/models"
)

// friendRepoStub is a stub for repository.FriendRepository.
type friendRepoStub struct {
	createFn               func(context.Context, *models.Friend) error
	listForUserFn          func(context.Context, uint) ([]models.Friend, error)
	listForUserWithUsersFn func(context.Context, uint) ([]models.Friend, error)
	getBetweenFn           func(context.Context, uint, uint) (*models.Friend, error)
	getPendingFromFn       func(context.Context, uint, uint) (*models.Friend, error)
	updateStatusFn         func(context.Context, uint, models.FriendStatus) error
	removeWithMessagesFn   func(context.Context, uint, uint) error
}

func (s *friendRepoStub) Create(ctx context.Context, friend *models.Friend) error {
	return s.createFn(ctx, friend)
}
func (s *friendRepoStub) ListForUser(ctx context.Context, userID uint) ([]models.Friend, error) {
	return s.listForUserFn(ctx, userID)
}
func (s *friendRepoStub) ListForUserWithUsers(ctx context.Context, userID uint) ([]models.Friend, error) {
	return s.listForUserWithUsersFn(ctx, userID)
}
func (s *friendRepoStub) GetBetween(ctx context.Context, userID1, userID2 uint) (*models.Friend, error) {
	return s.getBetweenFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) GetPendingFrom(ctx context.Context, requesterID, targetID uint) (*models.Friend, error) {
	return s.getPendingFromFn(ctx, requesterID, targetID)
}
func (s *friendRepoStub) UpdateStatus(ctx context.Context, friendID uint, status models.FriendStatus) error {
	return s.updateStatusFn(ctx, friendID, status)
}
func (s *friendRepoStub) RemoveWithMessages(ctx context.Context, userID1, userID2 uint) error {
	return s.removeWithMessagesFn(ctx, userID1, userID2)
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createFn:               func(_ context.Context, _ *models.Friend) error { return nil },
		listForUserFn:          func(_ context.Context, _ uint) ([]models.Friend, error) { return nil, nil },
		listForUserWithUsersFn: func(_ context.Context, _ uint) ([]models.Friend, error) { return nil, nil },
		getBetweenFn:           func(_ context.Context, _, _ uint) (*models.Friend, error) { return nil, nil },
		getPendingFromFn:       func(_ context.Context, _, _ uint) (*models.Friend, error) { return nil, nil },
		updateStatusFn:         func(_ context.Context, _ uint, _ models.FriendStatus) error { return nil },
		removeWithMessagesFn:   func(_ context.Context, _, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getBySubjectFn  func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	listExcludingFn func(context.Context, uint) ([]models.User, error)
	listByIDsFn     func(context.Context, []uint) ([]models.User, error)
	searchFn        func(context.Context, string, uint) ([]models.User, error)
	getProfileFn    func(context.Context, uint) (*models.Profile, error)
	upsertProfileFn func(context.Context, *models.Profile) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetBySubject(ctx context.Context, subject string) (*models.User, error) {
	return s.getBySubjectFn(ctx, subject)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) ListExcluding(ctx context.Context, excludeID uint) ([]models.User, error) {
	return s.listExcludingFn(ctx, excludeID)
}
func (s *userRepoStub) ListByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	return s.listByIDsFn(ctx, ids)
}
func (s *userRepoStub) Search(ctx context.Context, query string, excludeID uint) ([]models.User, error) {
	return s.searchFn(ctx, query, excludeID)
}
func (s *userRepoStub) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getProfileFn(ctx, userID)
}
func (s *userRepoStub) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	return s.upsertProfileFn(ctx, profile)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getBySubjectFn:  func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		listExcludingFn: func(_ context.Context, _ uint) ([]models.User, error) { return nil, nil },
		listByIDsFn:     func(_ context.Context, _ []uint) ([]models.User, error) { return nil, nil },
		searchFn:        func(_ context.Context, _ string, _ uint) ([]models.User, error) { return nil, nil },
		getProfileFn:    func(_ context.Context, _ uint) (*models.Profile, error) { return &models.Profile{}, nil },
		upsertProfileFn: func(_ context.Context, _ *models.Profile) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn                func(context.Context, *models.Post) error
	getByIDFn               func(context.Context, uint) (*models.Post, error)
	deleteFn                func(context.Context, uint) error
	listByAuthorsFn         func(context.Context, []uint, int, int) ([]*models.Post, error)
	countByAuthorsFn        func(context.Context, []uint) (int64, error)
	listExcludingAuthorsFn  func(context.Context, []uint, int, int) ([]*models.Post, error)
	countExcludingAuthorsFn func(context.Context, []uint) (int64, error)
	listByAuthorFn          func(context.Context, uint, int, int) ([]*models.Post, error)
	countByAuthorFn         func(context.Context, uint) (int64, error)
	likeOnceFn              func(context.Context, uint, uint) (bool, error)
	unlikeFn                func(context.Context, uint, uint) error
	countLikesFn            func(context.Context, uint) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error) {
	return s.listByAuthorsFn(ctx, authorIDs, limit, offset)
}
func (s *postRepoStub) CountByAuthors(ctx context.Context, authorIDs []uint) (int64, error) {
	return s.countByAuthorsFn(ctx, authorIDs)
}
func (s *postRepoStub) ListExcludingAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error) {
	return s.listExcludingAuthorsFn(ctx, authorIDs, limit, offset)
}
func (s *postRepoStub) CountExcludingAuthors(ctx context.Context, authorIDs []uint) (int64, error) {
	return s.countExcludingAuthorsFn(ctx, authorIDs)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset)
}
func (s *postRepoStub) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) LikeOnce(ctx context.Context, authorID, postID uint) (bool, error) {
	return s.likeOnceFn(ctx, authorID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, authorID, postID uint) error {
	return s.unlikeFn(ctx, authorID, postID)
}
func (s *postRepoStub) CountLikes(ctx context.Context, postID uint) (int64, error) {
	return s.countLikesFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:                func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:               func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		deleteFn:                func(_ context.Context, _ uint) error { return nil },
		listByAuthorsFn:         func(_ context.Context, _ []uint, _, _ int) ([]*models.Post, error) { return nil, nil },
		countByAuthorsFn:        func(_ context.Context, _ []uint) (int64, error) { return 0, nil },
		listExcludingAuthorsFn:  func(_ context.Context, _ []uint, _, _ int) ([]*models.Post, error) { return nil, nil },
		countExcludingAuthorsFn: func(_ context.Context, _ []uint) (int64, error) { return 0, nil },
		listByAuthorFn:          func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) { return nil, nil },
		countByAuthorFn:         func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		likeOnceFn:              func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unlikeFn:                func(_ context.Context, _, _ uint) error { return nil },
		countLikesFn:            func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uint) (*models.Comment, error)
	deleteCascadeFn func(context.Context, uint) error
	likeOnceFn      func(context.Context, uint, uint, uint) (bool, error)
	unlikeFn        func(context.Context, uint, uint) error
	countLikesFn    func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) DeleteCascade(ctx context.Context, id uint) error {
	return s.deleteCascadeFn(ctx, id)
}
func (s *commentRepoStub) LikeOnce(ctx context.Context, authorID, commentID, postID uint) (bool, error) {
	return s.likeOnceFn(ctx, authorID, commentID, postID)
}
func (s *commentRepoStub) Unlike(ctx context.Context, authorID, commentID uint) error {
	return s.unlikeFn(ctx, authorID, commentID)
}
func (s *commentRepoStub) CountLikes(ctx context.Context, commentID uint) (int64, error) {
	return s.countLikesFn(ctx, commentID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:        func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		deleteCascadeFn: func(_ context.Context, _ uint) error { return nil },
		likeOnceFn:      func(_ context.Context, _, _, _ uint) (bool, error) { return true, nil },
		unlikeFn:        func(_ context.Context, _, _ uint) error { return nil },
		countLikesFn:    func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// messageRepoStub is a stub for repository.MessageRepository.
type messageRepoStub struct {
	createFn        func(context.Context, *models.Message) error
	getByIDFn       func(context.Context, uint) (*models.Message, error)
	listBetweenFn   func(context.Context, uint, uint) ([]models.Message, error)
	markReadFn      func(context.Context, uint, uint) (int64, error)
	deleteFn        func(context.Context, uint) error
	updateContentFn func(context.Context, uint, string) error
	countUnreadFn   func(context.Context, uint) (int64, error)
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.Message) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id)
}
func (s *messageRepoStub) ListBetween(ctx context.Context, userID1, userID2 uint) ([]models.Message, error) {
	return s.listBetweenFn(ctx, userID1, userID2)
}
func (s *messageRepoStub) MarkRead(ctx context.Context, receiverID, senderID uint) (int64, error) {
	return s.markReadFn(ctx, receiverID, senderID)
}
func (s *messageRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *messageRepoStub) UpdateContent(ctx context.Context, id uint, content string) error {
	return s.updateContentFn(ctx, id, content)
}
func (s *messageRepoStub) CountUnread(ctx context.Context, receiverID uint) (int64, error) {
	return s.countUnreadFn(ctx, receiverID)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:        func(_ context.Context, _ *models.Message) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.Message, error) { return &models.Message{ID: id}, nil },
		listBetweenFn:   func(_ context.Context, _, _ uint) ([]models.Message, error) { return nil, nil },
		markReadFn:      func(_ context.Context, _, _ uint) (int64, error) { return 0, nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		updateContentFn: func(_ context.Context, _ uint, _ string) error { return nil },
		countUnreadFn:   func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}
