// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls how much data the seeder creates.
type Options struct {
	Users    int
	Posts    int
	Messages int
	// MaxDays spreads created_at timestamps over this many days back.
	MaxDays int
}

// DefaultOptions is a mid-sized demo data set.
var DefaultOptions = Options{
	Users:    25,
	Posts:    120,
	Messages: 200,
	MaxDays:  60,
}

// Seeder populates the database with fake users, relationships, posts,
// comments, likes, and messages.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	src := rand.NewSource(time.Now().UnixNano())
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db, opts: opts, rng: rand.New(src)}
}

// ClearAll deletes all seeded data. Order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"comment_likes", "comments", "post_likes", "posts",
		"messages", "friends", "profiles", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// pastTime returns a timestamp spread over the configured window.
func (s *Seeder) pastTime() time.Time {
	maxDays := s.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 60
	}
	back := time.Duration(s.rng.Intn(maxDays))*24*time.Hour +
		time.Duration(s.rng.Intn(24))*time.Hour +
		time.Duration(s.rng.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

// CreateUser creates one fake user with a profile.
func (s *Seeder) CreateUser() (*models.User, error) {
	dob := gofakeit.DateRange(
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC),
	)
	user := &models.User{
		Subject:        "seed|" + gofakeit.UUID(),
		Name:           gofakeit.Name(),
		Email:          gofakeit.Email(),
		ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/300?u=%s", gofakeit.UUID()),
		Profile: &models.Profile{
			Bio:         gofakeit.Sentence(12),
			Gender:      gofakeit.Gender(),
			DateOfBirth: &dob,
		},
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateFriendMesh links users pairwise with a mix of accepted and pending
// relationships, roughly one relationship per three possible pairs.
func (s *Seeder) CreateFriendMesh(users []*models.User) (int, error) {
	created := 0
	for i := range users {
		for j := i + 1; j < len(users); j++ {
			if s.rng.Intn(3) != 0 {
				continue
			}
			status := models.FriendStatusAccepted
			if s.rng.Intn(4) == 0 {
				status = models.FriendStatusPending
			}
			friend := &models.Friend{
				User1ID: users[i].ID,
				User2ID: users[j].ID,
				Status:  status,
			}
			if err := s.db.Create(friend).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// CreatePost creates one fake post by a random user, with comments and
// likes from other users.
func (s *Seeder) CreatePost(users []*models.User) (*models.Post, error) {
	author := users[s.rng.Intn(len(users))]
	post := &models.Post{
		AuthorID:  author.ID,
		Content:   gofakeit.Paragraph(1, 3, 8, "\n"),
		CreatedAt: s.pastTime(),
	}
	if s.rng.Intn(3) == 0 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}

	for _, u := range users {
		if s.rng.Intn(4) == 0 {
			like := &models.PostLike{AuthorID: u.ID, PostID: post.ID}
			if err := s.db.Create(like).Error; err != nil {
				return nil, err
			}
		}
		if s.rng.Intn(8) == 0 {
			comment := &models.Comment{
				PostID:   post.ID,
				AuthorID: u.ID,
				Content:  gofakeit.Sentence(10),
			}
			if err := s.db.Create(comment).Error; err != nil {
				return nil, err
			}
		}
	}
	return post, nil
}

// CreateMessages creates message traffic between random pairs of users,
// leaving some unread.
func (s *Seeder) CreateMessages(users []*models.User, count int) error {
	for i := 0; i < count; i++ {
		sender := users[s.rng.Intn(len(users))]
		receiver := users[s.rng.Intn(len(users))]
		if sender.ID == receiver.ID {
			continue
		}
		message := &models.Message{
			SenderID:   sender.ID,
			ReceiverID: receiver.ID,
			Content:    gofakeit.Sentence(8),
			Read:       s.rng.Intn(3) != 0,
			CreatedAt:  s.pastTime(),
		}
		if err := s.db.Create(message).Error; err != nil {
			return err
		}
	}
	return nil
}

// Run executes the full seeding pass.
func (s *Seeder) Run() error {
	log.Printf("seeding %d users...", s.opts.Users)
	users := make([]*models.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		user, err := s.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}

	relationships, err := s.CreateFriendMesh(users)
	if err != nil {
		return fmt.Errorf("creating friend mesh: %w", err)
	}
	log.Printf("created %d relationships", relationships)

	log.Printf("seeding %d posts...", s.opts.Posts)
	for i := 0; i < s.opts.Posts; i++ {
		if _, err := s.CreatePost(users); err != nil {
			return fmt.Errorf("creating post: %w", err)
		}
	}

	log.Printf("seeding %d messages...", s.opts.Messages)
	if err := s.CreateMessages(users, s.opts.Messages); err != nil {
		return fmt.Errorf("creating messages: %w", err)
	}

	return nil
}
