package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ripple/internal/config"
	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiSecret = "server-test-secret"

// newTestAPI wires a Server against a fresh in-memory database and mounts
// routes only; SetupMiddleware is skipped so the rate limiter does not
// interfere with request-heavy tests.
func newTestAPI(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{SessionSecret: apiSecret, Env: "test"}
	middleware.InitMiddleware(cfg)

	db := testutil.SetupTestDB(t)
	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return app
}

func apiToken(t *testing.T, subject, name, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   subject,
		"name":  name,
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(apiSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// provision signs in a user through POST /api/session and returns the
// session token plus the provisioned local user ID.
func provision(t *testing.T, app *fiber.App, name string) (string, uint) {
	t.Helper()

	token := apiToken(t, "idp|"+name, name, name+"@example.com")
	resp := doJSON(t, app, http.MethodPost, "/api/session", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	decodeBody(t, resp, &user)
	require.NotZero(t, user.ID)
	return token, user.ID
}

func TestStartAndShutdown(t *testing.T) {
	cfg := &config.Config{SessionSecret: apiSecret, Env: "test", Port: "0"}
	middleware.InitMiddleware(cfg)

	db := testutil.SetupTestDB(t)
	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	// Give the listener a moment to come up before shutting down.
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestSessionProvisionsUser(t *testing.T) {
	app := newTestAPI(t)

	token := apiToken(t, "idp|alice", "alice", "alice@example.com")
	resp := doJSON(t, app, http.MethodPost, "/api/session", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	decodeBody(t, resp, &user)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)

	// Signing in again resolves to the same local user.
	resp = doJSON(t, app, http.MethodPost, "/api/session", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var again models.User
	decodeBody(t, resp, &again)
	assert.Equal(t, user.ID, again.ID)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app := newTestAPI(t)

	t.Run("no token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/feed", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token but never signed in", func(t *testing.T) {
		token := apiToken(t, "idp|ghost", "ghost", "ghost@example.com")
		resp := doJSON(t, app, http.MethodGet, "/api/feed", token, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var body models.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "Unknown user, create a session first", body.Error)
	})
}

func TestFriendRequestFlow(t *testing.T) {
	app := newTestAPI(t)
	aliceToken, _ := provision(t, app, "alice")
	bobToken, bobID := provision(t, app, "bob")
	_, aliceID := provision(t, app, "alice") // resolves existing

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/%d", bobID), aliceToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var friend models.Friend
	decodeBody(t, resp, &friend)
	assert.Equal(t, models.FriendStatusPending, friend.Status)

	// Duplicate request while one is pending conflicts.
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/%d", bobID), aliceToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Requesting yourself is invalid.
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/%d", aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The receiver accepts.
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/%d/accept", aliceID), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &friend)
	assert.Equal(t, models.FriendStatusAccepted, friend.Status)

	// Both sides see the relationship paired with the counterpart.
	resp = doJSON(t, app, http.MethodGet, "/api/friends", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []models.FriendEntry
	decodeBody(t, resp, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, bobID, entries[0].User.ID)

	// Removal is a 204 and empties the list.
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/friends/%d", bobID), aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/friends", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &entries)
	assert.Empty(t, entries)

	// Removing again fails now that the relationship is gone.
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/friends/%d", bobID), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFriendRemovalPurgesConversation(t *testing.T) {
	app := newTestAPI(t)
	aliceToken, aliceID := provision(t, app, "alice")
	bobToken, bobID := provision(t, app, "bob")

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/%d", bobID), aliceToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/messages", aliceToken,
		fiber.Map{"receiver_id": bobID, "content": "hey"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/api/messages", bobToken,
		fiber.Map{"receiver_id": aliceID, "content": "hi back"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/friends/%d", bobID), aliceToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/messages/%d", bobID), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var convo models.Conversation
	decodeBody(t, resp, &convo)
	assert.Empty(t, convo.Messages)
}

func TestPostLifecycle(t *testing.T) {
	app := newTestAPI(t)
	aliceToken, _ := provision(t, app, "alice")
	bobToken, _ := provision(t, app, "bob")

	resp := doJSON(t, app, http.MethodPost, "/api/posts", aliceToken,
		fiber.Map{"content": "first post"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var post models.Post
	decodeBody(t, resp, &post)
	require.NotZero(t, post.ID)
	assert.Equal(t, "first post", post.Content)

	// Empty content with no image is rejected.
	resp = doJSON(t, app, http.MethodPost, "/api/posts", aliceToken,
		fiber.Map{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Like toggles on then off.
	var liked map[string]bool
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", post.ID), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &liked)
	assert.True(t, liked["liked"])

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", post.ID), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &liked)
	assert.False(t, liked["liked"])

	// Only the author may delete; others see a 404.
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", post.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCommentFlow(t *testing.T) {
	app := newTestAPI(t)
	aliceToken, _ := provision(t, app, "alice")
	bobToken, _ := provision(t, app, "bob")

	resp := doJSON(t, app, http.MethodPost, "/api/posts", aliceToken,
		fiber.Map{"content": "commentable"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post models.Post
	decodeBody(t, resp, &post)

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID), bobToken,
		fiber.Map{"content": "nice one"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var comment models.Comment
	decodeBody(t, resp, &comment)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, "nice one", comment.Content)

	// Commenting on a missing post is a 404.
	resp = doJSON(t, app, http.MethodPost, "/api/posts/9999/comments", bobToken,
		fiber.Map{"content": "into the void"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var liked map[string]bool
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/comments/%d/like", comment.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &liked)
	assert.True(t, liked["liked"])

	// Only the comment author may delete it.
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/comments/%d", comment.ID), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/comments/%d", comment.ID), bobToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestMessageFlow(t *testing.T) {
	app := newTestAPI(t)
	aliceToken, aliceID := provision(t, app, "alice")
	bobToken, bobID := provision(t, app, "bob")

	// Messaging yourself is invalid.
	resp := doJSON(t, app, http.MethodPost, "/api/messages", aliceToken,
		fiber.Map{"receiver_id": aliceID, "content": "dear diary"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/messages", aliceToken,
		fiber.Map{"receiver_id": bobID, "content": "hello bob"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var msg models.Message
	decodeBody(t, resp, &msg)
	assert.False(t, msg.Read)

	var count map[string]int64
	resp = doJSON(t, app, http.MethodGet, "/api/messages/unread-count", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &count)
	assert.Equal(t, int64(1), count["unread"])

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/messages/%d", aliceID), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var convo models.Conversation
	decodeBody(t, resp, &convo)
	require.Len(t, convo.Messages, 1)
	assert.Equal(t, "alice", convo.RecipientName)

	var updated map[string]int64
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/messages/%d/read", aliceID), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &updated)
	assert.Equal(t, int64(1), updated["updated"])

	resp = doJSON(t, app, http.MethodGet, "/api/messages/unread-count", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &count)
	assert.Equal(t, int64(0), count["unread"])

	// Editing marks the message read for the recipient too.
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/messages/%d", msg.ID), aliceToken,
		fiber.Map{"content": "hello bob (edited)"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &msg)
	assert.Equal(t, "hello bob (edited)", msg.Content)
	assert.True(t, msg.Read)

	// Only the sender may edit or delete.
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/messages/%d", msg.ID), bobToken,
		fiber.Map{"content": "hijacked"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/messages/%d", msg.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/messages/%d", msg.ID), aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestFeedSplitsNetworkAndDiscover(t *testing.T) {
	app := newTestAPI(t)
	aliceToken, _ := provision(t, app, "alice")
	bobToken, bobID := provision(t, app, "bob")
	carolToken, _ := provision(t, app, "carol")

	// A pending request is enough to pull bob into alice's network.
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/%d", bobID), aliceToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for token, content := range map[string]string{
		aliceToken: "from alice",
		bobToken:   "from bob",
		carolToken: "from carol",
	} {
		resp = doJSON(t, app, http.MethodPost, "/api/posts", token, fiber.Map{"content": content})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/feed", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var feed models.FeedPage
	decodeBody(t, resp, &feed)
	assert.Len(t, feed.Timeline, 2)
	require.Len(t, feed.Discover, 1)
	assert.Equal(t, "from carol", feed.Discover[0].Content)
	assert.Equal(t, int64(2), feed.TimelineCount)
	assert.Equal(t, int64(1), feed.DiscoverCount)
	assert.Equal(t, 1, feed.Page)
	assert.Equal(t, 5, feed.PageSize)
}

func TestUserEndpoints(t *testing.T) {
	app := newTestAPI(t)
	aliceToken, aliceID := provision(t, app, "alice")
	_, bobID := provision(t, app, "bob")

	t.Run("me", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/me", aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var me models.User
		decodeBody(t, resp, &me)
		assert.Equal(t, aliceID, me.ID)
	})

	t.Run("search excludes viewer", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/search?q=o", aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var results []models.UserSummary
		decodeBody(t, resp, &results)
		require.Len(t, results, 1)
		assert.Equal(t, bobID, results[0].User.ID)
	})

	t.Run("profile upsert", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/users/%d/profile", aliceID), aliceToken,
			fiber.Map{"bio": "hello world", "gender": "female"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/profile", aliceID), aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var profile models.Profile
		decodeBody(t, resp, &profile)
		assert.Equal(t, "hello world", profile.Bio)
	})

	t.Run("cannot edit another user's profile", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/users/%d/profile", bobID), aliceToken,
			fiber.Map{"bio": "graffiti"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unknown user posts is 404", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/9999/posts", aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
