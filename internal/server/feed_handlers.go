package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed?page=N
//
// Returns one page of the two-slice feed: posts from the user's network
// and posts from everyone else, each with its total count for pagination.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	feed, err := s.feedService.Timeline(ctx, userID, parsePage(c))
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(feed)
}

// GetUserPosts handles GET /api/users/:id/posts?page=N
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	// Resolve the author first so a missing user is a 404, not an empty page.
	if _, err := s.userService.GetUser(ctx, authorID); err != nil {
		return s.respondError(c, err)
	}

	page, err := s.feedService.UserPosts(ctx, authorID, parsePage(c))
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(page)
}
