package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFriends handles GET /api/friends
//
// Returns every relationship the user participates in, each paired with
// the counterpart user. Clients split on status to render accepted
// friends and open requests separately.
func (s *Server) GetFriends(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	entries, err := s.friendService.ListFriends(ctx, userID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(entries)
}

// AddFriend handles POST /api/friends/:userId
func (s *Server) AddFriend(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	friend, err := s.friendService.AddFriend(ctx, userID, targetID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(friend)
}

// AcceptFriend handles POST /api/friends/:userId/accept
func (s *Server) AcceptFriend(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	friend, err := s.friendService.AcceptFriend(ctx, userID, otherID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(friend)
}

// RemoveFriend handles DELETE /api/friends/:userId
//
// Removes the relationship and deletes the message history between the
// two users.
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.friendService.RemoveFriend(ctx, userID, otherID); err != nil {
		return s.respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
