package server

import (
	"ripple/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateSession handles POST /api/session
//
// The request carries a session token already issued by the identity
// provider; this endpoint resolves it to a local user, creating the record
// on first sign-in, and returns the user. Clients call it once after
// sign-in before hitting any other endpoint.
func (s *Server) CreateSession(c *fiber.Ctx) error {
	identity := c.Locals(middleware.IdentityLocalKey).(*middleware.Identity)

	user, err := s.userService.EnsureUser(c.Context(), identity)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
