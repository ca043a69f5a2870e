package server

import (
	"time"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMe handles GET /api/users/me
func (s *Server) GetMe(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUser(ctx, userID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(user)
}

// GetUsers handles GET /api/users
//
// Lists every other user, each annotated with the caller's relationship
// status toward them.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	users, err := s.userService.ListOthers(ctx, userID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(users)
}

// SearchUsers handles GET /api/users/search?q=term
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	users, err := s.userService.Search(ctx, userID, c.Query("q"))
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(users)
}

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(ctx, id)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id/profile
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.userService.GetProfile(ctx, id)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(profile)
}

// updateProfileRequest is the body for PUT /api/users/:id/profile.
type updateProfileRequest struct {
	Bio         string     `json:"bio"`
	Gender      string     `json:"gender"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

// UpdateProfile handles PUT /api/users/:id/profile
//
// Users may only edit their own profile.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if id != userID {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("profile", id))
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.userService.UpsertProfile(ctx, userID, &models.Profile{
		Bio:         req.Bio,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(profile)
}
