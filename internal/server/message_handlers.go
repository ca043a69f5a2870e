package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// sendMessageRequest is the body for POST /api/messages.
type sendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id"`
	Content    string `json:"content"`
}

// SendMessage handles POST /api/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ReceiverID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("receiver_id is required"))
	}

	message, err := s.messageService.Send(ctx, userID, req.ReceiverID, req.Content)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetConversation handles GET /api/messages/:userId
//
// Returns the full message history with the other user, oldest first.
func (s *Server) GetConversation(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	conversation, err := s.messageService.Conversation(ctx, userID, otherID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(conversation)
}

// MarkConversationRead handles POST /api/messages/:userId/read
//
// Marks every unread message from the other user as read and reports how
// many changed.
func (s *Server) MarkConversationRead(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	senderID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	updated, err := s.messageService.MarkRead(ctx, userID, senderID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{"updated": updated})
}

// updateMessageRequest is the body for PUT /api/messages/:id.
type updateMessageRequest struct {
	Content string `json:"content"`
}

// UpdateMessage handles PUT /api/messages/:id
func (s *Server) UpdateMessage(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	messageID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req updateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messageService.Update(ctx, userID, messageID, req.Content)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(message)
}

// DeleteMessage handles DELETE /api/messages/:id
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	messageID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.messageService.Delete(ctx, userID, messageID); err != nil {
		return s.respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetUnreadCount handles GET /api/messages/unread-count
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	count, err := s.messageService.UnreadCount(ctx, userID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{"unread": count})
}
