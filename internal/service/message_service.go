package service

import (
	"context"
	"strings"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
	"ripple/internal/revalidate"
	"ripple/internal/validation"
)

// MessageService handles direct messaging between two users, the per-pair
// conversation view, and the receiver's unread counter.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	broadcaster *revalidate.Broadcaster
}

// NewMessageService returns a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, broadcaster *revalidate.Broadcaster) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		broadcaster: broadcaster,
	}
}

func (s *MessageService) stale(ctx context.Context, views ...revalidate.View) {
	if s.broadcaster != nil {
		s.broadcaster.Stale(ctx, views...)
	}
}

// Send creates a message from sender to receiver, unread until the receiver
// opens the conversation.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if err := validation.MessageContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if senderID == receiverID {
		return nil, models.NewValidationError("cannot message yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	observability.MessagesSent.Inc()

	s.stale(ctx,
		revalidate.ViewConversation(senderID, receiverID),
		revalidate.ViewUnread(receiverID),
	)
	return message, nil
}

// Conversation returns the full message history between the user and the
// recipient, oldest first, annotated with the display names each side
// renders with.
func (s *MessageService) Conversation(ctx context.Context, userID, recipientID uint) (*models.Conversation, error) {
	sender, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListBetween(ctx, userID, recipientID)
	if err != nil {
		return nil, err
	}

	return &models.Conversation{
		Messages:         messages,
		SenderName:       sender.Name,
		RecipientName:    recipient.Name,
		RecipientPicture: recipient.ProfilePicture,
	}, nil
}

// MarkRead flags every unread message from sender to the user as read and
// returns how many rows changed. Zero is not an error; opening an empty or
// already-read conversation is a no-op.
func (s *MessageService) MarkRead(ctx context.Context, userID, senderID uint) (int64, error) {
	updated, err := s.messageRepo.MarkRead(ctx, userID, senderID)
	if err != nil {
		return 0, err
	}

	if updated > 0 {
		s.stale(ctx, revalidate.ViewUnread(userID))
	}
	return updated, nil
}

// Delete removes a message. Only the sender may delete it.
func (s *MessageService) Delete(ctx context.Context, userID, messageID uint) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.SenderID != userID {
		return models.NewNotFoundError("message", messageID)
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		return err
	}
	cache.InvalidateUnreadCount(ctx, message.ReceiverID)

	s.stale(ctx,
		revalidate.ViewConversation(message.SenderID, message.ReceiverID),
		revalidate.ViewUnread(message.ReceiverID),
	)
	return nil
}

// Update replaces a message's content. Only the sender may edit, and the
// edit marks the message read so the receiver's unread counter does not
// count a message they may have already seen in its previous form.
func (s *MessageService) Update(ctx context.Context, userID, messageID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if err := validation.MessageContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.SenderID != userID {
		return nil, models.NewNotFoundError("message", messageID)
	}

	if err := s.messageRepo.UpdateContent(ctx, messageID, content); err != nil {
		return nil, err
	}
	message.Content = content
	message.Read = true
	cache.InvalidateUnreadCount(ctx, message.ReceiverID)

	s.stale(ctx, revalidate.ViewConversation(message.SenderID, message.ReceiverID))
	return message, nil
}

// UnreadCount returns the number of unread messages addressed to the user,
// served from a short-lived cache entry.
func (s *MessageService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	key := cache.UnreadCountKey(userID)
	err := cache.Aside(ctx, key, &count, cache.UnreadCountTTL, func() error {
		var loadErr error
		count, loadErr = s.messageRepo.CountUnread(ctx, userID)
		return loadErr
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
