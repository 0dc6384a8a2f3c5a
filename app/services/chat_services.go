package services

import (
	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/app/repositories"
	"github.com/pethive/pethive/pkg/database"
)

// ChatService is the support-chat thread: customers see and manage only
// their own rows, admins see everything.
type ChatService struct {
	messages *repositories.MessageRepository
}

func NewChatService() *ChatService {
	return &ChatService{messages: repositories.NewMessageRepository()}
}

// MyMessages returns the caller's thread, oldest first. Clients poll this;
// a store outage returns an empty thread rather than an error.
func (s *ChatService) MyMessages(userID uint) ([]models.Message, error) {
	if !database.Available() {
		return []models.Message{}, nil
	}
	msgs, err := s.messages.ForUser(userID)
	if err != nil {
		return nil, ErrStoreUnavailable
	}
	return msgs, nil
}

// Post appends a customer message to the caller's thread.
func (s *ChatService) Post(userID uint, content string) (models.Message, error) {
	if !database.Available() {
		return models.Message{}, ErrStoreUnavailable
	}
	msg := models.Message{UserID: userID, Content: content, IsAdmin: false}
	if err := s.messages.Create(&msg); err != nil {
		return models.Message{}, ErrStoreUnavailable
	}
	return msg, nil
}

// Edit rewrites one of the caller's own messages. Another user's row is
// ErrForbidden and stays untouched.
func (s *ChatService) Edit(userID, id uint, content string) (models.Message, error) {
	if !database.Available() {
		return models.Message{}, ErrStoreUnavailable
	}

	msg, err := s.messages.FindByID(id)
	if err != nil {
		if isMiss(err) {
			return models.Message{}, ErrForbidden
		}
		return models.Message{}, ErrStoreUnavailable
	}
	if msg.UserID != userID {
		return models.Message{}, ErrForbidden
	}

	msg.Content = content
	if err := s.messages.Update(&msg); err != nil {
		return models.Message{}, ErrStoreUnavailable
	}
	return msg, nil
}

// Delete removes one of the caller's own messages.
func (s *ChatService) Delete(userID, id uint) error {
	if !database.Available() {
		return ErrStoreUnavailable
	}

	msg, err := s.messages.FindByID(id)
	if err != nil {
		if isMiss(err) {
			return ErrForbidden
		}
		return ErrStoreUnavailable
	}
	if msg.UserID != userID {
		return ErrForbidden
	}
	return s.messages.Delete(id)
}

// ClearMine wipes the caller's whole thread.
func (s *ChatService) ClearMine(userID uint) error {
	if !database.Available() {
		return ErrStoreUnavailable
	}
	return s.messages.ClearForUser(userID)
}

// ── Admin scope ──

// AllMessages returns every thread with sender detail, newest first.
func (s *ChatService) AllMessages() ([]models.Message, error) {
	if !database.Available() {
		return []models.Message{}, nil
	}
	msgs, err := s.messages.All()
	if err != nil {
		return nil, ErrStoreUnavailable
	}
	return msgs, nil
}

// PostAsAdmin writes an admin message, optionally into a customer's thread.
// A zero targetUserID is a broadcast row.
func (s *ChatService) PostAsAdmin(targetUserID uint, content string) (models.Message, error) {
	if !database.Available() {
		return models.Message{}, ErrStoreUnavailable
	}
	msg := models.Message{UserID: targetUserID, Content: content, IsAdmin: true}
	if err := s.messages.Create(&msg); err != nil {
		return models.Message{}, ErrStoreUnavailable
	}
	return msg, nil
}

// AdminDelete removes any message.
func (s *ChatService) AdminDelete(id uint) error {
	if !database.Available() {
		return ErrStoreUnavailable
	}
	if _, err := s.messages.FindByID(id); err != nil {
		if isMiss(err) {
			return ErrNotFound
		}
		return ErrStoreUnavailable
	}
	return s.messages.Delete(id)
}

// ClearAll wipes every thread.
func (s *ChatService) ClearAll() error {
	if !database.Available() {
		return ErrStoreUnavailable
	}
	return s.messages.ClearAll()
}
