package repositories

import (
	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/pkg/orm"
)

// MessageRepository handles database operations for Message.
type MessageRepository struct{}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

// ForUser returns the user's own thread, oldest first.
func (r *MessageRepository) ForUser(userID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := orm.DB().Model(&models.Message{}).
		Where("user_id = ?", userID).
		Order("created_at asc").Get(&msgs)
	return msgs, err
}

// All returns every message with the sender preloaded, newest first.
func (r *MessageRepository) All() ([]models.Message, error) {
	var msgs []models.Message
	err := orm.DB().Model(&models.Message{}).
		Preload("User").
		Order("created_at desc").Get(&msgs)
	return msgs, err
}

// FindByID looks up one message.
func (r *MessageRepository) FindByID(id uint) (models.Message, error) {
	var msg models.Message
	err := orm.DB().Model(&models.Message{}).Where("id = ?", id).First(&msg)
	return msg, err
}

// Create persists a new message.
func (r *MessageRepository) Create(msg *models.Message) error {
	return orm.DB().Create(msg)
}

// Update persists changes to a message.
func (r *MessageRepository) Update(msg *models.Message) error {
	return orm.DB().Save(msg)
}

// Delete removes one message.
func (r *MessageRepository) Delete(id uint) error {
	return orm.DB().Delete(&models.Message{}, id)
}

// ClearForUser removes every message in the user's thread.
func (r *MessageRepository) ClearForUser(userID uint) error {
	return orm.DB().Gorm().Where("user_id = ?", userID).Delete(&models.Message{}).Error
}

// ClearAll removes every message.
func (r *MessageRepository) ClearAll() error {
	return orm.DB().Gorm().Where("1 = 1").Delete(&models.Message{}).Error
}
