package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/warinth/barlink-backend/hub"
	"github.com/warinth/barlink-backend/models"
)

// NewMessagePayload adalah isi event newMessage yang diterima big screen.
type NewMessagePayload struct {
	ChatID    uint      `json:"chatId"`
	TableID   *uint     `json:"tableId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type DeleteMessagePayload struct {
	ChatID uint `json:"chatId"`
}

type ChatService struct {
	DB        *gorm.DB
	Publisher hub.Publisher
}

func NewChatService(db *gorm.DB, publisher hub.Publisher) *ChatService {
	return &ChatService{DB: db, Publisher: publisher}
}

// Post menyimpan pesan lalu menyiarkannya. Persist dan fan-out sengaja tidak
// satu transaksi: pesan yang sudah tersimpan tidak di-rollback kalau broadcast
// gagal, viewer bisa mengejar lewat history.
func (s *ChatService) Post(customerID, tableID *uint, text string) (*models.ChatMessage, error) {
	message := strings.TrimSpace(text)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	chat := models.ChatMessage{
		CustomerID: customerID,
		TableID:    tableID,
		Message:    message,
	}
	if err := s.DB.Create(&chat).Error; err != nil {
		return nil, err
	}

	s.Publisher.Publish(hub.EventNewMessage, NewMessagePayload{
		ChatID:    chat.ID,
		TableID:   chat.TableID,
		Message:   chat.Message,
		CreatedAt: chat.CreatedAt,
	})

	return &chat, nil
}

// ListRecent -> history untuk big screen. Pesan yang dimoderasi tidak pernah
// ikut; urut id desc karena id dari store naik sesuai urutan insert.
func (s *ChatService) ListRecent(limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.DB.Where("deleted = ?", false).
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// ListAudit -> pembacaan moderasi, termasuk baris yang sudah di-soft-delete.
func (s *ChatService) ListAudit(limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.DB.Order("id DESC").Limit(limit).Find(&messages).Error
	return messages, err
}

// SoftDeleteOne membalik flag satu pesan lalu broadcast deleteMessage.
// Idempoten: pesan yang sudah terhapus (atau id tak dikenal) tetap sukses.
func (s *ChatService) SoftDeleteOne(id uint) error {
	err := s.DB.Model(&models.ChatMessage{}).
		Where("id = ?", id).
		Update("deleted", true).Error
	if err != nil {
		return err
	}

	s.Publisher.Publish(hub.EventDeleteMessage, DeleteMessagePayload{ChatID: id})
	return nil
}

// SoftDeleteAll menghapus semua pesan yang masih tampil dengan satu UPDATE dan
// satu event clearChat, bukan satu event per baris.
func (s *ChatService) SoftDeleteAll() error {
	err := s.DB.Model(&models.ChatMessage{}).
		Where("deleted = ?", false).
		Update("deleted", true).Error
	if err != nil {
		return err
	}

	s.Publisher.Publish(hub.EventClearChat, struct{}{})
	return nil
}
