package models

import "time"

// ChatMessage adalah pesan untuk big screen. Tidak pernah dihapus fisik;
// moderasi hanya membalik flag Deleted supaya audit tetap bisa membaca baris.
type ChatMessage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID *uint     `gorm:"index" json:"customer_id,omitempty"`
	TableID    *uint     `gorm:"index" json:"table_id,omitempty"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	Deleted    bool      `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
