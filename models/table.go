package models

import "time"

// Table adalah meja fisik yang sudah di-provision lebih dulu.
// Backend tidak pernah membuat meja dari alur check-in; FK pada ScanEvent
// yang memastikan id meja valid.
type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Label     string    `gorm:"type:varchar(50);not null" json:"label"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
