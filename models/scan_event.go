package models

import "time"

// ScanEvent mencatat setiap check-in yang berhasil pada meja bernomor.
// Append-only; dipakai untuk contact lookup "siapa yang terakhir duduk di meja T hari ini".
type ScanEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	Customer   Customer  `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	TableID    uint      `gorm:"not null;index" json:"table_id"`
	Table      Table     `gorm:"foreignKey:TableID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ScanTime   time.Time `gorm:"not null;index" json:"scan_time"`
}
