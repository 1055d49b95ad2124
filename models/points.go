package models

import "time"

// PointsAccount menyimpan total poin berjalan per customer. Satu baris per
// customer, dibuat lazily saat check-in pertama.
type PointsAccount struct {
	CustomerID uint      `gorm:"primaryKey" json:"customer_id"`
	Customer   Customer  `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Total      int64     `gorm:"not null;default:0" json:"total"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// PointsLogEntry adalah bukti award harian. Unique index (customer, tanggal)
// adalah satu-satunya serialisasi untuk "satu poin per hari", bukan lock di
// aplikasi.
type PointsLogEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;uniqueIndex:idx_points_log_day" json:"customer_id"`
	AwardDate  string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_points_log_day" json:"award_date"`
	TableID    *uint     `gorm:"index" json:"table_id,omitempty"`
	Points     int       `gorm:"not null;default:1" json:"points"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
