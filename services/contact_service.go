package services

import (
	"time"

	"gorm.io/gorm"
)

// Contact adalah data kontak tamu untuk tooling moderator.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type ContactService struct {
	DB  *gorm.DB
	Loc *time.Location

	Now func() time.Time
}

func NewContactService(db *gorm.DB, loc *time.Location) *ContactService {
	return &ContactService{DB: db, Loc: loc, Now: time.Now}
}

// LatestContactsByTable mengembalikan tamu yang paling baru scan meja tersebut
// dalam hari berjalan (batas tengah malam timezone venue), terbaru dulu.
func (s *ContactService) LatestContactsByTable(tableNo uint, limit int) ([]Contact, error) {
	now := s.Now().In(s.Loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.Loc)
	end := start.Add(24 * time.Hour)

	var contacts []Contact
	err := s.DB.Table("scan_events").
		Select("customers.name AS name, customers.phone_number AS phone").
		Joins("JOIN customers ON customers.id = scan_events.customer_id").
		Where("scan_events.table_id = ? AND scan_events.scan_time >= ? AND scan_events.scan_time < ?",
			tableNo, start, end).
		Order("scan_events.scan_time DESC").
		Limit(limit).
		Scan(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}
