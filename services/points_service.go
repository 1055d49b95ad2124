package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/warinth/barlink-backend/models"
)

// errAlreadyAwarded hanya dipakai internal untuk membatalkan transaksi award
// tanpa menganggapnya kegagalan.
var errAlreadyAwarded = errors.New("already awarded today")

type PointsService struct {
	DB  *gorm.DB
	Loc *time.Location

	// Now bisa diganti di test untuk mengontrol pergantian hari.
	Now func() time.Time
}

func NewPointsService(db *gorm.DB, loc *time.Location) *PointsService {
	return &PointsService{DB: db, Loc: loc, Now: time.Now}
}

func (s *PointsService) today() string {
	return s.Now().In(s.Loc).Format("2006-01-02")
}

// EnsureAccount -> upsert idempoten: buat akun poin bersaldo nol kalau belum
// ada. Aman dipanggil di setiap check-in.
func (s *PointsService) EnsureAccount(customerID uint) error {
	account := models.PointsAccount{CustomerID: customerID}
	return s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&account).Error
}

// AwardIfFirstToday memberi tepat satu poin per hari kalender. Insert ke
// points log dengan unique index (customer, tanggal) adalah titik serialisasi:
// dari N request bersamaan hanya satu yang menang insert dan menaikkan total.
// Kalah karena duplicate key = sudah dapat poin hari ini, bukan error.
func (s *PointsService) AwardIfFirstToday(customerID uint, tableID *uint) (bool, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		entry := models.PointsLogEntry{
			CustomerID: customerID,
			AwardDate:  s.today(),
			TableID:    tableID,
			Points:     1,
		}
		if err := tx.Create(&entry).Error; err != nil {
			if isDuplicateKey(err) {
				return errAlreadyAwarded
			}
			return err
		}

		return tx.Model(&models.PointsAccount{}).
			Where("customer_id = ?", customerID).
			UpdateColumn("total", gorm.Expr("total + ?", 1)).Error
	})

	if errors.Is(err, errAlreadyAwarded) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// TotalPoints saldo berjalan; customer tanpa akun dianggap nol.
func (s *PointsService) TotalPoints(customerID uint) (int64, error) {
	var account models.PointsAccount
	err := s.DB.First(&account, "customer_id = ?", customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return account.Total, nil
}

// AwardedToday untuk landing page: apakah customer sudah check-in hari ini.
func (s *PointsService) AwardedToday(customerID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.PointsLogEntry{}).
		Where("customer_id = ? AND award_date = ?", customerID, s.today()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
