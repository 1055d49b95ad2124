package services

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/warinth/barlink-backend/models"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// NormalizePhone trim input lalu validasi format 10 digit. Dipanggil sebelum
// query apapun supaya input rusak tidak pernah menyentuh database.
func NormalizePhone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	if !phonePattern.MatchString(phone) {
		return "", ErrInvalidPhone
	}
	return phone, nil
}

// ParseTableID mengubah label meja menjadi id numerik (> 0). Label non-angka
// seperti "VIP-A" sah untuk display tapi tidak menghasilkan id.
func ParseTableID(label string) *uint {
	trimmed := strings.TrimSpace(label)
	n, err := strconv.Atoi(trimmed)
	if err != nil || n <= 0 {
		return nil
	}
	id := uint(n)
	return &id
}

type IdentityService struct {
	DB *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{DB: db}
}

// ResolveByPhone -> mencari customer berdasarkan nomor HP
func (s *IdentityService) ResolveByPhone(rawPhone string) (*models.Customer, error) {
	phone, err := NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}

	var customer models.Customer
	if err := s.DB.Where("phone_number = ?", phone).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// Create -> registrasi customer baru. Pre-check duplikat memberi pesan ramah,
// tapi unique index pada phone_number yang menutup race check-vs-insert:
// pelanggaran constraint dari insert juga dipetakan ke ErrPhoneTaken.
func (s *IdentityService) Create(rawPhone, rawName string) (*models.Customer, error) {
	phone, err := NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(rawName)
	if name == "" {
		return nil, ErrNameRequired
	}

	var existing models.Customer
	err = s.DB.Where("phone_number = ?", phone).First(&existing).Error
	if err == nil {
		return nil, ErrPhoneTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer := models.Customer{Name: name, PhoneNumber: phone}
	if err := s.DB.Create(&customer).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}
	return &customer, nil
}

// RecordScan menulis ScanEvent untuk meja bernomor. Meja yang belum
// di-provision terdeteksi lewat FK violation, bukan pre-check.
func (s *IdentityService) RecordScan(customerID, tableID uint) error {
	event := models.ScanEvent{
		CustomerID: customerID,
		TableID:    tableID,
		ScanTime:   time.Now(),
	}
	if err := s.DB.Create(&event).Error; err != nil {
		if isForeignKeyViolation(err) {
			return ErrTableNotProvisioned
		}
		return err
	}
	return nil
}
