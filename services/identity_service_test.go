package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/warinth/barlink-backend/models"
)

func setupIdentityDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Table{}, &models.Customer{}, &models.ScanEvent{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestNormalizePhone(t *testing.T) {
	phone, err := NormalizePhone("  0891234567 ")
	assert.NoError(t, err)
	assert.Equal(t, "0891234567", phone)

	for _, bad := range []string{"", "08912345", "089123456789", "08912345ab", "089-123456"} {
		_, err := NormalizePhone(bad)
		assert.ErrorIs(t, err, ErrInvalidPhone, "input %q", bad)
	}
}

// Input rusak harus gagal sebelum menyentuh store: service dengan DB nil
// akan panic kalau sempat query.
func TestInvalidPhoneSkipsStore(t *testing.T) {
	svc := NewIdentityService(nil)

	_, err := svc.ResolveByPhone("not-a-phone")
	assert.ErrorIs(t, err, ErrInvalidPhone)

	_, err = svc.Create("not-a-phone", "Nok")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestParseTableID(t *testing.T) {
	id := ParseTableID("12")
	assert.NotNil(t, id)
	assert.Equal(t, uint(12), *id)

	assert.Nil(t, ParseTableID("VIP-A"))
	assert.Nil(t, ParseTableID("0"))
	assert.Nil(t, ParseTableID("-3"))
	assert.Nil(t, ParseTableID(""))
}

func TestRegisterThenLoginFlow(t *testing.T) {
	db := setupIdentityDB(t)
	svc := NewIdentityService(db)

	// Login sebelum daftar -> NotFound
	_, err := svc.ResolveByPhone("0891234567")
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	// Registrasi
	created, err := svc.Create("0891234567", "Nok")
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)

	// Login setelah daftar -> customer yang sama
	found, err := svc.ResolveByPhone("0891234567")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Nok", found.Name)
}

func TestCreateDuplicatePhone(t *testing.T) {
	db := setupIdentityDB(t)
	svc := NewIdentityService(db)

	_, err := svc.Create("0812345678", "Somchai")
	assert.NoError(t, err)

	_, err = svc.Create("0812345678", "Somsak")
	assert.ErrorIs(t, err, ErrPhoneTaken)
}

func TestCreateEmptyName(t *testing.T) {
	svc := NewIdentityService(nil)
	_, err := svc.Create("0812345678", "   ")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestRecordScan(t *testing.T) {
	db := setupIdentityDB(t)
	svc := NewIdentityService(db)

	db.Create(&models.Table{ID: 12, Label: "12"})
	customer, err := svc.Create("0899999999", "Lek")
	assert.NoError(t, err)

	// Meja terdaftar -> event tersimpan
	assert.NoError(t, svc.RecordScan(customer.ID, 12))

	var count int64
	db.Model(&models.ScanEvent{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// Meja tak dikenal -> ReferentialError yang ramah, bukan error generik
	err = svc.RecordScan(customer.ID, 99)
	assert.ErrorIs(t, err, ErrTableNotProvisioned)
}
