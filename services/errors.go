package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Error bisnis yang diterjemahkan controller ke status HTTP. Duplicate phone
// dan "sudah dapat poin hari ini" adalah outcome normal, bukan kegagalan.
var (
	ErrInvalidPhone        = errors.New("nomor HP harus 10 digit angka")
	ErrNameRequired        = errors.New("nama wajib diisi")
	ErrCustomerNotFound    = errors.New("nomor HP belum terdaftar")
	ErrPhoneTaken          = errors.New("nomor HP sudah terdaftar")
	ErrEmptyMessage        = errors.New("pesan tidak boleh kosong")
	ErrTableNotProvisioned = errors.New("meja belum terdaftar di sistem")
)

// isDuplicateKey mengenali pelanggaran unique constraint lintas driver
// (MySQL 1062, SQLite, dan terjemahan gorm).
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// isForeignKeyViolation mengenali pelanggaran referential constraint
// (ScanEvent menunjuk meja yang tidak ada).
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "a foreign key constraint fails") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed")
}
