package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/warinth/barlink-backend/models"
)

// InitDB membuka koneksi MySQL dari environment variables.
func InitDB() (*gorm.DB, error) {
	user := Getenv("DB_USER", "root")
	pass := Getenv("DB_PASS", "")
	host := Getenv("DB_HOST", "127.0.0.1")
	port := Getenv("DB_PORT", "3306")
	name := Getenv("DB_NAME", "barlink")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, name)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate menyiapkan skema termasuk unique index untuk nomor HP dan
// pasangan (customer, tanggal) pada points log.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Table{},
		&models.Customer{},
		&models.ScanEvent{},
		&models.PointsAccount{},
		&models.PointsLogEntry{},
		&models.ChatMessage{},
	)
}
