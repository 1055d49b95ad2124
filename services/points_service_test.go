package services

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/warinth/barlink-backend/models"
)

func setupPointsDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.PointsAccount{}, &models.PointsLogEntry{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB) *models.Customer {
	customer := models.Customer{Name: "Nok", PhoneNumber: "0891234567"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatal(err)
	}
	return &customer
}

func TestEnsureAccountIdempotent(t *testing.T) {
	db := setupPointsDB(t)
	customer := seedCustomer(t, db)
	svc := NewPointsService(db, time.UTC)

	assert.NoError(t, svc.EnsureAccount(customer.ID))
	assert.NoError(t, svc.EnsureAccount(customer.ID))

	var count int64
	db.Model(&models.PointsAccount{}).Count(&count)
	assert.Equal(t, int64(1), count)

	total, err := svc.TotalPoints(customer.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestAwardIfFirstTodayRepeatedCalls(t *testing.T) {
	db := setupPointsDB(t)
	customer := seedCustomer(t, db)
	svc := NewPointsService(db, time.UTC)
	assert.NoError(t, svc.EnsureAccount(customer.ID))

	awardedCount := 0
	for i := 0; i < 10; i++ {
		awarded, err := svc.AwardIfFirstToday(customer.ID, nil)
		assert.NoError(t, err)
		if awarded {
			awardedCount++
		}
	}

	assert.Equal(t, 1, awardedCount)
	total, err := svc.TotalPoints(customer.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

// Unique index (customer, tanggal) adalah titik serialisasi: dari N request
// paralel tepat satu yang menang insert.
func TestAwardIfFirstTodayConcurrent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "points.db") + "?_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.PointsAccount{}, &models.PointsLogEntry{}); err != nil {
		t.Fatal(err)
	}

	customer := seedCustomer(t, db)
	svc := NewPointsService(db, time.UTC)
	assert.NoError(t, svc.EnsureAccount(customer.ID))

	const n = 8
	results := make(chan bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			awarded, err := svc.AwardIfFirstToday(customer.ID, nil)
			assert.NoError(t, err)
			results <- awarded
		}()
	}
	wg.Wait()
	close(results)

	awardedCount := 0
	for awarded := range results {
		if awarded {
			awardedCount++
		}
	}
	assert.Equal(t, 1, awardedCount)

	total, err := svc.TotalPoints(customer.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestAwardAcrossTwoDays(t *testing.T) {
	db := setupPointsDB(t)
	customer := seedCustomer(t, db)
	svc := NewPointsService(db, time.UTC)
	assert.NoError(t, svc.EnsureAccount(customer.ID))

	day1 := time.Date(2025, 10, 1, 21, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	svc.Now = func() time.Time { return day1 }
	awarded, err := svc.AwardIfFirstToday(customer.ID, nil)
	assert.NoError(t, err)
	assert.True(t, awarded)

	awardedAgain, err := svc.AwardedToday(customer.ID)
	assert.NoError(t, err)
	assert.True(t, awardedAgain)

	svc.Now = func() time.Time { return day2 }
	awarded, err = svc.AwardIfFirstToday(customer.ID, nil)
	assert.NoError(t, err)
	assert.True(t, awarded)

	total, err := svc.TotalPoints(customer.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestAwardRecordsTableID(t *testing.T) {
	db := setupPointsDB(t)
	customer := seedCustomer(t, db)
	svc := NewPointsService(db, time.UTC)
	assert.NoError(t, svc.EnsureAccount(customer.ID))

	tableID := uint(5)
	awarded, err := svc.AwardIfFirstToday(customer.ID, &tableID)
	assert.NoError(t, err)
	assert.True(t, awarded)

	var entry models.PointsLogEntry
	assert.NoError(t, db.First(&entry, "customer_id = ?", customer.ID).Error)
	if assert.NotNil(t, entry.TableID) {
		assert.Equal(t, uint(5), *entry.TableID)
	}
}
