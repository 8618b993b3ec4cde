package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anjiri1684/appointment_booking/database"
	"github.com/anjiri1684/appointment_booking/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// fixedNow is 10:00 local time in Warsaw.
var fixedNow = time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:services_%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	db, err := database.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testOptions() Options {
	return Options{
		Location: time.UTC,
		Hours:    DefaultBusinessHours,
		Now:      func() time.Time { return fixedNow },
	}
}

func mustService(t *testing.T, db *gorm.DB, name string, minutes int) *models.Service {
	t.Helper()
	svc := &models.Service{Name: name, Description: name + " description", Price: 100, SlotDuration: minutes}
	if err := db.Create(svc).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	return svc
}

func mustSlot(t *testing.T, db *gorm.DB, svc *models.Service, start time.Time, active bool) *models.TimeSlot {
	t.Helper()
	slot := &models.TimeSlot{
		ServiceID: svc.ID,
		Start:     start,
		End:       start.Add(svc.SlotLength()),
		IsActive:  true,
	}
	if err := db.Create(slot).Error; err != nil {
		t.Fatalf("create slot: %v", err)
	}
	if !active {
		if err := db.Model(slot).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate slot: %v", err)
		}
		slot.IsActive = false
	}
	return slot
}

func mustUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     models.RoleCustomer,
		IsActive: true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func countReservations(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Reservation{}).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}

func fieldKey(err error) (string, string) {
	if fe, ok := err.(*FieldError); ok {
		return fe.Field, fe.Key
	}
	return "", ""
}

func ids(slots []models.TimeSlot) []uuid.UUID {
	out := make([]uuid.UUID, len(slots))
	for i, s := range slots {
		out[i] = s.ID
	}
	return out
}
