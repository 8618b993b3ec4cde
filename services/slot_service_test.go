package services

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/anjiri1684/appointment_booking/models"
	"github.com/google/uuid"
)

func TestCandidatesExcludeExistingSlot(t *testing.T) {
	db := newTestDB(t)
	svc := mustService(t, db, "Haircut", 30)
	mustSlot(t, db, svc, time.Date(2026, 11, 2, 10, 0, 0, 0, time.UTC), true)
	// Inactive and other-day slots do not block anything.
	mustSlot(t, db, svc, time.Date(2026, 11, 2, 12, 0, 0, 0, time.UTC), false)
	mustSlot(t, db, svc, time.Date(2026, 11, 3, 9, 0, 0, 0, time.UTC), true)

	slots := NewSlotService(db, testOptions())
	got, err := slots.Candidates(context.Background(), svc.ID, "2026-11-02")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 25 {
		t.Fatalf("expected 25 candidates, got %d", len(got))
	}
	for _, c := range got {
		if c.Label == "10:00 - 10:30" {
			t.Fatal("occupied 10:00 - 10:30 offered again")
		}
	}
	if !slices.ContainsFunc(got, func(c Candidate) bool { return c.Label == "12:00 - 12:30" }) {
		t.Error("inactive slot should not block its interval")
	}
}

func TestCandidatesErrors(t *testing.T) {
	db := newTestDB(t)
	svc := mustService(t, db, "Massage", 60)
	slots := NewSlotService(db, testOptions())

	if _, err := slots.Candidates(context.Background(), uuid.New(), "2026-11-02"); !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("unknown service: got %v", err)
	}
	if _, err := slots.Candidates(context.Background(), svc.ID, "02.11.2026"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("malformed date: got %v", err)
	}
	got, err := slots.Candidates(context.Background(), svc.ID, "2026-11-02")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 13 {
		t.Errorf("expected 13 hourly candidates, got %d", len(got))
	}
}

func TestFreeSlots(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := mustService(t, db, "Haircut", 30)
	other := mustService(t, db, "Nails", 30)
	user := mustUser(t, db, "anna")

	past := mustSlot(t, db, svc, fixedNow.Add(-2*time.Hour), true)
	later := mustSlot(t, db, svc, fixedNow.Add(48*time.Hour), true)
	soon := mustSlot(t, db, svc, fixedNow.Add(24*time.Hour), true)
	mustSlot(t, db, svc, fixedNow.Add(26*time.Hour), false)
	held := mustSlot(t, db, svc, fixedNow.Add(30*time.Hour), true)
	mustSlot(t, db, other, fixedNow.Add(24*time.Hour), true)

	opts := testOptions()
	reservations := NewReservationService(db, opts)
	r, err := reservations.Book(ctx, user.ID, svc.ID, held.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reservations.Approve(ctx, r.ID); err != nil {
		t.Fatal(err)
	}

	slots := NewSlotService(db, opts)
	got, err := slots.FreeSlots(ctx, svc.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := []uuid.UUID{soon.ID, later.ID}
	if !slices.Equal(ids(got), want) {
		t.Fatalf("free slots = %v, want %v", ids(got), want)
	}
	if slices.Contains(ids(got), past.ID) {
		t.Error("past slot offered")
	}

	if _, err := reservations.Cancel(ctx, user.ID, r.ID); err != nil {
		t.Fatal(err)
	}
	got, err = slots.FreeSlots(ctx, svc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(ids(got), held.ID) {
		t.Error("cancelled reservation should free its slot")
	}

	if _, err := slots.FreeSlots(ctx, uuid.New()); !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("unknown service: got %v", err)
	}
}

func TestFreeSlotsEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := mustService(t, db, "Haircut", 30)
	got, err := NewSlotService(db, testOptions()).FreeSlots(context.Background(), svc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no slots, got %d", len(got))
	}
}

func TestCreateSlotValidation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := mustService(t, db, "Haircut", 30)
	slots := NewSlotService(db, testOptions())

	value := "2026-11-02T10:00:00Z|2026-11-02T10:30:00Z"
	created, err := slots.Create(ctx, SlotInput{ServiceID: svc.ID, SlotDate: "2026-11-02", GeneratedSlot: value})
	if err != nil {
		t.Fatal(err)
	}
	if !created.IsActive {
		t.Error("slot should default to active")
	}

	inactive := false
	tests := []struct {
		name  string
		in    SlotInput
		field string
		key   string
	}{
		{"missing service", SlotInput{SlotDate: "2026-11-02", GeneratedSlot: value}, "service_id", "service_required"},
		{"missing date", SlotInput{ServiceID: svc.ID, GeneratedSlot: value}, "slot_date", "date_required"},
		{"missing slot", SlotInput{ServiceID: svc.ID, SlotDate: "2026-11-02"}, "generated_slot", "slot_required"},
		{"unknown service", SlotInput{ServiceID: uuid.New(), SlotDate: "2026-11-02", GeneratedSlot: value}, "service_id", "service_not_found"},
		{"past date", SlotInput{ServiceID: svc.ID, SlotDate: "2026-10-15", GeneratedSlot: value}, "slot_date", "date_in_past"},
		{"bad format", SlotInput{ServiceID: svc.ID, SlotDate: "2026-11-02", GeneratedSlot: "tomorrow"}, "generated_slot", "slot_format_invalid"},
		{"end before start", SlotInput{ServiceID: svc.ID, SlotDate: "2026-11-02", GeneratedSlot: "2026-11-02T11:00:00Z|2026-11-02T10:30:00Z"}, "generated_slot", "slot_end_before_start"},
		{"duplicate", SlotInput{ServiceID: svc.ID, SlotDate: "2026-11-02", GeneratedSlot: value, IsActive: &inactive}, "generated_slot", "slot_exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := slots.Create(ctx, tt.in)
			field, key := fieldKey(err)
			if field != tt.field || key != tt.key {
				t.Fatalf("got %v, want %s/%s", err, tt.field, tt.key)
			}
		})
	}

	// Today is allowed.
	if _, err := slots.Create(ctx, SlotInput{ServiceID: svc.ID, SlotDate: "2026-10-16", GeneratedSlot: "2026-10-16T12:00:00Z|2026-10-16T12:30:00Z", IsActive: &inactive}); err != nil {
		t.Fatalf("slot for today: %v", err)
	}
	var stored models.TimeSlot
	if err := db.First(&stored, "start_at = ?", time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)).Error; err != nil {
		t.Fatal(err)
	}
	if stored.IsActive {
		t.Error("explicit is_active=false was not stored")
	}
}

func TestUpdateSlotAllowsItsOwnWindow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := mustService(t, db, "Haircut", 30)
	slot := mustSlot(t, db, svc, time.Date(2026, 11, 2, 10, 0, 0, 0, time.UTC), true)
	mustSlot(t, db, svc, time.Date(2026, 11, 2, 11, 0, 0, 0, time.UTC), true)
	slots := NewSlotService(db, testOptions())

	inactive := false
	updated, err := slots.Update(ctx, slot.ID, SlotInput{
		ServiceID:     svc.ID,
		SlotDate:      "2026-11-02",
		GeneratedSlot: "2026-11-02T10:00:00Z|2026-11-02T10:30:00Z",
		IsActive:      &inactive,
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.IsActive {
		t.Error("slot should be deactivated")
	}

	_, err = slots.Update(ctx, slot.ID, SlotInput{
		ServiceID:     svc.ID,
		SlotDate:      "2026-11-02",
		GeneratedSlot: "2026-11-02T11:00:00Z|2026-11-02T11:30:00Z",
	})
	if _, key := fieldKey(err); key != "slot_exists" {
		t.Fatalf("moving onto another slot: got %v", err)
	}

	if _, err := slots.Update(ctx, uuid.New(), SlotInput{}); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("unknown slot: got %v", err)
	}
}

func TestDeleteSlot(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := mustService(t, db, "Haircut", 30)
	user := mustUser(t, db, "anna")
	free := mustSlot(t, db, svc, fixedNow.Add(24*time.Hour), true)
	held := mustSlot(t, db, svc, fixedNow.Add(25*time.Hour), true)

	if _, err := NewReservationService(db, testOptions()).Book(ctx, user.ID, svc.ID, held.ID); err != nil {
		t.Fatal(err)
	}

	slots := NewSlotService(db, testOptions())
	if err := slots.Delete(ctx, held.ID); !errors.Is(err, ErrSlotInUse) {
		t.Errorf("held slot: got %v", err)
	}
	if err := slots.Delete(ctx, free.ID); err != nil {
		t.Errorf("free slot: %v", err)
	}
	if err := slots.Delete(ctx, free.ID); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("deleted slot: got %v", err)
	}
}

func TestPurgeElapsed(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := mustService(t, db, "Haircut", 30)
	user := mustUser(t, db, "anna")

	mustSlot(t, db, svc, fixedNow.AddDate(0, 0, -40), true)
	recent := mustSlot(t, db, svc, fixedNow.AddDate(0, 0, -5), true)
	oldHeld := mustSlot(t, db, svc, fixedNow.AddDate(0, 0, -41), true)
	r := models.Reservation{UserID: user.ID, ServiceID: svc.ID, SlotID: &oldHeld.ID, Status: models.ReservationApproved}
	if err := db.Create(&r).Error; err != nil {
		t.Fatal(err)
	}

	n, err := NewSlotService(db, testOptions()).PurgeElapsed(ctx, fixedNow.AddDate(0, 0, -30))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("purged %d slots, want 1", n)
	}
	var left []models.TimeSlot
	if err := db.Order("start_at").Find(&left).Error; err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(ids(left), []uuid.UUID{oldHeld.ID, recent.ID}) {
		t.Fatalf("remaining = %v", ids(left))
	}
}
