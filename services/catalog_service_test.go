package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anjiri1684/appointment_booking/models"
	"github.com/google/uuid"
)

func TestCatalogSearch(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	mustService(t, db, "Haircut", 30)
	mustService(t, db, "Nails", 45)
	massage := &models.Service{Name: "Massage", Description: "Relaxing HAIR and scalp", Price: 50}
	if err := db.Create(massage).Error; err != nil {
		t.Fatal(err)
	}

	catalog := NewCatalogService(db)
	all, err := catalog.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Name != "Haircut" {
		t.Fatalf("list = %+v", all)
	}

	hits, err := catalog.List(ctx, "  hair ")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("search found %d services", len(hits))
	}
	if massage.SlotDuration != models.DefaultSlotDuration {
		t.Errorf("slot duration default = %d", massage.SlotDuration)
	}
}

func TestCatalogCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	catalog := NewCatalogService(db)

	svc, err := catalog.Create(ctx, ServiceInput{Name: " Haircut ", Price: 80})
	if err != nil {
		t.Fatal(err)
	}
	if svc.Name != "Haircut" || svc.SlotDuration != 30 {
		t.Fatalf("created = %+v", svc)
	}

	updated, err := catalog.Update(ctx, svc.ID, ServiceInput{Name: "Cut", Price: 0, SlotDuration: 60})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Price != 0 || updated.SlotDuration != 60 {
		t.Fatalf("updated = %+v", updated)
	}
	stored, err := catalog.Get(ctx, svc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Name != "Cut" || stored.Price != 0 {
		t.Errorf("stored = %+v", stored)
	}

	if _, err := catalog.Get(ctx, uuid.New()); !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("unknown: got %v", err)
	}
}

func TestCatalogDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	catalog := NewCatalogService(db)
	busy := mustService(t, db, "Haircut", 30)
	idle := mustService(t, db, "Nails", 30)
	user := mustUser(t, db, "anna")

	slot := mustSlot(t, db, busy, fixedNow.Add(24*time.Hour), true)
	r, err := NewReservationService(db, testOptions()).Book(ctx, user.ID, busy.ID, slot.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewReservationService(db, testOptions()).Cancel(ctx, user.ID, r.ID); err != nil {
		t.Fatal(err)
	}
	mustSlot(t, db, idle, fixedNow.Add(24*time.Hour), true)

	// A cancelled reservation still references the service.
	if err := catalog.Delete(ctx, busy.ID); !errors.Is(err, ErrServiceInUse) {
		t.Errorf("busy service: got %v", err)
	}
	if err := catalog.Delete(ctx, idle.ID); err != nil {
		t.Fatalf("idle service: %v", err)
	}
	var slots int64
	db.Model(&models.TimeSlot{}).Where("service_id = ?", idle.ID).Count(&slots)
	if slots != 0 {
		t.Errorf("%d slots left behind", slots)
	}
	if err := catalog.Delete(ctx, idle.ID); !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("deleted service: got %v", err)
	}
}
