package services

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/anjiri1684/appointment_booking/models"
	"github.com/anjiri1684/appointment_booking/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventType string

const (
	EventCreated   EventType = "reservation.created"
	EventUpdated   EventType = "reservation.updated"
	EventApproved  EventType = "reservation.approved"
	EventRejected  EventType = "reservation.rejected"
	EventCancelled EventType = "reservation.cancelled"
)

type ReservationEvent struct {
	Type        EventType           `json:"type"`
	Reservation *models.Reservation `json:"reservation"`
	At          time.Time           `json:"at"`
}

// ReservationListener is notified after a reservation change has committed.
type ReservationListener interface {
	ReservationChanged(ctx context.Context, ev ReservationEvent)
}

type ListenerFunc func(ctx context.Context, ev ReservationEvent)

func (f ListenerFunc) ReservationChanged(ctx context.Context, ev ReservationEvent) { f(ctx, ev) }

type ReservationFilter struct {
	Status    models.ReservationStatus
	ServiceID uuid.UUID
}

type ReservationService struct {
	db        *gorm.DB
	opts      Options
	listeners []ReservationListener
}

func NewReservationService(db *gorm.DB, opts Options, listeners ...ReservationListener) *ReservationService {
	return &ReservationService{db: db, opts: opts.withDefaults(), listeners: listeners}
}

func (s *ReservationService) Subscribe(l ReservationListener) {
	s.listeners = append(s.listeners, l)
}

// Book creates a pending reservation of slotID for the user. The slot row is
// locked for the duration of the check, and a unique violation on commit is
// reported as ErrSlotConflict.
func (s *ReservationService) Book(ctx context.Context, userID, serviceID, slotID uuid.UUID) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureService(tx, serviceID); err != nil {
			return err
		}
		slot, err := s.guardSlot(tx, serviceID, slotID, uuid.Nil)
		if err != nil {
			return err
		}
		reservation = models.Reservation{
			UserID:    userID,
			ServiceID: serviceID,
			SlotID:    &slot.ID,
			Status:    models.ReservationPending,
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		if IsConflict(err) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	utils.GetLogger().Info("reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("slot_id", slotID.String()))
	return s.publish(ctx, EventCreated, reservation.ID)
}

// Reschedule moves a pending reservation of the user to another slot of the
// same service.
func (s *ReservationService) Reschedule(ctx context.Context, userID, reservationID, slotID uuid.UUID) (*models.Reservation, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := lockReservation(tx, reservationID)
		if err != nil {
			return err
		}
		if r.UserID != userID {
			return ErrReservationNotFound
		}
		if r.Status != models.ReservationPending {
			return ErrInvalidTransition
		}
		if r.SlotID != nil && *r.SlotID == slotID {
			return nil
		}
		slot, err := s.guardSlot(tx, r.ServiceID, slotID, r.ID)
		if err != nil {
			return err
		}
		return tx.Model(&models.Reservation{}).Where("id = ?", r.ID).Update("slot_id", slot.ID).Error
	})
	if err != nil {
		if IsConflict(err) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}
	return s.publish(ctx, EventUpdated, reservationID)
}

// guardSlot enforces the booking rules for slotID and returns the locked slot.
// Violations come back as a FieldError on "slot".
func (s *ReservationService) guardSlot(tx *gorm.DB, serviceID, slotID, exclude uuid.UUID) (*models.TimeSlot, error) {
	if slotID == uuid.Nil {
		return nil, fieldErr("slot", "slot_required")
	}

	var slot models.TimeSlot
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&slot, "id = ?", slotID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fieldErr("slot", "slot_not_found")
		}
		return nil, err
	}

	switch {
	case slot.ServiceID != serviceID:
		return nil, fieldErr("slot", "slot_wrong_service")
	case !slot.IsActive:
		return nil, fieldErr("slot", "slot_inactive")
	case !slot.Start.After(s.opts.now()):
		return nil, fieldErr("slot", "slot_in_past")
	}

	q := tx.Model(&models.Reservation{}).
		Where("slot_id = ? AND status IN ?", slot.ID, models.BlockingStatuses)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	var taken int64
	if err := q.Count(&taken).Error; err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, fieldErr("slot", "slot_taken")
	}
	return &slot, nil
}

// Cancel lets the owner withdraw a pending or approved reservation.
func (s *ReservationService) Cancel(ctx context.Context, userID, reservationID uuid.UUID) (*models.Reservation, error) {
	return s.transition(ctx, reservationID, &userID, models.ReservationCancelled, EventCancelled,
		models.ReservationPending, models.ReservationApproved)
}

// Approve does not re-check the slot; the pending reservation already holds it.
func (s *ReservationService) Approve(ctx context.Context, reservationID uuid.UUID) (*models.Reservation, error) {
	return s.transition(ctx, reservationID, nil, models.ReservationApproved, EventApproved,
		models.ReservationPending)
}

func (s *ReservationService) Reject(ctx context.Context, reservationID uuid.UUID) (*models.Reservation, error) {
	return s.transition(ctx, reservationID, nil, models.ReservationRejected, EventRejected,
		models.ReservationPending)
}

func (s *ReservationService) transition(ctx context.Context, id uuid.UUID, owner *uuid.UUID,
	to models.ReservationStatus, ev EventType, from ...models.ReservationStatus) (*models.Reservation, error) {

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := lockReservation(tx, id)
		if err != nil {
			return err
		}
		if owner != nil && r.UserID != *owner {
			return ErrReservationNotFound
		}
		if !slices.Contains(from, r.Status) {
			return ErrInvalidTransition
		}

		updates := map[string]any{"status": to}
		if !to.Blocking() {
			r.Detach()
			updates["slot_id"] = nil
			updates["archived_start"] = r.ArchivedStart
			updates["archived_end"] = r.ArchivedEnd
			updates["archived_slot_id"] = r.ArchivedSlotID
		}
		return tx.Model(&models.Reservation{}).Where("id = ?", r.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("reservation status changed",
		zap.String("reservation_id", id.String()),
		zap.String("status", string(to)))
	return s.publish(ctx, ev, id)
}

func lockReservation(tx *gorm.DB, id uuid.UUID) (*models.Reservation, error) {
	var r models.Reservation
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&r, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if r.SlotID != nil {
		var slot models.TimeSlot
		if err := tx.First(&slot, "id = ?", *r.SlotID).Error; err != nil {
			return nil, err
		}
		r.Slot = &slot
	}
	return &r, nil
}

// publish reloads the reservation and hands it to every listener.
func (s *ReservationService) publish(ctx context.Context, typ EventType, id uuid.UUID) (*models.Reservation, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	ev := ReservationEvent{Type: typ, Reservation: r, At: s.opts.now()}
	for _, l := range s.listeners {
		l.ReservationChanged(ctx, ev)
	}
	return r, nil
}

func (s *ReservationService) load(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	var r models.Reservation
	err := s.db.WithContext(ctx).
		Preload("User").Preload("Service").Preload("Slot").
		First(&r, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &r, nil
}

// GetForUser returns a reservation only to its owner.
func (s *ReservationService) GetForUser(ctx context.Context, userID, id uuid.UUID) (*models.Reservation, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, ErrReservationNotFound
	}
	return r, nil
}

func (s *ReservationService) ListForUser(ctx context.Context, userID uuid.UUID, f ReservationFilter) ([]models.Reservation, error) {
	q := s.db.WithContext(ctx).
		Preload("Service").Preload("Slot").
		Where("user_id = ?", userID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ServiceID != uuid.Nil {
		q = q.Where("service_id = ?", f.ServiceID)
	}

	var out []models.Reservation
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll pages through every reservation, newest first.
func (s *ReservationService) ListAll(ctx context.Context, page, pageSize int) (utils.Page[models.Reservation], error) {
	page, pageSize, offset := utils.PageBounds(page, pageSize)
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Reservation{}).Count(&total).Error; err != nil {
		return utils.Page[models.Reservation]{}, err
	}

	var items []models.Reservation
	err := db.Preload("User").Preload("Service").Preload("Slot").
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return utils.Page[models.Reservation]{}, err
	}
	return utils.NewPage(items, page, pageSize, total), nil
}

// StartingBetween returns approved reservations whose slot starts in [from, to).
func (s *ReservationService) StartingBetween(ctx context.Context, from, to time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	err := s.db.WithContext(ctx).
		Preload("User").Preload("Service").Preload("Slot").
		Joins("JOIN time_slots ON time_slots.id = reservations.slot_id").
		Where("reservations.status = ?", models.ReservationApproved).
		Where("time_slots.start_at >= ? AND time_slots.start_at < ?", from.UTC(), to.UTC()).
		Find(&out).Error
	return out, err
}
