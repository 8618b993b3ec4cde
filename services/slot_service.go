package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/anjiri1684/appointment_booking/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type SlotService struct {
	db   *gorm.DB
	opts Options
}

func NewSlotService(db *gorm.DB, opts Options) *SlotService {
	return &SlotService{db: db, opts: opts.withDefaults()}
}

// SlotInput is the admin form for creating or editing a slot. GeneratedSlot is
// a candidate value "<start>|<end>".
type SlotInput struct {
	ServiceID     uuid.UUID `json:"service_id"`
	SlotDate      string    `json:"slot_date"`
	GeneratedSlot string    `json:"generated_slot"`
	IsActive      *bool     `json:"is_active"`
}

// FreeSlots lists active, upcoming slots of a service that no pending or
// approved reservation holds, earliest first.
func (s *SlotService) FreeSlots(ctx context.Context, serviceID uuid.UUID) ([]models.TimeSlot, error) {
	db := s.db.WithContext(ctx)
	if err := ensureService(db, serviceID); err != nil {
		return nil, err
	}

	var slots []models.TimeSlot
	err := db.
		Where("service_id = ? AND is_active = ? AND start_at >= ?", serviceID, true, s.opts.now()).
		Where("NOT EXISTS (SELECT 1 FROM reservations r WHERE r.slot_id = time_slots.id AND r.status IN ?)", models.BlockingStatuses).
		Order("start_at ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// Candidates proposes new slots for a service on a date given as YYYY-MM-DD,
// skipping anything that overlaps an existing active slot.
func (s *SlotService) Candidates(ctx context.Context, serviceID uuid.UUID, date string) ([]Candidate, error) {
	db := s.db.WithContext(ctx)

	var service models.Service
	if err := db.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), s.opts.Location)
	if err != nil {
		return nil, ErrInvalidDate
	}

	busy, err := s.busyIntervals(db, serviceID, day)
	if err != nil {
		return nil, err
	}

	generated := GenerateSlots(day, service.SlotLength(), s.opts.Hours, s.opts.Location)
	candidates := slices.Collect(FreeCandidates(generated, busy))
	if candidates == nil {
		candidates = []Candidate{}
	}
	return candidates, nil
}

func (s *SlotService) busyIntervals(db *gorm.DB, serviceID uuid.UUID, day time.Time) ([]Interval, error) {
	dayStart, dayEnd := s.opts.dayBounds(day)

	var existing []models.TimeSlot
	err := db.
		Where("service_id = ? AND is_active = ? AND start_at < ? AND end_at > ?", serviceID, true, dayEnd, dayStart).
		Find(&existing).Error
	if err != nil {
		return nil, err
	}

	busy := make([]Interval, 0, len(existing))
	for _, slot := range existing {
		if slot.Overlaps(dayStart, dayEnd) {
			busy = append(busy, Interval{Start: slot.Start, End: slot.End})
		}
	}
	return busy, nil
}

func (s *SlotService) List(ctx context.Context) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	err := s.db.WithContext(ctx).Preload("Service").Order("start_at ASC").Find(&slots).Error
	return slots, err
}

func (s *SlotService) Get(ctx context.Context, id uuid.UUID) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	if err := s.db.WithContext(ctx).Preload("Service").First(&slot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func (s *SlotService) Create(ctx context.Context, in SlotInput) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		start, end, err := s.validateSlotInput(tx, in, uuid.Nil)
		if err != nil {
			return err
		}
		slot = models.TimeSlot{
			ServiceID: in.ServiceID,
			Start:     start,
			End:       end,
			IsActive:  true,
		}
		if err := tx.Create(&slot).Error; err != nil {
			return err
		}
		// false is a zero value, so the column default wins on insert.
		if in.IsActive != nil && !*in.IsActive {
			slot.IsActive = false
			return tx.Model(&slot).Update("is_active", false).Error
		}
		return nil
	})
	if err != nil {
		if IsConflict(err) {
			return nil, fieldErr("generated_slot", "slot_exists")
		}
		return nil, err
	}
	return &slot, nil
}

func (s *SlotService) Update(ctx context.Context, id uuid.UUID, in SlotInput) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&slot, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return err
		}
		start, end, err := s.validateSlotInput(tx, in, id)
		if err != nil {
			return err
		}
		slot.ServiceID = in.ServiceID
		slot.Start = start
		slot.End = end
		if in.IsActive != nil {
			slot.IsActive = *in.IsActive
		}
		return tx.Model(&slot).Select("service_id", "start_at", "end_at", "is_active").Updates(&slot).Error
	})
	if err != nil {
		if IsConflict(err) {
			return nil, fieldErr("generated_slot", "slot_exists")
		}
		return nil, err
	}
	return &slot, nil
}

// Delete refuses while any reservation still points at the slot.
func (s *SlotService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Reservation{}).Where("slot_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSlotInUse
		}
		res := tx.Delete(&models.TimeSlot{}, "id = ?", id)
		if res.Error != nil {
			if isForeignKeyViolation(res.Error) {
				return ErrSlotInUse
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSlotNotFound
		}
		return nil
	})
}

// PurgeElapsed removes unreferenced slots that ended before cutoff.
func (s *SlotService) PurgeElapsed(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("end_at < ?", cutoff.UTC()).
		Where("NOT EXISTS (SELECT 1 FROM reservations r WHERE r.slot_id = time_slots.id)").
		Delete(&models.TimeSlot{})
	return res.RowsAffected, res.Error
}

func (s *SlotService) validateSlotInput(tx *gorm.DB, in SlotInput, self uuid.UUID) (time.Time, time.Time, error) {
	var zero time.Time
	if in.ServiceID == uuid.Nil {
		return zero, zero, fieldErr("service_id", "service_required")
	}
	if strings.TrimSpace(in.SlotDate) == "" {
		return zero, zero, fieldErr("slot_date", "date_required")
	}
	if strings.TrimSpace(in.GeneratedSlot) == "" {
		return zero, zero, fieldErr("generated_slot", "slot_required")
	}

	if err := ensureService(tx, in.ServiceID); err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			return zero, zero, fieldErr("service_id", "service_not_found")
		}
		return zero, zero, err
	}

	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(in.SlotDate), s.opts.Location)
	if err != nil {
		return zero, zero, fieldErr("slot_date", "date_invalid")
	}
	today, _ := s.opts.dayBounds(s.opts.now())
	if day.Before(today) {
		return zero, zero, fieldErr("slot_date", "date_in_past")
	}

	start, end, err := ParseSlotValue(in.GeneratedSlot)
	if err != nil {
		return zero, zero, fieldErr("generated_slot", "slot_format_invalid", err.Error())
	}
	if !end.After(start) {
		return zero, zero, fieldErr("generated_slot", "slot_end_before_start")
	}

	q := tx.Model(&models.TimeSlot{}).
		Where("service_id = ? AND start_at = ? AND end_at = ?", in.ServiceID, start, end)
	if self != uuid.Nil {
		q = q.Where("id <> ?", self)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return zero, zero, err
	}
	if count > 0 {
		return zero, zero, fieldErr("generated_slot", "slot_exists")
	}
	return start, end, nil
}

// ParseSlotValue splits a candidate value into its UTC start and end.
func ParseSlotValue(value string) (time.Time, time.Time, error) {
	var zero time.Time
	startStr, endStr, ok := strings.Cut(strings.TrimSpace(value), "|")
	if !ok || strings.Contains(endStr, "|") {
		return zero, zero, errors.New("expected <start>|<end>")
	}
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return zero, zero, err
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return zero, zero, err
	}
	return start.UTC(), end.UTC(), nil
}

func ensureService(db *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := db.Model(&models.Service{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrServiceNotFound
	}
	return nil
}
