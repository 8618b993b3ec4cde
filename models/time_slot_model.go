package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSlotRange = errors.New("slot end must be after start")

// TimeSlot is a bookable interval of a service. Start and End are kept in UTC;
// the (service, start, end) triple is unique.
type TimeSlot struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_time_slots_window,priority:1" json:"service_id"`
	Start     time.Time `gorm:"column:start_at;not null;index;uniqueIndex:idx_time_slots_window,priority:2" json:"start"`
	End       time.Time `gorm:"column:end_at;not null;uniqueIndex:idx_time_slots_window,priority:3" json:"end"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (s *TimeSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *TimeSlot) BeforeSave(tx *gorm.DB) error {
	if s.Start.IsZero() || s.End.IsZero() || !s.End.After(s.Start) {
		return ErrSlotRange
	}
	s.Start = s.Start.UTC()
	s.End = s.End.UTC()
	return nil
}

func (s *TimeSlot) Overlaps(start, end time.Time) bool {
	return s.Start.Before(end) && start.Before(s.End)
}
