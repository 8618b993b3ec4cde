package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationApproved  ReservationStatus = "approved"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationRejected  ReservationStatus = "rejected"
)

// BlockingStatuses hold their slot; a slot referenced by a reservation in one
// of these states is not bookable.
var BlockingStatuses = []ReservationStatus{ReservationPending, ReservationApproved}

var AllStatuses = []ReservationStatus{
	ReservationPending,
	ReservationApproved,
	ReservationCancelled,
	ReservationRejected,
}

func (s ReservationStatus) Valid() bool {
	for _, st := range AllStatuses {
		if st == s {
			return true
		}
	}
	return false
}

func (s ReservationStatus) Blocking() bool {
	return s == ReservationPending || s == ReservationApproved
}

type Reservation struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	ServiceID uuid.UUID         `gorm:"type:uuid;not null;index" json:"service_id"`
	SlotID    *uuid.UUID        `gorm:"type:uuid;uniqueIndex" json:"slot_id"`
	Status    ReservationStatus `gorm:"size:12;not null;default:'pending';index" json:"status"`

	// Timing of the detached slot, kept once the reservation leaves a blocking state.
	ArchivedStart  *time.Time `json:"archived_start,omitempty"`
	ArchivedEnd    *time.Time `json:"archived_end,omitempty"`
	ArchivedSlotID *uuid.UUID `gorm:"type:uuid" json:"archived_slot_id,omitempty"`

	User    *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
	Service *Service  `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"service,omitempty"`
	Slot    *TimeSlot `gorm:"foreignKey:SlotID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"slot,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = ReservationPending
	}
	return nil
}

// StartsAt returns the start of the held slot, or the archived start once detached.
func (r *Reservation) StartsAt() *time.Time {
	if r.Slot != nil {
		return &r.Slot.Start
	}
	return r.ArchivedStart
}

// Detach moves the slot timing onto the reservation and clears the slot reference.
func (r *Reservation) Detach() {
	if r.Slot != nil {
		start, end := r.Slot.Start, r.Slot.End
		r.ArchivedStart = &start
		r.ArchivedEnd = &end
	}
	if r.SlotID != nil {
		id := *r.SlotID
		r.ArchivedSlotID = &id
	}
	r.SlotID = nil
	r.Slot = nil
}
