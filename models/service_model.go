package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultSlotDuration = 30

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:numeric(8,2);not null" json:"price"`
	// Length of a single slot in minutes.
	SlotDuration int `gorm:"not null;default:30" json:"slot_duration"`

	Slots []TimeSlot `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.SlotDuration == 0 {
		s.SlotDuration = DefaultSlotDuration
	}
	return nil
}

func (s *Service) SlotLength() time.Duration {
	return time.Duration(s.SlotDuration) * time.Minute
}
