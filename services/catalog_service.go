package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anjiri1684/appointment_booking/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceInput struct {
	Name         string  `json:"name" validate:"required,max=120"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" validate:"gte=0"`
	SlotDuration int     `json:"slot_duration" validate:"omitempty,min=5,max=780"`
}

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// List returns services ordered by name, optionally filtered by a
// case-insensitive match on name or description.
func (s *CatalogService) List(ctx context.Context, query string) ([]models.Service, error) {
	q := s.db.WithContext(ctx).Order("name ASC")
	if term := strings.TrimSpace(query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	var out []models.Service
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var svc models.Service
	if err := s.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &svc, nil
}

func (s *CatalogService) Create(ctx context.Context, in ServiceInput) (*models.Service, error) {
	svc := models.Service{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        in.Price,
		SlotDuration: in.SlotDuration,
	}
	if err := s.db.WithContext(ctx).Create(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, in ServiceInput) (*models.Service, error) {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	svc.Name = strings.TrimSpace(in.Name)
	svc.Description = in.Description
	svc.Price = in.Price
	if in.SlotDuration > 0 {
		svc.SlotDuration = in.SlotDuration
	}
	err = s.db.WithContext(ctx).Model(svc).
		Select("name", "description", "price", "slot_duration").
		Updates(svc).Error
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// Delete removes a service and its slots unless any reservation refers to it.
func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureService(tx, id); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.Reservation{}).Where("service_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrServiceInUse
		}
		if err := tx.Delete(&models.TimeSlot{}, "service_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Service{}, "id = ?", id).Error; err != nil {
			if isForeignKeyViolation(err) {
				return ErrServiceInUse
			}
			return err
		}
		return nil
	})
}
