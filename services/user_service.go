package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anjiri1684/appointment_booking/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type RegisterInput struct {
	Username        string `json:"username" validate:"required,min=3,max=150,username"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a customer account. Duplicate usernames or emails are
// reported as field errors.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Password != in.PasswordConfirm {
		return nil, fieldErr("password_confirm", "password_mismatch")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fieldErr("email", "email_taken")
		}
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fieldErr("username", "username_taken")
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user = models.User{
			Username: username,
			Email:    email,
			Password: string(hashedPassword),
			Role:     models.RoleCustomer,
			IsActive: true,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		if IsConflict(err) {
			return nil, fieldErr("username", "username_taken")
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate checks a username (or email) and password pair.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	login = strings.TrimSpace(login)
	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, strings.ToLower(login)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

var ErrUserNotFound = errors.New("user not found")

type ProfileInput struct {
	Email           *string `json:"email" validate:"omitempty,email"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     *string `json:"new_password" validate:"omitempty,min=8"`
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the email and/or password. A new password requires the
// current one.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != user.Email {
			var count int64
			if err := s.db.WithContext(ctx).Model(&models.User{}).
				Where("email = ? AND id <> ?", email, id).Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, fieldErr("email", "email_taken")
			}
			updates["email"] = email
		}
	}
	if in.NewPassword != nil {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
			return nil, fieldErr("current_password", "invalid_credentials")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hashed)
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		if IsConflict(err) {
			return nil, fieldErr("email", "email_taken")
		}
		return nil, err
	}
	return s.Get(ctx, id)
}
