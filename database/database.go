package database

import (
	"fmt"
	"time"

	config "github.com/anjiri1684/appointment_booking/configs"
	"github.com/anjiri1684/appointment_booking/models"
	"github.com/anjiri1684/appointment_booking/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to postgres or sqlite. Timestamps are generated in UTC so both
// drivers compare stored instants the same way.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}
	return db, nil
}

func ConnectDB(cfg *config.Settings) {
	db, err := Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		utils.GetLogger().Fatal("🔥 Failed to connect to database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	DB = db
	utils.GetLogger().Info("✅ Database connected successfully", zap.String("driver", cfg.DBDriver))
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.TimeSlot{},
		&models.Reservation{},
	)
}

// SeedAdmin creates the administrator account once. It is a no-op when no
// admin credentials are configured or the account already exists.
func SeedAdmin(db *gorm.DB, cfg *config.Settings) error {
	log := utils.GetLogger()
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int64
	err := db.Model(&models.User{}).
		Where("email = ? OR username = ?", cfg.AdminEmail, cfg.AdminUsername).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("check for admin user: %w", err)
	}
	if count > 0 {
		log.Info("Admin user already exists.")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	log.Info("✅ Admin user seeded successfully", zap.String("username", admin.Username))
	return nil
}
