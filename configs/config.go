package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var loadEnvOnce sync.Once

func loadEnv() {
	loadEnvOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	})
}

func Config(key string) string {
	loadEnv()
	return os.Getenv(key)
}

func ConfigDefault(key, def string) string {
	if v := Config(key); v != "" {
		return v
	}
	return def
}

func ConfigInt(key string, def int) int {
	v := Config(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, v, def)
		return def
	}
	return i
}

// Settings is the typed view of the environment used to wire the application.
type Settings struct {
	Port     string
	Env      string
	Locale   string
	Location *time.Location

	OpenHour  int
	CloseHour int

	DBDriver    string
	DatabaseURL string

	JWTSecret string

	AdminUsername string
	AdminEmail    string
	AdminPassword string

	BrevoAPIKey     string
	EmailSender     string
	EmailSenderName string

	SlotRetentionDays int
	BookingRatePerMin int
}

func Load() (*Settings, error) {
	s := &Settings{
		Port:              ConfigDefault("APP_PORT", "8080"),
		Env:               ConfigDefault("APP_ENV", "development"),
		Locale:            ConfigDefault("APP_LOCALE", "pl"),
		OpenHour:          ConfigInt("BUSINESS_OPEN_HOUR", 9),
		CloseHour:         ConfigInt("BUSINESS_CLOSE_HOUR", 22),
		DBDriver:          ConfigDefault("DB_DRIVER", "postgres"),
		DatabaseURL:       Config("DATABASE_URL"),
		JWTSecret:         Config("JWT_SECRET"),
		AdminUsername:     ConfigDefault("ADMIN_USERNAME", "admin"),
		AdminEmail:        Config("ADMIN_EMAIL"),
		AdminPassword:     Config("ADMIN_PASSWORD"),
		BrevoAPIKey:       Config("BREVO_API_KEY"),
		EmailSender:       Config("EMAIL_SENDER"),
		EmailSenderName:   Config("EMAIL_SENDER_NAME"),
		SlotRetentionDays: ConfigInt("SLOT_RETENTION_DAYS", 30),
		BookingRatePerMin: ConfigInt("BOOKING_RATE_PER_MIN", 20),
	}

	tz := ConfigDefault("APP_TIMEZONE", "Europe/Warsaw")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", tz, err)
	}
	s.Location = loc

	if s.OpenHour < 0 || s.CloseHour > 24 || s.OpenHour >= s.CloseHour {
		return nil, fmt.Errorf("invalid business hours: %d-%d", s.OpenHour, s.CloseHour)
	}
	if s.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if s.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return s, nil
}

func (s *Settings) IsProduction() bool {
	return s.Env == "production"
}
