package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	config "github.com/anjiri1684/appointment_booking/configs"
	"github.com/anjiri1684/appointment_booking/database"
	"github.com/anjiri1684/appointment_booking/handlers"
	"github.com/anjiri1684/appointment_booking/jobs"
	"github.com/anjiri1684/appointment_booking/metrics"
	"github.com/anjiri1684/appointment_booking/notifications"
	"github.com/anjiri1684/appointment_booking/routes"
	"github.com/anjiri1684/appointment_booking/services"
	"github.com/anjiri1684/appointment_booking/utils"
	"github.com/anjiri1684/appointment_booking/websocket"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("🔥 Invalid configuration: %v", err)
	}

	utils.InitializeLogger(cfg.IsProduction())
	logger := utils.GetLogger()
	defer logger.Sync()

	database.ConnectDB(cfg)
	if err := database.Migrate(database.DB); err != nil {
		logger.Fatal("🔥 Failed to migrate database", zap.Error(err))
	}
	logger.Info("✅ Database migration successful")
	if err := database.SeedAdmin(database.DB, cfg); err != nil {
		logger.Fatal("🔥 Failed to seed admin user", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	// Keep the interface nil when email is not configured.
	var mailer notifications.Mailer
	if m := notifications.NewEmailService(cfg); m != nil {
		mailer = m
	}
	notifier := notifications.NewReservationNotifier(mailer, hub, cfg.Locale, cfg.Location)

	opts := services.Options{
		Location: cfg.Location,
		Hours:    services.BusinessHours{Open: cfg.OpenHour, Close: cfg.CloseHour},
	}
	slots := services.NewSlotService(database.DB, opts)
	reservations := services.NewReservationService(database.DB, opts, notifier, metrics.ReservationRecorder{})

	h := &handlers.Handler{
		Users:        services.NewUserService(database.DB),
		Catalog:      services.NewCatalogService(database.DB),
		Slots:        slots,
		Reservations: reservations,
		Dashboard:    services.NewDashboardService(database.DB, opts, cfg.Locale),
		Hub:          hub,
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     72 * time.Hour,
		Lang:         cfg.Locale,
		Location:     cfg.Location,
	}

	scheduler, err := jobs.NewScheduler(cfg.Location,
		&jobs.ReminderJob{Reservations: reservations, Notifier: notifier, Now: time.Now},
		&jobs.SlotPurgeJob{Slots: slots, Retention: time.Duration(cfg.SlotRetentionDays) * 24 * time.Hour, Now: time.Now},
	)
	if err != nil {
		logger.Fatal("🔥 Failed to schedule jobs", zap.Error(err))
	}
	scheduler.Start()
	logger.Info("✅ Cron jobs scheduled successfully.")

	app := routes.NewApp(h, routes.AppConfig{
		Timezone:          cfg.Location.String(),
		BookingRatePerMin: cfg.BookingRatePerMin,
		AccessLog:         true,
	})

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("✅ Server is running", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("🔥 Server failed to start", zap.Error(err))
	}

	<-scheduler.Stop().Done()
	logger.Info("Server stopped")
}
