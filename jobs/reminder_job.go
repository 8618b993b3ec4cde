package jobs

import (
	"context"
	"time"

	"github.com/anjiri1684/appointment_booking/metrics"
	"github.com/anjiri1684/appointment_booking/models"
	"github.com/anjiri1684/appointment_booking/utils"
	"go.uber.org/zap"
)

type upcomingFinder interface {
	StartingBetween(ctx context.Context, from, to time.Time) ([]models.Reservation, error)
}

type reminder interface {
	Remind(r *models.Reservation)
}

// ReminderJob emails customers whose approved appointment starts in about an
// hour. The 5 minute window matches the schedule, so each reservation is
// picked up once.
type ReminderJob struct {
	Reservations upcomingFinder
	Notifier     reminder
	Now          func() time.Time
}

func (j *ReminderJob) Run() {
	log := utils.GetLogger()
	log.Debug("Running job: SendReminders...")

	now := j.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	upcoming, err := j.Reservations.StartingBetween(ctx, lowerBound, upperBound)
	if err != nil {
		metrics.JobRuns.WithLabelValues("reminders", "error").Inc()
		log.Error("Error checking for upcoming reservations", zap.Error(err))
		return
	}

	for i := range upcoming {
		r := &upcoming[i]
		log.Info("Sending reminder", zap.String("reservation_id", r.ID.String()))
		j.Notifier.Remind(r)
		metrics.RemindersSent.Inc()
	}
	metrics.JobRuns.WithLabelValues("reminders", "ok").Inc()
}
