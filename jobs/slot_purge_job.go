package jobs

import (
	"context"
	"time"

	"github.com/anjiri1684/appointment_booking/metrics"
	"github.com/anjiri1684/appointment_booking/utils"
	"go.uber.org/zap"
)

type slotPurger interface {
	PurgeElapsed(ctx context.Context, cutoff time.Time) (int64, error)
}

// SlotPurgeJob deletes slots that ended more than Retention ago and that no
// reservation references.
type SlotPurgeJob struct {
	Slots     slotPurger
	Retention time.Duration
	Now       func() time.Time
}

func (j *SlotPurgeJob) Run() {
	log := utils.GetLogger()
	log.Debug("Running job: PurgeElapsedSlots...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	n, err := j.Slots.PurgeElapsed(ctx, j.Now().Add(-j.Retention))
	if err != nil {
		metrics.JobRuns.WithLabelValues("slot_purge", "error").Inc()
		log.Error("Error purging elapsed slots", zap.Error(err))
		return
	}

	metrics.SlotsPurged.Add(float64(n))
	metrics.JobRuns.WithLabelValues("slot_purge", "ok").Inc()
	if n > 0 {
		log.Info("Purged elapsed slots", zap.Int64("count", n))
	}
}
