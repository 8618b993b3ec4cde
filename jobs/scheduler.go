package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
)

const (
	ReminderSchedule  = "*/5 * * * *"
	SlotPurgeSchedule = "0 3 * * *"
)

// NewScheduler registers the background jobs on a cron running in loc.
func NewScheduler(loc *time.Location, reminders *ReminderJob, purge *SlotPurgeJob) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddJob(ReminderSchedule, reminders); err != nil {
		return nil, err
	}
	if _, err := c.AddJob(SlotPurgeSchedule, purge); err != nil {
		return nil, err
	}
	return c, nil
}
