package services

import "time"

// Options carries the calendar settings shared by the services.
type Options struct {
	Location *time.Location
	Hours    BusinessHours
	Now      func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Hours == (BusinessHours{}) {
		o.Hours = DefaultBusinessHours
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

func (o Options) now() time.Time {
	return o.Now().UTC()
}

// dayBounds returns the UTC instants delimiting the local calendar day of t.
func (o Options) dayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(o.Location)
	y, m, d := local.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, o.Location)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}
