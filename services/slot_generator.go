package services

import (
	"iter"
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses the half-open rule, so touching intervals do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Candidate is a generated slot proposal offered to administrators.
type Candidate struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Value string    `json:"value"`
	Label string    `json:"label"`
}

// BusinessHours bounds the generator to [Open, Close) full hours of a day.
type BusinessHours struct {
	Open  int
	Close int
}

var DefaultBusinessHours = BusinessHours{Open: 9, Close: 22}

// GenerateSlots yields consecutive intervals of the given length from opening
// until the last one that still ends by closing time. A trailing partial
// interval is dropped and a non-positive duration yields nothing.
func GenerateSlots(day time.Time, duration time.Duration, hours BusinessHours, loc *time.Location) iter.Seq[Interval] {
	return func(yield func(Interval) bool) {
		if duration <= 0 {
			return
		}
		if loc == nil {
			loc = time.UTC
		}
		y, m, d := day.Date()
		open := time.Date(y, m, d, hours.Open, 0, 0, 0, loc)
		closing := time.Date(y, m, d, hours.Close, 0, 0, 0, loc)
		for cur := open; !cur.Add(duration).After(closing); cur = cur.Add(duration) {
			if !yield(Interval{Start: cur, End: cur.Add(duration)}) {
				return
			}
		}
	}
}

// FreeCandidates drops generated intervals that overlap any busy interval.
func FreeCandidates(slots iter.Seq[Interval], busy []Interval) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for s := range slots {
			if overlapsAny(s, busy) {
				continue
			}
			if !yield(newCandidate(s)) {
				return
			}
		}
	}
}

func overlapsAny(s Interval, busy []Interval) bool {
	for _, b := range busy {
		if s.Overlaps(b) {
			return true
		}
	}
	return false
}

func newCandidate(s Interval) Candidate {
	return Candidate{
		Start: s.Start,
		End:   s.End,
		Value: s.Start.Format(time.RFC3339) + "|" + s.End.Format(time.RFC3339),
		Label: s.Start.Format("15:04") + " - " + s.End.Format("15:04"),
	}
}
