package services

import (
	"slices"
	"testing"
	"time"
)

func TestGenerateSlotsThirtyMinutes(t *testing.T) {
	day := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	got := slices.Collect(GenerateSlots(day, 30*time.Minute, DefaultBusinessHours, time.UTC))

	if len(got) != 26 {
		t.Fatalf("expected 26 slots, got %d", len(got))
	}
	if want := time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC); !got[0].Start.Equal(want) {
		t.Errorf("first slot starts at %v, want %v", got[0].Start, want)
	}
	if want := time.Date(2026, 11, 2, 22, 0, 0, 0, time.UTC); !got[len(got)-1].End.Equal(want) {
		t.Errorf("last slot ends at %v, want %v", got[len(got)-1].End, want)
	}
	for i, s := range got {
		if s.End.Sub(s.Start) != 30*time.Minute {
			t.Errorf("slot %d has length %v", i, s.End.Sub(s.Start))
		}
		if i > 0 {
			if !got[i-1].End.Equal(s.Start) {
				t.Errorf("slot %d does not start where slot %d ends", i, i-1)
			}
			if got[i-1].Overlaps(s) {
				t.Errorf("slots %d and %d overlap", i-1, i)
			}
		}
	}
}

func TestGenerateSlotsDropsPartialInterval(t *testing.T) {
	day := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	got := slices.Collect(GenerateSlots(day, 45*time.Minute, DefaultBusinessHours, time.UTC))

	// 13 hours hold 17 full 45 minute intervals.
	if len(got) != 17 {
		t.Fatalf("expected 17 slots, got %d", len(got))
	}
	closing := time.Date(2026, 11, 2, 22, 0, 0, 0, time.UTC)
	if got[len(got)-1].End.After(closing) {
		t.Errorf("last slot ends after closing: %v", got[len(got)-1].End)
	}
}

func TestGenerateSlotsNonPositiveDuration(t *testing.T) {
	day := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	for _, d := range []time.Duration{0, -30 * time.Minute} {
		if n := len(slices.Collect(GenerateSlots(day, d, DefaultBusinessHours, time.UTC))); n != 0 {
			t.Errorf("duration %v produced %d slots", d, n)
		}
	}
}

func TestGenerateSlotsIsRestartableAndStoppable(t *testing.T) {
	day := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	seq := GenerateSlots(day, time.Hour, DefaultBusinessHours, time.UTC)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if len(first) != 13 || len(second) != 13 {
		t.Fatalf("expected 13 slots twice, got %d and %d", len(first), len(second))
	}

	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("early stop yielded %d", n)
	}
}

func TestGenerateSlotsUsesLocation(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	day := time.Date(2026, 11, 2, 0, 0, 0, 0, warsaw)
	got := slices.Collect(GenerateSlots(day, 30*time.Minute, DefaultBusinessHours, warsaw))
	if want := time.Date(2026, 11, 2, 8, 0, 0, 0, time.UTC); !got[0].Start.Equal(want) {
		t.Errorf("first slot = %v, want %v", got[0].Start.UTC(), want)
	}
	if got[0].Start.Format("15:04") != "09:00" {
		t.Errorf("first slot should be 09:00 local, got %s", got[0].Start.Format("15:04"))
	}
}

func TestFreeCandidatesExcludesOverlaps(t *testing.T) {
	day := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	busy := []Interval{{
		Start: time.Date(2026, 11, 2, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 11, 2, 10, 30, 0, 0, time.UTC),
	}}

	got := slices.Collect(FreeCandidates(GenerateSlots(day, 30*time.Minute, DefaultBusinessHours, time.UTC), busy))
	if len(got) != 25 {
		t.Fatalf("expected 25 candidates, got %d", len(got))
	}
	for _, c := range got {
		if c.Label == "10:00 - 10:30" {
			t.Fatal("10:00 - 10:30 should be excluded")
		}
	}
	if got[0].Label != "09:00 - 09:30" {
		t.Errorf("first label = %q", got[0].Label)
	}
	if want := "2026-11-02T09:00:00Z|2026-11-02T09:30:00Z"; got[0].Value != want {
		t.Errorf("first value = %q, want %q", got[0].Value, want)
	}
}

func TestFreeCandidatesPartialOverlap(t *testing.T) {
	day := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	// A 45 minute slot from 10:00 blocks both 10:00 and 10:30 half hours.
	busy := []Interval{{
		Start: time.Date(2026, 11, 2, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 11, 2, 10, 45, 0, 0, time.UTC),
	}}
	got := slices.Collect(FreeCandidates(GenerateSlots(day, 30*time.Minute, DefaultBusinessHours, time.UTC), busy))
	if len(got) != 24 {
		t.Fatalf("expected 24 candidates, got %d", len(got))
	}
}

func TestIntervalOverlapsIsHalfOpen(t *testing.T) {
	base := time.Date(2026, 11, 2, 10, 0, 0, 0, time.UTC)
	a := Interval{Start: base, End: base.Add(30 * time.Minute)}
	touching := Interval{Start: base.Add(30 * time.Minute), End: base.Add(time.Hour)}
	inner := Interval{Start: base.Add(10 * time.Minute), End: base.Add(20 * time.Minute)}

	if a.Overlaps(touching) || touching.Overlaps(a) {
		t.Error("touching intervals must not overlap")
	}
	if !a.Overlaps(inner) || !inner.Overlaps(a) {
		t.Error("nested intervals must overlap")
	}
}

func TestParseSlotValue(t *testing.T) {
	start, end, err := ParseSlotValue("2026-11-02T10:00:00+01:00|2026-11-02T10:30:00+01:00")
	if err != nil {
		t.Fatal(err)
	}
	if !start.Equal(time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC)) || end.Sub(start) != 30*time.Minute {
		t.Errorf("got %v - %v", start, end)
	}

	for _, bad := range []string{"", "2026-11-02T10:00:00Z", "a|b", "2026-11-02T10:00:00Z|x|y"} {
		if _, _, err := ParseSlotValue(bad); err == nil {
			t.Errorf("ParseSlotValue(%q) should fail", bad)
		}
	}
}
