package compliance

import (
	"testing"
	"time"
)

var refDate = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	d := refDate.AddDate(0, 0, -n)
	return &d
}

func classify(t *testing.T, in Input) Assessment {
	t.Helper()

	a, err := Classify(in)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	return a
}

func TestClassify_ScheduledSuppressesOverdue(t *testing.T) {
	// Назначенный выезд подавляет просрочку даже при сильно превышенном интервале.
	a := classify(t, Input{
		ReferenceDate:      refDate,
		LastInspection:     daysAgo(200),
		VisitsPerYear:      4,
		HasPendingSchedule: true,
	})

	if a.Status != StatusScheduled {
		t.Errorf("expected scheduled, got %s", a.Status)
	}
	if a.DaysSinceLast != 200 {
		t.Errorf("expected days_since_last=200, got %d", a.DaysSinceLast)
	}
}

func TestClassify_ScheduledWithoutHistory(t *testing.T) {
	a := classify(t, Input{
		ReferenceDate:      refDate,
		LastInspection:     nil,
		VisitsPerYear:      4,
		HasPendingSchedule: true,
	})

	if a.Status != StatusScheduled {
		t.Errorf("expected scheduled, got %s", a.Status)
	}
	if !a.NeverInspected {
		t.Error("expected NeverInspected=true")
	}
}

func TestClassify_ExactlyAtInterval(t *testing.T) {
	// 91 день при интервале 91.25 — еще не просрочено.
	a := classify(t, Input{
		ReferenceDate:  refDate,
		LastInspection: daysAgo(91),
		VisitsPerYear:  4,
	})

	if a.Status == StatusOverdue {
		t.Errorf("91 days with interval 91.25 must not be overdue, got %s", a.Status)
	}
	// days_until_next = int(91.25 - 91) = 0 <= 14 — значит "скоро"
	if a.Status != StatusDueSoon {
		t.Errorf("expected due_soon, got %s", a.Status)
	}
	if a.DaysUntilNext != 0 {
		t.Errorf("expected days_until_next=0, got %d", a.DaysUntilNext)
	}
}

func TestClassify_Overdue(t *testing.T) {
	a := classify(t, Input{
		ReferenceDate:  refDate,
		LastInspection: daysAgo(100),
		VisitsPerYear:  4,
	})

	if a.Status != StatusOverdue {
		t.Fatalf("expected overdue, got %s", a.Status)
	}
	// 100 - int(365/4) = 100 - 91 = 9
	if a.DaysOverdue != 9 {
		t.Errorf("expected days_overdue=9, got %d", a.DaysOverdue)
	}
}

func TestClassify_NeverInspected(t *testing.T) {
	a := classify(t, Input{
		ReferenceDate: refDate,
		VisitsPerYear: 4,
	})

	if a.Status != StatusOverdue {
		t.Fatalf("expected overdue, got %s", a.Status)
	}
	if !a.NeverInspected {
		t.Error("expected NeverInspected=true")
	}
	if a.DaysOverdue != 0 {
		t.Errorf("days_overdue must stay 0 on the sentinel path, got %d", a.DaysOverdue)
	}
	if a.EffectiveDaysSinceLast() != NeverInspectedDaysSince {
		t.Errorf("expected sentinel %d, got %d", NeverInspectedDaysSince, a.EffectiveDaysSinceLast())
	}
	if a.EffectiveDaysUntilNext() != NeverInspectedDaysUntil {
		t.Errorf("expected sentinel %d, got %d", NeverInspectedDaysUntil, a.EffectiveDaysUntilNext())
	}
}

func TestClassify_OnTrack(t *testing.T) {
	a := classify(t, Input{
		ReferenceDate:  refDate,
		LastInspection: daysAgo(10),
		VisitsPerYear:  4,
	})

	if a.Status != StatusOnTrack {
		t.Errorf("expected on_track, got %s", a.Status)
	}
	if a.DaysUntilNext != 81 {
		t.Errorf("expected days_until_next=81, got %d", a.DaysUntilNext)
	}
}

func TestClassify_DueSoonThreshold(t *testing.T) {
	cases := []struct {
		name      string
		daysAgo   int
		threshold int
		want      Status
	}{
		{"due in 13 days within default threshold", 78, 0, StatusDueSoon},
		{"due in 21 days outside default threshold", 70, 0, StatusOnTrack},
		{"due in 21 days within custom threshold", 70, 30, StatusDueSoon},
		{"due in 5 days outside custom threshold", 86, 3, StatusOnTrack},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := classify(t, Input{
				ReferenceDate:    refDate,
				LastInspection:   daysAgo(tc.daysAgo),
				VisitsPerYear:    4,
				DueSoonThreshold: tc.threshold,
			})
			if a.Status != tc.want {
				t.Errorf("expected %s, got %s", tc.want, a.Status)
			}
		})
	}
}

func TestClassify_VisitsPerYearVariants(t *testing.T) {
	// Годовая частота 12 дает интервал ~30 дней.
	a := classify(t, Input{
		ReferenceDate:  refDate,
		LastInspection: daysAgo(35),
		VisitsPerYear:  12,
	})

	if a.Status != StatusOverdue {
		t.Fatalf("expected overdue with monthly cadence, got %s", a.Status)
	}
	if a.DaysOverdue != 5 {
		t.Errorf("expected days_overdue=5, got %d", a.DaysOverdue)
	}
}

func TestClassify_RejectsZeroCadence(t *testing.T) {
	_, err := Classify(Input{
		ReferenceDate: refDate,
		VisitsPerYear: 0,
	})

	if err == nil {
		t.Fatal("expected error for visits_per_year=0")
	}
}

func TestClassify_IgnoresTimeOfDay(t *testing.T) {
	last := time.Date(2024, 6, 5, 23, 55, 0, 0, time.UTC)
	a := classify(t, Input{
		ReferenceDate:  time.Date(2024, 6, 15, 0, 5, 0, 0, time.UTC),
		LastInspection: &last,
		VisitsPerYear:  4,
	})

	if a.DaysSinceLast != 10 {
		t.Errorf("day difference must use calendar dates, expected 10, got %d", a.DaysSinceLast)
	}
}
