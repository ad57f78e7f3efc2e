package query

import (
	"testing"

	"salalivre/pkg/config"
	"salalivre/pkg/model"
)

func appt(date, timeOfDay, status string) *model.Appointment {
	return &model.Appointment{
		ClinicID: "64f1a2b3c4d5e6f7a8b9c0d1",
		UserID:   "user-1",
		Date:     date,
		Time:     timeOfDay,
		Status:   status,
	}
}

// 2026-09-07 Monday, 2026-09-08 Tuesday, 2026-09-12 Saturday.
func sampleSet() []*model.Appointment {
	return []*model.Appointment{
		appt("2026-09-08", "14:00", config.Confirmed),
		appt("2026-09-07", "19:30", config.Pending),
		appt("2026-09-07", "09:00", config.Pending),
		appt("2026-09-12", "08:00", config.Cancelled),
		appt("2026-09-08", "11:30", config.Completed),
	}
}

func TestApply_OrdersByDateThenTime(t *testing.T) {
	got := Apply(sampleSet(), nil)

	want := [][2]string{
		{"2026-09-07", "09:00"},
		{"2026-09-07", "19:30"},
		{"2026-09-08", "11:30"},
		{"2026-09-08", "14:00"},
		{"2026-09-12", "08:00"},
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d appointments, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Date != w[0] || got[i].Time != w[1] {
			t.Errorf("position %d: got (%s %s), want (%s %s)",
				i, got[i].Date, got[i].Time, w[0], w[1])
		}
	}
}

func TestApply_DateRange(t *testing.T) {
	got := Apply(sampleSet(), &model.AppointmentFilters{
		DateFrom: "2026-09-08",
		DateTo:   "2026-09-08",
	})

	if len(got) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(got))
	}
	for _, a := range got {
		if a.Date != "2026-09-08" {
			t.Errorf("unexpected date %s", a.Date)
		}
	}
}

func TestApply_PeriodBounds(t *testing.T) {
	set := []*model.Appointment{
		appt("2026-09-07", "05:59", config.Pending),
		appt("2026-09-07", "06:00", config.Pending),
		appt("2026-09-07", "11:59", config.Pending),
		appt("2026-09-07", "12:00", config.Pending),
		appt("2026-09-07", "17:59", config.Pending),
		appt("2026-09-07", "18:00", config.Pending),
		appt("2026-09-07", "23:59", config.Pending),
	}

	tests := []struct {
		period string
		want   []string
	}{
		{config.Morning, []string{"06:00", "11:59"}},
		{config.Afternoon, []string{"12:00", "17:59"}},
		{config.Evening, []string{"18:00", "23:59"}},
		{config.All, []string{"05:59", "06:00", "11:59", "12:00", "17:59", "18:00", "23:59"}},
	}

	for _, tt := range tests {
		got := Apply(set, &model.AppointmentFilters{Period: tt.period})
		if len(got) != len(tt.want) {
			t.Errorf("period %s: expected %d results, got %d", tt.period, len(tt.want), len(got))
			continue
		}
		for i, w := range tt.want {
			if got[i].Time != w {
				t.Errorf("period %s position %d: got %s, want %s", tt.period, i, got[i].Time, w)
			}
		}
	}
}

func TestApply_Weekday(t *testing.T) {
	got := Apply(sampleSet(), &model.AppointmentFilters{Weekday: "Monday"})
	if len(got) != 2 {
		t.Fatalf("expected 2 Monday appointments, got %d", len(got))
	}
	for _, a := range got {
		if a.Date != "2026-09-07" {
			t.Errorf("unexpected date %s for Monday filter", a.Date)
		}
	}

	if got := Apply(sampleSet(), &model.AppointmentFilters{Weekday: config.All}); len(got) != 5 {
		t.Errorf("weekday all: expected 5 results, got %d", len(got))
	}
}

func TestApply_CombinedFilters(t *testing.T) {
	got := Apply(sampleSet(), &model.AppointmentFilters{
		DateFrom: "2026-09-07",
		DateTo:   "2026-09-08",
		Period:   config.Morning,
	})

	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Time != "09:00" || got[1].Time != "11:30" {
		t.Errorf("unexpected times %s, %s", got[0].Time, got[1].Time)
	}
}

func TestSummarize(t *testing.T) {
	stats := Summarize(sampleSet())

	if stats.Total != 5 {
		t.Errorf("total = %d, want 5", stats.Total)
	}
	if stats.Pending != 2 || stats.Confirmed != 1 || stats.Cancelled != 1 || stats.Completed != 1 {
		t.Errorf("unexpected breakdown: %+v", stats)
	}
	if sum := stats.Pending + stats.Confirmed + stats.Cancelled + stats.Completed; sum != stats.Total {
		t.Errorf("per-status counts sum to %d, total is %d", sum, stats.Total)
	}

	empty := Summarize(nil)
	if empty.Total != 0 {
		t.Errorf("empty set total = %d", empty.Total)
	}
}
