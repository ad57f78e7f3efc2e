package query

import (
	"sort"

	"salalivre/internal/appointments/availability"
	"salalivre/pkg/config"
	"salalivre/pkg/model"
)

// Period bounds, inclusive start and exclusive end, on HH:MM strings.
// Evening runs to end of day.
var periodBounds = map[string][2]string{
	config.Morning:   {"06:00", "12:00"},
	config.Afternoon: {"12:00", "18:00"},
	config.Evening:   {"18:00", "23:60"},
}

// Apply filters and orders an appointment set in memory. Status and clinic
// filters are pushed down to the store; the date-range, period and weekday
// dimensions are cheap to evaluate here because the owner-scoped result sets
// are small.
func Apply(appointments []*model.Appointment, filters *model.AppointmentFilters) []*model.Appointment {
	out := make([]*model.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if matches(a, filters) {
			out = append(out, a)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})

	return out
}

func matches(a *model.Appointment, filters *model.AppointmentFilters) bool {
	if filters == nil {
		return true
	}

	if filters.DateFrom != "" && a.Date < filters.DateFrom {
		return false
	}
	if filters.DateTo != "" && a.Date > filters.DateTo {
		return false
	}

	if filters.Period != "" && filters.Period != config.All {
		bounds, ok := periodBounds[filters.Period]
		if !ok {
			return false
		}
		if a.Time < bounds[0] || a.Time >= bounds[1] {
			return false
		}
	}

	if filters.Weekday != "" && filters.Weekday != config.All {
		weekday, err := availability.WeekdayOf(a.Date)
		if err != nil || weekday != filters.Weekday {
			return false
		}
	}

	return true
}

// Summarize counts a result set per status in one pass.
func Summarize(appointments []*model.Appointment) model.Stats {
	stats := model.Stats{Total: len(appointments)}
	for _, a := range appointments {
		switch a.Status {
		case config.Pending:
			stats.Pending++
		case config.Confirmed:
			stats.Confirmed++
		case config.Cancelled:
			stats.Cancelled++
		case config.Completed:
			stats.Completed++
		}
	}
	return stats
}
