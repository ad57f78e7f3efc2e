package availability

import (
	"time"

	"salalivre/pkg/model"
)

const dateLayout = "2006-01-02"

// WeekdayOf derives the weekday name from a YYYY-MM-DD calendar date.
func WeekdayOf(date string) (string, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", err
	}
	return d.Weekday().String(), nil
}

// IsValidDate reports whether date is a well-formed YYYY-MM-DD calendar date.
func IsValidDate(date string) bool {
	_, err := time.Parse(dateLayout, date)
	return err == nil
}

// HasAny reports whether the clinic has at least one complete availability
// window. Clinics without one never take in-platform bookings; the storefront
// routes those visitors to the contact channel instead.
func HasAny(clinic *model.Clinic) bool {
	for _, w := range clinic.Availability {
		if w.Complete() {
			return true
		}
	}
	return false
}

// IsWithin reports whether (date, t) falls inside some window of the
// clinic's recurring weekly schedule. Slots are point times: a window
// [start, end) admits t when start <= t < end, by lexicographic comparison
// of HH:MM strings.
func IsWithin(clinic *model.Clinic, date, t string) (bool, error) {
	weekday, err := WeekdayOf(date)
	if err != nil {
		return false, err
	}

	for _, w := range clinic.Availability {
		if !w.Complete() || w.Weekday != weekday {
			continue
		}
		if w.Start <= t && t < w.End {
			return true, nil
		}
	}
	return false, nil
}
