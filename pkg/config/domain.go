package config

// Appointment lifecycle statuses. Pending is the initial status of every
// appointment created through the booking flow; Completed and Cancelled are
// terminal.
const (
	Pending   = "pending"
	Confirmed = "confirmed"
	Completed = "completed"
	Cancelled = "cancelled"
)

// All is the no-op value accepted by the status, weekday and period filters.
const All = "all"

type Weekday = string

const (
	Sunday    Weekday = "Sunday"
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
)

// Time-of-day periods used by the appointment list filter.
const (
	Morning   = "morning"
	Afternoon = "afternoon"
	Evening   = "evening"
)

func Statuses() []string {
	return []string{Pending, Confirmed, Completed, Cancelled}
}

func IsTerminalStatus(status string) bool {
	return status == Completed || status == Cancelled
}
