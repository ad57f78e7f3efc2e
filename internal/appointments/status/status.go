package status

import (
	"fmt"

	appterrors "salalivre/internal/appointments/errors"
	"salalivre/pkg/config"
)

// legal maps each status to the set of statuses it may move to. Completed
// and cancelled are terminal: absent keys reject every transition.
var legal = map[string]map[string]bool{
	config.Pending: {
		config.Confirmed: true,
		config.Cancelled: true,
	},
	config.Confirmed: {
		config.Completed: true,
		config.Cancelled: true,
	},
}

// CanTransition reports whether from -> to is a legal lifecycle edge.
func CanTransition(from, to string) bool {
	return legal[from][to]
}

// Check returns a descriptive error when from -> to is not a legal edge.
func Check(from, to string) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", appterrors.ErrIllegalTransition, from, to)
	}
	return nil
}

// IsValid reports whether s names a known appointment status.
func IsValid(s string) bool {
	switch s {
	case config.Pending, config.Confirmed, config.Completed, config.Cancelled:
		return true
	}
	return false
}
