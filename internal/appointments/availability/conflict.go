package availability

import "salalivre/pkg/model"

// Partition splits candidate times into free and taken given the existing
// appointments for one (clinic_id, date). Callers must pass a freshly read
// existing set and hold the slot lock until the subsequent insert; the
// partition itself is pure.
//
// Cancelled appointments must be filtered out by the caller's read: a
// cancelled row frees its slot.
func Partition(candidates []string, existing []*model.Appointment) (free, taken []string) {
	occupied := make(map[string]struct{}, len(existing))
	for _, a := range existing {
		occupied[a.Time] = struct{}{}
	}

	for _, t := range candidates {
		if _, ok := occupied[t]; ok {
			taken = append(taken, t)
		} else {
			free = append(free, t)
		}
	}
	return free, taken
}
