package model

// AvailabilityWindow is one recurring weekday interval [Start, End) during
// which a clinic accepts bookings. Overlapping windows simply widen
// availability.
type AvailabilityWindow struct {
	Weekday string `json:"weekday" bson:"weekday" validate:"required,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	Start   string `json:"start" bson:"start" validate:"required,clock_time"`
	End     string `json:"end" bson:"end" validate:"required,clock_time,gtfield=Start"`
}

// Complete reports whether the window carries all three fields. The clinic
// directory stores partially filled windows while an owner is still editing;
// those never make a clinic bookable.
func (w AvailabilityWindow) Complete() bool {
	return w.Weekday != "" && w.Start != "" && w.End != ""
}

// Clinic is the read-only record supplied by the clinic directory. This
// service never mutates clinics.
type Clinic struct {
	ID             string               `json:"id" bson:"_id"`
	OwnerID        string               `json:"owner_id" bson:"owner_id"`
	PricePerSlot   float64              `json:"price_per_slot" bson:"price_per_slot"`
	Availability   []AvailabilityWindow `json:"availability" bson:"availability"`
	AcceptsBooking bool                 `json:"accepts_booking" bson:"accepts_booking"`
}
