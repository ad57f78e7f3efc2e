package model

import (
	"time"
)

// Appointment is one booked slot. The tuple (clinic_id, date, time) is unique
// among non-cancelled appointments; cancellation frees the slot without
// removing the row.
type Appointment struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ClinicID  string    `json:"clinic_id" bson:"clinic_id" validate:"required,mongodb"`
	UserID    string    `json:"user_id" bson:"user_id" validate:"required"`
	Date      string    `json:"date" bson:"date" validate:"required,calendar_date"`
	Time      string    `json:"time" bson:"time" validate:"required,clock_time"`
	Value     float64   `json:"value" bson:"value" validate:"gte=0"`
	Status    string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=500"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// BookingRequest is the transient input of the booking flow. One request may
// produce several appointments, one per selected time, persisted
// all-or-nothing.
type BookingRequest struct {
	ClinicID     string   `json:"clinic_id" validate:"required,mongodb"`
	UserID       string   `json:"user_id" validate:"required"`
	Date         string   `json:"date" validate:"required,calendar_date"`
	Times        []string `json:"times" validate:"required,min=1,max=48,dive,clock_time"`
	Notes        string   `json:"notes,omitempty" validate:"omitempty,max=500"`
	ValuePerSlot float64  `json:"value_per_slot" validate:"gte=0"`
}

// AppointmentFilters narrows an appointment listing. Zero values and "all"
// are no-ops for their dimension.
type AppointmentFilters struct {
	DateFrom string `json:"date_from,omitempty" validate:"omitempty,calendar_date"`
	DateTo   string `json:"date_to,omitempty" validate:"omitempty,calendar_date"`
	Period   string `json:"period,omitempty" validate:"omitempty,oneof=morning afternoon evening all"`
	Weekday  string `json:"weekday,omitempty" validate:"omitempty,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday all"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed all"`
	ClinicID string `json:"clinic_id,omitempty" validate:"omitempty,mongodb"`
}

// Stats is a per-status count over a filtered appointment set; never stored.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Cancelled int `json:"cancelled"`
	Completed int `json:"completed"`
}
