package validator

import (
	"strings"
	"testing"

	"salalivre/pkg/logger"
	"salalivre/pkg/model"
)

func newTestValidator(t *testing.T) *BookingValidator {
	t.Helper()
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewBookingValidator(log)
}

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		ClinicID:     "64f1a2b3c4d5e6f7a8b9c0d1",
		UserID:       "user-1",
		Date:         "2026-09-07",
		Times:        []string{"09:00", "10:00"},
		ValuePerSlot: 150,
	}
}

func TestValidateRequest_Valid(t *testing.T) {
	v := newTestValidator(t)
	if err := v.ValidateRequest(validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRequest_Invalid(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name     string
		mutate   func(req *model.BookingRequest)
		wantPart string
	}{
		{
			name:     "missing clinic id",
			mutate:   func(r *model.BookingRequest) { r.ClinicID = "" },
			wantPart: "ClinicID",
		},
		{
			name:     "clinic id is not an object id",
			mutate:   func(r *model.BookingRequest) { r.ClinicID = "clinic-1" },
			wantPart: "ObjectID",
		},
		{
			name:     "missing user",
			mutate:   func(r *model.BookingRequest) { r.UserID = "" },
			wantPart: "UserID",
		},
		{
			name:     "bad date",
			mutate:   func(r *model.BookingRequest) { r.Date = "2026-02-30" },
			wantPart: "Date",
		},
		{
			name:     "unpadded time",
			mutate:   func(r *model.BookingRequest) { r.Times = []string{"9:00"} },
			wantPart: "HH:MM",
		},
		{
			name:     "out of range time",
			mutate:   func(r *model.BookingRequest) { r.Times = []string{"24:00"} },
			wantPart: "HH:MM",
		},
		{
			name:     "empty times",
			mutate:   func(r *model.BookingRequest) { r.Times = nil },
			wantPart: "Times",
		},
		{
			name:     "negative value",
			mutate:   func(r *model.BookingRequest) { r.ValuePerSlot = -10 },
			wantPart: "negative",
		},
		{
			name: "notes too long",
			mutate: func(r *model.BookingRequest) {
				r.Notes = strings.Repeat("x", 501)
			},
			wantPart: "Notes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			err := v.ValidateRequest(req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantPart) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantPart)
			}
		})
	}
}

func TestValidateFilters(t *testing.T) {
	v := newTestValidator(t)

	if err := v.ValidateFilters(&model.AppointmentFilters{}); err != nil {
		t.Errorf("empty filters should be valid: %v", err)
	}

	ok := &model.AppointmentFilters{
		DateFrom: "2026-09-01",
		DateTo:   "2026-09-30",
		Period:   "morning",
		Weekday:  "Monday",
		Status:   "pending",
	}
	if err := v.ValidateFilters(ok); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := v.ValidateFilters(&model.AppointmentFilters{Period: "night"}); err == nil {
		t.Error("expected error for unknown period")
	}
	if err := v.ValidateFilters(&model.AppointmentFilters{Weekday: "monday"}); err == nil {
		t.Error("expected error for lowercase weekday")
	}
	if err := v.ValidateFilters(&model.AppointmentFilters{Status: "archived"}); err == nil {
		t.Error("expected error for unknown status")
	}

	inverted := &model.AppointmentFilters{
		DateFrom: "2026-09-30",
		DateTo:   "2026-09-01",
	}
	err := v.ValidateFilters(inverted)
	if err == nil {
		t.Fatal("expected error for inverted date range")
	}
	if !strings.Contains(err.Error(), "date_to") {
		t.Errorf("error %q does not point at the range", err.Error())
	}
}

func TestValidateAppointment(t *testing.T) {
	v := newTestValidator(t)

	a := &model.Appointment{
		ClinicID: "64f1a2b3c4d5e6f7a8b9c0d1",
		UserID:   "user-1",
		Date:     "2026-09-07",
		Time:     "09:00",
		Value:    150,
		Status:   "pending",
	}
	if err := v.ValidateAppointment(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a.Status = "done"
	if err := v.ValidateAppointment(a); err == nil {
		t.Error("expected error for unknown status")
	}
}
