package http

import (
	"net/http"

	"salalivre/pkg/model"
)

// PrincipalHeader carries the opaque user id resolved by the identity
// gateway in front of this service.
const PrincipalHeader = "X-User-ID"

func ExtractPrincipal(r *http.Request) string {
	return r.Header.Get(PrincipalHeader)
}

// ExtractFilters reads the appointment list filters from the query string.
// Validation of the individual values happens in the validator layer, not
// here.
func ExtractFilters(r *http.Request) *model.AppointmentFilters {
	query := r.URL.Query()

	return &model.AppointmentFilters{
		DateFrom: query.Get("date_from"),
		DateTo:   query.Get("date_to"),
		Period:   query.Get("period"),
		Weekday:  query.Get("weekday"),
		Status:   query.Get("status"),
		ClinicID: query.Get("clinic_id"),
	}
}
