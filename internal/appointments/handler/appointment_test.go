package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "salalivre/pkg/errors"
	httputil "salalivre/pkg/http"
	"salalivre/pkg/logger"
	"salalivre/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Mock service for testing
type mockAppointmentService struct {
	createBookingFunc    func(ctx context.Context, req *model.BookingRequest) ([]*model.Appointment, error)
	listAppointmentsFunc func(ctx context.Context, principalID string, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	updateStatusFunc     func(ctx context.Context, appointmentID, newStatus, actorID string) (*model.Appointment, error)
}

func (m *mockAppointmentService) CreateBooking(ctx context.Context, req *model.BookingRequest) ([]*model.Appointment, error) {
	if m.createBookingFunc != nil {
		return m.createBookingFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockAppointmentService) ListAppointments(ctx context.Context, principalID string, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	if m.listAppointmentsFunc != nil {
		return m.listAppointmentsFunc(ctx, principalID, filters)
	}
	return []*model.Appointment{}, nil
}

func (m *mockAppointmentService) UpdateStatus(ctx context.Context, appointmentID, newStatus, actorID string) (*model.Appointment, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, appointmentID, newStatus, actorID)
	}
	return nil, nil
}

func (m *mockAppointmentService) Summarize(appointments []*model.Appointment) model.Stats {
	return model.Stats{Total: len(appointments)}
}

func newTestRouter(svc *mockAppointmentService) *httprouter.Router {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})

	router := httprouter.New()
	NewAppointmentHandler(svc, log).RegisterRoutes(router)
	return router
}

func TestCreateBooking_PrincipalOverridesBody(t *testing.T) {
	var gotUserID string
	svc := &mockAppointmentService{
		createBookingFunc: func(ctx context.Context, req *model.BookingRequest) ([]*model.Appointment, error) {
			gotUserID = req.UserID
			return []*model.Appointment{
				{ClinicID: req.ClinicID, Date: req.Date, Time: "09:00", Status: "pending"},
			}, nil
		},
	}
	router := newTestRouter(svc)

	body := `{"clinic_id":"64f1a2b3c4d5e6f7a8b9c0d1","user_id":"spoofed","date":"2026-09-07","times":["09:00"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	req.Header.Set(httputil.PrincipalHeader, "user-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
	if gotUserID != "user-1" {
		t.Errorf("user_id = %q, want header principal", gotUserID)
	}
}

func TestCreateBooking_InvalidBody(t *testing.T) {
	router := newTestRouter(&mockAppointmentService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateBooking_ServiceErrorMapsToHTTPStatus(t *testing.T) {
	svc := &mockAppointmentService{
		createBookingFunc: func(ctx context.Context, req *model.BookingRequest) ([]*model.Appointment, error) {
			return nil, apperrors.Conflict("slot taken")
		},
	}
	router := newTestRouter(svc)

	body := `{"clinic_id":"64f1a2b3c4d5e6f7a8b9c0d1","date":"2026-09-07","times":["09:00"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	req.Header.Set(httputil.PrincipalHeader, "user-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409; body: %s", rec.Code, rec.Body.String())
	}
}

func TestList_RequiresPrincipal(t *testing.T) {
	router := newTestRouter(&mockAppointmentService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestList_PassesFilters(t *testing.T) {
	var gotPrincipal string
	var gotFilters *model.AppointmentFilters
	svc := &mockAppointmentService{
		listAppointmentsFunc: func(ctx context.Context, principalID string, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
			gotPrincipal = principalID
			gotFilters = filters
			return []*model.Appointment{}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/appointments?date_from=2026-09-01&date_to=2026-09-30&period=morning&weekday=Monday&status=pending&clinic_id=64f1a2b3c4d5e6f7a8b9c0d1", nil)
	req.Header.Set(httputil.PrincipalHeader, "owner-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if gotPrincipal != "owner-1" {
		t.Errorf("principal = %q", gotPrincipal)
	}
	if gotFilters == nil {
		t.Fatal("filters not passed to service")
	}
	if gotFilters.DateFrom != "2026-09-01" || gotFilters.DateTo != "2026-09-30" ||
		gotFilters.Period != "morning" || gotFilters.Weekday != "Monday" ||
		gotFilters.Status != "pending" || gotFilters.ClinicID != "64f1a2b3c4d5e6f7a8b9c0d1" {
		t.Errorf("unexpected filters: %+v", gotFilters)
	}
}

func TestSummary(t *testing.T) {
	svc := &mockAppointmentService{
		listAppointmentsFunc: func(ctx context.Context, principalID string, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
			return []*model.Appointment{
				{Status: "pending"},
				{Status: "confirmed"},
			}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/summary", nil)
	req.Header.Set(httputil.PrincipalHeader, "owner-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data model.Stats `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Data.Total != 2 {
		t.Errorf("total = %d, want 2", resp.Data.Total)
	}
}

func TestUpdateStatus(t *testing.T) {
	var gotID, gotStatus, gotActor string
	svc := &mockAppointmentService{
		updateStatusFunc: func(ctx context.Context, appointmentID, newStatus, actorID string) (*model.Appointment, error) {
			gotID, gotStatus, gotActor = appointmentID, newStatus, actorID
			return &model.Appointment{ID: appointmentID, Status: newStatus}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPatch,
		"/api/v1/appointments/id/64f1a2b3c4d5e6f7a8b9cf01/status",
		strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set(httputil.PrincipalHeader, "owner-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if gotID != "64f1a2b3c4d5e6f7a8b9cf01" || gotStatus != "confirmed" || gotActor != "owner-1" {
		t.Errorf("service called with (%s, %s, %s)", gotID, gotStatus, gotActor)
	}
}

func TestUpdateStatus_RequiresPrincipal(t *testing.T) {
	router := newTestRouter(&mockAppointmentService{})

	req := httptest.NewRequest(http.MethodPatch,
		"/api/v1/appointments/id/64f1a2b3c4d5e6f7a8b9cf01/status",
		strings.NewReader(`{"status":"confirmed"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
