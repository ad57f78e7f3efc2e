package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salalivre/internal/appointments/availability"
	appterrors "salalivre/internal/appointments/errors"
	"salalivre/internal/appointments/query"
	"salalivre/internal/appointments/repository"
	"salalivre/internal/appointments/status"
	"salalivre/internal/appointments/validator"
	"salalivre/pkg/client"
	"salalivre/pkg/config"
	apperrors "salalivre/pkg/errors"
	"salalivre/pkg/model"
	"salalivre/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type AppointmentService interface {
	// CreateBooking turns one booking request into len(req.Times)
	// appointments, or none at all.
	CreateBooking(ctx context.Context, req *model.BookingRequest) ([]*model.Appointment, error)
	// ListAppointments returns the appointments visible to the principal,
	// filtered and ordered ascending by (date, time).
	ListAppointments(ctx context.Context, principalID string, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	// UpdateStatus moves an appointment along a legal lifecycle edge on
	// behalf of the clinic owner.
	UpdateStatus(ctx context.Context, appointmentID, newStatus, actorID string) (*model.Appointment, error)
	// Summarize counts a result set per status.
	Summarize(appointments []*model.Appointment) model.Stats
}

type appointmentService struct {
	repo      repository.AppointmentRepository
	lockRepo  repository.SlotLockRepository
	clinics   client.ClinicDirectory
	validator *validator.BookingValidator
	events    EventPublisher
	cfg       *config.Config
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	lockRepo repository.SlotLockRepository,
	clinics client.ClinicDirectory,
	validator *validator.BookingValidator,
	events EventPublisher,
	cfg *config.Config,
) AppointmentService {
	return &appointmentService{
		repo:      repo,
		lockRepo:  lockRepo,
		clinics:   clinics,
		validator: validator,
		events:    events,
		cfg:       cfg,
	}
}

func (s *appointmentService) CreateBooking(ctx context.Context, req *model.BookingRequest) ([]*model.Appointment, error) {
	s.sanitize(req)

	if len(req.Times) == 0 {
		return nil, apperrors.Wrap(appterrors.ErrNoSlotsSelected,
			apperrors.CodeInvalidInput, "At least one slot must be selected", 400)
	}

	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking request validation failed", "error", err)
		return nil, apperrors.Validation("Booking request validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	clinic, err := s.clinics.GetClinic(ctx, req.ClinicID)
	if err != nil {
		return nil, err
	}

	s.applyDefaults(req, clinic)

	if !clinic.AcceptsBooking || !availability.HasAny(clinic) {
		return nil, apperrors.Wrap(appterrors.ErrNoAvailabilityConfigured,
			apperrors.CodeValidation, "Clinic does not take in-platform bookings", 422).
			WithDetails(map[string]any{"clinic_id": req.ClinicID})
	}

	for _, t := range req.Times {
		within, err := availability.IsWithin(clinic, req.Date, t)
		if err != nil {
			return nil, apperrors.InvalidInput("Invalid booking date format")
		}
		if !within {
			return nil, apperrors.Wrap(
				fmt.Errorf("%w: %s", appterrors.ErrSlotOutsideAvailability, t),
				apperrors.CodeValidation, "Requested slot is outside the clinic availability", 422).
				WithDetails(map[string]any{"time": t})
		}
	}

	// Advisory lock serializing the read-then-insert section per clinic day
	lockID, err := s.acquireSlotLock(ctx, req.ClinicID, req.Date)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	var appointments []*model.Appointment
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindActiveByClinicAndDate(sessCtx, req.ClinicID, req.Date)
		if err != nil {
			return apperrors.Internal("Failed to check existing appointments", err)
		}

		_, taken := availability.Partition(req.Times, existing)
		if len(taken) > 0 {
			return apperrors.Wrap(
				fmt.Errorf("%w: %s", appterrors.ErrSlotAlreadyBooked, taken[0]),
				apperrors.CodeConflict, "One or more requested slots are already booked", 409).
				WithDetails(map[string]any{"taken": taken})
		}

		appointments = s.buildAppointments(req)
		if err := s.repo.InsertMany(sessCtx, appointments); err != nil {
			return apperrors.Internal("Failed to create appointments", err)
		}

		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"clinic_id", req.ClinicID,
			"date", req.Date,
			"error", err,
		)
		return nil, err
	}

	s.events.BookingCreated(ctx, appointments)

	s.cfg.Log.Info("Booking created successfully",
		"clinic_id", req.ClinicID,
		"user_id", req.UserID,
		"date", req.Date,
		"slots", len(appointments),
	)
	return appointments, nil
}

func (s *appointmentService) ListAppointments(ctx context.Context, principalID string, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	if principalID == "" {
		return nil, apperrors.InvalidInput("Principal ID cannot be empty")
	}
	if filters == nil {
		filters = &model.AppointmentFilters{}
	}

	if err := s.validator.ValidateFilters(filters); err != nil {
		s.cfg.Log.Warn("Appointment filters validation failed", "principal_id", principalID, "error", err)
		return nil, apperrors.Validation("Invalid appointment filters", map[string]any{
			"error": err.Error(),
		})
	}

	clinicIDs, err := s.resolveVisibleClinics(ctx, principalID, filters.ClinicID)
	if err != nil {
		return nil, err
	}
	if len(clinicIDs) == 0 {
		return []*model.Appointment{}, nil
	}

	appointments, err := s.repo.FindByClinics(ctx, clinicIDs, filters.Status, filters.DateFrom, filters.DateTo)
	if err != nil {
		s.cfg.Log.Error("Failed to list appointments", "principal_id", principalID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve appointments", err)
	}

	return query.Apply(appointments, filters), nil
}

func (s *appointmentService) UpdateStatus(ctx context.Context, appointmentID, newStatus, actorID string) (*model.Appointment, error) {
	if appointmentID == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty")
	}
	if actorID == "" {
		return nil, apperrors.InvalidInput("Actor ID cannot be empty")
	}
	if !status.IsValid(newStatus) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Unknown appointment status: %s", newStatus))
	}

	appointment, err := s.repo.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appterrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Appointment", appointmentID)
		}
		if errors.Is(err, appterrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid appointment ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve appointment", err)
	}

	isOwner, err := s.clinics.IsOwner(ctx, appointment.ClinicID, actorID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		s.cfg.Log.Warn("Status transition denied",
			"appointment_id", appointmentID,
			"actor_id", actorID,
			"clinic_id", appointment.ClinicID,
		)
		return nil, apperrors.Wrap(appterrors.ErrNotOwner,
			apperrors.CodeForbidden, "Only the clinic owner may change appointment status", 403)
	}

	if err := status.Check(appointment.Status, newStatus); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeConflict,
			"Status transition is not allowed", 409).
			WithDetails(map[string]any{
				"from": appointment.Status,
				"to":   newStatus,
			})
	}

	previous := appointment.Status
	updatedAt := time.Now().UTC().Truncate(time.Millisecond)

	matched, err := s.repo.UpdateStatus(ctx, appointmentID, previous, newStatus, updatedAt)
	if err != nil {
		s.cfg.Log.Error("Failed to update appointment status",
			"appointment_id", appointmentID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to update appointment status", err)
	}
	if matched == 0 {
		// The conditional update lost against a concurrent transition.
		return nil, apperrors.Conflict("Appointment status changed concurrently, re-fetch and retry")
	}

	appointment.Status = newStatus
	appointment.UpdatedAt = updatedAt

	s.events.StatusChanged(ctx, appointment, previous)

	s.cfg.Log.Info("Appointment status updated",
		"appointment_id", appointmentID,
		"from", previous,
		"to", newStatus,
		"actor_id", actorID,
	)
	return appointment, nil
}

func (s *appointmentService) Summarize(appointments []*model.Appointment) model.Stats {
	return query.Summarize(appointments)
}

// --- Helpers ---

func (s *appointmentService) sanitize(req *model.BookingRequest) {
	req.Notes = sanitizer.NormalizeNotes(req.Notes)
	req.Times = sanitizer.NormalizeTimeSlice(req.Times)
}

func (s *appointmentService) applyDefaults(req *model.BookingRequest, clinic *model.Clinic) {
	if req.ValuePerSlot == 0 {
		req.ValuePerSlot = clinic.PricePerSlot
	}
}

func (s *appointmentService) buildAppointments(req *model.BookingRequest) []*model.Appointment {
	now := time.Now().UTC().Truncate(time.Millisecond)

	appointments := make([]*model.Appointment, 0, len(req.Times))
	for _, t := range req.Times {
		appointments = append(appointments, &model.Appointment{
			ClinicID:  req.ClinicID,
			UserID:    req.UserID,
			Date:      req.Date,
			Time:      t,
			Value:     req.ValuePerSlot,
			Status:    config.Pending,
			Notes:     req.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return appointments
}

func (s *appointmentService) resolveVisibleClinics(ctx context.Context, principalID, clinicID string) ([]string, error) {
	if clinicID != "" {
		isOwner, err := s.clinics.IsOwner(ctx, clinicID, principalID)
		if err != nil {
			return nil, err
		}
		if !isOwner {
			return nil, apperrors.Wrap(appterrors.ErrNotOwner,
				apperrors.CodeForbidden, "Principal does not own the requested clinic", 403)
		}
		return []string{clinicID}, nil
	}

	clinicIDs, err := s.clinics.ClinicsOwnedBy(ctx, principalID)
	if err != nil {
		return nil, err
	}
	return clinicIDs, nil
}

// acquireSlotLock creates an advisory lock covering every slot of one clinic
// day. Returns the lock ID, or a conflict error when another request is
// booking the same day.
func (s *appointmentService) acquireSlotLock(ctx context.Context, clinicID, date string) (string, error) {
	lockID := fmt.Sprintf("slot_lock_%s_%s", clinicID, date)

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("These slots are currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

func (s *appointmentService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
