package service

import (
	"context"

	"salalivre/pkg/kafka"
	"salalivre/pkg/logger"
	"salalivre/pkg/model"
)

// EventPublisher announces appointment lifecycle changes to downstream
// consumers (notification dispatch lives outside this service). Publication
// is best effort: a broker outage never fails a booking that is already
// persisted.
type EventPublisher interface {
	BookingCreated(ctx context.Context, appointments []*model.Appointment)
	StatusChanged(ctx context.Context, appointment *model.Appointment, previousStatus string)
}

const eventSource = "appointments"

type bookingCreatedEvent struct {
	ClinicID     string               `json:"clinic_id"`
	UserID       string               `json:"user_id"`
	Date         string               `json:"date"`
	Appointments []*model.Appointment `json:"appointments"`
}

type statusChangedEvent struct {
	Appointment    *model.Appointment `json:"appointment"`
	PreviousStatus string             `json:"previous_status"`
}

type kafkaEventPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaEventPublisher(producer *kafka.Producer, log *logger.Logger) EventPublisher {
	return &kafkaEventPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *kafkaEventPublisher) BookingCreated(ctx context.Context, appointments []*model.Appointment) {
	if len(appointments) == 0 {
		return
	}

	first := appointments[0]
	msg := kafka.NewMessage().
		WithKey(first.ClinicID).
		WithEventType(kafka.EventAppointmentCreated).
		WithSource(eventSource).
		WithValue(bookingCreatedEvent{
			ClinicID:     first.ClinicID,
			UserID:       first.UserID,
			Date:         first.Date,
			Appointments: appointments,
		}).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking created event",
			"clinic_id", first.ClinicID,
			"event_id", msg.GetEventID(),
			"error", err,
		)
	}
}

func (p *kafkaEventPublisher) StatusChanged(ctx context.Context, appointment *model.Appointment, previousStatus string) {
	msg := kafka.NewMessage().
		WithKey(appointment.ClinicID).
		WithEventType(kafka.EventAppointmentStatusChanged).
		WithSource(eventSource).
		WithValue(statusChangedEvent{
			Appointment:    appointment,
			PreviousStatus: previousStatus,
		}).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish status changed event",
			"appointment_id", appointment.ID,
			"event_id", msg.GetEventID(),
			"error", err,
		)
	}
}

// NoopEventPublisher drops every event. Used when the brokers are not
// configured, e.g. in local development.
type NoopEventPublisher struct{}

func (NoopEventPublisher) BookingCreated(context.Context, []*model.Appointment) {}
func (NoopEventPublisher) StatusChanged(context.Context, *model.Appointment, string) {}
