package main

import (
	"salalivre/internal/appointments/handler"
	"salalivre/internal/appointments/repository"
	"salalivre/internal/appointments/service"
	"salalivre/internal/appointments/validator"
	"salalivre/pkg/app"
	"salalivre/pkg/client"
	"salalivre/pkg/config"
	"salalivre/pkg/kafka"
)

const ServiceName = "appointments"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Appointments service")
	appointmentService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewAppointmentHandler(appointmentService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.AppointmentService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	appointmentRepo := repository.NewMongoAppointmentRepository(cfg)
	lockRepo := repository.NewSlotLockRepository(cfg)
	clinicDirectory := client.NewClinicDirectory(cfg.ClinicDirectoryURL)

	var events service.EventPublisher = service.NoopEventPublisher{}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.AppointmentTopic)
	if err != nil {
		cfg.Log.Warn("Kafka producer unavailable, appointment events disabled", "error", err)
	} else {
		events = service.NewKafkaEventPublisher(producer, cfg.Log)
	}

	appointmentService := service.NewAppointmentService(
		appointmentRepo,
		lockRepo,
		clinicDirectory,
		bookingValidator,
		events,
		cfg,
	)

	cfg.Log.Info("Appointment service initialized", "database", cfg.MongoDatabaseName)
	return appointmentService
}
