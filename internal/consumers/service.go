package consumers

import (
	"context"
	"log/slog"

	"travelapp/internal/config"
	"travelapp/internal/database"
	"travelapp/internal/external"
	"travelapp/internal/messaging"
	"travelapp/internal/models"
	"travelapp/internal/repository"
)

const queueGroup = "consumers"

type ConsumerService struct {
	db       *database.DB
	nats     *messaging.NATSClient
	repos    *repository.Repositories
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	repos := repository.NewRepositories(db)
	notifyClient := external.NewNotificationClient(cfg.Notify)

	return &ConsumerService{
		db:       db,
		nats:     natsClient,
		repos:    repos,
		handlers: NewHandlers(repos, notifyClient),
	}, nil
}

func (cs *ConsumerService) Repos() *repository.Repositories {
	return cs.repos
}

func (cs *ConsumerService) NATS() *messaging.NATSClient {
	return cs.nats
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	if _, err := cs.nats.SubscribeQueue(models.EventBookingCreated, queueGroup, "booking-created", cs.handlers.HandleBookingCreated); err != nil {
		return err
	}

	if _, err := cs.nats.SubscribeQueue(models.EventPaymentCompleted, queueGroup, "payment-completed", cs.handlers.HandlePaymentCompleted); err != nil {
		return err
	}

	if _, err := cs.nats.SubscribeQueue(models.EventPaymentFailed, queueGroup, "payment-failed", cs.handlers.HandlePaymentFailed); err != nil {
		return err
	}

	if _, err := cs.nats.SubscribeQueue(models.EventBookingCancelled, queueGroup, "booking-cancelled", cs.handlers.HandleBookingCancelled); err != nil {
		return err
	}

	slog.Info("All consumers started successfully")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.db != nil {
		if err := cs.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
