package service

import (
	"travelapp/internal/cache"
	"travelapp/internal/external"
	"travelapp/internal/messaging"
	"travelapp/internal/repository"
	"travelapp/internal/search"
)

// Services собирает все сервисы приложения
type Services struct {
	Travel  *TravelService
	Booking *BookingService
}

func NewServices(
	repos *repository.Repositories,
	nats *messaging.NATSClient,
	es *search.ElasticsearchClient,
	valkey *cache.ValkeyClient,
	payment *external.PaymentClient,
	notify *external.NotificationClient,
) *Services {
	return &Services{
		Travel:  NewTravelService(repos, es, valkey),
		Booking: NewBookingService(repos, nats, payment, notify),
	}
}
