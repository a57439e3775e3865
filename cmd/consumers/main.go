package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"travelapp/cmd/consumers/jobs"
	"travelapp/internal/config"
	"travelapp/internal/consumers"
	"travelapp/internal/external"
	"travelapp/internal/logger"
	"travelapp/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Override NATS client ID for consumers
	cfg.NATS.ClientID = "travelapp-consumers"

	consumerService, err := consumers.NewConsumerService(cfg)
	if err != nil {
		log.Fatalf("Failed to create consumer service: %v", err)
	}

	if err := consumerService.Start(); err != nil {
		log.Fatalf("Failed to start consumers: %v", err)
	}

	// Background sweep that promotes departed bookings to COMPLETED
	bookingService := service.NewBookingService(
		consumerService.Repos(),
		consumerService.NATS(),
		external.NewPaymentClient(cfg.Payment),
		external.NewNotificationClient(cfg.Notify),
	)
	completionJob := jobs.NewBookingCompletionJob(bookingService)

	jobCtx, cancelJob := context.WithCancel(context.Background())
	completionJob.Start(jobCtx)

	log.Println("Consumers service started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down consumers service...")

	completionJob.Stop()
	cancelJob()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := consumerService.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Consumers service stopped")
}
