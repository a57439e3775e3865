package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"travelapp/internal/cache"
	"travelapp/internal/config"
	"travelapp/internal/database"
	"travelapp/internal/external"
	"travelapp/internal/handlers"
	"travelapp/internal/logger"
	"travelapp/internal/messaging"
	"travelapp/internal/metrics"
	"travelapp/internal/middleware"
	"travelapp/internal/repository"
	"travelapp/internal/search"
	"travelapp/internal/service"
)

// Server представляет HTTP сервер API
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	valkey   *cache.ValkeyClient
	services *service.Services
	repos    *repository.Repositories
}

// NewServer создает новый экземпляр сервера
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", "error", err)
	}

	var esClient *search.ElasticsearchClient
	if cfg.Search.Enabled {
		esClient, err = search.NewElasticsearchClient(cfg.Search)
		if err != nil {
			logger.Fatal("Failed to connect to Elasticsearch", "error", err)
		}
	}

	var valkeyClient *cache.ValkeyClient
	if cfg.Cache.Enabled {
		valkeyClient, err = cache.NewValkeyClient(cfg.Cache)
		if err != nil {
			logger.Fatal("Failed to connect to Valkey", "error", err)
		}
	}

	paymentClient := external.NewPaymentClient(cfg.Payment)
	notifyClient := external.NewNotificationClient(cfg.Notify)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, natsClient, esClient, valkeyClient, paymentClient, notifyClient)

	metrics.Register()

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		valkey:   valkeyClient,
		services: services,
		repos:    repos,
	}

	server.setupRoutes()

	return server
}

// setupRoutes настраивает все API роуты
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services)

	api := s.router.Group("/api")
	// Обязательная Basic Auth для всех API роутов
	api.Use(middleware.BasicAuth(s.repos.Users, s.valkey))
	{
		travel := api.Group("/travel")
		{
			travel.GET("", h.SearchTravel)
			travel.GET("/:travel_id", h.GetTravel)
		}

		api.GET("/cities", h.GetCities)
		api.GET("/routes/popular", h.GetPopularRoutes)

		bookings := api.Group("/bookings")
		{
			bookings.POST("", h.CreateBooking)
			bookings.GET("", h.ListBookings)
			bookings.GET("/:booking_id", h.GetBooking)
			bookings.POST("/:booking_id/pay", h.PayBooking)
			bookings.PATCH("/cancel", h.CancelBooking)
			bookings.PUT("/:booking_id/passengers", h.SavePassengers)
			bookings.GET("/:booking_id/passengers", h.ListPassengers)
			bookings.GET("/:booking_id/history", h.GetBookingHistory)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AdminOnly(s.repos.Users))
		{
			admin.POST("/travel", h.CreateTravelOption)
			admin.PATCH("/travel/:travel_id", h.UpdateTravelOption)
			admin.POST("/bookings/confirm", h.BulkConfirmBookings)
			admin.POST("/bookings/cancel", h.BulkCancelBookings)
			admin.POST("/bookings/complete-departed", h.CompleteDepartedBookings)
			admin.GET("/analytics", h.GetAnalytics)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// healthCheck обрабатывает health check запросы
func (s *Server) healthCheck(c *gin.Context) {
	health := s.db.Health(c.Request.Context())

	status := http.StatusOK
	if health.Status != "ok" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   health.Status,
		"service":  "travelapp-api",
		"database": health,
	})
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter возвращает роутер для тестирования
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup закрывает соединения
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			logger.Get().Error("Error closing NATS connection", "error", err)
		}
	}

	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			logger.Get().Error("Error closing Valkey connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logger.Get().Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
