package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"travelapp/internal/apperrors"
	"travelapp/internal/cache"
	"travelapp/internal/models"
	"travelapp/internal/repository"
	"travelapp/internal/search"
)

const maxIDAttempts = 5

// TravelService инкапсулирует бизнес-логику каталога поездок
type TravelService struct {
	travelRepo    *repository.TravelRepository
	routeRepo     *repository.RouteRepository
	analyticsRepo *repository.AnalyticsRepository
	esClient      *search.ElasticsearchClient
	valkey        *cache.ValkeyClient
	titleCaser    cases.Caser
}

func NewTravelService(repos *repository.Repositories, es *search.ElasticsearchClient, valkey *cache.ValkeyClient) *TravelService {
	return &TravelService{
		travelRepo:    repos.Travel,
		routeRepo:     repos.Routes,
		analyticsRepo: repos.Analytics,
		esClient:      es,
		valkey:        valkey,
		titleCaser:    cases.Title(language.English),
	}
}

// Search ищет варианты поездок по фильтрам. Каждый поиск с заполненной парой
// source/destination увеличивает счётчик популярности маршрута; сбой счётчика
// не роняет поиск.
func (s *TravelService) Search(ctx context.Context, req *models.SearchTravelRequest) ([]models.TravelOption, error) {
	req.Source = s.normalizeCity(req.Source)
	req.Destination = s.normalizeCity(req.Destination)

	if req.Source != "" && req.Destination != "" {
		if err := s.routeRepo.IncrementSearch(ctx, req.Source, req.Destination); err != nil {
			slog.Warn("Failed to increment route search count",
				"source", req.Source, "destination", req.Destination, "error", err)
		}
	}

	if s.esClient != nil {
		options, err := s.searchViaElasticsearch(ctx, req)
		if err == nil {
			return options, nil
		}
		slog.Warn("Elasticsearch search failed, falling back to database", "error", err)
	}

	return s.travelRepo.Search(ctx, req, time.Now())
}

func (s *TravelService) searchViaElasticsearch(ctx context.Context, req *models.SearchTravelRequest) ([]models.TravelOption, error) {
	ids, err := s.esClient.SearchIDs(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.TravelOption{}, nil
	}
	return s.travelRepo.GetByIDs(ctx, ids)
}

// Get возвращает вариант поездки по публичному travel_id
func (s *TravelService) Get(ctx context.Context, travelID string) (*models.TravelOption, error) {
	opt, err := s.travelRepo.GetByTravelID(ctx, travelID)
	if err != nil {
		return nil, err
	}
	if opt == nil {
		return nil, apperrors.ErrNotFound
	}
	return opt, nil
}

// CreateOption создает вариант поездки. При коллизии публичного ID генерация
// повторяется ограниченное число раз.
func (s *TravelService) CreateOption(ctx context.Context, req *models.CreateTravelOptionRequest) (*models.TravelOption, error) {
	departureAt, err := time.Parse(time.RFC3339, req.DepartureAt)
	if err != nil {
		return nil, fmt.Errorf("invalid departure_datetime: %w", err)
	}
	arrivalAt, err := time.Parse(time.RFC3339, req.ArrivalAt)
	if err != nil {
		return nil, fmt.Errorf("invalid arrival_datetime: %w", err)
	}
	if !arrivalAt.After(departureAt) {
		return nil, fmt.Errorf("arrival_datetime must be after departure_datetime")
	}

	opt := &models.TravelOption{
		TravelType:      req.TravelType,
		OperatorName:    req.OperatorName,
		Source:          s.normalizeCity(req.Source),
		Destination:     s.normalizeCity(req.Destination),
		SourceCode:      req.SourceCode,
		DestinationCode: req.DestinationCode,
		DepartureAt:     departureAt,
		ArrivalAt:       arrivalAt,
		BasePrice:       req.BasePrice,
		TotalSeats:      req.TotalSeats,
		AvailableSeats:  req.TotalSeats,
		Description:     req.Description,
		Status:          models.TravelStatusActive,
		IsFeatured:      req.IsFeatured,
	}

	var createErr error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		opt.TravelID = models.GenerateTravelID(opt.TravelType)
		createErr = s.travelRepo.Create(ctx, opt)
		if createErr == nil {
			break
		}
		if !repository.IsUniqueViolation(createErr) {
			return nil, createErr
		}
	}
	if createErr != nil {
		return nil, fmt.Errorf("failed to allocate unique travel id: %w", createErr)
	}

	s.syncSearchIndex(ctx, opt)

	slog.Info("Created travel option", "travel_id", opt.TravelID, "type", opt.TravelType,
		"source", opt.Source, "destination", opt.Destination)
	return opt, nil
}

// UpdateOption изменяет вариант поездки по публичному travel_id
func (s *TravelService) UpdateOption(ctx context.Context, travelID string, req *models.UpdateTravelOptionRequest) (*models.TravelOption, error) {
	opt, err := s.travelRepo.GetByTravelID(ctx, travelID)
	if err != nil {
		return nil, err
	}
	if opt == nil {
		return nil, apperrors.ErrNotFound
	}

	if req.OperatorName != nil {
		opt.OperatorName = *req.OperatorName
	}
	if req.DepartureAt != nil {
		departureAt, err := time.Parse(time.RFC3339, *req.DepartureAt)
		if err != nil {
			return nil, fmt.Errorf("invalid departure_datetime: %w", err)
		}
		opt.DepartureAt = departureAt
	}
	if req.ArrivalAt != nil {
		arrivalAt, err := time.Parse(time.RFC3339, *req.ArrivalAt)
		if err != nil {
			return nil, fmt.Errorf("invalid arrival_datetime: %w", err)
		}
		opt.ArrivalAt = arrivalAt
	}
	if !opt.ArrivalAt.After(opt.DepartureAt) {
		return nil, fmt.Errorf("arrival_datetime must be after departure_datetime")
	}
	if req.BasePrice != nil {
		opt.BasePrice = *req.BasePrice
	}
	if req.Status != nil {
		opt.Status = *req.Status
	}
	if req.Description != nil {
		opt.Description = req.Description
	}
	if req.IsFeatured != nil {
		opt.IsFeatured = *req.IsFeatured
	}

	if err := s.travelRepo.Update(ctx, opt); err != nil {
		return nil, err
	}

	s.syncSearchIndex(ctx, opt)
	return opt, nil
}

// syncSearchIndex держит поисковый индекс в соответствии со статусом
// варианта: активные варианты индексируются, остальные удаляются из
// индекса. Ошибки индексации не прерывают операцию.
func (s *TravelService) syncSearchIndex(ctx context.Context, opt *models.TravelOption) {
	if s.esClient == nil {
		return
	}
	if opt.Status != models.TravelStatusActive {
		if err := s.esClient.DeleteTravelOption(ctx, opt.ID); err != nil {
			slog.Warn("Failed to remove travel option from index", "travel_id", opt.TravelID, "error", err)
		}
		return
	}
	if err := s.esClient.IndexTravelOption(ctx, opt); err != nil {
		slog.Warn("Failed to index travel option", "travel_id", opt.TravelID, "error", err)
	}
}

// Autocomplete возвращает города по префиксу, с кэшированием в Valkey
func (s *TravelService) Autocomplete(ctx context.Context, prefix string, limit int) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if len(prefix) < 2 {
		return []string{}, nil
	}

	if s.valkey != nil {
		cached, err := s.valkey.GetCities(ctx, prefix)
		if err != nil {
			slog.Warn("Failed to read cities from cache", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	cities, err := s.travelRepo.SearchCities(ctx, prefix, limit)
	if err != nil {
		return nil, err
	}

	if s.valkey != nil {
		if err := s.valkey.SetCities(ctx, prefix, cities); err != nil {
			slog.Warn("Failed to cache cities", "error", err)
		}
	}

	return cities, nil
}

// PopularRoutes возвращает наиболее востребованные маршруты
func (s *TravelService) PopularRoutes(ctx context.Context, limit int) ([]models.PopularRouteItem, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	routes, err := s.routeRepo.Top(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]models.PopularRouteItem, len(routes))
	for i, r := range routes {
		items[i] = models.PopularRouteItem{
			Source:       r.Source,
			Destination:  r.Destination,
			SearchCount:  r.SearchCount,
			BookingCount: r.BookingCount,
		}
	}
	return items, nil
}

// Analytics возвращает сводку для админского дашборда
func (s *TravelService) Analytics(ctx context.Context) (*models.AnalyticsResponse, error) {
	resp, err := s.analyticsRepo.Overview(ctx)
	if err != nil {
		return nil, err
	}

	topRoutes, err := s.PopularRoutes(ctx, 5)
	if err != nil {
		return nil, err
	}
	resp.TopRoutes = topRoutes

	return resp, nil
}

// normalizeCity приводит название города к каноническому виду
func (s *TravelService) normalizeCity(city string) string {
	city = strings.TrimSpace(city)
	if city == "" {
		return ""
	}
	return s.titleCaser.String(strings.ToLower(city))
}
