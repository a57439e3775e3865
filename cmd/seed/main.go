package main

import (
	"context"
	"crypto/sha256"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"

	"travelapp/internal/config"
	"travelapp/internal/database"
	"travelapp/internal/logger"
	"travelapp/internal/models"
	"travelapp/internal/repository"
)

var (
	optionCount = flag.Int("options", 50, "Number of travel options to generate")
	daysAhead   = flag.Int("days", 30, "Spread departures over this many days ahead")
	dryRun      = flag.Bool("dry-run", false, "Show what would be generated without making changes")
)

var cities = []struct {
	Name string
	Code string
}{
	{"Almaty", "ALA"},
	{"Astana", "NQZ"},
	{"Shymkent", "CIT"},
	{"Aktau", "SCO"},
	{"Atyrau", "GUW"},
	{"Karaganda", "KGF"},
	{"Moscow", "MOW"},
	{"Istanbul", "IST"},
	{"Dubai", "DXB"},
	{"Tashkent", "TAS"},
}

var operators = map[string][]string{
	models.TravelTypeFlight: {"Air Astana", "SCAT Airlines", "FlyArystan"},
	models.TravelTypeTrain:  {"KTZ Express", "Tulpar Talgo"},
	models.TravelTypeBus:    {"Sapar Bus", "Eurasia Lines"},
}

type Seeder struct {
	db    *database.DB
	repos *repository.Repositories
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, "text")

	slog.Info("Starting data seeder...")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	seeder := &Seeder{db: db, repos: repository.NewRepositories(db)}
	ctx := context.Background()

	if err := seeder.seedUsers(ctx); err != nil {
		slog.Error("Failed to seed users", "error", err)
		os.Exit(1)
	}

	if err := seeder.seedTravelOptions(ctx); err != nil {
		slog.Error("Failed to seed travel options", "error", err)
		os.Exit(1)
	}

	slog.Info("Seeding completed successfully!")
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	demo := []struct {
		Email    string
		Password string
		First    string
		Last     string
		Admin    bool
	}{
		{"admin@travelapp.local", "admin123", "Admin", "User", true},
		{"demo@travelapp.local", "demo123", "Demo", "Traveler", false},
	}

	for _, d := range demo {
		existing, err := s.repos.Users.GetByEmail(ctx, d.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		if *dryRun {
			slog.Info("Would create user", "email", d.Email, "is_admin", d.Admin)
			continue
		}

		hash := sha256.Sum256([]byte(d.Password))
		user := &models.User{
			Email:        d.Email,
			PasswordHash: fmt.Sprintf("%x", hash),
			FirstName:    d.First,
			Surname:      d.Last,
			IsActive:     true,
			IsAdmin:      d.Admin,
		}
		if err := s.repos.Users.Create(ctx, user); err != nil {
			return err
		}
		slog.Info("Created user", "email", d.Email, "user_id", user.UserID)
	}

	return nil
}

func (s *Seeder) seedTravelOptions(ctx context.Context) error {
	slog.Info("Generating travel options", "count", *optionCount, "days_ahead", *daysAhead)

	types := []string{models.TravelTypeFlight, models.TravelTypeTrain, models.TravelTypeBus}
	created := 0

	for i := 0; i < *optionCount; i++ {
		src := cities[rand.Intn(len(cities))]
		dst := cities[rand.Intn(len(cities))]
		if src.Name == dst.Name {
			continue
		}

		travelType := types[rand.Intn(len(types))]
		names := operators[travelType]

		departure := time.Now().
			AddDate(0, 0, 1+rand.Intn(*daysAhead)).
			Truncate(time.Hour).
			Add(time.Duration(rand.Intn(24)) * time.Hour)
		duration := time.Duration(1+rand.Intn(12)) * time.Hour
		totalSeats := 30 + rand.Intn(150)

		opt := &models.TravelOption{
			TravelID:        models.GenerateTravelID(travelType),
			TravelType:      travelType,
			OperatorName:    names[rand.Intn(len(names))],
			Source:          src.Name,
			Destination:     dst.Name,
			SourceCode:      &src.Code,
			DestinationCode: &dst.Code,
			DepartureAt:     departure,
			ArrivalAt:       departure.Add(duration),
			BasePrice:       int64(5000+rand.Intn(95000)) * 100,
			TotalSeats:      totalSeats,
			AvailableSeats:  totalSeats,
			Status:          models.TravelStatusActive,
			IsFeatured:      rand.Intn(10) == 0,
		}

		if *dryRun {
			slog.Info("Would create travel option", "travel_id", opt.TravelID,
				"type", opt.TravelType, "route", opt.Source+" -> "+opt.Destination)
			continue
		}

		if err := s.repos.Travel.Create(ctx, opt); err != nil {
			if repository.IsUniqueViolation(err) {
				continue
			}
			return err
		}
		created++
	}

	slog.Info("Created travel options", "count", created)
	return nil
}
