package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/events"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/halls"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/seatmap"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/config"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/database"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/users"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting DexView Cinema database seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed. Database is ready.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"seat_claims",
		"bookings",
		"events",
		"halls",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	seededHalls, err := s.SeedHalls()
	if err != nil {
		return fmt.Errorf("failed to seed halls: %w", err)
	}

	if err := s.SeedEvents(seededHalls); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	// Stale cache entries would mask the fresh rows
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

func (s *Seeder) SeedUsers() error {
	seedUsers := []struct {
		firstName string
		lastName  string
		email     string
		password  string
		role      users.Role
	}{
		{"Admin", "User", "admin@dexviewcinema.com", "Admin@123", users.RoleAdmin},
		{"Chidi", "Okafor", "chidi@example.com", "Customer@123", users.RoleCustomer},
	}

	for _, u := range seedUsers {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &users.User{
			FirstName: u.firstName,
			LastName:  u.lastName,
			Email:     u.email,
			Password:  string(hashed),
			Role:      u.role,
		}
		if err := s.db.PostgreSQL.Create(user).Error; err != nil {
			return err
		}
		fmt.Printf("  Created user: %s (%s)\n", u.email, u.role)
	}

	return nil
}

func (s *Seeder) SeedHalls() (map[string]*halls.Hall, error) {
	seedHalls := []halls.Hall{
		{Name: "VIP Hall", Capacity: 22, Type: seatmap.HallTypeVIP},
		{Name: "HallA", Capacity: 48, Type: seatmap.HallTypeStandard},
		{Name: "HallB", Capacity: 60, Type: seatmap.HallTypeStandard},
	}

	created := make(map[string]*halls.Hall, len(seedHalls))
	for i := range seedHalls {
		hall := &seedHalls[i]
		if err := s.db.PostgreSQL.Create(hall).Error; err != nil {
			return nil, err
		}
		created[hall.Name] = hall
		fmt.Printf("  Created hall: %s (%s, capacity %d)\n", hall.Name, hall.Type, hall.Capacity)
	}

	return created, nil
}

func (s *Seeder) SeedEvents(seededHalls map[string]*halls.Hall) error {
	tomorrow := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)

	seedEvents := []struct {
		title     string
		eventType seatmap.EventType
		category  string
		hallName  string
		date      time.Time
		timeOfDay string
		pricing   seatmap.Pricing
	}{
		{
			title:     "Champions League Final",
			eventType: seatmap.EventTypeMatch,
			category:  "football",
			hallName:  "VIP Hall",
			date:      tomorrow,
			timeOfDay: "20:00",
			pricing: seatmap.Pricing{
				"sofa":    {Price: 7500, Count: 10},
				"regular": {Price: 3000, Count: 12},
			},
		},
		{
			title:     "The Last Voyage",
			eventType: seatmap.EventTypeMovie,
			category:  "sci-fi",
			hallName:  "VIP Hall",
			date:      tomorrow.AddDate(0, 0, 1),
			timeOfDay: "18:30",
			pricing: seatmap.Pricing{
				"single": {Price: 5000, Count: 20},
				"couple": {Price: 9000, Count: 7},
				"family": {Price: 15000, Count: 14},
			},
		},
		{
			title:     "Market Day",
			eventType: seatmap.EventTypeMovie,
			category:  "drama",
			hallName:  "HallA",
			date:      tomorrow,
			timeOfDay: "16:00",
			pricing: seatmap.Pricing{
				"standardSingle": {Price: 2500, Count: 48},
			},
		},
	}

	for _, e := range seedEvents {
		hall, ok := seededHalls[e.hallName]
		if !ok {
			return fmt.Errorf("unknown hall %q", e.hallName)
		}

		totalSeats, err := seatmap.PlanSeatCount(e.eventType, hall.Type, hall.Capacity)
		if err != nil {
			return err
		}

		event := &events.Event{
			Title:      e.title,
			Slug:       slug.Make(e.title),
			EventType:  e.eventType,
			Category:   e.category,
			EventDate:  e.date,
			EventTime:  e.timeOfDay,
			HallID:     hall.ID,
			Status:     events.StatusActive,
			Pricing:    events.PricingMap(e.pricing),
			TotalSeats: totalSeats,
		}
		if err := s.db.PostgreSQL.Create(event).Error; err != nil {
			return err
		}
		fmt.Printf("  Created event: %s in %s (%d seats)\n", e.title, e.hallName, totalSeats)
	}

	return nil
}
