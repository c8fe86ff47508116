package database

import (
	"gorm.io/gorm"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/bookings"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/events"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/halls"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/users"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&halls.Hall{},
		&events.Event{},
		&bookings.Booking{},
		&bookings.SeatClaim{},
	)
}
