package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the constraints AutoMigrate cannot express. The
// partial unique index on unreleased seat claims is the concurrency guard for
// the booking writer: two transactions claiming the same seat for the same
// event cannot both commit, and released (cancelled) claims do not block
// resale.
func MigrateConstraints(db *gorm.DB) error {
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_seat_claim
		ON seat_claims (event_id, seat_label)
		WHERE released_at IS NULL;
	`).Error
	if err != nil {
		return err
	}

	// Seat availability reads filter on event and released state.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_seat_claims_event_active
		ON seat_claims (event_id)
		WHERE released_at IS NULL;
	`).Error
	if err != nil {
		return err
	}

	// The sweeper scans pending bookings by age.
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_status_created
		ON bookings (status, created_at);
	`).Error
}
