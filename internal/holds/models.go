package holds

import (
	"errors"
	"time"
)

var (
	ErrSeatHeld     = errors.New("seat is already held")
	ErrHoldNotFound = errors.New("hold not found or expired")
	ErrHoldMismatch = errors.New("hold does not cover the requested seats")
)

// Hold is a short-lived pre-checkout reservation of seats for one event.
type Hold struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	CustomerKey string    `json:"customer_key"`
	Seats       []string  `json:"seats"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type HoldSeatsRequest struct {
	EventID     string   `json:"event_id" binding:"required,uuid"`
	Seats       []string `json:"seats" binding:"required,min=1,max=20"`
	CustomerKey string   `json:"customer_key" binding:"required,min=3,max=255"`
}

type HoldResponse struct {
	HoldID    string    `json:"hold_id"`
	EventID   string    `json:"event_id"`
	Seats     []string  `json:"seats"`
	ExpiresAt time.Time `json:"expires_at"`
	TTL       int       `json:"ttl_seconds"`
}
