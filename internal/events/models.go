package events

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/halls"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/seatmap"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

// PricingMap stores the event's pricing snapshot as jsonb. The snapshot is
// frozen at event creation so later price edits never reprice existing
// bookings.
type PricingMap seatmap.Pricing

func (p PricingMap) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *PricingMap) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported pricing column type %T", value)
	}
	return json.Unmarshal(raw, p)
}

type Event struct {
	ID         uuid.UUID         `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title      string            `json:"title" gorm:"not null;size:255"`
	Slug       string            `json:"slug" gorm:"not null;uniqueIndex;size:255"`
	EventType  seatmap.EventType `json:"event_type" gorm:"type:varchar(10);not null;check:event_type IN ('movie','match')"`
	Category   string            `json:"category" gorm:"size:100"`
	EventDate  time.Time         `json:"event_date" gorm:"type:date;not null"`
	EventTime  string            `json:"event_time" gorm:"size:10;not null"`
	HallID     uuid.UUID         `json:"hall_id" gorm:"type:uuid;not null"`
	Hall       *halls.Hall       `json:"hall,omitempty" gorm:"foreignKey:HallID"`
	Status     Status            `json:"status" gorm:"type:varchar(20);default:'draft';check:status IN ('draft','active','cancelled')"`
	Pricing    PricingMap        `json:"pricing" gorm:"type:jsonb;not null"`
	TotalSeats int               `json:"total_seats" gorm:"not null;check:total_seats > 0"`
	CreatedAt  time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "events"
}

type CreateEventRequest struct {
	Title     string                       `json:"title" binding:"required,min=3,max=255"`
	EventType string                       `json:"event_type" binding:"required,oneof=movie match"`
	Category  string                       `json:"category" binding:"max=100"`
	EventDate string                       `json:"event_date" binding:"required"`
	EventTime string                       `json:"event_time" binding:"required"`
	HallID    string                       `json:"hall_id" binding:"required,uuid"`
	Pricing   map[string]seatmap.PriceTier `json:"pricing" binding:"required"`
	Status    string                       `json:"status" binding:"omitempty,oneof=draft active"`
}

type UpdateEventRequest struct {
	Title     *string `json:"title" binding:"omitempty,min=3,max=255"`
	Category  *string `json:"category" binding:"omitempty,max=100"`
	EventDate *string `json:"event_date"`
	EventTime *string `json:"event_time"`
	Status    *string `json:"status" binding:"omitempty,oneof=draft active cancelled"`
}

type EventListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
	EventType string `form:"event_type" binding:"omitempty,oneof=movie match"`
	Status    string `form:"status" binding:"omitempty,oneof=draft active cancelled"`
	HallID    string `form:"hall_id" binding:"omitempty,uuid"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
}

type PaginatedEvents struct {
	Events     []Event `json:"events"`
	TotalCount int64   `json:"total_count"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}

// SeatmapResponse is the derived seat view: every booked flag comes from
// active seat claims, never from a stored array.
type SeatmapResponse struct {
	EventID    string         `json:"event_id"`
	EventTitle string         `json:"event_title"`
	EventType  string         `json:"event_type"`
	HallName   string         `json:"hall_name"`
	HallType   string         `json:"hall_type"`
	Seats      []seatmap.Seat `json:"seats"`
	TotalSeats int            `json:"total_seats"`
	Available  int            `json:"available"`
}
