package bookings

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodPaystack PaymentMethod = "paystack"
	PaymentMethodMonnify  PaymentMethod = "monnify"
	PaymentMethodCash     PaymentMethod = "cash"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrSeatAlreadyBooked = errors.New("one or more seats are already booked")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrNotPending        = errors.New("booking is not pending payment")
	ErrInvalidPayMethod  = errors.New("invalid payment method")
)

// Booking is one purchase of seats for an event. Event title and type are
// denormalized at write time so reports survive event edits.
type Booking struct {
	ID            uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingCode   string        `gorm:"uniqueIndex;not null;size:24" json:"booking_code"`
	CustomerName  string        `gorm:"not null;size:255" json:"customer_name"`
	CustomerEmail string        `gorm:"index;not null;size:255" json:"customer_email"`
	CustomerPhone string        `gorm:"size:32" json:"customer_phone"`
	EventID       uuid.UUID     `gorm:"type:uuid;index;not null" json:"event_id"`
	EventTitle    string        `gorm:"not null;size:255" json:"event_title"`
	EventType     string        `gorm:"size:10;not null" json:"event_type"`
	SeatType      string        `gorm:"size:20;not null" json:"seat_type"`
	Amount        float64       `gorm:"not null" json:"amount"`
	ProcessingFee float64       `gorm:"not null" json:"processing_fee"`
	TotalAmount   float64       `gorm:"not null" json:"total_amount"`
	Status        Status        `gorm:"type:varchar(20);default:'pending';check:status IN ('pending','confirmed','cancelled')" json:"status"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentRef    string        `gorm:"index;size:255" json:"payment_ref"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`

	Claims []SeatClaim `json:"claims,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// SeatClaim records one seat taken by a booking. A partial unique index on
// (event_id, seat_label) over unreleased rows is the data-layer guard against
// double booking: two transactions claiming the same seat cannot both commit.
type SeatClaim struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"booking_id"`
	EventID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"event_id"`
	SeatLabel  string     `gorm:"not null;size:64" json:"seat_label"`
	Price      float64    `gorm:"not null" json:"price"`
	ReleasedAt *time.Time `gorm:"index" json:"released_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (SeatClaim) TableName() string {
	return "seat_claims"
}

// SeatLabels returns the booking's unreleased seat labels in claim order.
func (b *Booking) SeatLabels() []string {
	labels := make([]string, 0, len(b.Claims))
	for _, claim := range b.Claims {
		if claim.ReleasedAt == nil {
			labels = append(labels, claim.SeatLabel)
		}
	}
	return labels
}

type CreateBookingRequest struct {
	CustomerName  string   `json:"customer_name" binding:"required,min=2,max=255"`
	CustomerEmail string   `json:"customer_email" binding:"required,email"`
	CustomerPhone string   `json:"customer_phone" binding:"omitempty,max=32"`
	EventID       string   `json:"event_id" binding:"required,uuid"`
	Seats         []string `json:"seats" binding:"required,min=1,max=20"`
	PaymentMethod string   `json:"payment_method" binding:"required,oneof=paystack monnify cash"`
	PaymentRef    string   `json:"payment_ref" binding:"omitempty,max=255"`
	HoldID        string   `json:"hold_id" binding:"omitempty,uuid"`
}

type BookingListQuery struct {
	Page          int    `form:"page" binding:"omitempty,min=1"`
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=100"`
	EventID       string `form:"event_id" binding:"omitempty,uuid"`
	Status        string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	CustomerEmail string `form:"customer_email" binding:"omitempty,email"`
	DateFrom      string `form:"date_from"`
	DateTo        string `form:"date_to"`

	// CreatedFrom/CreatedTo bound created_at as a half-open [from, to)
	// interval with full instant precision. Set programmatically (reports
	// pass their window through here); when non-zero they take precedence
	// over the DateFrom/DateTo day strings.
	CreatedFrom time.Time `form:"-"`
	CreatedTo   time.Time `form:"-"`
}

type PaginatedBookings struct {
	Bookings   []Booking `json:"bookings"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

// BookingResponse flattens claims into seat labels for API consumers.
type BookingResponse struct {
	ID            string    `json:"id"`
	BookingCode   string    `json:"booking_code"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	EventID       string    `json:"event_id"`
	EventTitle    string    `json:"event_title"`
	EventType     string    `json:"event_type"`
	Seats         []string  `json:"seats"`
	SeatType      string    `json:"seat_type"`
	Amount        float64   `json:"amount"`
	ProcessingFee float64   `json:"processing_fee"`
	TotalAmount   float64   `json:"total_amount"`
	Status        Status    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	PaymentRef    string    `json:"payment_ref"`
	CreatedAt     time.Time `json:"created_at"`
}

func (b *Booking) ToResponse() *BookingResponse {
	seats := make([]string, 0, len(b.Claims))
	for _, claim := range b.Claims {
		seats = append(seats, claim.SeatLabel)
	}
	return &BookingResponse{
		ID:            b.ID.String(),
		BookingCode:   b.BookingCode,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		EventID:       b.EventID.String(),
		EventTitle:    b.EventTitle,
		EventType:     b.EventType,
		Seats:         seats,
		SeatType:      b.SeatType,
		Amount:        b.Amount,
		ProcessingFee: b.ProcessingFee,
		TotalAmount:   b.TotalAmount,
		Status:        b.Status,
		PaymentMethod: string(b.PaymentMethod),
		PaymentRef:    b.PaymentRef,
		CreatedAt:     b.CreatedAt,
	}
}
