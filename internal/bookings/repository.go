package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// CreateWithClaims inserts the booking and its seat claims in one
	// transaction. A unique violation on the claim index aborts the whole
	// write and surfaces as ErrSeatAlreadyBooked.
	CreateWithClaims(ctx context.Context, booking *Booking, claims []SeatClaim) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByCode(ctx context.Context, code string) (*Booking, error)
	GetByPaymentRef(ctx context.Context, ref string) (*Booking, error)
	List(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error)
	// Cancel marks the booking cancelled and releases its claims in one
	// transaction, making the seats immediately resellable.
	Cancel(ctx context.Context, id uuid.UUID, at time.Time) error
	Confirm(ctx context.Context, id uuid.UUID, paymentRef string) error
	// ActiveSeatLabels returns the unreleased claim labels for an event.
	ActiveSeatLabels(ctx context.Context, eventID uuid.UUID) ([]string, error)
	// ExpiredPending returns pending bookings created before the cutoff.
	ExpiredPending(ctx context.Context, cutoff time.Time) ([]Booking, error)
	CountActiveClaims(ctx context.Context, eventID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithClaims(ctx context.Context, booking *Booking, claims []SeatClaim) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return err
		}
		for i := range claims {
			claims[i].BookingID = booking.ID
		}
		if err := tx.Create(&claims).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSeatAlreadyBooked
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	booking.Claims = claims
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Preload("Claims").Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Preload("Claims").Where("booking_code = ?", code).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByPaymentRef(ctx context.Context, ref string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Preload("Claims").Where("payment_ref = ?", ref).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) List(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error) {
	var bookings []Booking
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Booking{})

	if query.EventID != "" {
		db = db.Where("event_id = ?", query.EventID)
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.CustomerEmail != "" {
		db = db.Where("LOWER(customer_email) = LOWER(?)", query.CustomerEmail)
	}
	switch {
	case !query.CreatedFrom.IsZero() || !query.CreatedTo.IsZero():
		if !query.CreatedFrom.IsZero() {
			db = db.Where("created_at >= ?", query.CreatedFrom)
		}
		if !query.CreatedTo.IsZero() {
			db = db.Where("created_at < ?", query.CreatedTo)
		}
	default:
		if query.DateFrom != "" {
			if from, err := time.Parse("2006-01-02", query.DateFrom); err == nil {
				db = db.Where("created_at >= ?", from)
			}
		}
		if query.DateTo != "" {
			if to, err := time.Parse("2006-01-02", query.DateTo); err == nil {
				db = db.Where("created_at < ?", to.AddDate(0, 0, 1))
			}
		}
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, err
	}

	offset := (query.Page - 1) * query.Limit
	err := db.Preload("Claims").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((totalCount + int64(query.Limit) - 1) / int64(query.Limit))
	return &PaginatedBookings{
		Bookings:   bookings,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (r *repository) Cancel(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Booking{}).
			Where("id = ? AND status != ?", id, StatusCancelled).
			Updates(map[string]interface{}{
				"status":       StatusCancelled,
				"cancelled_at": at,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyCancelled
		}

		return tx.Model(&SeatClaim{}).
			Where("booking_id = ? AND released_at IS NULL", id).
			Update("released_at", at).Error
	})
}

func (r *repository) Confirm(ctx context.Context, id uuid.UUID, paymentRef string) error {
	updates := map[string]interface{}{"status": StatusConfirmed}
	if paymentRef != "" {
		updates["payment_ref"] = paymentRef
	}
	result := r.db.WithContext(ctx).Model(&Booking{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}

func (r *repository) ActiveSeatLabels(ctx context.Context, eventID uuid.UUID) ([]string, error) {
	var labels []string
	err := r.db.WithContext(ctx).Model(&SeatClaim{}).
		Where("event_id = ? AND released_at IS NULL", eventID).
		Order("created_at ASC").
		Pluck("seat_label", &labels).Error
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *repository) ExpiredPending(ctx context.Context, cutoff time.Time) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).Preload("Claims").
		Where("status = ? AND created_at < ?", StatusPending, cutoff).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) CountActiveClaims(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&SeatClaim{}).
		Where("event_id = ? AND released_at IS NULL", eventID).
		Count(&count).Error
	return count, err
}
