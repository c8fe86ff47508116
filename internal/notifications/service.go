package notifications

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/bookings"
)

// Service publishes booking lifecycle notifications. With a nil producer it
// degrades to log-only mode, which is what single-node deployments without
// Kafka run.
type Service struct {
	producer Producer
}

func NewService(producer Producer) *Service {
	return &Service{producer: producer}
}

func (s *Service) PublishBookingConfirmed(ctx context.Context, booking *bookings.BookingResponse) error {
	return s.publish(ctx, MessageTypeBookingConfirmed, booking)
}

func (s *Service) PublishBookingCancelled(ctx context.Context, booking *bookings.BookingResponse) error {
	return s.publish(ctx, MessageTypeBookingCancelled, booking)
}

func (s *Service) publish(ctx context.Context, messageType MessageType, booking *bookings.BookingResponse) error {
	if s.producer == nil {
		log.Printf("Notifications disabled: %s for booking %s (%s)",
			messageType, booking.BookingCode, booking.CustomerEmail)
		return nil
	}

	message := &BookingMessage{
		ID:             uuid.New().String(),
		Type:           messageType,
		BookingID:      booking.ID,
		BookingCode:    booking.BookingCode,
		RecipientName:  booking.CustomerName,
		RecipientEmail: booking.CustomerEmail,
		EventTitle:     booking.EventTitle,
		EventType:      booking.EventType,
		Seats:          booking.Seats,
		TotalAmount:    booking.TotalAmount,
		PaymentMethod:  booking.PaymentMethod,
		CreatedAt:      time.Now(),
	}

	return s.producer.Publish(ctx, message)
}

// Close shuts the underlying producer down.
func (s *Service) Close() error {
	if s.producer == nil {
		return nil
	}
	return s.producer.Close()
}
