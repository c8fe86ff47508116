package notifications

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	MessageTypeBookingConfirmed MessageType = "booking.confirmed"
	MessageTypeBookingCancelled MessageType = "booking.cancelled"
)

type MessageStatus string

const (
	MessageStatusQueued  MessageStatus = "QUEUED"
	MessageStatusSending MessageStatus = "SENDING"
	MessageStatusSent    MessageStatus = "SENT"
	MessageStatusFailed  MessageStatus = "FAILED"
)

// BookingMessage is the wire format published to the booking notification
// topic. One message per booking lifecycle transition.
type BookingMessage struct {
	ID             string        `json:"id"`
	Type           MessageType   `json:"type"`
	Status         MessageStatus `json:"status"`
	BookingID      string        `json:"booking_id"`
	BookingCode    string        `json:"booking_code"`
	RecipientName  string        `json:"recipient_name"`
	RecipientEmail string        `json:"recipient_email"`
	EventTitle     string        `json:"event_title"`
	EventType      string        `json:"event_type"`
	Seats          []string      `json:"seats"`
	TotalAmount    float64       `json:"total_amount"`
	PaymentMethod  string        `json:"payment_method"`
	CreatedAt      time.Time     `json:"created_at"`
	LastError      string        `json:"last_error,omitempty"`
}

func (m *BookingMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// GetPartitionKey routes all messages for a customer to the same partition
// so per-customer ordering holds.
func (m *BookingMessage) GetPartitionKey() string {
	return m.RecipientEmail
}
