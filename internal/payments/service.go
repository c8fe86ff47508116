package payments

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/bookings"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/config"
	"github.com/weakestcomrade/dexviewcinema-sub000/pkg/logger"
)

type Service interface {
	// InitializePayment starts a Paystack transaction for a pending booking.
	// The booking code doubles as the gateway reference.
	InitializePayment(ctx context.Context, bookingID string) (*InitializeResult, error)
	// VerifyPayment checks the gateway's settled state and confirms the
	// booking when the amount matches.
	VerifyPayment(ctx context.Context, reference string) (*bookings.BookingResponse, error)
	// HandlePaystackWebhook processes a signed webhook delivery.
	HandlePaystackWebhook(ctx context.Context, body []byte, signature string) error
	MonnifyKeys() MonnifyKeys
}

// BookingConfirmer is the slice of the bookings service the payment flow
// needs.
type BookingConfirmer interface {
	GetBookingByID(ctx context.Context, id string) (*bookings.BookingResponse, error)
	GetBookingByCode(ctx context.Context, code string) (*bookings.BookingResponse, error)
	ConfirmBooking(ctx context.Context, id string, paymentRef string) (*bookings.BookingResponse, error)
}

type service struct {
	paystack *PaystackClient
	booking  BookingConfirmer
	cfg      config.PaystackConfig
	monnify  config.MonnifyConfig
}

func NewService(paystack *PaystackClient, booking BookingConfirmer, cfg config.PaystackConfig, monnify config.MonnifyConfig) Service {
	return &service{paystack: paystack, booking: booking, cfg: cfg, monnify: monnify}
}

func (s *service) InitializePayment(ctx context.Context, bookingID string) (*InitializeResult, error) {
	booking, err := s.booking.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != bookings.StatusPending {
		return nil, bookings.ErrNotPending
	}

	amountKobo := int64(math.Round(booking.TotalAmount * 100))
	return s.paystack.Initialize(ctx, booking.CustomerEmail, amountKobo, booking.BookingCode, s.cfg.CallbackURL)
}

func (s *service) VerifyPayment(ctx context.Context, reference string) (*bookings.BookingResponse, error) {
	result, err := s.paystack.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, fmt.Errorf("%w: gateway status %q", ErrPaymentNotSuccessful, result.Status)
	}

	booking, err := s.booking.GetBookingByCode(ctx, reference)
	if err != nil {
		return nil, err
	}

	// The settled amount must equal the server-computed total; anything else
	// leaves the booking pending for manual review.
	if result.Amount != booking.TotalAmount {
		return nil, fmt.Errorf("%w: settled %.2f, expected %.2f", ErrAmountMismatch, result.Amount, booking.TotalAmount)
	}

	confirmed, err := s.booking.ConfirmBooking(ctx, booking.ID, result.Reference)
	if err != nil {
		return nil, err
	}

	logger.GetDefault().LogPaymentVerified(ctx, booking.ID, result.Reference, result.Amount)
	return confirmed, nil
}

func (s *service) HandlePaystackWebhook(ctx context.Context, body []byte, signature string) error {
	if !s.paystack.VerifyWebhookSignature(body, signature) {
		return ErrBadSignature
	}

	event := gjson.GetBytes(body, "event").String()
	if event != "charge.success" {
		// Other events are acknowledged without action.
		return nil
	}

	reference := gjson.GetBytes(body, "data.reference").String()
	if reference == "" {
		return fmt.Errorf("webhook payload missing transaction reference")
	}

	if _, err := s.VerifyPayment(ctx, reference); err != nil {
		// A booking already confirmed by the customer-initiated verify call
		// is a normal race with the webhook, not a failure.
		if errors.Is(err, bookings.ErrNotPending) {
			return nil
		}
		return err
	}
	return nil
}

func (s *service) MonnifyKeys() MonnifyKeys {
	return MonnifyKeys{
		PublicKey:    s.monnify.PublicKey,
		ContractCode: s.monnify.ContractCode,
	}
}
