package bookings

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/events"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/seatmap"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/config"
)

// fakeRepository models the database including the partial unique index on
// unreleased (event_id, seat_label) claims, so conflict behavior in tests
// matches what Postgres enforces.
type fakeRepository struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*Booking
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bookings: make(map[uuid.UUID]*Booking)}
}

func (r *fakeRepository) CreateWithClaims(_ context.Context, booking *Booking, claims []SeatClaim) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := make(map[string]struct{})
	for _, b := range r.bookings {
		for _, c := range b.Claims {
			if c.ReleasedAt == nil {
				active[c.EventID.String()+":"+c.SeatLabel] = struct{}{}
			}
		}
	}
	for _, c := range claims {
		if _, taken := active[c.EventID.String()+":"+c.SeatLabel]; taken {
			return ErrSeatAlreadyBooked
		}
	}

	for i := range claims {
		claims[i].BookingID = booking.ID
	}
	stored := *booking
	stored.Claims = append([]SeatClaim(nil), claims...)
	r.bookings[booking.ID] = &stored
	booking.Claims = claims
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *b
	out.Claims = append([]SeatClaim(nil), b.Claims...)
	return &out, nil
}

func (r *fakeRepository) GetByCode(_ context.Context, code string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BookingCode == code {
			out := *b
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepository) GetByPaymentRef(_ context.Context, ref string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.PaymentRef == ref {
			out := *b
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepository) List(_ context.Context, query BookingListQuery) (*PaginatedBookings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Booking
	for _, b := range r.bookings {
		if query.Status != "" && string(b.Status) != query.Status {
			continue
		}
		if query.CustomerEmail != "" && b.CustomerEmail != query.CustomerEmail {
			continue
		}
		out = append(out, *b)
	}
	return &PaginatedBookings{Bookings: out, TotalCount: int64(len(out)), Page: 1, Limit: len(out) + 1}, nil
}

func (r *fakeRepository) Cancel(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if b.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.Status = StatusCancelled
	b.CancelledAt = &at
	for i := range b.Claims {
		if b.Claims[i].ReleasedAt == nil {
			released := at
			b.Claims[i].ReleasedAt = &released
		}
	}
	return nil
}

func (r *fakeRepository) Confirm(_ context.Context, id uuid.UUID, paymentRef string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != StatusPending {
		return ErrNotPending
	}
	b.Status = StatusConfirmed
	if paymentRef != "" {
		b.PaymentRef = paymentRef
	}
	return nil
}

func (r *fakeRepository) ActiveSeatLabels(_ context.Context, eventID uuid.UUID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var labels []string
	for _, b := range r.bookings {
		for _, c := range b.Claims {
			if c.EventID == eventID && c.ReleasedAt == nil {
				labels = append(labels, c.SeatLabel)
			}
		}
	}
	return labels, nil
}

func (r *fakeRepository) ExpiredPending(_ context.Context, cutoff time.Time) ([]Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Booking
	for _, b := range r.bookings {
		if b.Status == StatusPending && b.CreatedAt.Before(cutoff) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepository) CountActiveClaims(ctx context.Context, eventID uuid.UUID) (int64, error) {
	labels, err := r.ActiveSeatLabels(ctx, eventID)
	return int64(len(labels)), err
}

// fakeEventSource serves one standard-hall event and regenerates the seat
// view from the repository's active claims on every call.
type fakeEventSource struct {
	event *events.Event
	hall  string
	repo  *fakeRepository
}

func (f *fakeEventSource) GetEventByID(_ context.Context, id string) (*events.Event, error) {
	if id != f.event.ID.String() {
		return nil, events.ErrEventNotFound
	}
	return f.event, nil
}

func (f *fakeEventSource) GetSeatmap(ctx context.Context, id string) (*events.SeatmapResponse, error) {
	if id != f.event.ID.String() {
		return nil, events.ErrEventNotFound
	}
	booked, err := f.repo.ActiveSeatLabels(ctx, f.event.ID)
	if err != nil {
		return nil, err
	}
	seats, err := seatmap.Generate(f.event.EventType, f.hall, seatmap.HallTypeStandard, 48, seatmap.Pricing(f.event.Pricing), booked)
	if err != nil {
		return nil, err
	}
	return &events.SeatmapResponse{
		EventID: id,
		Seats:   seats,
	}, nil
}

func newTestService(t *testing.T) (Service, *fakeRepository, *events.Event) {
	t.Helper()

	repo := newFakeRepository()
	event := &events.Event{
		ID:        uuid.New(),
		Title:     "Champions League Final Screening",
		EventType: seatmap.EventTypeMatch,
		Status:    events.StatusActive,
		Pricing: events.PricingMap{
			"standardSingle": {Price: 2500, Count: 48},
		},
		TotalSeats: 48,
	}
	source := &fakeEventSource{event: event, hall: "HALLA", repo: repo}

	cfg := config.BookingConfig{
		ProcessingFeeRate: 0.015,
		ProcessingFeeCap:  2000,
		PendingPaymentTTL: 30 * time.Minute,
	}
	return NewService(repo, source, cfg), repo, event
}

func validRequest(event *events.Event, seats ...string) CreateBookingRequest {
	return CreateBookingRequest{
		CustomerName:  "Ada Obi",
		CustomerEmail: "ada@example.com",
		CustomerPhone: "+2348012345678",
		EventID:       event.ID.String(),
		Seats:         seats,
		PaymentMethod: "cash",
	}
}

func TestCreateBookingComputesAmountServerSide(t *testing.T) {
	svc, _, event := newTestService(t)

	resp, err := svc.CreateBooking(context.Background(), validRequest(event, "HALLA-1", "HALLA-2"))
	require.NoError(t, err)

	assert.Equal(t, 5000.0, resp.Amount)
	assert.Equal(t, 75.0, resp.ProcessingFee)
	assert.Equal(t, 5075.0, resp.TotalAmount)
	assert.Equal(t, StatusConfirmed, resp.Status)
	assert.ElementsMatch(t, []string{"HALLA-1", "HALLA-2"}, resp.Seats)
	assert.Equal(t, "standard", resp.SeatType)
	assert.Equal(t, event.Title, resp.EventTitle)
}

func TestCreateBookingCodeFormat(t *testing.T) {
	svc, _, event := newTestService(t)

	resp, err := svc.CreateBooking(context.Background(), validRequest(event, "HALLA-5"))
	require.NoError(t, err)

	pattern := fmt.Sprintf(`^DVC-%s-[A-Z2-9]{6}$`, time.Now().Format("20060102"))
	assert.Regexp(t, regexp.MustCompile(pattern), resp.BookingCode)
}

func TestCreateBookingPaystackStaysPending(t *testing.T) {
	svc, _, event := newTestService(t)

	req := validRequest(event, "HALLA-3")
	req.PaymentMethod = "paystack"
	req.PaymentRef = "PSK-REF-123"

	resp, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
}

func TestCreateBookingRejectsBookedSeat(t *testing.T) {
	svc, _, event := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, validRequest(event, "HALLA-1"))
	require.NoError(t, err)

	req := validRequest(event, "HALLA-1")
	req.CustomerEmail = "second@example.com"
	_, err = svc.CreateBooking(ctx, req)
	assert.ErrorIs(t, err, ErrSeatAlreadyBooked)
}

func TestCreateBookingRejectsUnknownSeat(t *testing.T) {
	svc, _, event := newTestService(t)

	_, err := svc.CreateBooking(context.Background(), validRequest(event, "HALLZ-99"))
	assert.ErrorIs(t, err, seatmap.ErrUnknownSeat)
}

func TestCreateBookingRejectsInactiveEvent(t *testing.T) {
	svc, _, event := newTestService(t)
	event.Status = events.StatusDraft

	_, err := svc.CreateBooking(context.Background(), validRequest(event, "HALLA-1"))
	assert.ErrorIs(t, err, events.ErrEventNotActive)
}

// Two customers race for the same seat through the full booking path; the
// claim uniqueness check must let exactly one through.
func TestConcurrentBookingsSingleWinner(t *testing.T) {
	svc, _, event := newTestService(t)
	ctx := context.Background()

	const racers = 8
	var wg sync.WaitGroup
	results := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest(event, "HALLA-7")
			req.CustomerEmail = fmt.Sprintf("racer-%d@example.com", i)
			_, results[i] = svc.CreateBooking(ctx, req)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrSeatAlreadyBooked)
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent booking must succeed")
}

func TestCancelBookingReleasesSeats(t *testing.T) {
	svc, repo, event := newTestService(t)
	ctx := context.Background()

	resp, err := svc.CreateBooking(ctx, validRequest(event, "HALLA-10"))
	require.NoError(t, err)

	_, err = svc.CancelBooking(ctx, resp.ID)
	require.NoError(t, err)

	labels, err := repo.ActiveSeatLabels(ctx, event.ID)
	require.NoError(t, err)
	assert.NotContains(t, labels, "HALLA-10")

	// The seat is immediately resellable.
	req := validRequest(event, "HALLA-10")
	req.CustomerEmail = "next@example.com"
	_, err = svc.CreateBooking(ctx, req)
	assert.NoError(t, err)
}

func TestCancelBookingTwiceFails(t *testing.T) {
	svc, _, event := newTestService(t)
	ctx := context.Background()

	resp, err := svc.CreateBooking(ctx, validRequest(event, "HALLA-11"))
	require.NoError(t, err)

	_, err = svc.CancelBooking(ctx, resp.ID)
	require.NoError(t, err)

	_, err = svc.CancelBooking(ctx, resp.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestConfirmBookingFlipsPending(t *testing.T) {
	svc, _, event := newTestService(t)
	ctx := context.Background()

	req := validRequest(event, "HALLA-12")
	req.PaymentMethod = "paystack"
	resp, err := svc.CreateBooking(ctx, req)
	require.NoError(t, err)
	require.Equal(t, StatusPending, resp.Status)

	confirmed, err := svc.ConfirmBooking(ctx, resp.ID, "PSK-VERIFIED-1")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)
	assert.Equal(t, "PSK-VERIFIED-1", confirmed.PaymentRef)

	_, err = svc.ConfirmBooking(ctx, resp.ID, "PSK-VERIFIED-1")
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestSweepExpiredPendingReleasesClaims(t *testing.T) {
	svc, repo, event := newTestService(t)
	ctx := context.Background()

	req := validRequest(event, "HALLA-13")
	req.PaymentMethod = "paystack"
	resp, err := svc.CreateBooking(ctx, req)
	require.NoError(t, err)

	// Age the booking past the payment window.
	repo.mu.Lock()
	for _, b := range repo.bookings {
		if b.ID.String() == resp.ID {
			b.CreatedAt = time.Now().Add(-time.Hour)
		}
	}
	repo.mu.Unlock()

	swept, err := svc.SweepExpiredPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, swept)

	labels, err := repo.ActiveSeatLabels(ctx, event.ID)
	require.NoError(t, err)
	assert.NotContains(t, labels, "HALLA-13")
}

func TestProcessingFeeCap(t *testing.T) {
	svc := &service{cfg: config.BookingConfig{ProcessingFeeRate: 0.015, ProcessingFeeCap: 2000}}

	assert.Equal(t, 75.0, svc.processingFee(5000))
	assert.Equal(t, 2000.0, svc.processingFee(1000000))
}
