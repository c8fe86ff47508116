// Package seatmap generates seat layouts and prices for events. It is the
// single source of truth for hall plans: every surface that renders or
// validates a seat map goes through Generate rather than keeping its own copy
// of the layout rules.
package seatmap

import (
	"errors"
	"fmt"
	"strings"
)

type EventType string

const (
	EventTypeMovie EventType = "movie"
	EventTypeMatch EventType = "match"
)

type HallType string

const (
	HallTypeStandard HallType = "standard"
	HallTypeVIP      HallType = "vip"
)

// Category identifies a seat pricing class.
type Category string

const (
	CategorySofa     Category = "sofa"
	CategoryRegular  Category = "regular"
	CategorySingle   Category = "single"
	CategoryCouple   Category = "couple"
	CategoryFamily   Category = "family"
	CategoryStandard Category = "standard"
)

var (
	ErrInvalidEventType = errors.New("invalid event type")
	ErrInvalidHallType  = errors.New("invalid hall type")
	ErrInvalidCapacity  = errors.New("hall capacity must be positive")
	ErrUnpricedCategory = errors.New("no price configured for seat category")
	ErrUnknownSeat      = errors.New("seat is not part of this layout")
	ErrSeatBooked       = errors.New("seat is already booked")
	ErrMixedCategories  = errors.New("seats span multiple categories")
	ErrEmptySelection   = errors.New("no seats selected")
)

// PriceTier is one entry of an event's pricing snapshot.
type PriceTier struct {
	Price float64 `json:"price"`
	Count int     `json:"count"`
}

// Pricing is an event's pricing snapshot, keyed by seat category.
type Pricing map[string]PriceTier

// Seat is a single generated seat descriptor.
type Seat struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Price    float64  `json:"price"`
	Booked   bool     `json:"booked"`
}

// block is a run of same-category seat labels inside a plan.
type block struct {
	category Category
	labels   []string
}

// VIP plans carry fixed seat counts that intentionally ignore the hall's
// capacity field. Standard halls are laid out 1..capacity.
func vipMatchBlocks() []block {
	sofas := make([]string, 0, 10)
	for _, row := range []string{"S1", "S2"} {
		for n := 1; n <= 5; n++ {
			sofas = append(sofas, fmt.Sprintf("%s_%d", row, n))
		}
	}
	regulars := make([]string, 0, 12)
	for _, row := range []string{"A", "B"} {
		for n := 1; n <= 6; n++ {
			regulars = append(regulars, fmt.Sprintf("%s%d", row, n))
		}
	}
	return []block{
		{category: CategorySofa, labels: sofas},
		{category: CategoryRegular, labels: regulars},
	}
}

func vipMovieBlocks() []block {
	return []block{
		{category: CategorySingle, labels: numbered("S", 20)},
		{category: CategoryCouple, labels: numbered("C", 7)},
		{category: CategoryFamily, labels: numbered("F", 14)},
	}
}

func standardBlocks(hallID string, capacity int) []block {
	prefix := strings.ToUpper(hallID)
	labels := make([]string, 0, capacity)
	for n := 1; n <= capacity; n++ {
		labels = append(labels, fmt.Sprintf("%s-%d", prefix, n))
	}
	return []block{{category: CategoryStandard, labels: labels}}
}

func numbered(prefix string, count int) []string {
	labels := make([]string, 0, count)
	for n := 1; n <= count; n++ {
		labels = append(labels, fmt.Sprintf("%s%d", prefix, n))
	}
	return labels
}

func planBlocks(eventType EventType, hallID string, hallType HallType, capacity int) ([]block, error) {
	switch eventType {
	case EventTypeMovie, EventTypeMatch:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidEventType, eventType)
	}

	switch hallType {
	case HallTypeVIP:
		if eventType == EventTypeMatch {
			return vipMatchBlocks(), nil
		}
		return vipMovieBlocks(), nil
	case HallTypeStandard:
		if capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		return standardBlocks(hallID, capacity), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidHallType, hallType)
	}
}

// PlanSeatCount returns the number of seats a layout will contain.
func PlanSeatCount(eventType EventType, hallType HallType, capacity int) (int, error) {
	blocks, err := planBlocks(eventType, "X", hallType, capacity)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, b := range blocks {
		total += len(b.labels)
	}
	return total, nil
}

// PlanCategories returns the seat categories a layout will contain, in order.
func PlanCategories(eventType EventType, hallType HallType) ([]Category, error) {
	blocks, err := planBlocks(eventType, "X", hallType, 1)
	if err != nil {
		return nil, err
	}
	cats := make([]Category, 0, len(blocks))
	for _, b := range blocks {
		cats = append(cats, b.category)
	}
	return cats, nil
}

// Generate builds the ordered seat list for an event. Booked flags come from
// the caller-supplied active claim labels; prices come from the event's
// pricing snapshot.
func Generate(eventType EventType, hallID string, hallType HallType, capacity int, pricing Pricing, bookedSeatIDs []string) ([]Seat, error) {
	blocks, err := planBlocks(eventType, hallID, hallType, capacity)
	if err != nil {
		return nil, err
	}

	booked := make(map[string]struct{}, len(bookedSeatIDs))
	for _, id := range bookedSeatIDs {
		booked[id] = struct{}{}
	}

	var seats []Seat
	for _, b := range blocks {
		price, err := priceFor(pricing, b.category)
		if err != nil {
			return nil, err
		}
		for _, label := range b.labels {
			_, isBooked := booked[label]
			seats = append(seats, Seat{
				ID:       label,
				Category: b.category,
				Price:    price,
				Booked:   isBooked,
			})
		}
	}

	return seats, nil
}

// priceFor resolves a category against the pricing snapshot. Standard seats
// tolerate the legacy "standardSingle" key, and a snapshot with a single tier
// prices the whole standard layout.
func priceFor(pricing Pricing, category Category) (float64, error) {
	if tier, ok := pricing[string(category)]; ok {
		return tier.Price, nil
	}

	if category == CategoryStandard {
		if tier, ok := pricing["standardSingle"]; ok {
			return tier.Price, nil
		}
		if len(pricing) == 1 {
			for _, tier := range pricing {
				return tier.Price, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnpricedCategory, category)
}

// Quote is the server-side valuation of a seat selection.
type Quote struct {
	Category Category
	Seats    []Seat
	Subtotal float64
}

// QuoteSeats revalidates a client-submitted seat selection against a generated
// layout: every seat must exist, be unbooked, and share one category. The
// returned subtotal is the only amount trusted for billing.
func QuoteSeats(layout []Seat, seatIDs []string) (*Quote, error) {
	if len(seatIDs) == 0 {
		return nil, ErrEmptySelection
	}

	byID := make(map[string]Seat, len(layout))
	for _, seat := range layout {
		byID[seat.ID] = seat
	}

	quote := &Quote{}
	seen := make(map[string]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		seat, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSeat, id)
		}
		if seat.Booked {
			return nil, fmt.Errorf("%w: %q", ErrSeatBooked, id)
		}
		if quote.Category == "" {
			quote.Category = seat.Category
		} else if seat.Category != quote.Category {
			return nil, ErrMixedCategories
		}
		quote.Seats = append(quote.Seats, seat)
		quote.Subtotal += seat.Price
	}

	return quote, nil
}
