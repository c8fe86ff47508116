package seatmap

import "errors"

var ErrCategoryLocked = errors.New("selection is locked to another seat category")

// Mode controls how a Selection accumulates seats.
type Mode int

const (
	// ModeMulti accumulates seats of one category.
	ModeMulti Mode = iota
	// ModeSingleton keeps at most one seat; a new pick replaces the old one.
	// Used for VIP movie pods where a customer books exactly one unit.
	ModeSingleton
)

// ModeFor returns the selection mode for an event/hall combination.
func ModeFor(eventType EventType, hallType HallType) Mode {
	if eventType == EventTypeMovie && hallType == HallTypeVIP {
		return ModeSingleton
	}
	return ModeMulti
}

// Selection tracks the seats a customer has picked before checkout. Once a
// seat is selected the category is locked; deselecting the last seat unlocks
// it again.
type Selection struct {
	mode     Mode
	seats    []Seat
	category Category
}

func NewSelection(mode Mode) *Selection {
	return &Selection{mode: mode}
}

// Toggle selects the seat if absent and deselects it if present.
func (s *Selection) Toggle(seat Seat) error {
	if seat.Booked {
		return ErrSeatBooked
	}

	if idx := s.indexOf(seat.ID); idx >= 0 {
		s.seats = append(s.seats[:idx], s.seats[idx+1:]...)
		if len(s.seats) == 0 {
			s.category = ""
		}
		return nil
	}

	if s.mode == ModeSingleton {
		s.seats = []Seat{seat}
		s.category = seat.Category
		return nil
	}

	if s.category != "" && seat.Category != s.category {
		return ErrCategoryLocked
	}

	s.seats = append(s.seats, seat)
	s.category = seat.Category
	return nil
}

// Clear drops every selected seat and unlocks the category.
func (s *Selection) Clear() {
	s.seats = nil
	s.category = ""
}

// Seats returns the selected seats in selection order.
func (s *Selection) Seats() []Seat {
	out := make([]Seat, len(s.seats))
	copy(out, s.seats)
	return out
}

// IDs returns the selected seat labels in selection order.
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.seats))
	for _, seat := range s.seats {
		ids = append(ids, seat.ID)
	}
	return ids
}

// Category returns the locked category, or "" when nothing is selected.
func (s *Selection) Category() Category {
	return s.category
}

// TotalPrice sums the per-category prices of the selected seats.
func (s *Selection) TotalPrice() float64 {
	var total float64
	for _, seat := range s.seats {
		total += seat.Price
	}
	return total
}

func (s *Selection) indexOf(id string) int {
	for i, seat := range s.seats {
		if seat.ID == id {
			return i
		}
	}
	return -1
}
