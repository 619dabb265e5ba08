package domain

import "github.com/google/uuid"

// Screen is a named seating surface belonging to a theater. It owns the seat
// catalogue but not the showtime schedule; the theater is the single owner of
// showtimes and screens answer schedule questions through it.
type Screen struct {
	ID           uuid.UUID
	TheaterID    int
	ScreenNumber string
	IsEnabled    bool
	Seats        []Seat
}

func newScreen(theaterID int, screenNumber string) *Screen {
	return &Screen{
		ID:           uuid.New(),
		TheaterID:    theaterID,
		ScreenNumber: screenNumber,
		IsEnabled:    true,
		Seats:        []Seat{},
	}
}

// ReplaceSeats clears the catalogue and re-adds the given seat numbers with
// fresh identities. Updating seats is replace-all, not a merge.
func (s *Screen) ReplaceSeats(seatNumbers []string) {
	seats := make([]Seat, 0, len(seatNumbers))
	for _, number := range seatNumbers {
		seats = append(seats, newSeat(number))
	}

	s.Seats = seats
}

// seatsByNumbers resolves the requested seat numbers against the catalogue,
// preserving catalogue order. Unknown seat numbers fail the whole request.
func (s *Screen) seatsByNumbers(seatNumbers []string) ([]Seat, error) {
	requested := make(map[string]bool, len(seatNumbers))
	for _, number := range seatNumbers {
		requested[number] = true
	}

	seats := make([]Seat, 0, len(seatNumbers))
	for _, seat := range s.Seats {
		if requested[seat.SeatNumber] {
			seats = append(seats, seat)
			delete(requested, seat.SeatNumber)
		}
	}

	if len(requested) != 0 {
		for _, number := range seatNumbers {
			if requested[number] {
				return nil, notFoundf("Seat with number[%s] does not exist", number)
			}
		}
	}

	return seats, nil
}

func (s *Screen) disable() {
	s.IsEnabled = false
}

func (s *Screen) reenable() {
	s.IsEnabled = true
}
