package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Showtime is a scheduled screening of a movie on a screen. It owns the seat
// reservations and bookings made against it and computes availability fresh
// on every call; there are no cached counters.
//
// Showtimes are constructed only by their owning Theater.
type Showtime struct {
	ID               int
	MovieID          int
	ScreenID         uuid.UUID
	ShowDateTimeUtc  time.Time
	Price            decimal.Decimal
	SeatReservations []*SeatReservation
	Bookings         []*Booking

	screen *Screen
	clock  Clock
}

func newShowtime(id int, movie *Movie, screen *Screen, showDateTimeUtc time.Time, price decimal.Decimal, clock Clock) *Showtime {
	return &Showtime{
		ID:               id,
		MovieID:          movie.ID,
		ScreenID:         screen.ID,
		ShowDateTimeUtc:  showDateTimeUtc,
		Price:            price,
		SeatReservations: []*SeatReservation{},
		Bookings:         []*Booking{},
		screen:           screen,
		clock:            clock,
	}
}

// AvailableSeats is the screen's seat count minus the seats held by active
// reservations.
func (s *Showtime) AvailableSeats() int {
	now := s.clock.Now()

	held := 0
	for _, reservation := range s.SeatReservations {
		if reservation.IsActive(now) {
			held += len(reservation.Seats)
		}
	}

	return len(s.screen.Seats) - held
}

// ProvisionallyReserveSeats places a 20-minute hold on the requested seats.
// If any requested seat is already held by an active reservation, the request
// fails naming exactly the conflicting seat numbers, in their order of
// appearance in the existing reservations.
func (s *Showtime) ProvisionallyReserveSeats(seatNumbers []string) (*SeatReservation, error) {
	now := s.clock.Now()

	requested := make(map[string]bool, len(seatNumbers))
	for _, number := range seatNumbers {
		requested[number] = true
	}

	var conflicting []string
	for _, reservation := range s.SeatReservations {
		if !reservation.IsActive(now) {
			continue
		}

		for _, seat := range reservation.Seats {
			if requested[seat.SeatNumber] {
				conflicting = append(conflicting, seat.SeatNumber)
			}
		}
	}

	if len(conflicting) != 0 {
		return nil, conflictf("Seats no longer available [%s]", strings.Join(conflicting, ","))
	}

	seats, err := s.screen.seatsByNumbers(seatNumbers)
	if err != nil {
		return nil, err
	}

	reservation := newSeatReservation(s.ID, seats, s.Price, now)
	s.SeatReservations = append(s.SeatReservations, reservation)

	return reservation, nil
}

// ConfirmReservation completes the booking for a provisional hold. The checks
// run in a fixed order: existence, then already-booked, then timeout, so a
// confirmed reservation always reports "already booked" rather than "timed
// out".
func (s *Showtime) ConfirmReservation(reservationID uuid.UUID) (*Booking, error) {
	var reservation *SeatReservation
	for _, candidate := range s.SeatReservations {
		if candidate.ID == reservationID {
			reservation = candidate
			break
		}
	}

	now := s.clock.Now()

	switch {
	case reservation == nil:
		return nil, notFoundf("Seat reservation timed out, or invalid")
	case !reservation.IsReserved():
		return nil, conflictf("Seat reservation is already booked")
	case reservation.IsTimedOut(now):
		return nil, conflictf("Seat reservation timed out")
	}

	reservation.Confirm()

	booking := newBooking(s.ID, reservation.ID, now)
	s.Bookings = append(s.Bookings, booking)

	return booking, nil
}

// HasActiveSeatReservations gates showtime mutation and removal.
func (s *Showtime) HasActiveSeatReservations() bool {
	now := s.clock.Now()

	for _, reservation := range s.SeatReservations {
		if reservation.IsActive(now) {
			return true
		}
	}

	return false
}

// ClearExpiredSeatReservations drops reservations that are still Reserved and
// past their timeout, returning how many were removed. Confirmed reservations
// are never swept.
func (s *Showtime) ClearExpiredSeatReservations() int {
	now := s.clock.Now()

	kept := s.SeatReservations[:0]
	removed := 0
	for _, reservation := range s.SeatReservations {
		if reservation.IsTimedOut(now) {
			removed++
			continue
		}
		kept = append(kept, reservation)
	}

	s.SeatReservations = kept

	return removed
}

// SeatReservationByID returns the reservation with the given id, or nil.
func (s *Showtime) SeatReservationByID(reservationID uuid.UUID) *SeatReservation {
	for _, reservation := range s.SeatReservations {
		if reservation.ID == reservationID {
			return reservation
		}
	}

	return nil
}

func (s *Showtime) updateInformation(newDateTime time.Time, newPrice decimal.Decimal, screen *Screen) {
	s.ShowDateTimeUtc = newDateTime
	s.Price = newPrice
	s.ScreenID = screen.ID
	s.screen = screen
}
