package domain

import "github.com/google/uuid"

// Seat is an immutable identity plus a label. Seats are identity-compared by
// ID and matched against reservation requests by SeatNumber.
type Seat struct {
	ID         uuid.UUID
	SeatNumber string
}

func newSeat(seatNumber string) Seat {
	return Seat{
		ID:         uuid.New(),
		SeatNumber: seatNumber,
	}
}
