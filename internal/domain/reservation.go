package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	ReservationStatusReserved  ReservationStatus = "RESERVED"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
)

// ReservationHoldDuration is how long a provisional hold blocks its seats
// before it may be swept away unconfirmed.
const ReservationHoldDuration = 20 * time.Minute

// SeatReservation is a hold over a set of seats for one showtime. It starts
// Reserved with a timeout and either gets confirmed (timeout cleared, hold
// becomes permanent) or lingers until the expiry sweep deletes it. There is
// no stored Expired state; expiry is derived from the timeout on demand.
type SeatReservation struct {
	ID                    uuid.UUID
	ShowtimeID            int
	Seats                 []Seat
	ReservationTimeUtc    time.Time
	ReservationTimeoutUtc *time.Time
	Status                ReservationStatus
	Price                 decimal.Decimal
}

func newSeatReservation(showtimeID int, seats []Seat, showtimePrice decimal.Decimal, now time.Time) *SeatReservation {
	timeout := now.Add(ReservationHoldDuration)

	return &SeatReservation{
		ID:                    uuid.New(),
		ShowtimeID:            showtimeID,
		Seats:                 seats,
		ReservationTimeUtc:    now,
		ReservationTimeoutUtc: &timeout,
		Status:                ReservationStatusReserved,
		Price:                 showtimePrice.Mul(decimal.NewFromInt(int64(len(seats)))),
	}
}

// Confirm transitions Reserved to Confirmed and clears the timeout, so a
// confirmed reservation can never be reported as timed out.
func (r *SeatReservation) Confirm() {
	r.Status = ReservationStatusConfirmed
	r.ReservationTimeoutUtc = nil
}

func (r *SeatReservation) IsReserved() bool {
	return r.Status == ReservationStatusReserved
}

// IsTimedOut reports whether the hold has lapsed. False at any instant up to
// and including the timeout, true strictly after it.
func (r *SeatReservation) IsTimedOut(now time.Time) bool {
	return r.Status == ReservationStatusReserved &&
		r.ReservationTimeoutUtc != nil &&
		r.ReservationTimeoutUtc.Before(now)
}

// IsActive reports whether the reservation still blocks its seats: confirmed,
// or reserved with a timeout that has not yet passed.
func (r *SeatReservation) IsActive(now time.Time) bool {
	return r.Status == ReservationStatusConfirmed || !r.IsTimedOut(now)
}

// Booking pairs a confirmed reservation with its completion timestamp.
// Immutable once created.
type Booking struct {
	ID                uuid.UUID
	ShowtimeID        int
	SeatReservationID uuid.UUID
	BookingTimeUtc    time.Time
}

func newBooking(showtimeID int, reservationID uuid.UUID, now time.Time) *Booking {
	return &Booking{
		ID:                uuid.New(),
		ShowtimeID:        showtimeID,
		SeatReservationID: reservationID,
		BookingTimeUtc:    now,
	}
}
