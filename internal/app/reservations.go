package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mertkaracam/theater-chain-system/internal/domain"
	"github.com/shopspring/decimal"
)

type ReserveSeatsRequest struct {
	SeatNumbers []string `json:"seatNumbers" validate:"required,min=1,max=20,dive,seat_number"`
}

type ReservationResponse struct {
	ID                    uuid.UUID       `json:"id"`
	ShowtimeID            int             `json:"showtimeId"`
	SeatNumbers           []string        `json:"seatNumbers"`
	Status                string          `json:"status"`
	Price                 decimal.Decimal `json:"price"`
	ReservationTimeUtc    time.Time       `json:"reservationTimeUtc"`
	ReservationTimeoutUtc *time.Time      `json:"reservationTimeoutUtc,omitempty"`
}

type BookingResponse struct {
	ID                uuid.UUID `json:"id"`
	ShowtimeID        int       `json:"showtimeId"`
	SeatReservationID uuid.UUID `json:"seatReservationId"`
	BookingTimeUtc    time.Time `json:"bookingTimeUtc"`
}

// ReserveSeats places a provisional hold on the requested seats. The hold
// blocks the seats for twenty minutes; an unconfirmed hold lapses and is
// swept away in the background.
func (app *application) ReserveSeats(w http.ResponseWriter, r *http.Request) {
	chainID, err := app.readIDParam(r, "chainID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	theaterID, err := app.readIDParam(r, "theaterID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtimeID, err := app.readIDParam(r, "showtimeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req ReserveSeatsRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.checkValidation(w, r, req) {
		return
	}

	var reservation *domain.SeatReservation
	_, err = app.withChain(r.Context(), chainID, func(chain *domain.TheaterChain) error {
		theater, err := chain.TheaterByID(theaterID)
		if err != nil {
			return err
		}

		showtime, err := theater.ActiveShowtimeByID(showtimeID)
		if err != nil {
			return err
		}

		reservation, err = showtime.ProvisionallyReserveSeats(req.SeatNumbers)
		return err
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.invalidateShowtimeCache(r.Context(), chainID, theaterID)

	err = app.writeJSON(w, http.StatusCreated, toReservationResponse(reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ConfirmReservation completes the booking for a provisional hold.
func (app *application) ConfirmReservation(w http.ResponseWriter, r *http.Request) {
	chainID, err := app.readIDParam(r, "chainID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	theaterID, err := app.readIDParam(r, "theaterID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtimeID, err := app.readIDParam(r, "showtimeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reservationID, err := uuid.Parse(chi.URLParam(r, "reservationID"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid reservationID parameter"))
		return
	}

	var booking *domain.Booking
	_, err = app.withChain(r.Context(), chainID, func(chain *domain.TheaterChain) error {
		theater, err := chain.TheaterByID(theaterID)
		if err != nil {
			return err
		}

		showtime, err := theater.ActiveShowtimeByID(showtimeID)
		if err != nil {
			return err
		}

		booking, err = showtime.ConfirmReservation(reservationID)
		return err
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toReservationResponse(reservation *domain.SeatReservation) ReservationResponse {
	seatNumbers := make([]string, len(reservation.Seats))
	for i, seat := range reservation.Seats {
		seatNumbers[i] = seat.SeatNumber
	}

	return ReservationResponse{
		ID:                    reservation.ID,
		ShowtimeID:            reservation.ShowtimeID,
		SeatNumbers:           seatNumbers,
		Status:                string(reservation.Status),
		Price:                 reservation.Price,
		ReservationTimeUtc:    reservation.ReservationTimeUtc,
		ReservationTimeoutUtc: reservation.ReservationTimeoutUtc,
	}
}

func toBookingResponse(booking *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:                booking.ID,
		ShowtimeID:        booking.ShowtimeID,
		SeatReservationID: booking.SeatReservationID,
		BookingTimeUtc:    booking.BookingTimeUtc,
	}
}
