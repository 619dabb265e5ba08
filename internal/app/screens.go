package app

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mertkaracam/theater-chain-system/internal/domain"
)

type ScreenRequest struct {
	ScreenNumber string   `json:"screenNumber" validate:"required,max=10"`
	SeatNumbers  []string `json:"seatNumbers" validate:"omitempty,max=500,dive,seat_number"`
}

type ScreenResponse struct {
	ID           uuid.UUID `json:"id"`
	ScreenNumber string    `json:"screenNumber"`
	IsEnabled    bool      `json:"isEnabled"`
	SeatNumbers  []string  `json:"seatNumbers"`
}

func (app *application) AddScreen(w http.ResponseWriter, r *http.Request) {
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

	var req ScreenRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.checkValidation(w, r, req) {
		return
	}

	var screen *domain.Screen
	_, err = app.withChain(r.Context(), chainID, func(chain *domain.TheaterChain) error {
		theater, err := chain.TheaterByID(theaterID)
		if err != nil {
			return err
		}

		screen, err = theater.AddScreen(req.ScreenNumber, req.SeatNumbers)
		return err
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toScreenResponse(screen), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) UpdateScreen(w http.ResponseWriter, r *http.Request) {
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

	screenID, err := app.readScreenIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req ScreenRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.checkValidation(w, r, req) {
		return
	}

	var screen *domain.Screen
	_, err = app.withChain(r.Context(), chainID, func(chain *domain.TheaterChain) error {
		theater, err := chain.TheaterByID(theaterID)
		if err != nil {
			return err
		}

		screen, err = theater.UpdateScreen(screenID, req.ScreenNumber, req.SeatNumbers)
		return err
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toScreenResponse(screen), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) DisableScreen(w http.ResponseWriter, r *http.Request) {
	app.setScreenAvailability(w, r, func(theater *domain.Theater, screenID uuid.UUID) error {
		return theater.DisableScreen(screenID)
	})
}

func (app *application) ReenableScreen(w http.ResponseWriter, r *http.Request) {
	app.setScreenAvailability(w, r, func(theater *domain.Theater, screenID uuid.UUID) error {
		return theater.ReenableScreen(screenID)
	})
}

func (app *application) setScreenAvailability(w http.ResponseWriter, r *http.Request, transition func(*domain.Theater, uuid.UUID) error) {
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

	screenID, err := app.readScreenIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	_, err = app.withChain(r.Context(), chainID, func(chain *domain.TheaterChain) error {
		theater, err := chain.TheaterByID(theaterID)
		if err != nil {
			return err
		}

		return transition(theater, screenID)
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) readScreenIDParam(r *http.Request) (uuid.UUID, error) {
	screenID, err := uuid.Parse(chi.URLParam(r, "screenID"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid screenID parameter")
	}

	return screenID, nil
}

func toScreenResponse(screen *domain.Screen) ScreenResponse {
	seatNumbers := make([]string, len(screen.Seats))
	for i, seat := range screen.Seats {
		seatNumbers[i] = seat.SeatNumber
	}

	return ScreenResponse{
		ID:           screen.ID,
		ScreenNumber: screen.ScreenNumber,
		IsEnabled:    screen.IsEnabled,
		SeatNumbers:  seatNumbers,
	}
}
