package app

import (
	"net/http"

	"github.com/mertkaracam/theater-chain-system/internal/domain"
)

type TheaterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Location string `json:"location" validate:"required,max=200"`
}

type TheaterResponse struct {
	ID       int              `json:"id"`
	Name     string           `json:"name"`
	Location string           `json:"location"`
	Screens  []ScreenResponse `json:"screens"`
}

func (app *application) GetTheaters(w http.ResponseWriter, r *http.Request) {
	chainID, err := app.readIDParam(r, "chainID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	chain, err := app.chainRepo.GetByID(r.Context(), chainID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	theaters := make([]TheaterResponse, len(chain.Theaters))
	for i, theater := range chain.Theaters {
		theaters[i] = toTheaterResponse(theater)
	}

	err = app.writeJSON(w, http.StatusOK, theaters, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetTheater(w http.ResponseWriter, r *http.Request) {
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

	chain, err := app.chainRepo.GetByID(r.Context(), chainID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	theater, err := chain.TheaterByID(theaterID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toTheaterResponse(theater), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) AddTheater(w http.ResponseWriter, r *http.Request) {
	chainID, err := app.readIDParam(r, "chainID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req TheaterRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.checkValidation(w, r, req) {
		return
	}

	var theater *domain.Theater
	_, err = app.withChain(r.Context(), chainID, func(chain *domain.TheaterChain) error {
		var addErr error
		theater, addErr = chain.AddTheater(req.Name, req.Location)
		return addErr
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toTheaterResponse(theater), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) UpdateTheater(w http.ResponseWriter, r *http.Request) {
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

	var req TheaterRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.checkValidation(w, r, req) {
		return
	}

	chain, err := app.withChain(r.Context(), chainID, func(chain *domain.TheaterChain) error {
		return chain.UpdateTheater(theaterID, req.Name, req.Location)
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	theater, err := chain.TheaterByID(theaterID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toTheaterResponse(theater), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) RemoveTheater(w http.ResponseWriter, r *http.Request) {
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

	_, err = app.withChain(r.Context(), chainID, func(chain *domain.TheaterChain) error {
		return chain.RemoveTheater(theaterID)
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) GetTheaterMoviesWithActiveShowtimes(w http.ResponseWriter, r *http.Request) {
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

	chain, err := app.chainRepo.GetByID(r.Context(), chainID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	theater, err := chain.TheaterByID(theaterID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	movies := make([]MovieResponse, 0)
	for _, movie := range theater.MoviesWithActiveShowtimes() {
		movies = append(movies, toMovieResponse(movie))
	}

	err = app.writeJSON(w, http.StatusOK, movies, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toTheaterResponse(theater *domain.Theater) TheaterResponse {
	screens := make([]ScreenResponse, len(theater.Screens))
	for i, screen := range theater.Screens {
		screens[i] = toScreenResponse(screen)
	}

	return TheaterResponse{
		ID:       theater.ID,
		Name:     theater.Name,
		Location: theater.Location,
		Screens:  screens,
	}
}
