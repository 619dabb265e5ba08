package app

import (
	"net/http"

	"github.com/mertkaracam/theater-chain-system/internal/domain"
)

type CreateTheaterChainRequest struct {
	ID          int    `json:"id" validate:"required,min=1"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=300"`
}

type TheaterChainResponse struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Movies      []MovieResponse   `json:"movies"`
	Theaters    []TheaterResponse `json:"theaters"`
}

func (app *application) CreateTheaterChain(w http.ResponseWriter, r *http.Request) {
	var req CreateTheaterChainRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.checkValidation(w, r, req) {
		return
	}

	chain := domain.NewTheaterChain(req.ID, req.Name, req.Description, app.clock)

	err = app.chainRepo.Create(r.Context(), chain)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toTheaterChainResponse(chain), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetTheaterChain(w http.ResponseWriter, r *http.Request) {
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

	err = app.writeJSON(w, http.StatusOK, toTheaterChainResponse(chain), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toTheaterChainResponse(chain *domain.TheaterChain) TheaterChainResponse {
	movies := make([]MovieResponse, len(chain.Movies))
	for i, movie := range chain.Movies {
		movies[i] = toMovieResponse(movie)
	}

	theaters := make([]TheaterResponse, len(chain.Theaters))
	for i, theater := range chain.Theaters {
		theaters[i] = toTheaterResponse(theater)
	}

	return TheaterChainResponse{
		ID:          chain.ID,
		Name:        chain.Name,
		Description: chain.Description,
		Movies:      movies,
		Theaters:    theaters,
	}
}
