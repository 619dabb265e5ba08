package app

import (
	"net/http"
	"time"

	"github.com/mertkaracam/theater-chain-system/internal/domain"
)

type MovieRequest struct {
	Title          string    `json:"title" validate:"required,max=100"`
	Description    string    `json:"description" validate:"required,max=500"`
	Genre          string    `json:"genre" validate:"required,max=50"`
	DurationMins   int       `json:"durationMins" validate:"required,min=1,max=1440"`
	ReleaseDateUtc time.Time `json:"releaseDateUtc" validate:"required"`
}

type MovieResponse struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Genre          string    `json:"genre"`
	DurationMins   int       `json:"durationMins"`
	ReleaseDateUtc time.Time `json:"releaseDateUtc"`
	Status         string    `json:"status"`
}

func (app *application) GetMovies(w http.ResponseWriter, r *http.Request) {
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

	movies := make([]MovieResponse, len(chain.Movies))
	for i, movie := range chain.Movies {
		movies[i] = toMovieResponse(movie)
	}

	err = app.writeJSON(w, http.StatusOK, movies, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetMovie(w http.ResponseWriter, r *http.Request) {
	chainID, err := app.readIDParam(r, "chainID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movieID, err := app.readIDParam(r, "movieID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	chain, err := app.chainRepo.GetByID(r.Context(), chainID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	movie, err := chain.MovieByID(movieID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) AddMovie(w http.ResponseWriter, r *http.Request) {
	chainID, err := app.readIDParam(r, "chainID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req MovieRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.checkValidation(w, r, req) {
		return
	}

	var movie *domain.Movie
	_, err = app.withChain(r.Context(), chainID, func(chain *domain.TheaterChain) error {
		movie = chain.AddMovie(req.Title, req.Description, req.Genre, req.DurationMins, req.ReleaseDateUtc)
		return nil
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	chainID, err := app.readIDParam(r, "chainID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movieID, err := app.readIDParam(r, "movieID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req MovieRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.checkValidation(w, r, req) {
		return
	}

	chain, err := app.withChain(r.Context(), chainID, func(chain *domain.TheaterChain) error {
		return chain.UpdateMovie(movieID, req.Title, req.Description, req.Genre, req.DurationMins, req.ReleaseDateUtc)
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	movie, err := chain.MovieByID(movieID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) MarkMovieAsNoLongerAvailable(w http.ResponseWriter, r *http.Request) {
	app.setMovieAvailability(w, r, func(chain *domain.TheaterChain, movieID int) error {
		return chain.MarkMovieAsNoLongerAvailable(movieID)
	})
}

func (app *application) MarkMovieAsAvailable(w http.ResponseWriter, r *http.Request) {
	app.setMovieAvailability(w, r, func(chain *domain.TheaterChain, movieID int) error {
		return chain.MarkMovieAsAvailable(movieID)
	})
}

func (app *application) setMovieAvailability(w http.ResponseWriter, r *http.Request, transition func(*domain.TheaterChain, int) error) {
	chainID, err := app.readIDParam(r, "chainID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movieID, err := app.readIDParam(r, "movieID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	chain, err := app.withChain(r.Context(), chainID, func(chain *domain.TheaterChain) error {
		return transition(chain, movieID)
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	movie, err := chain.MovieByID(movieID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toMovieResponse(movie *domain.Movie) MovieResponse {
	return MovieResponse{
		ID:             movie.ID,
		Title:          movie.Title,
		Description:    movie.Description,
		Genre:          movie.Genre,
		DurationMins:   movie.DurationMins,
		ReleaseDateUtc: movie.ReleaseDateUtc,
		Status:         string(movie.Status),
	}
}
