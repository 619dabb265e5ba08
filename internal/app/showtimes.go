package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mertkaracam/theater-chain-system/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const showtimeCacheTTL = time.Minute

type ShowtimeRequest struct {
	MovieID         int             `json:"movieId" validate:"required,min=1"`
	ScreenID        uuid.UUID       `json:"screenId" validate:"required"`
	ShowDateTimeUtc time.Time       `json:"showDateTimeUtc" validate:"required"`
	Price           decimal.Decimal `json:"price"`
}

type UpdateShowtimeRequest struct {
	ScreenID        uuid.UUID       `json:"screenId" validate:"required"`
	ShowDateTimeUtc time.Time       `json:"showDateTimeUtc" validate:"required"`
	Price           decimal.Decimal `json:"price"`
}

type ShowtimeResponse struct {
	ID              int             `json:"id"`
	MovieID         int             `json:"movieId"`
	ScreenID        uuid.UUID       `json:"screenId"`
	ShowDateTimeUtc time.Time       `json:"showDateTimeUtc"`
	Price           decimal.Decimal `json:"price"`
	AvailableSeats  int             `json:"availableSeats"`
}

// GetActiveShowtimes serves the theater's upcoming schedule, the hottest read
// path. Responses are cached in Redis for up to a minute; every schedule or
// reservation mutation on the theater drops the cached entry.
func (app *application) GetActiveShowtimes(w http.ResponseWriter, r *http.Request) {
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

	cacheKey := showtimeCacheKey(chainID, theaterID)

	cached, err := app.redis.Get(r.Context(), cacheKey).Bytes()
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(cached)
		return
	}
	if !errors.Is(err, redis.Nil) {
		app.logError(r, err)
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

	showtimes := make([]ShowtimeResponse, 0)
	for _, showtime := range theater.ActiveShowtimes() {
		showtimes = append(showtimes, toShowtimeResponse(showtime))
	}

	err = app.writeAndCacheJSON(w, r, cacheKey, showtimes)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) AddShowtime(w http.ResponseWriter, r *http.Request) {
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

	var req ShowtimeRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.checkValidation(w, r, req) {
		return
	}

	var showtime *domain.Showtime
	_, err = app.withChain(r.Context(), chainID, func(chain *domain.TheaterChain) error {
		theater, err := chain.TheaterByID(theaterID)
		if err != nil {
			return err
		}

		showtime, err = theater.AddShowtime(req.ShowDateTimeUtc, req.Price, req.ScreenID, req.MovieID)
		return err
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.invalidateShowtimeCache(r.Context(), chainID, theaterID)

	err = app.writeJSON(w, http.StatusCreated, toShowtimeResponse(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) UpdateShowtime(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateShowtimeRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.checkValidation(w, r, req) {
		return
	}

	var showtime *domain.Showtime
	_, err = app.withChain(r.Context(), chainID, func(chain *domain.TheaterChain) error {
		theater, err := chain.TheaterByID(theaterID)
		if err != nil {
			return err
		}

		err = theater.UpdateShowtime(showtimeID, req.ShowDateTimeUtc, req.Price, req.ScreenID)
		if err != nil {
			return err
		}

		showtime, err = theater.ActiveShowtimeByID(showtimeID)
		return err
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.invalidateShowtimeCache(r.Context(), chainID, theaterID)

	err = app.writeJSON(w, http.StatusOK, toShowtimeResponse(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) RemoveShowtime(w http.ResponseWriter, r *http.Request) {
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

	_, err = app.withChain(r.Context(), chainID, func(chain *domain.TheaterChain) error {
		theater, err := chain.TheaterByID(theaterID)
		if err != nil {
			return err
		}

		return theater.RemoveShowtime(showtimeID)
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.invalidateShowtimeCache(r.Context(), chainID, theaterID)

	w.WriteHeader(http.StatusNoContent)
}

// writeAndCacheJSON writes the listing response and stores the same bytes in
// Redis. A cache write failure is logged but never fails the request.
func (app *application) writeAndCacheJSON(w http.ResponseWriter, r *http.Request, cacheKey string, data any) error {
	err := app.writeJSON(w, http.StatusOK, data, nil)
	if err != nil {
		return err
	}

	body, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	body = append(body, '\n')

	err = app.redis.Set(r.Context(), cacheKey, body, showtimeCacheTTL).Err()
	if err != nil {
		app.logError(r, err)
	}

	return nil
}

func (app *application) invalidateShowtimeCache(ctx context.Context, chainID, theaterID int) {
	err := app.redis.Del(ctx, showtimeCacheKey(chainID, theaterID)).Err()
	if err != nil {
		app.logger.Error("failed to invalidate showtime cache", "chain_id", chainID, "theater_id", theaterID, "error", err)
	}
}

func showtimeCacheKey(chainID, theaterID int) string {
	return fmt.Sprintf("showtimes:%d:%d", chainID, theaterID)
}

func toShowtimeResponse(showtime *domain.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:              showtime.ID,
		MovieID:         showtime.MovieID,
		ScreenID:        showtime.ScreenID,
		ShowDateTimeUtc: showtime.ShowDateTimeUtc,
		Price:           showtime.Price,
		AvailableSeats:  showtime.AvailableSeats(),
	}
}
