package domain

import "time"

// TheaterChain is the aggregate root: it owns the movie catalogue and the
// theaters, and it is the unit of consistency and concurrency. A caller loads
// the whole chain, invokes one mutating operation, and persists the whole
// chain back; Version carries the optimistic concurrency token checked at
// save time.
type TheaterChain struct {
	ID          int
	Name        string
	Description string
	Version     int
	Theaters    []*Theater
	Movies      []*Movie

	clock Clock
}

func NewTheaterChain(id int, name, description string, clock Clock) *TheaterChain {
	return &TheaterChain{
		ID:          id,
		Name:        name,
		Description: description,
		Version:     1,
		Theaters:    []*Theater{},
		Movies:      []*Movie{},
		clock:       clock,
	}
}

// AddMovie assigns the next chain-scoped id and appends the movie. There is
// no duplicate-title check.
func (c *TheaterChain) AddMovie(title, description, genre string, durationMins int, releaseDateUtc time.Time) *Movie {
	movie := newMovie(c.nextMovieID(), title, description, genre, durationMins, releaseDateUtc)
	c.Movies = append(c.Movies, movie)

	return movie
}

func (c *TheaterChain) UpdateMovie(movieID int, title, description, genre string, durationMins int, releaseDateUtc time.Time) error {
	movie, err := c.MovieByID(movieID)
	if err != nil {
		return err
	}

	movie.UpdateInformation(title, description, genre, durationMins, releaseDateUtc)

	return nil
}

// MarkMovieAsNoLongerAvailable retires a movie. The chain fans out to every
// theater first: a movie with any future-dated showtime anywhere in the chain
// cannot be retired. Showtimes are reachable only through theaters, so only
// the chain can answer that question.
func (c *TheaterChain) MarkMovieAsNoLongerAvailable(movieID int) error {
	movie, err := c.MovieByID(movieID)
	if err != nil {
		return err
	}

	for _, theater := range c.Theaters {
		if theater.HasFutureShowtimesForMovie(movieID) {
			return conflictf("Movie has future showtimes")
		}
	}

	return movie.MarkAsNoLongerAvailable()
}

func (c *TheaterChain) MarkMovieAsAvailable(movieID int) error {
	movie, err := c.MovieByID(movieID)
	if err != nil {
		return err
	}

	return movie.MarkAsAvailable()
}

// AddTheater creates a theater wired to the chain's live movie catalogue.
// Name and location must each be unique within the chain.
func (c *TheaterChain) AddTheater(name, location string) (*Theater, error) {
	for _, theater := range c.Theaters {
		if theater.Name == name {
			return nil, conflictf("Theater already exists")
		}
	}

	for _, theater := range c.Theaters {
		if theater.Location == location {
			return nil, conflictf("Theater already exists")
		}
	}

	theater := newTheater(c.nextTheaterID(), name, location, c, c.clock)
	c.Theaters = append(c.Theaters, theater)

	return theater, nil
}

func (c *TheaterChain) UpdateTheater(theaterID int, name, location string) error {
	theater, err := c.TheaterByID(theaterID)
	if err != nil {
		return err
	}

	theater.UpdateInformation(name, location)

	return nil
}

// RemoveTheater deletes a theater that has no future-dated showtimes.
func (c *TheaterChain) RemoveTheater(theaterID int) error {
	for i, theater := range c.Theaters {
		if theater.ID != theaterID {
			continue
		}

		if len(theater.ActiveShowtimes()) != 0 {
			return conflictf("Theater has future showtimes")
		}

		c.Theaters = append(c.Theaters[:i], c.Theaters[i+1:]...)

		return nil
	}

	return notFoundf("Theater does not exist")
}

// MovieByID implements MovieCatalog for the chain's theaters.
func (c *TheaterChain) MovieByID(movieID int) (*Movie, error) {
	for _, movie := range c.Movies {
		if movie.ID == movieID {
			return movie, nil
		}
	}

	return nil, notFoundf("Movie does not exist")
}

func (c *TheaterChain) TheaterByID(theaterID int) (*Theater, error) {
	for _, theater := range c.Theaters {
		if theater.ID == theaterID {
			return theater, nil
		}
	}

	return nil, notFoundf("Theater does not exist")
}

// ClearExpiredSeatReservations sweeps every theater, returning the number of
// reservations dropped. Idempotent; safe to run at any cadence.
func (c *TheaterChain) ClearExpiredSeatReservations() int {
	removed := 0
	for _, theater := range c.Theaters {
		removed += theater.ClearExpiredSeatReservations()
	}

	return removed
}

// Rehydrate re-links the in-memory references the persisted document cannot
// carry: the clock, each theater's movie catalog, and each showtime's screen
// pointer. The repository calls this after loading a chain.
func (c *TheaterChain) Rehydrate(clock Clock) error {
	c.clock = clock

	for _, theater := range c.Theaters {
		theater.catalog = c
		theater.clock = clock

		for _, showtime := range theater.Showtimes {
			screen, err := theater.screenByID(showtime.ScreenID)
			if err != nil {
				return notFoundf("Screen[%s] does not exist", showtime.ScreenID)
			}

			if _, err := c.MovieByID(showtime.MovieID); err != nil {
				return notFoundf("Movie[%d] does not exist", showtime.MovieID)
			}

			showtime.screen = screen
			showtime.clock = clock
		}
	}

	return nil
}

func (c *TheaterChain) nextMovieID() int {
	next := 1
	for _, movie := range c.Movies {
		if movie.ID >= next {
			next = movie.ID + 1
		}
	}

	return next
}

func (c *TheaterChain) nextTheaterID() int {
	next := 1
	for _, theater := range c.Theaters {
		if theater.ID >= next {
			next = theater.ID + 1
		}
	}

	return next
}
