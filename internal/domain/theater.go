package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShowtimeBuffer is the gap required between the end of one showtime
// (start + movie duration) and the start of the next on the same screen.
const ShowtimeBuffer = 50 * time.Minute

// MaxShowtimeLeadTime caps how far in advance a showtime can be scheduled.
const MaxShowtimeLeadTime = 365 * 24 * time.Hour

// MaxTicketPrice caps the per-seat price of a showtime.
var MaxTicketPrice = decimal.NewFromInt(1000)

// MovieCatalog resolves movies by id. Theaters never cache the chain's movie
// list; they resolve through the catalog at use time, so movies added to the
// chain after a theater exists are immediately visible to it.
type MovieCatalog interface {
	MovieByID(id int) (*Movie, error)
}

// Theater owns screens and the showtime schedule. The showtime list here is
// the single source of truth; screens store no schedule of their own.
//
// Theaters are constructed only by their owning TheaterChain.
type Theater struct {
	ID        int
	Name      string
	Location  string
	Screens   []*Screen
	Showtimes []*Showtime

	catalog MovieCatalog
	clock   Clock
}

func newTheater(id int, name, location string, catalog MovieCatalog, clock Clock) *Theater {
	return &Theater{
		ID:        id,
		Name:      name,
		Location:  location,
		Screens:   []*Screen{},
		Showtimes: []*Showtime{},
		catalog:   catalog,
		clock:     clock,
	}
}

func (t *Theater) UpdateInformation(name, location string) {
	t.Name = name
	t.Location = location
}

// AddScreen creates an enabled screen with a fresh id. Seat numbers, when
// supplied, become the screen's full seat catalogue.
func (t *Theater) AddScreen(screenNumber string, seatNumbers []string) (*Screen, error) {
	for _, screen := range t.Screens {
		if screen.ScreenNumber == screenNumber {
			return nil, conflictf("Screen already exists")
		}
	}

	screen := newScreen(t.ID, screenNumber)
	if len(seatNumbers) != 0 {
		screen.ReplaceSeats(seatNumbers)
	}

	t.Screens = append(t.Screens, screen)

	return screen, nil
}

// UpdateScreen renames a screen and, when seat numbers are supplied, replaces
// its seat catalogue wholesale.
func (t *Theater) UpdateScreen(screenID uuid.UUID, screenNumber string, seatNumbers []string) (*Screen, error) {
	screen, err := t.screenByID(screenID)
	if err != nil {
		return nil, err
	}

	screen.ScreenNumber = screenNumber
	if len(seatNumbers) != 0 {
		screen.ReplaceSeats(seatNumbers)
	}

	return screen, nil
}

// DisableScreen takes a screen out of the active set. A screen with a
// future-dated showtime cannot be disabled.
func (t *Theater) DisableScreen(screenID uuid.UUID) error {
	screen, err := t.screenByID(screenID)
	if err != nil {
		return err
	}

	if t.screenHasFutureShowtimes(screenID) {
		return conflictf("Screen has future showtimes")
	}

	screen.disable()

	return nil
}

func (t *Theater) ReenableScreen(screenID uuid.UUID) error {
	screen, err := t.screenByID(screenID)
	if err != nil {
		return err
	}

	screen.reenable()

	return nil
}

// AddShowtime schedules a screening. Validation order: past date, too far in
// the future, negative price, runtime overlap, buffer violation. Showtime ids
// are theater-scoped and monotonically assigned.
func (t *Theater) AddShowtime(showDateTimeUtc time.Time, price decimal.Decimal, screenID uuid.UUID, movieID int) (*Showtime, error) {
	movie, err := t.catalog.MovieByID(movieID)
	if err != nil {
		return nil, err
	}

	screen, err := t.screenByID(screenID)
	if err != nil {
		return nil, err
	}

	err = t.validateSchedule(showDateTimeUtc, price, movie.Duration(), screenID, 0)
	if err != nil {
		return nil, err
	}

	showtime := newShowtime(t.nextShowtimeID(), movie, screen, showDateTimeUtc, price, t.clock)
	t.Showtimes = append(t.Showtimes, showtime)

	return showtime, nil
}

// UpdateShowtime overwrites a showtime's date, price and screen. The showtime
// must have no active reservations, and the full schedule validation is
// re-run with the showtime itself excluded from the conflict scan.
func (t *Theater) UpdateShowtime(showtimeID int, newDateTime time.Time, newPrice decimal.Decimal, screenID uuid.UUID) error {
	showtime, err := t.showtimeByID(showtimeID)
	if err != nil {
		return err
	}

	if showtime.HasActiveSeatReservations() {
		return conflictf("Showtime has active reservations")
	}

	screen, err := t.screenByID(screenID)
	if err != nil {
		return err
	}

	movie, err := t.catalog.MovieByID(showtime.MovieID)
	if err != nil {
		return err
	}

	err = t.validateSchedule(newDateTime, newPrice, movie.Duration(), screenID, showtimeID)
	if err != nil {
		return err
	}

	showtime.updateInformation(newDateTime, newPrice, screen)

	return nil
}

// RemoveShowtime deletes a showtime that has no active reservations.
func (t *Theater) RemoveShowtime(showtimeID int) error {
	for i, showtime := range t.Showtimes {
		if showtime.ID != showtimeID {
			continue
		}

		if showtime.HasActiveSeatReservations() {
			return conflictf("Showtime has active reservations")
		}

		t.Showtimes = append(t.Showtimes[:i], t.Showtimes[i+1:]...)

		return nil
	}

	return notFoundf("Showtime does not exist")
}

// ActiveShowtimes returns future-dated showtimes ordered by ascending start
// time.
func (t *Theater) ActiveShowtimes() []*Showtime {
	now := t.clock.Now()

	active := make([]*Showtime, 0)
	for _, showtime := range t.Showtimes {
		if showtime.ShowDateTimeUtc.After(now) {
			active = append(active, showtime)
		}
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].ShowDateTimeUtc.Before(active[j].ShowDateTimeUtc)
	})

	return active
}

// ActiveShowtimeByID resolves a future-dated showtime. Reservations can only
// be made and confirmed against active showtimes.
func (t *Theater) ActiveShowtimeByID(showtimeID int) (*Showtime, error) {
	for _, showtime := range t.ActiveShowtimes() {
		if showtime.ID == showtimeID {
			return showtime, nil
		}
	}

	return nil, notFoundf("Showtime does not exist")
}

// MoviesWithActiveShowtimes lists the distinct movies that have at least one
// future-dated showtime in this theater.
func (t *Theater) MoviesWithActiveShowtimes() []*Movie {
	seen := make(map[int]bool)

	movies := make([]*Movie, 0)
	for _, showtime := range t.ActiveShowtimes() {
		if seen[showtime.MovieID] {
			continue
		}
		seen[showtime.MovieID] = true

		movie, err := t.catalog.MovieByID(showtime.MovieID)
		if err != nil {
			continue
		}

		movies = append(movies, movie)
	}

	return movies
}

// HasFutureShowtimesForMovie answers the chain's movie-retirement guard.
func (t *Theater) HasFutureShowtimesForMovie(movieID int) bool {
	for _, showtime := range t.ActiveShowtimes() {
		if showtime.MovieID == movieID {
			return true
		}
	}

	return false
}

// ClearExpiredSeatReservations sweeps every showtime, returning the number of
// reservations dropped.
func (t *Theater) ClearExpiredSeatReservations() int {
	removed := 0
	for _, showtime := range t.Showtimes {
		removed += showtime.ClearExpiredSeatReservations()
	}

	return removed
}

func (t *Theater) screenByID(screenID uuid.UUID) (*Screen, error) {
	for _, screen := range t.Screens {
		if screen.ID == screenID {
			return screen, nil
		}
	}

	return nil, notFoundf("Screen does not exist")
}

func (t *Theater) showtimeByID(showtimeID int) (*Showtime, error) {
	for _, showtime := range t.Showtimes {
		if showtime.ID == showtimeID {
			return showtime, nil
		}
	}

	return nil, notFoundf("Showtime does not exist")
}

func (t *Theater) screenHasFutureShowtimes(screenID uuid.UUID) bool {
	now := t.clock.Now()

	for _, showtime := range t.Showtimes {
		if showtime.ScreenID == screenID && showtime.ShowDateTimeUtc.After(now) {
			return true
		}
	}

	return false
}

func (t *Theater) nextShowtimeID() int {
	next := 1
	for _, showtime := range t.Showtimes {
		if showtime.ID >= next {
			next = showtime.ID + 1
		}
	}

	return next
}

// validateSchedule enforces the showtime invariants on one screen: intervals
// of the form [start, start+duration+buffer) never overlap. The runtime and
// buffer portions of a violation are reported as distinct errors. The check
// runs in both directions so a new showtime can neither start inside an
// existing one's window nor swallow an existing start inside its own.
func (t *Theater) validateSchedule(showDateTimeUtc time.Time, price decimal.Decimal, movieDuration time.Duration, screenID uuid.UUID, excludeShowtimeID int) error {
	now := t.clock.Now()

	if showDateTimeUtc.Before(now) {
		return invalidf("Showtime is in the past")
	}

	if showDateTimeUtc.After(now.Add(MaxShowtimeLeadTime)) {
		return invalidf("Showtime is more than 1 year in the future")
	}

	if price.IsNegative() {
		return invalidf("Price cannot be less than 0")
	}

	if price.GreaterThan(MaxTicketPrice) {
		return invalidf("Price cannot be more than %s", MaxTicketPrice)
	}

	for _, existing := range t.Showtimes {
		if existing.ID == excludeShowtimeID || existing.ScreenID != screenID {
			continue
		}

		movie, err := t.catalog.MovieByID(existing.MovieID)
		if err != nil {
			return err
		}

		existingStart := existing.ShowDateTimeUtc
		existingEnd := existingStart.Add(movie.Duration())

		switch {
		case within(showDateTimeUtc, existingStart, existingEnd):
			return conflictf("Screen already has a showtime scheduled for this date and time")
		case within(showDateTimeUtc, existingEnd, existingEnd.Add(ShowtimeBuffer)):
			return conflictf("Screen needs at least 50 minutes before the next showtime")
		}

		newEnd := showDateTimeUtc.Add(movieDuration)

		switch {
		case within(existingStart, showDateTimeUtc, newEnd):
			return conflictf("Screen already has a showtime scheduled for this date and time")
		case within(existingStart, newEnd, newEnd.Add(ShowtimeBuffer)):
			return conflictf("Screen needs at least 50 minutes before the next showtime")
		}
	}

	return nil
}

// within reports whether instant falls in the half-open interval [from, to).
func within(instant, from, to time.Time) bool {
	return !instant.Before(from) && instant.Before(to)
}
