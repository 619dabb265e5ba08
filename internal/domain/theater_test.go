package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTheaterWithScreen(t *testing.T, clk Clock) (*TheaterChain, *Theater, *Screen, *Movie) {
	t.Helper()

	chain := NewTheaterChain(1, "CineGrand", "A chain of theaters", clk)
	movie := chain.AddMovie("Inception", "A mind-bending heist", "Sci-Fi", 120, time.Date(2010, 7, 16, 0, 0, 0, 0, time.UTC))

	theater, err := chain.AddTheater("Downtown", "1 Main Street")
	require.NoError(t, err)

	screen, err := theater.AddScreen("1", []string{"A1", "A2", "A3"})
	require.NoError(t, err)

	return chain, theater, screen, movie
}

func TestAddShowtimeValidation(t *testing.T) {
	clk := newFakeClock()
	_, theater, screen, movie := newTheaterWithScreen(t, clk)

	tests := []struct {
		name    string
		start   time.Time
		price   decimal.Decimal
		wantErr string
	}{
		{
			name:    "in the past",
			start:   clk.Now().Add(-time.Hour),
			price:   decimal.NewFromInt(10),
			wantErr: "Showtime is in the past",
		},
		{
			name:    "more than a year ahead",
			start:   clk.Now().Add(MaxShowtimeLeadTime + time.Hour),
			price:   decimal.NewFromInt(10),
			wantErr: "Showtime is more than 1 year in the future",
		},
		{
			name:    "negative price",
			start:   clk.Now().Add(time.Hour),
			price:   decimal.NewFromInt(-1),
			wantErr: "Price cannot be less than 0",
		},
		{
			name:    "price over the cap",
			start:   clk.Now().Add(time.Hour),
			price:   decimal.NewFromInt(1001),
			wantErr: "Price cannot be more than 1000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := theater.AddShowtime(tt.start, tt.price, screen.ID, movie.ID)
			require.EqualError(t, err, tt.wantErr)
			assert.True(t, IsValidation(err))
			assert.Empty(t, theater.Showtimes)
		})
	}

	t.Run("unknown movie", func(t *testing.T) {
		_, err := theater.AddShowtime(clk.Now().Add(time.Hour), decimal.NewFromInt(10), screen.ID, 99)
		require.EqualError(t, err, "Movie does not exist")
	})

	t.Run("unknown screen", func(t *testing.T) {
		_, err := theater.AddShowtime(clk.Now().Add(time.Hour), decimal.NewFromInt(10), uuid.New(), movie.ID)
		require.EqualError(t, err, "Screen does not exist")
	})
}

func TestAddShowtimeSchedulingConflicts(t *testing.T) {
	clk := newFakeClock()
	_, theater, screen, movie := newTheaterWithScreen(t, clk)

	// 120-minute movie starting at T, so the screen is blocked until T+120
	// and needs a 50-minute buffer after that.
	start := clk.Now().Add(24 * time.Hour)
	price := decimal.NewFromInt(10)

	first, err := theater.AddShowtime(start, price, screen.ID, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	t.Run("start inside running movie", func(t *testing.T) {
		_, err := theater.AddShowtime(start.Add(119*time.Minute), price, screen.ID, movie.ID)
		require.EqualError(t, err, "Screen already has a showtime scheduled for this date and time")
	})

	t.Run("start inside buffer", func(t *testing.T) {
		_, err := theater.AddShowtime(start.Add(169*time.Minute), price, screen.ID, movie.ID)
		require.EqualError(t, err, "Screen needs at least 50 minutes before the next showtime")
	})

	t.Run("existing start inside new window", func(t *testing.T) {
		_, err := theater.AddShowtime(start.Add(-60*time.Minute), price, screen.ID, movie.ID)
		require.EqualError(t, err, "Screen already has a showtime scheduled for this date and time")
	})

	t.Run("existing start inside new buffer", func(t *testing.T) {
		_, err := theater.AddShowtime(start.Add(-130*time.Minute), price, screen.ID, movie.ID)
		require.EqualError(t, err, "Screen needs at least 50 minutes before the next showtime")
	})

	t.Run("different screen is unaffected", func(t *testing.T) {
		other, err := theater.AddScreen("2", []string{"B1"})
		require.NoError(t, err)

		_, err = theater.AddShowtime(start.Add(30*time.Minute), price, other.ID, movie.ID)
		require.NoError(t, err)
	})

	t.Run("after the buffer", func(t *testing.T) {
		second, err := theater.AddShowtime(start.Add(171*time.Minute), price, screen.ID, movie.ID)
		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)

		var onScreen []*Showtime
		for _, showtime := range theater.ActiveShowtimes() {
			if showtime.ScreenID == screen.ID {
				onScreen = append(onScreen, showtime)
			}
		}

		require.Len(t, onScreen, 2)
		assert.True(t, onScreen[0].ShowDateTimeUtc.Before(onScreen[1].ShowDateTimeUtc))
	})
}

func TestUpdateShowtime(t *testing.T) {
	t.Run("rewrites date, price and screen", func(t *testing.T) {
		clk := newFakeClock()
		_, theater, screen, movie := newTheaterWithScreen(t, clk)

		showtime, err := theater.AddShowtime(clk.Now().Add(24*time.Hour), decimal.NewFromInt(10), screen.ID, movie.ID)
		require.NoError(t, err)

		other, err := theater.AddScreen("2", []string{"B1", "B2"})
		require.NoError(t, err)

		newStart := clk.Now().Add(48 * time.Hour)
		err = theater.UpdateShowtime(showtime.ID, newStart, decimal.NewFromInt(12), other.ID)
		require.NoError(t, err)

		assert.Equal(t, newStart, showtime.ShowDateTimeUtc)
		assert.True(t, showtime.Price.Equal(decimal.NewFromInt(12)))
		assert.Equal(t, other.ID, showtime.ScreenID)
		assert.Equal(t, 2, showtime.AvailableSeats())
	})

	t.Run("blocked by active reservations", func(t *testing.T) {
		clk := newFakeClock()
		_, theater, screen, movie := newTheaterWithScreen(t, clk)

		showtime, err := theater.AddShowtime(clk.Now().Add(24*time.Hour), decimal.NewFromInt(10), screen.ID, movie.ID)
		require.NoError(t, err)

		_, err = showtime.ProvisionallyReserveSeats([]string{"A1"})
		require.NoError(t, err)

		err = theater.UpdateShowtime(showtime.ID, clk.Now().Add(48*time.Hour), decimal.NewFromInt(10), screen.ID)
		require.EqualError(t, err, "Showtime has active reservations")
	})

	t.Run("allowed once holds expire", func(t *testing.T) {
		clk := newFakeClock()
		_, theater, screen, movie := newTheaterWithScreen(t, clk)

		showtime, err := theater.AddShowtime(clk.Now().Add(24*time.Hour), decimal.NewFromInt(10), screen.ID, movie.ID)
		require.NoError(t, err)

		_, err = showtime.ProvisionallyReserveSeats([]string{"A1"})
		require.NoError(t, err)

		clk.Advance(ReservationHoldDuration + time.Minute)

		err = theater.UpdateShowtime(showtime.ID, clk.Now().Add(48*time.Hour), decimal.NewFromInt(10), screen.ID)
		require.NoError(t, err)
	})

	t.Run("re-runs schedule validation", func(t *testing.T) {
		clk := newFakeClock()
		_, theater, screen, movie := newTheaterWithScreen(t, clk)

		start := clk.Now().Add(24 * time.Hour)

		_, err := theater.AddShowtime(start, decimal.NewFromInt(10), screen.ID, movie.ID)
		require.NoError(t, err)

		second, err := theater.AddShowtime(start.Add(4*time.Hour), decimal.NewFromInt(10), screen.ID, movie.ID)
		require.NoError(t, err)

		err = theater.UpdateShowtime(second.ID, start.Add(30*time.Minute), decimal.NewFromInt(10), screen.ID)
		require.EqualError(t, err, "Screen already has a showtime scheduled for this date and time")
	})

	t.Run("moving a showtime in place does not conflict with itself", func(t *testing.T) {
		clk := newFakeClock()
		_, theater, screen, movie := newTheaterWithScreen(t, clk)

		start := clk.Now().Add(24 * time.Hour)

		showtime, err := theater.AddShowtime(start, decimal.NewFromInt(10), screen.ID, movie.ID)
		require.NoError(t, err)

		err = theater.UpdateShowtime(showtime.ID, start.Add(10*time.Minute), decimal.NewFromInt(10), screen.ID)
		require.NoError(t, err)
	})

	t.Run("unknown showtime", func(t *testing.T) {
		clk := newFakeClock()
		_, theater, screen, _ := newTheaterWithScreen(t, clk)

		err := theater.UpdateShowtime(42, clk.Now().Add(time.Hour), decimal.NewFromInt(10), screen.ID)
		require.EqualError(t, err, "Showtime does not exist")
	})
}

func TestRemoveShowtime(t *testing.T) {
	clk := newFakeClock()
	_, theater, screen, movie := newTheaterWithScreen(t, clk)

	showtime, err := theater.AddShowtime(clk.Now().Add(24*time.Hour), decimal.NewFromInt(10), screen.ID, movie.ID)
	require.NoError(t, err)

	_, err = showtime.ProvisionallyReserveSeats([]string{"A1"})
	require.NoError(t, err)

	err = theater.RemoveShowtime(showtime.ID)
	require.EqualError(t, err, "Showtime has active reservations")

	clk.Advance(ReservationHoldDuration + time.Minute)

	require.NoError(t, theater.RemoveShowtime(showtime.ID))
	assert.Empty(t, theater.Showtimes)

	err = theater.RemoveShowtime(showtime.ID)
	require.EqualError(t, err, "Showtime does not exist")
}

func TestScreenLifecycle(t *testing.T) {
	t.Run("duplicate screen number", func(t *testing.T) {
		clk := newFakeClock()
		_, theater, _, _ := newTheaterWithScreen(t, clk)

		_, err := theater.AddScreen("1", nil)
		require.EqualError(t, err, "Screen already exists")
	})

	t.Run("disable blocked by future showtimes", func(t *testing.T) {
		clk := newFakeClock()
		_, theater, screen, movie := newTheaterWithScreen(t, clk)

		_, err := theater.AddShowtime(clk.Now().Add(24*time.Hour), decimal.NewFromInt(10), screen.ID, movie.ID)
		require.NoError(t, err)

		err = theater.DisableScreen(screen.ID)
		require.EqualError(t, err, "Screen has future showtimes")
		assert.True(t, screen.IsEnabled)
	})

	t.Run("disable and re-enable", func(t *testing.T) {
		clk := newFakeClock()
		_, theater, screen, _ := newTheaterWithScreen(t, clk)

		require.NoError(t, theater.DisableScreen(screen.ID))
		assert.False(t, screen.IsEnabled)

		require.NoError(t, theater.ReenableScreen(screen.ID))
		assert.True(t, screen.IsEnabled)
	})

	t.Run("update replaces seats wholesale", func(t *testing.T) {
		clk := newFakeClock()
		_, theater, screen, _ := newTheaterWithScreen(t, clk)

		updated, err := theater.UpdateScreen(screen.ID, "IMAX", []string{"B1", "B2"})
		require.NoError(t, err)

		assert.Equal(t, "IMAX", updated.ScreenNumber)
		require.Len(t, updated.Seats, 2)
		assert.Equal(t, "B1", updated.Seats[0].SeatNumber)
		assert.Equal(t, "B2", updated.Seats[1].SeatNumber)
	})

	t.Run("unknown screen", func(t *testing.T) {
		clk := newFakeClock()
		_, theater, _, _ := newTheaterWithScreen(t, clk)

		err := theater.DisableScreen(uuid.New())
		require.EqualError(t, err, "Screen does not exist")
	})
}

func TestActiveShowtimesOrdering(t *testing.T) {
	clk := newFakeClock()
	_, theater, screen, movie := newTheaterWithScreen(t, clk)

	price := decimal.NewFromInt(10)
	later := clk.Now().Add(48 * time.Hour)
	sooner := clk.Now().Add(24 * time.Hour)

	_, err := theater.AddShowtime(later, price, screen.ID, movie.ID)
	require.NoError(t, err)
	_, err = theater.AddShowtime(sooner, price, screen.ID, movie.ID)
	require.NoError(t, err)

	active := theater.ActiveShowtimes()
	require.Len(t, active, 2)
	assert.Equal(t, sooner, active[0].ShowDateTimeUtc)
	assert.Equal(t, later, active[1].ShowDateTimeUtc)

	// A showtime whose start has passed is no longer active.
	clk.Advance(25 * time.Hour)
	active = theater.ActiveShowtimes()
	require.Len(t, active, 1)
	assert.Equal(t, later, active[0].ShowDateTimeUtc)
}

func TestMoviesWithActiveShowtimes(t *testing.T) {
	clk := newFakeClock()
	chain, theater, screen, movie := newTheaterWithScreen(t, clk)

	idle := chain.AddMovie("Dormant", "No screenings", "Drama", 90, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := theater.AddShowtime(clk.Now().Add(24*time.Hour), decimal.NewFromInt(10), screen.ID, movie.ID)
	require.NoError(t, err)
	_, err = theater.AddShowtime(clk.Now().Add(48*time.Hour), decimal.NewFromInt(10), screen.ID, movie.ID)
	require.NoError(t, err)

	movies := theater.MoviesWithActiveShowtimes()
	require.Len(t, movies, 1)
	assert.Equal(t, movie.ID, movies[0].ID)
	assert.NotContains(t, movies, idle)
}
