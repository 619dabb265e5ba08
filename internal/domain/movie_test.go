package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieStatusTransitions(t *testing.T) {
	movie := newMovie(1, "Inception", "d", "Sci-Fi", 120, time.Date(2010, 7, 16, 0, 0, 0, 0, time.UTC))

	err := movie.MarkAsAvailable()
	require.EqualError(t, err, "Movie is already available")
	assert.True(t, IsConflict(err))

	require.NoError(t, movie.MarkAsNoLongerAvailable())
	assert.Equal(t, MovieStatusNoLongerAvailable, movie.Status)

	err = movie.MarkAsNoLongerAvailable()
	require.EqualError(t, err, "Movie is already no longer available")

	require.NoError(t, movie.MarkAsAvailable())
	assert.Equal(t, MovieStatusAvailable, movie.Status)
}

func TestMovieDuration(t *testing.T) {
	movie := newMovie(1, "Short", "d", "Drama", 95, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 95*time.Minute, movie.Duration())
}
