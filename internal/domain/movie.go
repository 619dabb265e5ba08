package domain

import "time"

type MovieStatus string

const (
	MovieStatusAvailable         MovieStatus = "AVAILABLE"
	MovieStatusNoLongerAvailable MovieStatus = "NO_LONGER_AVAILABLE"
)

// Movie is a catalogue entry owned by the chain. Movies are never deleted;
// retirement is a status transition guarded by the chain, which is the only
// aggregate that can see showtimes across all theaters.
type Movie struct {
	ID             int
	Title          string
	Description    string
	Genre          string
	DurationMins   int
	ReleaseDateUtc time.Time
	Status         MovieStatus
}

func newMovie(id int, title, description, genre string, durationMins int, releaseDateUtc time.Time) *Movie {
	return &Movie{
		ID:             id,
		Title:          title,
		Description:    description,
		Genre:          genre,
		DurationMins:   durationMins,
		ReleaseDateUtc: releaseDateUtc,
		Status:         MovieStatusAvailable,
	}
}

func (m *Movie) Duration() time.Duration {
	return time.Duration(m.DurationMins) * time.Minute
}

func (m *Movie) MarkAsAvailable() error {
	if m.Status == MovieStatusAvailable {
		return conflictf("Movie is already available")
	}

	m.Status = MovieStatusAvailable

	return nil
}

func (m *Movie) MarkAsNoLongerAvailable() error {
	if m.Status == MovieStatusNoLongerAvailable {
		return conflictf("Movie is already no longer available")
	}

	m.Status = MovieStatusNoLongerAvailable

	return nil
}

func (m *Movie) UpdateInformation(title, description, genre string, durationMins int, releaseDateUtc time.Time) {
	m.Title = title
	m.Description = description
	m.Genre = genre
	m.DurationMins = durationMins
	m.ReleaseDateUtc = releaseDateUtc
}
