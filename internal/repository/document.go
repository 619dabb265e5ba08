package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/mertkaracam/theater-chain-system/internal/domain"
	"github.com/shopspring/decimal"
)

// The chain aggregate is stored as one JSON document per chain. The document
// types below fix the stored shape independently of the domain structs;
// in-memory wiring (clock, catalog, screen pointers) is rebuilt by
// domain.Rehydrate after decoding.

type chainDocument struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Movies      []movieDocument   `json:"movies"`
	Theaters    []theaterDocument `json:"theaters"`
}

type movieDocument struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Genre          string    `json:"genre"`
	DurationMins   int       `json:"durationMins"`
	ReleaseDateUtc time.Time `json:"releaseDateUtc"`
	Status         string    `json:"status"`
}

type theaterDocument struct {
	ID        int                `json:"id"`
	Name      string             `json:"name"`
	Location  string             `json:"location"`
	Screens   []screenDocument   `json:"screens"`
	Showtimes []showtimeDocument `json:"showtimes"`
}

type screenDocument struct {
	ID           uuid.UUID      `json:"id"`
	TheaterID    int            `json:"theaterId"`
	ScreenNumber string         `json:"screenNumber"`
	IsEnabled    bool           `json:"isEnabled"`
	Seats        []seatDocument `json:"seats"`
}

type seatDocument struct {
	ID         uuid.UUID `json:"id"`
	SeatNumber string    `json:"seatNumber"`
}

type showtimeDocument struct {
	ID               int                   `json:"id"`
	MovieID          int                   `json:"movieId"`
	ScreenID         uuid.UUID             `json:"screenId"`
	ShowDateTimeUtc  time.Time             `json:"showDateTimeUtc"`
	Price            decimal.Decimal       `json:"price"`
	SeatReservations []reservationDocument `json:"seatReservations"`
	Bookings         []bookingDocument     `json:"bookings"`
}

type reservationDocument struct {
	ID                    uuid.UUID       `json:"id"`
	ShowtimeID            int             `json:"showtimeId"`
	Seats                 []seatDocument  `json:"seats"`
	ReservationTimeUtc    time.Time       `json:"reservationTimeUtc"`
	ReservationTimeoutUtc *time.Time      `json:"reservationTimeoutUtc"`
	Status                string          `json:"status"`
	Price                 decimal.Decimal `json:"price"`
}

type bookingDocument struct {
	ID                uuid.UUID `json:"id"`
	ShowtimeID        int       `json:"showtimeId"`
	SeatReservationID uuid.UUID `json:"seatReservationId"`
	BookingTimeUtc    time.Time `json:"bookingTimeUtc"`
}

func toDocument(chain *domain.TheaterChain) chainDocument {
	doc := chainDocument{
		ID:          chain.ID,
		Name:        chain.Name,
		Description: chain.Description,
		Movies:      make([]movieDocument, 0, len(chain.Movies)),
		Theaters:    make([]theaterDocument, 0, len(chain.Theaters)),
	}

	for _, movie := range chain.Movies {
		doc.Movies = append(doc.Movies, movieDocument{
			ID:             movie.ID,
			Title:          movie.Title,
			Description:    movie.Description,
			Genre:          movie.Genre,
			DurationMins:   movie.DurationMins,
			ReleaseDateUtc: movie.ReleaseDateUtc,
			Status:         string(movie.Status),
		})
	}

	for _, theater := range chain.Theaters {
		doc.Theaters = append(doc.Theaters, toTheaterDocument(theater))
	}

	return doc
}

func toTheaterDocument(theater *domain.Theater) theaterDocument {
	doc := theaterDocument{
		ID:        theater.ID,
		Name:      theater.Name,
		Location:  theater.Location,
		Screens:   make([]screenDocument, 0, len(theater.Screens)),
		Showtimes: make([]showtimeDocument, 0, len(theater.Showtimes)),
	}

	for _, screen := range theater.Screens {
		doc.Screens = append(doc.Screens, screenDocument{
			ID:           screen.ID,
			TheaterID:    screen.TheaterID,
			ScreenNumber: screen.ScreenNumber,
			IsEnabled:    screen.IsEnabled,
			Seats:        toSeatDocuments(screen.Seats),
		})
	}

	for _, showtime := range theater.Showtimes {
		doc.Showtimes = append(doc.Showtimes, toShowtimeDocument(showtime))
	}

	return doc
}

func toShowtimeDocument(showtime *domain.Showtime) showtimeDocument {
	doc := showtimeDocument{
		ID:               showtime.ID,
		MovieID:          showtime.MovieID,
		ScreenID:         showtime.ScreenID,
		ShowDateTimeUtc:  showtime.ShowDateTimeUtc,
		Price:            showtime.Price,
		SeatReservations: make([]reservationDocument, 0, len(showtime.SeatReservations)),
		Bookings:         make([]bookingDocument, 0, len(showtime.Bookings)),
	}

	for _, reservation := range showtime.SeatReservations {
		doc.SeatReservations = append(doc.SeatReservations, reservationDocument{
			ID:                    reservation.ID,
			ShowtimeID:            reservation.ShowtimeID,
			Seats:                 toSeatDocuments(reservation.Seats),
			ReservationTimeUtc:    reservation.ReservationTimeUtc,
			ReservationTimeoutUtc: reservation.ReservationTimeoutUtc,
			Status:                string(reservation.Status),
			Price:                 reservation.Price,
		})
	}

	for _, booking := range showtime.Bookings {
		doc.Bookings = append(doc.Bookings, bookingDocument{
			ID:                booking.ID,
			ShowtimeID:        booking.ShowtimeID,
			SeatReservationID: booking.SeatReservationID,
			BookingTimeUtc:    booking.BookingTimeUtc,
		})
	}

	return doc
}

func toSeatDocuments(seats []domain.Seat) []seatDocument {
	docs := make([]seatDocument, 0, len(seats))
	for _, seat := range seats {
		docs = append(docs, seatDocument{ID: seat.ID, SeatNumber: seat.SeatNumber})
	}

	return docs
}

func fromDocument(doc chainDocument) *domain.TheaterChain {
	chain := &domain.TheaterChain{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		Movies:      make([]*domain.Movie, 0, len(doc.Movies)),
		Theaters:    make([]*domain.Theater, 0, len(doc.Theaters)),
	}

	for _, movie := range doc.Movies {
		chain.Movies = append(chain.Movies, &domain.Movie{
			ID:             movie.ID,
			Title:          movie.Title,
			Description:    movie.Description,
			Genre:          movie.Genre,
			DurationMins:   movie.DurationMins,
			ReleaseDateUtc: movie.ReleaseDateUtc,
			Status:         domain.MovieStatus(movie.Status),
		})
	}

	for _, theater := range doc.Theaters {
		chain.Theaters = append(chain.Theaters, fromTheaterDocument(theater))
	}

	return chain
}

func fromTheaterDocument(doc theaterDocument) *domain.Theater {
	theater := &domain.Theater{
		ID:        doc.ID,
		Name:      doc.Name,
		Location:  doc.Location,
		Screens:   make([]*domain.Screen, 0, len(doc.Screens)),
		Showtimes: make([]*domain.Showtime, 0, len(doc.Showtimes)),
	}

	for _, screen := range doc.Screens {
		theater.Screens = append(theater.Screens, &domain.Screen{
			ID:           screen.ID,
			TheaterID:    screen.TheaterID,
			ScreenNumber: screen.ScreenNumber,
			IsEnabled:    screen.IsEnabled,
			Seats:        fromSeatDocuments(screen.Seats),
		})
	}

	for _, showtime := range doc.Showtimes {
		theater.Showtimes = append(theater.Showtimes, fromShowtimeDocument(showtime))
	}

	return theater
}

func fromShowtimeDocument(doc showtimeDocument) *domain.Showtime {
	showtime := &domain.Showtime{
		ID:               doc.ID,
		MovieID:          doc.MovieID,
		ScreenID:         doc.ScreenID,
		ShowDateTimeUtc:  doc.ShowDateTimeUtc,
		Price:            doc.Price,
		SeatReservations: make([]*domain.SeatReservation, 0, len(doc.SeatReservations)),
		Bookings:         make([]*domain.Booking, 0, len(doc.Bookings)),
	}

	for _, reservation := range doc.SeatReservations {
		showtime.SeatReservations = append(showtime.SeatReservations, &domain.SeatReservation{
			ID:                    reservation.ID,
			ShowtimeID:            reservation.ShowtimeID,
			Seats:                 fromSeatDocuments(reservation.Seats),
			ReservationTimeUtc:    reservation.ReservationTimeUtc,
			ReservationTimeoutUtc: reservation.ReservationTimeoutUtc,
			Status:                domain.ReservationStatus(reservation.Status),
			Price:                 reservation.Price,
		})
	}

	for _, booking := range doc.Bookings {
		showtime.Bookings = append(showtime.Bookings, &domain.Booking{
			ID:                booking.ID,
			ShowtimeID:        booking.ShowtimeID,
			SeatReservationID: booking.SeatReservationID,
			BookingTimeUtc:    booking.BookingTimeUtc,
		})
	}

	return showtime
}

func fromSeatDocuments(docs []seatDocument) []domain.Seat {
	seats := make([]domain.Seat, 0, len(docs))
	for _, doc := range docs {
		seats = append(seats, domain.Seat{ID: doc.ID, SeatNumber: doc.SeatNumber})
	}

	return seats
}
