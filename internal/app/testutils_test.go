package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mertkaracam/theater-chain-system/internal/domain"
	"github.com/mertkaracam/theater-chain-system/internal/mocks"
	appvalidator "github.com/mertkaracam/theater-chain-system/internal/validator"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testBaseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func newTestApplication(opts ...func(*application)) *application {
	app := &application{
		config:    config{env: "test"},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator: appvalidator.NewValidator(),
		clock:     domain.UTCClock{},
		redis:     redis.NewClient(&redis.Options{Addr: "localhost:1"}),
		chainRepo: &mocks.MockTheaterChainRepo{},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// newTestChain builds a chain with one movie, one theater, one screen with
// seats A1..A3, and one showtime 24 hours out at a price of 10 per seat.
func newTestChain(t *testing.T, clk domain.Clock) *domain.TheaterChain {
	t.Helper()

	chain := domain.NewTheaterChain(1, "CineGrand", "A chain of theaters", clk)
	movie := chain.AddMovie("Inception", "A heist inside dreams", "Sci-Fi", 120, time.Date(2010, 7, 16, 0, 0, 0, 0, time.UTC))

	theater, err := chain.AddTheater("Downtown", "1 Main Street")
	require.NoError(t, err)

	screen, err := theater.AddScreen("1", []string{"A1", "A2", "A3"})
	require.NoError(t, err)

	_, err = theater.AddShowtime(clk.Now().Add(24*time.Hour), decimal.NewFromInt(10), screen.ID, movie.ID)
	require.NoError(t, err)

	return chain
}

// singleChainRepo serves one in-memory chain for both reads and writes.
func singleChainRepo(chain *domain.TheaterChain) *mocks.MockTheaterChainRepo {
	return &mocks.MockTheaterChainRepo{
		GetByIDFunc: func(ctx context.Context, id int) (*domain.TheaterChain, error) {
			if id != chain.ID {
				return nil, domain.ErrTheaterChainNotFound
			}
			return chain, nil
		},
		UpdateFunc: func(ctx context.Context, updated *domain.TheaterChain) error {
			return nil
		},
	}
}

func executeRequest(t *testing.T, app *application, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	app.routes().ServeHTTP(w, r)

	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	return resp
}
