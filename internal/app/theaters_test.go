package app

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTheater(t *testing.T) {
	tests := []struct {
		name           string
		body           TheaterRequest
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "adds a theater",
			body:       TheaterRequest{Name: "Uptown", Location: "2 High Street"},
			wantStatus: http.StatusCreated,
		},
		{
			name:           "rejects a duplicate name",
			body:           TheaterRequest{Name: "Downtown", Location: "3 Side Street"},
			wantStatus:     http.StatusConflict,
			wantErrMessage: "Theater already exists",
		},
		{
			name:           "rejects a duplicate location",
			body:           TheaterRequest{Name: "Riverside", Location: "1 Main Street"},
			wantStatus:     http.StatusConflict,
			wantErrMessage: "Theater already exists",
		},
		{
			name:       "rejects a missing name",
			body:       TheaterRequest{Location: "4 Back Street"},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := &fixedClock{now: testBaseTime}
			chain := newTestChain(t, clk)

			app := newTestApplication(func(a *application) {
				a.chainRepo = singleChainRepo(chain)
			})

			w := executeRequest(t, app, http.MethodPost, "/v1/theater-chains/1/theaters", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantErrMessage != "" {
				assert.Equal(t, tt.wantErrMessage, decodeError(t, w).Message)
			}

			if tt.wantStatus == http.StatusCreated {
				var resp TheaterResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, 2, resp.ID)
				assert.Equal(t, tt.body.Name, resp.Name)
			}
		})
	}
}

func TestUpdateTheater(t *testing.T) {
	clk := &fixedClock{now: testBaseTime}
	chain := newTestChain(t, clk)

	app := newTestApplication(func(a *application) {
		a.chainRepo = singleChainRepo(chain)
	})

	body := TheaterRequest{Name: "Downtown Deluxe", Location: "1 Main Street"}

	w := executeRequest(t, app, http.MethodPut, "/v1/theater-chains/1/theaters/1", body)

	require.Equal(t, http.StatusOK, w.Code)

	var resp TheaterResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Downtown Deluxe", resp.Name)
}

func TestRemoveTheater(t *testing.T) {
	clk := &fixedClock{now: testBaseTime}
	chain := newTestChain(t, clk)

	_, err := chain.AddTheater("Uptown", "2 High Street")
	require.NoError(t, err)

	app := newTestApplication(func(a *application) {
		a.chainRepo = singleChainRepo(chain)
	})

	t.Run("theater with future showtimes cannot be removed", func(t *testing.T) {
		w := executeRequest(t, app, http.MethodDelete, "/v1/theater-chains/1/theaters/1", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Theater has future showtimes", decodeError(t, w).Message)
	})

	t.Run("removes an idle theater", func(t *testing.T) {
		w := executeRequest(t, app, http.MethodDelete, "/v1/theater-chains/1/theaters/2", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("unknown theater", func(t *testing.T) {
		w := executeRequest(t, app, http.MethodDelete, "/v1/theater-chains/1/theaters/99", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Theater does not exist", decodeError(t, w).Message)
	})
}

func TestGetTheaterMoviesWithActiveShowtimes(t *testing.T) {
	clk := &fixedClock{now: testBaseTime}
	chain := newTestChain(t, clk)

	app := newTestApplication(func(a *application) {
		a.chainRepo = singleChainRepo(chain)
	})

	w := executeRequest(t, app, http.MethodGet, "/v1/theater-chains/1/theaters/1/movies", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []MovieResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Inception", resp[0].Title)
}
