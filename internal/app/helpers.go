package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/mertkaracam/theater-chain-system/internal/domain"
	appvalidator "github.com/mertkaracam/theater-chain-system/internal/validator"
)

const maxSaveRetries = 3

func (app *application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	maxBytes := 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func (app *application) readIDParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}

	return id, nil
}

// checkValidation runs struct validation on the request payload and writes a
// 422 with per-field details on failure. It reports whether validation passed.
func (app *application) checkValidation(w http.ResponseWriter, r *http.Request, payload any) bool {
	err := app.validator.Struct(payload)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		app.serverErrorResponse(w, r, err)
		return false
	}

	details := make(map[string][]string)
	for _, fieldErr := range validationErrs {
		field := fieldErr.Field()
		details[field] = append(details[field], appvalidator.ValidationMessage(fieldErr))
	}

	app.failedValidationResponse(w, r, details)

	return false
}

// withChain loads a chain, applies mutate, and saves it back. Edit conflicts
// trigger a fresh load and a replay of mutate, a bounded number of times, so
// concurrent writers serialize without surfacing spurious 409s. Domain errors
// from mutate abort the save and are returned to the caller.
func (app *application) withChain(ctx context.Context, chainID int, mutate func(*domain.TheaterChain) error) (*domain.TheaterChain, error) {
	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		chain, err := app.chainRepo.GetByID(ctx, chainID)
		if err != nil {
			return nil, err
		}

		err = mutate(chain)
		if err != nil {
			return nil, err
		}

		err = app.chainRepo.Update(ctx, chain)
		if err == nil {
			return chain, nil
		}

		if !errors.Is(err, domain.ErrEditConflict) {
			return nil, err
		}
	}

	return nil, domain.ErrEditConflict
}
