package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/ats-ui/internal/backend"
	"github.com/jonathan/ats-ui/internal/report"
	"github.com/jonathan/ats-ui/internal/reportstore"
	"github.com/jonathan/ats-ui/internal/types"
	"github.com/jonathan/ats-ui/internal/upload"
)

// ErrFormTooLarge is returned when an upload exceeds the request size limit.
var ErrFormTooLarge = errors.New("upload is too large")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		reqErr    *types.RequestError
		uploadErr *upload.ValidationError
		renameErr *backend.RenameError
		backErr   *backend.Error
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &reqErr), errors.As(err, &uploadErr), errors.As(err, &renameErr):
		return http.StatusBadRequest
	case errors.Is(err, ErrFormTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, reportstore.ErrNotFound), errors.Is(err, backend.ErrNotFound), errors.Is(err, report.ErrNoExcel):
		return http.StatusNotFound
	case errors.As(err, &backErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userMessage is the text shown for a failed submission. Validation problems
// are shown as they are; anything else gets the generic retry prefix.
func userMessage(err error) string {
	if HTTPStatus(err) == http.StatusBadRequest || HTTPStatus(err) == http.StatusRequestEntityTooLarge {
		return err.Error()
	}
	return "Something went wrong. Please try again. " + err.Error()
}
