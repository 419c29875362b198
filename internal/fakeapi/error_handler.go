package fakeapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/roxiler/storerating-client/internal/forms"
)

// errorResponse is the error envelope of the backend: {"error": "<message>"}.
type errorResponse struct {
	Error string `json:"error"`
}

// newHTTPErrorHandler maps state errors to the status codes of the real
// backend and logs anything unexpected.
func newHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

// statusOf lists the state errors whose message is shown as is.
var statusOf = []struct {
	err  error
	code int
}{
	{errUserNotFound, http.StatusNotFound},
	{errStoreNotFound, http.StatusNotFound},
	{errNoOwnerStore, http.StatusNotFound},
	{errRatingNotFound, http.StatusNotFound},
	{errUserExists, http.StatusBadRequest},
	{errInvalidCredentials, http.StatusBadRequest},
	{errWrongPassword, http.StatusBadRequest},
	{errOwnerInvalid, http.StatusBadRequest},
	{errAlreadyRated, http.StatusBadRequest},
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message)
	}
	if errors.Is(err, forms.ErrInvalid) {
		return http.StatusBadRequest, forms.Message(err)
	}
	for _, s := range statusOf {
		if errors.Is(err, s.err) {
			return s.code, s.err.Error()
		}
	}

	log.Error().Err(err).Str("route", c.Request().Method+" "+c.Path()).Msg("unhandled error")
	return http.StatusInternalServerError, "Server error"
}
