package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mesh-intelligence/wareki/pkg/types"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// statusOf maps an error to its HTTP status and machine-readable type.
// Unknown eras are 404, other domain errors and bad locales are 400, and
// everything else is an internal error.
func statusOf(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code, http.StatusText(he.Code)
	case errors.Is(err, types.ErrInvalidEraValue), errors.Is(err, types.ErrInvalidEraName):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, types.ErrDomain), errors.Is(err, types.ErrInvalidLocale):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, types.ErrResourceLookup):
		return http.StatusInternalServerError, "resource"
	}
	return http.StatusInternalServerError, "internal"
}

// errorHandler renders errors returned by handlers as JSON.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, kind := statusOf(err)
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if s, ok := he.Message.(string); ok {
			msg = s
		}
	}
	if code >= 500 {
		slog.Error("request failed", slog.Any("error", err))
		if kind == "internal" {
			msg = http.StatusText(code)
		}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, errorBody{Type: kind, Message: msg})
	}
	if err != nil {
		slog.Error("writing error response", slog.Any("error", err))
	}
}
