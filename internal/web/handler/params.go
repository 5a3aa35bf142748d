package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// paramID parses a numeric path parameter, failing fast with a 404 before
// any service call: a non-numeric id can never name a resource.
func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "identifiant invalide")
	}
	return id, nil
}

// formInt parses an integer form field, defaulting when absent or malformed.
func formInt(c echo.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.FormValue(name))
	if err != nil {
		return fallback
	}
	return v
}

// formInt64 parses an int64 form field, zero when malformed.
func formInt64(c echo.Context, name string) int64 {
	v, _ := strconv.ParseInt(c.FormValue(name), 10, 64)
	return v
}

// formFloat parses a float form field, zero when malformed.
func formFloat(c echo.Context, name string) float64 {
	v, _ := strconv.ParseFloat(c.FormValue(name), 64)
	return v
}
