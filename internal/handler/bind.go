package handler

import (
	"birthday-song-service/internal/apperr"

	"github.com/labstack/echo/v4"
)

// bind decodes the request body into req; a malformed body is a validation
// failure like any other bad input.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperr.Validation("Invalid request body", apperr.FieldError{Path: "", Message: "body must be valid JSON"})
	}
	return nil
}
