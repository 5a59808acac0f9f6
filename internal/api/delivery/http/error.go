package http

import (
	"errors"
	"net/http"

	"market-lens/internal/api/repository"

	"github.com/labstack/echo/v4"
)

// writeError maps service errors onto the API contract: unknown symbol
// or empty vendor payload is 404, a vendor-side failure is 502,
// anything else is 500.
func writeError(c echo.Context, err error) error {
	var upstream *repository.UpstreamError

	switch {
	case errors.Is(err, repository.ErrNoData):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.As(err, &upstream):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}
