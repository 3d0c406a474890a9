package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DeleteSession serves GET /delete_session: clears every cached harvest and
// filtered view, reporting whether anything was present.
func (h *Handler) DeleteSession(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"success": h.Sessions.Clear()})
}
