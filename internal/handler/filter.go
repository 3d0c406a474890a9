package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/callvault/callvault/internal/model"
	"github.com/callvault/callvault/internal/paging"
	"github.com/callvault/callvault/internal/response"
	"github.com/callvault/callvault/internal/session"
)

// Filter serves GET /filter: applies field predicates to an existing session's
// result set, registers the filtered view under a new token and returns one
// page of it.
func (h *Handler) Filter(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return response.BadRequest(c, "missing session_id", "query param session_id is required")
	}
	filters := session.Filters{
		ExtensionNum: c.QueryParam("extensionNum"),
		ObjectID:     c.QueryParam("objectID"),
		ChannelNum:   c.QueryParam("channelNum"),
		AniAliDigits: c.QueryParam("AniAliDigits"),
		Name:         c.QueryParam("Name"),
	}
	pageNumber, ok := queryInt(c, "page_number", 1)
	if !ok {
		return response.BadRequest(c, "invalid pagination parameters", "page_number must be a positive integer")
	}
	pageSize, ok := queryInt(c, "page_size", 10)
	if !ok {
		return response.BadRequest(c, "invalid pagination parameters", "page_size must be a positive integer")
	}

	filtered, newToken, err := h.Sessions.Filter(sessionID, filters)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			return response.NotFound(c, "Original session not found", err.Error())
		case errors.Is(err, session.ErrNoFilter):
			return response.NotFound(c, "No filter applied", err.Error())
		}
		return response.InternalError(c, "filter failed", err.Error())
	}

	page, total, pages, err := paging.Paginate(filtered, pageNumber, pageSize)
	if err != nil {
		return response.BadRequest(c, "invalid pagination parameters", err.Error())
	}

	return c.JSON(http.StatusOK, model.Page{
		Data:         page,
		PageNumber:   pageNumber,
		PageSize:     pageSize,
		TotalRecords: total,
		TotalPages:   pages,
		SessionID:    newToken,
	})
}
