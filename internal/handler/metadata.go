package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/callvault/callvault/internal/harvest"
	"github.com/callvault/callvault/internal/model"
	"github.com/callvault/callvault/internal/paging"
	"github.com/callvault/callvault/internal/response"
)

// Metadata serves GET /metadata: a paginated slice of the harvested result
// set for a date range and opco. A session_id naming a cached harvest skips
// storage entirely; otherwise a fresh harvest runs and is cached under a new
// token.
func (h *Handler) Metadata(c echo.Context) error {
	from, err := time.Parse(apiTimeLayout, c.QueryParam("from_date"))
	if err != nil {
		return response.BadRequest(c, "Invalid date format", "from_date must be YYYY-MM-DD HH:MM:SS")
	}
	to, err := time.Parse(apiTimeLayout, c.QueryParam("to_date"))
	if err != nil {
		return response.BadRequest(c, "Invalid date format", "to_date must be YYYY-MM-DD HH:MM:SS")
	}
	if to.Before(from) {
		return response.BadRequest(c, "to_date must be after from_date", harvest.ErrInvalidRange.Error())
	}
	opco := c.QueryParam("opco")
	if _, ok := harvest.Lookup(opco); !ok {
		return response.BadRequest(c, "Invalid opco value. Must be 'CMP', 'RGE', or 'NYSEG'", harvest.ErrUnknownSource.Error())
	}
	pageNumber, ok := queryInt(c, "page_number", 1)
	if !ok {
		return response.BadRequest(c, "invalid pagination parameters", "page_number must be a positive integer")
	}
	pageSize, ok := queryInt(c, "page_size", 50)
	if !ok {
		return response.BadRequest(c, "invalid pagination parameters", "page_size must be a positive integer")
	}

	sessionID := c.QueryParam("session_id")
	records, cached := []model.Record(nil), false
	if sessionID != "" {
		records, cached = h.Sessions.Get(sessionID)
	}
	if !cached {
		records, err = h.Engine.Harvest(c.Request().Context(), opco, from, to)
		if err != nil {
			// Range and opco were validated above; anything here came from storage.
			return response.InternalError(c, "harvest failed", err.Error())
		}
		sessionID = h.Sessions.Put(records)
	}

	page, total, pages, err := paging.Paginate(records, pageNumber, pageSize)
	if err != nil {
		return response.BadRequest(c, "invalid pagination parameters", err.Error())
	}

	return c.JSON(http.StatusOK, model.Page{
		Data:         page,
		PageNumber:   pageNumber,
		PageSize:     pageSize,
		TotalRecords: total,
		TotalPages:   pages,
		SessionID:    sessionID,
	})
}
