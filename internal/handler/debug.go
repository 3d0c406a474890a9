package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/callvault/callvault/internal/harvest"
	"github.com/callvault/callvault/internal/model"
	"github.com/callvault/callvault/internal/response"
)

// DebugAll serves GET /debug/all: every record under the RGE prefix,
// unpaginated. Diagnostic endpoint for verifying container contents.
func (h *Handler) DebugAll(c echo.Context) error {
	ctx := c.Request().Context()
	names, err := h.Recordings.ListBlobs(ctx, "RGE/")
	if err != nil {
		return response.InternalError(c, "list failed", err.Error())
	}
	out := make([]model.Record, 0, len(names))
	for _, name := range names {
		if !strings.HasSuffix(name, ".xml") {
			continue
		}
		data, err := h.Recordings.Download(ctx, name)
		if err != nil {
			return response.InternalError(c, "download failed", err.Error())
		}
		records, err := harvest.ParseSingleExport(data)
		if err != nil {
			h.Log.Warn().Err(err).Str("blob", name).Msg("failed to normalize metadata document")
			continue
		}
		out = append(out, records...)
	}
	return c.JSON(http.StatusOK, out)
}
