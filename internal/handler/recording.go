package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/callvault/callvault/internal/harvest"
	"github.com/callvault/callvault/internal/response"
)

// Recording serves GET /recording: finds the named WAV under the opco's day
// prefix, transcodes it to MP3 and streams it inline.
func (h *Handler) Recording(c echo.Context) error {
	filename := c.QueryParam("filename")
	if filename == "" {
		return response.BadRequest(c, "missing filename", "query param filename is required")
	}
	ts, err := time.Parse(harvest.StartTimeLayout, c.QueryParam("date"))
	if err != nil {
		return response.BadRequest(c, "Invalid date format. Expected M/D/YYYY H:MM:SS AM/PM.", err.Error())
	}
	opco := c.QueryParam("opco")

	ctx := c.Request().Context()
	names, err := h.Recordings.ListBlobs(ctx, harvest.RecordingPrefix(opco, ts, filename))
	if err != nil {
		return response.InternalError(c, "list recordings failed", err.Error())
	}
	for _, name := range names {
		if !strings.HasSuffix(name, ".wav") {
			continue
		}
		wav, err := h.Recordings.Download(ctx, name)
		if err != nil {
			return response.InternalError(c, "download recording failed", err.Error())
		}
		mp3, err := h.Transcoder.WAVToMP3(ctx, wav)
		if err != nil {
			return response.InternalError(c, "Error converting WAV to MP3", err.Error())
		}
		delivered := strings.TrimSuffix(filename, ".wav") + ".mp3"
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", delivered))
		return c.Blob(http.StatusOK, "audio/mpeg", mp3)
	}
	return response.NotFound(c, "Recording not found", "no .wav blob under the requested prefix")
}
