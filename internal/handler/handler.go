// Package handler implements the HTTP surface: metadata harvesting,
// session-scoped filtering, recording delivery, talkdesk tag queries and
// session management.
package handler

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/callvault/callvault/internal/audio"
	"github.com/callvault/callvault/internal/harvest"
	"github.com/callvault/callvault/internal/session"
)

// apiTimeLayout is the timestamp format of the date-range query parameters.
const apiTimeLayout = "2006-01-02 15:04:05"

// TalkdeskStore is the slice of the talkdesk container the handlers consume.
type TalkdeskStore interface {
	FilterByTags(ctx context.Context, where string, pageSize int32, marker string) ([]string, string, error)
	BlobMetadata(ctx context.Context, name string) (map[string]string, error)
	Download(ctx context.Context, name string) ([]byte, error)
	Exists(ctx context.Context, name string) (bool, error)
}

// Handler holds the collaborators shared by all routes.
type Handler struct {
	Engine     *harvest.Engine
	Sessions   *session.Store
	Recordings harvest.BlobStore
	Talkdesk   TalkdeskStore
	Transcoder *audio.Transcoder
	Log        zerolog.Logger
}

// queryInt reads a pagination query parameter, falling back to def when the
// parameter is absent. ok is false when the value does not parse or is
// below 1; that check runs before any storage I/O.
func queryInt(c echo.Context, name string, def int) (val int, ok bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, true
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 1 {
		return 0, false
	}
	return val, true
}
