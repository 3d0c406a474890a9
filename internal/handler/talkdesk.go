package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/callvault/callvault/internal/model"
	"github.com/callvault/callvault/internal/response"
)

// talkdeskTags are the optional equality tags accepted by the talkdesk
// metadata query, in the order they join the where clause.
var talkdeskTags = []string{
	"Interaction_ID",
	"Customer_Phone_Number",
	"Talkdesk_Phone_Number",
	"Call_Type",
}

// buildTagQuery assembles the blob tag where-clause: Start_Time bounds plus
// any present equality tags, joined with AND.
func buildTagQuery(startDate, endDate string, tags map[string]string) string {
	parts := []string{
		fmt.Sprintf(`"Start_Time" >= '%s'`, startDate),
		fmt.Sprintf(`"Start_Time" <= '%s'`, endDate),
	}
	for _, tag := range talkdeskTags {
		if val := tags[tag]; val != "" {
			parts = append(parts, fmt.Sprintf(`"%s" = '%s'`, tag, val))
		}
	}
	return strings.Join(parts, " AND ")
}

// TalkdeskMetadata serves GET /talkdesk/metadata: one page of blob tag-query
// hits, each resolved to its blob metadata map.
func (h *Handler) TalkdeskMetadata(c echo.Context) error {
	startDate := c.QueryParam("start_date")
	endDate := c.QueryParam("end_date")
	start, err := time.Parse(apiTimeLayout, startDate)
	if err != nil {
		return response.BadRequest(c, "Invalid date format", "start_date must be YYYY-MM-DD HH:MM:SS")
	}
	end, err := time.Parse(apiTimeLayout, endDate)
	if err != nil {
		return response.BadRequest(c, "Invalid date format", "end_date must be YYYY-MM-DD HH:MM:SS")
	}
	if end.Before(start) {
		return response.BadRequest(c, "end_date must be after start_date", "date range is reversed")
	}
	pageSize, ok := queryInt(c, "page_size", 50)
	if !ok {
		return response.BadRequest(c, "invalid pagination parameters", "page_size must be a positive integer")
	}

	tags := make(map[string]string, len(talkdeskTags))
	for _, tag := range talkdeskTags {
		tags[tag] = c.QueryParam(tag)
	}
	query := buildTagQuery(startDate, endDate, tags)

	ctx := c.Request().Context()
	names, next, err := h.Talkdesk.FilterByTags(ctx, query, int32(pageSize), c.QueryParam("continuation_token"))
	if err != nil {
		return response.InternalError(c, "Failed to fetch blob metadata", err.Error())
	}

	data := make([]map[string]string, 0, len(names))
	for _, name := range names {
		meta, err := h.Talkdesk.BlobMetadata(ctx, name)
		if err != nil {
			return response.InternalError(c, "Failed to fetch blob metadata", err.Error())
		}
		if len(meta) > 0 {
			data = append(data, meta)
		}
	}

	page := model.TagPage{Data: data}
	if next != "" {
		page.ContinuationToken = &next
	}
	return c.JSON(http.StatusOK, page)
}

// TalkdeskRecording serves GET /talkdesk/recording: streams a pre-encoded
// MP3 by interaction id.
func (h *Handler) TalkdeskRecording(c echo.Context) error {
	interactionID := c.QueryParam("interactionId")
	if interactionID == "" {
		return response.BadRequest(c, "missing interactionId", "query param interactionId is required")
	}
	name := interactionID + ".mp3"

	ctx := c.Request().Context()
	exists, err := h.Talkdesk.Exists(ctx, name)
	if err != nil {
		return response.InternalError(c, "check recording failed", err.Error())
	}
	if !exists {
		return response.NotFound(c, "Audio file not found", "no blob named "+name)
	}
	data, err := h.Talkdesk.Download(ctx, name)
	if err != nil {
		return response.InternalError(c, "download recording failed", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", name))
	return c.Blob(http.StatusOK, "audio/mpeg", data)
}
