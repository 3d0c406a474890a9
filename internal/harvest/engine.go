package harvest

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/callvault/callvault/internal/model"
)

// StartTimeLayout is the timestamp format the exporters write into a
// record's startTime field, e.g. "1/10/2015 10:11:31 PM".
const StartTimeLayout = "1/2/2006 3:04:05 PM"

// metadataExt is the suffix identifying metadata documents among a day's blobs.
const metadataExt = ".xml"

// DefaultMaxRecords caps how many records a single harvest accepts from one
// day's blob listing before truncating that day.
const DefaultMaxRecords = 10000

var (
	// ErrInvalidRange reports a to date earlier than the from date.
	ErrInvalidRange = errors.New("to_date must be after from_date")
	// ErrUnknownSource reports an opco outside the allow-list.
	ErrUnknownSource = errors.New("invalid opco value")
)

// BlobStore is the slice of the storage collaborator the engine consumes.
type BlobStore interface {
	ListBlobs(ctx context.Context, prefix string) ([]string, error)
	Download(ctx context.Context, name string) ([]byte, error)
}

// Engine walks a date range day by day, lists each day's metadata blobs,
// normalizes them with the source's shape, and applies time-of-day filtering
// on the range's edge days. Interior days are fully inside the range by
// construction and are kept without a per-record time check.
type Engine struct {
	store      BlobStore
	log        zerolog.Logger
	maxRecords int
}

// NewEngine returns an Engine reading from store. maxRecords <= 0 selects
// DefaultMaxRecords.
func NewEngine(store BlobStore, log zerolog.Logger, maxRecords int) *Engine {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &Engine{store: store, log: log, maxRecords: maxRecords}
}

// Harvest collects every record for opco between from and to inclusive, in
// discovery order (date-ascending, listing order within a day).
//
// The record counter is scoped to this call: when a day's blobs produce
// maxRecords records the rest of that day is skipped and the counter resets
// for the next day. A blob that fails to download is skipped and logged; a
// failed listing fails the harvest.
func (e *Engine) Harvest(ctx context.Context, opco string, from, to time.Time) ([]model.Record, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	src, ok := Lookup(opco)
	if !ok {
		return nil, ErrUnknownSource
	}

	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)

	var out []model.Record
	count := 0
	for day := fromDay; !day.After(toDay); day = day.AddDate(0, 0, 1) {
		names, err := e.store.ListBlobs(ctx, Prefix(src, day))
		if err != nil {
			return nil, err
		}
		edge := day.Equal(fromDay) || day.Equal(toDay)
		truncated := false
		for _, name := range names {
			if strings.HasSuffix(name, metadataExt) {
				records := e.normalizeBlob(ctx, src, name)
				count += len(records)
				if edge {
					out = append(out, keepInWindow(records, from, to)...)
				} else {
					out = append(out, records...)
				}
			}
			if count >= e.maxRecords {
				count = 0
				truncated = true
				break
			}
		}
		if truncated {
			e.log.Warn().Str("opco", opco).Time("day", day).Int("max_records", e.maxRecords).
				Msg("record ceiling reached, truncating day")
		}
	}
	return out, nil
}

// normalizeBlob downloads and normalizes one metadata blob. Both failure
// kinds yield zero records: a download failure is logged at error, a
// malformed document at warn.
func (e *Engine) normalizeBlob(ctx context.Context, src Source, name string) []model.Record {
	data, err := e.store.Download(ctx, name)
	if err != nil {
		e.log.Error().Err(err).Str("blob", name).Msg("download failed, skipping blob")
		return nil
	}
	records, err := src.Normalize(data)
	if err != nil {
		e.log.Warn().Err(err).Str("blob", name).Msg("failed to normalize metadata document")
		return nil
	}
	return records
}

// keepInWindow filters edge-day records by their startTime. A record with a
// missing or unparseable startTime is discarded.
func keepInWindow(records []model.Record, from, to time.Time) []model.Record {
	kept := records[:0:0]
	for _, rec := range records {
		ts, err := time.Parse(StartTimeLayout, rec.Get("startTime"))
		if err != nil {
			continue
		}
		if !ts.Before(from) && !ts.After(to) {
			kept = append(kept, rec)
		}
	}
	return kept
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
