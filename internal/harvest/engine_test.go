package harvest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeStore serves canned listings and blob bodies and counts calls.
type fakeStore struct {
	listings  map[string][]string
	blobs     map[string][]byte
	failNames map[string]bool
	listCalls int
}

func (f *fakeStore) ListBlobs(_ context.Context, prefix string) ([]string, error) {
	f.listCalls++
	return f.listings[prefix], nil
}

func (f *fakeStore) Download(_ context.Context, name string) ([]byte, error) {
	if f.failNames[name] {
		return nil, errors.New("storage unreachable")
	}
	data, ok := f.blobs[name]
	if !ok {
		return nil, fmt.Errorf("no blob %q", name)
	}
	return data, nil
}

func singleExportDoc(startTime string) []byte {
	return []byte(fmt.Sprintf(`<Media><startTime>%s</startTime><extensionNum>7</extensionNum></Media>`, startTime))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestHarvest_EdgeDayFiltering(t *testing.T) {
	store := &fakeStore{
		listings: map[string][]string{
			"RGE/2015/1/10/": {"RGE/2015/1/10/early.xml", "RGE/2015/1/10/late.xml"},
			"RGE/2015/1/11/": {"RGE/2015/1/11/any.xml", "RGE/2015/1/11/skip.txt"},
			"RGE/2015/1/12/": {"RGE/2015/1/12/morning.xml", "RGE/2015/1/12/afternoon.xml"},
		},
		blobs: map[string][]byte{
			"RGE/2015/1/10/early.xml":     singleExportDoc("1/10/2015 6:00:00 AM"),
			"RGE/2015/1/10/late.xml":      singleExportDoc("1/10/2015 10:11:31 PM"),
			"RGE/2015/1/11/any.xml":       []byte(`<Media><note>no start time</note></Media>`),
			"RGE/2015/1/12/morning.xml":   singleExportDoc("1/12/2015 11:00:00 AM"),
			"RGE/2015/1/12/afternoon.xml": singleExportDoc("1/12/2015 1:00:00 PM"),
		},
	}
	engine := NewEngine(store, zerolog.Nop(), 0)

	from := time.Date(2015, time.January, 10, 8, 0, 0, 0, time.UTC)
	to := time.Date(2015, time.January, 12, 12, 0, 0, 0, time.UTC)
	records, err := engine.Harvest(context.Background(), "RGE", from, to)
	if err != nil {
		t.Fatalf("harvest: %v", err)
	}

	// Edge days keep only in-window start times; the interior day keeps its
	// record even without a parseable startTime.
	want := []string{"1/10/2015 10:11:31 PM", "", "1/12/2015 11:00:00 AM"}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d: %v", len(want), len(records), records)
	}
	for i, startTime := range want {
		if got := records[i].Get("startTime"); got != startTime {
			t.Fatalf("record %d: expected startTime %q, got %q", i, startTime, got)
		}
	}
	if store.listCalls != 3 {
		t.Fatalf("expected one listing per day, got %d", store.listCalls)
	}
}

func TestHarvest_RecordCeilingTruncatesDay(t *testing.T) {
	store := &fakeStore{
		listings: map[string][]string{
			"RGE/2015/1/10/": {"RGE/2015/1/10/a.xml"},
			"RGE/2015/1/11/": {"RGE/2015/1/11/a.xml", "RGE/2015/1/11/b.xml", "RGE/2015/1/11/c.xml"},
			"RGE/2015/1/12/": {"RGE/2015/1/12/a.xml"},
		},
		blobs: map[string][]byte{
			"RGE/2015/1/10/a.xml": singleExportDoc("1/10/2015 9:00:00 AM"),
			"RGE/2015/1/11/a.xml": singleExportDoc("1/11/2015 9:00:00 AM"),
			"RGE/2015/1/11/b.xml": singleExportDoc("1/11/2015 10:00:00 AM"),
			"RGE/2015/1/11/c.xml": singleExportDoc("1/11/2015 11:00:00 AM"),
			"RGE/2015/1/12/a.xml": singleExportDoc("1/12/2015 9:00:00 AM"),
		},
	}
	engine := NewEngine(store, zerolog.Nop(), 2)

	from := time.Date(2015, time.January, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2015, time.January, 12, 23, 59, 59, 0, time.UTC)
	records, err := engine.Harvest(context.Background(), "RGE", from, to)
	if err != nil {
		t.Fatalf("harvest: %v", err)
	}

	// The counter reaches the ceiling at day 11's first blob, truncating the
	// rest of that day; the reset lets day 12 still contribute.
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if got := records[1].Get("startTime"); got != "1/11/2015 9:00:00 AM" {
		t.Fatalf("expected only day 11's first blob, got %q", got)
	}
	if got := records[len(records)-1].Get("startTime"); got != "1/12/2015 9:00:00 AM" {
		t.Fatalf("expected day 12 record last, got %q", got)
	}
}

func TestHarvest_DownloadFailureSkipsBlob(t *testing.T) {
	store := &fakeStore{
		listings: map[string][]string{
			"RGE/2015/1/10/": {"RGE/2015/1/10/bad.xml", "RGE/2015/1/10/good.xml"},
		},
		blobs: map[string][]byte{
			"RGE/2015/1/10/good.xml": singleExportDoc("1/10/2015 9:00:00 AM"),
		},
		failNames: map[string]bool{"RGE/2015/1/10/bad.xml": true},
	}
	engine := NewEngine(store, zerolog.Nop(), 0)

	from := day(2015, time.January, 10)
	to := time.Date(2015, time.January, 10, 23, 59, 59, 0, time.UTC)
	records, err := engine.Harvest(context.Background(), "RGE", from, to)
	if err != nil {
		t.Fatalf("harvest: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected the failing blob to be skipped, got %d records", len(records))
	}
}

func TestHarvest_CompoundShape(t *testing.T) {
	doc := `<ExportSummary><Objects>
		<Media startTime="1/10/2015 9:00:00 AM" objectID="a"/>
		<Media startTime="1/10/2015 10:00:00 AM" objectID="b"/>
	</Objects></ExportSummary>`
	store := &fakeStore{
		listings: map[string][]string{
			"CMP/2015/1/10/Metadata/": {"CMP/2015/1/10/Metadata/summary.xml"},
		},
		blobs: map[string][]byte{
			"CMP/2015/1/10/Metadata/summary.xml": []byte(doc),
		},
	}
	engine := NewEngine(store, zerolog.Nop(), 0)

	from := day(2015, time.January, 10)
	to := time.Date(2015, time.January, 10, 23, 59, 59, 0, time.UTC)
	records, err := engine.Harvest(context.Background(), "CMP", from, to)
	if err != nil {
		t.Fatalf("harvest: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records from the compound export, got %d", len(records))
	}
}

func TestHarvest_Validation(t *testing.T) {
	engine := NewEngine(&fakeStore{}, zerolog.Nop(), 0)
	from := day(2015, time.January, 10)

	if _, err := engine.Harvest(context.Background(), "RGE", from, from.AddDate(0, 0, -1)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := engine.Harvest(context.Background(), "ACME", from, from); !errors.Is(err, ErrUnknownSource) {
		t.Fatalf("expected ErrUnknownSource, got %v", err)
	}
}
