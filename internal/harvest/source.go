package harvest

import (
	"fmt"
	"time"

	"github.com/callvault/callvault/internal/model"
)

// Source describes one opco's storage layout and export shape.
type Source struct {
	Name string
	// MetadataSubdir is set when the opco nests its metadata documents under
	// an extra Metadata/ path segment.
	MetadataSubdir bool
	// Normalize converts one metadata document into records.
	Normalize func(data []byte) ([]model.Record, error)
}

// sources is the fixed opco allow-list. CMP publishes compound export
// summaries under a Metadata/ sub-prefix; RGE and NYSEG publish one document
// per call directly under the day prefix.
var sources = map[string]Source{
	"CMP":   {Name: "CMP", MetadataSubdir: true, Normalize: ParseCompoundExport},
	"RGE":   {Name: "RGE", Normalize: ParseSingleExport},
	"NYSEG": {Name: "NYSEG", Normalize: ParseSingleExport},
}

// Lookup returns the source for an opco code, reporting whether it is known.
func Lookup(opco string) (Source, bool) {
	src, ok := sources[opco]
	return src, ok
}

// Prefix returns the blob prefix under which one day of a source's metadata
// documents live. Month and day are unpadded decimals, matching the layout
// the exporters write.
func Prefix(src Source, day time.Time) string {
	if src.MetadataSubdir {
		return fmt.Sprintf("%s/%d/%d/%d/Metadata/", src.Name, day.Year(), int(day.Month()), day.Day())
	}
	return fmt.Sprintf("%s/%d/%d/%d/", src.Name, day.Year(), int(day.Month()), day.Day())
}

// RecordingPrefix returns the blob prefix for a named recording. Audio lives
// directly under the day prefix for every opco, including CMP.
func RecordingPrefix(opco string, ts time.Time, filename string) string {
	return fmt.Sprintf("%s/%d/%d/%d/%s", opco, ts.Year(), int(ts.Month()), ts.Day(), filename)
}
