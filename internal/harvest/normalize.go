package harvest

import (
	"encoding/xml"
	"fmt"

	"github.com/callvault/callvault/internal/model"
)

// mediaElement decodes one <Media> element into its attributes and the text
// of its direct child elements. Nested structure below a child is flattened
// to that child's character data.
type mediaElement struct {
	attrs  []xml.Attr
	fields map[string]string
	order  []string
}

func (m *mediaElement) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	m.attrs = start.Attr
	m.fields = make(map[string]string)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var val string
			if err := d.DecodeElement(&val, &t); err != nil {
				return err
			}
			if _, seen := m.fields[t.Name.Local]; !seen {
				m.order = append(m.order, t.Name.Local)
			}
			m.fields[t.Name.Local] = val
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// compoundExport is the CMP export summary shape: zero or more sibling
// <Media> elements under <ExportSummary><Objects>, each carrying its fields
// as attributes.
type compoundExport struct {
	XMLName xml.Name       `xml:"ExportSummary"`
	Media   []mediaElement `xml:"Objects>Media"`
}

// singleExport is the per-call export shape: a single <Media> document root
// with Type/FileName/Result attributes and one child element per field.
type singleExport struct {
	media mediaElement
}

func (s *singleExport) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if start.Name.Local != "Media" {
		return fmt.Errorf("unexpected root element %q", start.Name.Local)
	}
	return s.media.UnmarshalXML(d, start)
}

// ParseCompoundExport normalizes a compound export document into one Record
// per sibling media element. Attribute names become field names as-is.
// A malformed document is an error; callers treat it as zero records.
func ParseCompoundExport(data []byte) ([]model.Record, error) {
	var doc compoundExport
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse compound export: %w", err)
	}
	records := make([]model.Record, 0, len(doc.Media))
	for _, media := range doc.Media {
		rec := make(model.Record, len(media.attrs)+len(media.fields))
		for _, attr := range media.attrs {
			rec[attr.Name.Local] = attr.Value
		}
		for name, val := range media.fields {
			rec[name] = val
		}
		records = append(records, rec)
	}
	return records, nil
}

// singleExportAttrs are the only attributes promoted to Record fields by the
// single-file shape; other attributes are dropped.
var singleExportAttrs = map[string]bool{
	"Type":     true,
	"FileName": true,
	"Result":   true,
}

// ParseSingleExport normalizes a single-file export document into exactly one
// Record. Missing child values become empty strings rather than absent
// fields. A malformed document is an error; callers treat it as zero records.
func ParseSingleExport(data []byte) ([]model.Record, error) {
	var doc singleExport
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse single export: %w", err)
	}
	rec := make(model.Record, len(doc.media.fields)+len(singleExportAttrs))
	for _, attr := range doc.media.attrs {
		if singleExportAttrs[attr.Name.Local] {
			rec[attr.Name.Local] = attr.Value
		}
	}
	for _, name := range doc.media.order {
		rec[name] = doc.media.fields[name]
	}
	return []model.Record{rec}, nil
}
