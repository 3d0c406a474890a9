package harvest

import "testing"

const compoundDoc = `<?xml version="1.0"?>
<ExportSummary>
  <Objects>
    <Media startTime="1/10/2015 10:11:31 PM" extensionNum="101" objectID="a1"/>
    <Media startTime="1/10/2015 10:15:02 PM" extensionNum="102" objectID="a2"/>
    <Media startTime="1/10/2015 10:20:45 PM" extensionNum="103" objectID="a3"/>
  </Objects>
</ExportSummary>`

const singleDoc = `<?xml version="1.0"?>
<Media Type="Recording" FileName="call-42.wav" Result="Success" Ignored="x">
  <startTime>5/10/2018 4:01:28 PM</startTime>
  <extensionNum>205</extensionNum>
  <fullName>Jane Doe</fullName>
  <note></note>
</Media>`

func TestParseCompoundExport(t *testing.T) {
	records, err := ParseCompoundExport([]byte(compoundDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if got := records[0].Get("extensionNum"); got != "101" {
		t.Fatalf("expected extensionNum 101, got %q", got)
	}
	if got := records[2].Get("startTime"); got != "1/10/2015 10:20:45 PM" {
		t.Fatalf("unexpected startTime %q", got)
	}
}

func TestParseCompoundExport_SingleSibling(t *testing.T) {
	doc := `<ExportSummary><Objects><Media objectID="only"/></Objects></ExportSummary>`
	records, err := ParseCompoundExport([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 1 || records[0].Get("objectID") != "only" {
		t.Fatalf("expected one record with objectID=only, got %v", records)
	}
}

func TestParseSingleExport(t *testing.T) {
	records, err := ParseSingleExport([]byte(singleDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Get("Type") != "Recording" || rec.Get("FileName") != "call-42.wav" || rec.Get("Result") != "Success" {
		t.Fatalf("promoted attributes wrong: %v", rec)
	}
	if _, ok := rec["Ignored"]; ok {
		t.Fatalf("unexpected promotion of attribute Ignored")
	}
	if rec.Get("fullName") != "Jane Doe" {
		t.Fatalf("expected fullName Jane Doe, got %q", rec.Get("fullName"))
	}
	if val, ok := rec["note"]; !ok || val != "" {
		t.Fatalf("expected empty note field to be present, got %v ok=%v", val, ok)
	}
}

func TestParseMalformedDocuments(t *testing.T) {
	for _, data := range []string{"not xml at all", "<ExportSummary><Objects>", "<Other/>"} {
		if records, err := ParseCompoundExport([]byte(data)); err == nil && len(records) > 0 {
			t.Fatalf("compound: expected no records for %q, got %v", data, records)
		}
		if records, err := ParseSingleExport([]byte(data)); err == nil && len(records) > 0 {
			t.Fatalf("single: expected no records for %q, got %v", data, records)
		}
	}
}
