package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hyperifyio/certscrape/internal/extract"
)

func sampleRecords() []extract.Record {
	return []extract.Record{
		{
			Name:         extract.Some("Data Science Cert"),
			Link:         extract.Some("https://example.com/verify?a=1&b=2"),
			Organization: extract.Some("Example, Inc."),
			IssueDate:    extract.Some("Issued Jan 2024"),
		},
		{
			Name:         extract.Some(`The "Quoted" Course`),
			Organization: extract.Some("Line\nBreak U"),
		},
	}
}

func TestWriteCSV_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords(), CSVOptions{}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "name,link,organization,issue_date\n" +
		"Data Science Cert,https://example.com/verify?a=1&b=2,\"Example, Inc.\",Issued Jan 2024\n" +
		"\"The \"\"Quoted\"\" Course\",,\"Line\nBreak U\",\n"
	if buf.String() != want {
		t.Fatalf("unexpected csv:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	recs := sampleRecords()
	if err := WriteCSV(&buf, recs, CSVOptions{CRLF: true}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := [][]string{extract.Columns}
	for _, r := range recs {
		want = append(want, r.Row())
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSV_CRLFAndBOM(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()[:1], CSVOptions{CRLF: true, BOM: true}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	b := buf.Bytes()
	if !bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("missing BOM: % x", b[:3])
	}
	if !strings.HasPrefix(string(b[3:]), "name,link,organization,issue_date\r\n") {
		t.Fatalf("expected CRLF header, got %q", b[3:])
	}
}

func TestWriteCSVFile_Deterministic(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	for _, p := range []string{a, b} {
		if err := WriteCSVFile(p, sampleRecords(), CSVOptions{CRLF: true}); err != nil {
			t.Fatalf("WriteCSVFile: %v", err)
		}
	}
	ab, _ := os.ReadFile(a)
	bb, _ := os.ReadFile(b)
	if len(ab) == 0 || !bytes.Equal(ab, bb) {
		t.Fatalf("outputs differ or empty")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestWriteCSVFile_MissingDirectory(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nope", "out.csv")
	if err := WriteCSVFile(p, sampleRecords(), CSVOptions{}); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
