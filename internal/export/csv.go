// Package export writes extracted certificate records to tabular sinks.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/hyperifyio/certscrape/internal/extract"
)

// CSVOptions controls the delimited-text dialect.
type CSVOptions struct {
	// CRLF terminates rows with \r\n instead of \n.
	CRLF bool
	// BOM prefixes the file with a UTF-8 byte order mark.
	BOM bool
}

// WriteCSV writes the header row and one row per record, in order.
func WriteCSV(w io.Writer, records []extract.Record, opts CSVOptions) error {
	if !opts.BOM {
		return writeRows(w, records, opts.CRLF)
	}
	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	if err := writeRows(tw, records, opts.CRLF); err != nil {
		tw.Close()
		return err
	}
	return tw.Close()
}

func writeRows(w io.Writer, records []extract.Record, crlf bool) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = crlf
	if err := cw.Write(extract.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes records to path. The file only appears once it has
// been written completely.
func WriteCSVFile(path string, records []extract.Record, opts CSVOptions) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return WriteCSV(w, records, opts)
	})
}

// writeFileAtomic writes to a temp file next to path and renames it into place.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err = os.Chmod(tmp, 0o644); err != nil {
		return err
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
