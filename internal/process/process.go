// Package process turns a saved certifications section into certificate
// records: it finds every paged list item, runs the field extractor over each
// one and keeps the records that carry a name.
package process

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/certscrape/internal/extract"
)

// FragmentSelector matches one certificate entry in the profile list.
const FragmentSelector = "li.pvs-list__paged-list-item"

var (
	// ErrInputNotFound is returned when the input path does not exist.
	ErrInputNotFound = errors.New("input not found")
	// ErrNothingToProcess is returned when parsing succeeded but no list item
	// produced a valid record. It is a normal outcome, not a failure.
	ErrNothingToProcess = errors.New("no valid certificates found")
)

// Result holds the surviving records in document order plus counters about
// what was discarded.
type Result struct {
	Records []extract.Record
	// Fragments is the number of matching list items found.
	Fragments int
	// Dropped counts fragments whose record had no name.
	Dropped int
	// Failures holds the diagnostics of fragments that could not be read.
	Failures []string
}

// Processor runs an Extractor over every fragment in a document.
type Processor struct {
	Extractor extract.Extractor
}

func (p Processor) extractor() extract.Extractor {
	if p.Extractor == nil {
		return extract.RuleExtractor{}
	}
	return p.Extractor
}

// Process parses markup with the default extractor.
func Process(markup []byte) (Result, error) {
	return Processor{}.Process(markup)
}

// ProcessFile reads path and processes its contents with the default extractor.
func ProcessFile(path string) (Result, error) {
	return Processor{}.ProcessFile(path)
}

// ProcessFile reads the whole input file, closes it, then processes it.
func (p Processor) ProcessFile(path string) (Result, error) {
	markup, err := ReadInput(path)
	if err != nil {
		return Result{}, err
	}
	return p.Process(markup)
}

// Process parses markup leniently and extracts one record per fragment.
func (p Processor) Process(markup []byte) (Result, error) {
	return p.ProcessReader(bytes.NewReader(markup))
}

// ProcessReader is Process over a stream.
func (p Processor) ProcessReader(r io.Reader) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("parse html: %w", err)
	}
	ex := p.extractor()
	var res Result
	doc.Find(FragmentSelector).Each(func(i int, s *goquery.Selection) {
		res.Fragments++
		rec := ex.Extract(s.Get(0))
		if rec.Err != "" {
			log.Debug().Int("fragment", i).Str("error", rec.Err).Msg("fragment extraction failed")
			res.Failures = append(res.Failures, rec.Err)
		}
		if !rec.Valid() {
			res.Dropped++
			return
		}
		res.Records = append(res.Records, rec)
	})
	log.Debug().Int("fragments", res.Fragments).Int("kept", len(res.Records)).Int("dropped", res.Dropped).Msg("processed document")
	if len(res.Records) == 0 {
		return res, ErrNothingToProcess
	}
	return res, nil
}

// ReadInput reads the whole input file. A missing file yields ErrInputNotFound.
func ReadInput(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return b, nil
}
