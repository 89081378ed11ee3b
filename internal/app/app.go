package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/certscrape/internal/export"
	"github.com/hyperifyio/certscrape/internal/extract"
	"github.com/hyperifyio/certscrape/internal/process"
)

// Outcome classifies how a run ended. None of them is a crash.
type Outcome int

const (
	OutcomeWritten Outcome = iota
	OutcomeNotFound
	OutcomeEmpty
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeEmpty:
		return "empty"
	default:
		return "failed"
	}
}

// Report is what a run produced, ready for console reporting.
type Report struct {
	Outcome    Outcome
	InputPath  string
	OutputPath string
	Records    []extract.Record
	Fragments  int
	Dropped    int
	Failures   []string
	Err        error
}

// Message renders the one-line console summary for the outcome.
func (r Report) Message() string {
	switch r.Outcome {
	case OutcomeWritten:
		return fmt.Sprintf("Successfully processed %d certificates and saved to %s", len(r.Records), r.OutputPath)
	case OutcomeNotFound:
		return fmt.Sprintf("Error: Input file %s not found", r.InputPath)
	case OutcomeEmpty:
		return "No valid certificates found to process"
	default:
		msg := "unknown error"
		if r.Err != nil {
			msg = r.Err.Error()
		}
		return "Error processing certificates: " + msg
	}
}

type App struct {
	cfg    Config
	proc   process.Processor
	stdout io.Writer
}

func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return &App{cfg: cfg, stdout: os.Stdout}, nil
}

// SetStdout redirects table previews, mainly for tests.
func (a *App) SetStdout(w io.Writer) { a.stdout = w }

// Run reads the input, extracts records and writes the configured outputs.
// Failures are reported through the returned Report, never as panics.
func (a *App) Run(ctx context.Context) (rep Report) {
	rep = Report{InputPath: a.cfg.InputPath, OutputPath: a.cfg.OutputPath}
	defer func() {
		if r := recover(); r != nil {
			rep.Outcome = OutcomeFailed
			rep.Err = fmt.Errorf("unexpected failure: %v", r)
		}
		a.writeMetrics(rep)
	}()

	markup, err := process.ReadInput(a.cfg.InputPath)
	if err != nil {
		rep.Err = err
		if errors.Is(err, process.ErrInputNotFound) {
			rep.Outcome = OutcomeNotFound
		} else {
			rep.Outcome = OutcomeFailed
		}
		return rep
	}

	res, err := a.proc.Process(markup)
	rep.Records = res.Records
	rep.Fragments = res.Fragments
	rep.Dropped = res.Dropped
	rep.Failures = res.Failures
	log.Debug().Str("input", a.cfg.InputPath).Int("fragments", res.Fragments).Int("kept", len(res.Records)).Int("dropped", res.Dropped).Int("failures", len(res.Failures)).Msg("extraction finished")
	if err != nil {
		rep.Err = err
		if errors.Is(err, process.ErrNothingToProcess) {
			rep.Outcome = OutcomeEmpty
		} else {
			rep.Outcome = OutcomeFailed
		}
		return rep
	}

	opts := export.CSVOptions{CRLF: a.cfg.LineEnding != "lf", BOM: a.cfg.CSVBOM}
	if err := export.WriteCSVFile(a.cfg.OutputPath, res.Records, opts); err != nil {
		rep.Outcome = OutcomeFailed
		rep.Err = fmt.Errorf("write csv: %w", err)
		return rep
	}
	log.Info().Str("out", a.cfg.OutputPath).Int("rows", len(res.Records)).Msg("wrote csv")
	rep.Outcome = OutcomeWritten

	// Secondary outputs only warn: the CSV is already in place.
	if a.cfg.Manifest {
		if err := writeManifest(a.cfg, markup, rep); err != nil {
			log.Warn().Err(err).Msg("manifest write failed")
		}
	}
	if a.cfg.PDFPath != "" {
		if err := writeCertificatePDF(res.Records, a.cfg.PDFPath); err != nil {
			log.Warn().Err(err).Str("path", a.cfg.PDFPath).Msg("pdf write failed")
		} else {
			log.Info().Str("out", a.cfg.PDFPath).Msg("wrote pdf")
		}
	}
	if a.cfg.SQLitePath != "" {
		if err := export.WriteSQLite(ctx, a.cfg.SQLitePath, a.cfg.InputPath, res.Records); err != nil {
			log.Warn().Err(err).Str("path", a.cfg.SQLitePath).Msg("sqlite write failed")
		} else {
			log.Info().Str("out", a.cfg.SQLitePath).Msg("wrote sqlite")
		}
	}
	if a.cfg.Print {
		renderTable(a.stdout, res.Records)
	}
	return rep
}

func (a *App) writeMetrics(rep Report) {
	if a.cfg.MetricsTextfile == "" {
		return
	}
	if err := writeMetricsTextfile(a.cfg.MetricsTextfile, rep); err != nil {
		log.Warn().Err(err).Str("path", a.cfg.MetricsTextfile).Msg("metrics write failed")
	}
}
