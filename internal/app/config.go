package app

import (
	"errors"
	"fmt"
	"strings"

	"dario.cat/mergo"
)

// Config holds runtime configuration for the application.
type Config struct {
	InputPath  string
	OutputPath string

	// CSV dialect
	LineEnding string // "crlf" or "lf"
	CSVBOM     bool

	// Optional sinks; empty disables them.
	PDFPath         string
	SQLitePath      string
	MetricsTextfile string
	Manifest        bool
	Print           bool

	Verbose bool
}

const (
	DefaultInputPath  = "certificate.txt"
	DefaultOutputPath = "certificates.csv"
)

// Defaults returns the configuration used for anything left unset by flags,
// environment and config file.
func Defaults() Config {
	return Config{
		InputPath:  DefaultInputPath,
		OutputPath: DefaultOutputPath,
		LineEnding: "crlf",
	}
}

// ApplyDefaults fills zero fields of cfg from Defaults.
func ApplyDefaults(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	return mergo.Merge(cfg, Defaults())
}

// ValidateConfig performs minimal validation of required settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.InputPath) == "" {
		return errors.New("config: input path is required")
	}
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return errors.New("config: output path is required")
	}
	switch cfg.LineEnding {
	case "crlf", "lf":
	default:
		return fmt.Errorf("config: csv line ending must be crlf or lf, got %q", cfg.LineEnding)
	}
	if cfg.PDFPath != "" && cfg.PDFPath == cfg.OutputPath {
		return errors.New("config: pdf path must differ from output path")
	}
	return nil
}
