package app

import (
	"os"
	"strings"
)

// Environment variables read by ApplyEnvToConfig.
const (
	EnvInput           = "CERTSCRAPE_INPUT"
	EnvOutput          = "CERTSCRAPE_OUTPUT"
	EnvLineEnding      = "CERTSCRAPE_CSV_LINE_ENDING"
	EnvCSVBOM          = "CERTSCRAPE_CSV_BOM"
	EnvPDF             = "CERTSCRAPE_PDF"
	EnvSQLite          = "CERTSCRAPE_SQLITE"
	EnvMetricsTextfile = "CERTSCRAPE_METRICS_TEXTFILE"
	EnvManifest        = "CERTSCRAPE_MANIFEST"
	EnvPrint           = "CERTSCRAPE_PRINT"
	EnvVerbose         = "CERTSCRAPE_VERBOSE"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	setString := func(dst *string, envKey string) {
		if *dst != "" {
			return
		}
		*dst = strings.TrimSpace(os.Getenv(envKey))
	}
	setString(&cfg.InputPath, EnvInput)
	setString(&cfg.OutputPath, EnvOutput)
	setString(&cfg.LineEnding, EnvLineEnding)
	setString(&cfg.PDFPath, EnvPDF)
	setString(&cfg.SQLitePath, EnvSQLite)
	setString(&cfg.MetricsTextfile, EnvMetricsTextfile)
	cfg.LineEnding = strings.ToLower(cfg.LineEnding)

	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
		case "1", "true", "yes", "on":
			*dst = true
		}
	}
	setBool(&cfg.CSVBOM, EnvCSVBOM)
	setBool(&cfg.Manifest, EnvManifest)
	setBool(&cfg.Print, EnvPrint)
	setBool(&cfg.Verbose, EnvVerbose)
}
