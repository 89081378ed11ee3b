package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/certscrape/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		cfg         app.Config
		configPath  string
		envFiles    string
		showVersion bool
	)

	// Flag defaults stay zero so env and config file can fill them; see app.Defaults.
	flag.StringVar(&cfg.InputPath, "input", "", "Path to the saved certifications HTML (default \""+app.DefaultInputPath+"\")")
	flag.StringVar(&cfg.OutputPath, "output", "", "Path to write the CSV (default \""+app.DefaultOutputPath+"\")")
	flag.StringVar(&cfg.LineEnding, "csv.lineEnding", "", "CSV row terminator: crlf or lf (default \"crlf\")")
	flag.BoolVar(&cfg.CSVBOM, "csv.bom", false, "Prefix the CSV with a UTF-8 byte order mark")
	flag.StringVar(&cfg.PDFPath, "pdf", "", "Optional path to also render the certificates as PDF")
	flag.StringVar(&cfg.SQLitePath, "sqlite", "", "Optional SQLite database to store the certificates in")
	flag.StringVar(&cfg.MetricsTextfile, "metrics.textfile", "", "Optional path for Prometheus textfile metrics of the run")
	flag.BoolVar(&cfg.Manifest, "manifest", false, "Write <output>.manifest.json with input digest and row digests")
	flag.BoolVar(&cfg.Print, "print", false, "Print the extracted certificates as a table")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	flag.StringVar(&configPath, "config", os.Getenv("CERTSCRAPE_CONFIG"), "Optional YAML or JSON config file")
	flag.StringVar(&envFiles, "env", ".env", "Comma-separated dotenv files to load; missing files are ignored")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("certscrape %s (%s, %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		return
	}

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if err := loadConfig(&cfg, configPath, envFiles, explicit); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(2)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	rep, err := run(cfg)
	if err != nil {
		log.Error().Err(err).Msg("init failed")
		os.Exit(2)
	}
	fmt.Println(rep.Message())
	if rep.Outcome == app.OutcomeFailed {
		log.Error().Err(rep.Err).Msg("run failed")
	}
	// Every run outcome, including missing input and empty results, exits 0.
}

// loadConfig layers env files, environment and the config file under the
// flags already parsed into cfg, then applies defaults and validates.
// explicit names the flags given on the command line; their values are
// restored after layering so that e.g. -csv.bom=false beats CERTSCRAPE_CSV_BOM=1.
func loadConfig(cfg *app.Config, configPath, envFiles string, explicit map[string]bool) error {
	flagged := *cfg
	if err := app.LoadEnvFiles(splitList(envFiles)...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	app.ApplyEnvToConfig(cfg)
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := app.ApplyFileConfig(cfg, fc); err != nil {
			return fmt.Errorf("apply config: %w", err)
		}
	}
	reapplyFlags(cfg, flagged, explicit)
	if err := app.ApplyDefaults(cfg); err != nil {
		return fmt.Errorf("apply defaults: %w", err)
	}
	return app.ValidateConfig(*cfg)
}

func reapplyFlags(cfg *app.Config, flagged app.Config, explicit map[string]bool) {
	for name := range explicit {
		switch name {
		case "input":
			cfg.InputPath = flagged.InputPath
		case "output":
			cfg.OutputPath = flagged.OutputPath
		case "csv.lineEnding":
			cfg.LineEnding = strings.ToLower(flagged.LineEnding)
		case "csv.bom":
			cfg.CSVBOM = flagged.CSVBOM
		case "pdf":
			cfg.PDFPath = flagged.PDFPath
		case "sqlite":
			cfg.SQLitePath = flagged.SQLitePath
		case "metrics.textfile":
			cfg.MetricsTextfile = flagged.MetricsTextfile
		case "manifest":
			cfg.Manifest = flagged.Manifest
		case "print":
			cfg.Print = flagged.Print
		case "v":
			cfg.Verbose = flagged.Verbose
		}
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			list = append(list, v)
		}
	}
	return list
}

func run(cfg app.Config) (app.Report, error) {
	a, err := app.New(cfg)
	if err != nil {
		return app.Report{}, fmt.Errorf("init app: %w", err)
	}
	return a.Run(context.Background()), nil
}
