package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperifyio/certscrape/internal/app"
)

// Smoke test: run writes the CSV for a minimal saved section.
func TestRun_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "certificate.txt")
	out := filepath.Join(dir, "certificates.csv")
	markup := `<ul><li class="pvs-list__paged-list-item"><span aria-hidden="true">Go Basics</span></li></ul>`
	if err := os.WriteFile(in, []byte(markup), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	rep, err := run(app.Config{InputPath: in, OutputPath: out, LineEnding: "lf"})
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if rep.Outcome != app.OutcomeWritten {
		t.Fatalf("outcome=%v, message=%q", rep.Outcome, rep.Message())
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(b) != "name,link,organization,issue_date\nGo Basics,,,\n" {
		t.Fatalf("unexpected output %q", b)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	if _, err := run(app.Config{}); err == nil {
		t.Fatalf("expected config error")
	}
}

// Precedence: flags > environment > config file > defaults.
func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "certscrape.yaml")
	yml := "input: from-file.html\noutput: from-file.csv\npdf: from-file.pdf\ncsv:\n  bom: true\n"
	if err := os.WriteFile(cfgPath, []byte(yml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(app.EnvInput, "")
	t.Setenv(app.EnvOutput, "from-env.csv")
	t.Setenv(app.EnvPDF, "")
	t.Setenv(app.EnvLineEnding, "")

	cfg := app.Config{InputPath: "from-flag.html"}
	if err := loadConfig(&cfg, cfgPath, filepath.Join(dir, "missing.env"), map[string]bool{"input": true}); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.InputPath != "from-flag.html" {
		t.Fatalf("input=%q, flag should win", cfg.InputPath)
	}
	if cfg.OutputPath != "from-env.csv" {
		t.Fatalf("output=%q, env should beat file", cfg.OutputPath)
	}
	if cfg.PDFPath != "from-file.pdf" || !cfg.CSVBOM {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.LineEnding != "crlf" {
		t.Fatalf("line ending default not applied: %q", cfg.LineEnding)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" .env, ,.env.local ")
	if len(got) != 2 || got[0] != ".env" || got[1] != ".env.local" {
		t.Fatalf("unexpected list %q", got)
	}
}

// A boolean flag set to false on the command line overrides env and file.
func TestLoadConfig_ExplicitFalseFlagWins(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "certscrape.yaml")
	if err := os.WriteFile(cfgPath, []byte("manifest: true\nprint: true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(app.EnvCSVBOM, "1")
	t.Setenv(app.EnvManifest, "")
	t.Setenv(app.EnvPrint, "")

	cfg := app.Config{CSVBOM: false, Manifest: false}
	explicit := map[string]bool{"csv.bom": true, "manifest": true}
	if err := loadConfig(&cfg, cfgPath, filepath.Join(dir, "missing.env"), explicit); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.CSVBOM {
		t.Fatalf("-csv.bom=false should beat %s", app.EnvCSVBOM)
	}
	if cfg.Manifest {
		t.Fatalf("-manifest=false should beat the config file")
	}
	if !cfg.Print {
		t.Fatalf("unset flag should still take the file value")
	}
}
