package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Input  string `yaml:"input" json:"input"`
	Output string `yaml:"output" json:"output"`

	CSV struct {
		LineEnding string `yaml:"lineEnding" json:"lineEnding"`
		BOM        bool   `yaml:"bom" json:"bom"`
	} `yaml:"csv" json:"csv"`

	PDF     string `yaml:"pdf" json:"pdf"`
	SQLite  string `yaml:"sqlite" json:"sqlite"`
	Metrics struct {
		Textfile string `yaml:"textfile" json:"textfile"`
	} `yaml:"metrics" json:"metrics"`
	Manifest bool `yaml:"manifest" json:"manifest"`
	Print    bool `yaml:"print" json:"print"`
	Verbose  bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// Config flattens the file schema into a Config.
func (fc FileConfig) Config() Config {
	return Config{
		InputPath:       fc.Input,
		OutputPath:      fc.Output,
		LineEnding:      strings.ToLower(strings.TrimSpace(fc.CSV.LineEnding)),
		CSVBOM:          fc.CSV.BOM,
		PDFPath:         fc.PDF,
		SQLitePath:      fc.SQLite,
		MetricsTextfile: fc.Metrics.Textfile,
		Manifest:        fc.Manifest,
		Print:           fc.Print,
		Verbose:         fc.Verbose,
	}
}

// ApplyFileConfig overlays values from fc onto fields that are still zero in
// cfg, so flags and environment keep precedence over the file.
func ApplyFileConfig(cfg *Config, fc FileConfig) error {
	if cfg == nil {
		return nil
	}
	return mergo.Merge(cfg, fc.Config())
}
