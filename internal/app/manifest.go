package app

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"strings"

	"github.com/hyperifyio/certscrape/internal/extract"
)

// manifestEntry is a compact record of a single written row.
type manifestEntry struct {
	Index  int            `json:"index"`
	Record extract.Record `json:"record"`
	SHA256 string         `json:"sha256"`
}

// manifest captures what a run read and wrote. It carries no timestamps so
// reruns on the same input produce the same bytes.
type manifest struct {
	Tool        string          `json:"tool"`
	Version     string          `json:"version"`
	Input       string          `json:"input"`
	InputSHA256 string          `json:"input_sha256"`
	Output      string          `json:"output"`
	Fragments   int             `json:"fragments"`
	Records     int             `json:"records"`
	Dropped     int             `json:"dropped"`
	Failures    []string        `json:"failures,omitempty"`
	Rows        []manifestEntry `json:"rows"`
}

// computeSHA256Hex returns a lowercase hex-encoded SHA-256 of the given bytes.
func computeSHA256Hex(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// buildManifestEntries digests each record's row, joined by the unit separator.
func buildManifestEntries(records []extract.Record) []manifestEntry {
	out := make([]manifestEntry, 0, len(records))
	for i, r := range records {
		out = append(out, manifestEntry{
			Index:  i + 1,
			Record: r,
			SHA256: computeSHA256Hex([]byte(strings.Join(r.Row(), "\x1f"))),
		})
	}
	return out
}

func buildManifest(cfg Config, input []byte, rep Report) manifest {
	return manifest{
		Tool:        "certscrape",
		Version:     BuildVersion,
		Input:       cfg.InputPath,
		InputSHA256: computeSHA256Hex(input),
		Output:      cfg.OutputPath,
		Fragments:   rep.Fragments,
		Records:     len(rep.Records),
		Dropped:     rep.Dropped,
		Failures:    rep.Failures,
		Rows:        buildManifestEntries(rep.Records),
	}
}

// deriveManifestSidecarPath returns a sidecar JSON path next to the output CSV.
func deriveManifestSidecarPath(outputPath string) string {
	return outputPath + ".manifest.json"
}

func writeManifest(cfg Config, input []byte, rep Report) error {
	b, err := json.MarshalIndent(buildManifest(cfg, input, rep), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(deriveManifestSidecarPath(cfg.OutputPath), append(b, '\n'), 0o644)
}
