package app

import (
	"github.com/prometheus/client_golang/prometheus"
)

// writeMetricsTextfile exports the run counters in the Prometheus text format,
// suitable for the node_exporter textfile collector.
func writeMetricsTextfile(path string, rep Report) error {
	reg := prometheus.NewRegistry()
	fragments := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "certscrape_fragments",
		Help: "Certificate list items found in the input.",
	})
	records := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "certscrape_records_written",
		Help: "Valid certificate records written to the output.",
	})
	dropped := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "certscrape_records_dropped",
		Help: "List items discarded because no name was extracted.",
	})
	failures := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "certscrape_extraction_failures",
		Help: "List items whose markup could not be read.",
	})
	outcome := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "certscrape_run_outcome",
		Help: "1 for the outcome of the last run, 0 otherwise.",
	}, []string{"outcome"})
	reg.MustRegister(fragments, records, dropped, failures, outcome)

	fragments.Set(float64(rep.Fragments))
	if rep.Outcome == OutcomeWritten {
		records.Set(float64(len(rep.Records)))
	}
	dropped.Set(float64(rep.Dropped))
	failures.Set(float64(len(rep.Failures)))
	for _, o := range []Outcome{OutcomeWritten, OutcomeNotFound, OutcomeEmpty, OutcomeFailed} {
		v := 0.0
		if o == rep.Outcome {
			v = 1
		}
		outcome.WithLabelValues(o.String()).Set(v)
	}
	return prometheus.WriteToTextfile(path, reg)
}
