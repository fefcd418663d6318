package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	drValidator = "dr_validator"

	// Validation metrics
	violationsCount = "violations"
	phaseDuration   = "phase_duration_seconds"
	runSuccess      = "run_success"
	lastRunTime     = "last_run_timestamp_seconds"

	// Labels
	phaseLabel    = "phase"
	categoryLabel = "category"
	statusLabel   = "status"
)

var violationsLabels = []string{
	phaseLabel,
	categoryLabel,
}

var phaseDurationLabels = []string{
	phaseLabel,
	statusLabel,
}

// Registry holds the validator metrics only, without the process and Go
// collectors of the default registry.
var Registry = prometheus.NewRegistry()

/**
* Metrics definition
**/
var violationsMetric = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Subsystem: drValidator,
		Name:      violationsCount,
		Help:      "number of violations found by the last run, by phase and category",
	},
	violationsLabels,
)

var phaseDurationMetric = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Subsystem: drValidator,
		Name:      phaseDuration,
		Help:      "duration of each phase of the last run",
	},
	phaseDurationLabels,
)

var runSuccessMetric = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Subsystem: drValidator,
		Name:      runSuccess,
		Help:      "1 if the last run found the mapping file valid, 0 otherwise",
	},
)

var lastRunTimeMetric = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Subsystem: drValidator,
		Name:      lastRunTime,
		Help:      "unix time of the last run",
	},
)

// ResetRun clears the per run series before a new run.
func ResetRun() {
	violationsMetric.Reset()
	phaseDurationMetric.Reset()
}

func UpdateViolationsMetric(phase, category string, count int) {
	labels := prometheus.Labels{
		phaseLabel:    phase,
		categoryLabel: category,
	}
	violationsMetric.With(labels).Set(float64(count))
}

func UpdatePhaseDurationMetric(phase, status string, d time.Duration) {
	labels := prometheus.Labels{
		phaseLabel:  phase,
		statusLabel: status,
	}
	phaseDurationMetric.With(labels).Set(d.Seconds())
}

func UpdateRunResultMetric(ok bool, at time.Time) {
	v := 0.0
	if ok {
		v = 1
	}
	runSuccessMetric.Set(v)
	lastRunTimeMetric.Set(float64(at.Unix()))
}

// WriteTextfile writes the current metrics in the node exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	Registry.MustRegister(violationsMetric)
	Registry.MustRegister(phaseDurationMetric)
	Registry.MustRegister(runSuccessMetric)
	Registry.MustRegister(lastRunTimeMetric)
}
