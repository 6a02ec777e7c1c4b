package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	parseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urllens_parse_total",
			Help: "Total number of URL parse attempts by outcome",
		},
		[]string{"outcome"},
	)

	compareTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urllens_compare_total",
			Help: "Total number of parameter comparisons by verdict",
		},
		[]string{"verdict"},
	)
)

// Recorder feeds parse and comparison outcomes into the Prometheus
// collectors. The zero value is ready to use and safe for concurrent use.
type Recorder struct{}

// NewRecorder returns a Recorder for the process-wide collectors.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// ObserveParse counts one parse attempt.
func (*Recorder) ObserveParse(ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	parseTotal.With(prometheus.Labels{"outcome": outcome}).Inc()
}

// ObserveCompare counts one comparison.
func (*Recorder) ObserveCompare(allIdentical bool) {
	verdict := "different"
	if allIdentical {
		verdict = "identical"
	}
	compareTotal.With(prometheus.Labels{"verdict": verdict}).Inc()
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
