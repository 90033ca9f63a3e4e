package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeConfirmed = "confirmed"
	outcomeRejected  = "rejected"
	outcomeTimeout   = "timeout"
	outcomeInvalid   = "invalid"
	outcomePartial   = "partial"
	outcomeError     = "error"

	payloadSingle = "single"
	payloadGroup  = "group"
)

// Metrics records submission outcomes. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	submissions        *prometheus.CounterVec
	confirmationRounds prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with registerer.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	metrics := &Metrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "algorand",
				Subsystem: "workflow",
				Name:      "submissions_total",
				Help:      "Signed payloads submitted, by payload kind and outcome.",
			},
			[]string{"payload", "outcome"},
		),
		confirmationRounds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "algorand",
				Subsystem: "workflow",
				Name:      "confirmation_rounds",
				Help:      "Rounds elapsed between submission and confirmation.",
				Buckets:   []float64{0, 1, 2, 3, 4, 6, 8, 12},
			},
		),
	}

	if registerer != nil {
		for _, collector := range []prometheus.Collector{metrics.submissions, metrics.confirmationRounds} {
			if err := registerer.Register(collector); err != nil {
				return nil, err
			}
		}
	}

	return metrics, nil
}

func (m *Metrics) observeSubmission(payload string, outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(payload, outcome).Inc()
}

func (m *Metrics) observeConfirmation(rounds uint64) {
	if m == nil {
		return
	}
	m.confirmationRounds.Observe(float64(rounds))
}
