// Package metrics provides Prometheus metrics for variant generation and
// validation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Validation kinds.
const (
	KindForm   = "form"
	KindField  = "field"
	KindChange = "change"
)

// Validation results.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
)

// Metrics holds the collectors. A nil *Metrics records nothing.
type Metrics struct {
	// CombinationsGenerated tracks combinations produced per facet
	CombinationsGenerated *prometheus.CounterVec

	// VariantResolutions tracks reconciler outcomes per facet and match kind
	VariantResolutions *prometheus.CounterVec

	// Validations tracks validation runs by kind and result
	Validations *prometheus.CounterVec

	// ValidationErrorPaths tracks how many paths fail per form validation
	ValidationErrorPaths prometheus.Histogram
}

// New registers the collectors with reg under namespace.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CombinationsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "variants",
				Name:      "combinations_generated_total",
				Help:      "Total number of combinations generated by facet",
			},
			[]string{"facet"},
		),
		VariantResolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "variants",
				Name:      "resolutions_total",
				Help:      "Total number of variant record resolutions by facet and match kind",
			},
			[]string{"facet", "match"},
		),
		Validations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "schema",
				Name:      "validations_total",
				Help:      "Total number of validations by kind and result",
			},
			[]string{"kind", "result"},
		),
		ValidationErrorPaths: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "schema",
				Name:      "validation_error_paths",
				Help:      "Number of failing paths per form validation",
				Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
		),
	}
}

func (m *Metrics) ObserveCombinations(facet string, n int) {
	if m == nil {
		return
	}
	m.CombinationsGenerated.WithLabelValues(facet).Add(float64(n))
}

func (m *Metrics) ObserveResolution(facet, match string) {
	if m == nil {
		return
	}
	m.VariantResolutions.WithLabelValues(facet, match).Inc()
}

// ObserveValidation records one validation run with errorCount failing paths.
// Only form validations feed the histogram.
func (m *Metrics) ObserveValidation(kind string, errorCount int) {
	if m == nil {
		return
	}

	result := ResultValid
	if errorCount > 0 {
		result = ResultInvalid
	}
	m.Validations.WithLabelValues(kind, result).Inc()

	if kind == KindForm {
		m.ValidationErrorPaths.Observe(float64(errorCount))
	}
}
