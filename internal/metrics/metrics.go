// Package metrics defines the Prometheus collectors of the pwcheck tool and
// exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/npillmayer/pwdict"
)

// Metrics holds all collectors. It implements pwdict.Observer and
// pwdict.VerdictObserver.
type Metrics struct {
	registry        *prometheus.Registry
	LookupsTotal    *prometheus.CounterVec
	Comparisons     *prometheus.HistogramVec
	Classifications *prometheus.CounterVec
	DictionaryWords prometheus.Gauge
	TableFill       *prometheus.GaugeVec
}

var (
	_ pwdict.Observer        = (*Metrics)(nil)
	_ pwdict.VerdictObserver = (*Metrics)(nil)
)

// New creates all collectors and registers them with a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		LookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pwdict_lookups_total",
				Help: "Dictionary lookups by table and result (hit, miss).",
			},
			[]string{"table", "result"},
		),
		Comparisons: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pwdict_search_comparisons",
				Help:    "Entries or slots compared per table search.",
				Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21, 34, 55},
			},
			[]string{"table"},
		),
		Classifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pwdict_classifications_total",
				Help: "Classified candidates by verdict (strong, weak) and deciding rule.",
			},
			[]string{"verdict", "reason"},
		),
		DictionaryWords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pwdict_dictionary_words",
				Help: "Number of words loaded into the dictionary.",
			},
		),
		TableFill: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pwdict_table_fill_ratio",
				Help: "Share of used buckets or slots per table.",
			},
			[]string{"table"},
		),
	}
	m.registry.MustRegister(
		m.LookupsTotal,
		m.Comparisons,
		m.Classifications,
		m.DictionaryWords,
		m.TableFill,
	)
	return m
}

// ObserveLookup implements pwdict.Observer.
func (m *Metrics) ObserveLookup(table string, found bool, comparisons int) {
	result := "miss"
	if found {
		result = "hit"
	}
	m.LookupsTotal.WithLabelValues(table, result).Inc()
	m.Comparisons.WithLabelValues(table).Observe(float64(comparisons))
}

// ObserveVerdict implements pwdict.VerdictObserver.
func (m *Metrics) ObserveVerdict(v pwdict.Verdict) {
	verdict := "weak"
	if v.Strong {
		verdict = "strong"
	}
	m.Classifications.WithLabelValues(verdict, v.Reason.String()).Inc()
}

// SetIndex records the size and fill of a loaded index.
func (m *Metrics) SetIndex(idx *pwdict.Index) {
	s := idx.Stats()
	m.DictionaryWords.Set(float64(idx.Len()))
	m.TableFill.WithLabelValues(s.Chained.Backend).Set(s.Chained.FillRatio())
	m.TableFill.WithLabelValues(s.Probing.Backend).Set(s.Probing.FillRatio())
}

// Handler serves the collected metrics in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
