// Package metrics exposes Prometheus instrumentation for localization syncing and lookups.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RefreshTotal counts remote reconciliations by outcome (accepted, discarded, no_data, invalid, store_error).
	RefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "langusta_refresh_total",
		Help: "Remote localization refreshes by outcome",
	}, []string{"outcome"})

	// LookupFailuresTotal counts failed lookups by kind (language, key, arguments).
	LookupFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "langusta_lookup_failures_total",
		Help: "Failed localization lookups by kind",
	}, []string{"kind"})

	// LanguageChangesTotal counts accepted language changes.
	LanguageChangesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "langusta_language_changes_total",
		Help: "Accepted active language changes",
	})

	// ActiveKeys reports the number of keys per language in the active set.
	ActiveKeys = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "langusta_active_keys",
		Help: "Keys per language in the active localization set",
	}, []string{"language"})
)

// ObserveActiveSet records key counts per language.
func ObserveActiveSet(counts map[string]int) {
	for lang, n := range counts {
		ActiveKeys.WithLabelValues(lang).Set(float64(n))
	}
}
