package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuoteTotal counts single line-item quote computations by role and outcome.
	QuoteTotal *prometheus.CounterVec
	// QuoteDuration records quote computation latency in milliseconds.
	QuoteDuration *prometheus.HistogramVec
	// CartQuoteTotal counts cart aggregation outcomes.
	CartQuoteTotal *prometheus.CounterVec
	// CartQuoteLines records the number of lines per aggregated cart.
	CartQuoteLines prometheus.Histogram
	// FormatterFallbackTotal counts display-formatting failures recovered by
	// the locale-free fallback.
	FormatterFallbackTotal prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers pricing-domain Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuoteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_total",
			Help:      "Count of line-item quote computations by role and outcome.",
		}, []string{"role", "result"})
		QuoteDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_duration_ms",
			Help:      "Latency of quote computations in milliseconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		}, []string{"kind"})
		CartQuoteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_quote_total",
			Help:      "Count of cart aggregation outcomes.",
		}, []string{"result"})
		CartQuoteLines = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cart_quote_lines",
			Help:      "Distribution of line counts per aggregated cart.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		})
		FormatterFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "formatter_fallback_total",
			Help:      "Count of display-formatting failures recovered by the fallback renderer.",
		})

		reg.MustRegister(QuoteTotal, QuoteDuration, CartQuoteTotal, CartQuoteLines, FormatterFallbackTotal)
	})
}
