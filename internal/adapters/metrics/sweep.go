package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rafaelleal24/smartpantry/internal/core/service"
)

type Sweeper interface {
	Sweep(ctx context.Context, referenceDate time.Time) service.SweepReport
}

type SweepMetrics struct {
	runs     prometheus.Counter
	products *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewSweepMetrics(registerer prometheus.Registerer) *SweepMetrics {
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pantry_sweep_runs_total",
		Help: "Total number of expiry sweeps executed",
	})

	products := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_sweep_products_total",
			Help: "Products visited by expiry sweeps, by outcome",
		},
		[]string{"result"},
	)

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pantry_sweep_duration_seconds",
		Help:    "Expiry sweep duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
	})

	registerer.MustRegister(runs, products, duration)

	return &SweepMetrics{runs: runs, products: products, duration: duration}
}

func (m *SweepMetrics) Observe(report service.SweepReport) {
	m.runs.Inc()
	m.products.WithLabelValues("scanned").Add(float64(report.Scanned))
	m.products.WithLabelValues("updated").Add(float64(report.Updated))
	m.products.WithLabelValues("missing").Add(float64(report.Missing))
	m.products.WithLabelValues("skipped").Add(float64(report.Skipped))
	m.products.WithLabelValues("failed").Add(float64(report.Failed))
	m.duration.Observe(report.Duration.Seconds())
}

// InstrumentedSweeper records every sweep it forwards.
type InstrumentedSweeper struct {
	next    Sweeper
	metrics *SweepMetrics
}

func NewInstrumentedSweeper(next Sweeper, metrics *SweepMetrics) *InstrumentedSweeper {
	return &InstrumentedSweeper{next: next, metrics: metrics}
}

func (s *InstrumentedSweeper) Sweep(ctx context.Context, referenceDate time.Time) service.SweepReport {
	report := s.next.Sweep(ctx, referenceDate)
	s.metrics.Observe(report)
	return report
}
