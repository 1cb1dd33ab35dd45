package tangle

import "github.com/prometheus/client_golang/prometheus"

// Metrics is optional instrumentation; the spec mandates no metric surface,
// so an Engine without a registered Metrics simply skips these calls.
type Metrics struct {
	inserts     prometheus.Counter
	solidified  prometheus.Counter
	confirmed   prometheus.Counter
	tipsGauge   prometheus.Gauge
	lmiGauge    prometheus.Gauge
	lsmiGauge   prometheus.Gauge
	selectCalls prometheus.Counter
}

// NewMetrics builds and registers the engine's counters/gauges against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		inserts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tangle_inserts_total", Help: "messages inserted",
		}),
		solidified: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tangle_solidified_total", Help: "vertices marked solid",
		}),
		confirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tangle_confirmed_total", Help: "vertices marked confirmed",
		}),
		tipsGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tangle_num_tips", Help: "current tip set size",
		}),
		lmiGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tangle_lmi", Help: "latest milestone index",
		}),
		lsmiGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tangle_lsmi", Help: "latest solid milestone index",
		}),
		selectCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tangle_select_tip_calls_total", Help: "select_tip invocations",
		}),
	}
	reg.MustRegister(m.inserts, m.solidified, m.confirmed, m.tipsGauge, m.lmiGauge, m.lsmiGauge, m.selectCalls)
	return m
}
