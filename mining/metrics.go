package mining

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	opsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fst",
		Subsystem: "mining",
		Name:      "ops_total",
		Help:      "Committed ledger operations.",
	}, []string{"op"})
	failuresCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fst",
		Subsystem: "mining",
		Name:      "failures_total",
		Help:      "Rejected ledger operations by class (user or internal).",
	}, []string{"op", "class"})
	expiredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fst",
		Subsystem: "mining",
		Name:      "expired_miners_total",
		Help:      "Miners switched off because their power ran out.",
	})
	epochGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fst",
		Subsystem: "mining",
		Name:      "epoch",
		Help:      "Current mining epoch.",
	})
	totalThashGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fst",
		Subsystem: "mining",
		Name:      "total_thash",
		Help:      "Total hash-power of powered-on miners.",
	})
	settleTimer = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fst",
		Subsystem: "mining",
		Name:      "settle_seconds",
		Help:      "Epoch settlement duration.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	})
)

func init() {
	prometheus.MustRegister(
		opsCounter,
		failuresCounter,
		expiredCounter,
		epochGauge,
		totalThashGauge,
		settleTimer,
	)
}
