package monitoring

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"

	fstprometheus "github.com/findsatoshi/go-fst/monitoring/prometheus"
)

var (
	dbDirMonitor        atomic.Value
	dbSizeMetricMonitor = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "fst",
		Name:      "db_size",
		Help:      "Size of the datadir in bytes.",
	}, func() float64 {
		return float64(measureDbDirMonitor())
	})
)

func init() {
	prometheus.MustRegister(dbSizeMetricMonitor)
}

// SetupPrometheus starts the metrics listener.
func SetupPrometheus(cfg Config, datadir string) {
	SetDataDirMonitor(datadir)
	fstprometheus.PrometheusListener(cfg.Endpoint())
}

func SetDataDirMonitor(datadir string) {
	dbDirMonitor.Store(datadir)
}

func measureDbDirMonitor() (size int64) {
	datadir, ok := dbDirMonitor.Load().(string)
	if !ok || datadir == "" || datadir == "inmemory" {
		return
	}

	err := filepath.Walk(datadir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return err
	})
	if err != nil {
		log.Error("filepath.Walk", "path", datadir, "err", err)
		return 0
	}

	return
}
