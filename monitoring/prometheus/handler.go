package prometheus

import (
	"net/http"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var logger = log.New("module", "prometheus")

// Handler serves the metrics of the gatherer, the default registry if nil.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// PrometheusListener serves prometheus connections.
func PrometheusListener(endpoint string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(nil))
	srv := &http.Server{
		Addr:    endpoint,
		Handler: mux,
	}

	go func() {
		logger.Info("Metrics server starts", "endpoint", endpoint)
		defer logger.Info("Metrics server is stopped")

		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Info("metrics server", "err", err)
		}
	}()
	return srv
}
