package metrics_fx

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"coursehub/internal/metrics"
)

var Module = fx.Provide(metrics.NewRegistry, provideMetrics)

func provideMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.New(reg)
}
