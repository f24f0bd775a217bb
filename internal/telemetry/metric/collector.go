// Package metric provides Prometheus metrics for HashREST.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/hashrest-go/internal/infra/buildinfo"
)

var buildInfoDesc = prometheus.NewDesc(
	prometheus.BuildFQName(namespace, "", "build_info"),
	"Build information of the running binary.",
	[]string{"version", "commit", "go_version"},
	nil,
)

// Collector exports build information as a constant gauge.
type Collector struct {
	info buildinfo.Info
}

// NewCollector creates a collector for the current build.
func NewCollector() *Collector {
	return &Collector{info: buildinfo.Get()}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- buildInfoDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(
		buildInfoDesc,
		prometheus.GaugeValue,
		1,
		c.info.Version,
		c.info.Commit,
		c.info.GoVersion,
	)
}
