// Package metric provides Prometheus metrics for HashREST.
//
//   - prometheus.go: registry of search and request metrics
//   - collector.go: build information collector
//
// The CLI does not serve /metrics. A registry can be written in the text
// exposition format to a file for the node_exporter textfile collector.
package metric
