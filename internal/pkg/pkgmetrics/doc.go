// Package pkgmetrics holds the Prometheus collectors exported by the service
// and the handler serving them.
package pkgmetrics
