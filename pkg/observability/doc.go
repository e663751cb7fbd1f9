/*
Package observability turns lifecycle hooks into Prometheus metrics.

Metrics are registered on a caller-supplied registerer so that libraries
embedding open-normal never touch the global default registry.

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	ext, _ := opennormal.New(opennormal.WithLifecycleHooks(metrics.Hooks()))
*/
package observability
