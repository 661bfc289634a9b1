// Package metrics wires the repair pipeline into an OpenTelemetry meter
// backed by a Prometheus exporter, so that run counts, repair volume, and
// confidence scores collected by [go.kubefix.dev/manifestfix] are visible to
// a Prometheus scrape target.
//
// Call [Init] once at startup to create the meter and register its
// instruments. [RecordRun] reports one pipeline invocation; the zero value of
// the package (before [Init] runs) makes RecordRun a no-op so callers that
// never enable metrics pay nothing for it.
//
//	registry, shutdown, err := metrics.Init()
//	if err != nil {
//		return err
//	}
//	defer shutdown(context.Background())
//
//	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
package metrics
