// Package instrumentation provides OpenTelemetry metrics and tracing for the
// document handler.
//
// # Quick Start
//
//	inst, err := instrumentation.New(instrumentation.Config{
//		ServiceName:     "idpdocs",
//		ServiceVersion:  idpdocs.Version(),
//		Enabled:         true,
//		MetricsExporter: instrumentation.ExporterPrometheus,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer inst.Shutdown(context.Background())
//
//	h := handler.New(handler.WithInstrumentation(inst))
//	mux.Handle("/metrics", inst.MetricsHandler())
//
// # Available Metrics
//
//   - idpdocs.http.requests.total{method, endpoint, status} - Total HTTP requests
//   - idpdocs.http.request.duration{endpoint} - Request duration in milliseconds
//   - idpdocs.document.generation.errors{reason} - Failed document builds
//   - idpdocs.document.size{format} - Serialized document size in bytes
//   - idpdocs.ratelimit.exceeded - Requests rejected by the rate limiter
//
// # Traces
//
// The handler opens one handler.serve_document span per request carrying the
// issuer, format and status code.
//
// When Enabled is false every provider is a no-op.
package instrumentation
