// Package metrics provides the Prometheus business metrics of the digest
// pipeline and small recording helpers around them.
//
// HTTP request metrics live with the HTTP handlers; this package covers the
// search client, per-article summarization and model handle construction.
//
// All metrics are registered with the Prometheus default registry and
// exposed via the /metrics endpoint.
//
// Example usage:
//
//	start := time.Now()
//	docs, err := client.Search(ctx, query, page)
//	metrics.RecordSearch(resultLabel(err), time.Since(start), len(docs))
package metrics
