// Package resilience provides fault tolerance for the outbound calls made
// while building a digest: the article search request and every model call.
//
// Subpackages:
//   - circuitbreaker: gobreaker-based breakers with per-dependency presets
//   - retry: exponential backoff with jitter for transient HTTP and network failures
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.SearchAPIConfig())
//	docs, err := circuitbreaker.Do(cb, func() ([]entity.Article, error) {
//	    return fetchDocs(ctx)
//	})
//
//	err := retry.WithBackoff(ctx, retry.ModelAPIConfig(), func() error {
//	    return callModel(ctx)
//	})
package resilience
