// Package pathutil maps request paths onto a bounded set of metric labels.
package pathutil

import "strings"

// OtherPath is the label for any path that is not a registered route.
const OtherPath = "/other"

// knownPaths lists the routes served by the application.
var knownPaths = map[string]struct{}{
	"/":          {},
	"/summarize": {},
	"/health":    {},
	"/live":      {},
	"/ready":     {},
	"/metrics":   {},
}

// NormalizePath returns the route label for path. Query strings and trailing
// slashes are ignored; unknown paths collapse into OtherPath so that probes
// and scanners cannot grow label cardinality.
//
//	NormalizePath("/summarize")      // "/summarize"
//	NormalizePath("/health/")        // "/health"
//	NormalizePath("/wp-login.php")   // "/other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	if path == "" {
		path = "/"
	}

	if _, ok := knownPaths[path]; ok {
		return path
	}
	return OtherPath
}

// ExpectedCardinality returns the number of distinct labels NormalizePath can produce.
func ExpectedCardinality() int {
	return len(knownPaths) + 1
}
