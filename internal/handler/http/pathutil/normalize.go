package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

const uuidPattern = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization for optimal performance.
var pathPatterns = []*PathPattern{
	// Document routes with UUIDs
	{Pattern: regexp.MustCompile(`^/documents/` + uuidPattern + `$`), Template: "/documents/:id"},
	{Pattern: regexp.MustCompile(`^/documents/` + uuidPattern + `/summary$`), Template: "/documents/:id/summary"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /documents/3b9e6a54-...) to template format
// (e.g., /documents/:id). Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/documents/3b9e6a54-97b2-4f0e-9e1b-2f4f9a6f8d21")  // "/documents/:id"
//	NormalizePath("/documents")                                        // "/documents" (unchanged)
//	NormalizePath("/health")                                           // "/health" (unchanged)
//	NormalizePath("/metrics")                                          // "/metrics" (unchanged)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/documents/3b9e6a54-97b2-4f0e-9e1b-2f4f9a6f8d21?full=1")  // "/documents/:id"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	// Try to match against known patterns
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// No match found, return original path
	// Static paths like /health and /metrics pass through unchanged
	return path
}
