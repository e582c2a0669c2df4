package convert

import (
	"strings"

	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
)

// QueryFromPaths builds the legacy subscription query selecting paths.
func QueryFromPaths(paths []string) string {
	return "SELECT " + strings.Join(paths, ", ")
}

// PathsFromQuery extracts the selected paths from a legacy query. Only the
// plain form "SELECT a[, b...]" maps onto path subscriptions; conditions,
// expressions and aliases fail.
func PathsFromQuery(query string) ([]string, error) {
	fail := func(reason string) error {
		return &clienterr.ConversionError{From: "query", To: "paths", Value: query, Reason: reason}
	}

	q := strings.TrimSpace(query)
	keyword, rest, ok := strings.Cut(q, " ")
	if !ok || !strings.EqualFold(keyword, "SELECT") {
		return nil, fail("expected SELECT <path>[, <path>...]")
	}
	var paths []string
	for item := range strings.SplitSeq(rest, ",") {
		p := strings.TrimSpace(item)
		if p == "" {
			return nil, fail("empty path")
		}
		if !isPath(p) {
			return nil, fail("only plain paths are supported, got " + p)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func isPath(s string) bool {
	if s[0] == '.' || s[len(s)-1] == '.' || strings.Contains(s, "..") {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.' || r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
