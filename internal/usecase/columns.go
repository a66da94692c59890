package usecase

import "strings"

// ResolveColumn locates a logical field in a drifting schema: it scans the
// actual column names in order and returns the first whose lowercased name
// contains any of the synonyms. When nothing matches it returns the fixed
// fallback name. The synonym sets are configuration, not code, so a new
// schema variant is handled by adding a synonym.
func ResolveColumn(columns []string, synonyms []string, fallback string) string {
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, syn := range synonyms {
			if syn != "" && strings.Contains(lower, strings.ToLower(syn)) {
				return col
			}
		}
	}
	return fallback
}
