package utils

import "strings"

// SplitLines splits a raw newline-delimited blob (e.g. tag-lister output)
// into trimmed, non-empty, deduplicated lines, preserving first-seen order.
func SplitLines(blob string) []string {
	seen := make(map[string]struct{})
	var result []string

	for _, s := range strings.Split(blob, "\n") {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; !exists {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}
