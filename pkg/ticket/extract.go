// Package ticket extracts JIRA issue keys from free-form text labels
// such as git branch names.
package ticket

import (
	"regexp"
	"sort"
)

// keyPattern matches JIRA issue keys embedded in arbitrary text:
// one or more uppercase ASCII letters, a hyphen, one or more digits
// (e.g., PROJ-123). Matching is non-overlapping within a label.
var keyPattern = regexp.MustCompile(`[A-Z]+-[0-9]+`)

// Extract scans the given labels for JIRA issue keys and returns the
// deduplicated set in lexicographic order. A single label may yield zero,
// one, or multiple keys. An empty result means there is nothing to do;
// it is never an error.
func Extract(labels []string) []string {
	seen := make(map[string]bool)
	var keys []string

	for _, label := range labels {
		for _, match := range keyPattern.FindAllString(label, -1) {
			if !seen[match] {
				seen[match] = true
				keys = append(keys, match)
			}
		}
	}

	sort.Strings(keys)
	return keys
}
