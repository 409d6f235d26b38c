// Package taxonomy expands MeSH descriptor roots into their polyhierarchical
// descendant closures. Descriptors sit at multiple positions in the MeSH
// tree; each position is a dot-separated tree number ("C01.069.123"), and a
// descendant is any descriptor one of whose tree numbers extends an
// ancestor's tree number at a segment boundary.
package taxonomy

import "strings"

// HasTreePrefix reports whether path is prefix itself or a descendant of it.
// Matching is segment-boundary aware: "C01" covers "C01" and "C01.069" but
// not "C010" or "C010.5", which merely share a string prefix.
func HasTreePrefix(path, prefix string) bool {
	if prefix == "" || len(path) < len(prefix) {
		return false
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '.'
}
