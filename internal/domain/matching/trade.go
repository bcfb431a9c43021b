package matching

import "strings"

// Suffixes stripped before comparing trade labels, so "Plumber" matches
// "Plumbing" and "Decorator" matches "Decorating".
var tradeSuffixes = []string{"ing", "er", "or"}

// TradesMatch reports whether any of a tradesperson's declared labels matches
// the lead's category. Case-insensitive; substring in either direction; suffix
// variants tolerated. An empty label list matches everything - a tradesperson
// who declared no trades is deliberately not filtered out.
func TradesMatch(labels []string, category string) bool {
	if len(labels) == 0 {
		return true
	}

	cat := strings.ToLower(strings.TrimSpace(category))
	for _, label := range labels {
		l := strings.ToLower(strings.TrimSpace(label))
		if l == "" {
			continue
		}
		if strings.Contains(cat, l) || strings.Contains(l, cat) {
			return true
		}
		if stripSuffix(l) == stripSuffix(cat) {
			return true
		}
	}
	return false
}

func stripSuffix(s string) string {
	for _, suffix := range tradeSuffixes {
		if strings.HasSuffix(s, suffix) && len(s) > len(suffix) {
			return strings.TrimSuffix(s, suffix)
		}
	}
	return s
}
