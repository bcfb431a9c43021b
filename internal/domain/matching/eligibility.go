package matching

import "strings"

// LeadSpec is the slice of a lead that eligibility cares about.
type LeadSpec struct {
	Category string
	Coords   *Coordinates
	Location string
}

// CandidateSpec is the slice of a tradesperson that eligibility cares about.
// RadiusMiles must already be resolved to a concrete value (the caller applies
// the configured default when the tradesperson has none).
type CandidateSpec struct {
	Trades      []string
	Coords      *Coordinates
	RadiusMiles float64
	Location    string
}

// Evaluate is the single eligibility predicate shared by the notification
// fan-out (write time) and the job feed (read time). Keeping it in one place
// guarantees a tradesperson is never alerted about a lead that then fails to
// show up in their own feed.
//
// Returns whether the candidate matches and the distance annotation. Leads
// without coordinates sort first in the feed, so they report distance 0 and
// always match trade-compatible candidates.
func Evaluate(lead LeadSpec, c CandidateSpec) (bool, float64) {
	if !TradesMatch(c.Trades, lead.Category) {
		return false, 0
	}

	if lead.Coords == nil {
		return true, 0
	}

	if c.Coords == nil {
		return locationsOverlap(lead.Location, c.Location), 0
	}

	d := DistanceMiles(*c.Coords, *lead.Coords)
	return d <= c.RadiusMiles, d
}

// locationsOverlap compares the first comma-segment of two free-text location
// fields, case-insensitively and in either direction ("Leeds" vs
// "Leeds, West Yorkshire").
func locationsOverlap(a, b string) bool {
	sa := firstSegment(a)
	sb := firstSegment(b)
	if sa == "" || sb == "" {
		return false
	}
	return strings.Contains(sa, sb) || strings.Contains(sb, sa)
}

func firstSegment(s string) string {
	seg, _, _ := strings.Cut(s, ",")
	return strings.ToLower(strings.TrimSpace(seg))
}
