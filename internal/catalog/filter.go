package catalog

import "strings"

// UndisclosedSentinel is the filter lower bound that admits undisclosed
// deals. Any negative ValueMin behaves the same; this is the conventional
// value.
const UndisclosedSentinel float64 = -1

// FilterState is the complete set of filter predicates applied to the deal
// list. It is a plain value; the Controller owns the authoritative copy.
type FilterState struct {
	YearMin  int
	YearMax  int
	ValueMin float64 // millions; negative = include undisclosed deals
	ValueMax float64 // millions
	Types    Restriction
	Codes    Restriction
	Search   string
}

// Filter returns the deals passing every active predicate, preserving the
// relative order of the input. It never reorders or mutates.
func Filter(deals []Deal, f FilterState, sel *Selection) []Deal {
	out := make([]Deal, 0, len(deals))
	for _, d := range deals {
		if Matches(d, f, sel) {
			out = append(out, d)
		}
	}
	return out
}

// Matches evaluates the conjunction of all sub-predicates for one deal.
func Matches(d Deal, f FilterState, sel *Selection) bool {
	return matchesSelection(d, sel) &&
		matchesYear(d, f) &&
		matchesValue(d, f) &&
		f.Types.Allows(d.Type) &&
		f.Codes.AllowsAny(d.Codes) &&
		matchesSearch(d, f.Search)
}

func matchesSelection(d Deal, sel *Selection) bool {
	if sel.Empty() {
		return true
	}
	return sel.Contains(d.Receiver) || sel.Contains(d.Aggregator)
}

func matchesYear(d Deal, f FilterState) bool {
	return f.YearMin <= d.Year && d.Year <= f.YearMax
}

// matchesValue applies the closed-interval overlap test between the deal's
// value range and the filter window, both in millions. The sentinel lower
// bound admits undisclosed deals and collapses to zero for disclosed ones.
func matchesValue(d Deal, f FilterState) bool {
	if d.Undisclosed() {
		return f.ValueMin < 0
	}
	lo, hi := d.ValueMillions()
	fmin := f.ValueMin
	if fmin < 0 {
		fmin = 0
	}
	// Either deal bound lands inside the window, or the deal spans it.
	return (lo >= fmin && lo <= f.ValueMax) ||
		(hi >= fmin && hi <= f.ValueMax) ||
		(lo <= fmin && hi >= f.ValueMax)
}

func matchesSearch(d Deal, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(d.Receiver), q) ||
		strings.Contains(strings.ToLower(d.Aggregator), q) ||
		strings.Contains(strings.ToLower(d.Type), q) ||
		strings.Contains(strings.ToLower(d.ValueRaw), q) {
		return true
	}
	for _, c := range d.Codes {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	return false
}
