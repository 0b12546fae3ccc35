package analytics

import "strings"

// Filter holds the optional categorical filter dimensions of an analytics
// request. An empty dimension imposes no restriction; supplied dimensions
// are combined with logical AND.
type Filter struct {
	// Cohorts restricts to the given cohort identifiers.
	Cohorts []string

	// Programs restricts to the given program codes.
	Programs []string

	// Phases restricts to the given adoption phases.
	Phases []string
}

// ParseFilter builds a Filter from raw comma-separated query values.
// Blank entries produced by stray commas are dropped.
func ParseFilter(cohorts, programs, phases string) Filter {
	return Filter{
		Cohorts:  splitList(cohorts),
		Programs: splitList(programs),
		Phases:   splitList(phases),
	}
}

// IsEmpty reports whether no dimension restricts the result.
func (f Filter) IsEmpty() bool {
	return len(f.Cohorts) == 0 && len(f.Programs) == 0 && len(f.Phases) == 0
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
