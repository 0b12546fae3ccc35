// Package analytics contains the read-side domain model for the placement
// analytics service: filter value objects, the AI-adoption phase enum, and
// derived-metric rules applied on top of raw database aggregates.
package analytics

// Phase is the AI-tool adoption stage of a cohort. The three phases form a
// fixed ordinal sequence; grouped results are always ordered by it, never
// alphabetically.
type Phase string

const (
	// PhasePreAI is the baseline before any AI tooling.
	PhasePreAI Phase = "Pre-AI"
	// PhaseYoodli is the stage where the AI tutor/mentor was introduced.
	PhaseYoodli Phase = "Yoodli"
	// PhaseJPT is the stage where the job-prep tool was introduced.
	PhaseJPT Phase = "JPT"
)

// AllPhases lists the phases in adoption order.
var AllPhases = []Phase{PhasePreAI, PhaseYoodli, PhaseJPT}

// Ordinal returns the 1-based position of the phase in the adoption
// sequence, or 0 for an unknown phase.
func (p Phase) Ordinal() int {
	switch p {
	case PhasePreAI:
		return 1
	case PhaseYoodli:
		return 2
	case PhaseJPT:
		return 3
	default:
		return 0
	}
}

// IsValid reports whether p is one of the three known phases.
func (p Phase) IsValid() bool {
	return p.Ordinal() != 0
}

func (p Phase) String() string {
	return string(p)
}
