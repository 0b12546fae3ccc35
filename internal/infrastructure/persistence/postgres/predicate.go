package postgres

import (
	"fmt"
	"strings"

	"github.com/spj-hub/placement-analytics/internal/domain/analytics"
)

// filterPredicate is the compiled WHERE fragment shared by every query of
// one analytics request. Filter values only ever travel as bind arguments,
// never as SQL text.
type filterPredicate struct {
	clause string
	args   []any
}

// buildFilterPredicate compiles the filter against the cohort_master alias
// "cm". An empty filter compiles to an empty clause, matching all cohorts.
// Each filter list binds as a single array argument via = ANY.
func buildFilterPredicate(f analytics.Filter) filterPredicate {
	var conditions []string
	var args []any

	if len(f.Cohorts) > 0 {
		args = append(args, f.Cohorts)
		conditions = append(conditions, fmt.Sprintf("cm.cohort_id = ANY($%d)", len(args)))
	}
	if len(f.Programs) > 0 {
		args = append(args, f.Programs)
		conditions = append(conditions, fmt.Sprintf("cm.program = ANY($%d)", len(args)))
	}
	if len(f.Phases) > 0 {
		args = append(args, f.Phases)
		conditions = append(conditions, fmt.Sprintf("cm.phase = ANY($%d)", len(args)))
	}

	if len(conditions) == 0 {
		return filterPredicate{}
	}

	return filterPredicate{
		clause: "WHERE " + strings.Join(conditions, " AND "),
		args:   args,
	}
}

// phaseOrderExpr orders grouped rows by program chronology rather than
// alphabetically. Unknown phases sort last.
const phaseOrderExpr = `CASE cm.phase WHEN 'Pre-AI' THEN 1 WHEN 'Yoodli' THEN 2 WHEN 'JPT' THEN 3 ELSE 4 END`
