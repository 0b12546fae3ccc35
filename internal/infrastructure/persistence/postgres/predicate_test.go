package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spj-hub/placement-analytics/internal/domain/analytics"
)

func TestBuildFilterPredicateEmpty(t *testing.T) {
	p := buildFilterPredicate(analytics.Filter{})
	assert.Empty(t, p.clause)
	assert.Empty(t, p.args)
}

func TestBuildFilterPredicateSingleDimension(t *testing.T) {
	p := buildFilterPredicate(analytics.Filter{Phases: []string{"Pre-AI", "JPT"}})

	assert.Equal(t, "WHERE cm.phase = ANY($1)", p.clause)
	require.Len(t, p.args, 1)
	assert.Equal(t, []string{"Pre-AI", "JPT"}, p.args[0])
}

func TestBuildFilterPredicateAllDimensions(t *testing.T) {
	p := buildFilterPredicate(analytics.Filter{
		Cohorts:  []string{"C-2022-A"},
		Programs: []string{"MBA", "PGDM"},
		Phases:   []string{"Yoodli"},
	})

	assert.Equal(t,
		"WHERE cm.cohort_id = ANY($1) AND cm.program = ANY($2) AND cm.phase = ANY($3)",
		p.clause)
	require.Len(t, p.args, 3)
	assert.Equal(t, []string{"C-2022-A"}, p.args[0])
	assert.Equal(t, []string{"MBA", "PGDM"}, p.args[1])
	assert.Equal(t, []string{"Yoodli"}, p.args[2])
}

func TestBuildFilterPredicatePlaceholdersFollowPresence(t *testing.T) {
	// With cohorts absent, programs must bind as $1.
	p := buildFilterPredicate(analytics.Filter{
		Programs: []string{"MBA"},
		Phases:   []string{"JPT"},
	})

	assert.Equal(t, "WHERE cm.program = ANY($1) AND cm.phase = ANY($2)", p.clause)
	assert.Len(t, p.args, 2)
}

func TestPhaseOrderExprRanksKnownPhases(t *testing.T) {
	assert.Contains(t, phaseOrderExpr, "'Pre-AI' THEN 1")
	assert.Contains(t, phaseOrderExpr, "'Yoodli' THEN 2")
	assert.Contains(t, phaseOrderExpr, "'JPT' THEN 3")
	assert.Contains(t, phaseOrderExpr, "ELSE 4")
}
