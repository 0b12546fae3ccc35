package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetByName(t *testing.T) {
	target, ok := TargetByName("cohort_master")
	require.True(t, ok)
	assert.Equal(t, "cohort_master", target.Name)

	_, ok = TargetByName("students")
	assert.False(t, ok)
}

func TestAllTargetsHaveCohortID(t *testing.T) {
	// Every collection references the cohort by its business key.
	for _, target := range AllTargets {
		assert.Contains(t, target.RequiredColumns, "cohort_id", "target %s", target.Name)
	}
}

func TestValidateExactMatch(t *testing.T) {
	v := TargetCohortMaster.Validate([]string{"cohort_id", "year", "program", "batch_size", "phase"})
	assert.True(t, v.Valid)
	assert.Empty(t, v.MissingColumns)
	assert.Empty(t, v.ExtraColumns)
}

func TestValidateMissingColumns(t *testing.T) {
	v := TargetCohortMaster.Validate([]string{"cohort_id", "year"})
	assert.False(t, v.Valid)
	assert.Equal(t, []string{"program", "batch_size", "phase"}, v.MissingColumns)
}

func TestValidateExtraColumnsAreWarnings(t *testing.T) {
	v := TargetCohortMaster.Validate([]string{
		"cohort_id", "year", "program", "batch_size", "phase", "notes",
	})
	assert.True(t, v.Valid)
	assert.Equal(t, []string{"notes"}, v.ExtraColumns)
}

func TestValidateColumnOrderIrrelevant(t *testing.T) {
	v := TargetCohortMaster.Validate([]string{"phase", "batch_size", "program", "year", "cohort_id"})
	assert.True(t, v.Valid)
}

func TestExtraColumnWarning(t *testing.T) {
	assert.Empty(t, ExtraColumnWarning(nil))
	assert.Equal(t, "Extra columns ignored: notes, remarks",
		ExtraColumnWarning([]string{"notes", "remarks"}))
}
