package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceEmptyCellIsNil(t *testing.T) {
	v, err := Coerce("avg_package", "")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestCoerceDates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"iso", "2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"slash", "2024/03/15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"day first", "15-03-2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"day first slash", "15/03/2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Coerce("visit_date", tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestCoerceUnparseableDateFails(t *testing.T) {
	_, err := Coerce("visit_date", "not a date")
	assert.Error(t, err)
}

func TestCoerceFloats(t *testing.T) {
	v, err := Coerce("avg_package", "12.75")
	require.NoError(t, err)
	assert.Equal(t, 12.75, v)

	v, err = Coerce("tech_role_share_pct", " 40.5 ")
	require.NoError(t, err)
	assert.Equal(t, 40.5, v)

	// A bad float is a zero, not a row failure.
	v, err = Coerce("avg_package", "n/a")
	require.NoError(t, err)
	assert.Equal(t, float64(0), v)
}

func TestCoerceIntegers(t *testing.T) {
	v, err := Coerce("joined_count", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	// Spreadsheet exports often write integers as "12.0".
	v, err = Coerce("tier1_offers", "12.0")
	require.NoError(t, err)
	assert.Equal(t, int64(12), v)

	v, err = Coerce("year", "2024")
	require.NoError(t, err)
	assert.Equal(t, int64(2024), v)

	v, err = Coerce("started_count", "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
}

func TestCoerceBool(t *testing.T) {
	v, err := Coerce("is_repeat_recruiter", "true")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = Coerce("is_repeat_recruiter", "1")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = Coerce("is_repeat_recruiter", "no")
	require.NoError(t, err)
	assert.Equal(t, false, v)
}

func TestCoerceTextPassthrough(t *testing.T) {
	v, err := Coerce("cohort_id", "C-2024-A")
	require.NoError(t, err)
	assert.Equal(t, "C-2024-A", v)
}

// The substring rules fire on column names wherever the fragment appears.
// "total_jpt_sessions" hits the "sessions" rule, and a column like
// "joined_count" hits "count" regardless of its meaning.
func TestCoerceSubstringRules(t *testing.T) {
	v, err := Coerce("total_jpt_sessions", "310")
	require.NoError(t, err)
	assert.Equal(t, int64(310), v)

	// "avg_sessions_per_student" contains both "avg" and "sessions";
	// the float rule wins because it is checked first.
	v, err = Coerce("avg_sessions_per_student", "3.4")
	require.NoError(t, err)
	assert.Equal(t, 3.4, v)
}

func TestCoerceRowPreservesColumnOrder(t *testing.T) {
	columns := []string{"cohort_id", "year", "program", "batch_size", "phase"}
	row := Row{
		"phase":      "Pre-AI",
		"cohort_id":  "C-2022-A",
		"year":       "2022",
		"program":    "MBA",
		"batch_size": "120",
	}

	values, err := CoerceRow(columns, row)
	require.NoError(t, err)
	require.Len(t, values, 5)
	assert.Equal(t, "C-2022-A", values[0])
	assert.Equal(t, int64(2022), values[1])
	assert.Equal(t, "MBA", values[2])
	assert.Equal(t, int64(120), values[3])
	assert.Equal(t, "Pre-AI", values[4])
}

func TestCoerceRowMissingCellIsNil(t *testing.T) {
	values, err := CoerceRow([]string{"cohort_id", "avg_package"}, Row{"cohort_id": "C-1"})
	require.NoError(t, err)
	assert.Equal(t, "C-1", values[0])
	assert.Nil(t, values[1])
}

func TestCoerceRowFailsOnBadDate(t *testing.T) {
	_, err := CoerceRow([]string{"visit_date"}, Row{"visit_date": "garbage"})
	assert.Error(t, err)
}
