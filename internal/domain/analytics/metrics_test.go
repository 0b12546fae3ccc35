package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	assert.Equal(t, 50.0, Ratio(5, 10))
	assert.Equal(t, 100.0, Ratio(10, 10))

	// Zero and negative denominators yield 0, never NaN.
	assert.Equal(t, 0.0, Ratio(5, 0))
	assert.Equal(t, 0.0, Ratio(5, -1))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 12.35, Round2(12.345001))
	assert.Equal(t, 12.34, Round2(12.344999))
	assert.Equal(t, -3.33, Round2(-3.333333))
	assert.Equal(t, 0.0, Round2(math.NaN()))
	assert.Equal(t, 0.0, Round2(math.Inf(1)))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 0.0, Coalesce(nil))

	v := 7.25
	assert.Equal(t, 7.25, Coalesce(&v))
}

func TestParseFilter(t *testing.T) {
	f := ParseFilter("C-2022-A,C-2023-B", "MBA", "Pre-AI,JPT")
	assert.Equal(t, []string{"C-2022-A", "C-2023-B"}, f.Cohorts)
	assert.Equal(t, []string{"MBA"}, f.Programs)
	assert.Equal(t, []string{"Pre-AI", "JPT"}, f.Phases)
	assert.False(t, f.IsEmpty())
}

func TestParseFilterDropsBlanks(t *testing.T) {
	f := ParseFilter("C-1,, C-2 ,", "", "  ")
	assert.Equal(t, []string{"C-1", "C-2"}, f.Cohorts)
	assert.Nil(t, f.Programs)
	assert.Nil(t, f.Phases)
}

func TestParseFilterEmpty(t *testing.T) {
	f := ParseFilter("", "", "")
	assert.True(t, f.IsEmpty())
}

func TestPhaseOrdinal(t *testing.T) {
	assert.Equal(t, 1, PhasePreAI.Ordinal())
	assert.Equal(t, 2, PhaseYoodli.Ordinal())
	assert.Equal(t, 3, PhaseJPT.Ordinal())
	assert.Equal(t, 0, Phase("Unknown").Ordinal())

	assert.True(t, PhaseYoodli.IsValid())
	assert.False(t, Phase("").IsValid())
}
