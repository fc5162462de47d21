package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, FromJoin, Clamp(-3))
	assert.Equal(t, Limit, Clamp(42))
	assert.Equal(t, Having, Clamp(Having))
}

func TestStringAndParse(t *testing.T) {
	for _, s := range All() {
		got, ok := Parse(s.String())
		assert.True(t, ok, s.String())
		assert.Equal(t, s, got)
	}
	assert.Equal(t, "Step(9)", Step(9).String())

	_, ok := Parse("DISTINCT")
	assert.False(t, ok)
}

func TestAll(t *testing.T) {
	steps := All()
	assert.Len(t, steps, 8)
	assert.Equal(t, First, steps[0])
	assert.Equal(t, Last, steps[len(steps)-1])
}

func TestAggregated(t *testing.T) {
	assert.False(t, Where.Aggregated())
	assert.True(t, GroupBy.Aggregated())
	assert.True(t, Limit.Aggregated())
}
