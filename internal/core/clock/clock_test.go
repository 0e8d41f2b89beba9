package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixed = 1.0 / 120

func TestAdvanceProducesWholeStepsAndRemainder(t *testing.T) {
	c, err := New(fixed)
	require.NoError(t, err)

	steps := c.Advance(0.05)
	assert.Equal(t, 6, steps)
	assert.Greater(t, c.Accumulator(), 0.0, "a sub-step remainder is kept")
	assert.Less(t, c.Alpha(), 1.0)
	assert.Equal(t, c.Accumulator()/fixed, c.Alpha())
}

func TestAdvanceAccumulatesAcrossFrames(t *testing.T) {
	c, err := New(fixed)
	require.NoError(t, err)

	assert.Equal(t, 0, c.Advance(0.004))
	assert.InDelta(t, 0.48, c.Alpha(), 1e-9)
	assert.Equal(t, 1, c.Advance(0.005))
	assert.InDelta(t, 0.08, c.Alpha(), 1e-9)
}

func TestPauseWithholdsSteps(t *testing.T) {
	c, err := New(fixed)
	require.NoError(t, err)

	c.Advance(0.004)
	alpha := c.Alpha()

	c.SetPaused(true)
	assert.True(t, c.Paused())
	assert.Equal(t, 0, c.Advance(1))
	assert.Equal(t, alpha, c.Alpha())

	c.SetPaused(false)
	assert.Equal(t, 120, c.Advance(1))
}

func TestTimeScale(t *testing.T) {
	c, err := New(fixed, WithTimeScale(0.5))
	require.NoError(t, err)

	assert.Equal(t, 3, c.Advance(0.05))
	assert.False(t, c.SetTimeScale(-1))
	assert.Equal(t, 0.5, c.TimeScale())
	assert.True(t, c.SetTimeScale(0))
	assert.Equal(t, 0, c.Advance(10))
}

func TestNegativeDeltaIsIgnored(t *testing.T) {
	c, err := New(fixed)
	require.NoError(t, err)

	c.Advance(0.004)
	before := c.Accumulator()
	assert.Equal(t, 0, c.Advance(-1))
	assert.Equal(t, before, c.Accumulator())
}

func TestMaxStepsDropsSurplus(t *testing.T) {
	c, err := New(fixed, WithMaxSteps(5))
	require.NoError(t, err)

	assert.Equal(t, 5, c.Advance(0.1))
	assert.Equal(t, uint64(7), c.Dropped())
	assert.Less(t, c.Alpha(), 1.0)
}

func TestNewRejectsBadStep(t *testing.T) {
	for _, step := range []float64{0, -1} {
		_, err := New(step)
		assert.ErrorIs(t, err, ErrInvalidStep)
	}
}
