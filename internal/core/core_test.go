package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFixedStepAdvance(t *testing.T) {
	f := NewFixedStep(10)
	t0 := time.Unix(100, 0)
	require.Equal(t, 1, f.Advance(t0))
	require.Equal(t, 0, f.Advance(t0.Add(50*time.Millisecond)))
	require.Equal(t, 1, f.Advance(t0.Add(100*time.Millisecond)))
	require.Equal(t, 2, f.Advance(t0.Add(300*time.Millisecond)))
	// a long stall is capped
	require.Equal(t, maxCatchUp, f.Advance(t0.Add(10*time.Second)))
	require.Equal(t, 0, f.Advance(t0.Add(10*time.Second+10*time.Millisecond)))
}

func TestAssertPanicsWithInvariantError(t *testing.T) {
	require.NotPanics(t, func() { Assert(true, "stage", "never") })
	defer func() {
		r := recover()
		ie, ok := r.(*InvariantError)
		require.True(t, ok, "got %T", r)
		require.Equal(t, "plates", ie.Stage)
		require.Contains(t, ie.Error(), "cell 3 unowned")
	}()
	Assert(false, "plates", "cell %d unowned", 3)
}

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.IntN(1000), b.IntN(1000))
		require.Equal(t, a.Float64(), b.Float64())
	}
	require.Zero(t, a.IntN(0))
	require.NotZero(t, TimeSeed())
}

type fixed float64

func (f fixed) IntN(int) int      { return 0 }
func (f fixed) Float64() float64 { return float64(f) }

func TestPercent(t *testing.T) {
	require.True(t, Percent(fixed(0.29), 30))
	require.False(t, Percent(fixed(0.30), 30))
	require.False(t, Percent(fixed(0), 0))
	require.True(t, Percent(fixed(0.999), 100))
}
