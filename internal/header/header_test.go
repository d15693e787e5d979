package header

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pengelbrecht/stretchy/internal/geometry"
)

func pointParams() geometry.Params {
	return geometry.Compute(geometry.Size{Width: 375, Height: 667}, 5, 3, 0, geometry.DefaultChrome())
}

func TestState_SetClamps(t *testing.T) {
	s := NewState(pointParams())
	assert.Equal(t, 94.0, s.Current)
	assert.True(t, s.IsClosed())

	assert.Equal(t, 134.0, s.Set(134))
	assert.True(t, s.IsStretching())

	assert.Equal(t, 164.0, s.Set(1000))
	assert.True(t, s.IsOpen())
	assert.False(t, s.IsStretching())

	assert.Equal(t, 94.0, s.Set(-336))
	assert.Equal(t, 94.0, s.Set(math.NaN()))
}

func TestComputeTransform_Bounds(t *testing.T) {
	p := pointParams()

	open := ComputeTransform(p.HeaderMaxHeight, p)
	assert.InDelta(t, 1.0, open.Opacity, 1e-9)
	assert.InDelta(t, 1.0, open.BackgroundOpacity, 1e-9)
	assert.InDelta(t, 1.0, open.Scale, 1e-9)
	assert.InDelta(t, 0.0, open.TranslateY, 1e-9)

	closed := ComputeTransform(p.HeaderMinHeight, p)
	assert.InDelta(t, 0.0, closed.Opacity, 1e-9)
	assert.InDelta(t, 0.9, closed.Scale, 1e-9)
	assert.InDelta(t, -70.0, closed.TranslateY, 1e-9)
}

func TestComputeTransform_MidStretch(t *testing.T) {
	p := pointParams()

	tr := ComputeTransform(134, p)

	assert.InDelta(t, 40.0/70.0, tr.Opacity, 1e-9)
	assert.InDelta(t, 0.9, tr.Scale, 1e-9)
	assert.InDelta(t, -30.0, tr.TranslateY, 1e-9)
	assert.Equal(t, 40.0, tr.StretchableHeight)
	assert.Equal(t, 70.0, tr.StaticHeight)
}

func TestComputeTransform_IsPure(t *testing.T) {
	p := pointParams()
	heights := []float64{94, 120, 164, 101.5}

	first := make([]Transform, len(heights))
	for i, h := range heights {
		first[i] = ComputeTransform(h, p)
	}
	// Same heights in a different order produce identical output.
	for i := len(heights) - 1; i >= 0; i-- {
		assert.Equal(t, first[i], ComputeTransform(heights[i], p))
	}
}

func TestTransition_Value(t *testing.T) {
	start := time.Unix(0, 0)
	tr := NewTransition(94, 164, start, 400*time.Millisecond)

	assert.Equal(t, 94.0, tr.Value(start))
	assert.InDelta(t, 129.0, tr.Value(start.Add(200*time.Millisecond)), 1e-9)
	assert.Equal(t, 164.0, tr.Value(start.Add(400*time.Millisecond)))
	assert.True(t, tr.Done(start.Add(time.Second)))
	assert.False(t, tr.Done(start.Add(100*time.Millisecond)))
}

func TestTransition_RetargetStartsFromDisplayedValue(t *testing.T) {
	start := time.Unix(0, 0)
	tr := NewTransition(100, 200, start, 400*time.Millisecond)
	mid := start.Add(200 * time.Millisecond)
	shown := tr.Value(mid)

	next := tr.Retarget(100, mid, 400*time.Millisecond)

	assert.Equal(t, shown, next.Value(mid))
	assert.Equal(t, 100.0, next.Value(mid.Add(time.Second)))
}

func TestTransition_ZeroDurationIsImmediate(t *testing.T) {
	tr := NewTransition(10, 20, time.Now(), 0)
	assert.Equal(t, 20.0, tr.Value(time.Unix(0, 0)))

	var zero Transition
	assert.True(t, zero.Done(time.Now()))
	assert.Equal(t, 5.0, Immediate(5).Value(time.Now()))
}

func TestEaseInOut(t *testing.T) {
	assert.Equal(t, 0.0, EaseInOut(0))
	assert.InDelta(t, 0.5, EaseInOut(0.5), 1e-9)
	assert.Equal(t, 1.0, EaseInOut(1))
	assert.Less(t, EaseInOut(0.25), 0.25)
	assert.Greater(t, EaseInOut(0.75), 0.75)
}
