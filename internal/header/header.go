// Package header models the stretchy header: its clamped height, the info
// panel transform derived from that height, and the timed transition the
// render layer uses to animate height changes.
package header

import (
	"math"

	"github.com/pengelbrecht/stretchy/internal/geometry"
)

// State is the header height and its bounds.
// Min <= Current <= Max holds after every Set.
type State struct {
	Current float64
	Min     float64
	Max     float64
}

// NewState returns a closed header for p.
func NewState(p geometry.Params) State {
	return State{
		Current: p.HeaderMinHeight,
		Min:     p.HeaderMinHeight,
		Max:     p.HeaderMaxHeight,
	}
}

// Set stores h clamped into [Min, Max] and returns the stored value.
func (s *State) Set(h float64) float64 {
	s.Current = Clamp(h, s.Min, s.Max)
	return s.Current
}

// IsStretching reports whether the header sits strictly between its bounds.
func (s State) IsStretching() bool {
	return s.Current > s.Min && s.Current < s.Max
}

// IsOpen reports whether the header is fully stretched.
func (s State) IsOpen() bool {
	return s.Current >= s.Max
}

// IsClosed reports whether the header is fully collapsed.
func (s State) IsClosed() bool {
	return s.Current <= s.Min
}

// Clamp bounds v to [lo, hi]. NaN saturates to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// minInfoScale keeps the info content legible at minimum height.
const minInfoScale = 0.9

// Transform is the info panel's presentation for one header height.
type Transform struct {
	// BackgroundOpacity applies to the host chrome behind the panel.
	BackgroundOpacity float64

	// Scale applies uniformly to the foreground info content.
	Scale float64

	// TranslateY shifts the foreground content; negative when collapsed,
	// zero at full stretch.
	TranslateY float64

	// Opacity applies to the foreground content.
	Opacity float64

	// StretchableHeight is the panel height currently available.
	StretchableHeight float64

	// StaticHeight is the panel height at full stretch.
	StaticHeight float64
}

// ComputeTransform derives the info panel transform from a header height.
// It depends on nothing but its arguments.
func ComputeTransform(height float64, p geometry.Params) Transform {
	chrome := p.TopBarHeight + p.TitleStripHeight
	static := p.HeaderMaxHeight - chrome
	stretchable := height - chrome

	var ratio float64
	if static != 0 {
		ratio = stretchable / static
	}

	return Transform{
		BackgroundOpacity: ratio,
		Scale:             math.Max(ratio, minInfoScale),
		TranslateY:        stretchable - static,
		Opacity:           ratio,
		StretchableHeight: stretchable,
		StaticHeight:      static,
	}
}
