package header

import "time"

// Ease maps linear progress in [0, 1] to eased progress.
type Ease func(t float64) float64

// Linear is the identity ease.
func Linear(t float64) float64 { return t }

// EaseInOut is a quadratic ease in and out.
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - (-2*t+2)*(-2*t+2)/2
}

// Transition animates a value from From to To over Duration.
// The zero Transition is finished and reports To (0).
type Transition struct {
	From     float64
	To       float64
	Start    time.Time
	Duration time.Duration
	Ease     Ease
}

// NewTransition starts a transition at now. A non-positive duration jumps
// straight to the target.
func NewTransition(from, to float64, now time.Time, d time.Duration) Transition {
	return Transition{From: from, To: to, Start: now, Duration: d, Ease: EaseInOut}
}

// Immediate returns a finished transition resting at v.
func Immediate(v float64) Transition {
	return Transition{From: v, To: v}
}

// Progress returns the linear progress at now, in [0, 1].
func (t Transition) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(t.Start)
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(t.Duration)
	if p >= 1 {
		return 1
	}
	return p
}

// Value returns the animated value at now.
func (t Transition) Value(now time.Time) float64 {
	p := t.Progress(now)
	if p >= 1 {
		return t.To
	}
	ease := t.Ease
	if ease == nil {
		ease = Linear
	}
	return t.From + (t.To-t.From)*ease(p)
}

// Done reports whether the transition has reached its target.
func (t Transition) Done(now time.Time) bool {
	return t.Progress(now) >= 1
}

// Retarget replaces t with a transition from the value displayed at now
// towards to. In-flight animations are superseded, never queued.
func (t Transition) Retarget(to float64, now time.Time, d time.Duration) Transition {
	return NewTransition(t.Value(now), to, now, d)
}
