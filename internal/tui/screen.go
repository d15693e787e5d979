package tui

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/pengelbrecht/stretchy/internal/geometry"
	"github.com/pengelbrecht/stretchy/internal/header"
	"github.com/pengelbrecht/stretchy/internal/page"
)

// -----------------------------------------------------------------------------
// Screen - passive render target written by the page view controller
// -----------------------------------------------------------------------------

// screen holds every presentation value the controller computes. The model
// only reads it when rendering; writes come from the controller.
type screen struct {
	now      func() time.Time
	duration time.Duration

	// Header height, animated or immediate.
	height    header.Transition
	hasHeight bool

	titles      []string
	titleOffset float64
	emphasized  int

	cursorLeading float64
	cursorWidth   float64
	cursorHeight  float64

	transform   header.Transform
	infoVisible bool
	info        page.Info

	container container
}

func newScreen(duration time.Duration) *screen {
	if duration <= 0 {
		duration = geometry.DefaultAnimationDuration
	}
	return &screen{
		now:       time.Now,
		duration:  duration,
		container: newContainer(),
	}
}

// SetHeaderHeight implements coordinator.RenderTarget. An animated write
// supersedes any running animation, starting from the displayed height.
func (s *screen) SetHeaderHeight(h float64, animated bool) {
	if !animated || !s.hasHeight {
		s.height = header.Immediate(h)
		s.hasHeight = true
		return
	}
	s.height = s.height.Retarget(h, s.now(), s.duration)
}

// SetTitleStripOffset implements coordinator.RenderTarget.
func (s *screen) SetTitleStripOffset(x float64) { s.titleOffset = x }

// SetCursor implements coordinator.RenderTarget.
func (s *screen) SetCursor(leading, width, height float64) {
	s.cursorLeading = leading
	s.cursorWidth = width
	s.cursorHeight = height
}

// SetEmphasizedTitle implements coordinator.RenderTarget.
func (s *screen) SetEmphasizedTitle(i int) { s.emphasized = i }

// SetInfoTransform implements coordinator.RenderTarget.
func (s *screen) SetInfoTransform(t header.Transform) { s.transform = t }

// SetInfoVisible implements coordinator.RenderTarget.
func (s *screen) SetInfoVisible(v bool) { s.infoVisible = v }

// SetInfo implements broker.InfoTarget.
func (s *screen) SetInfo(info page.Info) { s.info = info }

// SetTitles implements pageview.Renderer.
func (s *screen) SetTitles(titles []string) {
	s.titles = append([]string(nil), titles...)
}

// SetContainer implements pageview.Renderer.
func (s *screen) SetContainer(contentWidth, offset float64) {
	s.container.jump(contentWidth, offset)
}

// headerHeight returns the displayed header height.
func (s *screen) headerHeight() float64 {
	return s.height.Value(s.now())
}

// headerAnimating reports whether the header transition is still running.
func (s *screen) headerAnimating() bool {
	return s.hasHeight && !s.height.Done(s.now())
}

// infoTransform returns the transform matching the displayed height. While
// the header animates it is derived from the in-flight height.
func (s *screen) infoTransform(p geometry.Params) header.Transform {
	if s.headerAnimating() {
		return header.ComputeTransform(s.headerHeight(), p)
	}
	return s.transform
}

// -----------------------------------------------------------------------------
// Container - horizontal page container motion
// -----------------------------------------------------------------------------

const (
	fps = 60

	// Spring tuning for container settles.
	springFrequency = 9.0
	springDamping   = 1.0

	// Distance and speed below which the container counts as arrived.
	arriveEpsilon = 0.05
)

// motion is why the container is moving on its own.
type motion int

const (
	motionNone motion = iota
	motionSettle
	motionProgrammatic
)

// container is the horizontal page container. Interactive drags move it
// directly; settles and programmatic scrolls run a spring to the target.
type container struct {
	x        float64
	velocity float64
	target   float64
	width    float64
	motion   motion
	spring   harmonica.Spring
}

func newContainer() container {
	return container{spring: harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping)}
}

// jump places the container at x without motion.
func (c *container) jump(contentWidth, x float64) {
	c.width = contentWidth
	c.x = x
	c.target = x
	c.velocity = 0
	c.motion = motionNone
}

// stop cancels any motion, leaving the container where it is.
func (c *container) stop() {
	c.motion = motionNone
	c.velocity = 0
}

// drag moves the container by an interactive delta and cancels any motion.
func (c *container) drag(x, maxX float64) {
	c.stop()
	c.x = min(max(x, 0), max(maxX, 0))
}

// animateTo starts a spring towards x.
func (c *container) animateTo(x float64, m motion) {
	c.target = x
	c.motion = m
}

// moving reports whether a spring is running.
func (c *container) moving() bool {
	return c.motion != motionNone
}

// step advances the spring one frame and reports arrival. On arrival the
// container rests exactly on the target and its motion is cleared; the
// finished motion is returned so the caller can report it.
func (c *container) step() (arrived bool, finished motion) {
	if c.motion == motionNone {
		return false, motionNone
	}
	c.x, c.velocity = c.spring.Update(c.x, c.velocity, c.target)
	if math.Abs(c.x-c.target) < arriveEpsilon && math.Abs(c.velocity) < arriveEpsilon {
		finished = c.motion
		c.x = c.target
		c.velocity = 0
		c.motion = motionNone
		return true, finished
	}
	return false, motionNone
}
