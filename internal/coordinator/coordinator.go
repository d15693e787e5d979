// Package coordinator keeps the three scrollable regions of a paged view in
// sync: the horizontal page container, the horizontal title strip and the
// active page's vertical scroll view. It turns scroll samples into header
// height, cursor position and title strip offset, and detects page settles.
//
// The coordinator is single threaded. Every method must be called from the
// UI event loop, and all render target writes for a sample happen before the
// method returns.
package coordinator

import (
	"math"

	"github.com/pengelbrecht/stretchy/internal/geometry"
	"github.com/pengelbrecht/stretchy/internal/header"
	"github.com/pengelbrecht/stretchy/internal/page"
)

// Phase is the state of the page container gesture.
type Phase int

const (
	// PhaseIdle means the container rests on a page boundary.
	PhaseIdle Phase = iota

	// PhaseDragging means the user is moving the container.
	PhaseDragging

	// PhaseSettling means the drag ended and the container decelerates.
	PhaseSettling

	// PhaseProgrammatic means an external request is moving the container.
	PhaseProgrammatic
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseSettling:
		return "settling"
	case PhaseProgrammatic:
		return "programmatic"
	default:
		return "idle"
	}
}

// RenderTarget receives computed presentation values. It is write-only from
// the coordinator's point of view.
type RenderTarget interface {
	SetHeaderHeight(height float64, animated bool)
	SetTitleStripOffset(x float64)
	SetCursor(leading, width, height float64)
	SetEmphasizedTitle(index int)
	SetInfoTransform(t header.Transform)
	SetInfoVisible(visible bool)
}

// Navigation is the page selection state.
type Navigation struct {
	ActiveIndex       int
	VisibleTitleCount int
	// FirstVisibleIndex is the leftmost title cell inside the strip window.
	FirstVisibleIndex int
}

// Coordinator is the scroll coordination state machine.
type Coordinator struct {
	params geometry.Params
	target RenderTarget
	pages  *page.Registry

	header      header.State
	nav         Navigation
	phase       Phase
	pending     int
	offsetX     float64
	titleOffset float64
	cursor      float64
	emphasized  int
	transform   header.Transform
	infoVisible bool

	onPageChanged func(old, new int)
}

// New creates a coordinator writing into target. pages is consulted on
// settle to resign the outgoing page's input and track the active entry.
func New(target RenderTarget, pages *page.Registry) *Coordinator {
	return &Coordinator{target: target, pages: pages}
}

// OnPageChanged registers the settle listener. There is one listener.
func (c *Coordinator) OnPageChanged(fn func(old, new int)) {
	c.onPageChanged = fn
}

// Reset installs new parameters and restores navigation, header and cursor
// state to their initial values for p.FirstIndex.
func (c *Coordinator) Reset(p geometry.Params) {
	c.params = p
	c.header = header.NewState(p)
	c.phase = PhaseIdle
	c.nav = Navigation{
		ActiveIndex:       p.FirstIndex,
		VisibleTitleCount: p.VisibleTitleCount,
	}
	if c.pages != nil {
		c.pages.SetActive(p.FirstIndex)
	}

	c.layoutHorizontal(p.PageOffset(p.FirstIndex))
	c.infoVisible = true
	c.target.SetInfoVisible(true)
	c.applyHeader(c.header.Current, false)
}

// Resize installs new parameters for the same page set, keeping the active
// page and the header height (clamped to the new bounds). It returns the
// container offset of the active page.
func (c *Coordinator) Resize(p geometry.Params) float64 {
	current := c.header.Current
	active := p.ClampIndex(c.nav.ActiveIndex)

	c.params = p
	c.header = header.NewState(p)
	c.header.Set(current)
	c.nav.ActiveIndex = active
	c.nav.VisibleTitleCount = p.VisibleTitleCount
	c.phase = PhaseIdle

	offset := p.PageOffset(active)
	c.layoutHorizontal(offset)
	c.applyHeader(c.header.Current, false)
	return offset
}

// HorizontalScroll handles one offset sample of the page container.
// A sample arriving while idle starts an interactive drag.
func (c *Coordinator) HorizontalScroll(offsetX float64) {
	if c.phase == PhaseIdle {
		c.phase = PhaseDragging
	}
	c.layoutHorizontal(offsetX)
}

// BeginDrag marks the start of an interactive drag.
func (c *Coordinator) BeginDrag() {
	c.phase = PhaseDragging
}

// EndDrag marks the end of an interactive drag. With willDecelerate the
// container keeps moving and DidEndDecelerating follows; otherwise the
// current offset settles now.
func (c *Coordinator) EndDrag(willDecelerate bool) {
	if c.phase != PhaseDragging {
		return
	}
	if willDecelerate {
		c.phase = PhaseSettling
		return
	}
	c.settle(c.offsetX)
}

// DidEndDecelerating settles the container after a drag.
func (c *Coordinator) DidEndDecelerating(offsetX float64) {
	c.layoutHorizontal(offsetX)
	c.settle(offsetX)
}

// ScrollToPage starts a programmatic scroll to index (clamped) and returns
// the target container offset. The caller animates the container and
// reports completion through DidEndScrollingAnimation.
func (c *Coordinator) ScrollToPage(index int) float64 {
	c.phase = PhaseProgrammatic
	c.pending = c.params.ClampIndex(index)
	return c.params.PageOffset(c.pending)
}

// DidEndScrollingAnimation settles the container after a programmatic
// scroll.
func (c *Coordinator) DidEndScrollingAnimation(offsetX float64) {
	c.layoutHorizontal(offsetX)
	c.settle(offsetX)
}

// VerticalScroll handles one offset sample of the active page's vertical
// scroll view. Animated samples are replays and never re-anchor the view.
func (c *Coordinator) VerticalScroll(view page.ScrollView, inverted, animated bool) {
	m := view.Metrics()
	distance := DistanceFromTop(m, inverted)

	// Lock the header where it is and hand the remaining motion to the
	// page content, so header and content never move together.
	if !animated && c.header.IsStretching() {
		Reanchor(view, m, distance, inverted)
	}

	height := c.header.Set(c.header.Max - distance)
	c.infoVisible = true
	c.target.SetInfoVisible(true)
	c.applyHeader(height, animated)
}

// Open forces the header to full stretch and hides the info panel until
// the next vertical sample.
func (c *Coordinator) Open() {
	c.force(c.header.Max)
}

// Close forces the header to its minimum height and hides the info panel
// until the next vertical sample.
func (c *Coordinator) Close() {
	c.force(c.header.Min)
}

func (c *Coordinator) force(height float64) {
	c.infoVisible = false
	c.target.SetInfoVisible(false)
	c.applyHeader(c.header.Set(height), true)
}

func (c *Coordinator) applyHeader(height float64, animated bool) {
	c.transform = header.ComputeTransform(height, c.params)
	c.target.SetHeaderHeight(height, animated)
	c.target.SetInfoTransform(c.transform)
}

// layoutHorizontal runs the per-offset-sample algorithm.
func (c *Coordinator) layoutHorizontal(offsetX float64) {
	offsetX = header.Clamp(offsetX, 0, c.params.MaxOffset())
	c.offsetX = offsetX

	progress := c.params.PageAt(offsetX)
	move := progress * c.params.RatioPerPage()
	cell := c.params.TitleCellWidth

	c.titleOffset = move
	c.cursor = cell*(progress+1) - cell/2 - c.params.CursorWidth/2 - move
	c.emphasized = c.params.ClampIndex(int(math.Round(progress)))
	if cell > 0 {
		c.nav.FirstVisibleIndex = c.params.ClampIndex(int(math.Floor(move/cell + 1e-9)))
	}

	c.target.SetTitleStripOffset(c.titleOffset)
	c.target.SetCursor(c.cursor, c.params.CursorWidth, c.params.CursorHeight)
	c.target.SetEmphasizedTitle(c.emphasized)
}

func (c *Coordinator) settle(offsetX float64) {
	c.phase = PhaseIdle
	next := c.params.ClampIndex(int(math.Round(c.params.PageAt(offsetX))))
	prev := c.nav.ActiveIndex
	if next == prev {
		return
	}

	if c.pages != nil {
		if e, ok := c.pages.At(prev); ok {
			e.Caps.ResignInput()
		}
		c.pages.SetActive(next)
	}
	c.nav.ActiveIndex = next

	if c.onPageChanged != nil {
		c.onPageChanged(prev, next)
	}
}

// Params returns the current layout parameters.
func (c *Coordinator) Params() geometry.Params { return c.params }

// Phase returns the current gesture phase.
func (c *Coordinator) Phase() Phase { return c.phase }

// Header returns the header state.
func (c *Coordinator) Header() header.State { return c.header }

// Navigation returns the navigation state.
func (c *Coordinator) Navigation() Navigation { return c.nav }

// ActiveIndex returns the settled page index.
func (c *Coordinator) ActiveIndex() int { return c.nav.ActiveIndex }

// TargetIndex returns the page a programmatic scroll is heading to, or the
// settled page when none is running.
func (c *Coordinator) TargetIndex() int {
	if c.phase == PhaseProgrammatic {
		return c.pending
	}
	return c.nav.ActiveIndex
}

// Offset returns the last container offset seen.
func (c *Coordinator) Offset() float64 { return c.offsetX }

// Cursor returns the cursor leading offset.
func (c *Coordinator) Cursor() float64 { return c.cursor }

// TitleOffset returns the title strip offset.
func (c *Coordinator) TitleOffset() float64 { return c.titleOffset }

// EmphasizedTitle returns the emphasized title index.
func (c *Coordinator) EmphasizedTitle() int { return c.emphasized }

// Transform returns the current info panel transform.
func (c *Coordinator) Transform() header.Transform { return c.transform }

// InfoVisible reports whether the info panel is shown.
func (c *Coordinator) InfoVisible() bool { return c.infoVisible }
