// Package geometry derives the immutable layout parameters of a paged view
// from the viewport size, the page count and the requested title window.
package geometry

import (
	"math"
	"time"
)

// Size is a width/height pair in points.
type Size struct {
	Width  float64
	Height float64
}

// Chrome holds the static header chrome the parameters are built on.
type Chrome struct {
	// TopBarHeight is the host bar above the info panel.
	TopBarHeight float64

	// TitleStripHeight is the height of the horizontal title strip,
	// cursor included.
	TitleStripHeight float64

	// StretchHeight is how far the header grows above its closed height.
	StretchHeight float64

	// CursorHeight is the height of the selection cursor.
	CursorHeight float64

	// CursorWidth is the cursor width (0 = one title cell).
	CursorWidth float64

	// AnimationDuration is the duration of animated header changes.
	AnimationDuration time.Duration
}

// Defaults for Chrome, in points.
const (
	DefaultTopBarHeight      = 44.0
	DefaultTitleStripHeight  = 50.0
	DefaultStretchHeight     = 70.0
	DefaultCursorHeight      = 3.0
	DefaultAnimationDuration = 400 * time.Millisecond
)

// DefaultChrome returns the point-sized chrome: a 94pt closed header that
// stretches to 164pt.
func DefaultChrome() Chrome {
	return Chrome{
		TopBarHeight:      DefaultTopBarHeight,
		TitleStripHeight:  DefaultTitleStripHeight,
		StretchHeight:     DefaultStretchHeight,
		CursorHeight:      DefaultCursorHeight,
		AnimationDuration: DefaultAnimationDuration,
	}
}

// TerminalChrome returns chrome sized in terminal cells.
func TerminalChrome() Chrome {
	return Chrome{
		TopBarHeight:      1,
		TitleStripHeight:  2,
		StretchHeight:     6,
		CursorHeight:      1,
		AnimationDuration: DefaultAnimationDuration,
	}
}

// Params is the per-session layout, computed once per page set and
// never mutated afterwards.
type Params struct {
	Viewport          Size
	PageCount         int
	VisibleTitleCount int
	FirstIndex        int

	TopBarHeight     float64
	TitleStripHeight float64
	HeaderMinHeight  float64
	HeaderMaxHeight  float64

	TitleCellWidth float64
	CursorWidth    float64
	CursorHeight   float64

	AnimationDuration time.Duration
}

// Compute builds Params. It never fails: the title window is clamped to
// [1, pageCount], the first index to [0, pageCount-1].
func Compute(viewport Size, pageCount, visibleTitles, firstIndex int, chrome Chrome) Params {
	if pageCount < 0 {
		pageCount = 0
	}
	viewport.Width = math.Max(0, viewport.Width)
	viewport.Height = math.Max(0, viewport.Height)

	visible := clampInt(visibleTitles, 1, max(1, pageCount))
	first := clampInt(firstIndex, 0, max(0, pageCount-1))

	stretch := chrome.StretchHeight
	if stretch <= 0 {
		stretch = 1
	}
	minHeight := math.Max(0, chrome.TopBarHeight) + math.Max(0, chrome.TitleStripHeight)

	cell := viewport.Width / float64(visible)
	cursorWidth := chrome.CursorWidth
	if cursorWidth <= 0 {
		cursorWidth = cell
	}

	duration := chrome.AnimationDuration
	if duration <= 0 {
		duration = DefaultAnimationDuration
	}

	return Params{
		Viewport:          viewport,
		PageCount:         pageCount,
		VisibleTitleCount: visible,
		FirstIndex:        first,
		TopBarHeight:      math.Max(0, chrome.TopBarHeight),
		TitleStripHeight:  math.Max(0, chrome.TitleStripHeight),
		HeaderMinHeight:   minHeight,
		HeaderMaxHeight:   minHeight + stretch,
		TitleCellWidth:    cell,
		CursorWidth:       cursorWidth,
		CursorHeight:      math.Max(0, chrome.CursorHeight),
		AnimationDuration: duration,
	}
}

// HiddenTitleCount is the number of titles outside the visible window.
func (p Params) HiddenTitleCount() int {
	return max(0, p.PageCount-p.VisibleTitleCount)
}

// RatioPerPage is how far the title strip scrolls per page of progress.
// Zero when there is a single page (or none).
func (p Params) RatioPerPage() float64 {
	if p.PageCount <= 1 {
		return 0
	}
	hidden := p.TitleCellWidth * float64(p.HiddenTitleCount())
	return hidden / float64(p.PageCount-1)
}

// TitleStripContentWidth is the full width of all title cells.
func (p Params) TitleStripContentWidth() float64 {
	return p.TitleCellWidth * float64(p.PageCount)
}

// ContainerContentWidth is the full width of the page container.
func (p Params) ContainerContentWidth() float64 {
	return p.Viewport.Width * float64(p.PageCount)
}

// PageOffset returns the container offset of page index (clamped).
func (p Params) PageOffset(index int) float64 {
	return float64(p.ClampIndex(index)) * p.Viewport.Width
}

// PageAt converts a container offset into continuous page progress.
func (p Params) PageAt(offsetX float64) float64 {
	if p.Viewport.Width <= 0 {
		return 0
	}
	return offsetX / p.Viewport.Width
}

// MaxOffset is the largest valid container offset.
func (p Params) MaxOffset() float64 {
	return math.Max(0, p.ContainerContentWidth()-p.Viewport.Width)
}

// ClampIndex bounds i to [0, PageCount-1].
func (p Params) ClampIndex(i int) int {
	return clampInt(i, 0, max(0, p.PageCount-1))
}

// StaticInfoHeight is the info panel height at full stretch.
func (p Params) StaticInfoHeight() float64 {
	return p.HeaderMaxHeight - (p.TopBarHeight + p.TitleStripHeight)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
