package tui

import (
	"log"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/pengelbrecht/stretchy/internal/config"
	"github.com/pengelbrecht/stretchy/internal/page"
)

// -----------------------------------------------------------------------------
// Body view - a page's vertical scroll surface
// -----------------------------------------------------------------------------

// bodyView is a line-based vertical scroll view. Offsets are in rows; a
// negative offset shows the top inset above the content.
type bodyView struct {
	vp       viewport.Model
	lines    int
	height   int
	offsetY  float64
	insets   page.Insets
	onScroll func(page.ScrollView)
}

func newBodyView() *bodyView {
	return &bodyView{vp: viewport.New(0, 0)}
}

// Metrics implements page.ScrollView.
func (v *bodyView) Metrics() page.ScrollMetrics {
	return page.ScrollMetrics{
		OffsetY:        v.offsetY,
		ContentHeight:  float64(v.lines),
		ViewportHeight: float64(v.height),
		Insets:         v.insets,
	}
}

// SetContentInset implements page.ScrollView.
func (v *bodyView) SetContentInset(in page.Insets) { v.insets = in }

// SetContentOffsetY implements page.ScrollView. It does not notify.
func (v *bodyView) SetContentOffsetY(y float64) { v.offsetY = y }

// SetOnScroll implements page.ScrollView.
func (v *bodyView) SetOnScroll(fn func(page.ScrollView)) { v.onScroll = fn }

// scrollTo moves the view to y, clamped to the reachable range, and
// notifies the scroll slot when the offset changed.
func (v *bodyView) scrollTo(y float64) {
	m := v.Metrics()
	y = min(max(y, m.MinOffset()), m.MaxOffset())
	if y == v.offsetY {
		return
	}
	v.offsetY = y
	if v.onScroll != nil {
		v.onScroll(v)
	}
}

// setContent replaces the rendered content and resizes the view. A view
// that has never been laid out rests at its natural position.
func (v *bodyView) setContent(content string, width, height int, bottom bool) {
	fresh := v.lines == 0
	lines := strings.Split(content, "\n")
	if bottom && len(lines) < height {
		pad := make([]string, height-len(lines))
		lines = append(pad, lines...)
	}

	v.vp.Width = width
	v.vp.SetContent(strings.Join(lines, "\n"))
	v.lines = len(lines)
	v.height = height

	m := v.Metrics()
	switch {
	case fresh && bottom:
		v.offsetY = m.MaxOffset()
	default:
		v.offsetY = min(max(v.offsetY, m.MinOffset()), m.MaxOffset())
	}
}

// rows renders n rows of the view.
func (v *bodyView) rows(n int) []string {
	if n <= 0 {
		return nil
	}
	offset := int(math.Round(v.offsetY))
	blank := min(max(-offset, 0), n)

	out := make([]string, 0, n)
	for i := 0; i < blank; i++ {
		out = append(out, "")
	}
	if n-blank > 0 {
		v.vp.Height = n - blank
		v.vp.YOffset = max(offset, 0)
		out = append(out, strings.Split(v.vp.View(), "\n")...)
	}
	return out
}

// -----------------------------------------------------------------------------
// Demo page
// -----------------------------------------------------------------------------

// DemoPage is a markdown page. It implements every optional page
// capability; scrolling, inversion and auto-stretch follow its spec.
type DemoPage struct {
	spec config.PageSpec
	info page.Info
	body *bodyView

	width    int
	height   int
	rendered string

	attached bool
	resigned int
}

// NewDemoPage builds a page from its spec.
func NewDemoPage(spec config.PageSpec) *DemoPage {
	p := &DemoPage{spec: spec, body: newBodyView()}
	if spec.Info != nil {
		p.info = page.Info{Title: spec.Info.Title, Subtitle: spec.Info.Subtitle, Badge: spec.Info.Badge}
	}
	return p
}

// NewDemoPages builds one page per spec.
func NewDemoPages(specs []config.PageSpec) []page.Page {
	pages := make([]page.Page, len(specs))
	for i, s := range specs {
		pages[i] = NewDemoPage(s)
	}
	return pages
}

// ID implements page.Page.
func (p *DemoPage) ID() string { return p.spec.ID }

// Title implements page.Page.
func (p *DemoPage) Title() string { return p.spec.Title }

// ScrollView implements page.Scroller. Pages without scrolling return nil.
func (p *DemoPage) ScrollView() page.ScrollView {
	if !p.spec.Scrollable() {
		return nil
	}
	return p.body
}

// ScrollInverted implements page.Inverter.
func (p *DemoPage) ScrollInverted() bool { return p.spec.Inverted }

// ShouldStretchAutomatically implements page.AutoStretcher.
func (p *DemoPage) ShouldStretchAutomatically() bool { return p.spec.AutoStretch }

// Info implements page.InfoProvider.
func (p *DemoPage) Info() page.Info { return p.info }

// ResignInput implements page.InputResigner.
func (p *DemoPage) ResignInput() { p.resigned++ }

// Attach implements page.Attacher.
func (p *DemoPage) Attach() { p.attached = true }

// Detach implements page.Detacher.
func (p *DemoPage) Detach() {
	p.attached = false
	p.body.SetOnScroll(nil)
}

// Attached reports whether the page belongs to a live page set.
func (p *DemoPage) Attached() bool { return p.attached }

// Resize lays the page out for a body of width x height cells. Markdown is
// only rendered again when the width changes.
func (p *DemoPage) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width != p.width || p.rendered == "" {
		p.rendered = renderMarkdown(p.spec.Body, width)
	}
	p.width = width
	p.height = height
	p.body.setContent(p.rendered, width, height, p.spec.Inverted)
}

// ScrollBy scrolls the page by dy rows. It is a no-op for pages without
// scrolling.
func (p *DemoPage) ScrollBy(dy float64) {
	if !p.spec.Scrollable() {
		return
	}
	p.body.scrollTo(p.body.offsetY + dy)
}

// ScrollToTop scrolls to the top inset.
func (p *DemoPage) ScrollToTop() {
	if p.spec.Scrollable() {
		p.body.scrollTo(p.body.Metrics().MinOffset())
	}
}

// ScrollToBottom scrolls to the end of the content.
func (p *DemoPage) ScrollToBottom() {
	if p.spec.Scrollable() {
		p.body.scrollTo(p.body.Metrics().MaxOffset())
	}
}

// Rows renders n rows of the page body.
func (p *DemoPage) Rows(n int) []string {
	if !p.spec.Scrollable() {
		lines := strings.Split(p.rendered, "\n")
		if len(lines) > n {
			lines = lines[:n]
		}
		return lines
	}
	return p.body.rows(n)
}

func renderMarkdown(body string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-4, 10)),
	)
	if err != nil {
		log.Printf("tui: markdown renderer: %v", err)
		return body
	}
	out, err := r.Render(body)
	if err != nil {
		log.Printf("tui: markdown render: %v", err)
		return body
	}
	return strings.Trim(out, "\n")
}
