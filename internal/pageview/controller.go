// Package pageview is the host entry point of a paged view. It wires the
// page registry, the scroll coordinator and the transition broker to one
// render target.
package pageview

import (
	"log"

	"github.com/pengelbrecht/stretchy/internal/broker"
	"github.com/pengelbrecht/stretchy/internal/coordinator"
	"github.com/pengelbrecht/stretchy/internal/geometry"
	"github.com/pengelbrecht/stretchy/internal/header"
	"github.com/pengelbrecht/stretchy/internal/page"
)

// Renderer is told about page set changes.
type Renderer interface {
	// SetTitles replaces the title strip cells.
	SetTitles(titles []string)

	// SetContainer sizes the page container and jumps it to offset.
	SetContainer(contentWidth, offset float64)
}

// Target is everything the controller writes to.
type Target interface {
	coordinator.RenderTarget
	broker.InfoTarget
	Renderer
}

// Controller drives one paged view.
type Controller struct {
	target   Target
	chrome   geometry.Chrome
	viewport geometry.Size

	// Requested title window and first page, kept for Resize.
	visibleTitles int
	firstIndex    int

	pages  *page.Registry
	coord  *coordinator.Coordinator
	broker *broker.Broker
}

// New creates a controller for a viewport. It has no pages until SetPages.
func New(target Target, chrome geometry.Chrome, viewport geometry.Size) *Controller {
	pages := page.NewRegistry()
	coord := coordinator.New(target, pages)
	c := &Controller{
		target:   target,
		chrome:   chrome,
		viewport: viewport,
		pages:    pages,
		coord:    coord,
		broker:   broker.New(coord, pages, target),
	}
	coord.OnPageChanged(c.broker.PageChanged)
	return c
}

// OnPageChanged registers a host hook called after every page change.
func (c *Controller) OnPageChanged(fn func(from, to page.Entry)) {
	c.broker.OnPageChanged(fn)
}

// SetPages replaces the page set. The previous pages are torn down first,
// then layout, navigation and header state are rebuilt for firstIndex.
func (c *Controller) SetPages(pages []page.Page, visibleTitleCount, firstIndex int) {
	c.broker.Release()
	c.pages.Set(pages)
	c.visibleTitles = visibleTitleCount
	c.firstIndex = firstIndex

	params := c.compute()
	c.target.SetTitles(c.pages.Titles())
	c.target.SetContainer(params.ContainerContentWidth(), params.PageOffset(params.FirstIndex))
	c.coord.Reset(params)
	c.broker.Activate(params.FirstIndex)

	log.Printf("pageview: %d pages, %d visible titles, first %d",
		params.PageCount, params.VisibleTitleCount, params.FirstIndex)
}

// Resize recomputes the layout for a new viewport, keeping the page set,
// the active page and the header height.
func (c *Controller) Resize(viewport geometry.Size) {
	if viewport == c.viewport {
		return
	}
	c.viewport = viewport
	params := c.compute()
	offset := c.coord.Resize(params)
	c.target.SetContainer(params.ContainerContentWidth(), offset)
}

// Teardown releases every page and subscription. It is safe to call more
// than once.
func (c *Controller) Teardown() {
	c.broker.Release()
	if c.pages.Len() > 0 {
		log.Printf("pageview: teardown of %d pages", c.pages.Len())
	}
	c.pages.Teardown()
}

// Open stretches the header fully.
func (c *Controller) Open() { c.coord.Open() }

// Close collapses the header.
func (c *Controller) Close() { c.coord.Close() }

// SelectTitle starts a programmatic scroll to the page at index (clamped)
// and returns the container offset the caller should animate to.
func (c *Controller) SelectTitle(index int) float64 {
	return c.coord.ScrollToPage(index)
}

// Next selects the page after the active one, or after the page an
// unfinished Next, Prev or SelectTitle is heading to.
func (c *Controller) Next() float64 {
	return c.SelectTitle(c.coord.TargetIndex() + 1)
}

// Prev selects the page before the active or in-flight one.
func (c *Controller) Prev() float64 {
	return c.SelectTitle(c.coord.TargetIndex() - 1)
}

// -----------------------------------------------------------------------------
// Page container forwarders
// -----------------------------------------------------------------------------

// ContainerScrolled reports a page container offset sample.
func (c *Controller) ContainerScrolled(x float64) { c.coord.HorizontalScroll(x) }

// BeginDrag reports the start of an interactive drag.
func (c *Controller) BeginDrag() { c.coord.BeginDrag() }

// EndDrag reports the end of an interactive drag.
func (c *Controller) EndDrag(decelerate bool) { c.coord.EndDrag(decelerate) }

// DidEndDecelerating reports that a drag came to rest at x.
func (c *Controller) DidEndDecelerating(x float64) { c.coord.DidEndDecelerating(x) }

// DidEndScrollingAnimation reports that a programmatic scroll arrived at x.
func (c *Controller) DidEndScrollingAnimation(x float64) { c.coord.DidEndScrollingAnimation(x) }

// -----------------------------------------------------------------------------
// State
// -----------------------------------------------------------------------------

// Params returns the current layout parameters.
func (c *Controller) Params() geometry.Params { return c.coord.Params() }

// Navigation returns the navigation state.
func (c *Controller) Navigation() coordinator.Navigation { return c.coord.Navigation() }

// Header returns the header state.
func (c *Controller) Header() header.State { return c.coord.Header() }

// Phase returns the page container gesture phase.
func (c *Controller) Phase() coordinator.Phase { return c.coord.Phase() }

// ActiveIndex returns the settled page index.
func (c *Controller) ActiveIndex() int { return c.coord.ActiveIndex() }

// Active returns the active page entry.
func (c *Controller) Active() (page.Entry, bool) { return c.pages.At(c.coord.ActiveIndex()) }

// Pages returns the registered page entries.
func (c *Controller) Pages() []page.Entry { return c.pages.Entries() }

// Viewport returns the current viewport.
func (c *Controller) Viewport() geometry.Size { return c.viewport }

func (c *Controller) compute() geometry.Params {
	return geometry.Compute(c.viewport, c.pages.Len(), c.visibleTitles, c.firstIndex, c.chrome)
}
