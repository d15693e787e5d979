// Package page holds the ordered set of pages shown by a paged view and the
// capabilities each page opts into.
package page

// Page is the minimal identity every page provides.
type Page interface {
	ID() string
	Title() string
}

// Insets are the content insets of a vertical scroll view.
type Insets struct {
	Top    float64
	Bottom float64
}

// ScrollMetrics is a snapshot of a vertical scroll view.
type ScrollMetrics struct {
	OffsetY        float64
	ContentHeight  float64
	ViewportHeight float64
	Insets         Insets
}

// MinOffset is the smallest reachable offset.
func (m ScrollMetrics) MinOffset() float64 {
	return -m.Insets.Top
}

// MaxOffset is the largest reachable offset.
func (m ScrollMetrics) MaxOffset() float64 {
	return max(m.MinOffset(), m.ContentHeight-m.ViewportHeight+m.Insets.Bottom)
}

// ScrollView is a page-owned vertical scroll surface. SetOnScroll is the
// page's single registration slot; passing nil clears it.
type ScrollView interface {
	Metrics() ScrollMetrics
	SetContentInset(Insets)
	SetContentOffsetY(y float64)
	SetOnScroll(fn func(ScrollView))
}

// Info is the payload a page contributes to the header info panel.
type Info struct {
	Title    string
	Subtitle string
	Badge    string
}

// IsZero reports whether the payload is empty.
func (i Info) IsZero() bool {
	return i == Info{}
}

// Optional capabilities. A page implements any subset of these.
type (
	// Scroller pages own a vertical scroll view that drives the header.
	Scroller interface {
		ScrollView() ScrollView
	}

	// Inverter pages grow upwards (bottom-anchored feeds).
	Inverter interface {
		ScrollInverted() bool
	}

	// AutoStretcher pages replay their scroll position into the header
	// when they become active.
	AutoStretcher interface {
		ShouldStretchAutomatically() bool
	}

	// InfoProvider pages fill the header info panel.
	InfoProvider interface {
		Info() Info
	}

	// InputResigner pages drop any active input when they lose focus.
	InputResigner interface {
		ResignInput()
	}

	// Attacher pages are told when they join a page set.
	Attacher interface {
		Attach()
	}

	// Detacher pages are told when they leave a page set.
	Detacher interface {
		Detach()
	}
)

// Capabilities is the resolved capability bundle of a page. Absent
// capabilities keep their zero values.
type Capabilities struct {
	Scroll      ScrollView
	Inverted    bool
	AutoStretch bool
	Info        Info

	resign func()
	attach func()
	detach func()
}

// Scrollable reports whether the page emits vertical scroll events.
func (c Capabilities) Scrollable() bool {
	return c.Scroll != nil
}

// ResignInput forwards to the page if it can resign input.
func (c Capabilities) ResignInput() {
	if c.resign != nil {
		c.resign()
	}
}

// Resolve inspects p once and returns its capability bundle.
func Resolve(p Page) Capabilities {
	var caps Capabilities
	if s, ok := p.(Scroller); ok {
		caps.Scroll = s.ScrollView()
	}
	if inv, ok := p.(Inverter); ok {
		caps.Inverted = inv.ScrollInverted()
	}
	if as, ok := p.(AutoStretcher); ok {
		caps.AutoStretch = as.ShouldStretchAutomatically()
	}
	if ip, ok := p.(InfoProvider); ok {
		caps.Info = ip.Info()
	}
	if r, ok := p.(InputResigner); ok {
		caps.resign = r.ResignInput
	}
	if a, ok := p.(Attacher); ok {
		caps.attach = a.Attach
	}
	if d, ok := p.(Detacher); ok {
		caps.detach = d.Detach
	}
	return caps
}
