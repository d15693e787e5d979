// Package broker reacts to page changes: it moves the single vertical
// scroll subscription to the new active page, refreshes the info panel and
// replays or collapses the header as the incoming page requires.
package broker

import (
	"log"

	"github.com/pengelbrecht/stretchy/internal/page"
)

// Coordinator is the part of the scroll coordinator the broker drives.
type Coordinator interface {
	VerticalScroll(view page.ScrollView, inverted, animated bool)
	Close()
}

// InfoTarget receives the info panel payload of the active page.
type InfoTarget interface {
	SetInfo(info page.Info)
}

// subscription is the one live scroll registration.
type subscription struct {
	view  page.ScrollView
	index int
}

// Broker owns the active page's scroll subscription.
type Broker struct {
	coord Coordinator
	pages *page.Registry
	info  InfoTarget

	sub *subscription

	onPageChanged func(from, to page.Entry)
}

// New creates a broker. info may be nil.
func New(coord Coordinator, pages *page.Registry, info InfoTarget) *Broker {
	return &Broker{coord: coord, pages: pages, info: info}
}

// OnPageChanged registers the host hook, called after the broker has
// finished handling a change.
func (b *Broker) OnPageChanged(fn func(from, to page.Entry)) {
	b.onPageChanged = fn
}

// Activate subscribes the page at index i without an outgoing page. It is
// used once after a new page set is installed.
func (b *Broker) Activate(i int) {
	e, ok := b.pages.At(i)
	if !ok {
		b.Release()
		return
	}
	b.subscribe(e)
	b.setInfo(e.Caps.Info)
	if e.Caps.AutoStretch && e.Caps.Scrollable() {
		log.Printf("broker: auto-stretch replay for page %d (%s)", e.Index, e.Page.ID())
		b.coord.VerticalScroll(e.Caps.Scroll, e.Caps.Inverted, true)
	}
}

// PageChanged handles a settle from page index from to page index to.
func (b *Broker) PageChanged(from, to int) {
	oldEntry, hadOld := b.pages.At(from)
	newEntry, ok := b.pages.At(to)
	if !ok {
		return
	}
	log.Printf("broker: page changed %d -> %d (%s)", from, to, newEntry.Page.ID())

	b.subscribe(newEntry)
	b.setInfo(newEntry.Caps.Info)

	if newEntry.Caps.AutoStretch && newEntry.Caps.Scrollable() {
		log.Printf("broker: auto-stretch replay for page %d (%s)", newEntry.Index, newEntry.Page.ID())
		b.coord.VerticalScroll(newEntry.Caps.Scroll, newEntry.Caps.Inverted, true)
	}

	if hadOld && oldEntry.Caps.Scrollable() && !newEntry.Caps.Scrollable() {
		b.coord.Close()
	}

	if b.onPageChanged != nil {
		b.onPageChanged(oldEntry, newEntry)
	}
}

// Release clears the live subscription, if any.
func (b *Broker) Release() {
	if b.sub == nil {
		return
	}
	b.sub.view.SetOnScroll(nil)
	b.sub = nil
}

// Subscribed returns the index of the subscribed page, or -1.
func (b *Broker) Subscribed() int {
	if b.sub == nil {
		return -1
	}
	return b.sub.index
}

func (b *Broker) subscribe(e page.Entry) {
	b.Release()
	if !e.Caps.Scrollable() {
		return
	}

	inverted := e.Caps.Inverted
	info := e.Caps.Info
	e.Caps.Scroll.SetOnScroll(func(view page.ScrollView) {
		b.setInfo(info)
		b.coord.VerticalScroll(view, inverted, false)
	})
	b.sub = &subscription{view: e.Caps.Scroll, index: e.Index}
}

func (b *Broker) setInfo(info page.Info) {
	if b.info != nil {
		b.info.SetInfo(info)
	}
}
