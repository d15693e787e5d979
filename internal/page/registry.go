package page

// Entry is a registered page.
type Entry struct {
	Page   Page
	Index  int
	Active bool
	Caps   Capabilities
}

// Registry is the ordered page set of one paged view. It owns the pages
// for their attached lifetime but neither their rendering nor their
// scroll state.
type Registry struct {
	entries []Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Set replaces the page set. The previous pages are detached and their
// scroll slots cleared first. Nil pages are skipped.
func (r *Registry) Set(pages []Page) {
	r.Teardown()

	entries := make([]Entry, 0, len(pages))
	for _, p := range pages {
		if p == nil {
			continue
		}
		entries = append(entries, Entry{
			Page:  p,
			Index: len(entries),
			Caps:  Resolve(p),
		})
	}
	r.entries = entries

	for _, e := range r.entries {
		if e.Caps.attach != nil {
			e.Caps.attach()
		}
	}
}

// Teardown detaches every page and clears all callback registrations.
// It is safe to call more than once.
func (r *Registry) Teardown() {
	for _, e := range r.entries {
		if e.Caps.Scroll != nil {
			e.Caps.Scroll.SetOnScroll(nil)
		}
		if e.Caps.detach != nil {
			e.Caps.detach()
		}
	}
	r.entries = nil
}

// Len returns the number of pages.
func (r *Registry) Len() int {
	return len(r.entries)
}

// At returns the entry at index i.
func (r *Registry) At(i int) (Entry, bool) {
	if i < 0 || i >= len(r.entries) {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Entries returns a copy of all entries in order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Titles returns the page titles in order.
func (r *Registry) Titles() []string {
	titles := make([]string, len(r.entries))
	for i, e := range r.entries {
		titles[i] = e.Page.Title()
	}
	return titles
}

// SetActive marks index i as the single active page. Out of range indices
// are clamped.
func (r *Registry) SetActive(i int) {
	if len(r.entries) == 0 {
		return
	}
	i = min(max(i, 0), len(r.entries)-1)
	for k := range r.entries {
		r.entries[k].Active = k == i
	}
}

// Active returns the active entry, if any.
func (r *Registry) Active() (Entry, bool) {
	for _, e := range r.entries {
		if e.Active {
			return e, true
		}
	}
	return Entry{}, false
}
