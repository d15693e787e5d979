package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

// ErrNoPages is returned for a page file without any [[page]] table.
var ErrNoPages = errors.New("no pages defined")

// PageFile is the on-disk page set.
type PageFile struct {
	Pages []PageSpec `toml:"page"`
}

// PageSpec describes one page.
type PageSpec struct {
	ID          string    `toml:"id"`
	Title       string    `toml:"title"`
	Body        string    `toml:"body"`
	Scroll      *bool     `toml:"scroll"`
	Inverted    bool      `toml:"inverted"`
	AutoStretch bool      `toml:"auto_stretch"`
	Info        *InfoSpec `toml:"info"`
}

// InfoSpec is the info panel payload of a page.
type InfoSpec struct {
	Title    string `toml:"title"`
	Subtitle string `toml:"subtitle"`
	Badge    string `toml:"badge"`
}

// Scrollable reports whether the page has a vertical scroll view. Pages
// scroll unless they opt out.
func (p PageSpec) Scrollable() bool {
	return p.Scroll == nil || *p.Scroll
}

// LoadPages reads and validates a page file.
func LoadPages(path string) ([]PageSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pages file: %w", err)
	}
	defer f.Close()

	pages, err := ParsePages(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pages, nil
}

// ParsePages decodes and validates a page file. Unknown fields are
// rejected. Pages without an id get a random one.
func ParsePages(r io.Reader) ([]PageSpec, error) {
	var file PageFile
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("unknown fields:\n%s", strict.String())
		}
		return nil, fmt.Errorf("failed to parse pages: %w", err)
	}

	if len(file.Pages) == 0 {
		return nil, ErrNoPages
	}

	seen := make(map[string]int, len(file.Pages))
	for i := range file.Pages {
		p := &file.Pages[i]
		p.Title = strings.TrimSpace(p.Title)
		if p.Title == "" {
			return nil, fmt.Errorf("page %d: title is required", i)
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if prev, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("page %d: id %q already used by page %d", i, p.ID, prev)
		}
		seen[p.ID] = i

		if !p.Scrollable() && (p.Inverted || p.AutoStretch) {
			return nil, fmt.Errorf("page %d: inverted and auto_stretch need a scrolling page", i)
		}
	}
	return file.Pages, nil
}

// DefaultPages returns the built-in demo page set: five pages, the first
// of which stretches the header when it becomes active.
func DefaultPages() []PageSpec {
	noScroll := false
	return []PageSpec{
		{
			ID:          "overview",
			Title:       "Overview",
			AutoStretch: true,
			Info: &InfoSpec{
				Title:    "Page Navigation Demo",
				Subtitle: "Stretchy header paging",
				Badge:    "GitHub",
			},
			Body: overviewBody,
		},
		{
			ID:    "guide",
			Title: "Guide",
			Info:  &InfoSpec{Title: "Guide", Subtitle: "Keys and gestures"},
			Body:  guideBody,
		},
		{
			ID:       "feed",
			Title:    "Feed",
			Inverted: true,
			Info:     &InfoSpec{Title: "Feed", Subtitle: "Newest at the bottom"},
			Body:     feedBody(),
		},
		{
			ID:     "about",
			Title:  "About",
			Scroll: &noScroll,
			Body:   aboutBody,
		},
		{
			ID:    "notes",
			Title: "Notes",
			Info:  &InfoSpec{Title: "Notes", Badge: "5"},
			Body:  notesBody,
		},
	}
}

// Default demo layout.
const (
	DefaultVisibleTitles = 3
	DefaultFirstIndex    = 0
)

const overviewBody = `# Stretchy header

Scroll this page down and the header above **shrinks** until only the
title strip is left. Scroll back to the top and pull further: the header
stretches open again and the info panel fades in.

Switch pages with the arrow keys, the mouse wheel, or by clicking a title.
The cursor under the titles follows the page container continuously.

## Paging

- The title strip shows three titles at a time.
- While the container moves, the strip slides so the active title stays
  reachable.
- Landing on a page hands the header to that page.

## Try it

1. Scroll down a few lines.
2. Press ` + "`l`" + ` to go to the next page.
3. Come back with ` + "`h`" + `: this page stretches the header again on its own.

Lorem ipsum dolor sit amet, consectetur adipiscing elit. Integer nec odio.
Praesent libero. Sed cursus ante dapibus diam. Sed nisi. Nulla quis sem at
nibh elementum imperdiet. Duis sagittis ipsum. Praesent mauris. Fusce nec
tellus sed augue semper porta. Mauris massa. Vestibulum lacinia arcu eget
nulla.

Class aptent taciti sociosqu ad litora torquent per conubia nostra, per
inceptos himenaeos. Curabitur sodales ligula in libero. Sed dignissim
lacinia nunc. Curabitur tortor. Pellentesque nibh. Aenean quam. In
scelerisque sem at dolor. Maecenas mattis.
`

const guideBody = `# Keys

| Key | Action |
| --- | --- |
| h / ← | previous page |
| l / → | next page |
| 1-9 | jump to page |
| j / k | scroll the page |
| o / c | open / close the header |
| ? | help |
| q | quit |

# Mouse

- Wheel scrolls the active page.
- Shift+wheel or horizontal wheel drags the page container.
- Dragging the body left or right moves between pages.
- Clicking a title jumps to its page.
`

const aboutBody = `# About

This page has no scroll view. Arriving here from a scrolling page collapses
the header.
`

const notesBody = `# Notes

- Header height is always between its closed and open heights.
- The header and page content never move together: mid-stretch, the
  content is re-anchored so further motion scrolls the content.
- Only the active page drives the header.
`

func feedBody() string {
	var b strings.Builder
	b.WriteString("# Feed\n\n")
	for i := 1; i <= 40; i++ {
		fmt.Fprintf(&b, "- message %02d\n", i)
	}
	return b.String()
}
