package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STRETCHY_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	s, err := Load(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.VisibleTitles != 3 {
		t.Errorf("expected 3 visible titles, got %d", s.VisibleTitles)
	}
	if s.AnimationDuration() != 400*time.Millisecond {
		t.Errorf("expected 400ms, got %v", s.AnimationDuration())
	}
	if s.Chrome.Stretch != 6 {
		t.Errorf("expected stretch 6, got %v", s.Chrome.Stretch)
	}
	if !s.Update.Check {
		t.Error("expected update check enabled by default")
	}
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	path := writeFile(t, "config.toml", `
visible_titles = 4
first_index = 2
animation_ms = 250

[chrome]
stretch = 8
`)
	t.Setenv("STRETCHY_CONFIG", path)
	t.Setenv("STRETCHY_FIRST_INDEX", "1")
	t.Setenv("STRETCHY_CHROME_TOP_BAR", "2")

	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	fs.IntP("visible-titles", "v", 3, "")
	fs.String("log", "", "")
	if err := fs.Parse([]string{"--log", "/tmp/stretchy.log"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	s, err := Load(fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.VisibleTitles != 4 {
		t.Errorf("expected file value 4 for unchanged flag, got %d", s.VisibleTitles)
	}
	if s.FirstIndex != 1 {
		t.Errorf("expected env to override file, got %d", s.FirstIndex)
	}
	if s.Chrome.TopBar != 2 {
		t.Errorf("expected env top bar 2, got %v", s.Chrome.TopBar)
	}
	if s.Chrome.Stretch != 8 {
		t.Errorf("expected file stretch 8, got %v", s.Chrome.Stretch)
	}
	if s.LogFile != "/tmp/stretchy.log" {
		t.Errorf("expected flag log file, got %q", s.LogFile)
	}
	if s.AnimationDuration() != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", s.AnimationDuration())
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Setenv("STRETCHY_CONFIG", writeFile(t, "config.toml", "visible_titles = [oops"))

	if _, err := Load(nil); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("STRETCHY_CONFIG", writeFile(t, "config.toml", "visible_titles = 0\n"))

	_, err := Load(nil)
	if err == nil || !strings.Contains(err.Error(), "visible_titles") {
		t.Errorf("expected visible_titles error, got %v", err)
	}
}

func TestSettings_Validate(t *testing.T) {
	base := Settings{VisibleTitles: 3, AnimationMS: 400, Chrome: ChromeSettings{TopBar: 1, TitleStrip: 2, Stretch: 6, CursorHeight: 1}}

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"valid", func(*Settings) {}, false},
		{"negative first", func(s *Settings) { s.FirstIndex = -1 }, true},
		{"negative animation", func(s *Settings) { s.AnimationMS = -5 }, true},
		{"zero animation", func(s *Settings) { s.AnimationMS = 0 }, true},
		{"negative chrome", func(s *Settings) { s.Chrome.Stretch = -1 }, true},
		{"cursor taller than strip", func(s *Settings) { s.Chrome.CursorHeight = 3 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSettings_GeometryChrome(t *testing.T) {
	s := Settings{AnimationMS: 300, Chrome: ChromeSettings{TopBar: 1, TitleStrip: 2, Stretch: 5, CursorHeight: 1}}

	c := s.GeometryChrome()
	if c.TopBarHeight != 1 || c.TitleStripHeight != 2 || c.StretchHeight != 5 || c.CursorHeight != 1 {
		t.Errorf("unexpected chrome %+v", c)
	}
	if c.AnimationDuration != 300*time.Millisecond {
		t.Errorf("expected 300ms, got %v", c.AnimationDuration)
	}
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv("STRETCHY_CONFIG", "/etc/stretchy.toml")
	if got := Path(); got != "/etc/stretchy.toml" {
		t.Errorf("expected env path, got %q", got)
	}
}

func TestParsePages(t *testing.T) {
	input := `
[[page]]
id = "one"
title = "One"
body = "# Hello"
auto_stretch = true

[page.info]
title = "Page One"
badge = "new"

[[page]]
title = "  Two  "
scroll = false
`
	pages, err := ParsePages(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if !pages[0].AutoStretch || pages[0].Info == nil || pages[0].Info.Title != "Page One" {
		t.Errorf("unexpected first page %+v", pages[0])
	}
	if !pages[0].Scrollable() {
		t.Error("expected pages to scroll by default")
	}
	if pages[1].Title != "Two" {
		t.Errorf("expected trimmed title, got %q", pages[1].Title)
	}
	if pages[1].Scrollable() {
		t.Error("expected second page not to scroll")
	}
	if pages[1].ID == "" {
		t.Error("expected generated id")
	}
}

func TestParsePages_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", ``, "no pages"},
		{"unknown field", "[[page]]\ntitle = \"a\"\ncolour = \"red\"\n", "colour"},
		{"missing title", "[[page]]\nid = \"x\"\n", "page 0: title is required"},
		{"duplicate id", "[[page]]\nid = \"x\"\ntitle = \"a\"\n[[page]]\nid = \"x\"\ntitle = \"b\"\n", "page 1: id \"x\" already used by page 0"},
		{"inverted without scroll", "[[page]]\ntitle = \"a\"\nscroll = false\ninverted = true\n", "page 0"},
		{"syntax", "[[page]\n", "failed to parse pages"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePages(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestLoadPages(t *testing.T) {
	path := writeFile(t, "pages.toml", "[[page]]\ntitle = \"Only\"\n")

	pages, err := LoadPages(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 || pages[0].Title != "Only" {
		t.Errorf("unexpected pages %+v", pages)
	}

	_, err = LoadPages(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	empty := writeFile(t, "empty.toml", "")
	if _, err := LoadPages(empty); !errors.Is(err, ErrNoPages) {
		t.Errorf("expected ErrNoPages, got %v", err)
	}
}

func TestDefaultPages(t *testing.T) {
	pages := DefaultPages()
	if len(pages) != 5 {
		t.Fatalf("expected 5 pages, got %d", len(pages))
	}
	if !pages[0].AutoStretch || pages[0].Info.Title != "Page Navigation Demo" {
		t.Errorf("expected first page to auto-stretch with demo info, got %+v", pages[0])
	}

	var inverted, static int
	for _, p := range pages {
		if p.Inverted {
			inverted++
		}
		if !p.Scrollable() {
			static++
		}
	}
	if inverted != 1 || static != 1 {
		t.Errorf("expected one inverted and one static page, got %d and %d", inverted, static)
	}
}
