package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pengelbrecht/stretchy/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestFlagParsing tests that the run flags are registered on the root
// command and on run.
func TestFlagParsing(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"visible-titles", "v", "3"},
		{"first", "f", "0"},
		{"pages", "", ""},
		{"log", "", ""},
	}
	for _, cmd := range []string{"root", "run"} {
		fs := rootCmd.Flags()
		if cmd == "run" {
			fs = runCmd.Flags()
		}
		for _, tt := range tests {
			flag := fs.Lookup(tt.name)
			if flag == nil {
				t.Fatalf("%s: --%s flag not registered", cmd, tt.name)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("%s: --%s shorthand = %q, want %q", cmd, tt.name, flag.Shorthand, tt.shorthand)
			}
			if flag.DefValue != tt.def {
				t.Errorf("%s: --%s default value = %q, want %q", cmd, tt.name, flag.DefValue, tt.def)
			}
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if out != "stretchy "+version+"\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestPagesValidate(t *testing.T) {
	path := writeFile(t, "pages.toml", `
[[page]]
id = "inbox"
title = "Inbox"
inverted = true

[[page]]
title = "About"
scroll = false

[page.info]
title = "About stretchy"
`)

	out, err := execute(t, "pages", "validate", path)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	for _, want := range []string{"2 pages", "1. Inbox (inbox) [inverted]", "2. About", "[static]"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPagesValidate_Invalid(t *testing.T) {
	path := writeFile(t, "pages.toml", `
[[page]]
id = "a"
title = "  "
`)

	_, err := execute(t, "pages", "validate", path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "title is required") {
		t.Errorf("expected title error, got %v", err)
	}
}

func TestPagesValidate_RequiresFile(t *testing.T) {
	if _, err := execute(t, "pages", "validate"); err == nil {
		t.Error("expected error without a file argument")
	}
}

func TestPageSpecs(t *testing.T) {
	specs, err := pageSpecs("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != len(config.DefaultPages()) {
		t.Errorf("expected demo pages, got %d", len(specs))
	}

	if _, err := pageSpecs(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for a missing page file")
	}
}

func TestSetupLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stretchy.log")

	closeLog, err := setupLog(path)
	if err != nil {
		t.Fatalf("setupLog failed: %v", err)
	}
	log.Printf("hello from test")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("expected log line in file, got %q", data)
	}

	if _, err := setupLog(filepath.Join(t.TempDir(), "no", "such", "dir.log")); err == nil {
		t.Error("expected error for an unwritable log path")
	}
}

func TestPageTraits(t *testing.T) {
	noScroll := false
	tests := []struct {
		spec config.PageSpec
		want string
	}{
		{config.PageSpec{}, ""},
		{config.PageSpec{Scroll: &noScroll}, " [static]"},
		{config.PageSpec{Inverted: true, AutoStretch: true}, " [inverted auto-stretch]"},
	}
	for _, tt := range tests {
		if got := pageTraits(tt.spec); got != tt.want {
			t.Errorf("pageTraits(%+v) = %q, want %q", tt.spec, got, tt.want)
		}
	}
}
