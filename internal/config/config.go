// Package config loads stretchy settings and page files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pengelbrecht/stretchy/internal/geometry"
)

// Settings holds the layered application settings.
type Settings struct {
	VisibleTitles int            `mapstructure:"visible_titles"`
	FirstIndex    int            `mapstructure:"first_index"`
	PagesFile     string         `mapstructure:"pages_file"`
	LogFile       string         `mapstructure:"log_file"`
	AnimationMS   int            `mapstructure:"animation_ms"`
	Chrome        ChromeSettings `mapstructure:"chrome"`
	Update        UpdateSettings `mapstructure:"update"`
}

// ChromeSettings sizes the header chrome in terminal cells.
type ChromeSettings struct {
	TopBar       float64 `mapstructure:"top_bar"`
	TitleStrip   float64 `mapstructure:"title_strip"`
	Stretch      float64 `mapstructure:"stretch"`
	CursorHeight float64 `mapstructure:"cursor_height"`
}

// UpdateSettings controls the background update check.
type UpdateSettings struct {
	Check bool `mapstructure:"check"`
}

// flagKeys maps CLI flag names to settings keys.
var flagKeys = map[string]string{
	"visible-titles": "visible_titles",
	"first":          "first_index",
	"pages":          "pages_file",
	"log":            "log_file",
}

// Dir returns the stretchy config directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".config", "stretchy")
}

// Path returns the settings file path. STRETCHY_CONFIG overrides the
// default location.
func Path() string {
	if p := os.Getenv("STRETCHY_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// Load reads settings from defaults, the settings file, STRETCHY_ env vars
// and, when flags is not nil, changed CLI flags, in increasing precedence.
// A missing settings file is not an error.
func Load(flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("STRETCHY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Settings{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return Settings{}, fmt.Errorf("failed to read config %s: %w", Path(), err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("visible_titles", 3)
	v.SetDefault("first_index", 0)
	v.SetDefault("pages_file", "")
	v.SetDefault("log_file", "")
	v.SetDefault("animation_ms", int(geometry.DefaultAnimationDuration/time.Millisecond))

	chrome := geometry.TerminalChrome()
	v.SetDefault("chrome.top_bar", chrome.TopBarHeight)
	v.SetDefault("chrome.title_strip", chrome.TitleStripHeight)
	v.SetDefault("chrome.stretch", chrome.StretchHeight)
	v.SetDefault("chrome.cursor_height", chrome.CursorHeight)

	v.SetDefault("update.check", true)
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Validate rejects settings the layout cannot use.
func (s Settings) Validate() error {
	switch {
	case s.VisibleTitles < 1:
		return fmt.Errorf("visible_titles must be at least 1, got %d", s.VisibleTitles)
	case s.FirstIndex < 0:
		return fmt.Errorf("first_index must not be negative, got %d", s.FirstIndex)
	case s.AnimationMS < 1:
		return fmt.Errorf("animation_ms must be at least 1, got %d", s.AnimationMS)
	case s.Chrome.TopBar < 0 || s.Chrome.TitleStrip < 0 || s.Chrome.Stretch < 0 || s.Chrome.CursorHeight < 0:
		return errors.New("chrome sizes must not be negative")
	case s.Chrome.CursorHeight > s.Chrome.TitleStrip:
		return fmt.Errorf("chrome.cursor_height %.0f exceeds chrome.title_strip %.0f",
			s.Chrome.CursorHeight, s.Chrome.TitleStrip)
	}
	return nil
}

// GeometryChrome converts the chrome settings for the layout engine.
func (s Settings) GeometryChrome() geometry.Chrome {
	return geometry.Chrome{
		TopBarHeight:      s.Chrome.TopBar,
		TitleStripHeight:  s.Chrome.TitleStrip,
		StretchHeight:     s.Chrome.Stretch,
		CursorHeight:      s.Chrome.CursorHeight,
		AnimationDuration: s.AnimationDuration(),
	}
}

// AnimationDuration returns the header animation duration.
func (s Settings) AnimationDuration() time.Duration {
	return time.Duration(s.AnimationMS) * time.Millisecond
}
