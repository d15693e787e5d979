package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pengelbrecht/stretchy/internal/config"
	"github.com/pengelbrecht/stretchy/internal/tui"
	"github.com/pengelbrecht/stretchy/internal/update"
)

var version = "dev"

// updateCheckTimeout bounds the startup update check.
const updateCheckTimeout = 3 * time.Second

var rootCmd = &cobra.Command{
	Use:   "stretchy",
	Short: "Paged terminal view with a stretchy header",
	Long: `Stretchy shows a set of pages side by side under a header that stretches
and collapses with the active page's scroll position. A title strip with a
sliding cursor follows the page container while you page through.

Without a subcommand, stretchy runs the demo pages.`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDemo,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the paged view",
	Long: `Run opens the paged view full screen. Pages come from --pages (a TOML
page file) or the built-in demo set.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Work with page files",
}

var pagesValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a page file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := config.LoadPages(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d pages\n", args[0], len(specs))
		for i, s := range specs {
			fmt.Fprintf(out, "  %d. %s (%s)%s\n", i+1, s.Title, s.ID, pageTraits(s))
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the stretchy version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "stretchy %s\n", version)
	},
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade stretchy to the latest version",
	Long:  `Downloads the latest release and replaces the running binary in-place.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Current version: %s\n", version)
		fmt.Fprintln(out, "Checking for updates...")

		if err := update.Update(cmd.Context(), version); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), update.UpdateInstructions(update.DetectInstallMethod()))
			return err
		}
		fmt.Fprintln(out, "Upgrade complete.")
		return nil
	},
}

func init() {
	addRunFlags(rootCmd.Flags())
	addRunFlags(runCmd.Flags())

	pagesCmd.AddCommand(pagesValidateCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(upgradeCmd)
}

// addRunFlags registers the paged view flags. Flags override the settings
// file and environment.
func addRunFlags(fs *pflag.FlagSet) {
	fs.IntP("visible-titles", "v", config.DefaultVisibleTitles, "Number of titles visible in the title strip")
	fs.IntP("first", "f", config.DefaultFirstIndex, "Index of the initially active page")
	fs.String("pages", "", "TOML page file (default: built-in demo pages)")
	fs.String("log", "", "Write logs to this file (default: discard)")
}

func runDemo(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	closeLog, err := setupLog(settings.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	specs, err := pageSpecs(settings.PagesFile)
	if err != nil {
		return err
	}

	var notice string
	if settings.Update.Check {
		ctx, cancel := context.WithTimeout(cmd.Context(), updateCheckTimeout)
		notice = update.CheckPeriodically(ctx, version, config.Dir())
		cancel()
	}

	model := tui.New(tui.Config{
		Pages:         tui.NewDemoPages(specs),
		VisibleTitles: settings.VisibleTitles,
		FirstIndex:    settings.FirstIndex,
		Chrome:        settings.GeometryChrome(),
		UpdateNotice:  notice,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if m, ok := final.(tui.Model); ok {
		m.Controller().Teardown()
	}
	return nil
}

// pageSpecs loads the page file, or the demo pages when path is empty.
func pageSpecs(path string) ([]config.PageSpec, error) {
	if path == "" {
		return config.DefaultPages(), nil
	}
	return config.LoadPages(path)
}

// setupLog sends the standard logger to path, or discards it when path is
// empty. The TUI owns stdout and stderr.
func setupLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	log.Printf("stretchy %s starting", version)
	return func() {
		log.SetOutput(io.Discard)
		f.Close()
	}, nil
}

func pageTraits(s config.PageSpec) string {
	var traits string
	if !s.Scrollable() {
		traits += " static"
	}
	if s.Inverted {
		traits += " inverted"
	}
	if s.AutoStretch {
		traits += " auto-stretch"
	}
	if traits == "" {
		return ""
	}
	return " [" + traits[1:] + "]"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
