// Package update provides version checking and self-update functionality.
package update

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/pelletier/go-toml/v2"
)

const (
	repoOwner     = "pengelbrecht"
	repoName      = "stretchy"
	checkInterval = 24 * time.Hour
	cacheFile     = "update-cache.toml"
)

// ErrDevBuild is returned when a development build asks to be updated.
var ErrDevBuild = errors.New("cannot update dev builds")

// Release represents information about a release.
type Release struct {
	Version    string
	ReleaseURL string
}

// detectLatest looks up the newest published release, or nil when there
// is none. Tests replace it.
var detectLatest = func(ctx context.Context) (*Release, error) {
	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}
	latest, found, err := updater.DetectLatest(ctx, selfupdate.NewRepositorySlug(repoOwner, repoName))
	if err != nil {
		return nil, fmt.Errorf("failed to detect latest version: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &Release{Version: latest.Version(), ReleaseURL: latest.URL}, nil
}

func newUpdater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub source: %w", err)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}
	return updater, nil
}

// isDev reports whether version is a development build.
func isDev(version string) bool {
	v := strings.TrimPrefix(version, "v")
	return v == "" || v == "dev"
}

// CheckForUpdate checks if a newer version than currentVersion is
// published. Dev builds never have updates.
func CheckForUpdate(ctx context.Context, currentVersion string) (*Release, bool, error) {
	if isDev(currentVersion) {
		return nil, false, nil
	}

	latest, err := detectLatest(ctx)
	if err != nil || latest == nil {
		return nil, false, err
	}
	return latest, isNewerVersion(latest.Version, currentVersion), nil
}

// Update downloads and installs the latest version over the running
// executable. Homebrew installs must be upgraded through brew.
func Update(ctx context.Context, currentVersion string) error {
	if DetectInstallMethod() == InstallHomebrew {
		return fmt.Errorf("stretchy was installed via Homebrew. Please run: brew upgrade pengelbrecht/tap/stretchy")
	}
	if isDev(currentVersion) {
		return ErrDevBuild
	}

	updater, err := newUpdater()
	if err != nil {
		return err
	}
	latest, found, err := updater.DetectLatest(ctx, selfupdate.NewRepositorySlug(repoOwner, repoName))
	if err != nil {
		return fmt.Errorf("failed to detect latest version: %w", err)
	}
	if !found {
		return fmt.Errorf("no releases found")
	}
	if !isNewerVersion(latest.Version(), currentVersion) {
		return fmt.Errorf("already at latest version (%s)", currentVersion)
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		return fmt.Errorf("failed to update: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Periodic check
// -----------------------------------------------------------------------------

// updateCache stores the last update check result.
type updateCache struct {
	LastCheck       time.Time `toml:"last_check"`
	LatestVersion   string    `toml:"latest_version,omitempty"`
	UpdateAvailable bool      `toml:"update_available"`
}

func loadCache(dir string) *updateCache {
	data, err := os.ReadFile(filepath.Join(dir, cacheFile))
	if err != nil {
		return nil
	}
	var cache updateCache
	if err := toml.Unmarshal(data, &cache); err != nil {
		log.Printf("update: ignoring unreadable cache: %v", err)
		return nil
	}
	return &cache
}

func saveCache(dir string, cache *updateCache) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("update: cache dir: %v", err)
		return
	}
	data, err := toml.Marshal(cache)
	if err != nil {
		return
	}
	if err := os.WriteFile(filepath.Join(dir, cacheFile), data, 0o644); err != nil {
		log.Printf("update: write cache: %v", err)
	}
}

// CheckPeriodically checks for updates at most once per day, caching the
// result under cacheDir. It returns a footer notice when an update is
// available and "" otherwise; failures are logged, never returned.
func CheckPeriodically(ctx context.Context, currentVersion, cacheDir string) string {
	if isDev(currentVersion) || cacheDir == "" {
		return ""
	}

	if cache := loadCache(cacheDir); cache != nil && time.Since(cache.LastCheck) < checkInterval {
		// The user may have upgraded since the cache was written.
		if cache.UpdateAvailable && isNewerVersion(cache.LatestVersion, currentVersion) {
			return formatUpdateNotice(currentVersion, cache.LatestVersion, DetectInstallMethod())
		}
		return ""
	}

	release, hasUpdate, err := CheckForUpdate(ctx, currentVersion)
	if err != nil {
		log.Printf("update: check failed: %v", err)
	}

	next := &updateCache{
		LastCheck:       time.Now(),
		UpdateAvailable: hasUpdate && err == nil,
	}
	if release != nil {
		next.LatestVersion = release.Version
	}
	saveCache(cacheDir, next)

	if err != nil || !hasUpdate {
		return ""
	}
	return formatUpdateNotice(currentVersion, release.Version, DetectInstallMethod())
}

// isNewerVersion reports whether a is a newer semantic version than b.
// Unparseable versions are never newer.
func isNewerVersion(a, b string) bool {
	va, err := semver.NewVersion(a)
	if err != nil {
		return false
	}
	vb, err := semver.NewVersion(b)
	if err != nil {
		return false
	}
	return va.GreaterThan(vb)
}

// -----------------------------------------------------------------------------
// Install method
// -----------------------------------------------------------------------------

// InstallMethod represents how stretchy was installed.
type InstallMethod int

const (
	// InstallUnknown means we couldn't determine the install method.
	InstallUnknown InstallMethod = iota
	// InstallHomebrew means stretchy was installed via Homebrew.
	InstallHomebrew
	// InstallScript means stretchy was installed via shell script or go install.
	InstallScript
)

func (m InstallMethod) String() string {
	switch m {
	case InstallHomebrew:
		return "homebrew"
	case InstallScript:
		return "script"
	default:
		return "unknown"
	}
}

// DetectInstallMethod determines how stretchy was installed by examining
// the binary path.
func DetectInstallMethod() InstallMethod {
	exe, err := os.Executable()
	if err != nil {
		return InstallUnknown
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return InstallUnknown
	}
	return installMethodFor(exe)
}

func installMethodFor(exe string) InstallMethod {
	if strings.Contains(exe, "/Cellar/") ||
		strings.HasPrefix(exe, "/opt/homebrew/") ||
		strings.HasPrefix(exe, "/usr/local/Homebrew/") ||
		strings.Contains(exe, "linuxbrew") {
		return InstallHomebrew
	}
	return InstallScript
}

// UpdateInstructions returns instructions for updating based on install method.
func UpdateInstructions(method InstallMethod) string {
	switch method {
	case InstallHomebrew:
		return "Run: brew upgrade pengelbrecht/tap/stretchy"
	case InstallScript:
		return "Run: stretchy upgrade\nOr reinstall: go install github.com/pengelbrecht/stretchy/cmd/stretchy@latest"
	default:
		return "Run: stretchy upgrade"
	}
}

func formatUpdateNotice(current, latest string, method InstallMethod) string {
	cmd := "stretchy upgrade"
	if method == InstallHomebrew {
		cmd = "brew upgrade pengelbrecht/tap/stretchy"
	}
	return fmt.Sprintf("Update available: %s -> %s (run: %s)", current, latest, cmd)
}
