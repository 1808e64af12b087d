// Package versioncheck checks whether a newer slipway release exists.
package versioncheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidewater-dev/slipway/internal/semver"
	"github.com/tidewater-dev/slipway/internal/state"
	"github.com/tidewater-dev/slipway/internal/version"
)

const (
	// GitHubOwner is the GitHub repository owner.
	GitHubOwner = "tidewater-dev"
	// GitHubRepo is the GitHub repository name.
	GitHubRepo = "slipway"

	// CacheTTL is how long to cache the version check result.
	CacheTTL = 24 * time.Hour
	// RequestTimeout is the timeout for the GitHub API request.
	RequestTimeout = 5 * time.Second

	cacheKeyStable = state.KVStoreKey("versioncheck:stable")
)

// InstallMethod represents how slipway was installed.
type InstallMethod int

const (
	InstallMethodUnknown InstallMethod = iota
	InstallMethodHomebrew
	InstallMethodDownload // Direct binary download
)

// githubRelease represents the GitHub API response for a release.
type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// cacheData represents cached version check data.
type cacheData struct {
	Version string `json:"version"`
	URL     string `json:"url"`
}

// Result contains the version check result.
type Result struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateURL       string
	UpdateAvailable bool
	InstallMethod   InstallMethod
}

// Check checks for a new version of slipway.
// Returns nil for source builds and on silent failure.
func Check(ctx context.Context) *Result {
	current := version.Get()

	// Source builds carry no release version to compare against.
	if current == "local" {
		return nil
	}
	if _, err := semver.Parse(strings.TrimPrefix(current, "v")); err != nil {
		return nil
	}

	cached, cacheAge, err := loadCache(ctx, cacheKeyStable)
	if err == nil && cacheAge < CacheTTL {
		return buildResult(current, cached.Version, cached.URL)
	}

	latest, releaseURL, err := fetchLatestRelease()
	if err != nil {
		// On error, return cached result if available
		if cached != nil {
			return buildResult(current, cached.Version, cached.URL)
		}
		return nil
	}

	saveCache(ctx, cacheKeyStable, &cacheData{
		Version: latest,
		URL:     releaseURL,
	})

	return buildResult(current, latest, releaseURL)
}

func buildResult(current, latest, releaseURL string) *Result {
	updateAvailable := false
	cur, curErr := semver.Parse(strings.TrimPrefix(current, "v"))
	lat, latErr := semver.Parse(strings.TrimPrefix(latest, "v"))
	if curErr == nil && latErr == nil {
		updateAvailable = semver.Less(cur, lat)
	}

	return &Result{
		CurrentVersion:  current,
		LatestVersion:   latest,
		UpdateURL:       releaseURL,
		UpdateAvailable: updateAvailable,
		InstallMethod:   detectInstallMethod(),
	}
}

// fetchLatestRelease fetches the latest stable release from GitHub.
func fetchLatestRelease() (string, string, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", GitHubOwner, GitHubRepo)

	client := &http.Client{Timeout: RequestTimeout}
	resp, err := client.Get(url)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("github API returned status %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", "", fmt.Errorf("failed to decode response: %w", err)
	}

	return release.TagName, release.HTMLURL, nil
}

// loadCache loads cached data from KVStore.
// Returns the data, age since last update, and any error.
func loadCache(ctx context.Context, key state.KVStoreKey) (*cacheData, time.Duration, error) {
	kv, err := state.DefaultKVStore(ctx)
	if err != nil {
		return nil, 0, err
	}

	entry, found, err := kv.Get(ctx, key)
	if err != nil {
		return nil, 0, err
	}
	if !found {
		return nil, 0, fmt.Errorf("cache not found")
	}

	var data cacheData
	if err := json.Unmarshal([]byte(entry.Value), &data); err != nil {
		return nil, 0, err
	}

	age := time.Since(entry.LastUsed)
	return &data, age, nil
}

// saveCache saves data to KVStore cache.
func saveCache(ctx context.Context, key state.KVStoreKey, data *cacheData) error {
	kv, err := state.DefaultKVStore(ctx)
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return kv.Upsert(ctx, key, string(jsonData))
}

// detectInstallMethod tries to determine how slipway was installed based on
// the executable path.
func detectInstallMethod() InstallMethod {
	execPath, err := os.Executable()
	if err != nil {
		return InstallMethodUnknown
	}

	realPath, err := filepath.EvalSymlinks(execPath)
	if err != nil {
		realPath = execPath
	}

	if strings.Contains(realPath, "/Cellar/") ||
		strings.Contains(realPath, "/homebrew/") ||
		strings.Contains(realPath, "/linuxbrew/") {
		return InstallMethodHomebrew
	}

	return InstallMethodDownload
}

// PrintUpdateBanner prints an update notification banner if an update is
// available.
func PrintUpdateBanner(result *Result) {
	if result == nil || !result.UpdateAvailable {
		return
	}

	fmt.Printf("\n")
	fmt.Printf("  A new version of slipway is available: %s -> %s\n", result.CurrentVersion, result.LatestVersion)

	switch result.InstallMethod {
	case InstallMethodHomebrew:
		fmt.Printf("  Run: brew upgrade slipway\n")
	case InstallMethodDownload, InstallMethodUnknown:
		fmt.Printf("  Download: %s\n", result.UpdateURL)
	}

	fmt.Printf("\n")
}
