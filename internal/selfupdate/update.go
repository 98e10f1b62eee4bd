// Package selfupdate checks GitHub releases for a newer markerclean build
// and replaces the running binary in place.
package selfupdate

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// Repo is the GitHub repository releases are checked against.
const Repo = "markerclean/engine"

var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// detectLatest queries the GitHub Releases API and returns the highest
// semver, non-draft, non-prerelease release it can find.
func detectLatest(repo string) (*selfupdate.Release, bool, error) {
	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/releases", repo)
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(apiURL)
	if err != nil {
		return nil, false, fmt.Errorf("selfupdate: github API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, false, fmt.Errorf("selfupdate: github API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("selfupdate: reading github response: %w", err)
	}

	var releases []struct {
		TagName    string `json:"tag_name"`
		Name       string `json:"name"`
		Draft      bool   `json:"draft"`
		Prerelease bool   `json:"prerelease"`
		Assets     []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, false, fmt.Errorf("selfupdate: decoding github releases: %w", err)
	}

	var best *selfupdate.Release
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		v, ok := parseReleaseVersion(r.TagName, r.Name)
		if !ok {
			continue
		}
		if best != nil && !v.GT(best.Version) {
			continue
		}
		best = &selfupdate.Release{Version: v, AssetURL: pickAssetURL(r.Assets)}
	}
	if best == nil {
		return nil, false, nil
	}
	return best, true, nil
}

// parseReleaseVersion extracts a semver from a release's tag name, falling
// back to its display name, and tolerates both "v1.2.3" and "1.2.3" forms.
func parseReleaseVersion(tagName, name string) (semver.Version, bool) {
	match := semverRe.FindString(tagName)
	if match == "" {
		match = semverRe.FindString(name)
		if match == "" {
			return semver.Version{}, false
		}
	}
	if v, err := semver.Parse(match); err == nil {
		return v, true
	}
	v, err := semver.Parse(strings.TrimPrefix(match, "v"))
	return v, err == nil
}

// pickAssetURL prefers an asset whose name identifies a platform/arch this
// binary could run on, falling back to the first asset listed.
func pickAssetURL(assets []struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}) string {
	fallback := ""
	for _, a := range assets {
		if fallback == "" {
			fallback = a.BrowserDownloadURL
		}
		nameLower := strings.ToLower(a.Name)
		if strings.Contains(nameLower, "darwin") || strings.Contains(nameLower, "linux") ||
			strings.Contains(nameLower, "windows") || strings.Contains(nameLower, "amd64") ||
			strings.Contains(nameLower, "arm64") {
			return a.BrowserDownloadURL
		}
	}
	return fallback
}

// Check looks up the latest release and, if it differs from currentVersion
// and confirm returns true, downloads and replaces the running binary,
// re-executing it with the same argv. confirm receives the latest version
// string and decides whether to proceed; cmd/markerclean passes a callback
// that prompts the operator.
func Check(currentVersion string, confirm func(latest string) bool) error {
	latest, found, err := detectLatest(Repo)
	if err != nil {
		return fmt.Errorf("selfupdate: %w", err)
	}
	if !found || latest == nil {
		return nil
	}

	currentVer, parseErr := semver.Parse(currentVersion)
	if parseErr == nil && latest.Version.Equals(currentVer) {
		return nil
	}
	if latest.AssetURL == "" {
		return fmt.Errorf("selfupdate: new version %s available but has no downloadable asset", latest.Version)
	}
	if !confirm(latest.Version.String()) {
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("selfupdate: locating executable: %w", err)
	}
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("selfupdate: update failed: %w", err)
	}

	argv := append([]string{exe}, os.Args[1:]...)
	if err := syscall.Exec(exe, argv, os.Environ()); err != nil {
		cmd := exec.Command(exe, os.Args[1:]...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if startErr := cmd.Start(); startErr != nil {
			return fmt.Errorf("selfupdate: updated but failed to restart: exec=%v start=%v", err, startErr)
		}
		os.Exit(0)
	}
	return nil
}
