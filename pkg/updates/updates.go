// Package updates checks the release feed for a newer printerm version.
// It only ever reports; installing an update is the package manager's job.
package updates

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/printerm/printerm/pkg/errors"
	"github.com/printerm/printerm/pkg/logging"
)

// DefaultReleaseURL is the GitHub latest-release endpoint for printerm.
const DefaultReleaseURL = "https://api.github.com/repos/printerm/printerm/releases/latest"

// Result describes the outcome of one update check.
type Result struct {
	Current   string
	Latest    string
	Available bool
}

// Checker queries a release feed and compares versions.
type Checker struct {
	url    string
	client *http.Client
}

// NewChecker returns a checker against the given release URL, or the
// default feed when url is empty.
func NewChecker(url string) *Checker {
	if url == "" {
		url = DefaultReleaseURL
	}
	return &Checker{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// LatestVersion fetches the version tag of the newest release.
func (c *Checker) LatestVersion(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrUpdateCheck, "Cannot build release feed request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrUpdateCheck, "Cannot reach the release feed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf(errors.ErrUpdateCheck, "Release feed returned HTTP %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", errors.Wrap(err, errors.ErrUpdateCheck, "Cannot decode release feed response")
	}
	if release.TagName == "" {
		return "", errors.New(errors.ErrUpdateCheck, "Release feed did not name a version")
	}
	return release.TagName, nil
}

// Check fetches the latest release and compares it with the running
// version. Development builds ("dev" or anything that is not a
// semantic version) never report an available update.
func (c *Checker) Check(ctx context.Context, current string) (*Result, error) {
	logger := logging.GetLogger("updates")

	latest, err := c.LatestVersion(ctx)
	if err != nil {
		return nil, err
	}

	latestCanon := canonical(latest)
	if !semver.IsValid(latestCanon) {
		return nil, errors.Newf(errors.ErrUpdateCheck,
			"Release feed version '%s' is not a semantic version", latest)
	}

	currentCanon := canonical(current)
	result := &Result{
		Current:   current,
		Latest:    strings.TrimPrefix(latestCanon, "v"),
		Available: semver.IsValid(currentCanon) && semver.Compare(latestCanon, currentCanon) > 0,
	}

	logger.Debug().
		Str("current", result.Current).
		Str("latest", result.Latest).
		Bool("available", result.Available).
		Msg("Update check complete")
	return result, nil
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
