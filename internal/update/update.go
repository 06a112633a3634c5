// Package update checks GitHub Releases for newer rshell builds and replaces
// the running binary.
package update

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/creativeprojects/go-selfupdate"
)

const (
	repoOwner = "vstratful"
	repoName  = "rshell"

	// DevVersion is the version string of unreleased builds.
	DevVersion = "dev"

	// ChecksumFile is the release asset holding SHA-256 sums of every archive.
	ChecksumFile = "checksums.txt"
)

// ReleasesURL is where released binaries can be downloaded manually.
var ReleasesURL = fmt.Sprintf("https://github.com/%s/%s/releases", repoOwner, repoName)

// ErrDevVersion is returned when trying to update a development build.
var ErrDevVersion = errors.New("cannot update development builds")

// Release describes an available update.
type Release struct {
	Version   string
	Published string
	Notes     string
	AssetName string
	release   *selfupdate.Release
}

// Updater checks for and applies releases for a given running version.
type Updater struct {
	current string
	slug    selfupdate.RepositorySlug
}

// New returns an Updater for the running version.
func New(current string) *Updater {
	return &Updater{
		current: current,
		slug:    selfupdate.NewRepositorySlug(repoOwner, repoName),
	}
}

// Current returns the running version.
func (u *Updater) Current() string {
	return u.current
}

func (u *Updater) client() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub source: %w", err)
	}

	client, err := selfupdate.NewUpdater(selfupdate.Config{
		Source:    source,
		Validator: &selfupdate.ChecksumValidator{UniqueFilename: ChecksumFile},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}
	return client, nil
}

// Check returns the latest release when it is newer than the running
// version, or nil when already up to date.
func (u *Updater) Check(ctx context.Context) (*Release, error) {
	if u.current == DevVersion {
		return nil, ErrDevVersion
	}

	client, err := u.client()
	if err != nil {
		return nil, err
	}

	latest, found, err := client.DetectLatest(ctx, u.slug)
	if err != nil {
		return nil, fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found || !latest.GreaterThan(u.current) {
		return nil, nil
	}

	rel := &Release{
		Version:   latest.Version(),
		Notes:     latest.ReleaseNotes,
		AssetName: latest.AssetName,
		release:   latest,
	}
	if !latest.PublishedAt.IsZero() {
		rel.Published = latest.PublishedAt.Format("2006-01-02")
	}
	return rel, nil
}

// Apply downloads rel and replaces the current executable with it.
func (u *Updater) Apply(ctx context.Context, rel *Release) error {
	if rel == nil || rel.release == nil {
		return errors.New("no release to apply")
	}

	client, err := u.client()
	if err != nil {
		return err
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	if err := client.UpdateTo(ctx, rel.release, exe); err != nil {
		return fmt.Errorf("failed to apply update: %w", err)
	}
	return nil
}

// ElevationHint tells the user how to retry an update that failed with a
// permission error on this platform.
func ElevationHint() string {
	if runtime.GOOS == "windows" {
		return "Run as Administrator"
	}
	return "sudo rshell update"
}
