package changelog

import (
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Release is a dated (or unreleased), optionally yanked grouping of changes.
// A release with neither version nor date is the "Unreleased" section.
type Release struct {
	Version     *semver.Version
	Date        *time.Time
	Yanked      bool
	Description string
	Changes     Changes
}

// NewRelease builds a released entry for the given version and date.
func NewRelease(version *semver.Version, date time.Time) *Release {
	return &Release{Version: version, Date: &date}
}

// NewUnreleased builds the unreleased section.
func NewUnreleased() *Release {
	return &Release{}
}

// IsUnreleased reports whether this release is the unreleased section.
func (r *Release) IsUnreleased() bool {
	return r.Version == nil && r.Date == nil
}

// Added appends an entry to the Added category.
func (r *Release) Added(change string) *Release {
	r.Changes.Add(Added, change)
	return r
}

// Changed appends an entry to the Changed category.
func (r *Release) Changed(change string) *Release {
	r.Changes.Add(Changed, change)
	return r
}

// Deprecated appends an entry to the Deprecated category.
func (r *Release) Deprecated(change string) *Release {
	r.Changes.Add(Deprecated, change)
	return r
}

// Removed appends an entry to the Removed category.
func (r *Release) Removed(change string) *Release {
	r.Changes.Add(Removed, change)
	return r
}

// Fixed appends an entry to the Fixed category.
func (r *Release) Fixed(change string) *Release {
	r.Changes.Add(Fixed, change)
	return r
}

// Security appends an entry to the Security category.
func (r *Release) Security(change string) *Release {
	r.Changes.Add(Security, change)
	return r
}

// EmptyChanges discards all change entries.
func (r *Release) EmptyChanges() *Release {
	r.Changes = Changes{}
	return r
}

// compareLink derives the hyperlink for release index i of the sorted
// release list. The previous release is the nearest later entry that has a
// date; dateless entries are skipped. Derivation rules:
//
//   - no previous, release is dateless and versionless: no link at all
//   - no previous: release-style URL for the release's own tag
//   - previous exists, release is dateless or versionless: "Unreleased"
//     anchored compare between the previous tag and head
//   - otherwise: compare between the previous tag and the release's tag
//
// A missing repository URL is an error in every case that produces a link.
func compareLink(releases []Release, i int, repoURL, tagPrefix, head string) (*Link, error) {
	r := &releases[i]

	var previous *Release
	for j := i + 1; j < len(releases); j++ {
		if releases[j].Date != nil {
			previous = &releases[j]
			break
		}
	}

	if previous == nil && (r.Date == nil || r.Version == nil) {
		return nil, nil
	}

	if repoURL == "" {
		return nil, ErrMissingRepoURL
	}

	if previous == nil {
		version := r.Version.String()
		return &Link{Anchor: version, URL: releaseURL(repoURL, tagName(tagPrefix, version))}, nil
	}

	if r.Date == nil || r.Version == nil {
		if previous.Version == nil {
			return nil, fmt.Errorf("missing version for previous release")
		}
		prev := previous.Version.String()
		return &Link{Anchor: "Unreleased", URL: compareURL(repoURL, tagName(tagPrefix, prev), head)}, nil
	}

	if previous.Version == nil {
		return nil, fmt.Errorf("missing version for previous release")
	}

	version := r.Version.String()
	prev := previous.Version.String()
	return &Link{
		Anchor: version,
		URL:    compareURL(repoURL, tagName(tagPrefix, prev), tagName(tagPrefix, version)),
	}, nil
}

// tagName joins the configured tag prefix with a bare version string.
func tagName(prefix, version string) string {
	return prefix + version
}
