package changelog

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Default title and description, applied at render time when the document
// does not carry its own.
const (
	DefaultTitle = "Changelog"

	DefaultDescription = "All notable changes to this project will be documented in this file.\n" +
		"\n" +
		"The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.0.0/)\n" +
		"and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html)."
)

// Lint rules suppressed in compact mode: blank lines around headings
// (MD022) and around lists (MD032).
const (
	lintHeadings = "MD022"
	lintLists    = "MD032"
)

// Changelog is the in-memory model of a Keep a Changelog document. Zero
// values mean "absent" for the optional string fields. Releases are kept
// sorted descending by date with the unreleased section pinned first; use
// AddRelease to preserve that invariant.
type Changelog struct {
	// Lint holds markdownlint rule codes disabled via a
	// `<!-- markdownlint-disable ... -->` comment. Rendered sorted.
	Lint []string
	// Flag is the body of a leading HTML comment that is not a lint
	// directive.
	Flag string
	Title       string
	Description string
	// Head is the git reference compared against for the unreleased
	// section's compare link. Defaults to "HEAD".
	Head   string
	Footer string
	// URL is the repository URL used to derive release and compare links.
	// When absent it may be inferred from an existing compare link in the
	// parsed source.
	URL string
	// TagPrefix is prepended to version numbers to form tag names, e.g. "v".
	TagPrefix string
	Releases  []Release
	Links     []Link
	// Compact removes blank lines after headings and lists throughout the
	// document and implies disabling the MD022 and MD032 lint rules.
	Compact bool
}

// Options carries parse-time configuration. All fields are optional.
type Options struct {
	// URL overrides the repository URL; when empty it is inferred from the
	// first compare-shaped link in the source, if any.
	URL string
	// TagPrefix is prepended to versions when building tag names.
	TagPrefix string
	// Head overrides the git head reference (default "HEAD").
	Head string
}

// New returns an empty changelog with defaults applied.
func New() *Changelog {
	return &Changelog{Head: "HEAD"}
}

// AddRelease inserts a release and restores the ordering invariant.
func (c *Changelog) AddRelease(r Release) *Changelog {
	c.Releases = append([]Release{r}, c.Releases...)
	c.sortReleases()
	return c
}

// sortReleases sorts descending by date. The unreleased section (no version
// and no date) is excluded from the sort and pinned at index 0. When several
// such sections exist the first one wins the pin; the rest sort as dateless.
func (c *Changelog) sortReleases() {
	unreleasedIdx := -1
	for i := range c.Releases {
		if c.Releases[i].IsUnreleased() {
			unreleasedIdx = i
			break
		}
	}

	var unreleased *Release
	if unreleasedIdx >= 0 {
		r := c.Releases[unreleasedIdx]
		unreleased = &r
		c.Releases = slices.Delete(c.Releases, unreleasedIdx, unreleasedIdx+1)
	}

	sort.SliceStable(c.Releases, func(i, j int) bool {
		a, b := c.Releases[i].Date, c.Releases[j].Date
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	if unreleased != nil {
		c.Releases = append([]Release{*unreleased}, c.Releases...)
	}
}

// FindRelease returns the release with the given version, or nil when no
// release matches. The version string must be valid semver.
func (c *Changelog) FindRelease(version string) (*Release, error) {
	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", version, err)
	}

	for i := range c.Releases {
		if c.Releases[i].Version != nil && c.Releases[i].Version.Equal(v) {
			return &c.Releases[i], nil
		}
	}
	return nil, nil
}

// GetUnreleased returns the unreleased section, or nil if there is none.
func (c *Changelog) GetUnreleased() *Release {
	for i := range c.Releases {
		if c.Releases[i].IsUnreleased() {
			return &c.Releases[i]
		}
	}
	return nil
}

// LatestRelease returns the most recent dated release, or nil.
func (c *Changelog) LatestRelease() *Release {
	for i := range c.Releases {
		if !c.Releases[i].IsUnreleased() {
			return &c.Releases[i]
		}
	}
	return nil
}

// AddLink appends a reference link.
func (c *Changelog) AddLink(anchor, url string) *Changelog {
	c.Links = append(c.Links, Link{Anchor: anchor, URL: url})
	return c
}

// SetCompact switches the document to compact spacing and disables the
// markdownlint rules that would flag the missing blank lines.
func (c *Changelog) SetCompact() *Changelog {
	c.Compact = true
	c.DisableLint(lintHeadings)
	c.DisableLint(lintLists)
	return c
}

// UnsetCompact restores regular spacing and re-enables the related lint
// rules.
func (c *Changelog) UnsetCompact() *Changelog {
	c.Compact = false
	c.EnableLint(lintHeadings)
	c.EnableLint(lintLists)
	return c
}

// DisableLint adds a markdownlint rule code to the disabled set.
func (c *Changelog) DisableLint(rule string) *Changelog {
	if !slices.Contains(c.Lint, rule) {
		c.Lint = append(c.Lint, rule)
	}
	return c
}

// EnableLint removes a markdownlint rule code from the disabled set.
func (c *Changelog) EnableLint(rule string) *Changelog {
	c.Lint = slices.DeleteFunc(c.Lint, func(r string) bool { return r == rule })
	if len(c.Lint) == 0 {
		c.Lint = nil
	}
	return c
}

// ListVersions returns the version label of every release in document
// order, using "unreleased" for the unreleased section.
func (c *Changelog) ListVersions() []string {
	versions := make([]string, len(c.Releases))
	for i := range c.Releases {
		if c.Releases[i].Version != nil {
			versions[i] = c.Releases[i].Version.String()
		} else {
			versions[i] = "unreleased"
		}
	}
	return versions
}

// sortedLint returns the disabled lint rules sorted lexicographically for
// rendering.
func (c *Changelog) sortedLint() []string {
	rules := make([]string, len(c.Lint))
	copy(rules, c.Lint)
	sort.Strings(rules)
	return rules
}

// trimmedDescription returns the description with surrounding whitespace
// removed, or the built-in default when unset.
func (c *Changelog) trimmedDescription() string {
	if c.Description == "" {
		return DefaultDescription
	}
	return strings.TrimSpace(c.Description)
}
