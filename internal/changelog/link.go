package changelog

import (
	"fmt"
	"regexp"
)

// Link is a markdown link reference definition: `[anchor]: url`. It covers
// both arbitrary reference links found in the source and generated compare
// links.
type Link struct {
	Anchor string
	URL    string
}

// linkDefRE splits a link reference definition into anchor and URL. (?s)
// lets the whitespace between label and URL span the newline of a two-line
// definition.
var linkDefRE = regexp.MustCompile(`(?s)^\[(.*?)\]:\s*(.+)$`)

// ParseLink parses a link reference definition. The input may be a single
// line or the two merged lines of a label-then-URL definition.
func ParseLink(raw string) (Link, error) {
	m := linkDefRE.FindStringSubmatch(raw)
	if m == nil {
		return Link{}, fmt.Errorf("malformed link reference: %q", raw)
	}
	return Link{Anchor: m[1], URL: m[2]}, nil
}

// String renders the link as a reference definition line.
func (l Link) String() string {
	return fmt.Sprintf("[%s]: %s", l.Anchor, l.URL)
}

// releaseURL builds the tag page URL used when a release has no predecessor
// to compare against.
func releaseURL(repo, tag string) string {
	return fmt.Sprintf("%s/releases/tag/%s", repo, tag)
}

// compareURL builds a diff URL between two tags, or a tag and a branch ref.
func compareURL(repo, from, to string) string {
	return fmt.Sprintf("%s/compare/%s...%s", repo, from, to)
}
