package changelog

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// renderDateLayout zero-pads on output regardless of how the date was
// written in the source.
const renderDateLayout = "2006-01-02"

// tagAnchorRE recognizes link anchors shaped like a version tag. Links
// whose anchor matches (or contains "Unreleased") are compare links and are
// regenerated from the release list instead of echoed from the source.
var tagAnchorRE = regexp.MustCompile(`\d+\.\d+\.\d+((-rc|-x)\.\d+)?`)

// blankRunRE matches runs of two or more consecutive blank lines.
var blankRunRE = regexp.MustCompile(`\n{3,}`)

// Render writes the changelog as markdown. The output is built fully in
// memory first; nothing is written when rendering fails.
func Render(c *Changelog, w io.Writer) error {
	s, err := RenderString(c)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

// RenderString renders the changelog to a markdown string. Rendering is
// stateless: compare links are derived fresh from the current release list
// on every call.
//
// The assembled text gets a final normalization pass: every run of two or
// more blank lines collapses to one, and the output ends with exactly one
// trailing newline.
func RenderString(c *Changelog) (string, error) {
	var b strings.Builder

	if len(c.Lint) > 0 {
		fmt.Fprintf(&b, "<!-- markdownlint-disable %s -->\n", strings.Join(c.sortedLint(), " "))
	}
	if c.Flag != "" {
		fmt.Fprintf(&b, "<!-- %s -->\n", c.Flag)
	}

	title := c.Title
	if title == "" {
		title = DefaultTitle
	}
	fmt.Fprintf(&b, "# %s\n", title)
	if !c.Compact {
		b.WriteString("\n")
	}

	b.WriteString(c.trimmedDescription() + "\n\n")

	for i := range c.Releases {
		if err := renderRelease(&b, &c.Releases[i], c.Compact); err != nil {
			return "", err
		}
	}

	if err := renderLinks(&b, c); err != nil {
		return "", err
	}

	if c.Footer != "" {
		fmt.Fprintf(&b, "---\n%s\n", c.Footer)
	}

	out := blankRunRE.ReplaceAllString(b.String(), "\n\n")
	return strings.TrimRight(out, "\n") + "\n", nil
}

// renderRelease writes one `## ` section. A release carrying a version must
// also carry a date.
func renderRelease(b *strings.Builder, r *Release, compact bool) error {
	yanked := ""
	if r.Yanked {
		yanked = " [YANKED]"
	}

	if r.Version != nil {
		if r.Date == nil {
			return fmt.Errorf("missing date for release %s", r.Version)
		}
		fmt.Fprintf(b, "## [%s] - %s%s\n", r.Version, r.Date.Format(renderDateLayout), yanked)
	} else {
		fmt.Fprintf(b, "## [Unreleased]%s\n", yanked)
	}
	if !compact {
		b.WriteString("\n")
	}

	if r.Description != "" {
		b.WriteString(r.Description + "\n")
		if !compact {
			b.WriteString("\n")
		}
	}

	for _, kind := range ChangeKinds() {
		entries := r.Changes.Entries(kind)
		if len(entries) == 0 {
			continue
		}

		fmt.Fprintf(b, "### %s\n", kind)
		if !compact {
			b.WriteString("\n")
		}
		for _, entry := range entries {
			b.WriteString(formatEntry(entry) + "\n")
		}
		if !compact {
			b.WriteString("\n")
		}
	}

	return nil
}

// formatEntry renders a change entry as a list item: `- ` on the first
// line, continuation lines indented two spaces, trailing whitespace
// trimmed.
func formatEntry(entry string) string {
	lines := strings.Split(entry, "\n")
	for i, line := range lines {
		if i == 0 {
			lines[i] = "- " + strings.TrimSpace(line)
		} else {
			lines[i] = strings.TrimRight("  "+line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

// renderLinks writes the plain reference links found in the source followed
// by one derived compare link per release, in release order.
func renderLinks(b *strings.Builder, c *Changelog) error {
	var plain []Link
	for _, link := range c.Links {
		if tagAnchorRE.MatchString(link.Anchor) || strings.Contains(link.Anchor, "Unreleased") {
			continue
		}
		plain = append(plain, link)
	}

	var derived []Link
	for i := range c.Releases {
		link, err := compareLink(c.Releases, i, c.URL, c.TagPrefix, c.Head)
		if err != nil {
			return err
		}
		if link != nil {
			derived = append(derived, *link)
		}
	}

	if len(plain) > 0 || len(derived) > 0 {
		b.WriteString("\n")
	}

	for _, link := range plain {
		b.WriteString(link.String() + "\n")
	}
	if len(plain) > 0 {
		b.WriteString("\n")
	}
	for _, link := range derived {
		b.WriteString(link.String() + "\n")
	}

	return nil
}
