package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// kindStyle defines the color and icon for a change category in terminal
// output.
type kindStyle struct {
	color *color.Color
	icon  string
}

var kindStyles = map[ChangeKind]kindStyle{
	Added:      {color: color.New(color.FgGreen), icon: "✓"},
	Changed:    {color: color.New(color.FgBlue), icon: "~"},
	Deprecated: {color: color.New(color.FgRed), icon: "⚠"},
	Removed:    {color: color.New(color.FgRed), icon: "✗"},
	Fixed:      {color: color.New(color.FgYellow), icon: "⚡"},
	Security:   {color: color.New(color.FgMagenta), icon: "🔒"},
}

// FormatOptions controls terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes every release to the writer with terminal styling:
// bold version headers and color-coded category sections.
func FormatTerminal(c *Changelog, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i := range c.Releases {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := formatRelease(&c.Releases[i], w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// FormatRelease writes a single release's entries to the writer.
func FormatRelease(r *Release, w io.Writer, opts FormatOptions) error {
	return formatRelease(r, w, opts, resolveWidth(opts.MaxWidth))
}

func formatRelease(r *Release, w io.Writer, opts FormatOptions, width int) error {
	if err := writeReleaseHeader(r, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, kind := range ChangeKinds() {
		entries := r.Changes.Entries(kind)
		if len(entries) == 0 {
			continue
		}
		if err := writeKindSection(kind, entries, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeReleaseHeader writes the version header line.
func writeReleaseHeader(r *Release, w io.Writer, opts FormatOptions) error {
	var header string
	switch {
	case r.Version == nil:
		header = "Unreleased"
	case r.Date != nil:
		header = fmt.Sprintf("v%s (%s)", r.Version, r.Date.Format(renderDateLayout))
	default:
		header = fmt.Sprintf("v%s", r.Version)
	}
	if r.Yanked {
		header += " [YANKED]"
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeKindSection writes one category header with its entries.
func writeKindSection(kind ChangeKind, entries []string, w io.Writer, opts FormatOptions, width int) error {
	style := kindStyles[kind]

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", kind); err != nil {
			return err
		}
	} else {
		colored := style.color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.icon), colored(kind.String())); err != nil {
			return err
		}
	}

	for _, entry := range entries {
		if err := writeFormattedEntry(entry, style, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeFormattedEntry writes a single entry with optional wrapping.
func writeFormattedEntry(entry string, style kindStyle, w io.Writer, opts FormatOptions, width int) error {
	const prefix = "  - "
	text := strings.ReplaceAll(entry, "\n", " ")

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")
	colored := style.color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation
// lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
