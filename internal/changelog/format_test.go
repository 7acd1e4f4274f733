package changelog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRelease_Plain(t *testing.T) {
	t.Parallel()

	r := Release{
		Version: mustVersion(t, "1.1.0"),
		Date:    date(2024, time.June, 15),
		Changes: Changes{
			Added: []string{"New subcommand"},
			Fixed: []string{"Crash on empty input"},
		},
	}

	var b strings.Builder
	require.NoError(t, FormatRelease(&r, &b, FormatOptions{Plain: true}))

	out := b.String()
	assert.Contains(t, out, "## v1.1.0 (2024-06-15)")
	assert.Contains(t, out, "### Added")
	assert.Contains(t, out, "  - New subcommand")
	assert.Contains(t, out, "### Fixed")
	assert.Contains(t, out, "  - Crash on empty input")
}

func TestFormatRelease_UnreleasedHeader(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	require.NoError(t, FormatRelease(NewUnreleased(), &b, FormatOptions{Plain: true}))
	assert.Equal(t, "## Unreleased\n", b.String())
}

func TestFormatRelease_YankedHeader(t *testing.T) {
	t.Parallel()

	r := Release{
		Version: mustVersion(t, "0.3.0"),
		Date:    date(2024, time.March, 5),
		Yanked:  true,
	}

	var b strings.Builder
	require.NoError(t, FormatRelease(&r, &b, FormatOptions{Plain: true}))
	assert.Contains(t, b.String(), "[YANKED]")
}

func TestFormatTerminal_SeparatesReleases(t *testing.T) {
	t.Parallel()

	cl, err := Parse(sampleChangelog, nil)
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, FormatTerminal(cl, &b, FormatOptions{Plain: true, MaxWidth: 80}))

	out := b.String()
	assert.Contains(t, out, "## Unreleased")
	assert.Contains(t, out, "## v1.1.0 (2024-06-15)")
	assert.Contains(t, out, "## v1.0.0 (2024-01-10)")
	// Multi-line entries collapse onto one line in terminal output.
	assert.NotContains(t, out, "\n\n\n")
}

func TestWrapText(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text     string
		maxWidth int
		want     string
	}{
		"short text untouched": {
			text:     "fits fine",
			maxWidth: 40,
			want:     "fits fine",
		},
		"wraps at a space": {
			text:     "one two three four",
			maxWidth: 9,
			want:     "one two\n    three\n    four",
		},
		"zero width untouched": {
			text:     "anything at all",
			maxWidth: 0,
			want:     "anything at all",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, wrapText(tc.text, tc.maxWidth, "    "))
		})
	}
}
