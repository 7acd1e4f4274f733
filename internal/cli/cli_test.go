package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChangelog = `# Changelog

Notes.

## [Unreleased]

### Added

- Pending change

## [1.0.0] - 2024-01-10

### Added

- Initial release

[Unreleased]: https://github.com/acme/widget/compare/1.0.0...HEAD
[1.0.0]: https://github.com/acme/widget/releases/tag/1.0.0
`

// runCommand executes the root command with args and captures stdout.
// Command tests share rootCmd's flag state, so they must not run in
// parallel.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		fileFlag, configFlag, repoURLFlag, tagPrefixFlag, headFlag = "", "", "", "", ""
		fmtCheckFlag, showPlainFlag, initForceFlag, initCompactFlag = false, false, false, false
		checkRemoteFlag, releaseDateFlag = "", ""
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeChangelog(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

func TestFmtCmd_CanonicalFileUntouched(t *testing.T) {
	path := writeChangelog(t, testChangelog)

	out, err := runCommand(t, "fmt", "--file", path, "--head", "HEAD")
	require.NoError(t, err)
	assert.Contains(t, out, "already canonical")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testChangelog, string(data))
}

func TestFmtCmd_RewritesMessyFile(t *testing.T) {
	messy := "# Changelog\n\n\nNotes.\n\n## [1.0.0] - 2024-1-5\n\n### Added\n\n- Initial release\n\n[1.0.0]: https://github.com/acme/widget/releases/tag/1.0.0\n"
	path := writeChangelog(t, messy)

	out, err := runCommand(t, "fmt", "--file", path, "--repo-url", "https://github.com/acme/widget")
	require.NoError(t, err)
	assert.Contains(t, out, "reformatted")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## [1.0.0] - 2024-01-05")
	assert.NotContains(t, string(data), "\n\n\n")
}

func TestFmtCmd_CheckMode(t *testing.T) {
	messy := "# Changelog\n\n\nNotes.\n\n## [Unreleased]\n"
	path := writeChangelog(t, messy)

	out, err := runCommand(t, "fmt", "--check", "--file", path)
	require.Error(t, err)
	assert.Equal(t, ExitOutOfSync, exitCode(err))
	assert.Contains(t, out, "not canonical")

	// --check must not rewrite.
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, messy, string(data))
}

func TestFmtCmd_ParseFailure(t *testing.T) {
	path := writeChangelog(t, "# Changelog\n\n## NotAVersion\n")

	_, err := runCommand(t, "fmt", "--file", path)
	require.Error(t, err)
	assert.Equal(t, ExitParseFailed, exitCode(err))
	assert.Contains(t, err.Error(), "malformed release heading")
}

func TestCheckCmd_Valid(t *testing.T) {
	path := writeChangelog(t, testChangelog)

	out, err := runCommand(t, "check", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 releases")
}

func TestCheckCmd_Invalid(t *testing.T) {
	path := writeChangelog(t, "# Changelog\n\n## [1.0] - 2024-01-01\n")

	_, err := runCommand(t, "check", "--file", path)
	require.Error(t, err)
	assert.Equal(t, ExitParseFailed, exitCode(err))
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")

	out, err := runCommand(t, "init", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "created")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Changelog")
	assert.Contains(t, string(data), "## [Unreleased]")
	assert.Contains(t, string(data), "keepachangelog.com")
}

func TestInitCmd_RefusesExistingFile(t *testing.T) {
	path := writeChangelog(t, testChangelog)

	_, err := runCommand(t, "init", "--file", path)
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, exitCode(err))
	assert.Contains(t, err.Error(), "already exists")
}

func TestAddCmd(t *testing.T) {
	path := writeChangelog(t, testChangelog)

	out, err := runCommand(t, "add", "fixed", "Handle", "empty", "input", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "added Fixed entry")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "### Fixed\n\n- Handle empty input")
}

func TestAddCmd_CreatesUnreleasedSection(t *testing.T) {
	path := writeChangelog(t, "# Changelog\n\nNotes.\n\n## [1.0.0] - 2024-01-10\n\n### Added\n\n- Initial release\n\n[1.0.0]: https://github.com/acme/widget/compare/0.9.0...1.0.0\n")

	_, err := runCommand(t, "add", "added", "Fresh", "work", "--file", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## [Unreleased]")
	assert.Contains(t, string(data), "- Fresh work")
}

func TestAddCmd_UnknownKind(t *testing.T) {
	path := writeChangelog(t, testChangelog)

	_, err := runCommand(t, "add", "refactored", "whatever", "--file", path)
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, exitCode(err))
}

func TestReleaseCmd(t *testing.T) {
	path := writeChangelog(t, testChangelog)

	out, err := runCommand(t, "release", "1.1.0", "--date", "2024-06-15", "--file", path, "--head", "HEAD")
	require.NoError(t, err)
	assert.Contains(t, out, "released 1.1.0 (2024-06-15)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "## [1.1.0] - 2024-06-15")
	assert.Contains(t, content, "## [Unreleased]")
	assert.Contains(t, content, "[1.1.0]: https://github.com/acme/widget/compare/1.0.0...1.1.0")
	assert.Contains(t, content, "[Unreleased]: https://github.com/acme/widget/compare/1.1.0...HEAD")
}

func TestReleaseCmd_Errors(t *testing.T) {
	tests := map[string]struct {
		content string
		args    []string
	}{
		"duplicate version": {
			content: testChangelog,
			args:    []string{"release", "1.0.0", "--date", "2024-06-15"},
		},
		"no unreleased section": {
			content: "# Changelog\n\nNotes.\n\n## [1.0.0] - 2024-01-10\n\n### Added\n\n- Initial release\n\n[1.0.0]: https://github.com/acme/widget/releases/tag/1.0.0\n",
			args:    []string{"release", "1.1.0", "--date", "2024-06-15"},
		},
		"empty unreleased section": {
			content: "# Changelog\n\nNotes.\n\n## [Unreleased]\n",
			args:    []string{"release", "1.1.0", "--date", "2024-06-15"},
		},
		"invalid version": {
			content: testChangelog,
			args:    []string{"release", "not-semver"},
		},
		"invalid date": {
			content: testChangelog,
			args:    []string{"release", "1.1.0", "--date", "June 15th"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeChangelog(t, tc.content)

			_, err := runCommand(t, append(tc.args, "--file", path)...)
			require.Error(t, err)
			assert.Equal(t, ExitInvalidArguments, exitCode(err))
		})
	}
}

func TestShowCmd(t *testing.T) {
	path := writeChangelog(t, testChangelog)

	out, err := runCommand(t, "show", "--plain", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "## Unreleased")
	assert.Contains(t, out, "## v1.0.0 (2024-01-10)")
	assert.Contains(t, out, "  - Initial release")
}

func TestShowCmd_SingleVersion(t *testing.T) {
	path := writeChangelog(t, testChangelog)

	out, err := runCommand(t, "show", "1.0.0", "--plain", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "## v1.0.0 (2024-01-10)")
	assert.NotContains(t, out, "Unreleased")
}

func TestShowCmd_UnknownVersion(t *testing.T) {
	path := writeChangelog(t, testChangelog)

	_, err := runCommand(t, "show", "9.9.9", "--plain", "--file", path)
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, exitCode(err))
}
