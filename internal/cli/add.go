package cli

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/kacl/internal/changelog"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <kind> <text>...",
	Short: "Record a change under [Unreleased]",
	Long: `Append a change entry to the unreleased section, creating the section
if the changelog does not have one yet. The kind must be one of the six
standard categories: added, changed, deprecated, removed, fixed, security.`,
	Example: `  kacl add added "Support YAML front matter"
  kacl add fixed "Handle empty change sections"`,
	Args:         cobra.MinimumNArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdd(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	kind, err := changelog.ParseChangeKind(args[0])
	if err != nil {
		return NewExitError(ExitInvalidArguments, err)
	}
	text := strings.Join(args[1:], " ")

	s, err := resolveSettings()
	if err != nil {
		return err
	}

	cl, err := changelog.ParseFile(s.Path, &s.Opts)
	if err != nil {
		return NewExitError(ExitParseFailed, fmt.Errorf("parsing %s: %w", s.Path, err))
	}
	applyRepoFallback(cl)

	unreleased := cl.GetUnreleased()
	if unreleased == nil {
		cl.AddRelease(*changelog.NewUnreleased())
		unreleased = cl.GetUnreleased()
	}
	unreleased.Changes.Add(kind, text)

	if err := changelog.Save(cl, s.Path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "added %s entry to [Unreleased]\n", kind)
	return nil
}
