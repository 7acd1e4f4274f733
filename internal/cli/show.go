package cli

import (
	"fmt"

	"github.com/ariel-frischer/kacl/internal/changelog"
	"github.com/spf13/cobra"
)

var showPlainFlag bool

var showCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "Display the changelog in the terminal",
	Long: `Render the changelog with colors and icons for interactive reading.

Without arguments the whole document is shown. Pass a version to show a
single release, or "unreleased" for the pending section.`,
	Example: `  kacl show
  kacl show 1.2.0
  kacl show unreleased --plain`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, args)
	},
}

func init() {
	showCmd.Flags().BoolVar(&showPlainFlag, "plain", false, "Disable colors and icons")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings()
	if err != nil {
		return err
	}

	cl, err := changelog.ParseFile(s.Path, &s.Opts)
	if err != nil {
		return NewExitError(ExitParseFailed, fmt.Errorf("parsing %s: %w", s.Path, err))
	}

	opts := changelog.FormatOptions{Plain: showPlainFlag}

	if len(args) == 0 {
		return changelog.FormatTerminal(cl, cmd.OutOrStdout(), opts)
	}

	var rel *changelog.Release
	if args[0] == "unreleased" {
		rel = cl.GetUnreleased()
	} else {
		rel, err = cl.FindRelease(args[0])
		if err != nil {
			return NewExitError(ExitInvalidArguments, err)
		}
	}
	if rel == nil {
		return NewExitError(ExitInvalidArguments, fmt.Errorf("no release %q in %s", args[0], s.Path))
	}

	return changelog.FormatRelease(rel, cmd.OutOrStdout(), opts)
}
