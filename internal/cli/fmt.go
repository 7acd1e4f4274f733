package cli

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/kacl/internal/changelog"
	"github.com/spf13/cobra"
)

var fmtCheckFlag bool

var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Rewrite the changelog in canonical form",
	Long: `Parse the changelog and rewrite it in canonical form.

Canonical form normalizes heading spacing, list indentation, blank-line
runs, and regenerates the compare links at the bottom of the file from the
release list. Running fmt twice produces identical output.

With --check, no file is written; the command exits with code 2 when the
file differs from its canonical form.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFmt(cmd)
	},
}

func init() {
	fmtCmd.Flags().BoolVar(&fmtCheckFlag, "check", false, "Report instead of writing; exit 2 when not canonical")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command) error {
	s, err := resolveSettings()
	if err != nil {
		return err
	}

	original, err := os.ReadFile(s.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.Path, err)
	}

	cl, err := changelog.Parse(string(original), &s.Opts)
	if err != nil {
		return NewExitError(ExitParseFailed, fmt.Errorf("parsing %s: %w", s.Path, err))
	}
	applyRepoFallback(cl)

	formatted, err := changelog.RenderString(cl)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", s.Path, err)
	}

	if formatted == string(original) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is already canonical\n", s.Path)
		return nil
	}

	if fmtCheckFlag {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s is not canonical (run `kacl fmt` to rewrite)\n", s.Path)
		return NewExitError(ExitOutOfSync, nil)
	}

	if err := os.WriteFile(s.Path, []byte(formatted), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.Path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "reformatted %s\n", s.Path)
	return nil
}
