package cli

import (
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/ariel-frischer/kacl/internal/changelog"
	"github.com/spf13/cobra"
)

var releaseDateFlag string

var releaseCmd = &cobra.Command{
	Use:   "release <version>",
	Short: "Promote [Unreleased] to a tagged release",
	Long: `Turn the unreleased section into a dated release and start a fresh empty
[Unreleased] section. The date defaults to today; compare links are
rederived so the new release links against its predecessor.`,
	Example: `  kacl release 1.4.0
  kacl release 2.0.0-rc.1 --date 2026-08-01`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelease(cmd, args)
	},
}

func init() {
	releaseCmd.Flags().StringVar(&releaseDateFlag, "date", "", "Release date (YYYY-MM-DD, default: today)")
	rootCmd.AddCommand(releaseCmd)
}

func runRelease(cmd *cobra.Command, args []string) error {
	v, err := semver.StrictNewVersion(args[0])
	if err != nil {
		return NewExitError(ExitInvalidArguments, fmt.Errorf("parsing version %q: %w", args[0], err))
	}

	date := time.Now()
	if releaseDateFlag != "" {
		date, err = time.Parse("2006-01-02", releaseDateFlag)
		if err != nil {
			return NewExitError(ExitInvalidArguments, fmt.Errorf("parsing date %q: %w", releaseDateFlag, err))
		}
	}

	s, err := resolveSettings()
	if err != nil {
		return err
	}

	cl, err := changelog.ParseFile(s.Path, &s.Opts)
	if err != nil {
		return NewExitError(ExitParseFailed, fmt.Errorf("parsing %s: %w", s.Path, err))
	}
	applyRepoFallback(cl)

	if existing, _ := cl.FindRelease(args[0]); existing != nil {
		return NewExitError(ExitInvalidArguments, fmt.Errorf("release %s already exists", args[0]))
	}

	unreleased := cl.GetUnreleased()
	if unreleased == nil {
		return NewExitError(ExitInvalidArguments, fmt.Errorf("no [Unreleased] section in %s", s.Path))
	}
	if unreleased.Changes.IsEmpty() {
		return NewExitError(ExitInvalidArguments, fmt.Errorf("[Unreleased] has no changes to release"))
	}

	promoted := changelog.NewRelease(v, date)
	promoted.Description = unreleased.Description
	promoted.Changes = unreleased.Changes
	*unreleased = *promoted
	cl.AddRelease(*changelog.NewUnreleased())

	if err := changelog.Save(cl, s.Path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "released %s (%s)\n", v, date.Format("2006-01-02"))
	return nil
}
