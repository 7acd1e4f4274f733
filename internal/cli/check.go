package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ariel-frischer/kacl/internal/changelog"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var checkRemoteFlag string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate that the changelog parses",
	Long: `Parse the changelog and report the result.

Validation covers the full grammar: release heading formats, semantic
versions, dates, change-kind headings, and link definitions. Errors name
the offending source line.

With --remote, a changelog is fetched over HTTP and validated instead of
the local file.`,
	Example: `  kacl check
  kacl check --remote https://raw.githubusercontent.com/olivierlacan/keep-a-changelog/main/CHANGELOG.md`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkRemoteFlag, "remote", "", "Fetch and validate a changelog from a URL")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command) error {
	s, err := resolveSettings()
	if err != nil {
		return err
	}

	if checkRemoteFlag != "" {
		return checkRemote(cmd, s)
	}

	cl, err := changelog.ParseFile(s.Path, &s.Opts)
	if err != nil {
		return NewExitError(ExitParseFailed, fmt.Errorf("parsing %s: %w", s.Path, err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d releases, %d links\n", s.Path, len(cl.Releases), len(cl.Links))
	return nil
}

func checkRemote(cmd *cobra.Command, s *settings) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), changelog.DefaultRemoteTimeout)
	defer cancel()

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	sp.Suffix = " fetching " + checkRemoteFlag
	sp.Start()

	cl, err := changelog.FetchRemote(ctx, checkRemoteFlag, &s.Opts)
	sp.Stop()

	if err != nil {
		return NewExitError(ExitParseFailed, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d releases, %d links\n", checkRemoteFlag, len(cl.Releases), len(cl.Links))
	return nil
}
