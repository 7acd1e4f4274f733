package cli

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/kacl/internal/changelog"
	"github.com/spf13/cobra"
)

var (
	initForceFlag   bool
	initCompactFlag bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new changelog",
	Long: `Write a fresh changelog with the standard preamble and an empty
Unreleased section. Refuses to overwrite an existing file unless --force
is given.`,
	Example: `  kacl init
  kacl init --file docs/CHANGELOG.md --compact`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd)
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForceFlag, "force", false, "Overwrite an existing changelog")
	initCmd.Flags().BoolVar(&initCompactFlag, "compact", false, "Use compact spacing")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command) error {
	s, err := resolveSettings()
	if err != nil {
		return err
	}

	if !initForceFlag {
		if _, err := os.Stat(s.Path); err == nil {
			return NewExitError(ExitInvalidArguments, fmt.Errorf("%s already exists (use --force to overwrite)", s.Path))
		}
	}

	cl := changelog.New()
	cl.URL = s.Opts.URL
	cl.TagPrefix = s.Opts.TagPrefix
	if s.Opts.Head != "" {
		cl.Head = s.Opts.Head
	}
	cl.AddRelease(*changelog.NewUnreleased())
	if initCompactFlag || s.Compact {
		cl.SetCompact()
	}
	applyRepoFallback(cl)

	if err := changelog.Save(cl, s.Path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", s.Path)
	return nil
}
