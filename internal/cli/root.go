// Package cli implements the kacl command surface. Commands are thin: they
// load configuration, invoke parse/mutate/render from internal/changelog,
// and write the result.
package cli

import (
	"github.com/ariel-frischer/kacl/internal/version"
	"github.com/spf13/cobra"
)

var (
	fileFlag      string
	configFlag    string
	repoURLFlag   string
	tagPrefixFlag string
	headFlag      string
)

var rootCmd = &cobra.Command{
	Use:   "kacl",
	Short: "Keep a Changelog toolkit",
	Long: `kacl reads, mutates, and regenerates CHANGELOG.md files following the
Keep a Changelog convention (https://keepachangelog.com).

Parsing is strict: release headings must be either dated
(## [VERSION] - YYYY-MM-DD) or unreleased (## [Unreleased]), and change
sections must use the six standard categories. Rendering is byte-stable,
so formatting the same file twice produces identical output.`,
	Example: `  # Reformat CHANGELOG.md in place
  kacl fmt

  # Validate without writing
  kacl check

  # Record a change under [Unreleased]
  kacl add fixed "Handle empty change sections"

  # Promote [Unreleased] to a tagged release dated today
  kacl release 1.4.0`,
	SilenceErrors: true,
	Version:       version.Version,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&fileFlag, "file", "f", "", "Changelog file path (default: CHANGELOG.md)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file path (default: .kacl.yml)")
	rootCmd.PersistentFlags().StringVar(&repoURLFlag, "repo-url", "", "Repository URL for compare links (default: inferred)")
	rootCmd.PersistentFlags().StringVar(&tagPrefixFlag, "tag-prefix", "", "Prefix prepended to versions in tag names (e.g. \"v\")")
	rootCmd.PersistentFlags().StringVar(&headFlag, "head", "", "Git head reference for the unreleased compare link")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
