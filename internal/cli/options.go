package cli

import (
	"fmt"

	"github.com/ariel-frischer/kacl/internal/changelog"
	"github.com/ariel-frischer/kacl/internal/config"
	"github.com/ariel-frischer/kacl/internal/git"
)

// settings is the merged view of config file, environment, flags, and git
// inference a command operates with.
type settings struct {
	Path    string
	Compact bool
	Opts    changelog.Options
}

// resolveSettings merges configuration sources in priority order: flags >
// environment > project config > defaults. When no repository URL is
// configured anywhere, the git origin remote provides a fallback; the
// changelog's own compare links take precedence over that during parsing,
// so an explicit URL in the file still wins.
func resolveSettings() (*settings, error) {
	cfg, err := config.Load(config.LoadOptions{ConfigPath: configFlag})
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	s := &settings{
		Path:    cfg.Path,
		Compact: cfg.Compact,
		Opts: changelog.Options{
			URL:       cfg.RepoURL,
			TagPrefix: cfg.TagPrefix,
			Head:      cfg.Head,
		},
	}

	if fileFlag != "" {
		s.Path = fileFlag
	}
	if repoURLFlag != "" {
		s.Opts.URL = repoURLFlag
	}
	if tagPrefixFlag != "" {
		s.Opts.TagPrefix = tagPrefixFlag
	}
	if headFlag != "" {
		s.Opts.Head = headFlag
	}
	s.Opts.Head = resolveHead(s.Opts.Head)

	return s, nil
}

// resolveHead picks the git reference the unreleased compare link points
// at: an explicitly configured value wins, then the currently checked-out
// branch, then "HEAD". Detached-HEAD checkouts and directories outside a
// repository fall through to "HEAD".
func resolveHead(configured string) string {
	if configured != "" {
		return configured
	}
	if branch, err := git.CurrentBranch(""); err == nil && branch != "" {
		return branch
	}
	return "HEAD"
}

// applyRepoFallback fills in the repository URL from the git origin remote
// when neither configuration nor the parsed document supplied one. Runs
// after parsing so a compare link in the file still wins. Failures are not
// fatal: a changelog without dated releases renders fine without a URL.
func applyRepoFallback(cl *changelog.Changelog) {
	if cl.URL != "" {
		return
	}
	if url, err := git.RemoteURL(""); err == nil {
		cl.URL = url
	}
}
