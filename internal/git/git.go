// Package git provides the small set of repository lookups kacl needs:
// inferring the repository URL from the origin remote and reading the
// current branch for compare-link head references. It uses the go-git
// library so no git CLI installation is required.
package git

import (
	"fmt"
	"os"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// openRepo opens the repository containing path (or the working directory
// when path is empty), traversing up the directory tree to find it.
func openRepo(path string) (*gogit.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// RemoteURL returns the URL of the origin remote, normalized to an https
// web URL with any ".git" suffix removed. Returns an error when there is no
// repository or no origin remote.
func RemoteURL(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote(gogit.DefaultRemoteName)
	if err != nil {
		return "", fmt.Errorf("getting origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no URL")
	}

	return normalizeRemoteURL(urls[0]), nil
}

// CurrentBranch returns the name of the current branch, or empty string in
// detached HEAD state.
func CurrentBranch(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		if err == plumbing.ErrReferenceNotFound {
			return "", nil
		}
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}

// IsRepository reports whether path is inside a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	return err == nil
}

// normalizeRemoteURL converts scp-like ssh remotes (git@host:owner/repo)
// and ssh:// URLs to https form and strips a trailing ".git".
func normalizeRemoteURL(url string) string {
	url = strings.TrimSuffix(url, ".git")

	if rest, ok := strings.CutPrefix(url, "git@"); ok {
		host, repoPath, found := strings.Cut(rest, ":")
		if found {
			return "https://" + host + "/" + repoPath
		}
	}
	if rest, ok := strings.CutPrefix(url, "ssh://git@"); ok {
		return "https://" + rest
	}
	return url
}
