package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepoWithCommit creates a repository with one commit so HEAD resolves
// to a branch.
func initRepoWithCommit(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("x\n"), 0o644))
	_, err = wt.Add("file.txt")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir
}

func TestResolveHead_ConfiguredValueWins(t *testing.T) {
	t.Chdir(initRepoWithCommit(t))

	assert.Equal(t, "release-branch", resolveHead("release-branch"))
}

func TestResolveHead_UsesCurrentBranch(t *testing.T) {
	t.Chdir(initRepoWithCommit(t))

	assert.Equal(t, "master", resolveHead(""))
}

func TestResolveHead_OutsideRepositoryDefaultsToHEAD(t *testing.T) {
	t.Chdir(t.TempDir())

	assert.Equal(t, "HEAD", resolveHead(""))
}
