package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "kacl", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"file", "config", "repo-url", "tag-prefix", "head"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag %s should exist", name)
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	t.Parallel()

	want := []string{"init", "fmt", "check", "show", "add", "release", "watch"}
	found := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		found[cmd.Name()] = true
	}
	for _, name := range want {
		assert.True(t, found[name], "subcommand %s should be registered", name)
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	err := NewExitError(ExitOutOfSync, nil)
	require.NotNil(t, err)
	assert.Equal(t, ExitOutOfSync, err.Code)
	assert.Empty(t, err.Error())

	wrapped := NewExitError(ExitParseFailed, assert.AnError)
	assert.Equal(t, assert.AnError.Error(), wrapped.Error())
	assert.Equal(t, assert.AnError, wrapped.Unwrap())
}
