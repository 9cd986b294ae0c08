package vcs_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/raykroeker/vimfiles/pkg/vcs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func gitIn(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}

// newOrigin creates a local repository on branch master with one file.
func newOrigin(t *testing.T) string {
	t.Helper()
	origin := filepath.Join(t.TempDir(), "origin")
	require.NoError(t, os.MkdirAll(filepath.Join(origin, "colors"), 0755))
	gitIn(t, origin, "init", "-q")
	gitIn(t, origin, "checkout", "-q", "-b", "master")
	require.NoError(t, os.WriteFile(filepath.Join(origin, "colors", "theme.vim"), []byte("hi Normal\n"), 0644))
	gitIn(t, origin, "add", ".")
	gitIn(t, origin, "commit", "-q", "-m", "initial")
	return origin
}

func TestRemoteURL(t *testing.T) {
	assert.Equal(t, "git@github.com:acme/theme-pack", vcs.RemoteURL("", "acme", "theme-pack"))
	assert.Equal(t, "https://example.com/acme/theme-pack.git",
		vcs.RemoteURL("https://example.com/{owner}/{repository}.git", "acme", "theme-pack"))
}

func TestGitClient_CloneAndPull(t *testing.T) {
	requireGit(t)
	origin := newOrigin(t)
	dest := filepath.Join(t.TempDir(), "theme-pack")

	client := vcs.NewGitClient("", time.Minute)
	client.Env = []string{
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
	}

	require.NoError(t, client.Clone(context.Background(), origin, dest))
	_, err := os.Stat(filepath.Join(dest, "colors", "theme.vim"))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(origin, "README"), []byte("new\n"), 0644))
	gitIn(t, origin, "add", ".")
	gitIn(t, origin, "commit", "-q", "-m", "second")

	require.NoError(t, client.Pull(context.Background(), dest, "origin", "master"))
	_, err = os.Stat(filepath.Join(dest, "README"))
	assert.NoError(t, err)
}

func TestGitClient_CloneFailureCapturesOutput(t *testing.T) {
	requireGit(t)
	client := vcs.NewGitClient("", time.Minute)

	missing := filepath.Join(t.TempDir(), "does-not-exist")
	err := client.Clone(context.Background(), missing, filepath.Join(t.TempDir(), "dest"))
	require.Error(t, err)

	var cmdErr *vcs.CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.NotEmpty(t, cmdErr.Output)
	assert.Equal(t, "clone", cmdErr.Args[1])
}

func TestGitClient_MissingBinary(t *testing.T) {
	client := vcs.NewGitClient(filepath.Join(t.TempDir(), "no-git-here"), 0)

	err := client.Pull(context.Background(), t.TempDir(), "origin", "master")
	var cmdErr *vcs.CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Empty(t, cmdErr.Output)
}

func TestGitClient_Canceled(t *testing.T) {
	requireGit(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := vcs.NewGitClient("", 0)
	err := client.Clone(ctx, newOrigin(t), filepath.Join(t.TempDir(), "dest"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
