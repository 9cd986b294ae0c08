// pkg/commands/commands_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: MemoryFS, FakeVCS
// PURPOSE: Test install/remove/update against an in-memory home directory

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raykroeker/vimfiles/pkg/commands"
	"github.com/raykroeker/vimfiles/pkg/config"
	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/testutil"
	"github.com/raykroeker/vimfiles/pkg/types"
)

const pluginsYAML = `
pathogen:
  owner: tpope
  repository: vim-pathogen
  links:
    - autoload/pathogen.vim
navajo:
  source: vim-scripts/navajo-night
  links:
    - colors/navajo-night.vim
`

type env struct {
	fs   *testutil.MemoryFS
	vcs  *testutil.FakeVCS
	cfg  *config.Config
	deps commands.Deps
}

func newEnv(t *testing.T) *env {
	t.Helper()
	fs := testutil.NewMemoryFS()
	require.NoError(t, fs.MkdirAll("/home/user/.vimfiles", 0755))
	require.NoError(t, fs.WriteFile("/home/user/.vimfiles/plugins.yaml", []byte(pluginsYAML), 0644))
	require.NoError(t, fs.WriteFile("/home/user/.vimfiles/dot-vimrc", []byte("execute pathogen#infect()\n"), 0644))

	client := testutil.NewFakeVCS(fs).
		WithRepo("git@github.com:tpope/vim-pathogen", "autoload/pathogen.vim").
		WithRepo("git@github.com:vim-scripts/navajo-night", "colors/navajo-night.vim")

	cfg := &config.Config{
		InstallRoot: "/home/user/.vimfiles",
		ConfigRoot:  "/home/user/.vimfiles/dot-vim",
		Manifest:    "/home/user/.vimfiles/plugins.yaml",
		Home:        "/home/user",
		Namespace:   "com.github",
		Jobs:        1,
		Remote:      config.Remote{URLFormat: "git@github.com:{owner}/{repository}", Name: "origin", Branch: "master"},
		Git:         config.Git{Binary: "git", Timeout: time.Minute},
	}
	return &env{fs: fs, vcs: client, cfg: cfg, deps: commands.Deps{FS: fs, VCS: client}}
}

func (e *env) dispatch(t *testing.T, kind commands.Kind, plugins ...string) (*types.CommandResult, error) {
	t.Helper()
	return commands.Dispatch(context.Background(), kind, e.cfg, e.deps, plugins...)
}

func TestInstall(t *testing.T) {
	e := newEnv(t)

	result, err := e.dispatch(t, commands.KindInstall)
	require.NoError(t, err)

	assert.Equal(t, 2, e.vcs.Count("clone"))

	dest, err := e.fs.Readlink("/home/user/.vim")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.vimfiles/dot-vim", dest)

	dest, err = e.fs.Readlink("/home/user/.vimrc")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.vimfiles/dot-vimrc", dest)

	dest, err = e.fs.Readlink("/home/user/.vimfiles/dot-vim/autoload/pathogen.vim")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.vimfiles/repositories/com.github/tpope/vim-pathogen/autoload/pathogen.vim", dest)

	data, err := e.fs.ReadFile("/home/user/.vimfiles/dot-vim/colors/navajo-night.vim")
	require.NoError(t, err)
	assert.Equal(t, "colors/navajo-night.vim", string(data))

	require.NotNil(t, result.Report)
	assert.Equal(t, "install", result.Report.Command)
	assert.Equal(t, 2, result.Report.Summarize().Created)
}

func TestInstall_Conflicts(t *testing.T) {
	t.Run("existing_vim_dir", func(t *testing.T) {
		e := newEnv(t)
		require.NoError(t, e.fs.MkdirAll("/home/user/.vim", 0755))

		_, err := e.dispatch(t, commands.KindInstall)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInstallConflict))
		assert.Empty(t, e.vcs.Calls(), "nothing runs after a conflict")
	})

	t.Run("existing_vimrc_file_even_with_force", func(t *testing.T) {
		e := newEnv(t)
		e.cfg.Force = true
		require.NoError(t, e.fs.WriteFile("/home/user/.vimrc", []byte("set nocompatible"), 0644))

		_, err := e.dispatch(t, commands.KindInstall)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInstallConflict))

		data, err := e.fs.ReadFile("/home/user/.vimrc")
		require.NoError(t, err)
		assert.Equal(t, "set nocompatible", string(data))
	})

	t.Run("existing_symlink_without_force", func(t *testing.T) {
		e := newEnv(t)
		require.NoError(t, e.fs.Symlink("/old/dot-vim", "/home/user/.vim"))

		_, err := e.dispatch(t, commands.KindInstall)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInstallConflict))
	})

	t.Run("install_root_is_dot_vim", func(t *testing.T) {
		e := newEnv(t)
		e.cfg.InstallRoot = "/home/user/.vim"
		e.cfg.ConfigRoot = ""

		_, err := e.dispatch(t, commands.KindInstall)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInstallConflict))
	})
}

func TestInstall_ForceReplacesSymlinks(t *testing.T) {
	e := newEnv(t)
	e.cfg.Force = true
	require.NoError(t, e.fs.Symlink("/old/dot-vim", "/home/user/.vim"))
	require.NoError(t, e.fs.Symlink("/old/dot-vimrc", "/home/user/.vimrc"))

	result, err := e.dispatch(t, commands.KindInstall)
	require.NoError(t, err)

	dest, err := e.fs.Readlink("/home/user/.vim")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.vimfiles/dot-vim", dest)

	var unlinked int
	for _, a := range result.Actions {
		if a.Action == types.ActionUnlink {
			unlinked++
		}
	}
	assert.Equal(t, 2, unlinked)
}

func TestInstall_SyncFailureLeavesHomeAlone(t *testing.T) {
	e := newEnv(t)
	e.vcs.CloneErr = assert.AnError
	e.vcs.Output = "Permission denied (publickey)."

	result, err := e.dispatch(t, commands.KindInstall)
	require.Error(t, err)
	assert.True(t, errors.IsFetchError(err))
	assert.Contains(t, err.Error(), "Permission denied")
	require.NotNil(t, result)
	require.NotNil(t, result.Report)

	_, err = e.fs.Lstat("/home/user/.vim")
	assert.Error(t, err)
}

func TestInstall_DryRun(t *testing.T) {
	e := newEnv(t)
	e.cfg.DryRun = true
	before := e.fs.Snapshot()

	result, err := e.dispatch(t, commands.KindInstall)
	require.NoError(t, err)

	assert.Equal(t, before, e.fs.Snapshot())
	assert.Empty(t, e.vcs.Calls())
	assert.True(t, result.DryRun)
	for _, a := range result.Actions {
		assert.True(t, a.Planned, a.Path)
	}
}

func TestRemove(t *testing.T) {
	e := newEnv(t)
	_, err := e.dispatch(t, commands.KindInstall)
	require.NoError(t, err)

	result, err := e.dispatch(t, commands.KindRemove)
	require.NoError(t, err)
	assert.Equal(t, "remove", result.Command)

	for _, p := range []string{
		"/home/user/.vim",
		"/home/user/.vimrc",
		"/home/user/.vimfiles/repositories",
		"/home/user/.vimfiles/dot-vim",
	} {
		_, err := e.fs.Lstat(p)
		assert.Error(t, err, p)
	}

	// The manifest and dot-vimrc survive.
	_, err = e.fs.Stat("/home/user/.vimfiles/plugins.yaml")
	assert.NoError(t, err)
	_, err = e.fs.Stat("/home/user/.vimfiles/dot-vimrc")
	assert.NoError(t, err)
}

func TestRemove_KeepsRealFiles(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.fs.WriteFile("/home/user/.vimrc", []byte("mine"), 0644))

	result, err := e.dispatch(t, commands.KindRemove)
	require.NoError(t, err)

	data, err := e.fs.ReadFile("/home/user/.vimrc")
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))
	assert.Equal(t, types.ActionKeep, result.Actions[0].Action)
}

func TestRemove_DryRun(t *testing.T) {
	e := newEnv(t)
	_, err := e.dispatch(t, commands.KindInstall)
	require.NoError(t, err)
	before := e.fs.Snapshot()

	e.cfg.DryRun = true
	result, err := e.dispatch(t, commands.KindRemove)
	require.NoError(t, err)
	assert.Equal(t, before, e.fs.Snapshot())
	assert.Len(t, result.Actions, 4)
}

func TestUpdate(t *testing.T) {
	e := newEnv(t)
	_, err := e.dispatch(t, commands.KindInstall)
	require.NoError(t, err)
	e.vcs.Reset()
	before := e.fs.Snapshot()

	result, err := e.dispatch(t, commands.KindUpdate)
	require.NoError(t, err)

	assert.Equal(t, 2, e.vcs.Count("pull"))
	assert.Equal(t, 0, e.vcs.Count("clone"))
	assert.Equal(t, before, e.fs.Snapshot())
	assert.Equal(t, 2, result.Report.Summarize().Skipped)
}

func TestUpdate_SelectedPlugins(t *testing.T) {
	e := newEnv(t)
	_, err := e.dispatch(t, commands.KindInstall)
	require.NoError(t, err)
	e.vcs.Reset()

	result, err := e.dispatch(t, commands.KindUpdate, "navajo")
	require.NoError(t, err)
	assert.Equal(t, 1, e.vcs.Count("pull"))
	require.Len(t, result.Report.Plugins, 1)
	assert.Equal(t, "navajo", result.Report.Plugins[0].Name)

	_, err = e.dispatch(t, commands.KindUpdate, "unknown")
	assert.True(t, errors.IsManifestError(err))
}

func TestUpdate_NotInstalled(t *testing.T) {
	e := newEnv(t)
	_, err := e.dispatch(t, commands.KindUpdate)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestUpdate_MissingManifest(t *testing.T) {
	e := newEnv(t)
	_, err := e.dispatch(t, commands.KindInstall)
	require.NoError(t, err)
	e.cfg.Manifest = "/home/user/.vimfiles/missing.yaml"

	_, err = e.dispatch(t, commands.KindUpdate)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestLoad))
}

func TestDispatch_UnknownCommand(t *testing.T) {
	e := newEnv(t)
	_, err := e.dispatch(t, commands.Kind("upgrade"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "install, remove, update")
}

func TestNew_Variants(t *testing.T) {
	e := newEnv(t)
	for _, kind := range commands.Kinds {
		cmd, err := commands.New(kind, e.cfg)
		require.NoError(t, err)
		assert.Equal(t, kind, cmd.Kind())
	}

	cmd, err := commands.New(commands.KindInstall, e.cfg)
	require.NoError(t, err)
	install, ok := cmd.(*commands.Install)
	require.True(t, ok)
	assert.Equal(t, "/home/user/.vimfiles/plugins.yaml", install.Sync.ManifestPath)
	assert.Equal(t, "/home/user/.vimfiles/dot-vim", install.Layout.ConfigRoot)
}
