package commands

import (
	"context"

	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/logging"
	"github.com/raykroeker/vimfiles/pkg/paths"
	"github.com/raykroeker/vimfiles/pkg/types"
)

// Install creates the install tree, synchronizes every plugin and then
// activates the configuration by linking ~/.vim and ~/.vimrc.
type Install struct {
	Layout paths.Layout
	// Force replaces existing ~/.vim and ~/.vimrc symlinks. Regular files
	// and directories are never replaced.
	Force  bool
	DryRun bool
	Sync   SyncSettings
}

func (c *Install) Kind() Kind { return KindInstall }
func (c *Install) sealed()    {}

// Run performs the installation.
func (c *Install) Run(ctx context.Context, deps Deps) (*types.CommandResult, error) {
	logger := logging.GetLogger("commands.install")
	result := &types.CommandResult{Command: string(KindInstall), DryRun: c.DryRun, Actions: []types.HomeAction{}}

	home := []struct{ path, target string }{
		{c.Layout.HomeVimDir(), c.Layout.ConfigRoot},
		{c.Layout.HomeVimrc(), c.Layout.VimrcPath()},
	}

	if c.Layout.InstallRoot == c.Layout.HomeVimDir() || c.Layout.ConfigRoot == c.Layout.HomeVimDir() {
		return result, errors.Newf(errors.ErrInstallConflict,
			"invalid directory %s: the install tree cannot live at %s", c.Layout.InstallRoot, c.Layout.HomeVimDir()).
			WithDetail("path", c.Layout.HomeVimDir())
	}

	// Check every conflict before touching anything.
	replace := make([]bool, len(home))
	for i, h := range home {
		kind, err := inspect(deps.FS, h.path)
		if err != nil {
			return result, errors.Wrapf(err, errors.ErrInstallConflict, "cannot inspect %s", h.path)
		}
		switch {
		case kind == entryMissing:
		case kind == entrySymlink && c.Force:
			replace[i] = true
		case kind == entrySymlink:
			return result, errors.Newf(errors.ErrInstallConflict, "file exists: %s (use --force to replace the link)", h.path).
				WithDetail("path", h.path)
		default:
			return result, errors.Newf(errors.ErrInstallConflict, "file exists: %s", h.path).
				WithDetail("path", h.path)
		}
	}

	for _, dir := range []string{c.Layout.NamespaceRoot(), c.Layout.ConfigRoot} {
		result.Actions = append(result.Actions, types.HomeAction{Action: types.ActionMkdir, Path: dir, Planned: c.DryRun})
		if c.DryRun {
			continue
		}
		if err := deps.FS.MkdirAll(dir, 0755); err != nil {
			return result, errors.Wrapf(err, errors.ErrLinkDir, "cannot create %s", dir).WithDetail("path", dir)
		}
	}

	report, err := runSync(ctx, deps, c.Layout, c.Sync, string(KindInstall), c.DryRun)
	result.Report = report
	if err != nil {
		return result, err
	}

	for i, h := range home {
		if replace[i] {
			result.Actions = append(result.Actions, types.HomeAction{Action: types.ActionUnlink, Path: h.path, Planned: c.DryRun})
			if !c.DryRun {
				if err := deps.FS.Remove(h.path); err != nil {
					return result, errors.Wrapf(err, errors.ErrInstallConflict, "cannot replace %s", h.path)
				}
			}
		}

		result.Actions = append(result.Actions, types.HomeAction{Action: types.ActionLink, Path: h.path, Target: h.target, Planned: c.DryRun})
		if c.DryRun {
			logger.Info().Str("path", h.path).Str("target", h.target).Msg("Would link")
			continue
		}
		if err := deps.FS.Symlink(h.target, h.path); err != nil {
			return result, errors.Wrapf(err, errors.ErrLinkCreate, "cannot link %s", h.path).
				WithDetails(map[string]interface{}{"path": h.path, "target": h.target})
		}
		logger.Info().Str("path", h.path).Str("target", h.target).Msg("Linked")
	}

	return result, nil
}
