package commands

import (
	"context"

	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/logging"
	"github.com/raykroeker/vimfiles/pkg/paths"
	"github.com/raykroeker/vimfiles/pkg/types"
)

// Remove deactivates the configuration and deletes fetched repositories and
// the configuration tree. The install root itself, the manifest and
// dot-vimrc are left alone.
type Remove struct {
	Layout paths.Layout
	DryRun bool
}

func (c *Remove) Kind() Kind { return KindRemove }
func (c *Remove) sealed()    {}

// Run performs the removal.
func (c *Remove) Run(ctx context.Context, deps Deps) (*types.CommandResult, error) {
	logger := logging.GetLogger("commands.remove")
	result := &types.CommandResult{Command: string(KindRemove), DryRun: c.DryRun, Actions: []types.HomeAction{}}

	for _, path := range []string{c.Layout.HomeVimDir(), c.Layout.HomeVimrc()} {
		kind, err := inspect(deps.FS, path)
		if err != nil {
			return result, errors.Wrapf(err, errors.ErrRemove, "cannot inspect %s", path)
		}
		switch kind {
		case entryMissing:
			continue
		case entryOther:
			logger.Warn().Str("path", path).Msg("Not a symlink, leaving in place")
			result.Actions = append(result.Actions, types.HomeAction{Action: types.ActionKeep, Path: path})
			continue
		}

		result.Actions = append(result.Actions, types.HomeAction{Action: types.ActionUnlink, Path: path, Planned: c.DryRun})
		if c.DryRun {
			continue
		}
		if err := deps.FS.Remove(path); err != nil {
			return result, errors.Wrapf(err, errors.ErrRemove, "cannot unlink %s", path).WithDetail("path", path)
		}
	}

	for _, dir := range []string{c.Layout.RepositoriesRoot(), c.Layout.ConfigRoot} {
		if err := ctx.Err(); err != nil {
			return result, errors.Wrap(err, errors.ErrCanceled, "remove canceled")
		}
		result.Actions = append(result.Actions, types.HomeAction{Action: types.ActionRemove, Path: dir, Planned: c.DryRun})
		if c.DryRun {
			continue
		}
		if err := deps.FS.RemoveAll(dir); err != nil {
			return result, errors.Wrapf(err, errors.ErrRemove, "cannot remove %s", dir).WithDetail("path", dir)
		}
		logger.Info().Str("path", dir).Msg("Removed")
	}

	return result, nil
}
