package commands

import (
	"context"
	stderrors "errors"
	"os"

	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/paths"
	"github.com/raykroeker/vimfiles/pkg/types"
)

// Update synchronizes the plugins of an existing installation.
type Update struct {
	Layout paths.Layout
	DryRun bool
	Sync   SyncSettings
}

func (c *Update) Kind() Kind { return KindUpdate }
func (c *Update) sealed()    {}

// Run performs the update.
func (c *Update) Run(ctx context.Context, deps Deps) (*types.CommandResult, error) {
	result := &types.CommandResult{Command: string(KindUpdate), DryRun: c.DryRun, Actions: []types.HomeAction{}}

	if _, err := deps.FS.Stat(c.Layout.RepositoriesRoot()); err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return result, errors.Newf(errors.ErrInvalidInput,
				"%s is not installed; run `vimfiles install` first", c.Layout.InstallRoot).
				WithDetail("path", c.Layout.RepositoriesRoot())
		}
		return result, errors.Wrapf(err, errors.ErrInvalidInput, "cannot inspect %s", c.Layout.RepositoriesRoot())
	}

	report, err := runSync(ctx, deps, c.Layout, c.Sync, string(KindUpdate), c.DryRun)
	result.Report = report
	return result, err
}
