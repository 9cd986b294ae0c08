package commands

import (
	"context"

	"github.com/raykroeker/vimfiles/pkg/fetchcache"
	"github.com/raykroeker/vimfiles/pkg/fetcher"
	"github.com/raykroeker/vimfiles/pkg/linker"
	"github.com/raykroeker/vimfiles/pkg/manifest"
	"github.com/raykroeker/vimfiles/pkg/paths"
	"github.com/raykroeker/vimfiles/pkg/synchronizer"
	"github.com/raykroeker/vimfiles/pkg/types"
)

// SyncSettings is what install and update need to run the synchronizer.
type SyncSettings struct {
	ManifestPath    string
	Plugins         []string
	Jobs            int
	ContinueOnError bool
	Fetch           fetcher.Options
}

// runSync loads the manifest and synchronizes it. The report is returned
// even when the run fails part way.
func runSync(ctx context.Context, deps Deps, layout paths.Layout, s SyncSettings, command string, dryRun bool) (*types.Report, error) {
	m, err := manifest.LoadFS(deps.FS, s.ManifestPath)
	if err != nil {
		return nil, err
	}
	if m, err = m.Select(s.Plugins...); err != nil {
		return nil, err
	}

	fetchOpts := s.Fetch
	fetchOpts.DryRun = dryRun

	f := fetcher.New(deps.VCS, fetchcache.New(), deps.FS, fetchOpts)
	r := linker.New(deps.FS, dryRun)
	sync := synchronizer.New(f, r, layout, synchronizer.Options{
		Command:         command,
		Jobs:            s.Jobs,
		ContinueOnError: s.ContinueOnError,
		DryRun:          dryRun,
	})
	return sync.Run(ctx, m)
}
