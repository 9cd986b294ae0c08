// Package synchronizer drives one run over a manifest: for every plugin, in
// declaration order, fetch its repository and reconcile its links.
//
// The default is strictly sequential and stops at the first error. Two
// opt-in extensions exist: ContinueOnError records failures per plugin and
// keeps going, and Jobs > 1 processes plugins concurrently with a bounded
// errgroup. In both modes a plugin's links are reconciled only after its
// own fetch returned, and the report keeps manifest order.
package synchronizer

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/fetchcache"
	"github.com/raykroeker/vimfiles/pkg/logging"
	"github.com/raykroeker/vimfiles/pkg/manifest"
	"github.com/raykroeker/vimfiles/pkg/paths"
	"github.com/raykroeker/vimfiles/pkg/types"
)

// RepositoryFetcher is satisfied by *fetcher.Fetcher.
type RepositoryFetcher interface {
	Sync(ctx context.Context, owner, repository, installPath string) (types.FetchOutcome, error)
}

type cacheOwner interface {
	Cache() *fetchcache.Cache
}

// LinkReconciler is satisfied by *linker.Reconciler.
type LinkReconciler interface {
	Reconcile(ctx context.Context, installPath string, links []manifest.LinkSpec, configRoot string) ([]types.LinkResult, error)
}

// Options tunes a run.
type Options struct {
	// Command names the run in the report.
	Command         string
	Jobs            int
	ContinueOnError bool
	DryRun          bool
}

// Synchronizer owns the collaborators of one run.
type Synchronizer struct {
	fetcher RepositoryFetcher
	linker  LinkReconciler
	layout  paths.Layout
	opts    Options
	logger  zerolog.Logger
}

// New creates a synchronizer.
func New(f RepositoryFetcher, r LinkReconciler, layout paths.Layout, opts Options) *Synchronizer {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	if opts.Command == "" {
		opts.Command = "update"
	}
	return &Synchronizer{
		fetcher: f,
		linker:  r,
		layout:  layout,
		opts:    opts,
		logger:  logging.GetLogger("synchronizer"),
	}
}

// Run synchronizes every plugin of m. The report is returned even when the
// run fails; plugins never reached are marked types.FetchSkipped.
func (s *Synchronizer) Run(ctx context.Context, m *manifest.Manifest) (*types.Report, error) {
	done := logging.LogOperationStart(s.logger, "sync")
	defer done()

	entries := m.Entries()
	report := &types.Report{
		Command:   s.opts.Command,
		DryRun:    s.opts.DryRun,
		Plugins:   make([]types.PluginReport, len(entries)),
		StartedAt: time.Now(),
	}
	for i, e := range entries {
		report.Plugins[i] = types.PluginReport{
			Name:        e.Name,
			Owner:       e.Owner,
			Repository:  e.Repository,
			InstallPath: s.layout.InstallPath(e.Owner, e.Repository),
			Links:       []types.LinkResult{},
		}
	}

	s.logger.Info().
		Int("plugins", len(entries)).
		Int("jobs", s.opts.Jobs).
		Bool("dryRun", s.opts.DryRun).
		Bool("continueOnError", s.opts.ContinueOnError).
		Msg("Synchronizing plugins")

	var err error
	if s.opts.Jobs > 1 {
		err = s.runConcurrent(ctx, entries, report)
	} else {
		err = s.runSequential(ctx, entries, report)
	}

	for i := range report.Plugins {
		if p := &report.Plugins[i]; p.Fetch == "" && p.Err == nil {
			p.Fetch = types.FetchSkipped
		}
	}
	report.Duration = time.Since(report.StartedAt)
	ev := s.logger.Debug().Dur("duration", report.Duration)
	if c, ok := s.fetcher.(cacheOwner); ok {
		ev = ev.Int("fetchedPaths", c.Cache().Len())
	}
	ev.Msg("Synchronization finished")
	return report, err
}

func (s *Synchronizer) runSequential(ctx context.Context, entries []manifest.PluginEntry, report *types.Report) error {
	var errs []error
	for i := range entries {
		if err := ctx.Err(); err != nil {
			errs = append(errs, errors.Wrap(err, errors.ErrCanceled, "sync canceled"))
			break
		}
		if err := s.syncPlugin(ctx, entries[i], &report.Plugins[i]); err != nil {
			errs = append(errs, err)
			if !s.opts.ContinueOnError {
				break
			}
		}
	}
	return joinErrors(errs)
}

func (s *Synchronizer) runConcurrent(ctx context.Context, entries []manifest.PluginEntry, report *types.Report) error {
	var (
		mu   sync.Mutex
		errs []error
	)

	g, gctx := errgroup.WithContext(ctx)
	if s.opts.ContinueOnError {
		// Failures must not cancel sibling plugins.
		g, gctx = &errgroup.Group{}, ctx
	}
	g.SetLimit(s.opts.Jobs)

	for i := range entries {
		i := i
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			err := s.syncPlugin(gctx, entries[i], &report.Plugins[i])
			if err == nil {
				return nil
			}
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			if s.opts.ContinueOnError {
				return nil
			}
			return err
		})
	}

	first := g.Wait()
	if err := ctx.Err(); err != nil {
		return joinErrors(append(errs, errors.Wrap(err, errors.ErrCanceled, "sync canceled")))
	}
	if s.opts.ContinueOnError {
		return joinErrors(orderedErrors(report))
	}
	return first
}

// syncPlugin fetches then links one plugin, recording into pr.
func (s *Synchronizer) syncPlugin(ctx context.Context, e manifest.PluginEntry, pr *types.PluginReport) error {
	logger := s.logger.With().Str("plugin", e.Name).Str("repository", e.Slug()).Logger()

	outcome, err := s.fetcher.Sync(ctx, e.Owner, e.Repository, pr.InstallPath)
	if err != nil {
		return s.fail(logger, e, pr, err)
	}
	pr.Fetch = outcome

	links, err := s.linker.Reconcile(ctx, pr.InstallPath, e.Links, s.layout.ConfigRoot)
	pr.Links = append(pr.Links, links...)
	if err != nil {
		return s.fail(logger, e, pr, err)
	}

	logger.Info().
		Str("fetch", string(outcome)).
		Int("created", pr.CountLinks(types.LinkCreated)).
		Int("skipped", pr.CountLinks(types.LinkSkipped)).
		Msg("Plugin synchronized")
	return nil
}

func (s *Synchronizer) fail(logger zerolog.Logger, e manifest.PluginEntry, pr *types.PluginReport, err error) error {
	var vErr *errors.VimfilesError
	if stderrors.As(err, &vErr) {
		vErr.WithDetail("plugin", e.Name)
	}
	err = fmt.Errorf("%s: %w", e.Name, err)
	pr.Err = err
	pr.Error = err.Error()
	logger.Error().Err(err).Msg("Plugin failed")
	return err
}

func orderedErrors(report *types.Report) []error {
	var errs []error
	for i := range report.Plugins {
		if err := report.Plugins[i].Err; err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return stderrors.Join(errs...)
	}
}
