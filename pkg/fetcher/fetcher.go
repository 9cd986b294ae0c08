// Package fetcher brings one plugin repository up to date on disk: a clone
// when the install path is absent, a pull when it is present, and nothing
// when the path was already synchronized earlier in the same run.
package fetcher

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/fetchcache"
	"github.com/raykroeker/vimfiles/pkg/logging"
	"github.com/raykroeker/vimfiles/pkg/types"
	"github.com/raykroeker/vimfiles/pkg/vcs"
)

const (
	DefaultRemoteName = "origin"
	DefaultBranch     = "master"
)

// Options controls how remotes are addressed.
type Options struct {
	// URLFormat expands {owner} and {repository} into the clone remote.
	URLFormat  string
	RemoteName string
	Branch     string
	DryRun     bool
}

// Fetcher synchronizes repositories through a vcs.Client.
type Fetcher struct {
	client vcs.Client
	cache  *fetchcache.Cache
	fs     types.FS
	opts   Options
	logger zerolog.Logger
}

// New creates a fetcher. A nil cache gets a fresh one.
func New(client vcs.Client, cache *fetchcache.Cache, fs types.FS, opts Options) *Fetcher {
	if cache == nil {
		cache = fetchcache.New()
	}
	if opts.URLFormat == "" {
		opts.URLFormat = vcs.DefaultURLFormat
	}
	if opts.RemoteName == "" {
		opts.RemoteName = DefaultRemoteName
	}
	if opts.Branch == "" {
		opts.Branch = DefaultBranch
	}
	return &Fetcher{
		client: client,
		cache:  cache,
		fs:     fs,
		opts:   opts,
		logger: logging.GetLogger("fetcher"),
	}
}

// Cache returns the fetch cache shared by every Sync call.
func (f *Fetcher) Cache() *fetchcache.Cache {
	return f.cache
}

// Sync fetches owner/repository into installPath. A path fetched earlier
// in the run is a cache hit and returns types.FetchCached.
func (f *Fetcher) Sync(ctx context.Context, owner, repository, installPath string) (types.FetchOutcome, error) {
	var outcome types.FetchOutcome
	hit, err := f.cache.Do(installPath, func() error {
		var err error
		outcome, err = f.fetch(ctx, owner, repository, installPath)
		return err
	})
	if err != nil {
		return "", err
	}
	if hit {
		f.logger.Debug().
			Str("path", installPath).
			Str("repository", owner+"/"+repository).
			Msg("cache hit")
		return types.FetchCached, nil
	}
	return outcome, nil
}

func (f *Fetcher) fetch(ctx context.Context, owner, repository, installPath string) (types.FetchOutcome, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, errors.ErrCanceled, "fetch canceled")
	}

	remote := vcs.RemoteURL(f.opts.URLFormat, owner, repository)
	logger := f.logger.With().
		Str("repository", owner+"/"+repository).
		Str("path", installPath).
		Logger()

	exists, err := f.exists(installPath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFetchSetup, "cannot inspect %s", installPath).
			WithDetail("path", installPath)
	}

	if f.opts.DryRun {
		if exists {
			logger.Info().Str("remote", f.opts.RemoteName).Str("branch", f.opts.Branch).Msg("Would pull")
		} else {
			logger.Info().Str("remote", remote).Msg("Would clone")
		}
		return types.FetchPlanned, nil
	}

	if !exists {
		if err := f.fs.MkdirAll(filepath.Dir(installPath), 0755); err != nil {
			return "", errors.Wrapf(err, errors.ErrFetchSetup, "cannot create %s", filepath.Dir(installPath)).
				WithDetail("path", installPath)
		}
		logger.Info().Str("remote", remote).Msg("Cloning")
		if err := f.client.Clone(ctx, remote, installPath); err != nil {
			return "", f.wrap(ctx, err, errors.ErrFetchClone, "clone", owner, repository, installPath)
		}
		return types.FetchCloned, nil
	}

	logger.Info().Msg("Pulling")
	if err := f.client.Pull(ctx, installPath, f.opts.RemoteName, f.opts.Branch); err != nil {
		return "", f.wrap(ctx, err, errors.ErrFetchPull, "pull", owner, repository, installPath)
	}
	return types.FetchPulled, nil
}

func (f *Fetcher) exists(path string) (bool, error) {
	_, err := f.fs.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case stderrors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

func (f *Fetcher) wrap(ctx context.Context, err error, code errors.ErrorCode, op, owner, repository, installPath string) error {
	if ctx.Err() != nil {
		code = errors.ErrCanceled
	}
	wrapped := errors.Wrapf(err, code, "%s %s/%s", op, owner, repository).
		WithDetail("path", installPath)

	var cmdErr *vcs.CommandError
	if stderrors.As(err, &cmdErr) {
		wrapped.WithDetail(errors.DetailOutput, cmdErr.Output)
	}
	return wrapped
}
