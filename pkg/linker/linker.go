// Package linker reconciles the symlinks a plugin declares against the
// configuration tree. Existing entries are never touched; missing parent
// directories are created; nothing is rolled back on failure.
package linker

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/logging"
	"github.com/raykroeker/vimfiles/pkg/manifest"
	"github.com/raykroeker/vimfiles/pkg/paths"
	"github.com/raykroeker/vimfiles/pkg/types"
)

// Reconciler creates missing links from a repository into the
// configuration tree.
type Reconciler struct {
	fs     types.FS
	dryRun bool
	logger zerolog.Logger
}

// New creates a reconciler. In dry-run mode the filesystem is only read.
func New(fs types.FS, dryRun bool) *Reconciler {
	return &Reconciler{
		fs:     fs,
		dryRun: dryRun,
		logger: logging.GetLogger("linker"),
	}
}

// Resolve returns the absolute (source, target) pair of a link.
func Resolve(installPath, configRoot string, link manifest.LinkSpec) (source, target string, err error) {
	src, tgt := link.Resolve()
	if err := paths.ValidateRelative(src); err != nil {
		return "", "", errors.Wrapf(err, errors.ErrLinkInvalid, "invalid link source %q", src)
	}
	if err := paths.ValidateRelative(tgt); err != nil {
		return "", "", errors.Wrapf(err, errors.ErrLinkInvalid, "invalid link target %q", tgt)
	}
	return filepath.Join(installPath, src), filepath.Join(configRoot, tgt), nil
}

// Reconcile processes links in order. The returned results cover every
// link attempted; on error the failing link is the last entry and the
// remaining links are not attempted.
func (r *Reconciler) Reconcile(ctx context.Context, installPath string, links []manifest.LinkSpec, configRoot string) ([]types.LinkResult, error) {
	results := make([]types.LinkResult, 0, len(links))

	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return results, errors.Wrap(err, errors.ErrCanceled, "link reconciliation canceled")
		}

		source, target, err := Resolve(installPath, configRoot, link)
		if err != nil {
			rel, _ := link.Resolve()
			results = append(results, types.LinkResult{Source: rel, Status: types.LinkFailed})
			return results, err
		}

		status, err := r.reconcileOne(source, target)
		results = append(results, types.LinkResult{Source: source, Target: target, Status: status})
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func (r *Reconciler) reconcileOne(source, target string) (types.LinkStatus, error) {
	logger := r.logger.With().Str("source", source).Str("target", target).Logger()

	if !r.dryRun {
		dir := filepath.Dir(target)
		if err := r.fs.MkdirAll(dir, 0755); err != nil {
			return types.LinkFailed, errors.Wrapf(err, errors.ErrLinkDir, "cannot create directory %s", dir).
				WithDetail("target", target)
		}
	}

	exists, err := r.exists(target)
	if err != nil {
		return types.LinkFailed, errors.Wrapf(err, errors.ErrLinkCreate, "cannot inspect %s", target).
			WithDetail("target", target)
	}
	if exists {
		logger.Debug().Msg("Link target exists, skipping")
		return types.LinkSkipped, nil
	}

	if r.dryRun {
		logger.Info().Msg("Would link")
		return types.LinkPlanned, nil
	}

	if err := r.fs.Symlink(source, target); err != nil {
		// Lost a race with another writer: first write wins.
		if stderrors.Is(err, os.ErrExist) {
			logger.Debug().Msg("Link target appeared, skipping")
			return types.LinkSkipped, nil
		}
		return types.LinkFailed, errors.Wrapf(err, errors.ErrLinkCreate, "cannot link %s", target).
			WithDetails(map[string]interface{}{"source": source, "target": target})
	}

	logger.Info().Msg("Linked")
	return types.LinkCreated, nil
}

// exists uses Lstat so dangling symlinks count as present.
func (r *Reconciler) exists(path string) (bool, error) {
	_, err := r.fs.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case stderrors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		// In dry run a missing ancestor that is a file surfaces as ENOTDIR.
		if isNotDir(err) {
			return false, nil
		}
		return false, err
	}
}
