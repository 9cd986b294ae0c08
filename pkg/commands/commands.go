// Package commands implements the top-level operations of vimfiles.
//
// The set is closed: Install, Remove and Update. Each variant carries only
// the settings it needs and is selected by Dispatch from the resolved
// configuration.
package commands

import (
	"context"
	"strings"

	"github.com/raykroeker/vimfiles/pkg/config"
	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/logging"
	"github.com/raykroeker/vimfiles/pkg/types"
	"github.com/raykroeker/vimfiles/pkg/vcs"
)

// Kind names a command.
type Kind string

const (
	KindInstall Kind = "install"
	KindRemove  Kind = "remove"
	KindUpdate  Kind = "update"
)

// Kinds lists every command in help order.
var Kinds = []Kind{KindInstall, KindRemove, KindUpdate}

// Deps are the side-effecting collaborators a command runs against.
type Deps struct {
	FS  types.FS
	VCS vcs.Client
}

// Command is implemented by Install, Remove and Update only.
type Command interface {
	Kind() Kind
	Run(ctx context.Context, deps Deps) (*types.CommandResult, error)
	sealed()
}

// New builds the command variant for kind from cfg.
func New(kind Kind, cfg *config.Config, plugins ...string) (Command, error) {
	layout, err := cfg.Layout()
	if err != nil {
		return nil, err
	}
	sync := SyncSettings{
		ManifestPath:    cfg.Manifest,
		Plugins:         plugins,
		Jobs:            cfg.Jobs,
		ContinueOnError: cfg.ContinueOnError,
		Fetch:           cfg.FetcherOptions(),
	}

	switch kind {
	case KindInstall:
		return &Install{Layout: layout, Force: cfg.Force, DryRun: cfg.DryRun, Sync: sync}, nil
	case KindRemove:
		return &Remove{Layout: layout, DryRun: cfg.DryRun}, nil
	case KindUpdate:
		return &Update{Layout: layout, DryRun: cfg.DryRun, Sync: sync}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "no such command: %s (expected one of %s)", kind, kindList()).
			WithDetail("command", string(kind))
	}
}

// Dispatch builds and runs the command for kind.
func Dispatch(ctx context.Context, kind Kind, cfg *config.Config, deps Deps, plugins ...string) (*types.CommandResult, error) {
	logger := logging.GetLogger("commands.dispatch")
	logger.Debug().
		Str("command", string(kind)).
		Str("installRoot", cfg.InstallRoot).
		Str("configRoot", cfg.ConfigRoot).
		Bool("dryRun", cfg.DryRun).
		Bool("force", cfg.Force).
		Msg("Dispatching command")

	cmd, err := New(kind, cfg, plugins...)
	if err != nil {
		return nil, err
	}

	result, err := cmd.Run(ctx, deps)
	if err != nil {
		logger.Error().
			Str("command", string(kind)).
			Err(err).
			Msg("Command execution failed")
		return result, err
	}
	return result, nil
}

func kindList() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
