package vcs

import (
	"context"
	"fmt"
	"strings"
)

// Client is the capability the fetcher needs from a version-control tool.
type Client interface {
	// Clone performs a full clone of remote into path.
	Clone(ctx context.Context, remote, path string) error
	// Pull updates the repository at path from remoteName/branch.
	Pull(ctx context.Context, path, remoteName, branch string) error
}

// DefaultURLFormat builds a non-interactive ssh remote for GitHub.
const DefaultURLFormat = "git@github.com:{owner}/{repository}"

// RemoteURL expands {owner} and {repository} in format.
func RemoteURL(format, owner, repository string) string {
	if format == "" {
		format = DefaultURLFormat
	}
	r := strings.NewReplacer("{owner}", owner, "{repository}", repository)
	return r.Replace(format)
}

// CommandError is returned when the version-control process exits non-zero
// or cannot be started.
type CommandError struct {
	Args   []string
	Dir    string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
