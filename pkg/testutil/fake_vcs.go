package testutil

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/raykroeker/vimfiles/pkg/types"
	"github.com/raykroeker/vimfiles/pkg/vcs"
)

// VCSCall records one invocation of FakeVCS.
type VCSCall struct {
	Op     string // "clone" or "pull"
	Remote string
	Path   string
	Branch string
}

// FakeVCS is a recording vcs.Client. Clone materializes the files
// registered for the remote inside FS so link reconciliation has real
// sources to point at.
type FakeVCS struct {
	FS types.FS

	// Files maps a remote to repository-relative files created on clone.
	Files map[string][]string

	// CloneErr / PullErr, when set, make the operation fail with a
	// *vcs.CommandError carrying Output.
	CloneErr error
	PullErr  error
	Output   string

	mu    sync.Mutex
	calls []VCSCall
}

var _ vcs.Client = (*FakeVCS)(nil)

// NewFakeVCS creates a fake client writing into fs.
func NewFakeVCS(fs types.FS) *FakeVCS {
	return &FakeVCS{FS: fs, Files: make(map[string][]string)}
}

// WithRepo registers files for remote.
func (f *FakeVCS) WithRepo(remote string, files ...string) *FakeVCS {
	f.Files[remote] = append(f.Files[remote], files...)
	return f
}

func (f *FakeVCS) Clone(ctx context.Context, remote, path string) error {
	f.record(VCSCall{Op: "clone", Remote: remote, Path: path})
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.CloneErr != nil {
		return &vcs.CommandError{Args: []string{"git", "clone", remote, path}, Output: f.Output, Err: f.CloneErr}
	}
	if f.FS == nil {
		return nil
	}
	if err := f.FS.MkdirAll(path, 0755); err != nil {
		return err
	}
	for _, rel := range f.Files[remote] {
		p := filepath.Join(path, rel)
		if err := f.FS.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return err
		}
		if err := f.FS.WriteFile(p, []byte(rel), 0644); err != nil {
			return err
		}
	}
	return nil
}

func (f *FakeVCS) Pull(ctx context.Context, path, remoteName, branch string) error {
	f.record(VCSCall{Op: "pull", Remote: remoteName, Path: path, Branch: branch})
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.PullErr != nil {
		return &vcs.CommandError{Args: []string{"git", "pull", remoteName, branch}, Dir: path, Output: f.Output, Err: f.PullErr}
	}
	if f.FS != nil {
		if _, err := f.FS.Stat(path); err != nil {
			return errors.New("pull outside a repository: " + path)
		}
	}
	return nil
}

func (f *FakeVCS) record(c VCSCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

// Calls returns a copy of the recorded invocations.
func (f *FakeVCS) Calls() []VCSCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]VCSCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// Count returns how many invocations of op were recorded.
func (f *FakeVCS) Count(op string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls.
func (f *FakeVCS) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}
