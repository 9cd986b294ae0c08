// Package vcs wraps the version-control process behind a small Client
// interface so callers never build git command lines themselves.
//
// GitClient shells out to git with prompting disabled: clone runs in the
// caller's directory, pull runs with its working directory scoped to the
// repository for that call only. Failures come back as *CommandError with
// the combined stdout/stderr captured verbatim.
package vcs
