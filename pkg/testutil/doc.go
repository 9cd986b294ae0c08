// Package testutil provides test doubles shared across packages.
//
//   - MemoryFS: an in-memory types.FS with symlinks, error injection and
//     snapshots for comparing trees before and after an operation
//   - FakeVCS: a recording vcs.Client whose clones materialize files in a
//     types.FS
package testutil
