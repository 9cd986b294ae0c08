// Package filesystem provides the OS-backed implementation of types.FS used
// by the fetcher, the link reconciler and the install/remove commands.
package filesystem
