// Package types defines the interfaces and result structures shared by the
// fetcher, the link reconciler, the synchronizer and the output renderers.
package types
