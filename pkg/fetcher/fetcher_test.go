// pkg/fetcher/fetcher_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: MemoryFS, FakeVCS
// PURPOSE: Test clone/pull branching, the fetch cache and error capture

package fetcher_test

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/fetcher"
	"github.com/raykroeker/vimfiles/pkg/testutil"
	"github.com/raykroeker/vimfiles/pkg/types"
)

const installPath = "/vim/repositories/com.github/acme/theme-pack"

func newFetcher(opts fetcher.Options) (*fetcher.Fetcher, *testutil.MemoryFS, *testutil.FakeVCS) {
	fs := testutil.NewMemoryFS()
	client := testutil.NewFakeVCS(fs).WithRepo("git@github.com:acme/theme-pack", "colors/theme.vim")
	return fetcher.New(client, nil, fs, opts), fs, client
}

func TestSync_ClonesWhenAbsent(t *testing.T) {
	f, fs, client := newFetcher(fetcher.Options{})

	outcome, err := f.Sync(context.Background(), "acme", "theme-pack", installPath)
	require.NoError(t, err)

	assert.Equal(t, types.FetchCloned, outcome)
	assert.Equal(t, 1, client.Count("clone"))
	assert.Equal(t, 0, client.Count("pull"))
	assert.Equal(t, "git@github.com:acme/theme-pack", client.Calls()[0].Remote)
	assert.True(t, f.Cache().IsFetched(installPath))

	_, err = fs.Stat(installPath + "/colors/theme.vim")
	assert.NoError(t, err)
}

func TestSync_PullsWhenPresent(t *testing.T) {
	f, fs, client := newFetcher(fetcher.Options{RemoteName: "upstream", Branch: "main"})
	require.NoError(t, fs.MkdirAll(installPath, 0755))

	outcome, err := f.Sync(context.Background(), "acme", "theme-pack", installPath)
	require.NoError(t, err)

	assert.Equal(t, types.FetchPulled, outcome)
	assert.Equal(t, 0, client.Count("clone"))
	require.Equal(t, 1, client.Count("pull"))

	call := client.Calls()[0]
	assert.Equal(t, installPath, call.Path)
	assert.Equal(t, "upstream", call.Remote)
	assert.Equal(t, "main", call.Branch)
}

func TestSync_DefaultRemoteAndBranch(t *testing.T) {
	f, fs, client := newFetcher(fetcher.Options{})
	require.NoError(t, fs.MkdirAll(installPath, 0755))

	_, err := f.Sync(context.Background(), "acme", "theme-pack", installPath)
	require.NoError(t, err)

	call := client.Calls()[0]
	assert.Equal(t, "origin", call.Remote)
	assert.Equal(t, "master", call.Branch)
}

func TestSync_CacheHit(t *testing.T) {
	f, _, client := newFetcher(fetcher.Options{})
	ctx := context.Background()

	first, err := f.Sync(ctx, "acme", "theme-pack", installPath)
	require.NoError(t, err)
	second, err := f.Sync(ctx, "acme", "theme-pack", installPath+"/")
	require.NoError(t, err)

	assert.Equal(t, types.FetchCloned, first)
	assert.Equal(t, types.FetchCached, second)
	assert.Len(t, client.Calls(), 1)
}

func TestSync_CustomURLFormat(t *testing.T) {
	f, _, client := newFetcher(fetcher.Options{URLFormat: "https://git.example.com/{owner}/{repository}.git"})

	_, err := f.Sync(context.Background(), "acme", "theme-pack", installPath)
	require.NoError(t, err)
	assert.Equal(t, "https://git.example.com/acme/theme-pack.git", client.Calls()[0].Remote)
}

func TestSync_CloneFailure(t *testing.T) {
	f, fs, client := newFetcher(fetcher.Options{})
	client.CloneErr = stderrors.New("exit status 1")
	client.Output = "git@github.com: Permission denied (publickey).\nfatal: Could not read from remote repository.\n"

	_, err := f.Sync(context.Background(), "acme", "theme-pack", installPath)
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrFetchClone))
	assert.Contains(t, err.Error(), "Permission denied")
	assert.Equal(t, client.Output, errors.GetOutput(err))
	assert.False(t, f.Cache().IsFetched(installPath), "failed fetch must not be cached")

	// Only the pre-clone parent directory exists.
	_, err = fs.Stat("/vim/repositories/com.github/acme")
	assert.NoError(t, err)
	_, err = fs.Stat(installPath)
	assert.Error(t, err)
}

func TestSync_PullFailure(t *testing.T) {
	f, fs, client := newFetcher(fetcher.Options{})
	require.NoError(t, fs.MkdirAll(installPath, 0755))
	client.PullErr = stderrors.New("exit status 1")
	client.Output = "fatal: couldn't find remote ref master"

	_, err := f.Sync(context.Background(), "acme", "theme-pack", installPath)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFetchPull))
	assert.True(t, strings.HasSuffix(err.Error(), client.Output))
}

func TestSync_SetupFailure(t *testing.T) {
	f, fs, client := newFetcher(fetcher.Options{})
	fs.WithError("/vim/repositories/com.github/acme", stderrors.New("permission denied"))

	_, err := f.Sync(context.Background(), "acme", "theme-pack", installPath)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFetchSetup))
	assert.Empty(t, client.Calls())
}

func TestSync_DryRun(t *testing.T) {
	f, fs, client := newFetcher(fetcher.Options{DryRun: true})
	before := fs.Snapshot()

	outcome, err := f.Sync(context.Background(), "acme", "theme-pack", installPath)
	require.NoError(t, err)
	assert.Equal(t, types.FetchPlanned, outcome)

	outcome, err = f.Sync(context.Background(), "acme", "theme-pack", installPath)
	require.NoError(t, err)
	assert.Equal(t, types.FetchCached, outcome)

	assert.Empty(t, client.Calls())
	assert.Equal(t, before, fs.Snapshot())
}

func TestSync_Canceled(t *testing.T) {
	f, _, client := newFetcher(fetcher.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Sync(ctx, "acme", "theme-pack", installPath)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCanceled))
	assert.Empty(t, client.Calls())
}

func TestSync_ConcurrentSamePath(t *testing.T) {
	f, _, client := newFetcher(fetcher.Options{})

	var wg sync.WaitGroup
	outcomes := make([]types.FetchOutcome, 8)
	for i := range outcomes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			o, err := f.Sync(context.Background(), "acme", "theme-pack", installPath)
			assert.NoError(t, err)
			outcomes[i] = o
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, client.Count("clone"))
	cloned := 0
	for _, o := range outcomes {
		if o == types.FetchCloned {
			cloned++
		}
	}
	assert.Equal(t, 1, cloned)
}
