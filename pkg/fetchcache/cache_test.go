package fetchcache_test

import (
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/raykroeker/vimfiles/pkg/fetchcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_MarkAndQuery(t *testing.T) {
	c := fetchcache.New()
	path := "/tmp/vim/repositories/com.github/acme/theme-pack"

	assert.False(t, c.IsFetched(path))
	c.MarkFetched(path)
	assert.True(t, c.IsFetched(path))

	// keys are normalized
	assert.True(t, c.IsFetched(path+"/"))
	assert.True(t, c.IsFetched(filepath.Join(path, "..", "theme-pack")))
	assert.Equal(t, 1, c.Len())
}

func TestCache_Do(t *testing.T) {
	c := fetchcache.New()
	calls := 0
	fn := func() error { calls++; return nil }

	hit, err := c.Do("/repo/a", fn)
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = c.Do("/repo/a", fn)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, calls)
}

func TestCache_DoFailureLeavesPathUnfetched(t *testing.T) {
	c := fetchcache.New()
	boom := errors.New("clone failed")

	hit, err := c.Do("/repo/a", func() error { return boom })
	assert.False(t, hit)
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.IsFetched("/repo/a"))
	assert.Equal(t, 0, c.Len())

	hit, err = c.Do("/repo/a", func() error { return nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.True(t, c.IsFetched("/repo/a"))
}

func TestCache_DoConcurrentSamePath(t *testing.T) {
	c := fetchcache.New()
	var calls atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Do("/repo/shared", func() error {
				calls.Add(1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}
