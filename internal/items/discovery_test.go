package items

import (
	"sync"
	"sync/atomic"
	"testing"

	"codeberg.org/ashpool/sysbar/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrComputeRunsScanOnce(t *testing.T) {
	cache := NewCache()

	scans := 0
	for i := 0; i < 5; i++ {
		v, err := cache.GetOrCompute("zones", func() (any, error) {
			scans++
			return []string{"a", "b"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, v)
	}

	assert.Equal(t, 1, scans)
}

func TestGetOrComputeConcurrentFirstAccess(t *testing.T) {
	cache := NewCache()

	var scans atomic.Int32
	var wg sync.WaitGroup
	results := make([]any, 32)

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := cache.GetOrCompute("zones", func() (any, error) {
				scans.Add(1)
				return "scanned", nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), scans.Load(), "concurrent first access must trigger exactly one scan")
	for _, v := range results {
		assert.Equal(t, "scanned", v)
	}
}

func TestGetOrComputeMemoizesFailure(t *testing.T) {
	cache := NewCache()
	errFactory := errors.New()

	scans := 0
	for i := 0; i < 3; i++ {
		_, err := cache.GetOrCompute("missing", func() (any, error) {
			scans++
			return nil, errFactory.New(ErrNoSensors)
		})
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, ErrNoSensors))
	}

	assert.Equal(t, 1, scans)
}

func TestGetOrComputeKeysAreIndependent(t *testing.T) {
	cache := NewCache()

	a, err := cache.GetOrCompute("a", func() (any, error) { return 1, nil })
	require.NoError(t, err)
	b, err := cache.GetOrCompute("b", func() (any, error) { return 2, nil })
	require.NoError(t, err)

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestCachedTypedHelper(t *testing.T) {
	cache := NewCache()

	refs, err := cached(cache, "sensors", func() ([]sensorRef, error) {
		return []sensorRef{{name: "acpitz", path: "/dev/null"}}, nil
	})
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "acpitz", refs[0].name)
}
