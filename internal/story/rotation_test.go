package story

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRotation(t *testing.T) {
	t.Run("empty pool is an error", func(t *testing.T) {
		_, err := NewRotation(nil)
		assert.Error(t, err)
	})

	t.Run("copies the endpoint slice", func(t *testing.T) {
		endpoints := []string{"http://a", "http://b"}
		r, err := NewRotation(endpoints)
		require.NoError(t, err)

		endpoints[0] = "http://mutated"
		assert.Equal(t, "http://a", r.Current())
	})
}

func TestRotation_Advance(t *testing.T) {
	r, err := NewRotation([]string{"http://a", "http://b", "http://c"})
	require.NoError(t, err)

	assert.Equal(t, "http://a", r.Current())
	assert.Equal(t, "http://b", r.Advance())
	assert.Equal(t, "http://c", r.Advance())

	// Wraps back to the start.
	assert.Equal(t, "http://a", r.Advance())
	assert.Equal(t, "http://a", r.Current())
}

func TestRotation_ConcurrentAdvance(t *testing.T) {
	const goroutines = 100

	r, err := NewRotation([]string{"http://a", "http://b", "http://c"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Advance()
		}()
	}
	wg.Wait()

	// No advance is lost: 100 steps over 3 endpoints lands on index 1.
	assert.Equal(t, "http://b", r.Current())
}

func TestRotation_Size(t *testing.T) {
	r, err := NewRotation([]string{"http://a", "http://b"})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Size())
}
