package guard_test

import (
	"sync"
	"testing"

	"agent-portal-service/src/pkg/guard"

	"github.com/stretchr/testify/assert"
)

func TestTryAcquireBlocksSecondCaller(t *testing.T) {
	g := guard.New()

	assert.True(t, g.TryAcquire("cart:add:user-1"))
	assert.False(t, g.TryAcquire("cart:add:user-1"))

	// a different key is an independent slot
	assert.True(t, g.TryAcquire("cart:add:user-2"))

	g.Release("cart:add:user-1")
	assert.True(t, g.TryAcquire("cart:add:user-1"))
}

func TestConcurrentAcquireAdmitsExactlyOne(t *testing.T) {
	g := guard.New()

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryAcquire("bulk:paste:user-1") {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, admitted)
}
