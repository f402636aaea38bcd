package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharded_SerializesSameKey(t *testing.T) {
	l := NewSharded(0)
	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Run(context.Background(), "book-1", func(context.Context) error {
				v := counter
				time.Sleep(time.Microsecond)
				counter = v + 1
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestSharded_CancelledContext(t *testing.T) {
	l := NewSharded(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := l.Run(ctx, "book-1", func(context.Context) error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestShardFor_Stable(t *testing.T) {
	assert.Equal(t, shardFor("abc"), shardFor("abc"))
	assert.Less(t, shardFor("abc"), uint32(numShards))
}
