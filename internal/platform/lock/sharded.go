// Package lock provides keyed mutual exclusion for in-process stores.
package lock

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"
)

const (
	numShards      = 128
	defaultTimeout = 5 * time.Second
)

// Sharded spreads keys over a fixed set of mutexes. Two keys may share a
// shard; a key never maps to two shards.
type Sharded struct {
	shards  [numShards]sync.Mutex
	timeout time.Duration
}

// NewSharded returns a Sharded lock. A zero timeout uses the default.
func NewSharded(timeout time.Duration) *Sharded {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Sharded{timeout: timeout}
}

// Run executes fn while holding the shard for key.
func (s *Sharded) Run(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("lock %s aborted: %w", key, err)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	mu := &s.shards[shardFor(key)]
	mu.Lock()
	defer mu.Unlock()

	// the context may have expired while waiting
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("lock %s aborted: %w", key, err)
	}
	return fn(ctx)
}

func shardFor(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32() % numShards
}
