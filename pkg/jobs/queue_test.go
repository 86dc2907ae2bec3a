package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRequiresStart(t *testing.T) {
	q := NewQueue("warmup", func(context.Context, Job) error { return nil }, QueueConfig{})
	require.Error(t, q.Enqueue(Job{ID: "1"}))
}

func TestQueueCoalescesPendingKeys(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	q := NewQueue("warmup", func(ctx context.Context, job Job) error {
		atomic.AddInt32(&calls, 1)
		<-release
		return nil
	}, QueueConfig{Workers: 1})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "a", Key: "schedule:7"}))
	assert.ErrorIs(t, q.Enqueue(Job{ID: "b", Key: "schedule:7"}), ErrDuplicate)
	require.NoError(t, q.Enqueue(Job{ID: "c", Key: "schedule:8"}))

	close(release)
	require.Eventually(t, func() bool { return q.Pending() == 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	require.NoError(t, q.Enqueue(Job{ID: "d", Key: "schedule:7"}))
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	var calls int32
	done := make(chan struct{})
	q := NewQueue("warmup", func(ctx context.Context, job Job) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("transient")
		}
		close(done)
		return nil
	}, QueueConfig{Workers: 1, MaxRetries: 3, RetryDelay: time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "r", Key: "schedule:1"}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not retried")
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	require.Eventually(t, func() bool { return q.Pending() == 0 }, time.Second, 5*time.Millisecond)
}
