package dispatch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/chatsift/pkg/domain"
)

// pipelineFunc adapts a function to the Pipeline interface
type pipelineFunc func(ctx context.Context, msg domain.Message, profile domain.UserProfile, channel domain.ChannelInfo) (*domain.Record, error)

func (f pipelineFunc) Process(ctx context.Context, msg domain.Message, profile domain.UserProfile, channel domain.ChannelInfo) (*domain.Record, error) {
	return f(ctx, msg, profile, channel)
}

func TestProcessor_ProcessesQueuedJobs(t *testing.T) {
	var processed int32
	pipeline := pipelineFunc(func(ctx context.Context, msg domain.Message, profile domain.UserProfile, channel domain.ChannelInfo) (*domain.Record, error) {
		atomic.AddInt32(&processed, 1)
		return &domain.Record{MessageID: msg.ID}, nil
	})

	p := NewProcessor(pipeline, 2, 10)
	p.Start(context.Background())
	defer p.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, p.Enqueue(Job{Message: domain.Message{ID: "m"}}))
	}

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&processed) == 5
	}, 2*time.Second, 10*time.Millisecond)
}

func TestProcessor_EnqueueQueueFull(t *testing.T) {
	blocked := make(chan struct{})
	pipeline := pipelineFunc(func(ctx context.Context, msg domain.Message, profile domain.UserProfile, channel domain.ChannelInfo) (*domain.Record, error) {
		<-blocked
		return &domain.Record{}, nil
	})

	// single worker, queue of one: with the worker stuck, capacity is the
	// queue slot plus what the consumer already holds, everything past that
	// must be rejected
	p := NewProcessor(pipeline, 1, 1)
	p.Start(context.Background())
	defer func() {
		close(blocked)
		p.Stop()
	}()

	var accepted int
	var lastErr error
	require.Eventually(t, func() bool {
		err := p.Enqueue(Job{Message: domain.Message{ID: "m"}})
		if err == nil {
			accepted++
			return false
		}
		lastErr = err
		return true
	}, 2*time.Second, 5*time.Millisecond, "queue must eventually fill up")

	assert.ErrorIs(t, lastErr, ErrQueueFull)
	assert.LessOrEqual(t, accepted, 3, "bounded queue must stop accepting")
}

func TestProcessor_FailedJobDoesNotStopPool(t *testing.T) {
	var processed int32
	pipeline := pipelineFunc(func(ctx context.Context, msg domain.Message, profile domain.UserProfile, channel domain.ChannelInfo) (*domain.Record, error) {
		if atomic.AddInt32(&processed, 1) == 1 {
			return nil, errors.New("boom")
		}
		return &domain.Record{}, nil
	})

	p := NewProcessor(pipeline, 1, 10)
	p.Start(context.Background())
	defer p.Stop()

	for i := 0; i < 3; i++ {
		require.NoError(t, p.Enqueue(Job{Message: domain.Message{ID: "m"}}))
	}

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&processed) == 3
	}, 2*time.Second, 10*time.Millisecond)
}

func TestProcessor_StopWaitsForInFlight(t *testing.T) {
	started := make(chan struct{})
	var finished atomic.Bool
	pipeline := pipelineFunc(func(ctx context.Context, msg domain.Message, profile domain.UserProfile, channel domain.ChannelInfo) (*domain.Record, error) {
		close(started)
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
		return &domain.Record{}, nil
	})

	p := NewProcessor(pipeline, 1, 10)
	p.Start(context.Background())

	require.NoError(t, p.Enqueue(Job{Message: domain.Message{ID: "m"}}))
	<-started

	p.Stop()
	assert.True(t, finished.Load(), "in-flight job completes before stop returns")
}

func TestNewProcessor_Defaults(t *testing.T) {
	p := NewProcessor(nil, 0, 0)
	assert.Equal(t, 5, p.maxWorkers)
	assert.Equal(t, 100, cap(p.queue))
}
