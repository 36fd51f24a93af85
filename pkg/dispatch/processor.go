package dispatch

import (
	"context"
	"errors"
	"sync"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/chatsift/pkg/domain"
)

// ErrQueueFull is returned by Enqueue when the inbound queue is at capacity
var ErrQueueFull = errors.New("message queue full")

// Pipeline processes a single message end to end
type Pipeline interface {
	Process(ctx context.Context, msg domain.Message, profile domain.UserProfile, channel domain.ChannelInfo) (*domain.Record, error)
}

// Job is one queued message with its triage context
type Job struct {
	Message domain.Message
	Profile domain.UserProfile
	Channel domain.ChannelInfo
}

// Processor consumes queued messages and runs them through the pipeline with
// bounded concurrency. Messages for the same user may be in flight at the
// same time; ordering is guaranteed only within a single message's pipeline.
type Processor struct {
	pipeline   Pipeline
	queue      chan Job
	maxWorkers int
	wg         sync.WaitGroup
	cancel     context.CancelFunc
}

// NewProcessor creates a processor with the given worker and queue limits
func NewProcessor(pipeline Pipeline, maxWorkers, queueSize int) *Processor {
	if maxWorkers == 0 {
		maxWorkers = 5
	}
	if queueSize == 0 {
		queueSize = 100
	}
	return &Processor{
		pipeline:   pipeline,
		queue:      make(chan Job, queueSize),
		maxWorkers: maxWorkers,
	}
}

// Start begins consuming the queue
func (p *Processor) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.maxWorkers)

		for {
			select {
			case <-gctx.Done():
				_ = g.Wait()
				return
			case job := <-p.queue:
				g.Go(func() error {
					if _, err := p.pipeline.Process(gctx, job.Message, job.Profile, job.Channel); err != nil {
						lgr.Printf("[ERROR] failed to process message %s: %v", job.Message.ID, err)
					}
					return nil // a failed message never stops the pool
				})
			}
		}
	}()

	lgr.Printf("[INFO] processor started with %d workers, queue size %d", p.maxWorkers, cap(p.queue))
}

// Stop cancels the workers and waits for in-flight messages to finish
func (p *Processor) Stop() {
	lgr.Printf("[INFO] stopping processor...")
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	lgr.Printf("[INFO] processor stopped")
}

// Enqueue adds a message to the queue without blocking. Returns ErrQueueFull
// when the queue is at capacity so the caller can push back on the sender.
func (p *Processor) Enqueue(job Job) error {
	select {
	case p.queue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}
