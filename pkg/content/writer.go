package content

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

var ErrClosed = errors.New("content store is closed")

type writeJob struct {
	coll   models.Collection
	op     Op
	id     string
	ctx    context.Context
	run    func(ctx context.Context) error
	result chan error
}

// writeQueue runs remote writes one at a time in submission order. The queue
// is unbounded so submit never blocks, even while the store lock is held and
// the backend hangs.
type writeQueue struct {
	log zerolog.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	pending []writeJob
	closed  bool
	done    chan struct{}
}

func newWriteQueue(log zerolog.Logger) *writeQueue {
	q := &writeQueue{
		log:  log,
		done: make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)
	go q.loop()
	return q
}

func (q *writeQueue) loop() {
	defer close(q.done)
	for {
		job, ok := q.next()
		if !ok {
			return
		}
		q.run(job)
	}
}

// next waits for a job. It reports false once the queue is closed and empty.
func (q *writeQueue) next() (writeJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.pending) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.pending) == 0 {
		return writeJob{}, false
	}
	job := q.pending[0]
	q.pending[0] = writeJob{}
	q.pending = q.pending[1:]
	return job, true
}

func (q *writeQueue) run(job writeJob) {
	if job.run == nil {
		job.result <- nil
		return
	}
	err := job.run(job.ctx)
	if err != nil {
		q.log.Error().Err(err).
			Str("collection", job.coll.String()).
			Str("op", string(job.op)).
			Str("id", job.id).
			Msg("remote write failed, local state kept")
	}
	if job.result != nil {
		job.result <- err
	}
}

// submit queues job and returns at once. The write runs with ctx's values but
// is never cancelled by it: once queued, a write always completes.
func (q *writeQueue) submit(ctx context.Context, job writeJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	job.ctx = context.WithoutCancel(ctx)
	q.pending = append(q.pending, job)
	q.cond.Signal()
	return nil
}

// wait returns the result of a submitted job. If ctx ends first the write
// still runs; only its result is ignored.
func wait(ctx context.Context, job writeJob) error {
	select {
	case err := <-job.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// flush waits until every write submitted before the call has finished.
func (q *writeQueue) flush(ctx context.Context) error {
	barrier := writeJob{result: make(chan error, 1)}
	if err := q.submit(ctx, barrier); err != nil {
		return err
	}
	return wait(ctx, barrier)
}

// close stops accepting writes and waits for queued ones to finish, or for
// ctx to end. Queued writes keep running after an early return.
func (q *writeQueue) close(ctx context.Context) error {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
