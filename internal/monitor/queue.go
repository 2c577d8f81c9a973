package monitor

import (
	"context"
	"sync"

	"github.com/arnv-dev/go-aqi-alerts/internal/models"
)

type ProcessFunc func(ctx context.Context, obs *models.AqiObservation)

// serialQueue runs exactly one worker goroutine, so observations for the
// location it serves are evaluated strictly in submission order. Evaluate
// is not safe to run concurrently for one location; this queue is what
// enforces that.
type serialQueue struct {
	jobs      chan *models.AqiObservation
	processor ProcessFunc
	wg        sync.WaitGroup
}

func newSerialQueue(bufferSize int, processor ProcessFunc) *serialQueue {
	return &serialQueue{
		jobs:      make(chan *models.AqiObservation, bufferSize),
		processor: processor,
	}
}

func (q *serialQueue) Start(ctx context.Context) {
	q.wg.Add(1)
	go q.worker(ctx)
}

func (q *serialQueue) worker(ctx context.Context) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case obs, ok := <-q.jobs:
			if !ok {
				return
			}
			q.processor(ctx, obs)
		}
	}
}

func (q *serialQueue) Submit(obs *models.AqiObservation) {
	q.jobs <- obs
}

func (q *serialQueue) Stop() {
	close(q.jobs)
	q.wg.Wait()
}
