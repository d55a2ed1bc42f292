package queue

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-service/internal/api/metrics"
	"github.com/inkwell/blog-service/internal/core/domain"
	"github.com/inkwell/blog-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes post audit entries to a fixed set of workers sharded by
// post id, guaranteeing per-post ordering of the audit trail.
type Dispatcher struct {
	workers []chan domain.Activity
	repo    ports.ActivityRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.ActivityRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Activity, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record sends an audit entry to the worker responsible for its post.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Record(activity domain.Activity) {
	idx := d.shardIndex(activity.PostID)
	d.workers[idx] <- activity
	metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a post id deterministically to a worker index.
func (d *Dispatcher) shardIndex(postID int64) int {
	idx := int(postID % int64(len(d.workers)))
	if idx < 0 {
		idx += len(d.workers)
	}
	return idx
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	for {
		select {
		case <-ctx.Done():
			return
		case activity, ok := <-ch:
			if !ok {
				return
			}
			if err := d.repo.Insert(ctx, &activity); err != nil {
				metrics.ActivityErrorsTotal.Inc()
				d.log.Error().Err(err).
					Int64("post_id", activity.PostID).
					Int("worker_id", id).
					Msg("audit entry persistence failed")
			}
			metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
