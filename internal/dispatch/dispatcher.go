// Package dispatch delivers notification jobs outside the request path.
package dispatch

import (
	"log/slog"
	"sync"
	"time"

	"eventum/internal/domain"
)

// DefaultRetryBackoff is the wait between the first and second delivery
// attempt. Delivery is attempted at most twice per job.
const DefaultRetryBackoff = 60 * time.Second

// Dispatcher is a bounded worker pool consuming NotificationJob values.
// Callers fire and forget: Enqueue never blocks and no delivery outcome is
// reported back.
type Dispatcher struct {
	mailer  domain.Mailer
	logger  *slog.Logger
	backoff time.Duration
	workers int

	jobs chan *domain.NotificationJob
	stop chan struct{}
	wg   sync.WaitGroup

	stopOnce sync.Once
}

// New creates a Dispatcher with the given worker count and queue capacity.
// backoff <= 0 selects DefaultRetryBackoff.
func New(mailer domain.Mailer, logger *slog.Logger, workers, queueSize int, backoff time.Duration) *Dispatcher {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	if backoff <= 0 {
		backoff = DefaultRetryBackoff
	}
	return &Dispatcher{
		mailer:  mailer,
		logger:  logger,
		backoff: backoff,
		workers: workers,
		jobs:    make(chan *domain.NotificationJob, queueSize),
		stop:    make(chan struct{}),
	}
}

// Start launches the worker pool.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Enqueue hands a job to the pool. When the dispatcher is stopped or the
// queue is full the job is dropped and logged; delivery is best-effort.
func (d *Dispatcher) Enqueue(job *domain.NotificationJob) {
	select {
	case <-d.stop:
		d.logger.Warn("dispatcher stopped, dropping notification", "job_id", job.ID, "to", job.To)
		return
	default:
	}
	select {
	case d.jobs <- job:
	default:
		d.logger.Warn("notification queue full, dropping job", "job_id", job.ID, "to", job.To, "subject", job.Subject)
	}
}

// Stop closes intake and waits for in-flight deliveries. A job waiting out
// its retry backoff is released immediately so shutdown is bounded.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case <-d.stop:
			return
		case job := <-d.jobs:
			d.deliver(job)
		}
	}
}

// deliver attempts the send, waits the fixed backoff on failure, and retries
// exactly once. A second failure is logged and the job discarded.
func (d *Dispatcher) deliver(job *domain.NotificationJob) {
	err := d.mailer.Send(job.To, job.Subject, job.HTMLBody, job.TextBody)
	if err == nil {
		return
	}
	d.logger.Warn("notification delivery failed, retrying", "job_id", job.ID, "to", job.To, "err", err)

	select {
	case <-d.stop:
		d.logger.Warn("dispatcher stopping, abandoning retry", "job_id", job.ID, "to", job.To)
		return
	case <-time.After(d.backoff):
	}

	if err := d.mailer.Send(job.To, job.Subject, job.HTMLBody, job.TextBody); err != nil {
		d.logger.Error("notification delivery failed twice, giving up", "job_id", job.ID, "to", job.To, "err", err)
	}
}
