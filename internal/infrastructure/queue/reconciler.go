package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/frienemy/social-api/internal/api/metrics"
	"github.com/frienemy/social-api/internal/core/domain"
	"github.com/frienemy/social-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Journal abstracts the durable record of pending tasks (Redis). A task is
// recorded before it is enqueued and cleared once it has been applied or
// dropped, so an interrupted process leaves a trace of unrepaired writes.
type Journal interface {
	Record(ctx context.Context, task ports.ReconcileTask) error
	Clear(ctx context.Context, task ports.ReconcileTask) error
}

// Reconciler repairs the relationship graph asynchronously. Tasks are routed
// to a fixed set of workers by consistent hashing on the party id, which
// keeps repairs for the same record ordered.
type Reconciler struct {
	workers []chan ports.ReconcileTask
	repo    ports.UserRepository
	journal Journal
	log     zerolog.Logger
}

// NewReconciler creates a Reconciler with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewReconciler(numWorkers int, repo ports.UserRepository, journal Journal, log zerolog.Logger) *Reconciler {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &Reconciler{
		workers: make([]chan ports.ReconcileTask, numWorkers),
		repo:    repo,
		journal: journal,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan ports.ReconcileTask, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *Reconciler) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Enqueue journals the task and hands it to the worker owning its party id.
// Non-blocking up to channelBuffer capacity.
func (r *Reconciler) Enqueue(task ports.ReconcileTask) {
	if err := r.journal.Record(context.Background(), task); err != nil {
		r.log.Warn().Err(err).Str("party_id", task.PartyID).Msg("failed to journal reconcile task")
	}
	r.workers[r.shardIndex(task.PartyID)] <- task
}

// shardIndex maps a party id deterministically to a worker index.
func (r *Reconciler) shardIndex(partyID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(partyID))
	return int(h.Sum32()) % len(r.workers)
}

func (r *Reconciler) runWorker(ctx context.Context, id int, ch <-chan ports.ReconcileTask) {
	depth := metrics.ReconcileQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			r.process(ctx, id, task)
		}
	}
}

func (r *Reconciler) process(ctx context.Context, workerID int, task ports.ReconcileTask) {
	err := r.apply(ctx, task)
	switch {
	case err == nil:
		metrics.ReconcileTasksTotal.WithLabelValues(string(task.Kind), "applied").Inc()
	case errors.Is(err, domain.ErrUserNotFound):
		// The party vanished between scheduling and repair; there is
		// nothing left to fix.
		metrics.ReconcileTasksTotal.WithLabelValues(string(task.Kind), "dropped").Inc()
		r.log.Debug().Str("party_id", task.PartyID).Str("kind", string(task.Kind)).Msg("reconcile task dropped, party gone")
	default:
		metrics.ReconcileTasksTotal.WithLabelValues(string(task.Kind), "failed").Inc()
		r.log.Error().Err(err).
			Str("party_id", task.PartyID).
			Int("worker_id", workerID).
			Msg("reconcile task failed")
		return // journal entry stays for inspection
	}

	if err := r.journal.Clear(ctx, task); err != nil {
		r.log.Warn().Err(err).Str("party_id", task.PartyID).Msg("failed to clear journal entry")
	}
}

func (r *Reconciler) apply(ctx context.Context, task ports.ReconcileTask) error {
	if task.Kind == ports.ReconcilePurge {
		return r.repo.PurgeRefs(ctx, task.PartyID)
	}

	party, err := r.repo.FindByID(ctx, task.PartyID)
	if err != nil {
		return err
	}

	add := task.Kind == ports.ReconcileAdd
	if task.Set == ports.SetFriends {
		if add {
			party.Friends = domain.AddRef(party.Friends, task.OtherID)
		} else {
			party.Friends = domain.RemoveRef(party.Friends, task.OtherID)
		}
	} else {
		if add {
			party.Enemies = domain.AddRef(party.Enemies, task.OtherID)
		} else {
			party.Enemies = domain.RemoveRef(party.Enemies, task.OtherID)
		}
	}

	_, err = r.repo.Update(ctx, party)
	return err
}
