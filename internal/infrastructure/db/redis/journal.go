package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/frienemy/social-api/internal/core/ports"
)

const journalTTL = 24 * time.Hour

// ReconcileJournal records pending graph repairs in Redis so an interrupted
// process leaves evidence of writes that were never reconciled.
// Key format: reconcile:<kind>:<set>:<party_id>:<other_id>
type ReconcileJournal struct {
	client *redis.Client
}

// NewReconcileJournal creates a ReconcileJournal wrapping the given client.
func NewReconcileJournal(client *redis.Client) *ReconcileJournal {
	return &ReconcileJournal{client: client}
}

// Record stores the task with a TTL; entries that are never cleared expire
// instead of accumulating forever.
func (j *ReconcileJournal) Record(ctx context.Context, task ports.ReconcileTask) error {
	return j.client.Set(ctx, j.key(task), "1", journalTTL).Err()
}

// Clear removes the task entry after it has been applied or dropped.
func (j *ReconcileJournal) Clear(ctx context.Context, task ports.ReconcileTask) error {
	return j.client.Del(ctx, j.key(task)).Err()
}

func (j *ReconcileJournal) key(task ports.ReconcileTask) string {
	return fmt.Sprintf("reconcile:%s:%s:%s:%s", task.Kind, task.Set, task.PartyID, task.OtherID)
}
