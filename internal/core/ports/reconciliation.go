package ports

// ReconcileKind identifies the compensating action a task performs.
type ReconcileKind string

const (
	// ReconcileAdd re-applies a reciprocal set insertion that failed.
	ReconcileAdd ReconcileKind = "reciprocal-add"
	// ReconcileRemove re-applies a reciprocal set removal that failed.
	ReconcileRemove ReconcileKind = "reciprocal-remove"
	// ReconcilePurge strips a deleted user's id from every other record.
	ReconcilePurge ReconcileKind = "purge-refs"
)

// RelationSet names which side of the graph a task touches.
type RelationSet string

const (
	SetFriends RelationSet = "friends"
	SetEnemies RelationSet = "enemies"
)

// ReconcileTask is a pending repair of the relationship graph. PartyID is
// the record to fix; OtherID is the reference being added or removed
// (unused for purges).
type ReconcileTask struct {
	Kind    ReconcileKind
	PartyID string
	OtherID string
	Set     RelationSet
}

// Reconciler accepts tasks for asynchronous, per-party-ordered execution.
type Reconciler interface {
	Enqueue(task ReconcileTask)
}
