package payroll

import "context"

// SnapshotRepository is the payroll history store. It is append-only:
// there is no update or delete.
type SnapshotRepository interface {
	// Create assigns ID and CreatedAt. It returns ErrSnapshotExists when a
	// snapshot for the same employee and month is already stored.
	Create(ctx context.Context, snapshot Snapshot) (Snapshot, error)
	GetByID(ctx context.Context, id string) (Snapshot, error)
	List(ctx context.Context, filter SnapshotFilter) ([]Snapshot, int64, error)
}

// EventPublisher announces committed snapshots to other services.
type EventPublisher interface {
	PublishSnapshotCommitted(ctx context.Context, event SnapshotCommittedEvent) error
}

// Transactor runs fn as one unit of work. Readers called with txCtx see a
// single consistent view of their data source.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}
