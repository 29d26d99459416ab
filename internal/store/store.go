// Package store provides the persisted local ride cache. Records are
// insert-only: a ride is written once after a successful confirmation
// and is never updated or deleted by the app.
//
// Queries are live: Watch emits the current snapshot on subscribe and a
// full replacement snapshot after every insert, so screen controllers
// can treat the local store as a stream.
package store

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/model"
)

// NoDriverFilter disables the driver filter on queries and watches.
const NoDriverFilter int64 = 0

// RideStore is the local store boundary consumed by the repository.
type RideStore interface {
	// SaveRide inserts exactly one new record with an auto-assigned id
	// and returns the stored record. It never updates an existing row.
	SaveRide(ctx context.Context, rec model.RideRecord) (model.RideRecord, error)

	// Rides returns the current snapshot for a customer, optionally
	// filtered by driver id.
	Rides(ctx context.Context, customerID string, driverID int64) ([]model.RideRecord, error)

	// Watch returns a live stream of full snapshots for the filter.
	// The current snapshot is emitted immediately; a fresh snapshot is
	// emitted after every insert. The channel closes when ctx ends.
	Watch(ctx context.Context, customerID string, driverID int64) (<-chan []model.RideRecord, error)
}

// stamp fills in the store-assigned fields of a new record: a uuid id
// and, when the caller supplied none, the insertion timestamp.
func stamp(rec model.RideRecord) model.RideRecord {
	rec.ID = uuid.NewString()
	if rec.Date == "" {
		rec.Date = time.Now().Format("2006-01-02T15:04:05")
	}
	return rec
}

// ─── Watch fan-out ──────────────────────────────────────────

// snapshotFunc re-queries the snapshot for one subscriber's filter.
type snapshotFunc func(ctx context.Context, customerID string, driverID int64) ([]model.RideRecord, error)

type subscriber struct {
	ch         chan []model.RideRecord
	customerID string
	driverID   int64
}

// broadcaster tracks Watch subscribers and fans full snapshots out to
// them after each insert. Both store implementations embed one.
type broadcaster struct {
	mu   sync.Mutex
	subs map[int64]*subscriber
	next int64
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[int64]*subscriber)}
}

// watch registers a subscriber, pushes the initial snapshot, and tears
// the subscription down when ctx ends.
func (b *broadcaster) watch(ctx context.Context, customerID string, driverID int64, snapshot snapshotFunc) (<-chan []model.RideRecord, error) {
	initial, err := snapshot(ctx, customerID, driverID)
	if err != nil {
		return nil, err
	}

	sub := &subscriber{
		ch:         make(chan []model.RideRecord, 1),
		customerID: customerID,
		driverID:   driverID,
	}
	sub.ch <- initial

	b.mu.Lock()
	b.next++
	id := b.next
	b.subs[id] = sub
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
		close(sub.ch)
	}()

	return sub.ch, nil
}

// publish re-queries every subscriber's filter and pushes the fresh
// snapshot. A slow consumer only ever sees the latest snapshot: the
// stale buffered value is dropped before the new one is sent.
func (b *broadcaster) publish(ctx context.Context, snapshot snapshotFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		recs, err := snapshot(ctx, sub.customerID, sub.driverID)
		if err != nil {
			log.Printf("[store] snapshot for watcher failed: %v", err)
			continue
		}
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- recs
	}
}
