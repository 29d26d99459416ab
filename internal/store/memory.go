package store

import (
	"context"
	"sync"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/model"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/observability"
)

// MemoryStore is an in-process RideStore. It backs the client when no
// Postgres DSN is configured and is the store used throughout the tests.
type MemoryStore struct {
	mu   sync.RWMutex
	recs []model.RideRecord

	bc *broadcaster
}

// NewMemoryStore creates an empty in-memory ride store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bc: newBroadcaster()}
}

// SaveRide appends one stamped record and notifies watchers.
func (m *MemoryStore) SaveRide(ctx context.Context, rec model.RideRecord) (model.RideRecord, error) {
	rec = stamp(rec)

	m.mu.Lock()
	m.recs = append(m.recs, rec)
	m.mu.Unlock()

	observability.LocalSavesTotal.Inc()
	m.bc.publish(ctx, m.snapshot)
	return rec, nil
}

// Rides returns the records for a customer in insertion order,
// optionally filtered by driver id.
func (m *MemoryStore) Rides(_ context.Context, customerID string, driverID int64) ([]model.RideRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.RideRecord, 0)
	for _, r := range m.recs {
		if r.CustomerID != customerID {
			continue
		}
		if driverID != NoDriverFilter && r.DriverID != driverID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Watch implements the live snapshot stream.
func (m *MemoryStore) Watch(ctx context.Context, customerID string, driverID int64) (<-chan []model.RideRecord, error) {
	return m.bc.watch(ctx, customerID, driverID, m.snapshot)
}

func (m *MemoryStore) snapshot(ctx context.Context, customerID string, driverID int64) ([]model.RideRecord, error) {
	return m.Rides(ctx, customerID, driverID)
}
