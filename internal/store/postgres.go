package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/model"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/observability"
)

// PostgresStore is the persistent RideStore backed by a pgx pool.
//
// Watch notifications are in-process: this client is the only writer to
// its cache, so re-querying and fanning out after each local insert is
// sufficient. No LISTEN/NOTIFY round-trip is needed.
type PostgresStore struct {
	pool *pgxpool.Pool
	bc   *broadcaster
}

// NewPostgresStore creates a store on an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, bc: newBroadcaster()}
}

// EnsureSchema creates the rides table when it does not exist yet.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS rides (
			id          uuid PRIMARY KEY,
			customer_id text             NOT NULL,
			ride_date   text             NOT NULL DEFAULT '',
			origin      text             NOT NULL,
			destination text             NOT NULL,
			distance    double precision NOT NULL,
			duration    text             NOT NULL,
			driver_id   bigint           NOT NULL,
			driver_name text             NOT NULL,
			value       double precision NOT NULL,
			created_at  timestamptz      NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure rides schema: %w", err)
	}
	_, err = p.pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_rides_customer ON rides (customer_id, driver_id)
	`)
	if err != nil {
		return fmt.Errorf("ensure rides index: %w", err)
	}
	return nil
}

// SaveRide inserts one stamped record and notifies watchers.
func (p *PostgresStore) SaveRide(ctx context.Context, rec model.RideRecord) (model.RideRecord, error) {
	rec = stamp(rec)

	_, err := p.pool.Exec(ctx, `
		INSERT INTO rides (
			id, customer_id, ride_date, origin, destination,
			distance, duration, driver_id, driver_name, value
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		rec.ID, rec.CustomerID, rec.Date, rec.Origin, rec.Destination,
		rec.Distance, rec.Duration, rec.DriverID, rec.DriverName, rec.Value,
	)
	if err != nil {
		return model.RideRecord{}, fmt.Errorf("save ride: %w", err)
	}

	observability.LocalSavesTotal.Inc()
	p.bc.publish(ctx, p.snapshot)
	return rec, nil
}

// Rides returns the customer's records in insertion order, optionally
// filtered by driver id.
func (p *PostgresStore) Rides(ctx context.Context, customerID string, driverID int64) ([]model.RideRecord, error) {
	query := `
		SELECT id, customer_id, ride_date, origin, destination,
		       distance, duration, driver_id, driver_name, value
		FROM rides
		WHERE customer_id = $1 AND ($2::bigint = 0 OR driver_id = $2)
		ORDER BY created_at ASC
	`
	rows, err := p.pool.Query(ctx, query, customerID, driverID)
	if err != nil {
		return nil, fmt.Errorf("query rides: %w", err)
	}
	defer rows.Close()

	recs := make([]model.RideRecord, 0)
	for rows.Next() {
		var r model.RideRecord
		if err := rows.Scan(
			&r.ID, &r.CustomerID, &r.Date, &r.Origin, &r.Destination,
			&r.Distance, &r.Duration, &r.DriverID, &r.DriverName, &r.Value,
		); err != nil {
			return nil, fmt.Errorf("scan ride: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Watch implements the live snapshot stream.
func (p *PostgresStore) Watch(ctx context.Context, customerID string, driverID int64) (<-chan []model.RideRecord, error) {
	return p.bc.watch(ctx, customerID, driverID, p.snapshot)
}

func (p *PostgresStore) snapshot(ctx context.Context, customerID string, driverID int64) ([]model.RideRecord, error) {
	return p.Rides(ctx, customerID, driverID)
}
