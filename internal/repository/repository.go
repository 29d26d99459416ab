// Package repository composes the local ride store and the remote ride
// API behind the single interface consumed by use cases.
//
// The repository performs no business logic: validation and error-to-
// message mapping live elsewhere, and every transport/store failure is
// surfaced untranslated in kind.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/model"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/remote"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/store"
)

// RideRepository is the single data boundary the use cases depend on.
type RideRepository interface {
	GetEstimate(ctx context.Context, customerID, origin, destination string) (model.Estimate, error)
	ConfirmRide(ctx context.Context, req model.ConfirmRequest) (bool, error)
	SaveRideLocally(ctx context.Context, rec model.RideRecord) (model.RideRecord, error)
	LocalHistory(ctx context.Context, customerID string, driverID int64) (<-chan []model.RideRecord, error)
	RemoteHistory(ctx context.Context, customerID string, driverID int64) (model.HistoryResponse, error)
}

// ─── Implementation ─────────────────────────────────────────

const historyKeyPrefix = "taxiapp:history:"

// Repo wires the local store, the remote service, and an optional Redis
// cache for remote history responses.
type Repo struct {
	store store.RideStore
	api   remote.Service

	// cache is optional; nil disables the history fast path.
	cache    *redis.Client
	cacheTTL time.Duration
}

// New creates a repository. Pass a nil cache to disable response caching.
func New(s store.RideStore, api remote.Service, cache *redis.Client, cacheTTL time.Duration) *Repo {
	return &Repo{store: s, api: api, cache: cache, cacheTTL: cacheTTL}
}

// GetEstimate delegates to the remote estimate operation.
func (r *Repo) GetEstimate(ctx context.Context, customerID, origin, destination string) (model.Estimate, error) {
	return r.api.Estimate(ctx, customerID, origin, destination)
}

// ConfirmRide delegates to the remote confirm operation and, on
// success, drops the customer's cached history so the next fetch sees
// the new ride.
func (r *Repo) ConfirmRide(ctx context.Context, req model.ConfirmRequest) (bool, error) {
	ok, err := r.api.Confirm(ctx, req)
	if err != nil {
		return false, err
	}
	r.invalidateHistory(ctx, req.CustomerID, req.Driver.ID)
	return ok, nil
}

// SaveRideLocally persists exactly one new record in the local store.
func (r *Repo) SaveRideLocally(ctx context.Context, rec model.RideRecord) (model.RideRecord, error) {
	return r.store.SaveRide(ctx, rec)
}

// LocalHistory returns the live local snapshot stream for the filter.
func (r *Repo) LocalHistory(ctx context.Context, customerID string, driverID int64) (<-chan []model.RideRecord, error) {
	return r.store.Watch(ctx, customerID, driverID)
}

// RemoteHistory fetches the server-side history for a customer.
//
// Strategy (when a cache is configured):
//  1. Try Redis first (fast path).
//  2. On miss, hit the ride API, then cache the response with a short
//     TTL. Cache writes are fire-and-forget.
func (r *Repo) RemoteHistory(ctx context.Context, customerID string, driverID int64) (model.HistoryResponse, error) {
	key := historyKey(customerID, driverID)

	if r.cache != nil {
		if raw, err := r.cache.Get(ctx, key).Bytes(); err == nil {
			var cached model.HistoryResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
			// Corrupt entry: drop it and fall through to the API.
			_ = r.cache.Del(ctx, key).Err()
		}
	}

	driverParam := ""
	if driverID != store.NoDriverFilter {
		driverParam = strconv.FormatInt(driverID, 10)
	}
	resp, err := r.api.History(ctx, customerID, driverParam)
	if err != nil {
		return model.HistoryResponse{}, err
	}

	if r.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := r.cache.Set(ctx, key, raw, r.cacheTTL).Err(); err != nil {
				log.Printf("[repository] cache history: %v", err)
			}
		}
	}
	return resp, nil
}

func (r *Repo) invalidateHistory(ctx context.Context, customerID string, driverID int64) {
	if r.cache == nil {
		return
	}
	keys := []string{
		historyKey(customerID, store.NoDriverFilter),
		historyKey(customerID, driverID),
	}
	if err := r.cache.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[repository] invalidate history cache: %v", err)
	}
}

func historyKey(customerID string, driverID int64) string {
	return fmt.Sprintf("%s%s:%d", historyKeyPrefix, customerID, driverID)
}
