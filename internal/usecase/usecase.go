// Package usecase holds one use case per user intent. Each use case
// applies the relevant validator, invokes exactly one repository
// operation, and converts the outcome into the typed Result at this
// boundary, so no failure propagates past a use-case call as a fault.
package usecase

import (
	"context"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/model"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/repository"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/result"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/validate"
)

// ─── GetEstimate ────────────────────────────────────────────

// GetEstimate requests a price/time quote for a prospective ride.
type GetEstimate struct {
	repo repository.RideRepository
}

func NewGetEstimate(repo repository.RideRepository) *GetEstimate {
	return &GetEstimate{repo: repo}
}

// Execute validates the inputs and, only when they pass, issues exactly
// one estimate request.
func (uc *GetEstimate) Execute(ctx context.Context, customerID, origin, destination string) result.Result[model.Estimate] {
	if v := validate.EstimateInputs(customerID, origin, destination); v.IsFailure() {
		return result.Err[model.Estimate](v.Err())
	}
	est, err := uc.repo.GetEstimate(ctx, customerID, origin, destination)
	if err != nil {
		return result.Err[model.Estimate](err)
	}
	return result.Ok(est)
}

// ─── ConfirmRide ────────────────────────────────────────────

// ConfirmRide commits one selected ride option.
type ConfirmRide struct {
	repo repository.RideRepository
}

func NewConfirmRide(repo repository.RideRepository) *ConfirmRide {
	return &ConfirmRide{repo: repo}
}

// Execute checks the driver's distance capability against the ride and,
// when accepted, confirms the ride remotely.
func (uc *ConfirmRide) Execute(ctx context.Context, req model.ConfirmRequest, option model.RideOption) result.Result[bool] {
	if v := validate.DriverDistance(option, req.Distance); v.IsFailure() {
		return result.Err[bool](v.Err())
	}
	ok, err := uc.repo.ConfirmRide(ctx, req)
	if err != nil {
		return result.Err[bool](err)
	}
	return result.Ok(ok)
}

// ─── SaveRide ───────────────────────────────────────────────

// SaveRide persists a confirmed ride in the local store.
type SaveRide struct {
	repo repository.RideRepository
}

func NewSaveRide(repo repository.RideRepository) *SaveRide {
	return &SaveRide{repo: repo}
}

func (uc *SaveRide) Execute(ctx context.Context, rec model.RideRecord) result.Empty {
	if _, err := uc.repo.SaveRideLocally(ctx, rec); err != nil {
		return result.Err[result.Unit](err)
	}
	return result.Done()
}

// ─── LocalHistory ───────────────────────────────────────────

// LocalHistory exposes the local store's live snapshot stream.
type LocalHistory struct {
	repo repository.RideRepository
}

func NewLocalHistory(repo repository.RideRepository) *LocalHistory {
	return &LocalHistory{repo: repo}
}

// Execute returns a stream of snapshot results for the filter. The
// stream closes when ctx ends; a validation or subscription failure
// yields a single failure result.
func (uc *LocalHistory) Execute(ctx context.Context, customerID string, driverID int64) <-chan result.Result[[]model.RideRecord] {
	out := make(chan result.Result[[]model.RideRecord], 1)

	if v := validate.HistoryInputs(customerID); v.IsFailure() {
		out <- result.Err[[]model.RideRecord](v.Err())
		close(out)
		return out
	}

	src, err := uc.repo.LocalHistory(ctx, customerID, driverID)
	if err != nil {
		out <- result.Err[[]model.RideRecord](err)
		close(out)
		return out
	}

	go func() {
		defer close(out)
		for recs := range src {
			out <- result.Ok(recs)
		}
	}()
	return out
}

// ─── RemoteHistory ──────────────────────────────────────────

// RemoteHistory fetches the server-confirmed ride history.
type RemoteHistory struct {
	repo repository.RideRepository
}

func NewRemoteHistory(repo repository.RideRepository) *RemoteHistory {
	return &RemoteHistory{repo: repo}
}

func (uc *RemoteHistory) Execute(ctx context.Context, customerID string, driverID int64) result.Result[model.HistoryResponse] {
	if v := validate.HistoryInputs(customerID); v.IsFailure() {
		return result.Err[model.HistoryResponse](v.Err())
	}
	resp, err := uc.repo.RemoteHistory(ctx, customerID, driverID)
	if err != nil {
		return result.Err[model.HistoryResponse](err)
	}
	return result.Ok(resp)
}
