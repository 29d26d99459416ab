package controller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/model"
)

// Short windows keep the lifecycle tests fast while preserving the
// ordering the real 3s windows enforce.
const (
	testCooldown   = 40 * time.Millisecond
	testClearAfter = 120 * time.Millisecond
)

// fakeRepo is a controllable in-memory RideRepository. Gates let a test
// hold a call open to observe the Requesting phase.
type fakeRepo struct {
	mu sync.Mutex

	estimate      model.Estimate
	estimateErr   error
	estimateGate  chan struct{}
	estimateCalls int

	confirmOK    bool
	confirmErr   error
	confirmGate  chan struct{}
	confirmCalls int

	saveErr   error
	saveCalls int
	saved     []model.RideRecord

	localErr error
	localSub chan []model.RideRecord

	history      model.HistoryResponse
	historyErr   error
	historyGate  chan struct{}
	historyCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{confirmOK: true}
}

func (f *fakeRepo) GetEstimate(ctx context.Context, customerID, origin, destination string) (model.Estimate, error) {
	f.mu.Lock()
	f.estimateCalls++
	gate := f.estimateGate
	est, err := f.estimate, f.estimateErr
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return est, err
}

func (f *fakeRepo) ConfirmRide(ctx context.Context, req model.ConfirmRequest) (bool, error) {
	f.mu.Lock()
	f.confirmCalls++
	gate := f.confirmGate
	ok, err := f.confirmOK, f.confirmErr
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return ok, err
}

func (f *fakeRepo) SaveRideLocally(ctx context.Context, rec model.RideRecord) (model.RideRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	if f.saveErr != nil {
		return model.RideRecord{}, f.saveErr
	}
	rec.ID = "fake-id"
	f.saved = append(f.saved, rec)
	return rec, nil
}

func (f *fakeRepo) LocalHistory(ctx context.Context, customerID string, driverID int64) (<-chan []model.RideRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.localErr != nil {
		return nil, f.localErr
	}
	in := make(chan []model.RideRecord, 8)
	f.localSub = in

	out := make(chan []model.RideRecord)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case recs := <-in:
				select {
				case out <- recs:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (f *fakeRepo) RemoteHistory(ctx context.Context, customerID string, driverID int64) (model.HistoryResponse, error) {
	f.mu.Lock()
	f.historyCalls++
	gate := f.historyGate
	resp, err := f.history, f.historyErr
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return resp, err
}

// pushLocal emits one snapshot on the latest local subscription.
func (f *fakeRepo) pushLocal(t *testing.T, recs []model.RideRecord) {
	t.Helper()
	f.mu.Lock()
	sub := f.localSub
	f.mu.Unlock()
	if sub == nil {
		t.Fatal("no local subscription active")
	}
	sub <- recs
}

func (f *fakeRepo) calls(counter *int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *counter
}

// waitUntil polls cond until it holds or the deadline passes.
func waitUntil(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
