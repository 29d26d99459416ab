package controller

import (
	"errors"
	"testing"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/model"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/usecase"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/validate"
)

func newConfirmController(repo *fakeRepo) *ConfirmController {
	return NewConfirmController(
		usecase.NewConfirmRide(repo),
		usecase.NewSaveRide(repo),
		testCooldown, testClearAfter,
	)
}

func confirmFixture() (model.ConfirmRequest, model.RideOption) {
	req := model.ConfirmRequest{
		CustomerID:  "CT01",
		Origin:      "Origin A",
		Destination: "Destination B",
		Distance:    3.2,
		Duration:    "12 mins",
		Driver:      model.Driver{ID: 1, Name: "Homer Simpson"},
		Value:       8.0,
	}
	opt := model.RideOption{ID: 1, Name: "Homer Simpson", Value: 8.0}
	return req, opt
}

func TestConfirmController_SuccessSavesExactlyOnce(t *testing.T) {
	repo := newFakeRepo()
	c := newConfirmController(repo)
	defer c.Close()

	req, opt := confirmFixture()
	c.Confirm(req, opt)

	waitUntil(t, "confirmation success", func() bool {
		return c.State().Confirmed.IsSuccess()
	})
	if ok := c.State().Confirmed.MustValue(); !ok {
		t.Error("Confirmed = false, want true")
	}
	waitUntil(t, "local save", func() bool {
		return repo.calls(&repo.saveCalls) == 1
	})

	repo.mu.Lock()
	saved := repo.saved[0]
	repo.mu.Unlock()
	if saved.CustomerID != req.CustomerID ||
		saved.Origin != req.Origin ||
		saved.Destination != req.Destination ||
		saved.Distance != req.Distance ||
		saved.Duration != req.Duration ||
		saved.DriverID != req.Driver.ID ||
		saved.DriverName != req.Driver.Name ||
		saved.Value != req.Value {
		t.Errorf("saved record %+v does not mirror request %+v", saved, req)
	}
}

func TestConfirmController_DriverTooFarSkipsEverything(t *testing.T) {
	repo := newFakeRepo()
	c := newConfirmController(repo)
	defer c.Close()

	req, opt := confirmFixture()
	req.Distance = 0.5 // below Homer Simpson's 1 km minimum
	c.Confirm(req, opt)

	waitUntil(t, "failed phase", func() bool {
		return c.State().Phase == PhaseFailed
	})
	st := c.State()
	if !errors.Is(st.Confirmed.Err(), validate.ErrInvalidDistance) {
		t.Errorf("err = %v, want %v", st.Confirmed.Err(), validate.ErrInvalidDistance)
	}
	if !st.Phase.RequestAllowed() {
		t.Error("request affordance must stay enabled after a validation failure")
	}
	if got := repo.calls(&repo.confirmCalls); got != 0 {
		t.Errorf("confirm calls = %d, want 0", got)
	}
	if got := repo.calls(&repo.saveCalls); got != 0 {
		t.Errorf("save calls = %d, want 0 (nothing persisted on rejection)", got)
	}
}

func TestConfirmController_RemoteFailureWritesNothing(t *testing.T) {
	repo := newFakeRepo()
	repo.confirmErr = errors.New("ride api unavailable")
	c := newConfirmController(repo)
	defer c.Close()

	req, opt := confirmFixture()
	c.Confirm(req, opt)

	waitUntil(t, "confirmation failure", func() bool {
		return c.State().Confirmed.IsFailure()
	})
	if got := repo.calls(&repo.saveCalls); got != 0 {
		t.Errorf("save calls = %d, want 0 (no local write on remote failure)", got)
	}
}

func TestConfirmController_ServerRejectionWritesNothing(t *testing.T) {
	repo := newFakeRepo()
	repo.confirmOK = false
	c := newConfirmController(repo)
	defer c.Close()

	req, opt := confirmFixture()
	c.Confirm(req, opt)

	waitUntil(t, "confirmation settled", func() bool {
		st := c.State()
		return st.Confirmed.IsSuccess() && !st.Confirmed.MustValue()
	})
	if got := repo.calls(&repo.saveCalls); got != 0 {
		t.Errorf("save calls = %d, want 0 (no local write when server declines)", got)
	}
}

func TestConfirmController_SaveFailureDoesNotMaskConfirmation(t *testing.T) {
	repo := newFakeRepo()
	repo.saveErr = errors.New("store full")
	c := newConfirmController(repo)
	defer c.Close()

	req, opt := confirmFixture()
	c.Confirm(req, opt)

	// The ride is confirmed server-side; the local save failure is only
	// logged and the screen still reports success.
	waitUntil(t, "confirmation success", func() bool {
		return c.State().Confirmed.IsSuccess()
	})
	if ok := c.State().Confirmed.MustValue(); !ok {
		t.Error("Confirmed = false, want true despite local save failure")
	}
}

func TestConfirmController_DebouncesWhileRequesting(t *testing.T) {
	repo := newFakeRepo()
	repo.confirmGate = make(chan struct{})
	c := newConfirmController(repo)
	defer c.Close()

	req, opt := confirmFixture()
	c.Confirm(req, opt)
	waitUntil(t, "requesting phase", func() bool {
		return c.State().Phase == PhaseRequesting
	})
	c.Confirm(req, opt)
	close(repo.confirmGate)

	waitUntil(t, "request settled", func() bool {
		p := c.State().Phase
		return p == PhaseCoolingDown || p == PhaseIdle
	})
	if got := repo.calls(&repo.confirmCalls); got != 1 {
		t.Errorf("confirm calls = %d, want 1", got)
	}
}
