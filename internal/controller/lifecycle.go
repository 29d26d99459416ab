package controller

import (
	"context"
	"time"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/result"
)

// lifecycle drives one screen's request state machine. All methods must
// run on the owning controller's loop.
//
// Stale results are kept out of state with a generation counter: every
// new request and every cancellation bumps gen, and a completion or
// timer whose captured generation no longer matches is dropped without
// effect.
type lifecycle[T any] struct {
	loop       *loop
	cooldown   time.Duration // request affordance disabled window
	clearAfter time.Duration // error display window

	phase  Phase
	gen    uint64
	cancel context.CancelFunc
	res    result.Result[T]

	// publish pushes the owning controller's derived state out.
	publish func()
	// onFinish, when set, folds a non-stale completion into the
	// controller's own state before the phase transition is published.
	onFinish func(result.Result[T])
	// onClear, when set, runs when the error display window elapses or
	// the user dismisses the error.
	onClear func()
}

// request runs the Validating step synchronously and, when it passes,
// launches call on a background goroutine. Ignored while a request is
// in flight or the screen is cooling down.
func (lc *lifecycle[T]) request(validate func() error, call func(ctx context.Context) result.Result[T]) {
	if !lc.phase.RequestAllowed() {
		return
	}
	lc.gen++
	gen := lc.gen

	lc.phase = PhaseValidating
	lc.publish()

	if err := validate(); err != nil {
		// Straight to Failed, no cooldown: the request affordance
		// stays enabled after a validation failure.
		lc.res = result.Err[T](err)
		lc.phase = PhaseFailed
		lc.scheduleClear(gen)
		lc.publish()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.cancel = cancel
	lc.phase = PhaseRequesting
	lc.publish()

	go func() {
		res := call(ctx)
		lc.loop.post(func() { lc.finish(gen, res) })
	}()
}

// finish applies a completed call's result, unless the generation shows
// it was cancelled or superseded.
func (lc *lifecycle[T]) finish(gen uint64, res result.Result[T]) {
	if gen != lc.gen {
		return
	}
	if lc.cancel != nil {
		lc.cancel()
		lc.cancel = nil
	}

	lc.res = res
	if lc.onFinish != nil {
		// The hook may reclassify the result (e.g. an empty success
		// becomes an empty-state error), so re-read it afterwards.
		lc.onFinish(res)
	}
	if lc.res.IsFailure() {
		lc.phase = PhaseFailed
		lc.scheduleClear(gen)
	} else {
		lc.phase = PhaseSucceeded
	}
	lc.publish()

	lc.phase = PhaseCoolingDown
	lc.scheduleCooldown(gen)
	lc.publish()
}

// cancelInFlight abandons the current request: the eventual result is
// invalidated by the generation bump and the screen cools down.
func (lc *lifecycle[T]) cancelInFlight() {
	if lc.phase != PhaseRequesting {
		return
	}
	lc.cancel()
	lc.cancel = nil
	lc.gen++

	lc.phase = PhaseCoolingDown
	lc.scheduleCooldown(lc.gen)
	lc.publish()
}

// dismissError clears a displayed error before its window elapses.
func (lc *lifecycle[T]) dismissError() {
	lc.clearError()
}

func (lc *lifecycle[T]) clearError() {
	if !lc.res.IsFailure() {
		return
	}
	lc.res = result.Idle[T]()
	if lc.onClear != nil {
		lc.onClear()
	}
	if lc.phase == PhaseFailed {
		lc.phase = PhaseIdle
	}
	lc.publish()
}

func (lc *lifecycle[T]) scheduleCooldown(gen uint64) {
	lc.loop.after(lc.cooldown, func() {
		if gen == lc.gen && lc.phase == PhaseCoolingDown {
			lc.phase = PhaseIdle
			lc.publish()
		}
	})
}

func (lc *lifecycle[T]) scheduleClear(gen uint64) {
	lc.loop.after(lc.clearAfter, func() {
		if gen == lc.gen {
			lc.clearError()
		}
	})
}
