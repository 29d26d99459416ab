package controller

import (
	"context"
	"log"
	"time"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/model"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/result"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/usecase"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/validate"
)

// EstimateState is the estimate screen's published state.
type EstimateState struct {
	Phase    Phase
	Estimate result.Result[model.Estimate]
}

// EstimateController owns the estimate screen: it validates the inputs,
// issues the quote request, and drives the debounce/cancel lifecycle.
type EstimateController struct {
	getEstimate *usecase.GetEstimate

	loop    *loop
	lc      *lifecycle[model.Estimate]
	updates chan EstimateState
}

// NewEstimateController creates the controller. cooldown and clearAfter
// are the fixed request-debounce and error-display windows.
func NewEstimateController(getEstimate *usecase.GetEstimate, cooldown, clearAfter time.Duration) *EstimateController {
	c := &EstimateController{
		getEstimate: getEstimate,
		loop:        newLoop(),
		updates:     make(chan EstimateState, 1),
	}
	c.lc = &lifecycle[model.Estimate]{
		loop:       c.loop,
		cooldown:   cooldown,
		clearAfter: clearAfter,
		publish:    c.publish,
	}
	return c
}

// Request asks for a quote between two addresses. Ignored while a
// request is in flight or the screen is cooling down.
func (c *EstimateController) Request(customerID, origin, destination string) {
	c.loop.post(func() {
		c.lc.request(
			func() error {
				return validate.EstimateInputs(customerID, origin, destination).Err()
			},
			func(ctx context.Context) result.Result[model.Estimate] {
				res := c.getEstimate.Execute(ctx, customerID, origin, destination)
				if res.IsFailure() {
					log.Printf("[estimate] request failed: %v", res.Err())
				}
				return res
			},
		)
	})
}

// Cancel abandons the in-flight request; its eventual result is
// discarded and the screen cools down.
func (c *EstimateController) Cancel() {
	c.loop.post(c.lc.cancelInFlight)
}

// DismissError clears a displayed error before the window elapses.
func (c *EstimateController) DismissError() {
	c.loop.post(c.lc.dismissError)
}

// State returns a snapshot of the screen state. Must not be called
// after Close.
func (c *EstimateController) State() EstimateState {
	ch := make(chan EstimateState, 1)
	c.loop.post(func() { ch <- c.snapshot() })
	return <-ch
}

// Updates exposes the latest published state. The channel holds only
// the most recent snapshot; a slow reader never sees stale state.
func (c *EstimateController) Updates() <-chan EstimateState {
	return c.updates
}

// Close stops the controller's loop.
func (c *EstimateController) Close() {
	c.loop.close()
}

func (c *EstimateController) snapshot() EstimateState {
	return EstimateState{Phase: c.lc.phase, Estimate: c.lc.res}
}

func (c *EstimateController) publish() {
	st := c.snapshot()
	select {
	case <-c.updates:
	default:
	}
	c.updates <- st
}
