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

// ConfirmState is the confirm screen's published state.
type ConfirmState struct {
	Phase     Phase
	Confirmed result.Result[bool]
}

// ConfirmController owns the confirm screen. A confirmation that the
// server accepts is followed by exactly one local save; a rejected or
// failed confirmation writes nothing locally.
type ConfirmController struct {
	confirmRide *usecase.ConfirmRide
	saveRide    *usecase.SaveRide

	loop    *loop
	lc      *lifecycle[bool]
	updates chan ConfirmState
}

// NewConfirmController creates the controller.
func NewConfirmController(confirmRide *usecase.ConfirmRide, saveRide *usecase.SaveRide, cooldown, clearAfter time.Duration) *ConfirmController {
	c := &ConfirmController{
		confirmRide: confirmRide,
		saveRide:    saveRide,
		loop:        newLoop(),
		updates:     make(chan ConfirmState, 1),
	}
	c.lc = &lifecycle[bool]{
		loop:       c.loop,
		cooldown:   cooldown,
		clearAfter: clearAfter,
		publish:    c.publish,
	}
	return c
}

// Confirm commits the selected option. The driver-capability check runs
// during Validating; the remote call and the follow-up local save run
// in the background.
func (c *ConfirmController) Confirm(req model.ConfirmRequest, option model.RideOption) {
	c.loop.post(func() {
		c.lc.request(
			func() error {
				return validate.DriverDistance(option, req.Distance).Err()
			},
			func(ctx context.Context) result.Result[bool] {
				res := c.confirmRide.Execute(ctx, req, option)
				confirmed, _ := res.Value()
				if !confirmed {
					if res.IsFailure() {
						log.Printf("[confirm] confirmation failed: %v", res.Err())
					}
					return res
				}
				// Server accepted: persist the ride locally, once.
				rec := recordFromRequest(req)
				if saved := c.saveRide.Execute(ctx, rec); saved.IsFailure() {
					log.Printf("[confirm] local save failed: %v", saved.Err())
				}
				return res
			},
		)
	})
}

// Cancel abandons the in-flight confirmation on the screen. Note the
// server may still have accepted the ride; only the displayed state is
// protected from the late result.
func (c *ConfirmController) Cancel() {
	c.loop.post(c.lc.cancelInFlight)
}

// DismissError clears a displayed error before the window elapses.
func (c *ConfirmController) DismissError() {
	c.loop.post(c.lc.dismissError)
}

// State returns a snapshot of the screen state. Must not be called
// after Close.
func (c *ConfirmController) State() ConfirmState {
	ch := make(chan ConfirmState, 1)
	c.loop.post(func() { ch <- c.snapshot() })
	return <-ch
}

// Updates exposes the latest published state.
func (c *ConfirmController) Updates() <-chan ConfirmState {
	return c.updates
}

// Close stops the controller's loop.
func (c *ConfirmController) Close() {
	c.loop.close()
}

func (c *ConfirmController) snapshot() ConfirmState {
	return ConfirmState{Phase: c.lc.phase, Confirmed: c.lc.res}
}

func (c *ConfirmController) publish() {
	st := c.snapshot()
	select {
	case <-c.updates:
	default:
	}
	c.updates <- st
}

// recordFromRequest builds the local record for a confirmed ride. The
// id and date are assigned by the store on insert.
func recordFromRequest(req model.ConfirmRequest) model.RideRecord {
	return model.RideRecord{
		CustomerID:  req.CustomerID,
		Origin:      req.Origin,
		Destination: req.Destination,
		Distance:    req.Distance,
		Duration:    req.Duration,
		DriverID:    req.Driver.ID,
		DriverName:  req.Driver.Name,
		Value:       req.Value,
	}
}
