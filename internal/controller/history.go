package controller

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/model"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/result"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/store"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/usecase"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/validate"
)

// ErrNoRidesFound reports a remote history query that succeeded but
// yielded zero matching rides: an empty state, distinct from a
// transport failure.
var ErrNoRidesFound = errors.New("no rides found for this customer")

// HistoryState is the history screen's published state.
//
// The two error slots are independent: a remote failure leaves the
// list built from the last-good local data visible, and vice versa.
type HistoryState struct {
	Phase     Phase // remote fetch lifecycle
	Items     result.Result[[]model.HistoryItem]
	LocalErr  error
	RemoteErr error
}

// HistoryController owns the history screen. It reconciles two
// independent sources, the live local snapshot stream and the one-shot
// remote fetch, into one ordered display list, recomputed from the
// latest value of each side every time either one changes.
type HistoryController struct {
	localHistory  *usecase.LocalHistory
	remoteHistory *usecase.RemoteHistory

	loop    *loop
	lc      *lifecycle[model.HistoryResponse]
	updates chan HistoryState

	customerID string
	driver     *model.Driver // optional filter

	localRecs   []model.RideRecord
	remoteItems []model.HistoryItem
	localErr    error
	remoteErr   error
	published   bool // at least one source has emitted

	cancelLocal context.CancelFunc
	clearAfter  time.Duration
}

// NewHistoryController creates the controller.
func NewHistoryController(localHistory *usecase.LocalHistory, remoteHistory *usecase.RemoteHistory, cooldown, clearAfter time.Duration) *HistoryController {
	c := &HistoryController{
		localHistory:  localHistory,
		remoteHistory: remoteHistory,
		loop:          newLoop(),
		updates:       make(chan HistoryState, 1),
		clearAfter:    clearAfter,
	}
	c.lc = &lifecycle[model.HistoryResponse]{
		loop:       c.loop,
		cooldown:   cooldown,
		clearAfter: clearAfter,
		publish:    c.publish,
		onFinish:   c.applyRemote,
		onClear:    func() { c.remoteErr = nil },
	}
	return c
}

// Load scopes the screen to a customer (and optional driver filter),
// subscribes to the local stream, and triggers the remote fetch.
func (c *HistoryController) Load(customerID string, driver *model.Driver) {
	c.loop.post(func() {
		c.customerID = customerID
		c.driver = driver
		c.localRecs = nil
		c.remoteItems = nil
		c.localErr = nil
		c.remoteErr = nil
		c.published = false
		c.subscribeLocal()
	})
	c.Refresh()
}

// Refresh re-runs the one-shot remote fetch through the request
// lifecycle. Ignored while a fetch is in flight or cooling down.
func (c *HistoryController) Refresh() {
	c.loop.post(func() {
		customerID := c.customerID
		driverID := c.driverID()
		c.lc.request(
			func() error {
				return validate.HistoryInputs(customerID).Err()
			},
			func(ctx context.Context) result.Result[model.HistoryResponse] {
				return c.remoteHistory.Execute(ctx, customerID, driverID)
			},
		)
	})
}

// Cancel abandons the in-flight remote fetch. The local stream keeps
// flowing; only the remote request is affected.
func (c *HistoryController) Cancel() {
	c.loop.post(c.lc.cancelInFlight)
}

// DismissRemoteError clears the remote error slot early.
func (c *HistoryController) DismissRemoteError() {
	c.loop.post(c.lc.dismissError)
}

// State returns a snapshot of the screen state. Must not be called
// after Close.
func (c *HistoryController) State() HistoryState {
	ch := make(chan HistoryState, 1)
	c.loop.post(func() { ch <- c.snapshot() })
	return <-ch
}

// Updates exposes the latest published state.
func (c *HistoryController) Updates() <-chan HistoryState {
	return c.updates
}

// Close cuts the local subscription and stops the loop.
func (c *HistoryController) Close() {
	done := make(chan struct{})
	c.loop.post(func() {
		if c.cancelLocal != nil {
			c.cancelLocal()
			c.cancelLocal = nil
		}
		close(done)
	})
	<-done
	c.loop.close()
}

// ─── Local source ───────────────────────────────────────────

// subscribeLocal (re)subscribes to the local snapshot stream for the
// current filter. Each emission replaces the local side wholesale.
func (c *HistoryController) subscribeLocal() {
	if c.cancelLocal != nil {
		c.cancelLocal()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancelLocal = cancel

	src := c.localHistory.Execute(ctx, c.customerID, c.driverID())
	go func() {
		for res := range src {
			res := res
			c.loop.post(func() { c.applyLocal(ctx, res) })
		}
	}()
}

// applyLocal folds one local snapshot (or store failure) into state.
// Runs on the loop.
func (c *HistoryController) applyLocal(ctx context.Context, res result.Result[[]model.RideRecord]) {
	if ctx.Err() != nil {
		return // superseded subscription
	}
	if recs, ok := res.Value(); ok {
		c.localRecs = recs
		c.localErr = nil
	} else {
		// Keep the last-good local list; surface the error transiently.
		err := res.Err()
		log.Printf("[history] local store: %v", err)
		c.localErr = err
		c.loop.after(c.clearAfter, func() {
			if c.localErr == err {
				c.localErr = nil
				c.publish()
			}
		})
	}
	c.published = true
	c.publish()
}

// ─── Remote source ──────────────────────────────────────────

// applyRemote folds a completed remote fetch into state. Runs on the
// loop via the lifecycle's onFinish hook, after stale results have
// already been discarded.
func (c *HistoryController) applyRemote(res result.Result[model.HistoryResponse]) {
	resp, ok := res.Value()
	if !ok {
		// Transport failure: keep the last-good remote items.
		err := res.Err()
		log.Printf("[history] remote fetch: %v", err)
		c.remoteErr = err
		c.published = true
		return
	}

	entries := resp.Rides
	if c.driver != nil {
		entries = FilterByDriver(entries, c.driver.Name)
	}
	if len(entries) == 0 {
		// Empty state, not a crash: report it instead of silently
		// publishing an empty success list.
		c.remoteItems = nil
		c.remoteErr = ErrNoRidesFound
		c.lc.res = result.Err[model.HistoryResponse](ErrNoRidesFound)
		c.published = true
		return
	}

	c.remoteItems = WrapRemote(entries)
	c.remoteErr = nil
	c.published = true
}

// ─── Derived state ──────────────────────────────────────────

func (c *HistoryController) snapshot() HistoryState {
	st := HistoryState{
		Phase:     c.lc.phase,
		LocalErr:  c.localErr,
		RemoteErr: c.remoteErr,
	}
	switch {
	case !c.published:
		st.Items = result.Idle[[]model.HistoryItem]()
	default:
		merged := MergeHistory(c.localRecs, c.remoteItems)
		if len(merged) == 0 {
			if c.remoteErr != nil {
				st.Items = result.Err[[]model.HistoryItem](c.remoteErr)
			} else if c.localErr != nil {
				st.Items = result.Err[[]model.HistoryItem](c.localErr)
			} else {
				st.Items = result.Ok(merged)
			}
		} else {
			st.Items = result.Ok(merged)
		}
	}
	return st
}

func (c *HistoryController) publish() {
	st := c.snapshot()
	select {
	case <-c.updates:
	default:
	}
	c.updates <- st
}

func (c *HistoryController) driverID() int64 {
	if c.driver == nil {
		return store.NoDriverFilter
	}
	return c.driver.ID
}
