// Command taxiapp is the headless ride client: it requests estimates,
// confirms rides, and shows the merged local+remote ride history.
//
// Usage:
//
//	taxiapp estimate -customer CT01 -origin "Origin A" -destination "Destination B"
//	taxiapp confirm  -customer CT01 -origin "Origin A" -destination "Destination B" -driver "Homer Simpson"
//	taxiapp history  -customer CT01 [-driver-id 1 -driver-name "Homer Simpson"]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/config"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/controller"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/model"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/remote"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/repository"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/store"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/usecase"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/pkg/cache"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/pkg/db"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	app, cleanup, err := buildApp(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to wire client: %v", err)
	}
	defer cleanup()

	switch os.Args[1] {
	case "estimate":
		err = app.runEstimate(os.Args[2:])
	case "confirm":
		err = app.runConfirm(ctx, os.Args[2:])
	case "history":
		err = app.runHistory(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: taxiapp <estimate|confirm|history> [flags]")
}

// ─── Wiring ─────────────────────────────────────────────────

type app struct {
	cfg *config.Config

	getEstimate   *usecase.GetEstimate
	confirmRide   *usecase.ConfirmRide
	saveRide      *usecase.SaveRide
	localHistory  *usecase.LocalHistory
	remoteHistory *usecase.RemoteHistory
}

func buildApp(ctx context.Context, cfg *config.Config) (*app, func(), error) {
	cleanup := func() {}

	// ── Local store ─────────────────────────────────────
	var rideStore store.RideStore
	switch cfg.Client.StoreBackend {
	case "postgres":
		pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, cleanup, fmt.Errorf("connect local store: %w", err)
		}
		pg := store.NewPostgresStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, cleanup, err
		}
		rideStore = pg
		cleanup = pool.Close
	default:
		rideStore = store.NewMemoryStore()
	}

	// ── Optional history cache ──────────────────────────
	var redisClient *redis.Client
	if cfg.Client.CacheEnabled {
		c, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			// The cache is an optimization; run without it.
			log.Printf("[taxiapp] history cache unavailable: %v", err)
		} else {
			redisClient = c
			prev := cleanup
			cleanup = func() { _ = c.Close(); prev() }
		}
	}

	// ── Remote API + repository + use cases ─────────────
	api := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.Timeout)
	repo := repository.New(rideStore, api, redisClient, cfg.Client.HistoryCacheTTL)

	return &app{
		cfg:           cfg,
		getEstimate:   usecase.NewGetEstimate(repo),
		confirmRide:   usecase.NewConfirmRide(repo),
		saveRide:      usecase.NewSaveRide(repo),
		localHistory:  usecase.NewLocalHistory(repo),
		remoteHistory: usecase.NewRemoteHistory(repo),
	}, cleanup, nil
}

// ─── estimate ───────────────────────────────────────────────

func (a *app) runEstimate(args []string) error {
	fs := flag.NewFlagSet("estimate", flag.ExitOnError)
	customer := fs.String("customer", "", "customer id")
	origin := fs.String("origin", "", "origin address")
	destination := fs.String("destination", "", "destination address")
	_ = fs.Parse(args)

	ec := controller.NewEstimateController(a.getEstimate, a.cfg.Client.Cooldown, a.cfg.Client.ErrorDisplay)
	defer ec.Close()

	ec.Request(*customer, *origin, *destination)
	st, err := awaitEstimate(ec)
	if err != nil {
		return err
	}

	est := st.Estimate.MustValue()
	fmt.Printf("Estimate: %.1f km, %s\n", est.Distance, est.Duration)
	for _, opt := range est.Options {
		fmt.Printf("  [%d] %-16s %-40s %.2f (rating %.0f/5)\n",
			opt.ID, opt.Name, opt.Vehicle, opt.Value, opt.Review.Rating)
	}
	return nil
}

func awaitEstimate(ec *controller.EstimateController) (controller.EstimateState, error) {
	deadline := time.After(30 * time.Second)
	for {
		select {
		case st := <-ec.Updates():
			if st.Estimate.IsFailure() {
				return st, fmt.Errorf("estimate failed: %w", st.Estimate.Err())
			}
			if st.Estimate.IsSuccess() {
				return st, nil
			}
		case <-deadline:
			return controller.EstimateState{}, fmt.Errorf("estimate timed out")
		}
	}
}

// ─── confirm ────────────────────────────────────────────────

func (a *app) runConfirm(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("confirm", flag.ExitOnError)
	customer := fs.String("customer", "", "customer id")
	origin := fs.String("origin", "", "origin address")
	destination := fs.String("destination", "", "destination address")
	driver := fs.String("driver", "", "driver name from the estimate options")
	_ = fs.Parse(args)

	// A confirmation always follows an estimate: fetch the quote and
	// pick the requested driver's option.
	res := a.getEstimate.Execute(ctx, *customer, *origin, *destination)
	est, ok := res.Value()
	if !ok {
		return fmt.Errorf("estimate failed: %w", res.Err())
	}

	var option *model.RideOption
	for i := range est.Options {
		if est.Options[i].Name == *driver {
			option = &est.Options[i]
			break
		}
	}
	if option == nil {
		return fmt.Errorf("driver %q is not among the offered options", *driver)
	}

	req := model.ConfirmRequest{
		CustomerID:  *customer,
		Origin:      *origin,
		Destination: *destination,
		Distance:    est.Distance,
		Duration:    est.Duration,
		Driver:      model.Driver{ID: option.ID, Name: option.Name},
		Value:       option.Value,
	}

	cc := controller.NewConfirmController(a.confirmRide, a.saveRide, a.cfg.Client.Cooldown, a.cfg.Client.ErrorDisplay)
	defer cc.Close()

	cc.Confirm(req, *option)
	deadline := time.After(30 * time.Second)
	for {
		select {
		case st := <-cc.Updates():
			if st.Confirmed.IsFailure() {
				return fmt.Errorf("confirmation failed: %w", st.Confirmed.Err())
			}
			if confirmed, ok := st.Confirmed.Value(); ok && confirmed {
				fmt.Printf("Ride confirmed with %s for %.2f\n", option.Name, option.Value)
				return nil
			}
		case <-deadline:
			return fmt.Errorf("confirmation timed out")
		}
	}
}

// ─── history ────────────────────────────────────────────────

func (a *app) runHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	customer := fs.String("customer", "", "customer id")
	driverID := fs.Int64("driver-id", 0, "optional driver id filter")
	driverName := fs.String("driver-name", "", "optional driver name filter")
	_ = fs.Parse(args)

	var driver *model.Driver
	if *driverID != 0 || *driverName != "" {
		driver = &model.Driver{ID: *driverID, Name: *driverName}
	}

	hc := controller.NewHistoryController(a.localHistory, a.remoteHistory, a.cfg.Client.Cooldown, a.cfg.Client.ErrorDisplay)
	defer hc.Close()

	hc.Load(*customer, driver)

	// Wait for the remote fetch to settle; local snapshots arrive on
	// their own cadence and are folded in as they come.
	deadline := time.After(30 * time.Second)
	var st controller.HistoryState
wait:
	for {
		select {
		case st = <-hc.Updates():
			if st.Phase == controller.PhaseCoolingDown || st.Phase == controller.PhaseFailed {
				break wait
			}
		case <-deadline:
			return fmt.Errorf("history fetch timed out")
		}
	}

	if st.RemoteErr != nil {
		log.Printf("[taxiapp] remote history: %v", st.RemoteErr)
	}
	if st.LocalErr != nil {
		log.Printf("[taxiapp] local history: %v", st.LocalErr)
	}

	items, ok := st.Items.Value()
	if !ok {
		if err := st.Items.Err(); err != nil {
			return fmt.Errorf("history unavailable: %w", err)
		}
		fmt.Println("No rides yet.")
		return nil
	}

	for _, it := range items {
		origin, destination := rideEndpoints(it)
		fmt.Printf("%-10s %-8s [%s] %s → %s with %s\n",
			it.DatePart(), it.TimePart(), it.Source, origin, destination, it.DriverName())
	}
	return nil
}

func rideEndpoints(it model.HistoryItem) (string, string) {
	switch it.Source {
	case model.SourceLocal:
		return it.Local.Origin, it.Local.Destination
	default:
		return it.Remote.Origin, it.Remote.Destination
	}
}
