// Package stub implements a local stand-in for the remote ride API:
// the three endpoints the client consumes, backed by in-memory state.
// It exists for development and end-to-end testing of the client.
package stub

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/model"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/pkg/geo"
)

// Server holds the stub's in-memory ride history and routing.
type Server struct {
	mu     sync.Mutex
	rides  map[string][]model.HistoryEntry // by customer id
	nextID int64

	router *mux.Router
	now    func() time.Time
}

// NewServer creates a stub seeded with a demo customer history.
func NewServer() *Server {
	s := &Server{
		rides: make(map[string][]model.HistoryEntry),
		now:   time.Now,
	}
	s.seed()
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router = mux.NewRouter()
	s.router.HandleFunc("/ride/estimate", s.handleEstimate).Methods(http.MethodPost)
	s.router.HandleFunc("/ride/confirm", s.handleConfirm).Methods(http.MethodPatch)
	s.router.HandleFunc("/ride/{customer_id}", s.handleHistory).Methods(http.MethodGet)
}

func (s *Server) seed() {
	s.nextID = 1
	s.addRide("CT01", model.HistoryEntry{
		Date:        "2024-12-11T10:00:00",
		Origin:      "Origin A",
		Destination: "Destination B",
		Distance:    3.2,
		Duration:    "12 mins",
		Driver:      model.Driver{ID: 1, Name: "Homer Simpson"},
		Value:       8.0,
	})
	s.addRide("CT01", model.HistoryEntry{
		Date:        "2024-12-09T18:30:00",
		Origin:      "Destination B",
		Destination: "Origin A",
		Distance:    3.2,
		Duration:    "14 mins",
		Driver:      model.Driver{ID: 2, Name: "Dominic Toretto"},
		Value:       16.0,
	})
}

func (s *Server) addRide(customerID string, e model.HistoryEntry) {
	e.ID = strconv.FormatInt(s.nextID, 10)
	s.nextID++
	s.rides[customerID] = append(s.rides[customerID], e)
}

// ─── Fixtures ───────────────────────────────────────────────

// driverOption is a canned driver with a per-km rate; the option value
// scales with the requested ride's distance.
type driverOption struct {
	id          int64
	name        string
	description string
	vehicle     string
	rating      float64
	comment     string
	perKm       float64
}

var driverOptions = []driverOption{
	{1, "Homer Simpson", "Relaxed driver, may stop for donuts.", "Plymouth Valiant 1973, pink and rusty", 2, "Nice guy, but the car smells of donuts.", 2.50},
	{2, "Dominic Toretto", "Fast rides with guaranteed adrenaline.", "Dodge Charger R/T 1970 modified", 4, "The car is amazing, but he drives too fast.", 5.00},
	{3, "James Bond", "A discreet, first-class ride.", "Aston Martin DB5 classic", 5, "Impeccable service, a true gentleman.", 10.00},
}

// ─── Handlers ───────────────────────────────────────────────

type estimateRequest struct {
	CustomerID  string `json:"customer_id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// handleEstimate quotes a ride: addresses are pseudo-geocoded, distance
// and duration derived from the haversine helpers, and every canned
// driver is offered with a distance-scaled price.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_data", "request body is not valid JSON")
		return
	}
	if blank(req.CustomerID) || blank(req.Origin) || blank(req.Destination) {
		writeAPIError(w, http.StatusBadRequest, "invalid_data", "customer_id, origin and destination are required")
		return
	}

	origin := geo.PseudoGeocode(req.Origin)
	destination := geo.PseudoGeocode(req.Destination)
	distance := round1(geo.HaversineKm(origin, destination))
	minutes := int(math.Ceil(geo.EstimateTimeMinutes(origin, destination)))
	if minutes < 1 {
		minutes = 1
	}

	options := make([]model.RideOption, 0, len(driverOptions))
	for _, d := range driverOptions {
		options = append(options, model.RideOption{
			ID:          d.id,
			Name:        d.name,
			Description: d.description,
			Vehicle:     d.vehicle,
			Review:      model.Review{Rating: d.rating, Comment: d.comment},
			Value:       round2(distance * d.perKm),
		})
	}

	writeJSON(w, http.StatusOK, model.Estimate{
		Origin:      origin,
		Destination: destination,
		Distance:    distance,
		Duration:    fmt.Sprintf("%d mins", minutes),
		Options:     options,
	})
}

// handleConfirm accepts a confirmation and appends it to the customer's
// server-side history, so a later history fetch reflects the new ride.
func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var req model.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_data", "request body is not valid JSON")
		return
	}
	if blank(req.CustomerID) || blank(req.Origin) || blank(req.Destination) || blank(req.Driver.Name) {
		writeAPIError(w, http.StatusBadRequest, "invalid_data", "customer_id, origin, destination and driver are required")
		return
	}

	s.mu.Lock()
	s.addRide(req.CustomerID, model.HistoryEntry{
		Date:        s.now().Format("2006-01-02T15:04:05"),
		Origin:      req.Origin,
		Destination: req.Destination,
		Distance:    req.Distance,
		Duration:    req.Duration,
		Driver:      req.Driver,
		Value:       req.Value,
	})
	s.mu.Unlock()

	log.Printf("[stub] confirmed ride for %s with %s", req.CustomerID, req.Driver.Name)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleHistory returns the customer's rides, optionally filtered by
// driver id. Zero matching rides is a 404 with a mapped error payload.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customer_id"]

	var driverID int64
	if raw := r.URL.Query().Get("driver_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_driver", "driver_id must be an integer")
			return
		}
		driverID = id
	}

	s.mu.Lock()
	all := s.rides[customerID]
	rides := make([]model.HistoryEntry, 0, len(all))
	for _, e := range all {
		if driverID != 0 && e.Driver.ID != driverID {
			continue
		}
		rides = append(rides, e)
	}
	s.mu.Unlock()

	if len(rides) == 0 {
		writeAPIError(w, http.StatusNotFound, "no_rides", "no rides found for this customer")
		return
	}

	writeJSON(w, http.StatusOK, model.HistoryResponse{CustomerID: customerID, Rides: rides})
}

// ─── Helpers ────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeAPIError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, map[string]string{
		"error_code":        code,
		"error_description": description,
	})
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
