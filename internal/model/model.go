// Package model contains domain models and wire DTOs for the taxi client.
//
// The JSON tags mirror the remote ride API contract: requests carry
// snake_case fields (customer_id, ...), and history rides nest the driver
// as {id, name}.
package model

// ─── Locations ──────────────────────────────────────────────

// Location represents a WGS-84 geographic point returned by the
// estimate endpoint.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ─── Estimate flow ──────────────────────────────────────────

// Review is a driver rating attached to a ride option.
type Review struct {
	Rating  float64 `json:"rating"` // 0..5
	Comment string  `json:"comment"`
}

// RideOption is one driver/vehicle choice offered in an estimate.
// The user selects exactly one option to confirm a ride.
type RideOption struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"` // driver display name
	Description string  `json:"description"`
	Vehicle     string  `json:"vehicle"`
	Review      Review  `json:"review"`
	Value       float64 `json:"value"`
}

// Estimate is the quoted price/time/options set for a prospective ride.
// It is created from the remote response and lives only in transient
// screen state until the ride is confirmed or the flow restarts.
type Estimate struct {
	Origin      Location     `json:"origin"`
	Destination Location     `json:"destination"`
	Distance    float64      `json:"distance"` // kilometers
	Duration    string       `json:"duration"` // free-form, e.g. "12 mins"
	Options     []RideOption `json:"options"`
}

// ─── Confirm flow ───────────────────────────────────────────

// Driver identifies the chosen driver in a confirm request and in
// remote history entries.
type Driver struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ConfirmRequest is the client-built payload for PATCH /ride/confirm,
// assembled from an estimate plus the selected option.
type ConfirmRequest struct {
	CustomerID  string  `json:"customer_id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Distance    float64 `json:"distance"`
	Duration    string  `json:"duration"`
	Driver      Driver  `json:"driver"`
	Value       float64 `json:"value"`
}

// ─── History ────────────────────────────────────────────────

// RideRecord is a ride persisted in the local store after a successful
// confirmation. Records are insert-only: never edited, never deleted.
// Date may be empty when the store predates date tracking.
type RideRecord struct {
	ID          string  `json:"id"` // store-assigned uuid
	CustomerID  string  `json:"customer_id"`
	Date        string  `json:"date,omitempty"` // "2006-01-02T15:04:05"
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Distance    float64 `json:"distance"`
	Duration    string  `json:"duration"`
	DriverID    int64   `json:"driver_id"`
	DriverName  string  `json:"driver_name"`
	Value       float64 `json:"value"`
}

// HistoryEntry is one ride returned by GET /ride/{customer_id}.
// Structurally it matches RideRecord but its id is server-assigned and
// drawn from an unrelated id space.
type HistoryEntry struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Distance    float64 `json:"distance"`
	Duration    string  `json:"duration"`
	Driver      Driver  `json:"driver"`
	Value       float64 `json:"value"`
}

// HistoryResponse is the remote history endpoint payload.
type HistoryResponse struct {
	CustomerID string         `json:"customer_id"`
	Rides      []HistoryEntry `json:"rides"`
}

// ─── Unified history item ───────────────────────────────────

// HistorySource tags which store a history item came from.
type HistorySource string

const (
	SourceLocal  HistorySource = "local"
	SourceRemote HistorySource = "remote"
)

// HistoryItem is a tagged union over a local record and a remote entry,
// used only for display and sorting. Exactly one of Local/Remote is set,
// matching Source.
type HistoryItem struct {
	Source HistorySource
	Local  *RideRecord
	Remote *HistoryEntry
}

// LocalItem wraps a local ride record as a history item.
func LocalItem(rec RideRecord) HistoryItem {
	return HistoryItem{Source: SourceLocal, Local: &rec}
}

// RemoteItem wraps a remote history entry as a history item.
func RemoteItem(e HistoryEntry) HistoryItem {
	return HistoryItem{Source: SourceRemote, Remote: &e}
}

// Date returns the item's combined timestamp string, empty when the
// underlying record has none.
func (h HistoryItem) Date() string {
	switch h.Source {
	case SourceLocal:
		if h.Local != nil {
			return h.Local.Date
		}
	case SourceRemote:
		if h.Remote != nil {
			return h.Remote.Date
		}
	}
	return ""
}

// DatePart returns the calendar-date component of the timestamp, the
// text before the "T" separator. Empty when the item has no date.
func (h HistoryItem) DatePart() string {
	d, _ := SplitTimestamp(h.Date())
	return d
}

// TimePart returns the time-of-day component of the timestamp, the text
// after the "T" separator. Empty when the item has no date or the
// timestamp carries no time component.
func (h HistoryItem) TimePart() string {
	_, t := SplitTimestamp(h.Date())
	return t
}

// DriverName returns the driver display name regardless of source.
func (h HistoryItem) DriverName() string {
	switch h.Source {
	case SourceLocal:
		if h.Local != nil {
			return h.Local.DriverName
		}
	case SourceRemote:
		if h.Remote != nil {
			return h.Remote.Driver.Name
		}
	}
	return ""
}

// SplitTimestamp splits a combined "date T time" timestamp into its two
// components. A timestamp without a "T" separator is treated as a bare
// date with no time component.
func SplitTimestamp(ts string) (date, clock string) {
	for i := 0; i < len(ts); i++ {
		if ts[i] == 'T' {
			return ts[:i], ts[i+1:]
		}
	}
	return ts, ""
}
