package controller

import (
	"sort"
	"strings"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/model"
)

// MergeHistory combines the latest local snapshot with the latest known
// remote items into one display list, newest ride first.
//
// The combination is a full replace-and-recompute: no deduplication is
// attempted across sources because local and remote ids come from
// disjoint, uncorrelated id spaces. The sort is stable, so merging the
// same pair of snapshots always yields the same output.
func MergeHistory(local []model.RideRecord, remote []model.HistoryItem) []model.HistoryItem {
	items := make([]model.HistoryItem, 0, len(local)+len(remote))
	for _, rec := range local {
		items = append(items, model.LocalItem(rec))
	}
	items = append(items, remote...)
	SortHistory(items)
	return items
}

// SortHistory orders items descending by date part, then descending by
// time-of-day part, with date and time derived by splitting the
// combined timestamp. Items with a missing date compare as smallest and
// therefore sort last. Ties keep input order.
func SortHistory(items []model.HistoryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		di, dj := items[i].DatePart(), items[j].DatePart()
		if di != dj {
			return laterDesc(di, dj)
		}
		ti, tj := items[i].TimePart(), items[j].TimePart()
		if ti != tj {
			return laterDesc(ti, tj)
		}
		return false
	})
}

// laterDesc reports whether a sorts before b in descending order,
// treating the empty string as smallest (so it lands at the end).
// The components are ISO-style strings, so lexical order is
// chronological order.
func laterDesc(a, b string) bool {
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}
	return a > b
}

// FilterByDriver keeps only the entries whose driver name matches,
// case-insensitively. An empty filter keeps everything.
func FilterByDriver(entries []model.HistoryEntry, driverName string) []model.HistoryEntry {
	if strings.TrimSpace(driverName) == "" {
		return entries
	}
	out := make([]model.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if strings.EqualFold(e.Driver.Name, driverName) {
			out = append(out, e)
		}
	}
	return out
}

// WrapRemote converts remote entries into history items.
func WrapRemote(entries []model.HistoryEntry) []model.HistoryItem {
	items := make([]model.HistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, model.RemoteItem(e))
	}
	return items
}
