package controller

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/model"
)

func localRec(id, date string) model.RideRecord {
	return model.RideRecord{ID: id, CustomerID: "CT01", Date: date, Origin: "A", Destination: "B"}
}

func remoteEntry(id, date, driver string) model.HistoryEntry {
	return model.HistoryEntry{ID: id, Date: date, Origin: "A", Destination: "B", Driver: model.Driver{Name: driver}}
}

func dates(items []model.HistoryItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Date()
	}
	return out
}

func TestMergeHistory_OrdersNewestFirst(t *testing.T) {
	local := []model.RideRecord{
		localRec("l1", "2024-12-10T08:00:00"),
		localRec("l2", "2024-12-12T09:00:00"),
	}
	remote := WrapRemote([]model.HistoryEntry{
		remoteEntry("r1", "2024-12-11T10:00:00", "Homer Simpson"),
		remoteEntry("r2", "2024-12-11T23:59:59", "James Bond"),
	})

	merged := MergeHistory(local, remote)

	want := []string{
		"2024-12-12T09:00:00",
		"2024-12-11T23:59:59",
		"2024-12-11T10:00:00",
		"2024-12-10T08:00:00",
	}
	if got := dates(merged); !reflect.DeepEqual(got, want) {
		t.Errorf("merged order = %v, want %v", got, want)
	}
}

func TestMergeHistory_EqualDateSortedByTimeDesc(t *testing.T) {
	merged := MergeHistory(nil, WrapRemote([]model.HistoryEntry{
		remoteEntry("r1", "2024-12-11T10:00:00", "x"),
		remoteEntry("r2", "2024-12-11T18:30:00", "x"),
	}))
	if merged[0].TimePart() != "18:30:00" || merged[1].TimePart() != "10:00:00" {
		t.Errorf("equal dates must sort by time desc, got %v", dates(merged))
	}
}

func TestMergeHistory_MissingDatesSortLast(t *testing.T) {
	local := []model.RideRecord{
		localRec("l1", ""),
		localRec("l2", "2024-12-12T09:00:00"),
	}
	merged := MergeHistory(local, nil)
	if merged[0].Date() != "2024-12-12T09:00:00" {
		t.Errorf("dated item must sort first, got %v", dates(merged))
	}
	if merged[len(merged)-1].Date() != "" {
		t.Errorf("undated item must sort last, got %v", dates(merged))
	}
}

func TestMergeHistory_Idempotent(t *testing.T) {
	local := []model.RideRecord{
		localRec("l1", "2024-12-11T10:00:00"),
		localRec("l2", "2024-12-11T10:00:00"), // tie: input order must hold
		localRec("l3", ""),
	}
	remote := WrapRemote([]model.HistoryEntry{
		remoteEntry("r1", "2024-12-11T10:00:00", "x"),
		remoteEntry("r2", "2024-12-13T07:00:00", "y"),
	})

	first := MergeHistory(local, remote)
	second := MergeHistory(local, remote)
	if !reflect.DeepEqual(first, second) {
		t.Error("merging the same snapshots twice must yield identical output")
	}
}

func TestMergeHistory_TiesKeepInputOrder(t *testing.T) {
	local := []model.RideRecord{
		localRec("l1", "2024-12-11T10:00:00"),
		localRec("l2", "2024-12-11T10:00:00"),
	}
	merged := MergeHistory(local, nil)
	if merged[0].Local.ID != "l1" || merged[1].Local.ID != "l2" {
		t.Error("stable sort must keep input order on ties")
	}
}

func TestMergeHistory_NoDeduplication(t *testing.T) {
	// Local and remote ids are uncorrelated; the same physical ride may
	// show up on both sides and both rows are kept.
	local := []model.RideRecord{localRec("l1", "2024-12-11T10:00:00")}
	remote := WrapRemote([]model.HistoryEntry{remoteEntry("77", "2024-12-11T10:00:00", "x")})
	merged := MergeHistory(local, remote)
	if len(merged) != 2 {
		t.Errorf("len = %d, want 2 (no cross-source dedup)", len(merged))
	}
}

func TestFilterByDriver(t *testing.T) {
	entries := []model.HistoryEntry{
		remoteEntry("1", "2024-12-11T10:00:00", "Homer Simpson"),
		remoteEntry("2", "2024-12-11T11:00:00", "James Bond"),
		remoteEntry("3", "2024-12-11T12:00:00", "HOMER SIMPSON"),
	}

	got := FilterByDriver(entries, "homer simpson")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (case-insensitive match)", len(got))
	}
	for _, e := range got {
		if !strings.EqualFold(e.Driver.Name, "Homer Simpson") {
			t.Errorf("unexpected entry %v", e.ID)
		}
	}

	if got := FilterByDriver(entries, ""); len(got) != 3 {
		t.Errorf("empty filter must keep everything, got %d", len(got))
	}
	if got := FilterByDriver(entries, "Kitt"); len(got) != 0 {
		t.Errorf("unmatched filter must yield empty, got %d", len(got))
	}
}

func TestSplitTimestamp(t *testing.T) {
	cases := []struct {
		in, date, clock string
	}{
		{"2024-12-11T10:00:00", "2024-12-11", "10:00:00"},
		{"2024-12-11", "2024-12-11", ""},
		{"", "", ""},
	}
	for _, tc := range cases {
		d, c := model.SplitTimestamp(tc.in)
		if d != tc.date || c != tc.clock {
			t.Errorf("SplitTimestamp(%q) = %q, %q, want %q, %q", tc.in, d, c, tc.date, tc.clock)
		}
	}
}
