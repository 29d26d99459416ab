package validate

import "strings"

// ─── Driver capability table ────────────────────────────────
//
// Each known driver has a minimum distance (km) below which they will
// not accept a ride. The table is immutable, built once at package
// init, and looked up by case-folded name. Unknown names fall back to
// a maximal threshold that rejects almost everything; that is policy,
// not an error.

// unknownDriverMinKm is the fallback threshold for names not in the table.
const unknownDriverMinKm = 1 << 20

var driverMinKm = func() map[string]float64 {
	entries := map[string]float64{
		"Homer Simpson":   1,
		"Dominic Toretto": 5,
		"James Bond":      10,
	}
	m := make(map[string]float64, len(entries))
	for name, km := range entries {
		m[foldName(name)] = km
	}
	return m
}()

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MinDistanceKm returns the minimum distance the named driver accepts.
// Lookup is case-insensitive; unmatched names get the maximal sentinel.
func MinDistanceKm(driverName string) float64 {
	if km, ok := driverMinKm[foldName(driverName)]; ok {
		return km
	}
	return unknownDriverMinKm
}

// KnownDriver reports whether the name matches a static table entry.
func KnownDriver(driverName string) bool {
	_, ok := driverMinKm[foldName(driverName)]
	return ok
}
