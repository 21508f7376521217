// Package aggregate derives yearly and per-category series from incident
// records. Every function is pure: inputs are never modified and each call
// builds a fresh result.
package aggregate

import "github.com/zalepa/crimestats/incident"

// UnreliableThrough is the last year whose records are considered unreliable.
const UnreliableThrough = 2015

// FilterYears returns the records whose year is strictly greater than cutoff.
func FilterYears(records []incident.Record, cutoff int) []incident.Record {
	out := make([]incident.Record, 0, len(records))
	for _, r := range records {
		if r.Year > cutoff {
			out = append(out, r)
		}
	}
	return out
}
