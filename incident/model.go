package incident

import "time"

// All is the selection value meaning "no category filter".
const All = "All"

// Code is a primary-offence category code as it appears in the source data.
type Code string

// Record is one reported incident. Records are passed by value and never
// modified after loading.
type Record struct {
	Occurred time.Time `json:"occurred"` // date only, time of day truncated
	Offence  string    `json:"offence"`
	Category Code      `json:"category"`
	Year     int       `json:"year"`
}

// Codes returns the distinct category codes in records, sorted.
func Codes(records []Record) []Code {
	seen := make(map[Code]bool)
	var codes []Code
	for _, r := range records {
		if !seen[r.Category] {
			seen[r.Category] = true
			codes = append(codes, r.Category)
		}
	}
	sortCodes(codes)
	return codes
}
