// Package rank resolves user filter tokens against a listing snapshot.
//
// A token is either a 1-based display rank from the listing or a literal
// identifier. Ranks are only meaningful relative to the listing that produced
// them, so callers fetch the listing once and resolve every token against it.
package rank

import (
	"regexp"
	"strconv"
)

var integerPattern = regexp.MustCompile(`^[+-]?\d+$`)

// Row is a listing entry that rank filters can resolve to.
type Row interface {
	Identifier() string
}

// IsInteger reports whether s is an optionally signed decimal integer.
func IsInteger(s string) bool {
	return integerPattern.MatchString(s)
}

// IsValid reports whether token is a rank within a listing of size max.
// "0", negative values and values above max are not ranks.
func IsValid(token string, max int) bool {
	if !IsInteger(token) {
		return false
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		// Out of int range; certainly not a rank
		return false
	}
	return n > 0 && n <= max
}

// Resolve maps every filter to an identifier using rows.
// Valid ranks become rows[rank-1].Identifier(); all other tokens are passed
// through unchanged. The result has the same length and order as filters.
func Resolve[R Row](filters []string, rows []R) []string {
	ids := make([]string, len(filters))
	for i, f := range filters {
		if IsValid(f, len(rows)) {
			n, _ := strconv.Atoi(f) // nolint:errcheck // validated by IsValid
			ids[i] = rows[n-1].Identifier()
			continue
		}
		ids[i] = f
	}
	return ids
}
