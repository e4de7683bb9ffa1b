package utils

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestionDistance bounds how different a suggestion may be
const maxSuggestionDistance = 1

// SuggestRegion returns the known region code closest to code, or "" when
// nothing is close enough
func SuggestRegion(code string, known []string) string {
	code = strings.ToUpper(code)
	best := ""
	bestDist := maxSuggestionDistance + 1
	for _, k := range known {
		d := levenshtein.ComputeDistance(code, k)
		if d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

// UnknownRegions returns the codes from regions that are missing in known,
// in input order
func UnknownRegions(regions, known []string) []string {
	set := make(map[string]struct{}, len(known))
	for _, k := range known {
		set[k] = struct{}{}
	}
	var unknown []string
	for _, r := range regions {
		if _, ok := set[r]; !ok {
			unknown = append(unknown, r)
		}
	}
	return unknown
}
