package matching

import (
	"fmt"
	"sort"

	"github.com/medevidences/matchengine/internal/marketplace"
)

// MinMatchPercentage is the cutoff applied by both recommendation flows:
// results scoring below it are not worth showing to either side.
const MinMatchPercentage = 30.0

// CutOff returns the results whose match percentage is at least min,
// preserving input order.
func CutOff(results []*marketplace.MatchResult, min float64) []*marketplace.MatchResult {
	kept := make([]*marketplace.MatchResult, 0, len(results))
	for _, result := range results {
		if result.MatchPercentage >= min {
			kept = append(kept, result)
		}
	}
	return kept
}

// SelectTop orders results by match percentage descending and returns the
// first n. The sort is stable so that ties keep their relative input order,
// which keeps repeated runs reproducible. A non-positive n is caller
// misuse.
func SelectTop(results []*marketplace.MatchResult, n int) ([]*marketplace.MatchResult, error) {
	if n <= 0 {
		return nil, fmt.Errorf("top-n must be positive, got %d", n)
	}

	sorted := make([]*marketplace.MatchResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MatchPercentage > sorted[j].MatchPercentage
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n], nil
}
