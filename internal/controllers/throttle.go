package controllers

import "github.com/amaumene/dsnparr/internal/models"

// postDeliveryBaseline is the change counter value after a delivery
// decision. It sits above 1 so the first-match trigger fires only once.
const postDeliveryBaseline = 2

// ThrottlePolicy decides when a render is pushed to the delivery sink
type ThrottlePolicy struct {
	Threshold int
}

// ShouldDeliver reports whether the current render should be delivered.
// Nothing is delivered before the first match; after that a render goes out
// on the first change, once more than Threshold changes piled up, and on
// the last region.
func (p ThrottlePolicy) ShouldDeliver(changes int, isLast, hasAnyMatch bool) bool {
	if !hasAnyMatch {
		return false
	}
	return changes == 1 || changes > p.Threshold || isLast
}

// policyFor returns the throttle policy of a content kind
func (c *SweepController) policyFor(kind models.ContentKind) ThrottlePolicy {
	if kind == models.KindSeries {
		return ThrottlePolicy{Threshold: c.seriesThreshold}
	}
	return ThrottlePolicy{Threshold: c.movieThreshold}
}
