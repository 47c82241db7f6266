package metrics

// Bucket labels for the two derived categorical dimensions.
const (
	BucketShort  = "Short"
	BucketMedium = "Medium"
	BucketLong   = "Long"

	BucketLow  = "Low"
	BucketHigh = "High"
)

// BucketDuration maps campaign duration in days onto its categorical bucket.
// Both boundaries (30 and 60) belong to Medium.
func BucketDuration(days int) string {
	switch {
	case days < 30:
		return BucketShort
	case days <= 60:
		return BucketMedium
	default:
		return BucketLong
	}
}

// BucketBudget maps campaign cost onto its budget range. Both boundaries
// (1000 and 3000) belong to Medium.
func BucketBudget(cost float64) string {
	switch {
	case cost < 1000:
		return BucketLow
	case cost <= 3000:
		return BucketMedium
	default:
		return BucketHigh
	}
}
