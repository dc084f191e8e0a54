// internal/status/buckets.go
package status

// Qualitative bucket boundaries.
// These values define the published contract and MUST NOT be configurable.

const (
	bucketWeak   = 20
	bucketFair   = 40
	bucketGood   = 60
	bucketStrong = 80
)

// Bucket maps a whole percentage onto its qualitative label.
// Boundaries are inclusive on the lower edge: 20 is already "weak".
func Bucket(pct int) string {
	switch {
	case pct < bucketWeak:
		return "none"
	case pct < bucketFair:
		return "weak"
	case pct < bucketGood:
		return "fair"
	case pct < bucketStrong:
		return "good"
	default:
		return "strong"
	}
}
