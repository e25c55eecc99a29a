package quiz

import (
	"fmt"
	"strconv"
	"strings"
)

// WeightBucket is one of the four canonical weights questions are
// classified into for distribution purposes.
type WeightBucket string

const (
	BucketInverse WeightBucket = "-1"
	BucketBase    WeightBucket = "1"
	BucketRaised  WeightBucket = "1.5"
	BucketDouble  WeightBucket = "2"
)

// bucketTargets is the fixed per-bucket quota of a 30-question selection.
var bucketTargets = map[WeightBucket]int{
	BucketInverse: 5,
	BucketBase:    10,
	BucketRaised:  10,
	BucketDouble:  5,
}

// bucketOrder keeps diagnostics and tests deterministic.
var bucketOrder = []WeightBucket{BucketInverse, BucketBase, BucketRaised, BucketDouble}

// ParseWeight normalizes a stored weight string to a decimal. Source rows
// may carry a comma decimal separator ("1,5"), which parses identically
// to "1.5".
func ParseWeight(raw string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	w, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("parse weight %q: %w", raw, err)
	}
	return w, nil
}

// BucketFor classifies a normalized weight into its canonical bucket.
// Weights outside {-1, 1, 1.5, 2} have no bucket; such questions still
// count toward their category but never toward the weight quotas.
func BucketFor(weight float64) (WeightBucket, bool) {
	switch weight {
	case -1:
		return BucketInverse, true
	case 1:
		return BucketBase, true
	case 1.5:
		return BucketRaised, true
	case 2:
		return BucketDouble, true
	default:
		return "", false
	}
}
