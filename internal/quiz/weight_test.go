package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeightNormalizesCommaDecimals(t *testing.T) {
	cases := map[string]float64{
		"1":     1,
		"1.5":   1.5,
		"1,5":   1.5,
		"-1":    -1,
		" 2 ":   2,
		"-1,25": -1.25,
	}
	for raw, want := range cases {
		got, err := ParseWeight(raw)
		require.NoError(t, err, "raw %q", raw)
		assert.InDelta(t, want, got, 1e-9, "raw %q", raw)
	}
}

func TestParseWeightRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "abc", "1,5,0"} {
		_, err := ParseWeight(raw)
		assert.Error(t, err, "raw %q", raw)
	}
}

func TestBucketFor(t *testing.T) {
	cases := []struct {
		weight float64
		bucket WeightBucket
		ok     bool
	}{
		{-1, BucketInverse, true},
		{1, BucketBase, true},
		{1.5, BucketRaised, true},
		{2, BucketDouble, true},
		{0, "", false},
		{3, "", false},
		{-1.5, "", false},
	}
	for _, tc := range cases {
		bucket, ok := BucketFor(tc.weight)
		assert.Equal(t, tc.ok, ok, "weight %v", tc.weight)
		assert.Equal(t, tc.bucket, bucket, "weight %v", tc.weight)
	}
}
