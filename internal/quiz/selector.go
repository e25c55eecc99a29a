package quiz

import (
	"math/rand"
	"sort"
)

// Select draws exactly 30 questions from the active pool such that every
// represented category contributes at least min(3, category size)
// questions and the weight buckets land exactly on {-1:5, 1:10, 1.5:10,
// 2:5}. Order is randomized and carries no meaning; two calls over the
// same pool may return different, equally valid selections.
//
// The draw runs in two passes. Coverage first: each category's shuffled
// list yields up to 3 picks, admitted only while the pick's weight bucket
// still has headroom, so breadth never overshoots the global quotas. Then
// fill: the shuffled remainder tops buckets up to their targets. A single
// flat sample cannot satisfy both constraints at this pool size.
func Select(pool []Question) ([]Question, error) {
	if err := validatePool(pool); err != nil {
		return nil, err
	}

	byCategory := make(map[int][]Question)
	for _, q := range pool {
		byCategory[q.Category] = append(byCategory[q.Category], q)
	}

	selected := make([]Question, 0, SelectionSize)
	picked := make(map[int64]bool, SelectionSize)
	bucketCounts := make(map[WeightBucket]int, len(bucketTargets))

	admit := func(q Question) bool {
		bucket, ok := BucketFor(q.Weight)
		if !ok || bucketCounts[bucket] >= bucketTargets[bucket] {
			return false
		}
		selected = append(selected, q)
		picked[q.ID] = true
		bucketCounts[bucket]++
		return true
	}

	// Coverage pass. Categories are walked in a fixed order; the draw
	// within each category is what randomizes.
	categories := make([]int, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Ints(categories)

	for _, cat := range categories {
		questions := append([]Question(nil), byCategory[cat]...)
		rand.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})

		need := 3
		if len(questions) < need {
			need = len(questions)
		}
		taken := 0
		for _, q := range questions {
			if taken >= need || len(selected) >= SelectionSize {
				break
			}
			if admit(q) {
				taken++
			}
		}
	}

	// Fill pass over the shuffled remainder.
	remaining := make([]Question, 0, len(pool)-len(selected))
	for _, q := range pool {
		if !picked[q.ID] {
			remaining = append(remaining, q)
		}
	}
	rand.Shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})

	for _, q := range remaining {
		if len(selected) >= SelectionSize {
			break
		}
		admit(q)
	}

	// validatePool guaranteed sufficiency, so falling short here means the
	// pool data changed underneath us or the invariant broke.
	if len(selected) != SelectionSize {
		return nil, &PoolExhaustedError{Selected: len(selected)}
	}

	// Final shuffle so presentation order reveals nothing about the
	// coverage/fill split or category grouping.
	rand.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	return selected, nil
}

func validatePool(pool []Question) error {
	bucketCounts := make(map[WeightBucket]int, len(bucketTargets))
	categoryCounts := make(map[int]int)
	for _, q := range pool {
		if bucket, ok := BucketFor(q.Weight); ok {
			bucketCounts[bucket]++
		}
		categoryCounts[q.Category]++
	}

	var exhausted PoolExhaustedError
	for _, bucket := range bucketOrder {
		if bucketCounts[bucket] < bucketTargets[bucket] {
			exhausted.Buckets = append(exhausted.Buckets, BucketDeficit{
				Bucket: bucket,
				Need:   bucketTargets[bucket],
				Have:   bucketCounts[bucket],
			})
		}
	}

	categories := make([]int, 0, len(categoryCounts))
	for cat := range categoryCounts {
		categories = append(categories, cat)
	}
	sort.Ints(categories)
	for _, cat := range categories {
		if categoryCounts[cat] < 3 {
			exhausted.Categories = append(exhausted.Categories, CategoryDeficit{
				Category: cat,
				Need:     3,
				Have:     categoryCounts[cat],
			})
		}
	}

	if len(exhausted.Buckets) > 0 || len(exhausted.Categories) > 0 {
		return &exhausted
	}
	return nil
}
