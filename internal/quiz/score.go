package quiz

import "math"

// CalculateScore accumulates weight x value over every answer that maps
// to a question in the provided set and rounds half-away-from-zero to two
// decimal places. Answers with no matching question are skipped; the
// caller is expected to have validated ids against the served selection
// already, so the skip is purely defensive.
func CalculateScore(answers []Answer, questions []Question) float64 {
	byID := make(map[int64]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var total float64
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		total += q.Weight * float64(a.Value)
	}
	return math.Round(total*100) / 100
}
