package quiz

// FindExtremeChoices returns every answer sitting at either end of the
// 1-5 scale, joined with its question's category and weight. Answers
// whose question id is not in the provided set are ignored.
func FindExtremeChoices(answers []Answer, questions []Question) []ExtremeChoice {
	byID := make(map[int64]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var extremes []ExtremeChoice
	for _, a := range answers {
		if a.Value != AnswerMin && a.Value != AnswerMax {
			continue
		}
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		extremes = append(extremes, ExtremeChoice{
			QuestionID: a.QuestionID,
			Value:      a.Value,
			Category:   q.Category,
			Weight:     q.Weight,
		})
	}
	return extremes
}

// ExtremeCategories folds extreme choices into per-category felt-low /
// felt-high flags. Negative-weight questions have inverted polarity: a
// raw 5 on such a question is the felt-low signal and a raw 1 the
// felt-high one. Both flags set on one category is the contradiction
// case the feedback composer calls out.
func ExtremeCategories(extremes []ExtremeChoice, questions []Question) map[int]CategoryExtremes {
	labels := make(map[int]string)
	for _, q := range questions {
		if q.CategoryLabel != "" {
			labels[q.Category] = q.CategoryLabel
		}
	}

	result := make(map[int]CategoryExtremes)
	for _, e := range extremes {
		feltHigh := e.Value == AnswerMax
		if e.Weight < 0 {
			feltHigh = !feltHigh
		}

		entry := result[e.Category]
		entry.Label = labels[e.Category]
		if feltHigh {
			entry.HasHigh = true
		} else {
			entry.HasLow = true
		}
		result[e.Category] = entry
	}
	return result
}
