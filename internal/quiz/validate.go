package quiz

import "fmt"

// ValidateAnswers rejects a submission whose answers are malformed:
// wrong count, out-of-range values, duplicate ids, or ids that map to no
// active question. Runs before any scoring.
func ValidateAnswers(answers []Answer, questions []Question) error {
	if len(answers) != SelectionSize {
		return &ValidationError{
			Field:  "answers",
			Reason: fmt.Sprintf("expected %d answers, got %d", SelectionSize, len(answers)),
		}
	}

	byID := make(map[int64]bool, len(questions))
	for _, q := range questions {
		byID[q.ID] = true
	}

	seen := make(map[int64]bool, len(answers))
	for _, a := range answers {
		if a.QuestionID == 0 {
			return &ValidationError{Field: "question_id", Reason: "missing question id"}
		}
		if a.Value < AnswerMin || a.Value > AnswerMax {
			return &ValidationError{
				Field:  "answer",
				Reason: fmt.Sprintf("value %d for question %d outside [%d,%d]", a.Value, a.QuestionID, AnswerMin, AnswerMax),
			}
		}
		if seen[a.QuestionID] {
			return &ValidationError{
				Field:  "question_id",
				Reason: fmt.Sprintf("duplicate answer for question %d", a.QuestionID),
			}
		}
		seen[a.QuestionID] = true
		if !byID[a.QuestionID] {
			return &ValidationError{
				Field:  "question_id",
				Reason: fmt.Sprintf("question %d is not part of the active questionnaire", a.QuestionID),
			}
		}
	}
	return nil
}
