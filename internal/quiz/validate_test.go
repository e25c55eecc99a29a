package quiz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullAnswerSet(questions []Question) []Answer {
	answers := make([]Answer, 0, SelectionSize)
	for _, q := range questions[:SelectionSize] {
		answers = append(answers, Answer{QuestionID: q.ID, Value: 3})
	}
	return answers
}

func TestValidateAnswersAcceptsCompleteSet(t *testing.T) {
	questions := balancedPool()
	assert.NoError(t, ValidateAnswers(fullAnswerSet(questions), questions))
}

func TestValidateAnswersRejectsWrongCount(t *testing.T) {
	questions := balancedPool()
	answers := fullAnswerSet(questions)[:SelectionSize-1]

	err := ValidateAnswers(answers, questions)
	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "answers", validation.Field)
	assert.Contains(t, validation.Reason, "expected 30 answers, got 29")
}

func TestValidateAnswersRejectsOutOfRangeValue(t *testing.T) {
	questions := balancedPool()
	answers := fullAnswerSet(questions)
	answers[4].Value = 6

	err := ValidateAnswers(answers, questions)
	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "answer", validation.Field)
}

func TestValidateAnswersRejectsDuplicates(t *testing.T) {
	questions := balancedPool()
	answers := fullAnswerSet(questions)
	answers[1].QuestionID = answers[0].QuestionID

	err := ValidateAnswers(answers, questions)
	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Contains(t, validation.Reason, "duplicate answer")
}

func TestValidateAnswersRejectsUnknownQuestion(t *testing.T) {
	questions := balancedPool()
	answers := fullAnswerSet(questions)
	answers[7].QuestionID = 9999

	err := ValidateAnswers(answers, questions)
	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Contains(t, validation.Reason, "not part of the active questionnaire")
}

func TestValidateAnswersRejectsMissingID(t *testing.T) {
	questions := balancedPool()
	answers := fullAnswerSet(questions)
	answers[0].QuestionID = 0

	err := ValidateAnswers(answers, questions)
	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Contains(t, validation.Reason, "missing question id")
}
