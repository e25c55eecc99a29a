package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindExtremeChoicesFiltersScaleEnds(t *testing.T) {
	questions := []Question{
		{ID: 1, Weight: 2, Category: 1},
		{ID: 2, Weight: 1, Category: 2},
		{ID: 3, Weight: -1, Category: 3},
	}
	answers := []Answer{
		{QuestionID: 1, Value: 5},
		{QuestionID: 2, Value: 3},
		{QuestionID: 3, Value: 1},
		{QuestionID: 99, Value: 5}, // unknown question, ignored
	}

	extremes := FindExtremeChoices(answers, questions)
	require.Len(t, extremes, 2)
	assert.Equal(t, ExtremeChoice{QuestionID: 1, Value: 5, Category: 1, Weight: 2}, extremes[0])
	assert.Equal(t, ExtremeChoice{QuestionID: 3, Value: 1, Category: 3, Weight: -1}, extremes[1])
}

func TestExtremeCategoriesPositiveWeights(t *testing.T) {
	questions := []Question{
		{ID: 1, Weight: 2, Category: 1, CategoryLabel: "finances"},
		{ID: 2, Weight: 1, Category: 2, CategoryLabel: "language"},
	}
	extremes := []ExtremeChoice{
		{QuestionID: 1, Value: 5, Category: 1, Weight: 2},
		{QuestionID: 2, Value: 1, Category: 2, Weight: 1},
	}

	result := ExtremeCategories(extremes, questions)
	require.Len(t, result, 2)
	assert.True(t, result[1].HasHigh)
	assert.False(t, result[1].HasLow)
	assert.Equal(t, "finances", result[1].Label)
	assert.True(t, result[2].HasLow)
	assert.False(t, result[2].HasHigh)
}

func TestExtremeCategoriesInvertNegativeWeights(t *testing.T) {
	questions := []Question{{ID: 1, Weight: -1, Category: 4, CategoryLabel: "risk"}}

	// A raw 5 on a negative-weight question is a felt-low signal.
	result := ExtremeCategories([]ExtremeChoice{
		{QuestionID: 1, Value: 5, Category: 4, Weight: -1},
	}, questions)
	assert.True(t, result[4].HasLow)
	assert.False(t, result[4].HasHigh)

	// And a raw 1 is felt-high.
	result = ExtremeCategories([]ExtremeChoice{
		{QuestionID: 1, Value: 1, Category: 4, Weight: -1},
	}, questions)
	assert.True(t, result[4].HasHigh)
	assert.False(t, result[4].HasLow)
}

func TestExtremeCategoriesContradiction(t *testing.T) {
	questions := []Question{
		{ID: 1, Weight: 2, Category: 1},
		{ID: 2, Weight: 1, Category: 1},
	}
	extremes := []ExtremeChoice{
		{QuestionID: 1, Value: 5, Category: 1, Weight: 2},
		{QuestionID: 2, Value: 1, Category: 1, Weight: 1},
	}

	result := ExtremeCategories(extremes, questions)
	require.Len(t, result, 1)
	assert.True(t, result[1].HasLow)
	assert.True(t, result[1].HasHigh)
}
