package ticket

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitPicksLargestFittingSize(t *testing.T) {
	// Heights shrink linearly with size; only 5 and below fit.
	measure := func(size float64) (float64, float64) {
		return size * 20, size * 18
	}
	size, clipped := fitConditionsSize(conditionsFontSizes, 100, measure)
	assert.Equal(t, 5.0, size)
	assert.False(t, clipped)
}

func TestFitPrefersTheFirstCandidateWhenItFits(t *testing.T) {
	measure := func(size float64) (float64, float64) {
		return 10, 10
	}
	size, clipped := fitConditionsSize(conditionsFontSizes, 1000, measure)
	assert.Equal(t, 6.0, size)
	assert.False(t, clipped)
}

func TestFitRequiresBothColumnsToFit(t *testing.T) {
	// Second column never fits until the smallest size.
	measure := func(size float64) (float64, float64) {
		return size * 10, size * 30
	}
	size, clipped := fitConditionsSize(conditionsFontSizes, 125, measure)
	assert.Equal(t, 4.0, size)
	assert.False(t, clipped)
}

func TestFitFallsBackToSmallestWhenNothingFits(t *testing.T) {
	measure := func(size float64) (float64, float64) {
		return 10000, 10000
	}
	size, clipped := fitConditionsSize(conditionsFontSizes, 100, measure)
	assert.Equal(t, 4.0, size)
	assert.True(t, clipped)
}

func TestSplitConditionColumnsEvenByLineCount(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(ConditionsOfCarriage), "\n")
	col1, col2 := splitConditionColumns(lines)

	assert.Equal(t, len(lines), len(col1)+len(col2))
	diff := len(col2) - len(col1)
	assert.GreaterOrEqual(t, diff, 0)
	assert.LessOrEqual(t, diff, 1)
}
