package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArgMax(t *testing.T) {
	identity := func(x float64) float64 { return x }

	t.Run("returning the first maximum", func(t *testing.T) {
		require.Equal(t, 1, ArgMax([]float64{1, 3, 2, 3}, identity), "Ties should resolve to the earliest index")
	})

	t.Run("preferring infinity", func(t *testing.T) {
		require.Equal(t, 2, ArgMax([]float64{5, 7, math.Inf(1), math.Inf(1)}, identity), "First infinite score should win")
	})

	t.Run("handling all negative infinity", func(t *testing.T) {
		require.Equal(t, 0, ArgMax([]float64{math.Inf(-1), math.Inf(-1)}, identity), "Should still pick the first item")
	})

	t.Run("handling empty input", func(t *testing.T) {
		require.Equal(t, -1, ArgMax([]float64{}, identity), "Empty input has no maximum")
	})
}

func TestArgMin(t *testing.T) {
	require.Equal(t, 2, ArgMin([]int{4, 3, 1, 1}, func(x int) float64 { return float64(x) }), "Ties should resolve to the earliest index")
}
