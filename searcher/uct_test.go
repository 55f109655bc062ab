package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUCT(t *testing.T) {
	t.Run("scoring visited children", func(t *testing.T) {
		policy := newUCT(math.Sqrt2, 10)

		got := policy.evaluate(6, 3)

		want := 2 + math.Sqrt2*math.Sqrt(math.Log(10)/3)
		require.InDelta(t, want, got, 1e-12, "Score should be mean plus the exploration bonus")
	})

	t.Run("preferring unvisited children", func(t *testing.T) {
		policy := newUCT(math.Sqrt2, 10)

		require.True(t, math.IsInf(policy.evaluate(0, 0), 1), "Unvisited child should score +Inf")
	})

	t.Run("exploiting only when c is zero", func(t *testing.T) {
		policy := newUCT(0, 10)

		require.Equal(t, -1.5, policy.evaluate(-3, 2), "Score should be the mean")
	})

	t.Run("rejecting an unvisited parent", func(t *testing.T) {
		require.Panics(t, func() { newUCT(1, 0) }, "Parent must have been visited")
	})

	t.Run("ranking unvisited children last for the decision", func(t *testing.T) {
		require.True(t, math.IsInf(mean(10, 0), -1), "Unvisited child should have -Inf mean")
		require.Equal(t, 2.5, mean(5, 2), "Mean should be rewards over visits")
	})
}
