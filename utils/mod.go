package utils

import "math"

// ArgMax returns the index of the first item with the highest score, or -1
// for an empty slice. Ties resolve to the earliest index.
func ArgMax[T any](items []T, score func(T) float64) int {
	best := -1
	bestScore := math.Inf(-1)
	for i, item := range items {
		if s := score(item); best == -1 || s > bestScore {
			best = i
			bestScore = s
		}
	}
	return best
}

// ArgMin is ArgMax for the lowest score.
func ArgMin[T any](items []T, score func(T) float64) int {
	return ArgMax(items, func(item T) float64 { return -score(item) })
}
