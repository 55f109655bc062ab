package searcher

import "math"

// uct scores the children of one parent. ln(N) is computed once per parent.
type uct struct {
	c   float64
	lnN float64
}

func newUCT(c float64, N int) uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return uct{c: c, lnN: math.Log(float64(N))}
}

// evaluate returns q/n + c*sqrt(ln(N)/n). Unvisited children score +Inf so
// every child is tried once before any is revisited.
func (u uct) evaluate(q float64, n int) float64 {
	if n == 0 {
		return math.Inf(1)
	}
	return q/float64(n) + u.c*math.Sqrt(u.lnN/float64(n))
}

// mean is the exploitation term alone, used for the final decision.
func mean(q float64, n int) float64 {
	if n == 0 {
		return math.Inf(-1)
	}
	return q / float64(n)
}
