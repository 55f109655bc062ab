package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gridmcts/gridworld"

	"github.com/muesli/termenv"
)

// Live redraws the grid in place after every step of a trial.
type Live struct {
	out   *termenv.Output
	grid  Grid
	size  int
	delay time.Duration
	lines int // lines printed by the previous frame
}

func NewLive(w io.Writer, size int, delay time.Duration) *Live {
	out := termenv.NewOutput(w)
	return &Live{
		out:   out,
		grid:  NewGrid(out.Profile != termenv.Ascii),
		size:  size,
		delay: delay,
	}
}

// Observe draws one frame; its signature matches the trial loop's observer.
func (l *Live) Observe(step int, prev, state gridworld.GridState) {
	if l.lines > 0 {
		l.out.ClearLines(l.lines)
	}
	frame := l.grid.Frame(l.size, prev, state) + Caption(step, prev, state) + "\n"
	fmt.Fprint(l.out, frame)
	l.lines = strings.Count(frame, "\n")
	if l.delay > 0 {
		time.Sleep(l.delay)
	}
}

// Done leaves the last frame on screen and starts a fresh one next time.
func (l *Live) Done() {
	l.lines = 0
}
