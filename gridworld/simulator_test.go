package gridworld

import (
	"testing"

	"gridmcts/config"

	"github.com/stretchr/testify/require"
)

func calmDynamics(size int) Dynamics {
	return Dynamics{
		Size:            size,
		MovementReward:  -1,
		ObstaclePenalty: -75,
		GoalReward:      100,
	}
}

func newTestSimulator(t *testing.T, dynamics Dynamics, seed uint64) *Simulator {
	t.Helper()
	sim, err := NewSimulator(dynamics, NewRand(seed))
	require.NoError(t, err, "Simulator should accept valid dynamics")
	return sim
}

func TestNewSimulator(t *testing.T) {
	t.Run("rejecting invalid dynamics", func(t *testing.T) {
		cases := map[string]func(*Dynamics){
			"zero grid size":       func(d *Dynamics) { d.Size = 0 },
			"negative slip":        func(d *Dynamics) { d.SlipProb = -0.5 },
			"obstacle prob over 1": func(d *Dynamics) { d.ObstacleMoveProb = 1.1 },
			"goal prob over 1":     func(d *Dynamics) { d.GoalMoveProb = 2 },
			"too many obstacles":   func(d *Dynamics) { d.Size = 3; d.NumObstacles = 8 },
		}
		for name, mutate := range cases {
			d := DefaultDynamics()
			mutate(&d)

			_, err := NewSimulator(d, NewRand(1))

			require.ErrorIs(t, err, config.ErrInvalid, "Should reject %s", name)
		}
	})

	t.Run("requiring a random source", func(t *testing.T) {
		_, err := NewSimulator(DefaultDynamics(), nil)

		require.Error(t, err, "Should reject a nil random source")
	})
}

func TestReset(t *testing.T) {
	t.Run("placing agent, goal and obstacles", func(t *testing.T) {
		d := calmDynamics(3)
		d.NumObstacles = 7 // every free cell
		sim := newTestSimulator(t, d, 42)

		state := sim.Reset()

		require.Equal(t, Position{0, 0}, state.Agent, "Agent should start at the top-left corner")
		require.Equal(t, Position{2, 2}, state.Goal, "Goal should start at the opposite corner")
		require.Len(t, state.Obstacles, 7, "Should sample the configured number of obstacles")
		seen := map[Position]bool{}
		for _, o := range state.Obstacles {
			require.NotEqual(t, state.Agent, o, "Obstacle should not spawn on the agent")
			require.NotEqual(t, state.Goal, o, "Obstacle should not spawn on the goal")
			require.False(t, seen[o], "Obstacles should be unique")
			seen[o] = true
		}
		require.Len(t, sim.History(), 1, "History should restart with the initial state")
	})
}

func TestStep(t *testing.T) {
	t.Run("walking a deterministic shortest path regardless of seed", func(t *testing.T) {
		var paths [][]GridState
		for seed := uint64(1); seed <= 5; seed++ {
			sim := newTestSimulator(t, calmDynamics(4), seed)
			plan := []Action{Right, Right, Right, Down, Down, Down}

			for i, a := range plan {
				_, reward, done := sim.Step(a)
				if i < len(plan)-1 {
					require.Equal(t, -1.0, reward, "Should pay the movement cost")
					require.False(t, done, "Should continue before the goal")
				} else {
					require.Equal(t, 100.0, reward, "Should collect the goal reward")
					require.True(t, done, "Should terminate at the goal")
				}
			}
			paths = append(paths, sim.History())
		}
		for _, path := range paths[1:] {
			require.Equal(t, paths[0], path, "Path should not depend on the seed")
		}
	})

	t.Run("clamping moves at the border", func(t *testing.T) {
		sim := newTestSimulator(t, calmDynamics(3), 1)

		state, reward, done := sim.Step(Up)

		require.Equal(t, Position{0, 0}, state.Agent, "Out-of-bounds move should be a no-op")
		require.Equal(t, -1.0, reward, "No-op move still pays the movement cost")
		require.False(t, done, "No-op move should not terminate")
	})

	t.Run("colliding with adjacent obstacles", func(t *testing.T) {
		sim := newTestSimulator(t, calmDynamics(3), 1)
		require.NoError(t, sim.Restore(GridState{
			Agent:     Position{1, 1},
			Goal:      Position{2, 2},
			Obstacles: []Position{{1, 0}, {0, 1}, {2, 1}},
		}))

		for _, a := range []Action{Up, Left, Right} {
			_, reward, done := sim.Clone().Step(a)

			require.Equal(t, -75.0, reward, "Moving %v into an obstacle should pay the penalty", a)
			require.True(t, done, "Moving %v into an obstacle should terminate", a)
		}

		state, reward, done := sim.Clone().Step(Down)
		require.Equal(t, Position{1, 2}, state.Agent, "Safe move should reach the free cell")
		require.Equal(t, -1.0, reward, "Safe move should pay the movement cost")
		require.False(t, done, "Safe move should not terminate")
	})

	t.Run("always slipping at probability one", func(t *testing.T) {
		d := calmDynamics(5)
		d.SlipProb = 1
		sim := newTestSimulator(t, d, 3)
		require.NoError(t, sim.Restore(GridState{Agent: Position{2, 2}, Goal: Position{4, 4}}))

		moved := map[Position]bool{}
		for i := 0; i < 200; i++ {
			c := sim.Clone()
			state, _, _ := c.Step(Up)
			moved[state.Agent] = true
		}

		require.Len(t, moved, 4, "Slipped actions should reach every neighbour")
	})

	t.Run("never slipping at probability zero", func(t *testing.T) {
		sim := newTestSimulator(t, calmDynamics(5), 3)
		require.NoError(t, sim.Restore(GridState{Agent: Position{2, 2}, Goal: Position{4, 4}}))

		for i := 0; i < 200; i++ {
			state, _, _ := sim.Clone().Step(Up)
			require.Equal(t, Position{2, 1}, state.Agent, "Requested action should always execute")
		}
	})

	t.Run("moving the goal at the probability boundaries", func(t *testing.T) {
		d := calmDynamics(6)
		d.GoalMoveProb = 0
		still := newTestSimulator(t, d, 9)
		d.GoalMoveProb = 1
		drifting := newTestSimulator(t, d, 9)

		moves := 0
		for i := 0; i < 50; i++ {
			s, _, _ := still.Step(Up)
			require.Equal(t, Position{5, 5}, s.Goal, "Goal should never move at probability 0")

			before := drifting.State().Goal
			after, _, _ := drifting.Step(Up)
			if before != after.Goal {
				moves++
			}
		}
		require.Greater(t, moves, 10, "Goal should move whenever possible at probability 1")
	})

	t.Run("keeping obstacles off the agent and goal", func(t *testing.T) {
		d := calmDynamics(5)
		d.NumObstacles = 10
		d.ObstacleMoveProb = 1
		d.GoalMoveProb = 1
		sim := newTestSimulator(t, d, 11)

		for i := 0; i < 500; i++ {
			before := sim.State()
			state, _, done := sim.Step(Action(i % NumActions))
			require.False(t, state.HasObstacle(state.Goal), "Goal and obstacles should never overlap")
			for j, o := range state.Obstacles {
				if o != before.Obstacles[j] {
					require.NotEqual(t, state.Agent, o, "Obstacle should not move onto the agent")
				}
			}
			if done {
				sim.Reset()
			}
		}
	})

	t.Run("appending to history", func(t *testing.T) {
		sim := newTestSimulator(t, calmDynamics(4), 1)

		sim.Step(Right)
		sim.Step(Down)

		history := sim.History()
		require.Len(t, history, 3, "History should hold the initial and each stepped state")
		require.Equal(t, Position{1, 1}, history[2].Agent, "History should end with the latest state")
	})

	t.Run("panicking on unknown action", func(t *testing.T) {
		sim := newTestSimulator(t, calmDynamics(4), 1)

		require.Panics(t, func() { sim.Step(Action(9)) }, "Unknown actions are programming errors")
	})
}

func TestClone(t *testing.T) {
	t.Run("stepping a clone leaves the original untouched", func(t *testing.T) {
		for size := 2; size <= 6; size++ {
			d := DefaultDynamics()
			d.Size = size
			d.NumObstacles = size - 1
			d.SlipProb = 0.3
			sim := newTestSimulator(t, d, uint64(size))

			for step := 0; step < 20 && !sim.IsTerminal(); step++ {
				before := sim.State()
				historyLen := len(sim.History())

				clone := sim.Clone()
				for _, a := range Actions() {
					if clone.IsTerminal() {
						break
					}
					clone.Step(a)
				}

				require.True(t, before.Equal(sim.State()), "Original state should not change")
				require.Len(t, sim.History(), historyLen, "Original history should not change")

				if _, _, done := sim.Step(Action(step % NumActions)); done {
					break
				}
			}
		}
	})

	t.Run("starting with an empty history", func(t *testing.T) {
		sim := newTestSimulator(t, DefaultDynamics(), 1)
		sim.Step(Down)

		clone := sim.Clone()

		require.Empty(t, clone.History(), "Clone history should start empty")
		require.True(t, sim.State().Equal(clone.State()), "Clone should copy the current state")
	})

	t.Run("replaying identical actions with shared seeds", func(t *testing.T) {
		d := DefaultDynamics()
		d.SlipProb = 0.3
		d.GoalMoveProb = 0.5
		sim := newTestSimulator(t, d, 5)
		a := sim.CloneWithRand(NewRand(77))
		b := sim.CloneWithRand(NewRand(77))

		for i := 0; i < 30; i++ {
			action := Action(i % NumActions)
			sa, ra, da := a.Step(action)
			sb, rb, db := b.Step(action)

			require.True(t, sa.Equal(sb), "Clones should evolve identically")
			require.Equal(t, ra, rb, "Clones should earn identical rewards")
			require.Equal(t, da, db, "Clones should terminate together")
			if da {
				break
			}
		}
	})
}

func TestRestore(t *testing.T) {
	sim := newTestSimulator(t, calmDynamics(3), 1)

	err := sim.Restore(GridState{Agent: Position{0, 0}, Goal: Position{3, 3}})

	require.Error(t, err, "Should reject out-of-bounds positions")
}
