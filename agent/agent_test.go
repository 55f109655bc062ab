package agent

import (
	"testing"

	"gridmcts/config"
	"gridmcts/gridworld"

	"github.com/stretchr/testify/require"
)

func newTestSim(t *testing.T, state gridworld.GridState) *gridworld.Simulator {
	t.Helper()
	d := gridworld.DefaultDynamics()
	d.Size = 3
	d.NumObstacles = 0
	d.SlipProb = 0
	sim, err := gridworld.NewSimulator(d, gridworld.NewRand(1))
	require.NoError(t, err, "Simulator should accept valid dynamics")
	require.NoError(t, sim.Restore(state), "Simulator should restore an in-bounds state")
	return sim
}

func TestNew(t *testing.T) {
	t.Run("building every known agent", func(t *testing.T) {
		cfg := config.Default()
		cfg.MCTSIterations = 10
		for _, name := range Names() {
			a, err := New(name, cfg)

			require.NoError(t, err, "Should build %s", name)
			require.Equal(t, name, a.Name(), "Agent should report its name")
		}
	})

	t.Run("rejecting unknown names", func(t *testing.T) {
		_, err := New("alphazero", config.Default())

		require.ErrorIs(t, err, config.ErrInvalid, "Unknown agent should be a configuration error")
	})

	t.Run("rejecting invalid search parameters", func(t *testing.T) {
		cfg := config.Default()
		cfg.MCTSIterations = 0

		_, err := New(MCTSUCTName, cfg)

		require.ErrorIs(t, err, config.ErrInvalid, "Zero iterations should be a configuration error")
	})

	t.Run("resetting only search agents", func(t *testing.T) {
		cfg := config.Default()
		random, _ := New(RandomName, cfg)
		search, _ := New(MCTSRandomName, cfg)

		_, randomResets := random.(Resetter)
		_, searchResets := search.(Resetter)

		require.False(t, randomResets, "Random agent keeps no state")
		require.True(t, searchResets, "Search agent may retain a tree")
	})
}

func TestGreedy(t *testing.T) {
	t.Run("moving towards the goal", func(t *testing.T) {
		sim := newTestSim(t, gridworld.GridState{
			Agent: gridworld.Position{X: 0, Y: 2},
			Goal:  gridworld.Position{X: 2, Y: 2},
		})

		got, _ := Greedy{}.FindAction(sim)

		require.Equal(t, gridworld.Right, got, "Only Right gets closer to the goal")
	})

	t.Run("ignoring obstacles", func(t *testing.T) {
		sim := newTestSim(t, gridworld.GridState{
			Agent:     gridworld.Position{X: 0, Y: 0},
			Goal:      gridworld.Position{X: 0, Y: 2},
			Obstacles: []gridworld.Position{{X: 0, Y: 1}},
		})

		got, _ := Greedy{}.FindAction(sim)

		require.Equal(t, gridworld.Down, got, "Greedy baseline should walk into the obstacle")
	})
}

func TestRandom(t *testing.T) {
	sim := newTestSim(t, gridworld.GridState{Goal: gridworld.Position{X: 2, Y: 2}})

	seen := map[gridworld.Action]bool{}
	for i := 0; i < 200; i++ {
		action, _ := Random{}.FindAction(sim)
		seen[action] = true
	}

	require.Len(t, seen, gridworld.NumActions, "Random agent should draw every action")
}

func TestSearchAgent(t *testing.T) {
	for _, name := range []string{MCTSRandomName, MCTSUCTName} {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			cfg.MCTSIterations = 200
			cfg.MCTSRolloutDepth = 8
			a, err := New(name, cfg)
			require.NoError(t, err, "Should build %s", name)
			sim := newTestSim(t, gridworld.GridState{Goal: gridworld.Position{X: 2, Y: 2}})

			got, metric := a.FindAction(sim)

			require.Contains(t, []gridworld.Action{gridworld.Down, gridworld.Right}, got, "Agent should move towards the goal")
			require.Equal(t, 200, metric.Iterations, "Agent should report search metrics")
		})
	}
}
