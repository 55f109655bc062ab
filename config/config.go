// Package config loads experiment settings from YAML files.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Rollout policy names
const (
	EpsilonGreedy = "epsilon-greedy"
	TreeGuided    = "tree-guided"
)

// Transition modelling names
const (
	FixedTransitions  = "fixed"
	ChanceTransitions = "chance"
)

type Config struct {
	// Environment
	GridSize         int     `yaml:"grid_size"`
	SlipProb         float64 `yaml:"slip_prob"`
	NumObstacles     int     `yaml:"num_obstacles"`
	ObstacleMoveProb float64 `yaml:"obstacle_move_prob"`
	GoalMoveProb     float64 `yaml:"goal_move_prob"`

	// Rewards
	MovementReward  float64 `yaml:"movement_reward"`
	ObstaclePenalty float64 `yaml:"obstacle_penalty"`
	GoalReward      float64 `yaml:"goal_reward"`

	// Agents
	Agents           []string `yaml:"agents"`
	MCTSIterations   int      `yaml:"mcts_iterations"`
	MCTSRolloutDepth int      `yaml:"mcts_rollout_depth"`
	MCTSUCBC         float64  `yaml:"mcts_ucb_c"`
	RolloutPolicy    string   `yaml:"rollout_policy"`
	Epsilon          float64  `yaml:"epsilon"`
	Transitions      string   `yaml:"transitions"`
	MaxNodes         int      `yaml:"max_nodes"`
	TreeReuse        bool     `yaml:"tree_reuse"`

	// Experiment
	NumTrials int    `yaml:"num_trials"`
	MaxSteps  int    `yaml:"max_steps"`
	Seed      uint64 `yaml:"seed"`
	Visualize bool   `yaml:"visualize"`
	OutputDir string `yaml:"output_dir"`
}

// Default returns the settings used when a key is missing from the file.
func Default() Config {
	return Config{
		GridSize:         10,
		SlipProb:         0.1,
		NumObstacles:     5,
		ObstacleMoveProb: 0.7,
		GoalMoveProb:     0,
		MovementReward:   -1,
		ObstaclePenalty:  -75,
		GoalReward:       100,
		Agents:           []string{"random", "greedy", "mcts-random", "mcts-uct"},
		MCTSIterations:   500,
		MCTSRolloutDepth: 50,
		MCTSUCBC:         math.Sqrt2,
		RolloutPolicy:    EpsilonGreedy,
		Epsilon:          0.1,
		Transitions:      FixedTransitions,
		NumTrials:        10,
		MaxSteps:         200,
		Seed:             1,
		OutputDir:        "results",
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the experiment-level settings. Dynamics and search
// parameters are checked again by the constructors that consume them.
func (c Config) Validate() error {
	if c.GridSize < 2 {
		return Invalid("grid_size", c.GridSize, "must be at least 2")
	}
	if c.NumObstacles < 0 || c.NumObstacles > c.GridSize*c.GridSize-2 {
		return Invalid("num_obstacles", c.NumObstacles, "must fit in the grid beside agent and goal")
	}
	for field, p := range map[string]float64{
		"slip_prob":          c.SlipProb,
		"obstacle_move_prob": c.ObstacleMoveProb,
		"goal_move_prob":     c.GoalMoveProb,
		"epsilon":            c.Epsilon,
	} {
		if err := Probability(field, p); err != nil {
			return err
		}
	}
	if len(c.Agents) == 0 {
		return Invalid("agents", c.Agents, "must name at least one agent")
	}
	if c.MCTSIterations <= 0 {
		return Invalid("mcts_iterations", c.MCTSIterations, "must be positive")
	}
	if c.MCTSRolloutDepth < 0 {
		return Invalid("mcts_rollout_depth", c.MCTSRolloutDepth, "must not be negative")
	}
	if c.MCTSUCBC < 0 || math.IsNaN(c.MCTSUCBC) {
		return Invalid("mcts_ucb_c", c.MCTSUCBC, "must not be negative")
	}
	if c.RolloutPolicy != EpsilonGreedy && c.RolloutPolicy != TreeGuided {
		return Invalid("rollout_policy", c.RolloutPolicy, "must be epsilon-greedy or tree-guided")
	}
	if c.Transitions != FixedTransitions && c.Transitions != ChanceTransitions {
		return Invalid("transitions", c.Transitions, "must be fixed or chance")
	}
	if c.MaxNodes < 0 {
		return Invalid("max_nodes", c.MaxNodes, "must not be negative")
	}
	if c.NumTrials <= 0 {
		return Invalid("num_trials", c.NumTrials, "must be positive")
	}
	if c.MaxSteps <= 0 {
		return Invalid("max_steps", c.MaxSteps, "must be positive")
	}
	return nil
}
