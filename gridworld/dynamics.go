package gridworld

import "gridmcts/config"

// Dynamics holds the configured parameters of the transition function.
// A Simulator and all of its clones share one immutable Dynamics.
type Dynamics struct {
	Size             int
	SlipProb         float64
	NumObstacles     int
	ObstacleMoveProb float64
	GoalMoveProb     float64

	MovementReward  float64
	ObstaclePenalty float64
	GoalReward      float64
}

func DefaultDynamics() Dynamics {
	return Dynamics{
		Size:             10,
		SlipProb:         0.1,
		NumObstacles:     5,
		ObstacleMoveProb: 0.7,
		GoalMoveProb:     0,
		MovementReward:   -1,
		ObstaclePenalty:  -75,
		GoalReward:       100,
	}
}

// DynamicsFromConfig copies the environment section of cfg.
func DynamicsFromConfig(cfg config.Config) Dynamics {
	return Dynamics{
		Size:             cfg.GridSize,
		SlipProb:         cfg.SlipProb,
		NumObstacles:     cfg.NumObstacles,
		ObstacleMoveProb: cfg.ObstacleMoveProb,
		GoalMoveProb:     cfg.GoalMoveProb,
		MovementReward:   cfg.MovementReward,
		ObstaclePenalty:  cfg.ObstaclePenalty,
		GoalReward:       cfg.GoalReward,
	}
}

func (d Dynamics) Validate() error {
	if d.Size < 2 {
		return config.Invalid("grid_size", d.Size, "must be at least 2")
	}
	if d.NumObstacles < 0 || d.NumObstacles > d.Size*d.Size-2 {
		return config.Invalid("num_obstacles", d.NumObstacles, "must fit in the grid beside agent and goal")
	}
	if err := config.Probability("slip_prob", d.SlipProb); err != nil {
		return err
	}
	if err := config.Probability("obstacle_move_prob", d.ObstacleMoveProb); err != nil {
		return err
	}
	return config.Probability("goal_move_prob", d.GoalMoveProb)
}

// InBounds reports whether p lies on the grid.
func (d Dynamics) InBounds(p Position) bool {
	return p.X >= 0 && p.X < d.Size && p.Y >= 0 && p.Y < d.Size
}

// Clamp moves from p in direction a, staying put at the border.
func (d Dynamics) Clamp(p Position, a Action) Position {
	next := p.Move(a)
	if !d.InBounds(next) {
		return p
	}
	return next
}
