// Package engine runs single trials of an agent against the simulator.
package engine

import (
	"time"

	"gridmcts/agent"
	"gridmcts/experiments/metrics"
	"gridmcts/gridworld"

	"github.com/rs/zerolog/log"
)

const DefaultMaxSteps = 200

// Observer is called after every step with the layouts before and after it.
type Observer func(step int, prev, state gridworld.GridState)

type Option func(e *Engine)

type Engine struct {
	sim      *gridworld.Simulator
	agent    agent.Agent
	maxSteps int
	observer Observer
}

func WithMaxSteps(steps int) Option {
	return func(e *Engine) {
		if steps > 0 {
			e.maxSteps = steps
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

func NewEngine(sim *gridworld.Simulator, a agent.Agent, options ...Option) *Engine {
	e := &Engine{
		sim:      sim,
		agent:    a,
		maxSteps: DefaultMaxSteps,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run resets the simulator and lets the agent act until the episode ends or
// the step limit is reached.
func (e *Engine) Run(trial int, seed uint64) (metrics.TrialMetric, []metrics.DecisionMetric) {
	start := time.Now()
	state := e.sim.Reset()
	if r, ok := e.agent.(agent.Resetter); ok {
		r.Reset()
	}
	if e.observer != nil {
		e.observer(0, state, state)
	}

	trialMetric := metrics.TrialMetric{
		Agent:     e.agent.Name(),
		Trial:     trial,
		Seed:      seed,
		StartTime: start,
	}
	decisions := make([]metrics.DecisionMetric, 0, e.maxSteps)

	done := false
	for step := 1; !done && step <= e.maxSteps; step++ {
		action, searchMetric := e.agent.FindAction(e.sim)
		decisions = append(decisions, metrics.DecisionMetric{
			Step:         step,
			Action:       action.String(),
			SearchMetric: searchMetric,
		})

		prev := state
		var reward float64
		state, reward, done = e.sim.Step(action)
		trialMetric.TotalReward += reward
		trialMetric.Steps = step

		log.Debug().
			Str("agent", e.agent.Name()).
			Int("step", step).
			Stringer("action", action).
			Float64("reward", reward).
			Stringer("agent_pos", state.Agent).
			Msg("step")
		if e.observer != nil {
			e.observer(step, prev, state)
		}
	}

	trialMetric.Outcome = outcome(state, done)
	trialMetric.EndTime = time.Now()
	trialMetric.Duration = trialMetric.EndTime.Sub(start)
	return trialMetric, decisions
}

func outcome(state gridworld.GridState, done bool) string {
	switch {
	case !done:
		return metrics.OutcomeTimeout
	case state.HasObstacle(state.Agent):
		return metrics.OutcomeObstacle
	default:
		return metrics.OutcomeGoal
	}
}
