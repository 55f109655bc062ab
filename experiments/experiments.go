// Package experiments runs every configured agent over a series of seeded
// trials and stores the results.
package experiments

import (
	"fmt"
	"io"
	"time"

	"gridmcts/agent"
	"gridmcts/config"
	"gridmcts/engine"
	"gridmcts/experiments/metrics"
	"gridmcts/gridworld"
	"gridmcts/render"

	"github.com/rs/zerolog/log"
)

type Result struct {
	Configs   []metrics.AgentConfig
	Trials    []metrics.TrialRecord
	Decisions []metrics.DecisionRecord
}

type AgentSummary struct {
	Agent string
	metrics.Summary
}

type Option func(r *runner)

type runner struct {
	cfg   config.Config
	live  io.Writer
	delay time.Duration
}

// WithLive redraws every trial on w, pausing delay between steps.
func WithLive(w io.Writer, delay time.Duration) Option {
	return func(r *runner) {
		r.live = w
		r.delay = delay
	}
}

// TrialSeed is the seed of the n-th trial (from 1). Every agent plays the
// same sequence of seeds.
func TrialSeed(base uint64, trial int) uint64 {
	return base + uint64(trial-1)
}

// Run plays cfg.NumTrials trials for each agent in cfg.Agents.
func Run(cfg config.Config, options ...Option) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	r := &runner{cfg: cfg}
	for _, option := range options {
		option(r)
	}

	agents := make([]agent.Agent, 0, len(cfg.Agents))
	result := Result{}
	for i, name := range cfg.Agents {
		a, err := agent.New(name, cfg)
		if err != nil {
			return Result{}, err
		}
		agents = append(agents, a)
		result.Configs = append(result.Configs, agentConfig(i+1, name, cfg))
	}

	log.Info().Msgf("starting experiment with %d agents and %d trials each...", len(agents), cfg.NumTrials)
	count := 0
	for i, a := range agents {
		for trial := 1; trial <= cfg.NumTrials; trial++ {
			trialMetric, decisions, err := r.runTrial(a, trial)
			if err != nil {
				return Result{}, err
			}
			count++
			result.Trials = append(result.Trials, metrics.TrialRecord{
				ID:          count,
				AgentID:     result.Configs[i].ID,
				TrialMetric: trialMetric,
			})
			for _, d := range decisions {
				result.Decisions = append(result.Decisions, metrics.DecisionRecord{
					Trial:          count,
					DecisionMetric: d,
				})
			}

			log.Info().
				Str("agent", a.Name()).
				Int("trial", trial).
				Float64("reward", trialMetric.TotalReward).
				Int("steps", trialMetric.Steps).
				Str("outcome", trialMetric.Outcome).
				Msgf("completed trial %d of %d", trial, cfg.NumTrials)
		}

		summary := metrics.Summarize(trialsOf(result.Trials, result.Configs[i].ID))
		log.Info().
			Str("agent", a.Name()).
			Float64("mean", summary.Mean).
			Float64("std", summary.StdDev).
			Float64("goal_rate", summary.GoalRate).
			Msgf("average score over %d trials: %.2f", summary.Trials, summary.Mean)
	}
	log.Info().Msg("completed experiment")

	return result, nil
}

func (r *runner) runTrial(a agent.Agent, trial int) (metrics.TrialMetric, []metrics.DecisionMetric, error) {
	seed := TrialSeed(r.cfg.Seed, trial)
	sim, err := gridworld.NewSimulator(gridworld.DynamicsFromConfig(r.cfg), gridworld.NewRand(seed))
	if err != nil {
		return metrics.TrialMetric{}, nil, fmt.Errorf("failed to create simulator: %w", err)
	}

	options := []engine.Option{engine.WithMaxSteps(r.cfg.MaxSteps)}
	if r.live != nil {
		live := render.NewLive(r.live, r.cfg.GridSize, r.delay)
		defer live.Done()
		options = append(options, engine.WithObserver(live.Observe))
	}

	trialMetric, decisions := engine.NewEngine(sim, a, options...).Run(trial, seed)
	return trialMetric, decisions, nil
}

// Summaries aggregates the trials of each agent, in configuration order.
func (r Result) Summaries() []AgentSummary {
	summaries := make([]AgentSummary, 0, len(r.Configs))
	for _, c := range r.Configs {
		summaries = append(summaries, AgentSummary{
			Agent:   c.Name,
			Summary: metrics.Summarize(trialsOf(r.Trials, c.ID)),
		})
	}
	return summaries
}

// Write stores the result under <root>/<name>/<timestamp> and returns that
// directory.
func Write(root, name string, result Result) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(result.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteTrialRecords(result.Trials); err != nil {
		return "", fmt.Errorf("failed to write trial records: %w", err)
	}
	if err := writer.WriteTrialParquet(result.Trials); err != nil {
		return "", fmt.Errorf("failed to write trial archive: %w", err)
	}
	log.Info().Msg("stored trial records")

	if err := writer.WriteDecisionRecords(result.Decisions); err != nil {
		return "", fmt.Errorf("failed to write decision records: %w", err)
	}
	log.Info().Msg("stored decision records")

	if err := writeChart(writer.Path(ChartFile), result.Trials); err != nil {
		return "", err
	}
	log.Info().Msg("stored score chart")

	return writer.Dir(), nil
}

func agentConfig(id int, name string, cfg config.Config) metrics.AgentConfig {
	c := metrics.AgentConfig{ID: id, Name: name}
	switch name {
	case agent.RandomName, agent.GreedyName:
		return c
	case agent.MCTSRandomName:
		c.RolloutPolicy = config.EpsilonGreedy
	case agent.MCTSUCTName:
		c.RolloutPolicy = config.TreeGuided
	default:
		c.RolloutPolicy = cfg.RolloutPolicy
	}
	c.Iterations = cfg.MCTSIterations
	c.RolloutDepth = cfg.MCTSRolloutDepth
	c.ExplorationConstant = cfg.MCTSUCBC
	c.Epsilon = cfg.Epsilon
	c.Transitions = cfg.Transitions
	c.MaxNodes = cfg.MaxNodes
	c.TreeReuse = cfg.TreeReuse
	return c
}

func trialsOf(records []metrics.TrialRecord, agentID int) []metrics.TrialMetric {
	var trials []metrics.TrialMetric
	for _, r := range records {
		if r.AgentID == agentID {
			trials = append(trials, r.TrialMetric)
		}
	}
	return trials
}
