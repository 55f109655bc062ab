package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"gridmcts/config"
	"gridmcts/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	name := flag.String("name", "gridworld", "Experiment name, used as the output sub-directory")
	seed := flag.Uint64("seed", 0, "Base seed of the first trial (overrides the config when non-zero)")
	trials := flag.Int("trials", 0, "Trials per agent (overrides the config when positive)")
	agents := flag.String("agents", "", "Comma separated agent names (overrides the config when set)")
	out := flag.String("out", "", "Output root directory (overrides the config when set)")
	visualize := flag.Bool("visualize", false, "Redraw the grid after every step")
	delay := flag.Duration("delay", 100*time.Millisecond, "Pause between redrawn steps")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	logLevel, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(logLevel)

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *trials > 0 {
		cfg.NumTrials = *trials
	}
	if *agents != "" {
		cfg.Agents = strings.Split(*agents, ",")
	}
	if *out != "" {
		cfg.OutputDir = *out
	}
	cfg.Visualize = cfg.Visualize || *visualize

	var options []experiments.Option
	if cfg.Visualize {
		options = append(options, experiments.WithLive(os.Stdout, *delay))
	}
	result, err := experiments.Run(cfg, options...)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}

	for _, s := range result.Summaries() {
		log.Info().
			Str("agent", s.Agent).
			Int("trials", s.Trials).
			Float64("mean", s.Mean).
			Float64("std", s.StdDev).
			Float64("median", s.Median).
			Float64("min", s.Min).
			Float64("max", s.Max).
			Float64("goal_rate", s.GoalRate).
			Msg("summary")
	}

	dir, err := experiments.Write(cfg.OutputDir, *name, result)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to store results")
	}
	log.Info().Str("dir", dir).Msg("stored results")
}
