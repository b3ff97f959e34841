// Package config loads the planner's runtime configuration from YAML. It
// follows the same double round-trip viper uses elsewhere in this codebase
// for ad-hoc config: an outer envelope decouples "what kind of config is
// this" from "what does it contain", so the same loader can be reused if
// this module ever grows a second config shape.
package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// OuterConfig is the envelope every config file is wrapped in before
// unmarshalling into the real, typed config below it.
type OuterConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// PlannerConfig drives a single run of the anyhop CLI: which bundled domain to
// plan in, which driver/strategy and frontier to use, how long to search,
// and where the dashboard should listen.
type PlannerConfig struct {
	// Domain selects a bundled domain: "blocksworld", "blocksworld-large", "tsp", or "gridworld".
	Domain string `mapstructure:"domain"`
	// Strategy selects the driver: "dfs", "random", "random-incremental", or "random-tracked".
	Strategy string `mapstructure:"strategy"`
	// Frontier selects the anytime DFS driver's frontier: "stack", "hybrid", or "montecarlo".
	// Only consulted when Strategy is "dfs".
	Frontier string `mapstructure:"frontier"`
	// MaxSeconds bounds every driver's wall-clock budget.
	MaxSeconds float64 `mapstructure:"maxSeconds"`
	// RandomSeed seeds the planner's single RNG. Zero means "use a fixed,
	// reproducible default seed", never the process clock.
	RandomSeed int64 `mapstructure:"randomSeed"`
	// Deadline optionally overrides MaxSeconds with a duration string,
	// mirroring the trainer's TrainingDeadline map.
	Deadline map[string]string `mapstructure:"deadline"`
	// Dashboard holds the live-progress server's host/port.
	Dashboard map[string]string `mapstructure:"dashboard"`
}

// Default returns the configuration the CLI falls back to when no -config
// flag is given.
func Default() *PlannerConfig {
	return &PlannerConfig{
		Domain:     "blocksworld",
		Strategy:   "dfs",
		Frontier:   "stack",
		MaxSeconds: 5,
		RandomSeed: 1,
		Dashboard: map[string]string{
			"host": "localhost",
			"port": "8080",
		},
	}
}

// DashboardAddr returns the host:port the dashboard server should bind to.
func (cfg *PlannerConfig) DashboardAddr() string {
	host := cfg.Dashboard["host"]
	port := cfg.Dashboard["port"]
	if port == "" {
		port = "8080"
	}
	return host + ":" + port
}

// WithDeadline returns a context extended by the configured deadline, if
// Deadline.duration parses, falling back to MaxSeconds, then to an
// uncancelable-but-for-parent context if neither is set.
func (cfg *PlannerConfig) WithDeadline(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if val, ok := cfg.Deadline["duration"]; ok {
		duration, err := time.ParseDuration(val)
		if err != nil {
			return nil, nil, err
		}
		innerCtx, cancel := context.WithTimeout(ctx, duration)
		return innerCtx, cancel, nil
	}
	if cfg.MaxSeconds > 0 {
		innerCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.MaxSeconds*float64(time.Second)))
		return innerCtx, cancel, nil
	}
	defaultCtx, cancel := context.WithCancel(ctx)
	return defaultCtx, cancel, nil
}

// Load reads a YAML file wrapped in an OuterConfig envelope and unmarshals
// its Def section into a PlannerConfig.
func Load(path string) (*PlannerConfig, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}

	outer := &OuterConfig{}
	if err := vp.Unmarshal(outer); err != nil {
		return nil, err
	}

	spec, err := yaml.Marshal(outer.Def)
	if err != nil {
		return nil, err
	}

	inner := Default()
	if err := yaml.Unmarshal(spec, inner); err != nil {
		return nil, err
	}
	return inner, nil
}
