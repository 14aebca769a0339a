// Package config loads the tool's configuration: ambient settings from the
// environment and the per-run options from the command line.
package config

import (
	"fmt"
	"runtime"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment-driven, ambient configuration.
type Config struct {
	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	Telemetry struct {
		// Addr enables the metrics HTTP listener when non-empty,
		// e.g. ":9090".
		Addr string `env:"ANNEAL_METRICS_ADDR"`
	}
	// WorkerCount overrides the worker count used with -multithreading.
	// Zero means runtime.NumCPU().
	WorkerCount int `env:"ANNEAL_WORKER_COUNT" envDefault:"0"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("ANNEAL_WORKER_COUNT must be non-negative, got %d", cfg.WorkerCount)
	}
	return cfg, nil
}

// Workers resolves the effective worker count for multithreaded evaluation.
func (c *Config) Workers() int {
	if c.WorkerCount > 0 {
		return c.WorkerCount
	}
	return runtime.NumCPU()
}

// Options are the per-run settings from the command line. Flag parsing
// itself lives in the command; validation lives here.
type Options struct {
	Input          string
	Output         string
	Alpha          float64
	Triangle       bool
	Sample         int
	Multithreading bool
	Seed           int64
}

// Validate rejects option combinations that cannot produce a run. It fails
// fast, before any image is decoded or any annealing work begins.
func (o *Options) Validate() error {
	if o.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if o.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if o.Alpha <= 0 || o.Alpha >= 1 {
		// Clamping would break the strictly-decreasing temperature
		// invariant, so out-of-range values are rejected outright.
		return fmt.Errorf("alpha must be in (0,1), got %v", o.Alpha)
	}
	if o.Sample < 0 {
		return fmt.Errorf("sample size must be non-negative, got %d", o.Sample)
	}
	return nil
}
