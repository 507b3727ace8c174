package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Config captures the runtime knobs for a fitting run.
type Config struct {
	Mixtures   int     `yaml:"mixtures"`
	Iters      int     `yaml:"iters"`
	Restarts   int     `yaml:"restarts"`
	NumWorkers int     `yaml:"num_workers"`
	LearnRate  float64 `yaml:"learn_rate"`
	Noise      float64 `yaml:"noise"`
	Samples    int     `yaml:"samples"`
	Seed       int64   `yaml:"seed"`
	LogEvery   int     `yaml:"log_every"`
	DataRoot   string  `yaml:"data_root"`
	PlotOut    string  `yaml:"plot_out"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Mixtures   int
	Iters      int
	Restarts   int
	NumWorkers int
	LearnRate  float64
	Noise      float64
	Samples    int
	Seed       int64
	LogEvery   int
	DataRoot   string
	PlotOut    string
}

// Load reads and validates a Config from YAML.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := parseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Mixtures > 0 {
		c.Mixtures = o.Mixtures
	}
	if o.Iters > 0 {
		c.Iters = o.Iters
	}
	if o.Restarts > 0 {
		c.Restarts = o.Restarts
	}
	if o.NumWorkers > 0 {
		c.NumWorkers = o.NumWorkers
	}
	if o.LearnRate > 0 {
		c.LearnRate = o.LearnRate
	}
	if o.Noise > 0 {
		c.Noise = o.Noise
	}
	if o.Samples > 0 {
		c.Samples = o.Samples
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.DataRoot != "" {
		c.DataRoot = o.DataRoot
	}
	if o.PlotOut != "" {
		c.PlotOut = o.PlotOut
	}
}

// Validate verifies the config is runnable and fills defaults.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Iters <= 0 {
		return fmt.Errorf("iters must be > 0 (got %d)", c.Iters)
	}
	if c.Mixtures <= 0 {
		c.Mixtures = 3
	}
	if c.Restarts <= 0 {
		c.Restarts = 1
	}
	if c.NumWorkers <= 0 {
		c.NumWorkers = 1
	}
	if c.LearnRate <= 0 {
		c.LearnRate = 0.05
	}
	if c.Noise <= 0 {
		c.Noise = 0.1
	}
	if c.Samples <= 0 {
		c.Samples = 80
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 25
	}
	return nil
}

func parseYAML(r io.Reader) (*Config, error) {
	cfg := &Config{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: missing ':'", lineNo)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, "\"'")
		switch key {
		case "mixtures":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: mixtures: %w", lineNo, err)
			}
			cfg.Mixtures = v
		case "iters":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: iters: %w", lineNo, err)
			}
			cfg.Iters = v
		case "restarts":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: restarts: %w", lineNo, err)
			}
			cfg.Restarts = v
		case "num_workers":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: num_workers: %w", lineNo, err)
			}
			cfg.NumWorkers = v
		case "learn_rate":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: learn_rate: %w", lineNo, err)
			}
			cfg.LearnRate = v
		case "noise":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: noise: %w", lineNo, err)
			}
			cfg.Noise = v
		case "samples":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: samples: %w", lineNo, err)
			}
			cfg.Samples = v
		case "seed":
			v, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: seed: %w", lineNo, err)
			}
			cfg.Seed = v
		case "log_every":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: log_every: %w", lineNo, err)
			}
			cfg.LogEvery = v
		case "data_root":
			cfg.DataRoot = value
		case "plot_out":
			cfg.PlotOut = value
		default:
			return nil, fmt.Errorf("line %d: unknown key %s", lineNo, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}
