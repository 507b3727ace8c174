package config

import (
	"strings"
	"testing"
)

func TestParseAndValidate(t *testing.T) {
	input := `
# demo run
mixtures: 4
iters: 200
learn_rate: 0.02
noise: "0.15"
plot_out: out/fit.png
`
	cfg, err := parseYAML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseYAML: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Mixtures != 4 || cfg.Iters != 200 {
		t.Fatalf("unexpected values %+v", cfg)
	}
	if cfg.LearnRate != 0.02 || cfg.Noise != 0.15 {
		t.Fatalf("unexpected floats %+v", cfg)
	}
	if cfg.PlotOut != "out/fit.png" {
		t.Fatalf("unexpected plot_out %q", cfg.PlotOut)
	}
	if cfg.Restarts != 1 || cfg.NumWorkers != 1 || cfg.LogEvery != 25 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestParseRejectsUnknownKey(t *testing.T) {
	if _, err := parseYAML(strings.NewReader("bogus: 1\n")); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestValidateRequiresIters(t *testing.T) {
	cfg := &Config{Mixtures: 2}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing iters")
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := &Config{Iters: 100, Mixtures: 3, LearnRate: 0.05}
	cfg.ApplyOverrides(Overrides{Iters: 500, DataRoot: "/data"})
	if cfg.Iters != 500 {
		t.Fatalf("override not applied: %d", cfg.Iters)
	}
	if cfg.Mixtures != 3 || cfg.LearnRate != 0.05 {
		t.Fatalf("zero overrides clobbered config: %+v", cfg)
	}
	if cfg.DataRoot != "/data" {
		t.Fatalf("data root not applied: %q", cfg.DataRoot)
	}
}
