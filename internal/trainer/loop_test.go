package trainer

import (
	"context"
	"math"
	"testing"

	"gpfit/internal/dataset"
)

func TestRunReducesLoss(t *testing.T) {
	data := dataset.Synthetic(40, 0.1, 7)
	res, err := Run(context.Background(), RunConfig{
		Data:       data,
		Mixtures:   2,
		Iters:      150,
		Restarts:   2,
		NumWorkers: 2,
		LearnRate:  0.05,
		Noise:      0.2,
		LogEvery:   1000,
		Seed:       7,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Model == nil {
		t.Fatalf("no model returned")
	}
	if res.Best < 0 || res.Best >= 2 {
		t.Fatalf("best restart out of range: %d", res.Best)
	}
	if len(res.RestartLoss) != 2 {
		t.Fatalf("expected 2 restart losses, got %d", len(res.RestartLoss))
	}
	if math.IsNaN(res.FinalLoss) || res.FinalLoss >= res.InitialLoss {
		t.Fatalf("loss did not improve: initial=%.4f final=%.4f", res.InitialLoss, res.FinalLoss)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, RunConfig{
		Data:     dataset.Synthetic(20, 0.1, 1),
		Mixtures: 1,
		Iters:    1000,
		Restarts: 1,
	})
	if err == nil {
		t.Fatalf("expected error from cancelled context")
	}
}

func TestRunValidates(t *testing.T) {
	if _, err := Run(context.Background(), RunConfig{Iters: 10, Mixtures: 1}); err == nil {
		t.Fatalf("expected error for empty dataset")
	}
	data := dataset.Synthetic(10, 0.1, 1)
	if _, err := Run(context.Background(), RunConfig{Data: data, Mixtures: 1}); err == nil {
		t.Fatalf("expected error for zero iters")
	}
	if _, err := Run(context.Background(), RunConfig{Data: data, Iters: 10}); err == nil {
		t.Fatalf("expected error for zero mixtures")
	}
}
