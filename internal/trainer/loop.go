// Package trainer fits Gaussian-process hyperparameters by gradient
// descent with random restarts.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"

	"gpfit/internal/dataset"
	"gpfit/internal/gp"
	"gpfit/internal/kernel"
	"gpfit/internal/metrics"
	"gpfit/internal/optimize"
)

// RunConfig captures the knobs required by the fitting loop.
type RunConfig struct {
	Data       dataset.Dataset
	Mixtures   int
	Iters      int
	Restarts   int
	NumWorkers int
	LearnRate  float64
	Noise      float64
	LogEvery   int
	Seed       int64
}

// Result reports the winning restart.
type Result struct {
	Model       *gp.Regressor
	Best        int
	InitialLoss float64
	FinalLoss   float64
	RestartLoss []float64
}

// Run fits cfg.Restarts independently initialized models across a worker
// pool and returns the one with the lowest final loss.
func Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if cfg.Data.Len() == 0 {
		return nil, errors.New("trainer: dataset is empty")
	}
	if cfg.Iters <= 0 {
		return nil, errors.New("trainer: iters must be > 0")
	}
	if cfg.Mixtures <= 0 {
		return nil, errors.New("trainer: mixtures must be > 0")
	}
	if cfg.Restarts <= 0 {
		cfg.Restarts = 1
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 1
	}
	if cfg.NumWorkers > cfg.Restarts {
		cfg.NumWorkers = cfg.Restarts
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 25
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}

	jobs := make(chan int, cfg.Restarts)
	for idx := 0; idx < cfg.Restarts; idx++ {
		jobs <- idx
	}
	close(jobs)

	results := make(chan restartResult, cfg.Restarts)
	var wg sync.WaitGroup
	for w := 0; w < cfg.NumWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results <- fitOne(ctx, cfg, idx)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	res := &Result{Best: -1, RestartLoss: make([]float64, cfg.Restarts)}
	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("restart %d: %w", r.idx, r.err)
			}
			res.RestartLoss[r.idx] = math.NaN()
			continue
		}
		res.RestartLoss[r.idx] = r.final
		log.Printf("restart=%d final_loss=%.4f", r.idx, r.final)
		if res.Best < 0 || r.final < res.FinalLoss {
			res.Best = r.idx
			res.Model = r.model
			res.InitialLoss = r.initial
			res.FinalLoss = r.final
		}
	}
	if res.Best < 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, firstErr
	}
	return res, nil
}

type restartResult struct {
	idx     int
	model   *gp.Regressor
	initial float64
	final   float64
	err     error
}

func fitOne(ctx context.Context, cfg RunConfig, idx int) restartResult {
	out := restartResult{idx: idx}
	rng := rand.New(rand.NewSource(cfg.Seed + 1009*int64(idx)))
	kern := kernel.InitSpectralMixture(
		cfg.Mixtures, cfg.Data.Span(), cfg.Data.Nyquist(), cfg.Data.Variance(), rng)
	model := gp.New(kern, cfg.Data, gp.Config{Noise: cfg.Noise, Mean: cfg.Data.Mean()})
	opt := optimize.NewAdam(optimize.AdamConfig{LearnRate: cfg.LearnRate})

	params := model.Params()
	grad := make([]float64, model.NumParams())
	var window metrics.Window

	for step := 1; step <= cfg.Iters; step++ {
		select {
		case <-ctx.Done():
			out.err = ctx.Err()
			return out
		default:
		}

		start := time.Now()
		loss, err := model.NegLogLik(grad)
		if err != nil {
			out.err = err
			return out
		}
		if math.IsNaN(loss) || math.IsInf(loss, 0) {
			out.err = fmt.Errorf("loss diverged at step %d", step)
			return out
		}
		if step == 1 {
			out.initial = loss
		}
		window.Record(time.Since(start), loss, floats.Norm(grad, 2))

		if idx == 0 && step%cfg.LogEvery == 0 {
			snap := window.Snapshot()
			log.Printf("restart=0 step=%d loss=%.4f grad_norm=%.4f step_ms=%.2f",
				step, snap.LastLoss, snap.AvgGradNorm, snap.AvgStepMS)
		}

		opt.Step(params, grad)
		model.SetParams(params)
	}

	final, err := model.NegLogLik(nil)
	if err != nil {
		out.err = err
		return out
	}
	if math.IsNaN(final) || math.IsInf(final, 0) {
		out.err = errors.New("final loss diverged")
		return out
	}
	out.model = model
	out.final = final
	return out
}
