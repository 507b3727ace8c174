package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gpfit/internal/config"
	"gpfit/internal/dataset"
	"gpfit/internal/plotting"
	"gpfit/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "configs/demo.yaml", "Path to YAML config")
	mixtures := flag.Int("mixtures", 0, "Number of spectral mixture components")
	iters := flag.Int("iters", 0, "Number of optimization steps")
	restarts := flag.Int("restarts", 0, "Number of random restarts")
	numWorkers := flag.Int("num-workers", 0, "Number of restart workers")
	learnRate := flag.Float64("learn-rate", 0, "Adam learning rate")
	noise := flag.Float64("noise", 0, "Initial observation noise")
	samples := flag.Int("samples", 0, "Synthetic dataset size")
	seed := flag.Int64("seed", 0, "PRNG seed")
	logEvery := flag.Int("log-every", 0, "Log every N steps")
	dataRoot := flag.String("data-root", "", "Directory of series CSV files")
	plotOut := flag.String("plot-out", "", "Posterior plot output path")

	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	cfg.ApplyOverrides(config.Overrides{
		Mixtures:   *mixtures,
		Iters:      *iters,
		Restarts:   *restarts,
		NumWorkers: *numWorkers,
		LearnRate:  *learnRate,
		Noise:      *noise,
		Samples:    *samples,
		Seed:       *seed,
		LogEvery:   *logEvery,
		DataRoot:   *dataRoot,
		PlotOut:    *plotOut,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	var data dataset.Dataset
	if cfg.DataRoot != "" {
		data, err = dataset.LoadAll(cfg.DataRoot)
		if err != nil {
			log.Fatalf("load series under %s: %v", cfg.DataRoot, err)
		}
		log.Printf("root=%s observations=%d", cfg.DataRoot, data.Len())
	} else {
		data = dataset.Synthetic(cfg.Samples, cfg.Noise, cfg.Seed)
		log.Printf("synthetic observations=%d noise=%.3f", data.Len(), cfg.Noise)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := trainer.Run(ctx, trainer.RunConfig{
		Data:       data,
		Mixtures:   cfg.Mixtures,
		Iters:      cfg.Iters,
		Restarts:   cfg.Restarts,
		NumWorkers: cfg.NumWorkers,
		LearnRate:  cfg.LearnRate,
		Noise:      cfg.Noise,
		LogEvery:   cfg.LogEvery,
		Seed:       cfg.Seed,
	})
	if err != nil {
		log.Fatalf("fit failed: %v", err)
	}

	log.Printf("best_restart=%d initial_loss=%.4f final_loss=%.4f noise=%.4f mean=%.4f",
		res.Best, res.InitialLoss, res.FinalLoss, res.Model.Noise(), res.Model.Mean())
	if s, ok := res.Model.Kernel().(fmt.Stringer); ok {
		log.Printf("kernel: %s", s)
	}

	if cfg.PlotOut != "" {
		xs := predictionGrid(data, 200)
		mean, variance, err := res.Model.Predict(xs)
		if err != nil {
			log.Fatalf("predict: %v", err)
		}
		if err := plotting.Posterior(cfg.PlotOut, data, xs, mean, variance); err != nil {
			log.Fatalf("render plot: %v", err)
		}
		log.Printf("plot=%s", cfg.PlotOut)
	}
}

// predictionGrid covers the data range plus a 5% margin on each side.
func predictionGrid(data dataset.Dataset, n int) []float64 {
	lo, hi := data.X[0], data.X[0]
	for _, v := range data.X[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	margin := 0.05 * (hi - lo)
	lo -= margin
	hi += margin
	xs := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range xs {
		xs[i] = lo + float64(i)*step
	}
	return xs
}
