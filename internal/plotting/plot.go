// Package plotting renders a fitted posterior to an image file.
package plotting

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"gpfit/internal/dataset"
)

// Posterior writes a plot of the observations, posterior mean and a two
// standard deviation band to path. The image format follows the file
// extension.
func Posterior(path string, data dataset.Dataset, xs, mean, variance []float64) error {
	if len(xs) != len(mean) || len(xs) != len(variance) {
		return fmt.Errorf("plot: grid %d, mean %d and variance %d lengths differ",
			len(xs), len(mean), len(variance))
	}
	if len(xs) == 0 {
		return fmt.Errorf("plot: empty prediction grid")
	}

	p := plot.New()
	p.Title.Text = "Gaussian process posterior"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	band := make(plotter.XYs, 0, 2*len(xs))
	for i := range xs {
		sd := 2 * math.Sqrt(variance[i])
		band = append(band, plotter.XY{X: xs[i], Y: mean[i] + sd})
	}
	for i := len(xs) - 1; i >= 0; i-- {
		sd := 2 * math.Sqrt(variance[i])
		band = append(band, plotter.XY{X: xs[i], Y: mean[i] - sd})
	}
	poly, err := plotter.NewPolygon(band)
	if err != nil {
		return fmt.Errorf("plot: band: %w", err)
	}
	poly.Color = color.NRGBA{R: 70, G: 130, B: 180, A: 60}
	poly.LineStyle.Width = 0

	meanPts := make(plotter.XYs, len(xs))
	for i := range xs {
		meanPts[i] = plotter.XY{X: xs[i], Y: mean[i]}
	}
	line, err := plotter.NewLine(meanPts)
	if err != nil {
		return fmt.Errorf("plot: mean: %w", err)
	}
	line.Color = color.NRGBA{R: 31, G: 119, B: 180, A: 255}
	line.Width = vg.Points(1.5)

	obs := make(plotter.XYs, data.Len())
	for i := range obs {
		obs[i] = plotter.XY{X: data.X[i], Y: data.Y[i]}
	}
	scatter, err := plotter.NewScatter(obs)
	if err != nil {
		return fmt.Errorf("plot: observations: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(2)
	scatter.GlyphStyle.Color = color.NRGBA{R: 214, G: 39, B: 40, A: 255}

	p.Add(poly, line, scatter)
	p.Legend.Add("posterior mean", line)
	p.Legend.Add("observations", scatter)
	p.Legend.Top = true

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("plot: create output dir: %w", err)
		}
	}
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("plot: save: %w", err)
	}
	return nil
}
