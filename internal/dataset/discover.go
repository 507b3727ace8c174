package dataset

import (
	"encoding/csv"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

var seriesRegexp = regexp.MustCompile(`^series-[0-9]{3,}\.csv$`)

// DiscoverSeries returns sorted paths to series CSV files beneath root.
func DiscoverSeries(root string) ([]string, error) {
	entries := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if seriesRegexp.MatchString(d.Name()) {
			entries = append(entries, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover series: %w", err)
	}
	sort.Strings(entries)
	return entries, nil
}

// LoadCSV reads a two-column x,y series. A single non-numeric leading row
// is treated as a header and skipped.
func LoadCSV(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open series: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	records, err := r.ReadAll()
	if err != nil {
		return Dataset{}, fmt.Errorf("read series %s: %w", path, err)
	}

	x := make([]float64, 0, len(records))
	y := make([]float64, 0, len(records))
	for i, rec := range records {
		xv, errX := strconv.ParseFloat(rec[0], 64)
		yv, errY := strconv.ParseFloat(rec[1], 64)
		if errX != nil || errY != nil {
			if i == 0 {
				continue
			}
			return Dataset{}, fmt.Errorf("series %s row %d: non-numeric value", path, i+1)
		}
		x = append(x, xv)
		y = append(y, yv)
	}
	return New(x, y)
}

// LoadAll concatenates every series discovered beneath root.
func LoadAll(root string) (Dataset, error) {
	paths, err := DiscoverSeries(root)
	if err != nil {
		return Dataset{}, err
	}
	if len(paths) == 0 {
		return Dataset{}, fmt.Errorf("no series discovered under %s", root)
	}
	var x, y []float64
	for _, path := range paths {
		d, err := LoadCSV(path)
		if err != nil {
			return Dataset{}, err
		}
		x = append(x, d.X...)
		y = append(y, d.Y...)
	}
	return New(x, y)
}
