// Package curvefile loads frequency-response measurement files and
// discovers candidate inputs for a dataset build.
//
// A measurement file is a CSV with frequency in the first column and SPL
// in the second. Header rows and malformed rows are tolerated; files
// that yield no usable samples are reported as skippable rather than as
// failures so a batch build can filter them silently.
package curvefile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ericz0u/IEMClassification/internal/signature"
)

// ErrSkippable marks inputs that are excluded from processing without
// counting as failures: wrong extension, fewer than two columns, or no
// parseable samples.
var ErrSkippable = errors.New("skippable input")

// IsCurveFile reports whether the file name carries a measurement
// extension. The check is case-insensitive.
func IsCurveFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}

// Discover lists the measurement files directly inside dir, sorted by
// name. Subdirectories are not descended into; non-matching extensions
// are filtered out here so Load never sees them.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory %q: %w", dir, err)
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsCurveFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// Load reads a measurement file into a curve. Rows whose first two
// fields do not both parse as numbers are skipped, which covers header
// rows. A file without at least two columns of numeric data returns
// ErrSkippable; an empty-after-load curve is treated the same way, never
// passed downstream.
func Load(path string) (signature.Curve, error) {
	if !IsCurveFile(path) {
		return signature.Curve{}, fmt.Errorf("%w: %s is not a measurement file", ErrSkippable, filepath.Base(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return signature.Curve{}, fmt.Errorf("open measurement file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var curve signature.Curve
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return signature.Curve{}, fmt.Errorf("read measurement file %q: %w", filepath.Base(path), err)
		}
		if len(record) < 2 {
			continue
		}
		freq, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			continue
		}
		level, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			continue
		}
		curve.Frequencies = append(curve.Frequencies, freq)
		curve.Levels = append(curve.Levels, level)
	}

	if curve.Len() == 0 {
		return signature.Curve{}, fmt.Errorf("%w: %s has no usable samples", ErrSkippable, filepath.Base(path))
	}
	return curve, nil
}
