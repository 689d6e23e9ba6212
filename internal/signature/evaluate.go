package signature

// Config carries the immutable analysis parameters. Tests substitute
// alternate bands or thresholds without touching process state.
type Config struct {
	Bands     []Band
	Threshold float64
}

// DefaultConfig returns the standard seven bands and 3.0 dB threshold.
func DefaultConfig() Config {
	return Config{
		Bands:     DefaultBands(),
		Threshold: DefaultThreshold,
	}
}

// Result is the full outcome of evaluating one curve.
type Result struct {
	Label      Label
	Normalized []float64
	BandMeans  []Mean
	Regions    Regions
}

// Evaluate runs the whole numerical pipeline over one curve: normalize,
// aggregate per band, combine regions, classify. It performs no I/O.
func Evaluate(curve Curve, cfg Config) (Result, error) {
	normalized, err := curve.Normalize()
	if err != nil {
		return Result{}, err
	}
	means := BandMeans(curve.Frequencies, normalized, cfg.Bands)
	regions, err := CombineRegions(cfg.Bands, means)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Label:      Classify(regions, cfg.Threshold),
		Normalized: normalized,
		BandMeans:  means,
		Regions:    regions,
	}, nil
}
