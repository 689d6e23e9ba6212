package signature

// Mean is an optional arithmetic mean. Defined is false when no sample
// contributed, which is distinct from a mean of zero.
type Mean struct {
	Value   float64
	Defined bool
}

// DefinedMean wraps a value in a defined Mean.
func DefinedMean(value float64) Mean {
	return Mean{Value: value, Defined: true}
}

// Band is a named half-open frequency interval [Low, High) in Hz.
type Band struct {
	Name string
	Low  float64
	High float64
}

// Contains reports whether the frequency falls inside the band. The low
// edge is inclusive and the high edge exclusive so a sample on a shared
// boundary belongs to exactly one of two adjacent bands.
func (b Band) Contains(freq float64) bool {
	return freq >= b.Low && freq < b.High
}

// Canonical sub-band names, ordered low to high.
const (
	BandSubBass    = "sub_bass"
	BandMidBass    = "mid_bass"
	BandLowMids    = "low_mids"
	BandMids       = "mids"
	BandUpperMids  = "upper_mids"
	BandPresence   = "presence"
	BandBrilliance = "brilliance"
)

// DefaultBands returns the fixed seven-band split of the audible
// spectrum used for signature analysis. The intervals are ascending and
// non-overlapping; callers may modify the returned slice freely.
func DefaultBands() []Band {
	return []Band{
		{Name: BandSubBass, Low: 20, High: 60},
		{Name: BandMidBass, Low: 60, High: 250},
		{Name: BandLowMids, Low: 250, High: 500},
		{Name: BandMids, Low: 500, High: 2000},
		{Name: BandUpperMids, Low: 2000, High: 4000},
		{Name: BandPresence, Low: 4000, High: 6000},
		{Name: BandBrilliance, Low: 6000, High: 12000},
	}
}

// BandMeans computes the mean normalized level per band. The result is
// parallel to bands; a band with no samples in range yields an undefined
// Mean. Bands are independent, so evaluation order does not matter.
func BandMeans(frequencies, normalized []float64, bands []Band) []Mean {
	means := make([]Mean, len(bands))
	for i, band := range bands {
		var sum float64
		var count int
		for j, freq := range frequencies {
			if band.Contains(freq) {
				sum += normalized[j]
				count++
			}
		}
		if count > 0 {
			means[i] = DefinedMean(sum / float64(count))
		}
	}
	return means
}

// averageDefined folds the defined operands into their arithmetic mean.
// Undefined operands are ignored; the result is undefined only when every
// operand is undefined.
func averageDefined(means ...Mean) Mean {
	var sum float64
	var count int
	for _, m := range means {
		if m.Defined {
			sum += m.Value
			count++
		}
	}
	if count == 0 {
		return Mean{}
	}
	return DefinedMean(sum / float64(count))
}
