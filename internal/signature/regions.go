package signature

import "fmt"

// Regions holds the three macro-region means the classifier compares.
// Any of them may be undefined when the measurement does not cover the
// corresponding part of the spectrum.
type Regions struct {
	Bass   Mean
	Mid    Mean
	Treble Mean
}

// CombineRegions merges the seven sub-band means into bass, mid, and
// treble using defined-aware averaging:
//
//	Bass   = mean(sub_bass, mid_bass)
//	Mid    = mean(low_mids, mids, upper_mids)
//	Treble = mean(presence, brilliance)
//
// each restricted to its defined operands. A region is undefined only
// when all of its sub-bands are undefined.
func CombineRegions(bands []Band, means []Mean) (Regions, error) {
	if len(bands) != len(means) {
		return Regions{}, fmt.Errorf("band/mean length mismatch: %d bands, %d means", len(bands), len(means))
	}
	byName := make(map[string]Mean, len(bands))
	for i, band := range bands {
		byName[band.Name] = means[i]
	}
	return Regions{
		Bass:   averageDefined(byName[BandSubBass], byName[BandMidBass]),
		Mid:    averageDefined(byName[BandLowMids], byName[BandMids], byName[BandUpperMids]),
		Treble: averageDefined(byName[BandPresence], byName[BandBrilliance]),
	}, nil
}
