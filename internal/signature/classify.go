package signature

import (
	"fmt"
	"strings"
)

// Label is a sound-signature category. The vocabulary is fixed at four
// labels; curves whose shape would suggest anything else (for example a
// U-shape) resolve to one of these through the classification cascade.
type Label string

const (
	LabelNeutral Label = "Neutral"
	LabelBright  Label = "Bright"
	LabelVShape  Label = "V-shape"
	LabelWarm    Label = "Warm"
)

// Labels returns the full label vocabulary in canonical order.
func Labels() []Label {
	return []Label{LabelNeutral, LabelBright, LabelVShape, LabelWarm}
}

// ParseLabel resolves a case-insensitive label name. "vshape" and
// "v-shape" are both accepted.
func ParseLabel(value string) (Label, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "neutral":
		return LabelNeutral, nil
	case "bright":
		return LabelBright, nil
	case "v-shape", "vshape":
		return LabelVShape, nil
	case "warm":
		return LabelWarm, nil
	default:
		return "", fmt.Errorf("unknown label %q (expected one of Neutral, Bright, V-shape, Warm)", value)
	}
}

// String returns the canonical label name.
func (l Label) String() string {
	return string(l)
}

// DefaultThreshold is the dB offset from the mid region at which bass or
// treble emphasis counts as significant.
const DefaultThreshold = 3.0

// Classify assigns a label from the region means and the emphasis
// threshold. If any region is undefined the curve cannot be compared and
// the result falls back to Neutral. Otherwise the bass and treble
// offsets from mid partition the plane into four mutually exclusive
// outcomes:
//
//	bass >= t, treble >= t  -> V-shape
//	treble >= t, bass < t   -> Bright
//	bass >= t, treble < t   -> Warm
//	otherwise               -> Neutral
func Classify(r Regions, threshold float64) Label {
	if !r.Bass.Defined || !r.Mid.Defined || !r.Treble.Defined {
		return LabelNeutral
	}
	bassDiff := r.Bass.Value - r.Mid.Value
	trebleDiff := r.Treble.Value - r.Mid.Value
	switch {
	case bassDiff >= threshold && trebleDiff >= threshold:
		return LabelVShape
	case trebleDiff >= threshold:
		return LabelBright
	case bassDiff >= threshold:
		return LabelWarm
	default:
		return LabelNeutral
	}
}
