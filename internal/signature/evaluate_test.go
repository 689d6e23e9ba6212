package signature

import (
	"math"
	"testing"
)

// vShapedCurve places samples in every band, with raised bass and treble
// relative to the mids.
func vShapedCurve() Curve {
	return Curve{
		Frequencies: []float64{30, 50, 100, 200, 300, 450, 700, 1500, 2500, 3500, 4500, 5500, 7000, 10000},
		Levels:      []float64{96, 95, 94, 93, 85, 84, 85, 84, 85, 84, 95, 94, 96, 95},
	}
}

func TestEvaluateVShape(t *testing.T) {
	result, err := Evaluate(vShapedCurve(), DefaultConfig())
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if result.Label != LabelVShape {
		t.Errorf("label = %s, want V-shape", result.Label)
	}
	if len(result.Normalized) != vShapedCurve().Len() {
		t.Errorf("normalized length = %d, want %d", len(result.Normalized), vShapedCurve().Len())
	}
	if len(result.BandMeans) != 7 {
		t.Errorf("band mean count = %d, want 7", len(result.BandMeans))
	}
	for _, region := range []Mean{result.Regions.Bass, result.Regions.Mid, result.Regions.Treble} {
		if !region.Defined {
			t.Error("expected all regions defined for full-coverage curve")
		}
	}
}

func TestEvaluateFlatCurveIsNeutral(t *testing.T) {
	// All-identical levels normalize to zero everywhere; every diff is 0
	// and the threshold tie-break lands on Neutral.
	curve := Curve{
		Frequencies: []float64{30, 100, 300, 1000, 3000, 5000, 8000},
		Levels:      []float64{85, 85, 85, 85, 85, 85, 85},
	}
	result, err := Evaluate(curve, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if result.Label != LabelNeutral {
		t.Errorf("label = %s, want Neutral", result.Label)
	}
	for i, v := range result.Normalized {
		if v != 0 {
			t.Errorf("normalized[%d] = %g, want 0", i, v)
		}
	}
}

func TestEvaluatePartialCoverageDoesNotForceNeutral(t *testing.T) {
	// No samples above 6 kHz: brilliance is undefined but treble falls
	// back to presence alone, so a bright signature still classifies.
	curve := Curve{
		Frequencies: []float64{30, 100, 300, 1000, 3000, 5000},
		Levels:      []float64{80, 80, 80, 80, 80, 90},
	}
	result, err := Evaluate(curve, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if result.Regions.Treble != DefinedMean(result.BandMeans[5].Value) {
		t.Errorf("treble = %+v, want presence mean %+v", result.Regions.Treble, result.BandMeans[5])
	}
	if result.Label != LabelBright {
		t.Errorf("label = %s, want Bright", result.Label)
	}
}

func TestEvaluateNoCoverageAtAllIsNeutral(t *testing.T) {
	// Frequencies entirely outside the band table: every region is
	// undefined and the classifier falls back.
	curve := Curve{
		Frequencies: []float64{15000, 16000, 18000},
		Levels:      []float64{80, 90, 70},
	}
	result, err := Evaluate(curve, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if result.Label != LabelNeutral {
		t.Errorf("label = %s, want Neutral", result.Label)
	}
}

func TestEvaluateEmptyCurve(t *testing.T) {
	if _, err := Evaluate(Curve{}, DefaultConfig()); err == nil {
		t.Fatal("expected error for empty curve")
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	curve := vShapedCurve()
	cfg := DefaultConfig()

	first, err := Evaluate(curve, cfg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Evaluate(curve, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if first.Label != second.Label {
		t.Errorf("labels differ between runs: %s vs %s", first.Label, second.Label)
	}
	for i := range first.BandMeans {
		if first.BandMeans[i] != second.BandMeans[i] {
			t.Errorf("band mean %d differs: %+v vs %+v", i, first.BandMeans[i], second.BandMeans[i])
		}
	}
	if first.Regions != second.Regions {
		t.Errorf("regions differ: %+v vs %+v", first.Regions, second.Regions)
	}
}

func TestEvaluateCustomThreshold(t *testing.T) {
	curve := Curve{
		Frequencies: []float64{30, 100, 300, 1000, 3000, 5000, 8000},
		Levels:      []float64{82, 82, 80, 80, 80, 82, 82},
	}
	cfg := DefaultConfig()

	result, err := Evaluate(curve, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.Label != LabelNeutral {
		t.Fatalf("label at 3.0 dB = %s, want Neutral", result.Label)
	}

	cfg.Threshold = 1.0
	result, err = Evaluate(curve, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.Label != LabelVShape {
		t.Errorf("label at 1.0 dB = %s, want V-shape", result.Label)
	}
	if math.IsNaN(result.Regions.Bass.Value) {
		t.Error("bass mean is NaN")
	}
}
