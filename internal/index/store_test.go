package index

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ericz0u/IEMClassification/internal/signature"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleResult(label signature.Label) signature.Result {
	return signature.Result{
		Label: label,
		BandMeans: []signature.Mean{
			signature.DefinedMean(4),
			signature.DefinedMean(2),
			signature.DefinedMean(0),
			signature.DefinedMean(-1),
			signature.DefinedMean(1),
			signature.DefinedMean(5),
			{},
		},
		Regions: signature.Regions{
			Bass:   signature.DefinedMean(3),
			Mid:    signature.DefinedMean(0),
			Treble: signature.DefinedMean(5),
		},
	}
}

func TestRecordCurveRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	bands := signature.DefaultBands()

	record, err := store.RecordCurve(ctx, "run-1", "aria.csv", "Moondrop Aria", sampleResult(signature.LabelVShape), bands)
	if err != nil {
		t.Fatalf("RecordCurve() error: %v", err)
	}
	if record.ID == 0 {
		t.Error("expected assigned row id")
	}
	if record.Label != signature.LabelVShape {
		t.Errorf("label = %s, want V-shape", record.Label)
	}
	if !record.Bass.Valid || record.Bass.Float64 != 3 {
		t.Errorf("bass = %+v, want 3", record.Bass)
	}
	if record.Device != "Moondrop Aria" {
		t.Errorf("device = %q", record.Device)
	}
	// The undefined brilliance mean must not appear in the stored map.
	if _, ok := record.BandMeans[signature.BandBrilliance]; ok {
		t.Error("undefined band mean leaked into stored JSON")
	}
	if got := record.BandMeans[signature.BandSubBass]; got != 4 {
		t.Errorf("sub_bass mean = %g, want 4", got)
	}
}

func TestRecordCurveUndefinedRegionsStoredAsNull(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	result := signature.Result{Label: signature.LabelNeutral}
	record, err := store.RecordCurve(ctx, "run-1", "sparse.csv", "Sparse", result, nil)
	if err != nil {
		t.Fatal(err)
	}
	if record.Bass.Valid || record.Mid.Valid || record.Treble.Valid {
		t.Errorf("undefined regions stored as values: %+v", record)
	}
	if mean := MeanFromNullable(record.Bass); mean.Defined {
		t.Error("round-tripped undefined mean claims to be defined")
	}
}

func TestListByLabel(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	bands := signature.DefaultBands()

	if _, err := store.RecordCurve(ctx, "run-1", "a.csv", "A", sampleResult(signature.LabelWarm), bands); err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordCurve(ctx, "run-1", "b.csv", "B", sampleResult(signature.LabelWarm), bands); err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordCurve(ctx, "run-1", "c.csv", "C", sampleResult(signature.LabelBright), bands); err != nil {
		t.Fatal(err)
	}

	warm, err := store.ListByLabel(ctx, signature.LabelWarm)
	if err != nil {
		t.Fatal(err)
	}
	if len(warm) != 2 {
		t.Fatalf("warm count = %d, want 2", len(warm))
	}

	neutral, err := store.ListByLabel(ctx, signature.LabelNeutral)
	if err != nil {
		t.Fatal(err)
	}
	if len(neutral) != 0 {
		t.Errorf("neutral count = %d, want 0", len(neutral))
	}
}

func TestCountByLabelIncludesEmptyLabels(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.RecordCurve(ctx, "run-1", "a.csv", "A", sampleResult(signature.LabelBright), signature.DefaultBands()); err != nil {
		t.Fatal(err)
	}

	counts, err := store.CountByLabel(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 4 {
		t.Fatalf("count map size = %d, want 4", len(counts))
	}
	if counts[signature.LabelBright] != 1 {
		t.Errorf("bright = %d, want 1", counts[signature.LabelBright])
	}
	if counts[signature.LabelVShape] != 0 {
		t.Errorf("v-shape = %d, want 0", counts[signature.LabelVShape])
	}
}

func TestRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	bands := signature.DefaultBands()

	for _, file := range []string{"a.csv", "b.csv"} {
		if _, err := store.RecordCurve(ctx, "run-1", file, "X", sampleResult(signature.LabelNeutral), bands); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.RecordCurve(ctx, "run-2", "c.csv", "Y", sampleResult(signature.LabelNeutral), bands); err != nil {
		t.Fatal(err)
	}

	runs, err := store.Runs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("run count = %d, want 2", len(runs))
	}
	total := 0
	for _, run := range runs {
		total += run.Curves
		if run.StartedAt.IsZero() {
			t.Errorf("run %s missing start time", run.RunID)
		}
	}
	if total != 3 {
		t.Errorf("total curves = %d, want 3", total)
	}
}

func TestOpenExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.db")

	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordCurve(context.Background(), "run-1", "a.csv", "A", sampleResult(signature.LabelWarm), signature.DefaultBands()); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	counts, err := reopened.CountByLabel(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if counts[signature.LabelWarm] != 1 {
		t.Errorf("warm after reopen = %d, want 1", counts[signature.LabelWarm])
	}
}
