package index

import (
	"database/sql"
	"time"

	"github.com/ericz0u/IEMClassification/internal/signature"
)

// Record is one classified curve as stored in the index.
type Record struct {
	ID        int64
	RunID     string
	FileName  string
	Device    string
	Label     signature.Label
	Bass      sql.NullFloat64
	Mid       sql.NullFloat64
	Treble    sql.NullFloat64
	BandMeans map[string]float64
	CreatedAt time.Time
}

// RunSummary aggregates the stored results of one build run.
type RunSummary struct {
	RunID     string
	Curves    int
	StartedAt time.Time
}

// NullableMean converts a signature mean to its SQL representation;
// undefined means become NULL.
func NullableMean(m signature.Mean) sql.NullFloat64 {
	return sql.NullFloat64{Float64: m.Value, Valid: m.Defined}
}

// MeanFromNullable converts a SQL NULLable real back to a mean.
func MeanFromNullable(v sql.NullFloat64) signature.Mean {
	return signature.Mean{Value: v.Float64, Defined: v.Valid}
}
