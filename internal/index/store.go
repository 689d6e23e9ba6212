package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ericz0u/IEMClassification/internal/signature"
)

// Store manages results persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the index database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

const recordColumns = `id, run_id, file_name, device, label, bass_db, mid_db, treble_db, band_means_json, created_at`

// RecordCurve inserts one classified curve and returns the stored row.
func (s *Store) RecordCurve(ctx context.Context, runID, fileName, device string, result signature.Result, bands []signature.Band) (*Record, error) {
	means := make(map[string]float64, len(bands))
	for i, band := range bands {
		if i < len(result.BandMeans) && result.BandMeans[i].Defined {
			means[band.Name] = result.BandMeans[i].Value
		}
	}
	meansJSON, err := json.Marshal(means)
	if err != nil {
		return nil, fmt.Errorf("marshal band means: %w", err)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO curves (
            run_id, file_name, device, label,
            bass_db, mid_db, treble_db, band_means_json, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		fileName,
		device,
		result.Label.String(),
		NullableMean(result.Regions.Bass),
		NullableMean(result.Regions.Mid),
		NullableMean(result.Regions.Treble),
		string(meansJSON),
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert curve: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.getByID(ctx, id)
}

func (s *Store) getByID(ctx context.Context, id int64) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM curves WHERE id = ?`, id)
	record, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("get curve: %w", err)
	}
	return record, nil
}

// ListByLabel returns every stored curve with the given label, most
// recent first.
func (s *Store) ListByLabel(ctx context.Context, label signature.Label) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM curves WHERE label = ? ORDER BY created_at DESC`,
		label.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list curves: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// CountByLabel returns the number of stored curves per label. Labels
// with no curves are present with a zero count.
func (s *Store) CountByLabel(ctx context.Context) (map[signature.Label]int, error) {
	counts := make(map[signature.Label]int, len(signature.Labels()))
	for _, label := range signature.Labels() {
		counts[label] = 0
	}

	rows, err := s.db.QueryContext(ctx, `SELECT label, COUNT(*) FROM curves GROUP BY label`)
	if err != nil {
		return nil, fmt.Errorf("count curves: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		label, err := signature.ParseLabel(name)
		if err != nil {
			// Rows written by a different vocabulary are ignored.
			continue
		}
		counts[label] = count
	}
	return counts, rows.Err()
}

// Runs summarizes stored build runs, most recent first.
func (s *Store) Runs(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, COUNT(*), MIN(created_at) FROM curves GROUP BY run_id ORDER BY MIN(created_at) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var summary RunSummary
		var startedAt string
		if err := rows.Scan(&summary.RunID, &summary.Curves, &startedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			summary.StartedAt = parsed
		}
		runs = append(runs, summary)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var record Record
	var label string
	var meansJSON string
	var createdAt string

	err := row.Scan(
		&record.ID,
		&record.RunID,
		&record.FileName,
		&record.Device,
		&label,
		&record.Bass,
		&record.Mid,
		&record.Treble,
		&meansJSON,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	parsed, err := signature.ParseLabel(label)
	if err != nil {
		return nil, fmt.Errorf("stored label: %w", err)
	}
	record.Label = parsed

	if meansJSON != "" {
		if err := json.Unmarshal([]byte(meansJSON), &record.BandMeans); err != nil {
			return nil, fmt.Errorf("unmarshal band means: %w", err)
		}
	}
	if parsedTime, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		record.CreatedAt = parsedTime
	}
	return &record, nil
}
