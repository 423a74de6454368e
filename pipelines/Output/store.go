package output

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dkruze/CS-Capstone-CC/pipelines/Study"
)

// RunRecord is one persisted service run.
type RunRecord struct {
	RunID       string
	Service     string
	CreatedAt   time.Time
	TrainRows   int
	TestRows    int
	TP, TN      int
	FP, FN      int
	Accuracy    float64
	Sensitivity sql.NullFloat64
	Specificity sql.NullFloat64
	BestMinGain float64
	CVAccuracy  float64
}

// Store persists study results to SQLite so runs can be compared later.
// Storage failures are reported to the caller but never mutate or discard
// the in-memory results.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS adoption_runs (
	run_id        TEXT PRIMARY KEY,
	service       TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL,
	train_rows    INTEGER NOT NULL,
	test_rows     INTEGER NOT NULL,
	tp            INTEGER NOT NULL,
	tn            INTEGER NOT NULL,
	fp            INTEGER NOT NULL,
	fn            INTEGER NOT NULL,
	accuracy      REAL NOT NULL,
	sensitivity   REAL,
	specificity   REAL,
	best_min_gain REAL NOT NULL,
	cv_accuracy   REAL NOT NULL
)`

// OpenStore opens (creating if needed) the result database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize result schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveResult inserts one service result.
func (s *Store) SaveResult(r *study.ServiceResult) error {
	c := r.Confusion
	best := r.Sweep.Best()

	sensitivity := sql.NullFloat64{Float64: c.Sensitivity, Valid: c.SensitivityDefined}
	specificity := sql.NullFloat64{Float64: c.Specificity, Valid: c.SpecificityDefined}

	_, err := s.db.Exec(`
		INSERT INTO adoption_runs (
			run_id, service, created_at, train_rows, test_rows,
			tp, tn, fp, fn, accuracy, sensitivity, specificity,
			best_min_gain, cv_accuracy
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Service, time.Now().UTC(), r.TrainRows, r.TestRows,
		c.TruePositives, c.TrueNegatives, c.FalsePositives, c.FalseNegatives,
		c.Accuracy, sensitivity, specificity,
		best.MinGain, best.MeanAccuracy,
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", r.RunID, err)
	}
	return nil
}

// ListRuns returns persisted runs, newest first.
func (s *Store) ListRuns() ([]RunRecord, error) {
	rows, err := s.db.Query(`
		SELECT run_id, service, created_at, train_rows, test_rows,
		       tp, tn, fp, fn, accuracy, sensitivity, specificity,
		       best_min_gain, cv_accuracy
		FROM adoption_runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(
			&rec.RunID, &rec.Service, &rec.CreatedAt, &rec.TrainRows, &rec.TestRows,
			&rec.TP, &rec.TN, &rec.FP, &rec.FN, &rec.Accuracy,
			&rec.Sensitivity, &rec.Specificity,
			&rec.BestMinGain, &rec.CVAccuracy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
