package trackdb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/corner.report/internal/track"
)

// AnalysisRun is one persisted detection pass over a source track.
type AnalysisRun struct {
	RunID        string          `json:"run_id"`
	Source       string          `json:"source"`
	Window       int             `json:"window"`
	ThresholdDeg float64         `json:"threshold_degrees"`
	PointCount   int             `json:"point_count"`
	CornerCount  int             `json:"corner_count"`
	ParamsJSON   json.RawMessage `json:"params_json,omitempty"`
	CreatedAt    int64           `json:"created_at"`
}

// Store provides persistence for analysis runs and their corners.
type Store struct {
	db *DB
}

// NewStore creates a Store backed by the given database.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// InsertRun persists a run together with its corners in one transaction. If
// RunID is empty a UUID is generated; if CreatedAt is zero the current time
// is used. The run's CornerCount is forced to len(corners).
func (s *Store) InsertRun(run *AnalysisRun, corners []track.Corner) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}
	run.CornerCount = len(corners)

	var paramsStr interface{}
	if len(run.ParamsJSON) > 0 {
		paramsStr = string(run.ParamsJSON)
	}

	return retryOnBusy(func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin insert run: %w", err)
		}
		defer tx.Rollback()

		_, err = tx.Exec(`
			INSERT INTO analysis_runs (
				run_id, source, window_size, threshold_deg,
				point_count, corner_count, params_json, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID, run.Source, run.Window, run.ThresholdDeg,
			run.PointCount, run.CornerCount, paramsStr, run.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for _, c := range corners {
			_, err = tx.Exec(`
				INSERT INTO corners (run_id, idx, x, y, z, angle_deg)
				VALUES (?, ?, ?, ?, ?, ?)`,
				run.RunID, c.Index, c.Point.X, c.Point.Y, c.Point.Z, c.AngleDegrees,
			)
			if err != nil {
				return fmt.Errorf("insert corner %d: %w", c.Index, err)
			}
		}
		return tx.Commit()
	})
}

// GetRun returns a single run by ID, or sql.ErrNoRows if absent.
func (s *Store) GetRun(runID string) (*AnalysisRun, error) {
	row := s.db.QueryRow(`
		SELECT run_id, source, window_size, threshold_deg,
		       point_count, corner_count, params_json, created_at
		FROM analysis_runs WHERE run_id = ?`, runID)
	return scanRun(row)
}

// ListRuns returns up to limit runs ordered by creation time descending.
// A non-positive limit returns all runs.
func (s *Store) ListRuns(limit int) ([]*AnalysisRun, error) {
	q := `
		SELECT run_id, source, window_size, threshold_deg,
		       point_count, corner_count, params_json, created_at
		FROM analysis_runs ORDER BY created_at DESC`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.Query(q+" LIMIT ?", limit)
	} else {
		rows, err = s.db.Query(q)
	}
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*AnalysisRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CornersByRun returns the corners for a run in ascending index order.
func (s *Store) CornersByRun(runID string) ([]track.Corner, error) {
	rows, err := s.db.Query(`
		SELECT idx, x, y, z, angle_deg
		FROM corners WHERE run_id = ? ORDER BY idx ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query corners: %w", err)
	}
	defer rows.Close()

	var corners []track.Corner
	for rows.Next() {
		var c track.Corner
		if err := rows.Scan(&c.Index, &c.Point.X, &c.Point.Y, &c.Point.Z, &c.AngleDegrees); err != nil {
			return nil, fmt.Errorf("scan corner: %w", err)
		}
		corners = append(corners, c)
	}
	return corners, rows.Err()
}

// DeleteRun removes a run and its corners.
func (s *Store) DeleteRun(runID string) error {
	return retryOnBusy(func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin delete run: %w", err)
		}
		defer tx.Rollback()

		if _, err := tx.Exec(`DELETE FROM corners WHERE run_id = ?`, runID); err != nil {
			return fmt.Errorf("delete corners: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM analysis_runs WHERE run_id = ?`, runID); err != nil {
			return fmt.Errorf("delete run: %w", err)
		}
		return tx.Commit()
	})
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*AnalysisRun, error) {
	var (
		run    AnalysisRun
		params sql.NullString
	)
	err := row.Scan(&run.RunID, &run.Source, &run.Window, &run.ThresholdDeg,
		&run.PointCount, &run.CornerCount, &params, &run.CreatedAt)
	if err != nil {
		return nil, err
	}
	if params.Valid {
		run.ParamsJSON = json.RawMessage(params.String)
	}
	return &run, nil
}
