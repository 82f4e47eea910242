// Package sqliteexport stores results in a SQLite database. Each decode is
// saved as a run keyed by a random UUID, so one database can hold many runs.
package sqliteexport

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/qatium/epanet-go/internal/export"
	"github.com/qatium/epanet-go/pkg/epanetout"
)

func init() {
	export.Register(Exporter{})
}

// Store is an open results database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		version INTEGER NOT NULL,
		flow_units TEXT NOT NULL,
		pressure_units TEXT NOT NULL,
		report_start INTEGER NOT NULL,
		report_step INTEGER NOT NULL,
		duration INTEGER NOT NULL,
		periods INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS nodes (
		run_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		id TEXT NOT NULL,
		category TEXT NOT NULL,
		elevation REAL NOT NULL,
		PRIMARY KEY (run_id, idx),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS links (
		run_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		id TEXT NOT NULL,
		category TEXT NOT NULL,
		start_node TEXT NOT NULL,
		end_node TEXT NOT NULL,
		length REAL NOT NULL,
		diameter REAL NOT NULL,
		PRIMARY KEY (run_id, idx),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS node_values (
		run_id TEXT NOT NULL,
		node_idx INTEGER NOT NULL,
		period INTEGER NOT NULL,
		demand REAL, head REAL, pressure REAL, quality REAL,
		PRIMARY KEY (run_id, node_idx, period),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS link_values (
		run_id TEXT NOT NULL,
		link_idx INTEGER NOT NULL,
		period INTEGER NOT NULL,
		flow REAL, velocity REAL, headloss REAL, quality REAL,
		status REAL, setting REAL, reaction_rate REAL, friction REAL,
		PRIMARY KEY (run_id, link_idx, period),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save writes res as a new run and returns its identifier.
func (s *Store) Save(ctx context.Context, res *epanetout.Results) (string, error) {
	runID := uuid.NewString()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	h := res.Header
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, title, version, flow_units, pressure_units, report_start, report_step, duration, periods)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, h.Title[0], h.Version, h.FlowUnits.String(), h.PressureUnits.String(),
		int64(h.ReportStart.Seconds()), int64(h.ReportStep.Seconds()), int64(h.Duration.Seconds()),
		res.Prolog.ReportingPeriods,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	nodeStmt, err := tx.PrepareContext(ctx, `INSERT INTO nodes (run_id, idx, id, category, elevation) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare node insert: %w", err)
	}
	defer nodeStmt.Close()
	nodeValueStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO node_values (run_id, node_idx, period, demand, head, pressure, quality)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare node value insert: %w", err)
	}
	defer nodeValueStmt.Close()

	for i, n := range res.Nodes {
		if _, err := nodeStmt.ExecContext(ctx, runID, i, n.ID, n.Type.String(), n.Elevation); err != nil {
			return "", fmt.Errorf("failed to insert node %s: %w", n.ID, err)
		}
		for p := range n.Demand {
			if _, err := nodeValueStmt.ExecContext(ctx, runID, i, p, n.Demand[p], n.Head[p], n.Pressure[p], n.WaterQuality[p]); err != nil {
				return "", fmt.Errorf("failed to insert values of node %s: %w", n.ID, err)
			}
		}
	}

	linkStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO links (run_id, idx, id, category, start_node, end_node, length, diameter)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare link insert: %w", err)
	}
	defer linkStmt.Close()
	linkValueStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO link_values (run_id, link_idx, period, flow, velocity, headloss, quality, status, setting, reaction_rate, friction)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare link value insert: %w", err)
	}
	defer linkValueStmt.Close()

	for j, l := range res.Links {
		if _, err := linkStmt.ExecContext(ctx, runID, j, l.ID, l.Type.String(), l.StartNode, l.EndNode, l.Length, l.Diameter); err != nil {
			return "", fmt.Errorf("failed to insert link %s: %w", l.ID, err)
		}
		for p := range l.Flow {
			if _, err := linkValueStmt.ExecContext(ctx, runID, j, p,
				l.Flow[p], l.Velocity[p], l.Headloss[p], l.AvgWaterQuality[p],
				l.Status[p], l.Setting[p], l.ReactionRate[p], l.Friction[p]); err != nil {
				return "", fmt.Errorf("failed to insert values of link %s: %w", l.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// Run is a stored decode.
type Run struct {
	ID      string
	Title   string
	Periods int
	Nodes   int
	Links   int
}

// Runs lists the stored runs, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.title, r.periods,
			(SELECT COUNT(*) FROM nodes n WHERE n.run_id = r.id),
			(SELECT COUNT(*) FROM links l WHERE l.run_id = r.id)
		FROM runs r
		ORDER BY r.created_at, r.rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Title, &r.Periods, &r.Nodes, &r.Links); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// NodeSeries reads back one node channel of a run. channel is a column of
// node_values: demand, head, pressure or quality.
func (s *Store) NodeSeries(ctx context.Context, runID, nodeID, channel string) ([]float64, error) {
	switch channel {
	case "demand", "head", "pressure", "quality":
	default:
		return nil, fmt.Errorf("unknown node column %q", channel)
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.`+channel+`
		FROM node_values v JOIN nodes n ON n.run_id = v.run_id AND n.idx = v.node_idx
		WHERE v.run_id = ? AND n.id = ?
		ORDER BY v.period
	`, runID, nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query node series: %w", err)
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan node value: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Exporter adapts Store to the export registry.
type Exporter struct{}

var _ export.FileExporter = Exporter{}

// Name returns the canonical exporter name.
func (Exporter) Name() string { return "sqlite" }

// ExportFile appends res as a new run to the database at path.
func (Exporter) ExportFile(ctx context.Context, res *epanetout.Results, path string) error {
	s, err := Open(path)
	if err != nil {
		return err
	}
	if _, err := s.Save(ctx, res); err != nil {
		s.Close()
		return err
	}
	return s.Close()
}

// Export builds a fresh database in a temporary file and streams it to w.
func (e Exporter) Export(ctx context.Context, res *epanetout.Results, w io.Writer) error {
	tmp, err := os.CreateTemp("", "epanet-out-*.db")
	if err != nil {
		return fmt.Errorf("create temporary database: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)
	defer os.Remove(path + "-wal")
	defer os.Remove(path + "-shm")

	if err := e.ExportFile(ctx, res, path); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reopen temporary database: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copy database: %w", err)
	}
	return nil
}
