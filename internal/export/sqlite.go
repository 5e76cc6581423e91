package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/FocuswithJustin/loanspell/core/errors"
	"github.com/FocuswithJustin/loanspell/core/sqlite"
	"github.com/FocuswithJustin/loanspell/internal/attest"
	"github.com/FocuswithJustin/loanspell/internal/provenance"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		run_id          TEXT PRIMARY KEY,
		version         TEXT NOT NULL,
		started_at      TEXT NOT NULL,
		duration        TEXT,
		input_path      TEXT,
		input_blake3    TEXT,
		input_sha256    TEXT,
		aligner         TEXT,
		strategy        TEXT,
		rows_read       INTEGER,
		rows_dropped    INTEGER,
		edits_extracted INTEGER,
		edits_excluded  INTEGER,
		edits_written   INTEGER,
		manifest        TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS deviations (
		run_id               TEXT NOT NULL,
		seq                  INTEGER NOT NULL,
		id                   TEXT NOT NULL,
		norm                 TEXT NOT NULL,
		var                  TEXT NOT NULL,
		context_left         TEXT NOT NULL,
		context_right        TEXT NOT NULL,
		greek_lemma          TEXT,
		greek_lemma_original TEXT,
		orthography          TEXT,
		orthography_clean    TEXT,
		dialect              TEXT,
		dialect_group        TEXT,
		manuscript_text      TEXT,
		date_approximate     REAL,
		earliest             REAL,
		latest               REAL,
		century              INTEGER,
		similarity           REAL,
		excluded_by          TEXT,
		PRIMARY KEY (run_id, seq)
	)`,
	`CREATE INDEX IF NOT EXISTS deviations_change ON deviations (norm, var)`,
	`CREATE INDEX IF NOT EXISTS deviations_lemma ON deviations (greek_lemma)`,
}

const insertDeviation = `INSERT INTO deviations (
	run_id, seq, id, norm, var, context_left, context_right,
	greek_lemma, greek_lemma_original, orthography, orthography_clean,
	dialect, dialect_group, manuscript_text,
	date_approximate, earliest, latest, century, similarity, excluded_by
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertRun = `INSERT OR REPLACE INTO runs (
	run_id, version, started_at, duration, input_path, input_blake3, input_sha256,
	aligner, strategy, rows_read, rows_dropped, edits_extracted, edits_excluded,
	edits_written, manifest
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// DB stores deviations from one or more runs in a SQLite database.
type DB struct {
	db   *sql.DB
	path string
}

// OpenDB opens or creates the database at path and ensures its schema.
func OpenDB(ctx context.Context, path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.NewIO("create", filepath.Dir(path), err)
	}
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	if err := sqlite.Migrate(ctx, db, schema...); err != nil {
		db.Close()
		return nil, errors.NewIO("migrate", path, err)
	}
	return &DB{db: db, path: path}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// WriteDeviations stores devs under runID in one transaction, replacing any
// rows the run already has.
func (d *DB) WriteDeviations(ctx context.Context, runID string, devs []attest.Deviation) error {
	err := sqlite.InTx(ctx, d.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM deviations WHERE run_id = ?`, runID); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, insertDeviation)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, dev := range devs {
			r := dev.Record
			_, err := stmt.ExecContext(ctx,
				runID, i, r.ID, dev.Norm, dev.Var, dev.Left, dev.Right,
				r.GreekLemma, r.GreekLemmaOriginal, r.Orthography, r.OrthographyClean,
				r.Dialect, nullString(r.DialectGroup), r.ManuscriptText,
				nullFloat(r.DateApproximate), nullFloat(r.Earliest), nullFloat(r.Latest),
				nullInt(r.Century), dev.Similarity, nullString(dev.ExcludedBy),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.NewIO("write", d.path, err)
	}
	return nil
}

// WriteRun records the manifest of a run.
func (d *DB) WriteRun(ctx context.Context, m *provenance.Manifest) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "encode manifest")
	}
	_, err = d.db.ExecContext(ctx, insertRun,
		m.RunID, m.Version, m.StartedAt.Format(time.RFC3339), m.Duration,
		m.Input.Path, m.Input.BLAKE3, m.Input.SHA256,
		m.Settings.Aligner, m.Settings.Strategy,
		m.Counts.RowsRead, m.Counts.Dropped(), m.Counts.EditsExtracted,
		m.Counts.Excluded(), m.Counts.EditsWritten, string(raw),
	)
	if err != nil {
		return errors.NewIO("write", d.path, err)
	}
	return nil
}

// CountDeviations returns the number of rows stored for runID.
func (d *DB) CountDeviations(ctx context.Context, runID string) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM deviations WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, errors.NewIO("query", d.path, err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
