package server

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"feedlog-cli/internal/model"

	_ "modernc.org/sqlite"
)

type sqliteRepo struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the records database at path and
// returns a Repo backed by it. Close the returned *sql.DB when done.
func OpenSQLite(ctx context.Context, path string) (Repo, *sql.DB, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, err
	}
	// Pragmas for local usage. WAL enables one writer + many readers;
	// busy_timeout avoids "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS records (
  id     TEXT PRIMARY KEY,
  ts_ms  INTEGER NOT NULL,
  weight REAL NOT NULL,
  animal TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_ts ON records(ts_ms DESC);
`); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return &sqliteRepo{db: db}, db, nil
}

func (r *sqliteRepo) List(ctx context.Context) ([]model.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, ts_ms, weight, animal FROM records ORDER BY ts_ms DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Record, 0)
	for rows.Next() {
		var (
			rec  model.Record
			tsMs int64
		)
		var animal string
		if err := rows.Scan(&rec.ID, &tsMs, &rec.Weight, &animal); err != nil {
			return nil, err
		}
		rec.Timestamp = time.UnixMilli(tsMs).UTC()
		rec.Animal = model.Animal(animal)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *sqliteRepo) Get(ctx context.Context, id string) (model.Record, error) {
	var (
		rec    model.Record
		tsMs   int64
		animal string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, ts_ms, weight, animal FROM records WHERE id = ?`, id).
		Scan(&rec.ID, &tsMs, &rec.Weight, &animal)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Record{}, ErrNotFound
	}
	if err != nil {
		return model.Record{}, err
	}
	rec.Timestamp = time.UnixMilli(tsMs).UTC()
	rec.Animal = model.Animal(animal)
	return rec, nil
}

func (r *sqliteRepo) Create(ctx context.Context, rec model.Record) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO records (id, ts_ms, weight, animal) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.Timestamp.UnixMilli(), rec.Weight, string(rec.Animal))
	return err
}

func (r *sqliteRepo) Update(ctx context.Context, rec model.Record) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE records SET ts_ms = ?, weight = ?, animal = ? WHERE id = ?`,
		rec.Timestamp.UnixMilli(), rec.Weight, string(rec.Animal), rec.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
