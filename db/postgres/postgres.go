package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	logger "github.com/sirupsen/logrus"
)

// DB records per pad hit totals for the session history views.
type DB struct {
	db *sql.DB
}

func Open(dsn string) (*DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Errorf("Failed to open db [%v]", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		logger.Errorf("Failed to reach db [%v]", err)
		_ = db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

type WriteHitsParams struct {
	Pad            string
	Hits           int64
	PeakMillivolts uint32
}

const writeHits = `
INSERT INTO pad_hits (pad, hits, peak_millivolts, recorded_at)
VALUES ($1, $2, $3, now())`

func (d *DB) WriteHits(ctx context.Context, p WriteHitsParams) error {
	_, err := d.db.ExecContext(ctx, writeHits, p.Pad, p.Hits, p.PeakMillivolts)
	return err
}

func (d *DB) Close() error {
	return d.db.Close()
}
