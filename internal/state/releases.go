package state

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Release is one published release as recorded locally. The version-control
// remote stays the source of truth for tags; this history exists so the CLI
// can answer "what did this machine publish, when, where" without network.
type Release struct {
	Project     string
	Tag         string
	Bucket      string
	Artifact    string
	PublishedAt time.Time
}

type ReleaseStore struct {
	db *DB
}

// NewReleaseStore creates the store and ensures the table exists.
func NewReleaseStore(ctx context.Context, database *DB) (*ReleaseStore, error) {
	if database == nil {
		return nil, fmt.Errorf("release store: db is required")
	}
	s := &ReleaseStore{db: database}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

var defaultReleaseStore *ReleaseStore

func DefaultReleaseStore(ctx context.Context) (*ReleaseStore, error) {
	if defaultReleaseStore == nil {
		db, err := OpenDefault(ctx)
		if err != nil {
			return nil, err
		}
		defaultReleaseStore, err = NewReleaseStore(ctx, db)
		if err != nil {
			return nil, err
		}
	}
	return defaultReleaseStore, nil
}

func (s *ReleaseStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS releases (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	project      TEXT NOT NULL,
	tag          TEXT NOT NULL,
	bucket       TEXT NOT NULL DEFAULT '',
	artifact     TEXT NOT NULL DEFAULT '',
	published_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_releases_project ON releases(project, published_at);
`
	if _, err := s.db.sql.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("release store: ensure schema: %w", err)
	}
	return nil
}

// Record appends one release row.
func (s *ReleaseStore) Record(ctx context.Context, r Release) error {
	if r.PublishedAt.IsZero() {
		r.PublishedAt = time.Now().UTC()
	}
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO releases (project, tag, bucket, artifact, published_at) VALUES (?, ?, ?, ?, ?)`,
			r.Project, r.Tag, r.Bucket, r.Artifact, r.PublishedAt,
		)
		if err != nil {
			return fmt.Errorf("release store: record %s %s: %w", r.Project, r.Tag, err)
		}
		return nil
	})
}

// History returns the releases recorded for project, newest first.
func (s *ReleaseStore) History(ctx context.Context, project string) ([]Release, error) {
	rows, err := s.db.sql.QueryContext(ctx,
		`SELECT project, tag, bucket, artifact, published_at FROM releases WHERE project = ? ORDER BY published_at DESC, id DESC`,
		project,
	)
	if err != nil {
		return nil, fmt.Errorf("release store: history for %s: %w", project, err)
	}
	defer rows.Close()

	var out []Release
	for rows.Next() {
		var r Release
		if err := rows.Scan(&r.Project, &r.Tag, &r.Bucket, &r.Artifact, &r.PublishedAt); err != nil {
			return nil, fmt.Errorf("release store: scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
