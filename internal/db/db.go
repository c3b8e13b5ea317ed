package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"eposter/pkg/models"
	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS launches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts DATETIME,
		hostname TEXT,
		user TEXT,
		mode TEXT NOT NULL,
		viewer_path TEXT NOT NULL,
		poster_path TEXT,
		cache_refresh INTEGER,
		display_time INTEGER
	);`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create launches table: %w", err)
	}
	return nil
}

func (s *Store) RecordLaunch(rec *models.LaunchRecord) error {
	res, err := s.db.Exec(`
		INSERT INTO launches (
			ts, hostname, user, mode, viewer_path, poster_path, cache_refresh, display_time
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Ts, rec.Hostname, rec.User, rec.Mode, rec.ViewerPath, rec.PosterPath,
		rec.CacheRefresh, rec.DisplayTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert launch: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = id
	return nil
}

func (s *Store) ListLaunches(limit int, mode string) ([]models.LaunchRecord, error) {
	baseQuery := `
	SELECT id, ts, hostname, user, mode, viewer_path, poster_path, cache_refresh, display_time
	FROM launches`

	var args []interface{}
	if mode != "" {
		baseQuery += " WHERE mode = ?"
		args = append(args, mode)
	}

	baseQuery += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(baseQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query launches: %w", err)
	}
	defer rows.Close()

	var results []models.LaunchRecord
	for rows.Next() {
		var rec models.LaunchRecord
		var ts time.Time

		err := rows.Scan(
			&rec.ID, &ts, &rec.Hostname, &rec.User, &rec.Mode,
			&rec.ViewerPath, &rec.PosterPath, &rec.CacheRefresh, &rec.DisplayTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan launch: %w", err)
		}
		rec.Ts = ts
		results = append(results, rec)
	}
	return results, rows.Err()
}

// ListPosterPaths returns the records that reference a specific poster
// file. Timed-loop launches have no poster path and are not included.
func (s *Store) ListPosterPaths() (map[int64]string, error) {
	rows, err := s.db.Query("SELECT id, poster_path FROM launches WHERE poster_path != ''")
	if err != nil {
		return nil, fmt.Errorf("failed to query poster paths: %w", err)
	}
	defer rows.Close()

	paths := make(map[int64]string)
	for rows.Next() {
		var id int64
		var path string
		if err := rows.Scan(&id, &path); err != nil {
			return nil, err
		}
		paths[id] = path
	}
	return paths, rows.Err()
}

func (s *Store) DeleteLaunch(id int64) error {
	_, err := s.db.Exec("DELETE FROM launches WHERE id = ?", id)
	return err
}
