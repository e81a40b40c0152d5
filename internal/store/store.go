// Package store is the local cache of analyzed videos, backed by DuckDB in
// the data directory. It exists so `pind serve` and `pind status` can show
// past results without the backend; durable history lives server-side and
// this cache never stores derived annotation fields.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/chaejoon23/pind/internal/model"
)

// Store manages the local video cache.
type Store struct {
	DB      *sql.DB
	DataDir string
}

// New opens (or creates) the cache database in the given data directory.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "pind.duckdb")
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}

	s := &Store{DB: db, DataDir: dataDir}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) migrate() error {
	seqs := []string{
		"CREATE SEQUENCE IF NOT EXISTS videos_rank_seq",
	}
	for _, seq := range seqs {
		if _, err := s.DB.Exec(seq); err != nil {
			return fmt.Errorf("creating sequence: %w", err)
		}
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS videos (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			thumbnail TEXT NOT NULL,
			date TEXT NOT NULL,
			rank INTEGER NOT NULL DEFAULT nextval('videos_rank_seq')
		)`,
		`CREATE TABLE IF NOT EXISTS video_places (
			video_id TEXT NOT NULL REFERENCES videos(id),
			idx INTEGER NOT NULL,
			place_id TEXT NOT NULL,
			name TEXT NOT NULL,
			lat DOUBLE NOT NULL,
			lng DOUBLE NOT NULL,
			PRIMARY KEY (video_id, idx)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("executing migration %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// UpsertVideo inserts or replaces a video and all of its places in one
// transaction. Replacement mirrors the merge rule: re-analysis of the same
// ID overwrites the previous entry and bumps its recency rank.
func (s *Store) UpsertVideo(v model.Video) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM video_places WHERE video_id = ?", v.ID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM videos WHERE id = ?", v.ID); err != nil {
		return err
	}

	if _, err := tx.Exec("INSERT INTO videos (id, title, thumbnail, date) VALUES (?, ?, ?, ?)",
		v.ID, v.Title, v.Thumbnail, v.Date); err != nil {
		return fmt.Errorf("inserting video %s: %w", v.ID, err)
	}

	stmt, err := tx.Prepare("INSERT INTO video_places (video_id, idx, place_id, name, lat, lng) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, loc := range v.Locations {
		if _, err := stmt.Exec(v.ID, i, loc.ID, loc.Name, loc.Coordinates.Lat, loc.Coordinates.Lng); err != nil {
			return fmt.Errorf("inserting place %d of %s: %w", i, v.ID, err)
		}
	}

	return tx.Commit()
}

// ListVideos loads all cached videos, date descending with newest insertion
// first among same-day entries.
func (s *Store) ListVideos() ([]model.Video, error) {
	rows, err := s.DB.Query("SELECT id, title, thumbnail, date FROM videos ORDER BY date DESC, rank DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		var v model.Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Thumbnail, &v.Date); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range videos {
		locs, err := s.readPlaces(videos[i].ID)
		if err != nil {
			return nil, err
		}
		videos[i].Locations = locs
	}
	return videos, nil
}

func (s *Store) readPlaces(videoID string) ([]model.Location, error) {
	rows, err := s.DB.Query("SELECT place_id, name, lat, lng FROM video_places WHERE video_id = ? ORDER BY idx", videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locs []model.Location
	for rows.Next() {
		var loc model.Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Coordinates.Lat, &loc.Coordinates.Lng); err != nil {
			return nil, err
		}
		loc.VideoID = videoID
		locs = append(locs, loc)
	}
	return locs, rows.Err()
}

// DeleteVideo removes one cached video and its places.
func (s *Store) DeleteVideo(id string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM video_places WHERE video_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM videos WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// Clear empties the cache, e.g. on logout.
func (s *Store) Clear() error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM video_places"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM videos"); err != nil {
		return err
	}
	return tx.Commit()
}

// VideoCount returns the number of cached videos.
func (s *Store) VideoCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM videos").Scan(&n)
	return n
}

// PlaceCount returns the number of cached places across all videos.
func (s *Store) PlaceCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM video_places").Scan(&n)
	return n
}
