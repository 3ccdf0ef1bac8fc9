package tracks

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/flexliner/subtitles/internal/apperrors"
	"github.com/flexliner/subtitles/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// Store persists the ordered subtitle track list of each owner (a content
// item or an episode).
type Store interface {
	// List returns the tracks of owner in order. An unknown owner has no tracks.
	List(ctx context.Context, owner string) ([]models.Track, error)

	// Replace stores tracks as the complete list for owner.
	Replace(ctx context.Context, owner string, tracks []models.Track) error

	// UpdateSrc points track index of owner at src and returns the updated
	// track. Other tracks are left untouched.
	UpdateSrc(ctx context.Context, owner string, index int, src string) (models.Track, error)

	Close() error
}

// SQLiteStore keeps one row per owner holding the serialized track list.
type SQLiteStore struct {
	db *sql.DB
}

// Open initializes or connects to the track database at path.
func Open(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite has a single writer; one connection keeps read-modify-write
	// transactions from failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) List(ctx context.Context, owner string) ([]models.Track, error) {
	raw, err := loadTracks(ctx, s.db, owner)
	if errors.Is(err, sql.ErrNoRows) {
		return make([]models.Track, 0), nil
	}
	if err != nil {
		return nil, err
	}
	return models.ParseTracks(raw), nil
}

func (s *SQLiteStore) Replace(ctx context.Context, owner string, tracks []models.Track) error {
	raw, err := models.MarshalTracks(tracks)
	if err != nil {
		return fmt.Errorf("marshal tracks: %w", err)
	}
	return saveTracks(ctx, s.db, owner, raw)
}

func (s *SQLiteStore) UpdateSrc(ctx context.Context, owner string, index int, src string) (models.Track, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Track{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	raw, err := loadTracks(ctx, tx, owner)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Track{}, apperrors.NewTrackNotFoundError(owner, index)
	}
	if err != nil {
		return models.Track{}, err
	}

	tracks := models.ParseTracks(raw)
	if index < 0 || index >= len(tracks) {
		return models.Track{}, apperrors.NewTrackNotFoundError(owner, index)
	}
	tracks[index].Src = src

	updated, err := models.MarshalTracks(tracks)
	if err != nil {
		return models.Track{}, fmt.Errorf("marshal tracks: %w", err)
	}
	if err := saveTracks(ctx, tx, owner, updated); err != nil {
		return models.Track{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Track{}, fmt.Errorf("commit tx: %w", err)
	}
	return tracks[index], nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func loadTracks(ctx context.Context, q querier, owner string) (string, error) {
	var raw string
	err := q.QueryRowContext(ctx,
		"SELECT tracks_json FROM subtitle_tracks WHERE owner_id = ?",
		owner,
	).Scan(&raw)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("load tracks: %w", err)
	}
	return raw, err
}

func saveTracks(ctx context.Context, q querier, owner, raw string) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO subtitle_tracks (owner_id, tracks_json, updated_at)
         VALUES (?, ?, ?)
         ON CONFLICT(owner_id) DO UPDATE SET
             tracks_json = excluded.tracks_json,
             updated_at = excluded.updated_at`,
		owner,
		raw,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save tracks: %w", err)
	}
	return nil
}
