package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"adminconsole/models"
	"adminconsole/tableview"

	_ "github.com/lib/pq"
)

// Schema is applied by Migrate.
const Schema = `
CREATE TABLE IF NOT EXISTS view_preferences (
	user_id TEXT NOT NULL,
	view TEXT NOT NULL,
	page_size INTEGER NOT NULL,
	sort_column TEXT NOT NULL DEFAULT '',
	sort_direction TEXT NOT NULL DEFAULT 'asc',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, view)
)`

var ErrInvalidPageSize = errors.New("page-size-must-be-between-1-and-500")

// Store keeps each user's page size and sort descriptor per table view.
type Store struct {
	Db              *sql.DB
	DefaultPageSize int
}

func Open(connString string, defaultPageSize int) (*Store, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("cannot open db: %w", err)
	}

	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("cannot reach db: %w", err)
	}

	return &Store{Db: db, DefaultPageSize: defaultPageSize}, nil
}

func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.Db.ExecContext(ctx, Schema)
	return err
}

func (s *Store) Close() error {
	return s.Db.Close()
}

// Get returns the saved preference, or the defaults when nothing is saved.
func (s *Store) Get(ctx context.Context, userId, view string) (models.Preference, error) {
	p := models.Preference{
		UserId:        userId,
		View:          view,
		PageSize:      s.defaultPageSize(),
		SortDirection: string(tableview.Asc),
	}

	err := s.Db.QueryRowContext(ctx, `
		SELECT page_size, sort_column, sort_direction, updated_at
		FROM view_preferences
		WHERE user_id = $1 AND view = $2
	`, userId, view).Scan(&p.PageSize, &p.SortColumn, &p.SortDirection, &p.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return p, nil
		}
		return p, err
	}

	return p, nil
}

// Save upserts the preference.
func (s *Store) Save(ctx context.Context, p models.Preference) (models.Preference, error) {
	if p.PageSize < 1 || p.PageSize > tableview.MaxPageSize {
		return p, ErrInvalidPageSize
	}

	p.SortDirection = string(tableview.ParseDirection(p.SortDirection))

	err := s.Db.QueryRowContext(ctx, `
		INSERT INTO view_preferences (user_id, view, page_size, sort_column, sort_direction, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, view) DO UPDATE SET
		page_size = $3, sort_column = $4, sort_direction = $5, updated_at = CURRENT_TIMESTAMP
		RETURNING updated_at
	`, p.UserId, p.View, p.PageSize, p.SortColumn, p.SortDirection).Scan(&p.UpdatedAt)

	return p, err
}

func (s *Store) defaultPageSize() int {
	if s.DefaultPageSize < 1 {
		return tableview.DefaultPageSize
	}
	return s.DefaultPageSize
}
