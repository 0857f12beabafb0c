package prefs

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PgStore persists preferences in the preferences table.
type PgStore struct {
	db *sqlx.DB
}

// compile-time check that PgStore implements Store
var _ Store = (*PgStore)(nil)

// NewPgStore wraps an open sqlx connection.
func NewPgStore(db *sqlx.DB) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `
		SELECT value
		FROM preferences
		WHERE key = $1
		`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return value, err
}

func (s *PgStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		updated_at = now()
		`, key, value)
	return err
}
