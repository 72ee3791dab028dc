package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Babyaovo/Yaouo-sub000/internal/model"
)

type sqliteStateStore struct {
	db *sql.DB
}

// NewSQLiteStateStore stores the state blob in the app_state table.
func NewSQLiteStateStore(db *sql.DB) StateStore {
	return &sqliteStateStore{db: db}
}

func (r *sqliteStateStore) Load(ctx context.Context) (*model.AppState, error) {
	query := "SELECT value FROM app_state WHERE key = ?"
	var value string
	err := r.db.QueryRowContext(ctx, query, stateKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.AppState{}, nil
		}
		return nil, fmt.Errorf("could not read state: %w", err)
	}
	return decodeState([]byte(value))
}

func (r *sqliteStateStore) Save(ctx context.Context, state *model.AppState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, stateKey, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("could not write state: %w", err)
	}
	return nil
}
