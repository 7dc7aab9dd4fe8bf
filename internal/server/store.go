package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("not found")

// PreferenceStore persists each visitor's language choice.
type PreferenceStore interface {
	Language(ctx context.Context, visitorID string) (string, error)
	SetLanguage(ctx context.Context, visitorID, code string) error
}

type preferenceDoc struct {
	Language  string `json:"language"`
	UpdatedAt string `json:"updatedAt"`
}

// PrefStore implements PreferenceStore on the preferences table, one JSONB
// document per visitor.
type PrefStore struct {
	db *sql.DB
}

func NewPrefStore(db *sql.DB) *PrefStore {
	return &PrefStore{db: db}
}

func (s *PrefStore) Language(ctx context.Context, visitorID string) (string, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM preferences WHERE id = ?`, visitorID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	var doc preferenceDoc
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return "", fmt.Errorf("decoding preference: %w", err)
	}
	return doc.Language, nil
}

func (s *PrefStore) SetLanguage(ctx context.Context, visitorID, code string) error {
	data, err := json.Marshal(preferenceDoc{
		Language:  code,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO preferences (id, data) VALUES (?, jsonb(?))
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		visitorID, string(data),
	)
	return err
}
