// Package postgres provides a Postgres-backed implementation of the
// storage.Store interface. Documents are stored as jsonb rows keyed by
// (user_id, collection, id).
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sing9814/smartshopper-sub000/internal/storage"
)

// Ensure DocumentStore implements storage.Store
var _ storage.Store = (*DocumentStore)(nil)

// DocumentStore implements storage.Store using Postgres jsonb.
type DocumentStore struct {
	db *sql.DB
}

// New creates a DocumentStore on an existing connection and runs migrations.
func New(db *sql.DB) (*DocumentStore, error) {
	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &DocumentStore{db: db}, nil
}

// List returns every document in the user's collection, oldest write first.
func (s *DocumentStore) List(ctx context.Context, userID, collection string) ([]storage.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data FROM documents WHERE user_id = $1 AND collection = $2 ORDER BY id`,
		userID, collection)
	if err != nil {
		return nil, fmt.Errorf("could not list %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []storage.Document
	for rows.Next() {
		var doc storage.Document
		if err := rows.Scan(&doc.ID, &doc.Data); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *DocumentStore) Get(ctx context.Context, userID, collection, id string) (*storage.Document, error) {
	doc := storage.Document{ID: id}
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE user_id = $1 AND collection = $2 AND id = $3`,
		userID, collection, id).Scan(&doc.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get %s/%s: %w", collection, id, err)
	}
	return &doc, nil
}

// Set fully overwrites the document, creating it if absent.
func (s *DocumentStore) Set(ctx context.Context, userID, collection, id string, data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("document %s/%s: payload is not valid JSON", collection, id)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (user_id, collection, id, data)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, collection, id) DO UPDATE SET data = EXCLUDED.data`,
		userID, collection, id, data)
	if err != nil {
		return fmt.Errorf("could not set %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update merges the partial fields into the existing document.
func (s *DocumentStore) Update(ctx context.Context, userID, collection, id string, partial []byte) error {
	if !json.Valid(partial) {
		return fmt.Errorf("document %s/%s: payload is not valid JSON", collection, id)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET data = data || $4::jsonb
		 WHERE user_id = $1 AND collection = $2 AND id = $3`,
		userID, collection, id, partial)
	if err != nil {
		return fmt.Errorf("could not update %s/%s: %w", collection, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ArrayUnion appends elements to the named array field, skipping elements
// already present. A missing field is treated as an empty array.
func (s *DocumentStore) ArrayUnion(ctx context.Context, userID, collection, id, field string, elements []string) error {
	if len(elements) == 0 {
		return nil
	}
	payload, err := json.Marshal(elements)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE documents SET data = jsonb_set(
			data,
			ARRAY[$4],
			COALESCE(data->$4, '[]'::jsonb) || COALESCE((
				SELECT jsonb_agg(elem)
				FROM (SELECT DISTINCT elem FROM jsonb_array_elements($5::jsonb) AS t(elem)) AS new_elems
				WHERE NOT COALESCE(data->$4, '[]'::jsonb) @> jsonb_build_array(elem)
			), '[]'::jsonb)
		)
		WHERE user_id = $1 AND collection = $2 AND id = $3`,
		userID, collection, id, field, payload)
	if err != nil {
		return fmt.Errorf("could not union into %s/%s.%s: %w", collection, id, field, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, userID, collection, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE user_id = $1 AND collection = $2 AND id = $3`,
		userID, collection, id)
	if err != nil {
		return fmt.Errorf("could not delete %s/%s: %w", collection, id, err)
	}
	return nil
}
