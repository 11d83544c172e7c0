// Package storage provides the document-store abstraction the wardrobe
// services persist through.
package storage

import (
	"context"
	"errors"
)

// Logical collections under each user's namespace.
const (
	CollectionPurchases        = "Purchases"
	CollectionCollections      = "Collections"
	CollectionCustomCategories = "customCategories"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Document is a stored record: its id plus the raw JSON fields.
type Document struct {
	ID   string
	Data []byte
}

// Store defines the document-store contract. Every operation is scoped to a
// user namespace and a logical collection; ids are minted by the caller
// before the write.
//
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	// List returns every document in the user's collection.
	List(ctx context.Context, userID, collection string) ([]Document, error)

	// Get retrieves a single document. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, userID, collection, id string) (*Document, error)

	// Set writes a document, fully overwriting any existing fields.
	Set(ctx context.Context, userID, collection, id string, data []byte) error

	// Update merges the given fields into an existing document.
	// Returns ErrNotFound if the document does not exist.
	Update(ctx context.Context, userID, collection, id string, partial []byte) error

	// ArrayUnion appends the given elements to an array field, skipping
	// elements already present.
	ArrayUnion(ctx context.Context, userID, collection, id, field string, elements []string) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, userID, collection, id string) error
}
