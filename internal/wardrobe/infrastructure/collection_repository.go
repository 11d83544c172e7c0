package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sing9814/smartshopper-sub000/internal/storage"
	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/domain"
)

// CollectionRepository persists collections in the user's Collections
// collection.
type CollectionRepository struct {
	store storage.Store
}

func NewCollectionRepository(store storage.Store) *CollectionRepository {
	return &CollectionRepository{store: store}
}

func (r *CollectionRepository) FindCollections(ctx context.Context, userID string) ([]domain.Collection, error) {
	docs, err := r.store.List(ctx, userID, storage.CollectionCollections)
	if err != nil {
		return nil, fmt.Errorf("could not load collections: %w", err)
	}

	collections := make([]domain.Collection, 0, len(docs))
	for _, doc := range docs {
		var c domain.Collection
		if err := json.Unmarshal(doc.Data, &c); err != nil {
			return nil, fmt.Errorf("could not decode collection %s: %w", doc.ID, err)
		}
		c.ID = doc.ID
		collections = append(collections, c)
	}
	sort.SliceStable(collections, func(i, j int) bool {
		return collections[i].DateCreated.After(collections[j].DateCreated)
	})
	return collections, nil
}

func (r *CollectionRepository) SaveCollection(ctx context.Context, userID string, c domain.Collection) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, userID, storage.CollectionCollections, c.ID, data)
}

func (r *CollectionRepository) DeleteCollection(ctx context.Context, userID, id string) error {
	return r.store.Delete(ctx, userID, storage.CollectionCollections, id)
}

// AddItems appends purchase keys to the collection's items array at the
// store level, skipping keys already present.
func (r *CollectionRepository) AddItems(ctx context.Context, userID, collectionID string, itemIDs []string) error {
	return r.store.ArrayUnion(ctx, userID, storage.CollectionCollections, collectionID, "items", itemIDs)
}
