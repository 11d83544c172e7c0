package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sing9814/smartshopper-sub000/internal/storage"
	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/domain"
)

// CategoryRepository persists custom category records in the user's
// customCategories collection.
type CategoryRepository struct {
	store storage.Store
}

func NewCategoryRepository(store storage.Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

func (r *CategoryRepository) FindCustomCategories(ctx context.Context, userID string) ([]domain.CustomCategoryRecord, error) {
	docs, err := r.store.List(ctx, userID, storage.CollectionCustomCategories)
	if err != nil {
		return nil, fmt.Errorf("could not load custom categories: %w", err)
	}

	records := make([]domain.CustomCategoryRecord, 0, len(docs))
	for _, doc := range docs {
		var rec domain.CustomCategoryRecord
		if err := json.Unmarshal(doc.Data, &rec); err != nil {
			return nil, fmt.Errorf("could not decode custom category %s: %w", doc.ID, err)
		}
		rec.ID = doc.ID
		records = append(records, rec)
	}
	return records, nil
}

func (r *CategoryRepository) SaveCustomCategory(ctx context.Context, userID string, rec domain.CustomCategoryRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, userID, storage.CollectionCustomCategories, rec.ID, data)
}

func (r *CategoryRepository) UpdateCustomCategory(ctx context.Context, userID string, rec domain.CustomCategoryRecord) error {
	partial, err := json.Marshal(map[string]string{
		"category":    rec.Category,
		"subCategory": rec.SubCategory,
	})
	if err != nil {
		return err
	}
	return r.store.Update(ctx, userID, storage.CollectionCustomCategories, rec.ID, partial)
}

func (r *CategoryRepository) DeleteCustomCategory(ctx context.Context, userID, id string) error {
	return r.store.Delete(ctx, userID, storage.CollectionCustomCategories, id)
}
