package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sing9814/smartshopper-sub000/internal/storage"
	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/domain"
)

// PurchaseRepository persists purchases in the user's Purchases collection.
type PurchaseRepository struct {
	store storage.Store
}

func NewPurchaseRepository(store storage.Store) *PurchaseRepository {
	return &PurchaseRepository{store: store}
}

// FindPurchases returns the user's purchases, newest first.
func (r *PurchaseRepository) FindPurchases(ctx context.Context, userID string) ([]domain.Purchase, error) {
	docs, err := r.store.List(ctx, userID, storage.CollectionPurchases)
	if err != nil {
		return nil, fmt.Errorf("could not load purchases: %w", err)
	}

	purchases := make([]domain.Purchase, 0, len(docs))
	for _, doc := range docs {
		var p domain.Purchase
		if err := json.Unmarshal(doc.Data, &p); err != nil {
			return nil, fmt.Errorf("could not decode purchase %s: %w", doc.ID, err)
		}
		p.Key = doc.ID
		purchases = append(purchases, p)
	}
	sort.SliceStable(purchases, func(i, j int) bool {
		return purchases[i].DateCreated.After(purchases[j].DateCreated)
	})
	return purchases, nil
}

// SavePurchase writes the full purchase document under its key.
func (r *PurchaseRepository) SavePurchase(ctx context.Context, userID string, p domain.Purchase) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, userID, storage.CollectionPurchases, p.Key, data)
}

func (r *PurchaseRepository) DeletePurchase(ctx context.Context, userID, key string) error {
	return r.store.Delete(ctx, userID, storage.CollectionPurchases, key)
}
