package domain

import "context"

type CategoryRepository interface {
	FindCustomCategories(ctx context.Context, userID string) ([]CustomCategoryRecord, error)
	SaveCustomCategory(ctx context.Context, userID string, rec CustomCategoryRecord) error
	UpdateCustomCategory(ctx context.Context, userID string, rec CustomCategoryRecord) error
	DeleteCustomCategory(ctx context.Context, userID, id string) error
}

type PurchaseRepository interface {
	FindPurchases(ctx context.Context, userID string) ([]Purchase, error)
	SavePurchase(ctx context.Context, userID string, p Purchase) error
	DeletePurchase(ctx context.Context, userID, key string) error
}

type CollectionRepository interface {
	FindCollections(ctx context.Context, userID string) ([]Collection, error)
	SaveCollection(ctx context.Context, userID string, c Collection) error
	DeleteCollection(ctx context.Context, userID, id string) error
	AddItems(ctx context.Context, userID, collectionID string, itemIDs []string) error
}
