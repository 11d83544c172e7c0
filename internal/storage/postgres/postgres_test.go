package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sing9814/smartshopper-sub000/internal/storage"
)

func setupStore(t *testing.T) *DocumentStore {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("smartshopper_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	store, err := New(db)
	require.NoError(t, err)
	return store
}

func TestDocumentStore_SetGetList(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	err := store.Set(ctx, "user-1", storage.CollectionPurchases, "p1", []byte(`{"name":"Denim jacket","paidPrice":4999}`))
	require.NoError(t, err)
	err = store.Set(ctx, "user-1", storage.CollectionPurchases, "p2", []byte(`{"name":"Boots","paidPrice":12000}`))
	require.NoError(t, err)

	doc, err := store.Get(ctx, "user-1", storage.CollectionPurchases, "p1")
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(doc.Data, &fields))
	assert.Equal(t, "Denim jacket", fields["name"])

	docs, err := store.List(ctx, "user-1", storage.CollectionPurchases)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	// Other users and collections are not visible.
	docs, err = store.List(ctx, "user-2", storage.CollectionPurchases)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocumentStore_GetNotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.Get(context.Background(), "user-1", storage.CollectionPurchases, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDocumentStore_SetOverwrites(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user-1", storage.CollectionPurchases, "p1", []byte(`{"name":"Old","note":"keep?"}`)))
	require.NoError(t, store.Set(ctx, "user-1", storage.CollectionPurchases, "p1", []byte(`{"name":"New"}`)))

	doc, err := store.Get(ctx, "user-1", storage.CollectionPurchases, "p1")
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(doc.Data, &fields))
	assert.Equal(t, "New", fields["name"])
	assert.NotContains(t, fields, "note", "Set should fully overwrite the document")
}

func TestDocumentStore_UpdateMerges(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user-1", storage.CollectionPurchases, "p1", []byte(`{"name":"Boots","note":"winter"}`)))
	require.NoError(t, store.Update(ctx, "user-1", storage.CollectionPurchases, "p1", []byte(`{"note":"all season"}`)))

	doc, err := store.Get(ctx, "user-1", storage.CollectionPurchases, "p1")
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(doc.Data, &fields))
	assert.Equal(t, "Boots", fields["name"])
	assert.Equal(t, "all season", fields["note"])

	err = store.Update(ctx, "user-1", storage.CollectionPurchases, "missing", []byte(`{"note":"x"}`))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDocumentStore_ArrayUnion(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user-1", storage.CollectionCollections, "c1", []byte(`{"name":"Summer","items":["a"]}`)))

	require.NoError(t, store.ArrayUnion(ctx, "user-1", storage.CollectionCollections, "c1", "items", []string{"a", "b", "b", "c"}))

	doc, err := store.Get(ctx, "user-1", storage.CollectionCollections, "c1")
	require.NoError(t, err)

	var fields struct {
		Items []string `json:"items"`
	}
	require.NoError(t, json.Unmarshal(doc.Data, &fields))
	assert.ElementsMatch(t, []string{"a", "b", "c"}, fields.Items)
}

func TestDocumentStore_Delete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user-1", storage.CollectionCustomCategories, "cc1", []byte(`{"category":"Footwear","subCategory":"Sneakers"}`)))
	require.NoError(t, store.Delete(ctx, "user-1", storage.CollectionCustomCategories, "cc1"))

	_, err := store.Get(ctx, "user-1", storage.CollectionCustomCategories, "cc1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Deleting a missing document is a no-op.
	assert.NoError(t, store.Delete(ctx, "user-1", storage.CollectionCustomCategories, "cc1"))
}
