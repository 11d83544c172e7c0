package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/domain"
	wardrobeErrors "github.com/sing9814/smartshopper-sub000/internal/wardrobe/errors"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newPurchaseService(repo *mockPurchaseRepo) *PurchaseService {
	return NewPurchaseService(repo, sequentialIDs(), fixedNow)
}

func purchaseInput() domain.PurchaseInput {
	return domain.PurchaseInput{
		Name:          "Denim jacket",
		Category:      domain.PurchaseCategory{Category: "Outerwear"},
		PaidPrice:     "39.99",
		RegularPrice:  "59.99",
		DatePurchased: "2024-05-20",
	}
}

func TestPurchaseService_CreatePrependsToList(t *testing.T) {
	repo := &mockPurchaseRepo{}
	svc := newPurchaseService(repo)
	ctx := context.Background()

	first, err := svc.CreatePurchase(ctx, "user-1", purchaseInput())
	require.NoError(t, err)

	in := purchaseInput()
	in.Name = "Boots"
	second, err := svc.CreatePurchase(ctx, "user-1", in)
	require.NoError(t, err)

	list, err := svc.GetPurchases(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.Key, list[0].Key, "newest purchase first")
	assert.Equal(t, first.Key, list[1].Key)

	assert.Equal(t, int64(3999), first.PaidPrice)
	require.NotNil(t, first.RegularPrice)
	assert.Equal(t, int64(5999), *first.RegularPrice)
	assert.Equal(t, fixedNow(), first.DateCreated)
	assert.Nil(t, first.Edited)
}

func TestPurchaseService_CreateRejectsPaidAtOrAboveRegular(t *testing.T) {
	repo := &mockPurchaseRepo{}
	svc := newPurchaseService(repo)

	in := purchaseInput()
	in.PaidPrice = "59.99"

	_, err := svc.CreatePurchase(context.Background(), "user-1", in)
	assert.ErrorIs(t, err, wardrobeErrors.ErrPaidAboveRegular)
	assert.Zero(t, repo.saveCalls, "validation failure must produce no store write")
}

func TestPurchaseService_CreateWriteFailure(t *testing.T) {
	repo := &mockPurchaseRepo{saveErr: errStore}
	svc := newPurchaseService(repo)
	ctx := context.Background()

	_, err := svc.CreatePurchase(ctx, "user-1", purchaseInput())
	require.Error(t, err)

	repo.saveErr = nil
	list, err := svc.GetPurchases(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPurchaseService_UpdatePreservesWearsAndCreated(t *testing.T) {
	repo := &mockPurchaseRepo{}
	svc := newPurchaseService(repo)
	ctx := context.Background()

	created, err := svc.CreatePurchase(ctx, "user-1", purchaseInput())
	require.NoError(t, err)

	_, err = svc.RecordWear(ctx, "user-1", created.Key, time.Time{})
	require.NoError(t, err)

	in := purchaseInput()
	in.Name = "Denim jacket (hemmed)"
	updated, err := svc.UpdatePurchase(ctx, "user-1", created.Key, in)
	require.NoError(t, err)

	assert.Equal(t, "Denim jacket (hemmed)", updated.Name)
	assert.Len(t, updated.Wears, 1, "wears are not editable in the form")
	assert.Equal(t, created.DateCreated, updated.DateCreated)
	require.NotNil(t, updated.Edited)

	list, err := svc.GetPurchases(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Denim jacket (hemmed)", list[0].Name)
}

func TestPurchaseService_UpdateUnknownKey(t *testing.T) {
	repo := &mockPurchaseRepo{}
	svc := newPurchaseService(repo)

	_, err := svc.UpdatePurchase(context.Background(), "user-1", "missing", purchaseInput())
	assert.ErrorIs(t, err, ErrPurchaseNotFound)
}

func TestPurchaseService_DeleteFiltersList(t *testing.T) {
	repo := &mockPurchaseRepo{}
	svc := newPurchaseService(repo)
	ctx := context.Background()

	p, err := svc.CreatePurchase(ctx, "user-1", purchaseInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeletePurchase(ctx, "user-1", p.Key))

	list, err := svc.GetPurchases(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPurchaseService_BulkDelete(t *testing.T) {
	repo := &mockPurchaseRepo{}
	svc := newPurchaseService(repo)
	ctx := context.Background()

	var keys []string
	for _, name := range []string{"A1", "B2", "C3"} {
		in := purchaseInput()
		in.Name = name
		p, err := svc.CreatePurchase(ctx, "user-1", in)
		require.NoError(t, err)
		keys = append(keys, p.Key)
	}

	require.NoError(t, svc.BulkDeletePurchases(ctx, "user-1", keys[:2]))

	list, err := svc.GetPurchases(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keys[2], list[0].Key)
}

func TestPurchaseService_BulkDeletePartialFailure(t *testing.T) {
	repo := &mockPurchaseRepo{deleteErr: map[string]error{}}
	svc := newPurchaseService(repo)
	ctx := context.Background()

	var keys []string
	for _, name := range []string{"A1", "B2"} {
		in := purchaseInput()
		in.Name = name
		p, err := svc.CreatePurchase(ctx, "user-1", in)
		require.NoError(t, err)
		keys = append(keys, p.Key)
	}
	repo.deleteErr[keys[1]] = errStore

	err := svc.BulkDeletePurchases(ctx, "user-1", keys)
	require.Error(t, err)
	assert.Equal(t, 2, repo.deleteCalls, "every delete is attempted")

	// The in-memory list is left as-is; no per-item reconciliation happens.
	list, err := svc.GetPurchases(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestPurchaseService_RecordWearAppends(t *testing.T) {
	repo := &mockPurchaseRepo{}
	svc := newPurchaseService(repo)
	ctx := context.Background()

	p, err := svc.CreatePurchase(ctx, "user-1", purchaseInput())
	require.NoError(t, err)

	worn := time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
	updated, err := svc.RecordWear(ctx, "user-1", p.Key, worn)
	require.NoError(t, err)
	require.Len(t, updated.Wears, 1)
	assert.Equal(t, worn, updated.Wears[0])

	later := worn.Add(24 * time.Hour)
	updated, err = svc.RecordWear(ctx, "user-1", p.Key, later)
	require.NoError(t, err)
	require.Len(t, updated.Wears, 2)
	assert.Equal(t, worn, updated.Wears[0], "wears are append-only and ordered")
	assert.Equal(t, later, updated.Wears[1])
}
