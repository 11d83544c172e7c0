package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/domain"
)

var errStore = errors.New("store error")

type mockCategoryRepo struct {
	records []domain.CustomCategoryRecord

	findErr   error
	saveErr   error
	updateErr error
	deleteErr error

	saveCalls int
}

func (m *mockCategoryRepo) FindCustomCategories(_ context.Context, _ string) ([]domain.CustomCategoryRecord, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return append([]domain.CustomCategoryRecord{}, m.records...), nil
}

func (m *mockCategoryRepo) SaveCustomCategory(_ context.Context, _ string, rec domain.CustomCategoryRecord) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *mockCategoryRepo) UpdateCustomCategory(_ context.Context, _ string, rec domain.CustomCategoryRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i := range m.records {
		if m.records[i].ID == rec.ID {
			m.records[i] = rec
		}
	}
	return nil
}

func (m *mockCategoryRepo) DeleteCustomCategory(_ context.Context, _ string, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i := range m.records {
		if m.records[i].ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			break
		}
	}
	return nil
}

type mockPurchaseRepo struct {
	mu        sync.Mutex
	purchases []domain.Purchase

	findErr   error
	saveErr   error
	deleteErr map[string]error

	saveCalls   int
	deleteCalls int
}

func (m *mockPurchaseRepo) FindPurchases(_ context.Context, _ string) ([]domain.Purchase, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Purchase{}, m.purchases...), nil
}

func (m *mockPurchaseRepo) SavePurchase(_ context.Context, _ string, p domain.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	for i := range m.purchases {
		if m.purchases[i].Key == p.Key {
			m.purchases[i] = p
			return nil
		}
	}
	m.purchases = append(m.purchases, p)
	return nil
}

func (m *mockPurchaseRepo) DeletePurchase(_ context.Context, _ string, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls++
	if err, ok := m.deleteErr[key]; ok {
		return err
	}
	for i := range m.purchases {
		if m.purchases[i].Key == key {
			m.purchases = append(m.purchases[:i], m.purchases[i+1:]...)
			break
		}
	}
	return nil
}

type mockCollectionRepo struct {
	collections []domain.Collection

	findErr     error
	saveErr     error
	deleteErr   error
	addItemsErr map[string]error
}

func (m *mockCollectionRepo) FindCollections(_ context.Context, _ string) ([]domain.Collection, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return append([]domain.Collection{}, m.collections...), nil
}

func (m *mockCollectionRepo) SaveCollection(_ context.Context, _ string, c domain.Collection) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	for i := range m.collections {
		if m.collections[i].ID == c.ID {
			m.collections[i] = c
			return nil
		}
	}
	m.collections = append(m.collections, c)
	return nil
}

func (m *mockCollectionRepo) DeleteCollection(_ context.Context, _ string, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i := range m.collections {
		if m.collections[i].ID == id {
			m.collections = append(m.collections[:i], m.collections[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockCollectionRepo) AddItems(_ context.Context, _ string, collectionID string, itemIDs []string) error {
	if err, ok := m.addItemsErr[collectionID]; ok {
		return err
	}
	for i := range m.collections {
		if m.collections[i].ID == collectionID {
			m.collections[i].AddItems(itemIDs)
		}
	}
	return nil
}

// sequentialIDs returns a generator yielding id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}
