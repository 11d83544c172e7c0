package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/application"
	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/domain"
	wardrobeErrors "github.com/sing9814/smartshopper-sub000/internal/wardrobe/errors"
)

type MockPurchaseService struct {
	purchases  []domain.Purchase
	shouldFail bool
	invalid    bool
	notFound   bool

	deletedKeys []string
}

func (m *MockPurchaseService) GetPurchases(_ context.Context, _ string) ([]domain.Purchase, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.purchases, nil
}

func (m *MockPurchaseService) CreatePurchase(_ context.Context, _ string, in domain.PurchaseInput) (*domain.Purchase, error) {
	if m.invalid {
		return nil, wardrobeErrors.ErrPaidAboveRegular
	}
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	p := domain.Purchase{
		Key:       "p-1",
		Name:      in.Name,
		Category:  in.Category,
		PaidPrice: domain.ToCents(in.PaidPrice),
	}
	m.purchases = append([]domain.Purchase{p}, m.purchases...)
	return &p, nil
}

func (m *MockPurchaseService) UpdatePurchase(_ context.Context, _, key string, in domain.PurchaseInput) (*domain.Purchase, error) {
	if m.invalid {
		return nil, wardrobeErrors.ErrInvalidPrice
	}
	if m.notFound {
		return nil, application.ErrPurchaseNotFound
	}
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return &domain.Purchase{Key: key, Name: in.Name}, nil
}

func (m *MockPurchaseService) DeletePurchase(_ context.Context, _, key string) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	m.deletedKeys = append(m.deletedKeys, key)
	return nil
}

func (m *MockPurchaseService) BulkDeletePurchases(_ context.Context, _ string, keys []string) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	m.deletedKeys = append(m.deletedKeys, keys...)
	return nil
}

func (m *MockPurchaseService) RecordWear(_ context.Context, _, key string, at time.Time) (*domain.Purchase, error) {
	if m.notFound {
		return nil, application.ErrPurchaseNotFound
	}
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if at.IsZero() {
		at = time.Now()
	}
	return &domain.Purchase{Key: key, Wears: []time.Time{at}}, nil
}
