package interfaces

import (
	"context"
	"errors"

	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/application"
	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/domain"
	wardrobeErrors "github.com/sing9814/smartshopper-sub000/internal/wardrobe/errors"
)

type MockCollectionService struct {
	collections []domain.Collection
	shouldFail  bool
	invalid     bool
	notFound    bool

	addedItems       []string
	addedCollections []string
}

func (m *MockCollectionService) GetCollections(_ context.Context, _ string) ([]domain.Collection, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.collections, nil
}

func (m *MockCollectionService) CreateCollection(_ context.Context, _, name, description string) (*domain.Collection, error) {
	if m.invalid {
		return nil, wardrobeErrors.ErrNameRequired
	}
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	c := domain.Collection{ID: "c-1", Name: name, Description: description, Items: []string{}}
	m.collections = append(m.collections, c)
	return &c, nil
}

func (m *MockCollectionService) UpdateCollection(_ context.Context, _, id, name, description string) (*domain.Collection, error) {
	if m.invalid {
		return nil, wardrobeErrors.ErrNameRequired
	}
	if m.notFound {
		return nil, application.ErrCollectionNotFound
	}
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return &domain.Collection{ID: id, Name: name, Description: description}, nil
}

func (m *MockCollectionService) DeleteCollection(_ context.Context, _, _ string) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	return nil
}

func (m *MockCollectionService) AddItemsToCollections(_ context.Context, _ string, itemIDs, collectionIDs []string) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	m.addedItems = append(m.addedItems, itemIDs...)
	m.addedCollections = append(m.addedCollections, collectionIDs...)
	return nil
}
