package interfaces

import (
	"context"
	"errors"

	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/domain"
	wardrobeErrors "github.com/sing9814/smartshopper-sub000/internal/wardrobe/errors"
)

type MockCategoryService struct {
	tree       []domain.Category
	flat       []domain.FlatCustomCategory
	rows       []domain.DisplayRow
	added      *domain.CustomCategoryRecord
	shouldFail bool
	invalid    bool

	lastQuery    string
	lastExpanded []string
}

func (m *MockCategoryService) GetCategories(_ context.Context, _ string) ([]domain.Category, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.tree, nil
}

func (m *MockCategoryService) GetCustomCategories(_ context.Context, _ string) ([]domain.FlatCustomCategory, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.flat, nil
}

func (m *MockCategoryService) SearchCategories(_ context.Context, _, query string, expanded []string) ([]domain.DisplayRow, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	m.lastQuery = query
	m.lastExpanded = expanded
	return m.rows, nil
}

func (m *MockCategoryService) AddCustomCategory(_ context.Context, _, category, subCategory string) (*domain.CustomCategoryRecord, error) {
	if m.invalid {
		return nil, wardrobeErrors.ErrCategoryRequired
	}
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	m.added = &domain.CustomCategoryRecord{ID: "cc-1", Category: category, SubCategory: subCategory}
	return m.added, nil
}

func (m *MockCategoryService) EditCustomCategory(_ context.Context, _, _, _, _ string) error {
	if m.invalid {
		return wardrobeErrors.ErrNotCustomCategory
	}
	if m.shouldFail {
		return errors.New("service error")
	}
	return nil
}

func (m *MockCategoryService) DeleteCustomCategory(_ context.Context, _, _ string) error {
	if m.invalid {
		return wardrobeErrors.ErrNotCustomCategory
	}
	if m.shouldFail {
		return errors.New("service error")
	}
	return nil
}
