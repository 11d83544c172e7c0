package application

import (
	"context"
	"sync"

	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/domain"
	wardrobeErrors "github.com/sing9814/smartshopper-sub000/internal/wardrobe/errors"
)

// categoryState is one user's merged tree plus the flattened custom list.
type categoryState struct {
	tree []domain.Category
	flat []domain.FlatCustomCategory
}

// CategoryService owns the merged category view per user and keeps it
// consistent as custom categories are added, edited, and deleted. Every
// mutation is write-then-reflect: the store write happens first and the
// in-memory state only changes after it succeeds.
type CategoryService struct {
	repo     domain.CategoryRepository
	defaults []domain.DefaultCategory
	newID    func() string

	mu    sync.RWMutex
	state map[string]*categoryState
}

func NewCategoryService(repo domain.CategoryRepository, defaults []domain.DefaultCategory, newID func() string) *CategoryService {
	return &CategoryService{
		repo:     repo,
		defaults: defaults,
		newID:    newID,
		state:    make(map[string]*categoryState),
	}
}

// loadState returns the user's cached state, fetching and merging on first
// access. Callers must not retain the returned pointer outside s.mu.
func (s *CategoryService) loadState(ctx context.Context, userID string) (*categoryState, error) {
	s.mu.RLock()
	st, ok := s.state[userID]
	s.mu.RUnlock()
	if ok {
		return st, nil
	}

	customs, err := s.repo.FindCustomCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another request may have loaded in the meantime; keep the first merge.
	if st, ok := s.state[userID]; ok {
		return st, nil
	}
	tree, flat := domain.MergeCategories(s.defaults, customs)
	st = &categoryState{tree: tree, flat: flat}
	s.state[userID] = st
	return st, nil
}

// GetCategories returns the merged tree for dropdown selection.
func (s *CategoryService) GetCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	if _, err := s.loadState(ctx, userID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTree(s.state[userID].tree), nil
}

// GetCustomCategories returns the flattened list for the management screen.
func (s *CategoryService) GetCustomCategories(ctx context.Context, userID string) ([]domain.FlatCustomCategory, error) {
	if _, err := s.loadState(ctx, userID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	flat := s.state[userID].flat
	out := make([]domain.FlatCustomCategory, len(flat))
	copy(out, flat)
	return out, nil
}

// SearchCategories filters the merged tree into dropdown rows.
func (s *CategoryService) SearchCategories(ctx context.Context, userID, query string, expanded []string) ([]domain.DisplayRow, error) {
	tree, err := s.GetCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.FilterCategories(tree, query, domain.NewExpandedSet(expanded...)), nil
}

// AddCustomCategory persists a new custom subcategory and reflects it into
// the merged view, returning the created record as the just-selected value.
func (s *CategoryService) AddCustomCategory(ctx context.Context, userID, category, subCategory string) (*domain.CustomCategoryRecord, error) {
	rec := domain.CustomCategoryRecord{
		ID:          s.newID(),
		Category:    category,
		SubCategory: subCategory,
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.loadState(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.repo.SaveCustomCategory(ctx, userID, rec); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state[userID]
	st.flat = append(st.flat, domain.FlatCustomCategory{ID: rec.ID, Category: rec.Category, Name: rec.SubCategory})
	st.tree = domain.AppendCustom(st.tree, rec)
	return &rec, nil
}

// EditCustomCategory renames a custom subcategory and/or moves it under a
// different category. Purchases that already carry the old category text are
// left untouched; they keep the stale copy until individually re-saved.
func (s *CategoryService) EditCustomCategory(ctx context.Context, userID, id, newCategory, newName string) error {
	rec := domain.CustomCategoryRecord{ID: id, Category: newCategory, SubCategory: newName}
	if err := rec.Validate(); err != nil {
		return err
	}

	st, err := s.loadState(ctx, userID)
	if err != nil {
		return err
	}

	s.mu.RLock()
	idx := findFlat(st.flat, id)
	s.mu.RUnlock()
	if idx < 0 {
		return wardrobeErrors.ErrNotCustomCategory
	}

	if err := s.repo.UpdateCustomCategory(ctx, userID, rec); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx = findFlat(st.flat, id); idx >= 0 {
		st.flat[idx].Category = newCategory
		st.flat[idx].Name = newName
	}
	st.tree = domain.RemoveSubcategoryByID(st.tree, id)
	st.tree = domain.AppendCustom(st.tree, rec)
	return nil
}

// DeleteCustomCategory removes a custom subcategory from the store, the
// flattened list, and every category node that might hold it. Purchases
// referencing it keep their dangling denormalized copy.
func (s *CategoryService) DeleteCustomCategory(ctx context.Context, userID, id string) error {
	st, err := s.loadState(ctx, userID)
	if err != nil {
		return err
	}

	s.mu.RLock()
	idx := findFlat(st.flat, id)
	s.mu.RUnlock()
	if idx < 0 {
		return wardrobeErrors.ErrNotCustomCategory
	}

	if err := s.repo.DeleteCustomCategory(ctx, userID, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx = findFlat(st.flat, id); idx >= 0 {
		st.flat = append(st.flat[:idx], st.flat[idx+1:]...)
	}
	st.tree = domain.RemoveSubcategoryByID(st.tree, id)
	return nil
}

func findFlat(flat []domain.FlatCustomCategory, id string) int {
	for i := range flat {
		if flat[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneTree(tree []domain.Category) []domain.Category {
	out := make([]domain.Category, len(tree))
	for i, cat := range tree {
		subs := make([]domain.Subcategory, len(cat.SubCategories))
		copy(subs, cat.SubCategories)
		out[i] = domain.Category{Name: cat.Name, SubCategories: subs}
	}
	return out
}
