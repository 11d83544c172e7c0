package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/domain"
)

var ErrCollectionNotFound = fmt.Errorf("collection not found")

// CollectionService keeps one authoritative in-memory collection list per
// user, mirroring every successful store write.
type CollectionService struct {
	repo  domain.CollectionRepository
	newID func() string
	now   func() time.Time

	mu    sync.RWMutex
	lists map[string][]domain.Collection
}

func NewCollectionService(repo domain.CollectionRepository, newID func() string, now func() time.Time) *CollectionService {
	return &CollectionService{
		repo:  repo,
		newID: newID,
		now:   now,
		lists: make(map[string][]domain.Collection),
	}
}

func (s *CollectionService) loadList(ctx context.Context, userID string) error {
	s.mu.RLock()
	_, ok := s.lists[userID]
	s.mu.RUnlock()
	if ok {
		return nil
	}

	collections, err := s.repo.FindCollections(ctx, userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[userID]; !ok {
		s.lists[userID] = collections
	}
	return nil
}

func (s *CollectionService) GetCollections(ctx context.Context, userID string) ([]domain.Collection, error) {
	if err := s.loadList(ctx, userID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.lists[userID]
	out := make([]domain.Collection, len(list))
	copy(out, list)
	return out, nil
}

func (s *CollectionService) CreateCollection(ctx context.Context, userID, name, description string) (*domain.Collection, error) {
	c := domain.Collection{
		ID:          s.newID(),
		Name:        name,
		Description: description,
		Items:       []string{},
		DateCreated: s.now(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.loadList(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.repo.SaveCollection(ctx, userID, c); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[userID] = append([]domain.Collection{c}, s.lists[userID]...)
	return &c, nil
}

// UpdateCollection renames a collection; items and creation date are kept.
func (s *CollectionService) UpdateCollection(ctx context.Context, userID, id, name, description string) (*domain.Collection, error) {
	if err := s.loadList(ctx, userID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	existing, idx := s.findCollection(userID, id)
	s.mu.RUnlock()
	if idx < 0 {
		return nil, ErrCollectionNotFound
	}

	c := existing
	c.Name = name
	c.Description = description
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.SaveCollection(ctx, userID, c); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, idx := s.findCollection(userID, id); idx >= 0 {
		s.lists[userID][idx] = c
	}
	return &c, nil
}

func (s *CollectionService) DeleteCollection(ctx context.Context, userID, id string) error {
	if err := s.loadList(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.DeleteCollection(ctx, userID, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.lists[userID]
	kept := list[:0]
	for _, c := range list {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.lists[userID] = kept
	return nil
}

// AddItemsToCollections appends the purchase keys to each target collection
// with set-union semantics at the store level, then mirrors the same union
// into the in-memory list.
func (s *CollectionService) AddItemsToCollections(ctx context.Context, userID string, itemIDs, collectionIDs []string) error {
	if len(itemIDs) == 0 || len(collectionIDs) == 0 {
		return nil
	}
	if err := s.loadList(ctx, userID); err != nil {
		return err
	}

	for _, collectionID := range collectionIDs {
		if err := s.repo.AddItems(ctx, userID, collectionID, itemIDs); err != nil {
			return fmt.Errorf("could not add items to collection %s: %w", collectionID, err)
		}

		s.mu.Lock()
		if _, idx := s.findCollection(userID, collectionID); idx >= 0 {
			s.lists[userID][idx].AddItems(itemIDs)
		}
		s.mu.Unlock()
	}
	return nil
}

// findCollection must be called with s.mu held.
func (s *CollectionService) findCollection(userID, id string) (domain.Collection, int) {
	for i, c := range s.lists[userID] {
		if c.ID == id {
			return c, i
		}
	}
	return domain.Collection{}, -1
}
