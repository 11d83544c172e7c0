package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/domain"
)

var ErrPurchaseNotFound = fmt.Errorf("purchase not found")

// PurchaseService keeps one authoritative in-memory purchase list per user,
// loaded on first access and kept consistent with every successful store
// write.
type PurchaseService struct {
	repo  domain.PurchaseRepository
	newID func() string
	now   func() time.Time

	mu    sync.RWMutex
	lists map[string][]domain.Purchase
}

func NewPurchaseService(repo domain.PurchaseRepository, newID func() string, now func() time.Time) *PurchaseService {
	return &PurchaseService{
		repo:  repo,
		newID: newID,
		now:   now,
		lists: make(map[string][]domain.Purchase),
	}
}

func (s *PurchaseService) loadList(ctx context.Context, userID string) error {
	s.mu.RLock()
	_, ok := s.lists[userID]
	s.mu.RUnlock()
	if ok {
		return nil
	}

	purchases, err := s.repo.FindPurchases(ctx, userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[userID]; !ok {
		s.lists[userID] = purchases
	}
	return nil
}

// GetPurchases returns the user's purchases, newest first.
func (s *PurchaseService) GetPurchases(ctx context.Context, userID string) ([]domain.Purchase, error) {
	if err := s.loadList(ctx, userID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.lists[userID]
	out := make([]domain.Purchase, len(list))
	copy(out, list)
	return out, nil
}

// CreatePurchase validates the form, writes the new purchase with a
// client-generated id, and prepends it to the in-memory list. A failed write
// leaves no state change.
func (s *PurchaseService) CreatePurchase(ctx context.Context, userID string, in domain.PurchaseInput) (*domain.Purchase, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.loadList(ctx, userID); err != nil {
		return nil, err
	}

	p := domain.Purchase{
		Key:           s.newID(),
		Name:          in.Name,
		Category:      in.Category,
		Note:          in.Note,
		PaidPrice:     domain.ToCents(in.PaidPrice),
		DatePurchased: in.DatePurchased,
		DateCreated:   s.now(),
	}
	if in.RegularPrice != "" {
		regular := domain.ToCents(in.RegularPrice)
		p.RegularPrice = &regular
	}

	if err := s.repo.SavePurchase(ctx, userID, p); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[userID] = append([]domain.Purchase{p}, s.lists[userID]...)
	return &p, nil
}

// UpdatePurchase writes a full-document update keyed by id and replaces the
// matching in-memory entry. Fields not editable in the form (wears, creation
// timestamp) are preserved from the existing record.
func (s *PurchaseService) UpdatePurchase(ctx context.Context, userID, key string, in domain.PurchaseInput) (*domain.Purchase, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.loadList(ctx, userID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	existing, idx := s.findPurchase(userID, key)
	s.mu.RUnlock()
	if idx < 0 {
		return nil, ErrPurchaseNotFound
	}

	edited := s.now()
	p := domain.Purchase{
		Key:           key,
		Name:          in.Name,
		Category:      in.Category,
		Note:          in.Note,
		Wears:         existing.Wears,
		PaidPrice:     domain.ToCents(in.PaidPrice),
		DatePurchased: in.DatePurchased,
		DateCreated:   existing.DateCreated,
		Edited:        &edited,
	}
	if in.RegularPrice != "" {
		regular := domain.ToCents(in.RegularPrice)
		p.RegularPrice = &regular
	}

	if err := s.repo.SavePurchase(ctx, userID, p); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, idx := s.findPurchase(userID, key); idx >= 0 {
		s.lists[userID][idx] = p
	}
	return &p, nil
}

// DeletePurchase removes the purchase from the store, then filters it out of
// the in-memory list.
func (s *PurchaseService) DeletePurchase(ctx context.Context, userID, key string) error {
	if err := s.loadList(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.DeletePurchase(ctx, userID, key); err != nil {
		return err
	}
	s.removeFromList(userID, map[string]struct{}{key: {}})
	return nil
}

// BulkDeletePurchases fans out one store delete per key and waits for all of
// them. The batch is not atomic: a partial failure reports an error and
// leaves the in-memory list untouched, with no per-item rollback or retry.
func (s *PurchaseService) BulkDeletePurchases(ctx context.Context, userID string, keys []string) error {
	if err := s.loadList(ctx, userID); err != nil {
		return err
	}

	errs := make([]error, len(keys))
	var wg sync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			errs[i] = s.repo.DeletePurchase(ctx, userID, key)
		}(i, key)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("could not delete all purchases: %w", err)
		}
	}

	deleted := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		deleted[key] = struct{}{}
	}
	s.removeFromList(userID, deleted)
	return nil
}

// RecordWear appends one timestamped wear to the purchase.
func (s *PurchaseService) RecordWear(ctx context.Context, userID, key string, at time.Time) (*domain.Purchase, error) {
	if err := s.loadList(ctx, userID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	existing, idx := s.findPurchase(userID, key)
	s.mu.RUnlock()
	if idx < 0 {
		return nil, ErrPurchaseNotFound
	}
	if at.IsZero() {
		at = s.now()
	}

	p := existing
	p.Wears = append(append([]time.Time{}, existing.Wears...), at)

	if err := s.repo.SavePurchase(ctx, userID, p); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, idx := s.findPurchase(userID, key); idx >= 0 {
		s.lists[userID][idx] = p
	}
	return &p, nil
}

// findPurchase must be called with s.mu held.
func (s *PurchaseService) findPurchase(userID, key string) (domain.Purchase, int) {
	for i, p := range s.lists[userID] {
		if p.Key == key {
			return p, i
		}
	}
	return domain.Purchase{}, -1
}

func (s *PurchaseService) removeFromList(userID string, keys map[string]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.lists[userID]
	kept := list[:0]
	for _, p := range list {
		if _, ok := keys[p.Key]; !ok {
			kept = append(kept, p)
		}
	}
	s.lists[userID] = kept
}
