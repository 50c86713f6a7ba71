// Package allocation mutates the assignment of item quantities to
// characters while holding the quantity-conservation invariant: the sum of
// an item's allocations never exceeds the item's quantity.
package allocation

import (
	"context"
	"fmt"

	"github.com/kalrend/warchest/internal/concurrency"
	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/logger"
	"github.com/kalrend/warchest/internal/repository"
)

// Mode selects how an allocation amount is applied.
type Mode string

const (
	// ModeMerge adds the amount to the character's existing allocation.
	ModeMerge Mode = "merge"
	// ModeSet replaces the character's allocation with the amount.
	ModeSet Mode = "set"
	// ModeTakeover removes every other character's allocation first,
	// then sets. Callers use it to confirm taking a unique item.
	ModeTakeover Mode = "takeover"
)

// ValidMode reports whether m is a known allocation mode.
func ValidMode(m Mode) bool {
	return m == ModeMerge || m == ModeSet || m == ModeTakeover
}

// Service defines the interface for allocation mutations.
type Service interface {
	Set(ctx context.Context, itemID, characterID string, amount float64, mode Mode) (*domain.ItemView, error)
	Remove(ctx context.Context, itemID, characterID string) (*domain.ItemView, error)
}

type service struct {
	repo  repository.Warehouse
	chars repository.Character
	locks *concurrency.LockManager
}

// NewService creates a new allocation service
func NewService(repo repository.Warehouse, chars repository.Character, locks *concurrency.LockManager) Service {
	return &service{repo: repo, chars: chars, locks: locks}
}

// Set applies an allocation change for one item/character pair. The whole
// mutation runs inside one transaction under the item's lock.
func (s *service) Set(ctx context.Context, itemID, characterID string, amount float64, mode Mode) (*domain.ItemView, error) {
	log := logger.FromContext(ctx)
	log.Info("Set allocation called", "item_id", itemID, "character_id", characterID, "amount", amount, "mode", mode)

	if !ValidMode(mode) {
		return nil, fmt.Errorf("%w: mode %q", domain.ErrInvalidInput, mode)
	}
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", domain.ErrInvalidInput)
	}
	if mode == ModeMerge && amount == 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	if _, err := s.chars.GetCharacter(ctx, characterID); err != nil {
		return nil, err
	}

	lock := s.locks.GetLock(concurrency.ItemKey(itemID))
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	item, err := tx.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	allocs, err := tx.ListAllocations(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}

	var current, others float64
	hasOthers := false
	for _, a := range allocs {
		if a.CharacterID == characterID {
			current = a.Quantity
		} else {
			others += a.Quantity
			hasOthers = true
		}
	}

	// Taking a unique item away from its holder needs an explicit
	// confirmation, signalled by retrying with ModeTakeover.
	if item.Quantity <= 1 && hasOthers && mode != ModeTakeover {
		return nil, fmt.Errorf("%w: item %q", domain.ErrItemOccupied, item.Name)
	}

	if mode == ModeTakeover {
		if err := tx.DeleteOtherAllocations(ctx, itemID, characterID); err != nil {
			return nil, fmt.Errorf("failed to clear other allocations: %w", err)
		}
		others = 0
	}

	next := amount
	if mode == ModeMerge {
		next = current + amount
	}

	maxAvailable := item.Quantity - others
	if next > maxAvailable+domain.QuantityEpsilon {
		return nil, fmt.Errorf("%w: %.4g available", domain.ErrQuantityExceeded, maxAvailable)
	}

	if next <= 0 {
		if err := tx.DeleteAllocation(ctx, itemID, characterID); err != nil {
			return nil, fmt.Errorf("failed to delete allocation: %w", err)
		}
	} else if err := tx.UpsertAllocation(ctx, itemID, characterID, next); err != nil {
		return nil, fmt.Errorf("failed to upsert allocation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info("Allocation updated", "item_id", itemID, "character_id", characterID, "quantity", next)
	return s.repo.GetItemView(ctx, itemID)
}

// Remove deletes the character's allocation on the item and returns the
// refreshed view.
func (s *service) Remove(ctx context.Context, itemID, characterID string) (*domain.ItemView, error) {
	log := logger.FromContext(ctx)
	log.Info("Remove allocation called", "item_id", itemID, "character_id", characterID)

	lock := s.locks.GetLock(concurrency.ItemKey(itemID))
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	allocs, err := tx.ListAllocations(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}

	found := false
	for _, a := range allocs {
		if a.CharacterID == characterID {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrAllocationNotFound
	}

	if err := tx.DeleteAllocation(ctx, itemID, characterID); err != nil {
		return nil, fmt.Errorf("failed to delete allocation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.repo.GetItemView(ctx, itemID)
}
