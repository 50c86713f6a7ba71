// Package merge consolidates fungible item records into one surviving
// item, conserving total quantity and each character's holdings.
package merge

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/kalrend/warchest/internal/concurrency"
	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/logger"
	"github.com/kalrend/warchest/internal/repository"
)

// Options steers conflict resolution for one merge.
type Options struct {
	// TemplateItemID names the record whose non-quantity attributes win.
	// Empty means the earliest-created candidate.
	TemplateItemID string
	// RequireTemplate makes a signature mismatch without an explicit
	// template fail with TemplateRequiredError instead of silently
	// picking a winner.
	RequireTemplate bool
}

// Result reports the outcome of a merge.
type Result struct {
	MergedItemID  string   `json:"merged_item_id"`
	MergedItemIDs []string `json:"merged_item_ids"`
	Conflict      bool     `json:"conflict"`
}

// CurrencyResult is one group's outcome of the batch currency sweep.
type CurrencyResult struct {
	Name         string   `json:"name"`
	Merged       bool     `json:"merged"`
	MergedItemID string   `json:"merged_item_id"`
	ItemIDs      []string `json:"item_ids"`
}

// Service defines the interface for merge operations.
type Service interface {
	Merge(ctx context.Context, itemIDs []string, opts Options) (*Result, error)
	MergeCurrency(ctx context.Context, names ...string) ([]CurrencyResult, error)
}

type service struct {
	repo  repository.Merge
	locks *concurrency.LockManager
}

// NewService creates a new merge service
func NewService(repo repository.Merge, locks *concurrency.LockManager) Service {
	return &service{repo: repo, locks: locks}
}

// Merge consolidates the given items into the template record. The whole
// consolidation runs in one transaction under the ledger lock.
func (s *service) Merge(ctx context.Context, itemIDs []string, opts Options) (*Result, error) {
	log := logger.FromContext(ctx)

	ids := dedupe(itemIDs)
	if len(ids) < 2 {
		return nil, fmt.Errorf("%w: merge needs at least two items", domain.ErrInvalidInput)
	}
	log.Info("Merge called", "items", len(ids), "template", opts.TemplateItemID)

	lock := s.locks.GetLock(concurrency.LedgerKey)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	items, err := tx.GetItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	if len(items) != len(ids) {
		return nil, fmt.Errorf("%w: %d of %d merge candidates missing", domain.ErrItemNotFound, len(ids)-len(items), len(ids))
	}

	conflict := false
	first := signature(items[0])
	for _, item := range items[1:] {
		if signature(item) != first {
			conflict = true
			break
		}
	}

	if conflict && opts.RequireTemplate && opts.TemplateItemID == "" {
		return nil, &domain.TemplateRequiredError{Candidates: items}
	}

	template, err := pickTemplate(items, opts.TemplateItemID)
	if err != nil {
		return nil, err
	}

	allocs, err := tx.ListAllocationsForItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load allocations: %w", err)
	}

	var total float64
	for _, item := range items {
		total += item.Quantity
	}

	// Per-character sums, keeping first-seen (creation) order.
	sums := make(map[string]float64)
	var order []string
	for _, a := range allocs {
		if _, seen := sums[a.CharacterID]; !seen {
			order = append(order, a.CharacterID)
		}
		sums[a.CharacterID] += a.Quantity
	}

	template.Name = normalizeName(template.Name)
	template.Quantity = total
	if template.Category != domain.CategoryEquipment {
		template.Slot = nil
	}
	if err := tx.UpdateItem(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to update template item: %w", err)
	}

	// Re-key every character's combined holdings onto the template,
	// replacing whatever allocation the template had.
	if err := tx.DeleteItemAllocations(ctx, template.ID); err != nil {
		return nil, fmt.Errorf("failed to clear template allocations: %w", err)
	}
	for _, characterID := range order {
		quantity := sums[characterID]
		if quantity <= 0 {
			continue
		}
		alloc := &domain.Allocation{
			ID:          uuid.NewString(),
			ItemID:      template.ID,
			CharacterID: characterID,
			Quantity:    quantity,
		}
		if err := tx.InsertAllocation(ctx, alloc); err != nil {
			return nil, fmt.Errorf("failed to insert merged allocation: %w", err)
		}
	}

	var others []string
	for _, id := range ids {
		if id != template.ID {
			others = append(others, id)
		}
	}
	if err := tx.DeleteItems(ctx, others); err != nil {
		return nil, fmt.Errorf("failed to delete merged items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info("Items merged", "template", template.ID, "merged", len(others), "conflict", conflict)
	return &Result{MergedItemID: template.ID, MergedItemIDs: ids, Conflict: conflict}, nil
}

// MergeCurrency groups currency items by normalized name and merges each
// group. Currency is fungible by name alone, so no template confirmation
// is needed. When names are given, only those groups are swept.
func (s *service) MergeCurrency(ctx context.Context, names ...string) ([]CurrencyResult, error) {
	log := logger.FromContext(ctx)
	log.Info("MergeCurrency called", "names", len(names))

	items, err := s.repo.ListItemsByCategory(ctx, domain.CategoryCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to list currency items: %w", err)
	}

	var wanted map[string]bool
	if len(names) > 0 {
		wanted = make(map[string]bool, len(names))
		for _, name := range names {
			if key := normalizeName(name); key != "" {
				wanted[key] = true
			}
		}
	}

	groups := make(map[string][]domain.Item)
	var order []string
	for _, item := range items {
		key := normalizeName(item.Name)
		if key == "" || (wanted != nil && !wanted[key]) {
			continue
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], item)
	}

	results := make([]CurrencyResult, 0, len(order))
	for _, key := range order {
		group := groups[key]
		ids := make([]string, len(group))
		for i, item := range group {
			ids[i] = item.ID
		}

		if len(group) < 2 {
			results = append(results, CurrencyResult{Name: key, Merged: false, MergedItemID: group[0].ID, ItemIDs: ids})
			continue
		}

		// Items arrive oldest first, so group[0] is the earliest record.
		merged, err := s.Merge(ctx, ids, Options{TemplateItemID: group[0].ID, RequireTemplate: false})
		if err != nil {
			return nil, fmt.Errorf("failed to merge currency %q: %w", key, err)
		}
		results = append(results, CurrencyResult{Name: key, Merged: true, MergedItemID: merged.MergedItemID, ItemIDs: ids})
	}

	return results, nil
}

// pickTemplate resolves the surviving record: the explicit choice when
// given, otherwise the earliest-created candidate (id as tie-break).
func pickTemplate(items []domain.Item, templateID string) (*domain.Item, error) {
	if templateID != "" {
		for i := range items {
			if items[i].ID == templateID {
				return &items[i], nil
			}
		}
		return nil, fmt.Errorf("%w: template %s is not a merge candidate", domain.ErrInvalidInput, templateID)
	}

	sorted := make([]domain.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(a, b int) bool {
		if !sorted[a].CreatedAt.Equal(sorted[b].CreatedAt) {
			return sorted[a].CreatedAt.Before(sorted[b].CreatedAt)
		}
		return sorted[a].ID < sorted[b].ID
	})
	return &sorted[0], nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
