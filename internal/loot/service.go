// Package loot implements the publish coordinator: the atomic operation
// that turns a loot or expense event into item, allocation, audit and
// ledger writes, all inside one transaction.
package loot

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/kalrend/warchest/internal/concurrency"
	"github.com/kalrend/warchest/internal/distribute"
	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/logger"
	"github.com/kalrend/warchest/internal/metrics"
	"github.com/kalrend/warchest/internal/repository"
)

// PublishResult reports what a publish created. LootRecordID is empty in
// expense mode, which writes no audit record.
type PublishResult struct {
	LootRecordID string `json:"loot_record_id,omitempty"`
}

// AutoAssignRequest asks for a distribution plan over the player roster.
type AutoAssignRequest struct {
	Items   []domain.ProposedItem `json:"items"`
	Rule    distribute.Rule       `json:"rule"`
	Weights map[string]float64    `json:"weights,omitempty"`
}

// Assignment is one item's proposed allocation plan.
type Assignment struct {
	ClientID    string                      `json:"client_id,omitempty"`
	Name        string                      `json:"name"`
	Allocations []domain.ProposedAllocation `json:"allocations"`
}

// Service defines the interface for loot operations.
type Service interface {
	Publish(ctx context.Context, event *domain.PublishEvent) (*PublishResult, error)
	AutoAssign(ctx context.Context, req *AutoAssignRequest) ([]Assignment, error)
	Records(ctx context.Context) ([]domain.LootRecord, error)
	UpdateMemo(ctx context.Context, recordID, memo string) error
}

type service struct {
	repo   repository.Loot
	locks  *concurrency.LockManager
	newSrc func() rand.Source
}

// Option configures the service.
type Option func(*service)

// WithRandSource injects the randomness source factory used by the random
// distribution rule, so tests can pin outcomes.
func WithRandSource(f func() rand.Source) Option {
	return func(s *service) {
		s.newSrc = f
	}
}

// NewService creates a new loot service
func NewService(repo repository.Loot, locks *concurrency.LockManager, opts ...Option) Service {
	s := &service{repo: repo, locks: locks}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish applies a loot or expense event as one all-or-nothing unit of
// work. A failure on any item aborts every write of the event.
func (s *service) Publish(ctx context.Context, event *domain.PublishEvent) (*PublishResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Publish called", "mode", event.Mode, "items", len(event.Items))

	if err := validateEvent(event); err != nil {
		return nil, err
	}

	lock := s.locks.GetLock(concurrency.LedgerKey)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	var result PublishResult
	switch event.Mode {
	case domain.PublishModeExpense:
		err = s.publishExpense(ctx, tx, event)
	default:
		result.LootRecordID, err = s.publishLoot(ctx, tx, event)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.PublishTotal.WithLabelValues(string(event.Mode)).Inc()
	log.Info("Publish committed", "mode", event.Mode, "record_id", result.LootRecordID)
	return &result, nil
}

// publishLoot creates every item with its allocations, then the audit
// record and the income ledger entry.
func (s *service) publishLoot(ctx context.Context, tx repository.LootTx, event *domain.PublishEvent) (string, error) {
	for _, proposed := range event.Items {
		if proposed.Quantity <= 0 {
			continue
		}

		item := &domain.Item{
			ID:                 uuid.NewString(),
			Name:               proposed.Name,
			Category:           proposed.Category,
			Quantity:           proposed.Quantity,
			UnitValue:          proposed.UnitValue,
			Weight:             proposed.Weight,
			Description:        proposed.Description,
			DisplayDescription: proposed.DisplayDescription,
		}
		if item.Category == domain.CategoryEquipment {
			item.Slot = proposed.Slot
		}
		if err := tx.InsertItem(ctx, item); err != nil {
			return "", fmt.Errorf("failed to insert item %q: %w", item.Name, err)
		}

		var allocated float64
		for _, alloc := range proposed.Allocations {
			allocated += alloc.Quantity
		}
		if allocated > proposed.Quantity+domain.QuantityEpsilon {
			return "", &domain.AllocationOverflowError{ItemName: proposed.Name, Quantity: proposed.Quantity, Allocated: allocated}
		}

		for _, alloc := range proposed.Allocations {
			// Grants naming unknown characters or non-positive amounts
			// are caller bugs; skip them rather than fail the publish.
			if alloc.CharacterID == "" || alloc.Quantity <= 0 {
				continue
			}
			exists, err := tx.CharacterExists(ctx, alloc.CharacterID)
			if err != nil {
				return "", fmt.Errorf("failed to check character: %w", err)
			}
			if !exists {
				continue
			}
			row := &domain.Allocation{
				ID:          uuid.NewString(),
				ItemID:      item.ID,
				CharacterID: alloc.CharacterID,
				Quantity:    alloc.Quantity,
			}
			if err := tx.InsertAllocation(ctx, row); err != nil {
				return "", fmt.Errorf("failed to insert allocation: %w", err)
			}
		}
	}

	record := &domain.LootRecord{
		ID:           uuid.NewString(),
		Items:        event.Items,
		Currency:     event.Currency,
		Distribution: event.Distribution,
		Note:         event.Note,
		Memo:         event.Memo,
	}
	if err := tx.InsertLootRecord(ctx, record); err != nil {
		return "", fmt.Errorf("failed to insert loot record: %w", err)
	}

	entry := ledgerEntry(event, domain.TransactionIncome, "Loot: ")
	if err := tx.InsertTransaction(ctx, entry); err != nil {
		return "", fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	return record.ID, nil
}

// publishExpense depletes referenced warehouse items and records the
// expense. Lines without a warehouse reference only contribute to the
// ledger entry.
func (s *service) publishExpense(ctx context.Context, tx repository.LootTx, event *domain.PublishEvent) error {
	for _, proposed := range event.Items {
		if proposed.Quantity <= 0 || proposed.WarehouseID == "" {
			continue
		}

		item, err := tx.GetItem(ctx, proposed.WarehouseID)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return fmt.Errorf("failed to load item: %w", err)
		}

		remaining := item.Quantity - proposed.Quantity
		if remaining <= domain.QuantityEpsilon {
			if err := tx.DeleteItem(ctx, item.ID); err != nil {
				return fmt.Errorf("failed to delete depleted item: %w", err)
			}
			continue
		}

		if err := tx.UpdateItemQuantity(ctx, item.ID, remaining); err != nil {
			return fmt.Errorf("failed to update item quantity: %w", err)
		}
		if err := shrinkAllocations(ctx, tx, item.ID, remaining); err != nil {
			return err
		}
	}

	entry := ledgerEntry(event, domain.TransactionExpense, "Expense: ")
	if err := tx.InsertTransaction(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

// shrinkAllocations clips the item's allocations to the reduced quantity.
// Allocations arrive in creation order, so the earliest claims are
// retained first.
func shrinkAllocations(ctx context.Context, tx repository.LootTx, itemID string, quantity float64) error {
	allocs, err := tx.ListAllocations(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to list allocations: %w", err)
	}

	var total float64
	for _, a := range allocs {
		total += a.Quantity
	}
	if total <= quantity+domain.QuantityEpsilon {
		return nil
	}

	remaining := quantity
	for _, a := range allocs {
		keep := math.Min(a.Quantity, remaining)
		if keep <= 0 {
			if err := tx.DeleteAllocationByID(ctx, a.ID); err != nil {
				return fmt.Errorf("failed to delete allocation: %w", err)
			}
		} else if err := tx.UpdateAllocationQuantity(ctx, a.ID, keep); err != nil {
			return fmt.Errorf("failed to shrink allocation: %w", err)
		}
		remaining -= keep
	}
	return nil
}

// AutoAssign plans a distribution of the proposed items over all player
// characters, oldest roster entries first.
func (s *service) AutoAssign(ctx context.Context, req *AutoAssignRequest) ([]Assignment, error) {
	log := logger.FromContext(ctx)
	log.Info("AutoAssign called", "items", len(req.Items), "rule", req.Rule)

	if !distribute.ValidRule(req.Rule) {
		return nil, fmt.Errorf("%w: rule %q", domain.ErrUnknownRule, req.Rule)
	}

	players, err := s.repo.ListCharactersByRole(ctx, domain.RolePlayer)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	if len(players) == 0 {
		return nil, domain.ErrNoRecipients
	}

	var opts []distribute.Option
	if s.newSrc != nil {
		opts = append(opts, distribute.WithSource(s.newSrc()))
	}
	planner := distribute.NewPlanner(opts...)

	assignments := make([]Assignment, 0, len(req.Items))
	for _, item := range req.Items {
		quantity := int(math.Floor(math.Max(0, item.Quantity)))

		recipients := make([]distribute.Recipient, len(players))
		for i, player := range players {
			recipients[i] = distribute.Recipient{ID: player.ID, Weight: assignWeight(req, item, player.ID)}
		}

		shares, err := planner.Plan(quantity, recipients, req.Rule)
		if err != nil {
			return nil, err
		}

		allocs := make([]domain.ProposedAllocation, len(shares))
		for i, share := range shares {
			allocs[i] = domain.ProposedAllocation{CharacterID: share.RecipientID, Quantity: float64(share.Quantity)}
		}
		assignments = append(assignments, Assignment{ClientID: item.ClientID, Name: item.Name, Allocations: allocs})
	}

	return assignments, nil
}

// assignWeight picks the recipient weight for the weighted rules: the
// item's unit value for value weighting, the caller's map for custom
// weighting, both floored at 1.
func assignWeight(req *AutoAssignRequest, item domain.ProposedItem, characterID string) float64 {
	switch req.Rule {
	case distribute.RuleValueWeighted:
		return math.Max(1, item.UnitValue)
	case distribute.RuleCustomWeighted:
		if w, ok := req.Weights[characterID]; ok && w > 0 {
			return w
		}
		return 1
	}
	return 0
}

// Records returns all loot records, newest first.
func (s *service) Records(ctx context.Context) ([]domain.LootRecord, error) {
	return s.repo.ListRecords(ctx)
}

// UpdateMemo edits the one mutable field of a loot record.
func (s *service) UpdateMemo(ctx context.Context, recordID, memo string) error {
	if _, err := s.repo.GetRecord(ctx, recordID); err != nil {
		return err
	}
	return s.repo.UpdateRecordMemo(ctx, recordID, memo)
}

func validateEvent(event *domain.PublishEvent) error {
	if event.Mode != domain.PublishModeLoot && event.Mode != domain.PublishModeExpense {
		return fmt.Errorf("%w: mode %q", domain.ErrInvalidInput, event.Mode)
	}
	if len(event.Items) == 0 {
		return fmt.Errorf("%w: item list is empty", domain.ErrInvalidInput)
	}
	if event.Mode == domain.PublishModeLoot {
		for _, item := range event.Items {
			if item.Quantity <= 0 {
				continue
			}
			if strings.TrimSpace(item.Name) == "" {
				return fmt.Errorf("%w: item name is required", domain.ErrInvalidInput)
			}
			if !domain.ValidCategory(item.Category) {
				return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, item.Category)
			}
		}
	}
	return nil
}

// ledgerEntry builds the single ledger row a publish writes.
func ledgerEntry(event *domain.PublishEvent, txType domain.TransactionType, prefix string) *domain.Transaction {
	var itemValue, currency float64
	names := make([]string, 0, len(event.Items))
	for _, item := range event.Items {
		itemValue += item.Quantity * item.UnitValue
		name := strings.TrimSpace(item.Name)
		if name == "" {
			name = "unnamed"
		}
		names = append(names, name)
	}
	for _, gain := range event.Currency {
		currency += gain.Amount
	}

	return &domain.Transaction{
		ID:             uuid.NewString(),
		Type:           txType,
		Description:    prefix + strings.Join(names, ", "),
		CurrencyAmount: currency,
		ItemValue:      itemValue,
		TotalValue:     currency + itemValue,
		Note:           event.Note,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrItemNotFound)
}
