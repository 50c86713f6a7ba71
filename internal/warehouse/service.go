// Package warehouse manages the shared item inventory: CRUD on items and
// read views that join each item with its allocation breakdown.
package warehouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/logger"
	"github.com/kalrend/warchest/internal/repository"
)

// CreateItemRequest carries the caller-supplied attributes of a new item.
type CreateItemRequest struct {
	Name               string          `json:"name"`
	Category           domain.Category `json:"category"`
	Slot               *string         `json:"slot,omitempty"`
	Quantity           float64         `json:"quantity"`
	UnitValue          float64         `json:"unit_value"`
	Weight             float64         `json:"weight"`
	Description        string          `json:"description"`
	DisplayDescription string          `json:"display_description"`
}

// UpdateItemRequest carries a full replacement of an item's attributes.
// Allocations are untouched unless the new quantity no longer covers them.
type UpdateItemRequest = CreateItemRequest

// Service defines the interface for warehouse item management.
type Service interface {
	ListItems(ctx context.Context) ([]domain.ItemView, error)
	GetItem(ctx context.Context, itemID string) (*domain.ItemView, error)
	CreateItem(ctx context.Context, req CreateItemRequest) (*domain.ItemView, error)
	UpdateItem(ctx context.Context, itemID string, req UpdateItemRequest) (*domain.ItemView, error)
	DeleteItem(ctx context.Context, itemID string) error
}

type service struct {
	repo repository.Warehouse
}

// NewService creates a new warehouse service
func NewService(repo repository.Warehouse) Service {
	return &service{repo: repo}
}

func (s *service) ListItems(ctx context.Context) ([]domain.ItemView, error) {
	return s.repo.ListItemViews(ctx)
}

func (s *service) GetItem(ctx context.Context, itemID string) (*domain.ItemView, error) {
	return s.repo.GetItemView(ctx, itemID)
}

// CreateItem inserts a new item and returns its view.
func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*domain.ItemView, error) {
	log := logger.FromContext(ctx)

	if err := validateItemRequest(req); err != nil {
		return nil, err
	}

	item := &domain.Item{
		ID:                 uuid.NewString(),
		Name:               strings.TrimSpace(req.Name),
		Category:           req.Category,
		Slot:               slotFor(req.Category, req.Slot),
		Quantity:           req.Quantity,
		UnitValue:          req.UnitValue,
		Weight:             req.Weight,
		Description:        req.Description,
		DisplayDescription: req.DisplayDescription,
	}

	if err := s.repo.InsertItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}

	log.Info("Item created", "item_id", item.ID, "name", item.Name, "category", item.Category)
	return s.repo.GetItemView(ctx, item.ID)
}

// UpdateItem replaces the item's attributes. The stored timestamps are
// preserved by the repository; only the mutable columns change.
func (s *service) UpdateItem(ctx context.Context, itemID string, req UpdateItemRequest) (*domain.ItemView, error) {
	log := logger.FromContext(ctx)

	if err := validateItemRequest(req); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	item.Name = strings.TrimSpace(req.Name)
	item.Category = req.Category
	item.Slot = slotFor(req.Category, req.Slot)
	item.Quantity = req.Quantity
	item.UnitValue = req.UnitValue
	item.Weight = req.Weight
	item.Description = req.Description
	item.DisplayDescription = req.DisplayDescription

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	log.Info("Item updated", "item_id", itemID, "name", item.Name)
	return s.repo.GetItemView(ctx, itemID)
}

// DeleteItem removes the item; allocation rows cascade.
func (s *service) DeleteItem(ctx context.Context, itemID string) error {
	log := logger.FromContext(ctx)

	if _, err := s.repo.GetItem(ctx, itemID); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	log.Info("Item deleted", "item_id", itemID)
	return nil
}

func validateItemRequest(req CreateItemRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !domain.ValidCategory(req.Category) {
		return fmt.Errorf("%w: category %q", domain.ErrInvalidInput, req.Category)
	}
	if req.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

// slotFor keeps the slot only for equipment; every other category stores
// no slot regardless of what the caller sent.
func slotFor(category domain.Category, slot *string) *string {
	if category != domain.CategoryEquipment {
		return nil
	}
	if slot == nil || strings.TrimSpace(*slot) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*slot)
	return &trimmed
}
