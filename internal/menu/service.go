package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/desrlabs/desr-backend/pkg/db"
	"github.com/desrlabs/desr-backend/pkg/db/models"
	pkgerrors "github.com/desrlabs/desr-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the menu catalog operations.
type Service interface {
	ListItems(ctx context.Context, includeUnavailable bool) ([]ItemView, error)
	GetItem(ctx context.Context, id string) (*ItemView, error)
	GetItemByKey(ctx context.Context, modelKey string) (*ItemView, error)
	ListByCategory(ctx context.Context, category string) ([]ItemView, error)
	CreateItem(ctx context.Context, input CreateItemInput) (*ItemView, error)
	UpdateItem(ctx context.Context, id string, input UpdateItemInput) (*ItemView, error)
	ToggleAvailability(ctx context.Context, id string) (*ItemView, error)
	DeleteItem(ctx context.Context, id string) error
	ExportForClient(ctx context.Context, language string) (*ClientExport, error)
}

type service struct {
	repo           Repository
	currencySymbol string
}

// NewService wires the menu catalog dependencies.
func NewService(repo Repository, currencySymbol string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	if currencySymbol == "" {
		currencySymbol = "¥"
	}
	return &service{repo: repo, currencySymbol: currencySymbol}, nil
}

func (s *service) ListItems(ctx context.Context, includeUnavailable bool) ([]ItemView, error) {
	items, err := s.repo.List(ctx, includeUnavailable)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list menu items")
	}
	return toViews(items), nil
}

func (s *service) GetItem(ctx context.Context, id string) (*ItemView, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find menu item")
	}
	view := toView(item)
	return &view, nil
}

func (s *service) GetItemByKey(ctx context.Context, modelKey string) (*ItemView, error) {
	item, err := s.repo.FindByModelKey(ctx, modelKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find menu item by key")
	}
	view := toView(item)
	return &view, nil
}

func (s *service) ListByCategory(ctx context.Context, category string) ([]ItemView, error) {
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	items, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list menu items by category")
	}
	return toViews(items), nil
}

func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*ItemView, error) {
	if input.ModelKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "modelKey is required")
	}
	if input.NameEN == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nameEn is required")
	}
	if input.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}

	item := &models.MenuItem{
		ID:            "menu_" + uuid.NewString(),
		ModelKey:      input.ModelKey,
		NameEN:        input.NameEN,
		NameJA:        input.NameJA,
		DescriptionEN: input.DescriptionEN,
		DescriptionJA: input.DescriptionJA,
		Price:         input.Price,
		ModelPath:     input.ModelPath,
		ModelConfig:   input.ModelConfig,
		Category:      input.Category,
		Available:     available,
		SortOrder:     input.SortOrder,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if db.IsUniqueViolation(err, "model_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "model key already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create menu item")
	}

	view := toView(item)
	return &view, nil
}

func (s *service) UpdateItem(ctx context.Context, id string, input UpdateItemInput) (*ItemView, error) {
	fields := map[string]any{}
	if input.NameEN != nil {
		fields["name_en"] = *input.NameEN
	}
	if input.NameJA != nil {
		fields["name_ja"] = *input.NameJA
	}
	if input.DescriptionEN != nil {
		fields["description_en"] = *input.DescriptionEN
	}
	if input.DescriptionJA != nil {
		fields["description_ja"] = *input.DescriptionJA
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		fields["price"] = *input.Price
	}
	if input.ModelPath != nil {
		fields["model_path"] = *input.ModelPath
	}
	if input.ModelConfig != nil {
		fields["model_config"] = *input.ModelConfig
	}
	if input.Category != nil {
		fields["category"] = *input.Category
	}
	if input.Available != nil {
		fields["available"] = *input.Available
	}
	if input.SortOrder != nil {
		fields["sort_order"] = *input.SortOrder
	}

	if len(fields) == 0 {
		return s.GetItem(ctx, id)
	}

	affected, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update menu item")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}
	return s.GetItem(ctx, id)
}

func (s *service) ToggleAvailability(ctx context.Context, id string) (*ItemView, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find menu item")
	}

	if _, err := s.repo.Update(ctx, id, map[string]any{"available": !item.Available}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggle menu item availability")
	}
	return s.GetItem(ctx, id)
}

func (s *service) DeleteItem(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete menu item")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}
	return nil
}

func toView(item *models.MenuItem) ItemView {
	return ItemView{
		ID:          item.ID,
		ModelKey:    item.ModelKey,
		Name:        LocalizedText{EN: item.NameEN, JA: item.NameJA},
		Description: LocalizedText{EN: deref(item.DescriptionEN), JA: item.DescriptionJA},
		Price:       item.Price,
		ModelPath:   item.ModelPath,
		ModelConfig: item.ModelConfig,
		Category:    item.Category,
		Available:   item.Available,
		SortOrder:   item.SortOrder,
	}
}

func toViews(items []models.MenuItem) []ItemView {
	views := make([]ItemView, 0, len(items))
	for i := range items {
		views = append(views, toView(&items[i]))
	}
	return views
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
