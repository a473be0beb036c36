package menu

import (
	"context"
	"errors"
	"testing"

	"github.com/desrlabs/desr-backend/pkg/db/models"
	dbtypes "github.com/desrlabs/desr-backend/pkg/db/types"
	pkgerrors "github.com/desrlabs/desr-backend/pkg/errors"
	"gorm.io/gorm"
)

type fakeMenuRepo struct {
	listFn       func(ctx context.Context, includeUnavailable bool) ([]models.MenuItem, error)
	findFn       func(ctx context.Context, id string) (*models.MenuItem, error)
	findByKeyFn  func(ctx context.Context, modelKey string) (*models.MenuItem, error)
	createFn     func(ctx context.Context, item *models.MenuItem) error
	updateFn     func(ctx context.Context, id string, fields map[string]any) (int64, error)
	deleteFn     func(ctx context.Context, id string) (int64, error)
	byCategoryFn func(ctx context.Context, category string) ([]models.MenuItem, error)
}

func (f *fakeMenuRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeMenuRepo) FindByID(ctx context.Context, id string) (*models.MenuItem, error) {
	if f.findFn != nil {
		return f.findFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMenuRepo) FindByModelKey(ctx context.Context, modelKey string) (*models.MenuItem, error) {
	if f.findByKeyFn != nil {
		return f.findByKeyFn(ctx, modelKey)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMenuRepo) List(ctx context.Context, includeUnavailable bool) ([]models.MenuItem, error) {
	if f.listFn != nil {
		return f.listFn(ctx, includeUnavailable)
	}
	return nil, nil
}

func (f *fakeMenuRepo) ListByCategory(ctx context.Context, category string) ([]models.MenuItem, error) {
	if f.byCategoryFn != nil {
		return f.byCategoryFn(ctx, category)
	}
	return nil, nil
}

func (f *fakeMenuRepo) Create(ctx context.Context, item *models.MenuItem) error {
	if f.createFn != nil {
		return f.createFn(ctx, item)
	}
	return nil
}

func (f *fakeMenuRepo) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, fields)
	}
	return 0, nil
}

func (f *fakeMenuRepo) Delete(ctx context.Context, id string) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return 0, nil
}

func newMenuService(repo Repository) Service {
	svc, _ := NewService(repo, "¥")
	return svc
}

func TestServiceCreateItemConflictOnDuplicateKey(t *testing.T) {
	repo := &fakeMenuRepo{
		createFn: func(ctx context.Context, item *models.MenuItem) error {
			return errors.New("UNIQUE constraint failed: menu_items.model_key")
		},
	}
	svc := newMenuService(repo)

	_, err := svc.CreateItem(context.Background(), CreateItemInput{ModelKey: "meal", NameEN: "Miso Ramen", Price: 1000})
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestServiceCreateItemValidation(t *testing.T) {
	svc := newMenuService(&fakeMenuRepo{})

	cases := []CreateItemInput{
		{NameEN: "Miso Ramen", Price: 1000},
		{ModelKey: "meal", Price: 1000},
		{ModelKey: "meal", NameEN: "Miso Ramen", Price: -1},
	}
	for _, input := range cases {
		if _, err := svc.CreateItem(context.Background(), input); err == nil {
			t.Fatalf("expected validation error for %+v", input)
		} else if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation code, got %v", err)
		}
	}
}

func TestServiceCreateItemDefaultsAvailable(t *testing.T) {
	var stored *models.MenuItem
	repo := &fakeMenuRepo{
		createFn: func(ctx context.Context, item *models.MenuItem) error {
			stored = item
			return nil
		},
	}
	svc := newMenuService(repo)

	view, err := svc.CreateItem(context.Background(), CreateItemInput{ModelKey: "meal", NameEN: "Miso Ramen", Price: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil || !stored.Available {
		t.Fatal("new items default to available")
	}
	if view.ID == "" || view.ID == stored.ModelKey {
		t.Fatalf("expected generated id, got %q", view.ID)
	}
}

func TestServiceUpdateItemPartial(t *testing.T) {
	var gotFields map[string]any
	repo := &fakeMenuRepo{
		updateFn: func(ctx context.Context, id string, fields map[string]any) (int64, error) {
			gotFields = fields
			return 1, nil
		},
		findFn: func(ctx context.Context, id string) (*models.MenuItem, error) {
			return &models.MenuItem{ID: id, ModelKey: "meal", NameEN: "Miso Ramen", Price: 1500, Available: true}, nil
		},
	}
	svc := newMenuService(repo)

	price := 1500.0
	view, err := svc.UpdateItem(context.Background(), "menu_1", UpdateItemInput{Price: &price})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotFields) != 1 {
		t.Fatalf("expected only the price column to change, got %v", gotFields)
	}
	if gotFields["price"] != 1500.0 {
		t.Fatalf("unexpected price field %v", gotFields["price"])
	}
	if view.Price != 1500 {
		t.Fatalf("expected reloaded view, got %+v", view)
	}
}

func TestServiceUpdateItemNoFieldsReturnsCurrent(t *testing.T) {
	updateCalled := false
	repo := &fakeMenuRepo{
		updateFn: func(ctx context.Context, id string, fields map[string]any) (int64, error) {
			updateCalled = true
			return 1, nil
		},
		findFn: func(ctx context.Context, id string) (*models.MenuItem, error) {
			return &models.MenuItem{ID: id, ModelKey: "meal", NameEN: "Miso Ramen", Price: 1000}, nil
		},
	}
	svc := newMenuService(repo)

	view, err := svc.UpdateItem(context.Background(), "menu_1", UpdateItemInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updateCalled {
		t.Fatal("empty update must not touch storage")
	}
	if view.ID != "menu_1" {
		t.Fatalf("expected current row, got %+v", view)
	}
}

func TestServiceToggleAvailability(t *testing.T) {
	available := true
	repo := &fakeMenuRepo{
		findFn: func(ctx context.Context, id string) (*models.MenuItem, error) {
			return &models.MenuItem{ID: id, ModelKey: "meal", NameEN: "Miso Ramen", Available: available}, nil
		},
		updateFn: func(ctx context.Context, id string, fields map[string]any) (int64, error) {
			next, ok := fields["available"].(bool)
			if !ok {
				t.Fatalf("expected available field, got %v", fields)
			}
			available = next
			return 1, nil
		},
	}
	svc := newMenuService(repo)

	view, err := svc.ToggleAvailability(context.Background(), "menu_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Available {
		t.Fatal("expected item to flip to unavailable")
	}
}

func TestServiceDeleteItemNotFound(t *testing.T) {
	svc := newMenuService(&fakeMenuRepo{})

	err := svc.DeleteItem(context.Background(), "menu_missing")
	if err == nil {
		t.Fatal("expected not found error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceGetItemNotFound(t *testing.T) {
	svc := newMenuService(&fakeMenuRepo{})

	_, err := svc.GetItem(context.Background(), "menu_missing")
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = svc.GetItemByKey(context.Background(), "meal99")
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceExportForClient(t *testing.T) {
	ja := "味噌ラーメン"
	descEN := "Rich miso broth"
	customPos := &dbtypes.Vec3{X: 1, Y: 2, Z: 3}
	path := "meal_draco.glb"
	repo := &fakeMenuRepo{
		listFn: func(ctx context.Context, includeUnavailable bool) ([]models.MenuItem, error) {
			if includeUnavailable {
				t.Fatal("export must only ship available items")
			}
			return []models.MenuItem{
				{
					ID: "menu_1", ModelKey: "meal", NameEN: "Miso Ramen", NameJA: &ja,
					DescriptionEN: &descEN, Price: 1000, ModelPath: &path,
					ModelConfig: &dbtypes.ModelConfig{Position: customPos},
					Available:   true,
				},
				{
					ID: "menu_2", ModelKey: "meal2", NameEN: "Shoyu Ramen", Price: 1200, Available: true,
				},
			}, nil
		},
	}
	svc := newMenuService(repo)

	export, err := svc.ExportForClient(context.Background(), "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meal, ok := export.Models["meal"]
	if !ok {
		t.Fatal("expected meal entry")
	}
	if meal.Position != *customPos {
		t.Fatalf("custom position must win, got %+v", meal.Position)
	}
	if meal.Rotation != defaultRotation || meal.Scale != defaultScale {
		t.Fatalf("missing transforms fall back to defaults, got %+v", meal)
	}
	if !meal.AutoRotate || meal.RotationSpeed != 0.003 {
		t.Fatalf("unexpected rotation defaults %+v", meal)
	}
	if meal.Price != "¥1,000" {
		t.Fatalf("expected formatted price, got %q", meal.Price)
	}
	if meal.NameKey != "mealName" || meal.DescriptionKey != "mealDescription" {
		t.Fatalf("unexpected translation keys %+v", meal)
	}

	if export.Translations["en"]["mealName"] != "Miso Ramen" {
		t.Fatalf("unexpected en translations %v", export.Translations["en"])
	}
	if export.Translations["ja"]["mealName"] != ja {
		t.Fatalf("unexpected ja translation %v", export.Translations["ja"])
	}
	if export.Translations["ja"]["meal2Name"] != "Shoyu Ramen" {
		t.Fatal("missing ja text falls back to en")
	}

	meal2 := export.Models["meal2"]
	if meal2.Position != defaultPosition {
		t.Fatalf("nil config uses default position, got %+v", meal2.Position)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		price float64
		want  string
	}{
		{0, "¥0"},
		{950, "¥950"},
		{1000, "¥1,000"},
		{1234567, "¥1,234,567"},
		{1000.5, "¥1,000.50"},
	}
	for _, tc := range cases {
		if got := formatPrice("¥", tc.price); got != tc.want {
			t.Fatalf("formatPrice(%v) = %q, want %q", tc.price, got, tc.want)
		}
	}
}
