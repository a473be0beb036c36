package menu

import (
	"context"

	"github.com/desrlabs/desr-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository is the storage surface for the menu catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id string) (*models.MenuItem, error)
	FindByModelKey(ctx context.Context, modelKey string) (*models.MenuItem, error)
	List(ctx context.Context, includeUnavailable bool) ([]models.MenuItem, error)
	ListByCategory(ctx context.Context, category string) ([]models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, id string, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a menu repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindByModelKey(ctx context.Context, modelKey string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).Where("model_key = ?", modelKey).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) List(ctx context.Context, includeUnavailable bool) ([]models.MenuItem, error) {
	q := r.db.WithContext(ctx).Model(&models.MenuItem{})
	if !includeUnavailable {
		q = q.Where("available = ?", true)
	}

	var items []models.MenuItem
	err := q.Order("sort_order ASC, created_at ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListByCategory(ctx context.Context, category string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.WithContext(ctx).
		Where("category = ? AND available = ?", category, true).
		Order("sort_order ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Create(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MenuItem{})
	return result.RowsAffected, result.Error
}
