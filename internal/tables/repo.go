package tables

import (
	"context"
	"time"

	"github.com/desrlabs/desr-backend/pkg/db/models"
	"github.com/desrlabs/desr-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository is the storage surface for the table registry.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByNumber(ctx context.Context, number int) (*models.Table, error)
	ListAll(ctx context.Context) ([]models.Table, error)
	ListOccupied(ctx context.Context) ([]models.Table, error)
	UpsertSession(ctx context.Context, number int, sessionID string, now time.Time) error
	ClearSession(ctx context.Context, number int, now time.Time) (int64, error)
	UpdateStatus(ctx context.Context, number int, status enums.TableStatus, now time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a tables repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByNumber(ctx context.Context, number int) (*models.Table, error) {
	var table models.Table
	err := r.db.WithContext(ctx).Where("number = ?", number).First(&table).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	err := r.db.WithContext(ctx).Order("number ASC").Find(&tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *repository) ListOccupied(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	err := r.db.WithContext(ctx).
		Where("status = ?", enums.TableStatusOccupied).
		Order("number ASC").
		Find(&tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// UpsertSession creates the row lazily on first session start and
// overwrites any existing session id (last write wins, no lock held).
func (r *repository) UpsertSession(ctx context.Context, number int, sessionID string, now time.Time) error {
	var existing models.Table
	err := r.db.WithContext(ctx).Where("number = ?", number).First(&existing).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return r.db.WithContext(ctx).Create(&models.Table{
				Number:           number,
				CurrentSessionID: &sessionID,
				Status:           enums.TableStatusOccupied,
				UpdatedAt:        now,
			}).Error
		}
		return err
	}

	return r.db.WithContext(ctx).
		Model(&models.Table{}).
		Where("number = ?", number).
		Updates(map[string]any{
			"current_session_id": sessionID,
			"status":             enums.TableStatusOccupied,
			"updated_at":         now,
		}).Error
}

func (r *repository) ClearSession(ctx context.Context, number int, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Table{}).
		Where("number = ?", number).
		Updates(map[string]any{
			"current_session_id": nil,
			"status":             enums.TableStatusAvailable,
			"updated_at":         now,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) UpdateStatus(ctx context.Context, number int, status enums.TableStatus, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Table{}).
		Where("number = ?", number).
		Updates(map[string]any{"status": status, "updated_at": now})
	return result.RowsAffected, result.Error
}
