package orders

import (
	"context"
	"time"

	"github.com/desrlabs/desr-backend/pkg/db/models"
	"github.com/desrlabs/desr-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository is the storage surface for the order ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filters ListFilters) ([]models.Order, error)
	ListActive(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status enums.OrderStatus, now time.Time) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	CountActiveByTable(ctx context.Context, tableNumber int) (int64, error)
	DailyStats(ctx context.Context, from, to time.Time) (*Statistics, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})

	if filters.TableNumber != nil {
		query = query.Where("table_number = ?", *filters.TableNumber)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.SessionID != nil {
		query = query.Where("session_id = ?", *filters.SessionID)
	}

	query = query.Order("created_at DESC")

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) ListActive(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("status IN ?", enums.ActiveOrderStatuses).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status enums.OrderStatus, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": now})
	return result.RowsAffected, result.Error
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{})
	return result.RowsAffected, result.Error
}

func (r *repository) CountActiveByTable(ctx context.Context, tableNumber int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("table_number = ? AND status IN ?", tableNumber, enums.ActiveOrderStatuses).
		Count(&count).Error
	return count, err
}

func (r *repository) DailyStats(ctx context.Context, from, to time.Time) (*Statistics, error) {
	var stats Statistics
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select(`COUNT(*) AS total_orders,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending_orders,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS preparing_orders,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed_orders,
			COALESCE(SUM(total_amount), 0) AS total_revenue`,
			enums.OrderStatusPending, enums.OrderStatusPreparing, enums.OrderStatusCompleted).
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
