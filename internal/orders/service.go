package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desrlabs/desr-backend/pkg/db/models"
	"github.com/desrlabs/desr-backend/pkg/enums"
	pkgerrors "github.com/desrlabs/desr-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier receives order lifecycle events for fan-out. Delivery is
// best-effort; the ledger never waits on it.
type Notifier interface {
	NotifyNewOrder(ctx context.Context, order *models.Order)
	NotifyStatusChange(ctx context.Context, order *models.Order)
	NotifyOrderReady(ctx context.Context, order *models.Order)
}

// Service defines the order ledger operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filters ListFilters) ([]models.Order, error)
	ListActive(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, rawStatus string) (*models.Order, error)
	Cancel(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Statistics(ctx context.Context) (*Statistics, error)
}

type service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

// NewService wires the order ledger dependencies.
func NewService(repo Repository, notifier Notifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("order notifier required")
	}
	return &service{repo: repo, notifier: notifier, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.TableNumber <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tableNumber is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "items array is required and must not be empty")
	}

	items, total := snapshotItems(input.Items)

	order := &models.Order{
		ID:          "order_" + uuid.NewString(),
		TableNumber: input.TableNumber,
		SessionID:   input.SessionID,
		Items:       items,
		Status:      enums.OrderStatusPending,
		TotalAmount: total,
		Notes:       input.Notes,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	s.notifier.NotifyNewOrder(ctx, order)
	return order, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]models.Order, error) {
	orders, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

func (s *service) ListActive(ctx context.Context) ([]models.Order, error) {
	orders, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active orders")
	}
	return orders, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, rawStatus string) (*models.Order, error) {
	status, err := enums.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
	}

	affected, err := s.repo.UpdateStatus(ctx, id, status, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyStatusChange(ctx, order)
	if status == enums.OrderStatusReady {
		s.notifier.NotifyOrderReady(ctx, order)
	}
	return order, nil
}

func (s *service) Cancel(ctx context.Context, id string) (bool, error) {
	_, err := s.UpdateStatus(ctx, id, enums.OrderStatusCancelled.String())
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	return affected > 0, nil
}

func (s *service) Statistics(ctx context.Context) (*Statistics, error) {
	from, to := dayBounds(s.now())
	stats, err := s.repo.DailyStats(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order statistics")
	}
	return stats, nil
}

// dayBounds returns the local-midnight window for the day containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	from := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 0, 1)
}
