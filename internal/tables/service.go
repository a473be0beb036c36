package tables

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

// ActiveOrderCounter exposes the live order count the status view needs.
type ActiveOrderCounter interface {
	CountActiveByTable(ctx context.Context, tableNumber int) (int64, error)
}

// SessionStart is the result of opening a table session.
type SessionStart struct {
	TableNumber int               `json:"tableNumber"`
	SessionID   string            `json:"sessionId"`
	Status      enums.TableStatus `json:"status"`
	StartedAt   time.Time         `json:"startedAt"`
}

// TableStatus is the live status view for one table.
type TableStatus struct {
	Number           int               `json:"number"`
	Status           enums.TableStatus `json:"status"`
	HasActiveSession bool              `json:"hasActiveSession"`
	SessionID        *string           `json:"sessionId"`
	ActiveOrderCount int64             `json:"activeOrderCount"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// Service defines the table registry operations.
type Service interface {
	Get(ctx context.Context, number int) (*models.Table, error)
	ListAll(ctx context.Context) ([]models.Table, error)
	ListOccupied(ctx context.Context) ([]models.Table, error)
	StartSession(ctx context.Context, number int) (*SessionStart, error)
	EndSession(ctx context.Context, number int) (bool, error)
	ValidateSession(ctx context.Context, number int, sessionID string) (bool, error)
	Status(ctx context.Context, number int) (*TableStatus, error)
	UpdateStatus(ctx context.Context, number int, status enums.TableStatus) (*models.Table, error)
}

type service struct {
	repo   Repository
	orders ActiveOrderCounter
	now    func() time.Time
}

// NewService wires the table registry dependencies.
func NewService(repo Repository, orders ActiveOrderCounter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tables repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("active order counter required")
	}
	return &service{repo: repo, orders: orders, now: time.Now}, nil
}

func (s *service) Get(ctx context.Context, number int) (*models.Table, error) {
	table, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "table not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find table")
	}
	return table, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.Table, error) {
	tables, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tables")
	}
	return tables, nil
}

func (s *service) ListOccupied(ctx context.Context) ([]models.Table, error) {
	tables, err := s.repo.ListOccupied(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list occupied tables")
	}
	return tables, nil
}

func (s *service) StartSession(ctx context.Context, number int) (*SessionStart, error) {
	if number <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "table number must be positive")
	}

	sessionID := "session_" + uuid.NewString()
	now := s.now()
	if err := s.repo.UpsertSession(ctx, number, sessionID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "start table session")
	}

	return &SessionStart{
		TableNumber: number,
		SessionID:   sessionID,
		Status:      enums.TableStatusOccupied,
		StartedAt:   now,
	}, nil
}

func (s *service) EndSession(ctx context.Context, number int) (bool, error) {
	affected, err := s.repo.ClearSession(ctx, number, s.now())
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "end table session")
	}
	return affected > 0, nil
}

func (s *service) ValidateSession(ctx context.Context, number int, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	table, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session")
	}
	return table.CurrentSessionID != nil && *table.CurrentSessionID == sessionID, nil
}

func (s *service) Status(ctx context.Context, number int) (*TableStatus, error) {
	table, err := s.Get(ctx, number)
	if err != nil {
		return nil, err
	}

	count, err := s.orders.CountActiveByTable(ctx, number)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active orders")
	}

	return &TableStatus{
		Number:           table.Number,
		Status:           table.Status,
		HasActiveSession: table.CurrentSessionID != nil,
		SessionID:        table.CurrentSessionID,
		ActiveOrderCount: count,
		UpdatedAt:        table.UpdatedAt,
	}, nil
}

func (s *service) UpdateStatus(ctx context.Context, number int, status enums.TableStatus) (*models.Table, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid table status")
	}
	affected, err := s.repo.UpdateStatus(ctx, number, status, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update table status")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "table not found")
	}
	return s.Get(ctx, number)
}
