package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desrlabs/desr-backend/internal/menu"
	"github.com/desrlabs/desr-backend/internal/notify"
	"github.com/desrlabs/desr-backend/internal/orders"
	"github.com/desrlabs/desr-backend/internal/tables"
	"github.com/desrlabs/desr-backend/pkg/config"
	"github.com/desrlabs/desr-backend/pkg/db/models"
	"github.com/desrlabs/desr-backend/pkg/enums"
	pkgerrors "github.com/desrlabs/desr-backend/pkg/errors"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubOrdersService struct{}

func (stubOrdersService) Create(ctx context.Context, input orders.CreateOrderInput) (*models.Order, error) {
	return &models.Order{ID: "order_1", TableNumber: input.TableNumber, Status: enums.OrderStatusPending}, nil
}

func (stubOrdersService) Get(ctx context.Context, id string) (*models.Order, error) {
	if id == "order_1" {
		return &models.Order{ID: id, TableNumber: 5, Status: enums.OrderStatusPending}, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (stubOrdersService) List(ctx context.Context, filters orders.ListFilters) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (stubOrdersService) ListActive(ctx context.Context) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (stubOrdersService) UpdateStatus(ctx context.Context, id, rawStatus string) (*models.Order, error) {
	return &models.Order{ID: id, Status: enums.OrderStatus(rawStatus)}, nil
}

func (stubOrdersService) Cancel(ctx context.Context, id string) (bool, error) {
	return id == "order_1", nil
}

func (stubOrdersService) Delete(ctx context.Context, id string) (bool, error) { return false, nil }

func (stubOrdersService) Statistics(ctx context.Context) (*orders.Statistics, error) {
	return &orders.Statistics{TotalOrders: 2, TotalRevenue: 2200}, nil
}

type stubMenuService struct{}

func (stubMenuService) ListItems(ctx context.Context, includeUnavailable bool) ([]menu.ItemView, error) {
	return []menu.ItemView{}, nil
}

func (stubMenuService) GetItem(ctx context.Context, id string) (*menu.ItemView, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
}

func (stubMenuService) GetItemByKey(ctx context.Context, modelKey string) (*menu.ItemView, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
}

func (stubMenuService) ListByCategory(ctx context.Context, category string) ([]menu.ItemView, error) {
	return []menu.ItemView{}, nil
}

func (stubMenuService) CreateItem(ctx context.Context, input menu.CreateItemInput) (*menu.ItemView, error) {
	return &menu.ItemView{ID: "menu_1", ModelKey: input.ModelKey}, nil
}

func (stubMenuService) UpdateItem(ctx context.Context, id string, input menu.UpdateItemInput) (*menu.ItemView, error) {
	return &menu.ItemView{ID: id}, nil
}

func (stubMenuService) ToggleAvailability(ctx context.Context, id string) (*menu.ItemView, error) {
	return &menu.ItemView{ID: id}, nil
}

func (stubMenuService) DeleteItem(ctx context.Context, id string) error { return nil }

func (stubMenuService) ExportForClient(ctx context.Context, language string) (*menu.ClientExport, error) {
	return &menu.ClientExport{
		Models:       map[string]menu.ModelExport{},
		Translations: map[string]map[string]string{"en": {}, "ja": {}},
	}, nil
}

type stubTablesService struct{}

func (stubTablesService) Get(ctx context.Context, number int) (*models.Table, error) {
	return &models.Table{Number: number}, nil
}

func (stubTablesService) ListAll(ctx context.Context) ([]models.Table, error) {
	return []models.Table{}, nil
}

func (stubTablesService) ListOccupied(ctx context.Context) ([]models.Table, error) {
	return []models.Table{}, nil
}

func (stubTablesService) StartSession(ctx context.Context, number int) (*tables.SessionStart, error) {
	return &tables.SessionStart{TableNumber: number, SessionID: "session_abc", Status: enums.TableStatusOccupied}, nil
}

func (stubTablesService) EndSession(ctx context.Context, number int) (bool, error) {
	return number == 5, nil
}

func (stubTablesService) ValidateSession(ctx context.Context, number int, sessionID string) (bool, error) {
	return sessionID == "session_abc", nil
}

func (stubTablesService) Status(ctx context.Context, number int) (*tables.TableStatus, error) {
	return &tables.TableStatus{Number: number, Status: enums.TableStatusAvailable}, nil
}

func (stubTablesService) UpdateStatus(ctx context.Context, number int, status enums.TableStatus) (*models.Table, error) {
	return &models.Table{Number: number, Status: status}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(Deps{
		Config:  &config.Config{Menu: config.MenuConfig{DefaultLanguage: "en", CurrencySymbol: "¥"}},
		DB:      stubPinger{},
		Hub:     notify.NewHub(config.HubConfig{SendBuffer: 8, WriteTimeout: time.Second, PongTimeout: time.Minute}, nil, nil),
		Orders:  stubOrdersService{},
		Menu:    stubMenuService{},
		Tables:  stubTablesService{},
		Started: time.Now(),
	})
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRouterCreateOrder(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), http.MethodPost, "/api/orders",
		`{"tableNumber":5,"items":[{"name":"Miso Ramen","price":1000,"quantity":2}]}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var order models.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if order.ID != "order_1" || order.TableNumber != 5 {
		t.Fatalf("unexpected order %+v", order)
	}
}

func TestRouterCreateOrderRejectsBadBody(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), http.MethodPost, "/api/orders", `{"tableNumber":5}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if envelope.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}
}

func TestRouterOrderNotFound(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), http.MethodGet, "/api/orders/order_missing", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "NOT_FOUND") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestRouterHealth(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), http.MethodGet, "/api/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if payload["status"] != "ok" || payload["database"] != "ok" {
		t.Fatalf("unexpected health payload %v", payload)
	}
}

func TestRouterMenuSDK(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), http.MethodGet, "/api/menu/sdk?language=ja", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload struct {
		Models       map[string]any            `json:"models"`
		Translations map[string]map[string]any `json:"translations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if payload.Models == nil || payload.Translations == nil {
		t.Fatalf("expected models and translations, got %s", rec.Body.String())
	}
}

func TestRouterValidateSession(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/tables/5/validate", `{"sessionId":"session_abc"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"valid":true`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodPost, "/api/tables/5/validate", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing sessionId must 400, got %d", rec.Code)
	}
}

func TestRouterStartSessionBounds(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/tables/5/session", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodPost, "/api/tables/999/session", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range table must 400, got %d", rec.Code)
	}
}

func TestRouterCancelOrder(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodDelete, "/api/orders/order_1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodDelete, "/api/orders/order_missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
