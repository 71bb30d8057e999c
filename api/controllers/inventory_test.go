package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rhinostock/inventario-backend/api/middleware"
	"github.com/rhinostock/inventario-backend/internal/identity"
	"github.com/rhinostock/inventario-backend/internal/inventory"
	pkgerrors "github.com/rhinostock/inventario-backend/pkg/errors"
	"github.com/rhinostock/inventario-backend/pkg/logger"
)

type testInventoryService struct {
	listFn   func(ctx context.Context, viewer identity.Identity) ([]inventory.ItemDTO, error)
	createFn func(ctx context.Context, viewer identity.Identity, input inventory.CreateInput) (*inventory.ItemDTO, error)
	updateFn func(ctx context.Context, viewer identity.Identity, id uuid.UUID, input inventory.UpdateInput) (*inventory.ItemDTO, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (s *testInventoryService) List(ctx context.Context, viewer identity.Identity) ([]inventory.ItemDTO, error) {
	if s.listFn != nil {
		return s.listFn(ctx, viewer)
	}
	return nil, nil
}

func (s *testInventoryService) Create(ctx context.Context, viewer identity.Identity, input inventory.CreateInput) (*inventory.ItemDTO, error) {
	if s.createFn != nil {
		return s.createFn(ctx, viewer, input)
	}
	return &inventory.ItemDTO{}, nil
}

func (s *testInventoryService) Update(ctx context.Context, viewer identity.Identity, id uuid.UUID, input inventory.UpdateInput) (*inventory.ItemDTO, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, viewer, id, input)
	}
	return &inventory.ItemDTO{}, nil
}

func (s *testInventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func withViewer(req *http.Request, email string) *http.Request {
	userID := uuid.New()
	return req.WithContext(middleware.WithIdentity(req.Context(), identity.Identity{
		Email:    email,
		UserID:   &userID,
		RoleName: "counter",
	}))
}

func TestInventoryListSuccess(t *testing.T) {
	units := int64(10)
	svc := &testInventoryService{
		listFn: func(ctx context.Context, viewer identity.Identity) ([]inventory.ItemDTO, error) {
			if viewer.Email != "alice@rhino.mx" {
				t.Fatalf("unexpected viewer %q", viewer.Email)
			}
			return []inventory.ItemDTO{{Etiquetado: "FW04491", Unidades: &units}}, nil
		},
	}

	req := withViewer(httptest.NewRequest(http.MethodGet, "/api/inventory", nil), "alice@rhino.mx")
	resp := httptest.NewRecorder()
	InventoryList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data []inventory.ItemDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Etiquetado != "FW04491" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestInventoryListGuestStillServed(t *testing.T) {
	svc := &testInventoryService{
		listFn: func(ctx context.Context, viewer identity.Identity) ([]inventory.ItemDTO, error) {
			if viewer.Email != "Unknown" {
				t.Fatalf("expected guest viewer, got %q", viewer.Email)
			}
			return []inventory.ItemDTO{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
	resp := httptest.NewRecorder()
	InventoryList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestInventoryCreateSuccess(t *testing.T) {
	svc := &testInventoryService{
		createFn: func(ctx context.Context, viewer identity.Identity, input inventory.CreateInput) (*inventory.ItemDTO, error) {
			if input.Etiquetado != "FW04491" || input.Ubicacion != "A-12" || input.Unidades != 10 {
				t.Fatalf("unexpected input %+v", input)
			}
			units := input.Unidades
			return &inventory.ItemDTO{
				ID:         uuid.New(),
				Etiquetado: input.Etiquetado,
				Ubicacion:  input.Ubicacion,
				Unidades:   &units,
				ContadoPor: viewer.Email,
			}, nil
		},
	}

	body := `{"etiquetado":"FW04491","ubicacion":"A-12","unidades":10}`
	req := withViewer(httptest.NewRequest(http.MethodPost, "/api/inventory", strings.NewReader(body)), "alice@rhino.mx")
	resp := httptest.NewRecorder()
	InventoryCreate(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data inventory.ItemDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.ContadoPor != "alice@rhino.mx" {
		t.Fatalf("expected creator stamped, got %+v", envelope.Data)
	}
}

func TestInventoryCreateMissingUnidades(t *testing.T) {
	created := false
	svc := &testInventoryService{
		createFn: func(ctx context.Context, viewer identity.Identity, input inventory.CreateInput) (*inventory.ItemDTO, error) {
			created = true
			return &inventory.ItemDTO{}, nil
		},
	}

	body := `{"etiquetado":"FW04491","ubicacion":"A-12"}`
	req := withViewer(httptest.NewRequest(http.MethodPost, "/api/inventory", strings.NewReader(body)), "alice@rhino.mx")
	resp := httptest.NewRecorder()
	InventoryCreate(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if created {
		t.Fatal("service must not be called for invalid payload")
	}
}

func TestInventoryUpdateRoutesPayload(t *testing.T) {
	itemID := uuid.New()
	svc := &testInventoryService{
		updateFn: func(ctx context.Context, viewer identity.Identity, id uuid.UUID, input inventory.UpdateInput) (*inventory.ItemDTO, error) {
			if id != itemID {
				t.Fatalf("unexpected id %s", id)
			}
			if input.Unidades2 == nil || *input.Unidades2 != 9 {
				t.Fatalf("expected unidades_2 routed, got %+v", input)
			}
			if input.Confirm == nil || !*input.Confirm {
				t.Fatalf("expected confirm true, got %+v", input.Confirm)
			}
			return &inventory.ItemDTO{ID: id}, nil
		},
	}

	body := `{"unidades_2":9,"confirmado_por":true}`
	req := withViewer(httptest.NewRequest(http.MethodPatch, "/api/inventory/"+itemID.String(), strings.NewReader(body)), "bob@rhino.mx")
	req = addRouteParam(req, "itemId", itemID.String())
	resp := httptest.NewRecorder()
	InventoryUpdate(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestInventoryUpdateNotFound(t *testing.T) {
	svc := &testInventoryService{
		updateFn: func(ctx context.Context, viewer identity.Identity, id uuid.UUID, input inventory.UpdateInput) (*inventory.ItemDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		},
	}

	itemID := uuid.NewString()
	req := withViewer(httptest.NewRequest(http.MethodPatch, "/api/inventory/"+itemID, strings.NewReader(`{"ubicacion":"B-01"}`)), "bob@rhino.mx")
	req = addRouteParam(req, "itemId", itemID)
	resp := httptest.NewRecorder()
	InventoryUpdate(svc, testLogger())(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestInventoryUpdateInvalidID(t *testing.T) {
	req := withViewer(httptest.NewRequest(http.MethodPatch, "/api/inventory/nope", strings.NewReader(`{}`)), "bob@rhino.mx")
	req = addRouteParam(req, "itemId", "nope")
	resp := httptest.NewRecorder()
	InventoryUpdate(&testInventoryService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestInventoryDeleteSuccess(t *testing.T) {
	itemID := uuid.New()
	called := false
	svc := &testInventoryService{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			called = true
			if id != itemID {
				t.Fatalf("unexpected id %s", id)
			}
			return nil
		},
	}

	req := withViewer(httptest.NewRequest(http.MethodDelete, "/api/inventory/"+itemID.String(), nil), "alice@rhino.mx")
	req = addRouteParam(req, "itemId", itemID.String())
	resp := httptest.NewRecorder()
	InventoryDelete(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !called {
		t.Fatal("expected service called")
	}
	var envelope struct {
		Data map[string]bool `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !envelope.Data["success"] {
		t.Fatal("response missing success flag")
	}
}

func TestTruthyJSON(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "true", raw: `true`, want: true},
		{name: "false", raw: `false`, want: false},
		{name: "null", raw: `null`, want: false},
		{name: "empty string", raw: `""`, want: false},
		{name: "email string", raw: `"carol@rhino.mx"`, want: true},
		{name: "zero", raw: `0`, want: false},
		{name: "one", raw: `1`, want: true},
		{name: "object", raw: `{"x":1}`, want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truthyJSON(json.RawMessage(tc.raw)); got != tc.want {
				t.Fatalf("truthyJSON(%s) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}
