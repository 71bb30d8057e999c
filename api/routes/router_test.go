package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhinostock/inventario-backend/internal/identity"
	"github.com/rhinostock/inventario-backend/internal/inventory"
	"github.com/rhinostock/inventario-backend/pkg/config"
	"github.com/rhinostock/inventario-backend/pkg/logger"
	"github.com/rhinostock/inventario-backend/pkg/metrics"
	"github.com/rhinostock/inventario-backend/pkg/search"
	"github.com/rhinostock/inventario-backend/web"
)

type noopIdentityService struct{}

func (noopIdentityService) Resolve(ctx context.Context, userID uuid.UUID, email string) (identity.Identity, error) {
	return identity.Identity{Email: email, UserID: &userID, RoleName: "viewer"}, nil
}

type noopInventoryService struct{}

func (noopInventoryService) List(ctx context.Context, viewer identity.Identity) ([]inventory.ItemDTO, error) {
	return []inventory.ItemDTO{}, nil
}

func (noopInventoryService) Create(ctx context.Context, viewer identity.Identity, input inventory.CreateInput) (*inventory.ItemDTO, error) {
	return &inventory.ItemDTO{}, nil
}

func (noopInventoryService) Update(ctx context.Context, viewer identity.Identity, id uuid.UUID, input inventory.UpdateInput) (*inventory.ItemDTO, error) {
	return &inventory.ItemDTO{}, nil
}

func (noopInventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{Secret: "s", Issuer: "i", ExpirationMinutes: 5},
		Search: config.SearchConfig{
			DefaultLimit: 50,
			MaxLimit:     100,
		},
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	webHandler, err := web.NewHandler(noopInventoryService{}, logg)
	if err != nil {
		t.Fatalf("web handler: %v", err)
	}

	reg := prometheus.NewRegistry()
	return NewRouter(Deps{
		Config:         cfg,
		Logger:         logg,
		IdentitySvc:    noopIdentityService{},
		InventorySvc:   noopInventoryService{},
		SearchClient:   search.NewClient(),
		WebHandler:     webHandler,
		HTTPMetrics:    metrics.NewHTTPMetrics(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
}

func TestRouterHealthLive(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if resp.Header().Get("X-RhinoStock-Env") != "test" {
		t.Fatal("expected env header set")
	}
}

func TestRouterInventoryListServesGuests(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRouterSearchRequiresSession(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/inventory/search?q=FW", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRouterServesPagesAndStatic(t *testing.T) {
	router := testRouter(t)

	for _, path := range []string{"/", "/lista-inventario", "/static/styles.css"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: unexpected status %d", path, resp.Code)
		}
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := testRouter(t)

	// generate one observed request first
	warm := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
	router.ServeHTTP(httptest.NewRecorder(), warm)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}
