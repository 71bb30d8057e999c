// Package web serves the server-rendered inventory pages and the static
// assets for the typeahead widget and edit modal. The pages reuse the same
// visibility filtering as the JSON API: counts a viewer may not see are
// nulled before the template runs.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/rhinostock/inventario-backend/api/middleware"
	"github.com/rhinostock/inventario-backend/internal/identity"
	"github.com/rhinostock/inventario-backend/internal/inventory"
	"github.com/rhinostock/inventario-backend/pkg/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var roleDisplayNames = map[string]string{
	"viewer":            "Visitante",
	"counter":           "Contador",
	"quality_assurance": "Calidad",
	"admin":             "Administrador",
	"super_admin":       "Super Administrador",
}

// Handler renders the create-form and list pages.
type Handler struct {
	tmpl      *template.Template
	inventory inventory.Service
	logg      *logger.Logger
}

// NewHandler parses the embedded templates and wires the page handlers.
func NewHandler(inventorySvc inventory.Service, logg *logger.Logger) (*Handler, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"displayRole": displayRole,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Handler{
		tmpl:      tmpl,
		inventory: inventorySvc,
		logg:      logg,
	}, nil
}

// StaticHandler serves the embedded JS and CSS under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// embed guarantees the directory exists; a failure here is a build defect
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

type pageData struct {
	Viewer identity.Identity
	Role   string
	Items  []inventory.ItemDTO
	Count  int
}

// CreateForm renders the registration page with the typeahead widget.
func (h *Handler) CreateForm(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.IdentityFromContext(r.Context())
	h.render(w, r, "create.html", pageData{
		Viewer: viewer,
		Role:   displayRole(viewer.RoleName),
	})
}

// ListPage renders the inventory table, filtered for the viewer.
func (h *Handler) ListPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer := middleware.IdentityFromContext(ctx)

	items, err := h.inventory.List(ctx, viewer)
	if err != nil {
		if h.logg != nil {
			h.logg.Error(ctx, "web.list_page", err)
		}
		http.Error(w, "No se pudo cargar el inventario", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "list.html", pageData{
		Viewer: viewer,
		Role:   displayRole(viewer.RoleName),
		Items:  items,
		Count:  len(items),
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		if h.logg != nil {
			h.logg.Error(r.Context(), "web.render", err)
		}
	}
}

func displayRole(roleName string) string {
	if display, ok := roleDisplayNames[roleName]; ok {
		return display
	}
	return roleName
}
