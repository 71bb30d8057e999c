package controllers

import (
	"log"
	"net/http"

	"github.com/rhinostock/inventario-backend/api/middleware"
	"github.com/rhinostock/inventario-backend/api/responses"
	"github.com/rhinostock/inventario-backend/api/validators"
	"github.com/rhinostock/inventario-backend/pkg/config"
	pkgerrors "github.com/rhinostock/inventario-backend/pkg/errors"
	"github.com/rhinostock/inventario-backend/pkg/logger"
	"github.com/rhinostock/inventario-backend/pkg/search"
)

// InventorySearch proxies the product-code lookup to the external service,
// forwarding the caller's bearer token. It never calls upstream without a
// session or with an empty query.
func InventorySearch(client *search.Client, cfg config.SearchConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if client == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "search client unavailable"))
			return
		}

		viewer := middleware.IdentityFromContext(ctx)
		if viewer.UserID == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		query := validators.SanitizeString(r.URL.Query().Get("q"), 200)
		if query == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "search query is required"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", cfg.DefaultLimit, 1, cfg.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := client.Search(ctx, middleware.AccessTokenFromContext(ctx), query, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "product search failed"))
			return
		}

		if !result.OK() {
			if logg != nil {
				logCtx := logg.WithField(ctx, "upstream_status", result.Status)
				logg.Warn(logCtx, "search.upstream_error")
			}
			responses.WriteErrorStatus(w, result.Status, pkgerrors.CodeDependency, "product search failed")
			return
		}

		contentType := result.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(result.Status)
		if _, err := w.Write(result.Body); err != nil {
			log.Printf(`{"level":"error","msg":"failed to relay search response","err":"%v"}`, err)
		}
	}
}
