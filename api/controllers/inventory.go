package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rhinostock/inventario-backend/api/middleware"
	"github.com/rhinostock/inventario-backend/api/responses"
	"github.com/rhinostock/inventario-backend/api/validators"
	"github.com/rhinostock/inventario-backend/internal/inventory"
	pkgerrors "github.com/rhinostock/inventario-backend/pkg/errors"
	"github.com/rhinostock/inventario-backend/pkg/logger"
)

type createInventoryPayload struct {
	Etiquetado string `json:"etiquetado" validate:"required"`
	Ubicacion  string `json:"ubicacion" validate:"required"`
	Unidades   *int64 `json:"unidades" validate:"required"`
}

type updateInventoryPayload struct {
	Etiquetado    *string         `json:"etiquetado"`
	Ubicacion     *string         `json:"ubicacion"`
	Unidades      *int64          `json:"unidades"`
	Unidades2     *int64          `json:"unidades_2"`
	ConfirmadoPor json.RawMessage `json:"confirmado_por"`
}

// InventoryList returns every record, visibility-filtered for the caller.
func InventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		viewer := middleware.IdentityFromContext(ctx)
		items, err := svc.List(ctx, viewer)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessList(w, items)
	}
}

// InventoryCreate registers a batch. etiquetado, ubicacion and unidades are
// all required; the caller becomes the record's first counter.
func InventoryCreate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload createInventoryPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := inventory.CreateInput{
			Etiquetado: validators.SanitizeString(payload.Etiquetado, 120),
			Ubicacion:  validators.SanitizeString(payload.Ubicacion, 200),
			Unidades:   *payload.Unidades,
		}
		if input.Etiquetado == "" || input.Ubicacion == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "etiquetado and ubicacion are required"))
			return
		}

		viewer := middleware.IdentityFromContext(ctx)
		created, err := svc.Create(ctx, viewer, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// InventoryUpdate applies a partial update through the count-routing policy.
func InventoryUpdate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "itemId"))
		id, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		var payload updateInventoryPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := inventory.UpdateInput{
			Etiquetado: payload.Etiquetado,
			Ubicacion:  payload.Ubicacion,
			Unidades:   payload.Unidades,
			Unidades2:  payload.Unidades2,
		}
		if payload.ConfirmadoPor != nil {
			confirm := truthyJSON(payload.ConfirmadoPor)
			input.Confirm = &confirm
		}

		viewer := middleware.IdentityFromContext(ctx)
		updated, err := svc.Update(ctx, viewer, id, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// InventoryDelete hard-deletes a record.
func InventoryDelete(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "itemId"))
		id, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"success": true})
	}
}

// truthyJSON mirrors the loose truthiness the verification checkbox relies
// on: null, false, 0, and "" clear the verification, anything else sets it.
func truthyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false
	}

	var b bool
	if err := json.Unmarshal(trimmed, &b); err == nil {
		return b
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s != ""
	}

	var n float64
	if err := json.Unmarshal(trimmed, &n); err == nil {
		return n != 0
	}

	return true
}
