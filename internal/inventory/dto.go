package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/rhinostock/inventario-backend/pkg/db/models"
)

// ItemDTO is the wire shape of one inventory record. Count fields are nulled
// by the visibility filter before a non-admin viewer ever sees them.
type ItemDTO struct {
	ID            uuid.UUID `json:"id"`
	Etiquetado    string    `json:"etiquetado"`
	Ubicacion     string    `json:"ubicacion"`
	Unidades      *int64    `json:"unidades"`
	Unidades2     *int64    `json:"unidades_2"`
	EtiquetadoPor string    `json:"etiquetado_por"`
	UbicadoPor    string    `json:"ubicado_por"`
	ContadoPor    string    `json:"contado_por"`
	ContadoPor2   *string   `json:"contado_por_2"`
	ConfirmadoPor *string   `json:"confirmado_por"`
	Mismatched    bool      `json:"mismatched,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateInput carries the three fields required to register a batch.
type CreateInput struct {
	Etiquetado string
	Ubicacion  string
	Unidades   int64
}

// UpdateInput is a partial update. Nil pointers mean "leave the field alone".
// Confirm carries the verification toggle: true stamps the requester as
// verifier, false clears the verification.
type UpdateInput struct {
	Etiquetado *string
	Ubicacion  *string
	Unidades   *int64
	Unidades2  *int64
	Confirm    *bool
}

func (u UpdateInput) empty() bool {
	return u.Etiquetado == nil && u.Ubicacion == nil && u.Unidades == nil && u.Unidades2 == nil && u.Confirm == nil
}

func modelToDTO(item *models.InventoryItem) ItemDTO {
	return ItemDTO{
		ID:            item.ID,
		Etiquetado:    item.Etiquetado,
		Ubicacion:     item.Ubicacion,
		Unidades:      item.Unidades,
		Unidades2:     item.Unidades2,
		EtiquetadoPor: item.EtiquetadoPor,
		UbicadoPor:    item.UbicadoPor,
		ContadoPor:    item.ContadoPor,
		ContadoPor2:   item.ContadoPor2,
		ConfirmadoPor: item.ConfirmadoPor,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}
