package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rhinostock/inventario-backend/internal/identity"
	"github.com/rhinostock/inventario-backend/pkg/db/models"
	pkgerrors "github.com/rhinostock/inventario-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes the inventory operations the API consumes.
type Service interface {
	List(ctx context.Context, viewer identity.Identity) ([]ItemDTO, error)
	Create(ctx context.Context, viewer identity.Identity, input CreateInput) (*ItemDTO, error)
	Update(ctx context.Context, viewer identity.Identity, id uuid.UUID, input UpdateInput) (*ItemDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	List(ctx context.Context) ([]models.InventoryItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	Create(ctx context.Context, item *models.InventoryItem) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService wires the count-routing and visibility rules on top of the repository.
func NewService(repo repository) Service {
	return &service{repo: repo}
}

// List returns every record, filtered for the viewer.
func (s *service) List(ctx context.Context, viewer identity.Identity) ([]ItemDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, FilterForViewer(&items[i], viewer))
	}
	return dtos, nil
}

// Create registers a batch and stamps every attribution field with the
// creator's email. The creator becomes the first counter: contado_por is set
// here and never re-assigned to anyone else.
func (s *service) Create(ctx context.Context, viewer identity.Identity, input CreateInput) (*ItemDTO, error) {
	units := input.Unidades
	item := &models.InventoryItem{
		Etiquetado:    input.Etiquetado,
		Ubicacion:     input.Ubicacion,
		Unidades:      &units,
		EtiquetadoPor: viewer.Email,
		UbicadoPor:    viewer.Email,
		ContadoPor:    viewer.Email,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	dto := FilterForViewer(item, viewer)
	return &dto, nil
}

// Update applies the count-routing policy and returns the updated record
// filtered for the requester.
func (s *service) Update(ctx context.Context, viewer identity.Identity, id uuid.UUID, input UpdateInput) (*ItemDTO, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, err
	}

	updates := routeUpdate(existing, viewer, input)
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
		existing, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	dto := FilterForViewer(existing, viewer)
	return &dto, nil
}

// Delete removes a record. Hard delete, no tombstone.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// routeUpdate decides which columns a request may touch. The creator owns the
// first count, everyone else the second; a count sent by the wrong side is
// dropped without error. Tag and location edits always apply and re-stamp
// their attribution column.
func routeUpdate(existing *models.InventoryItem, viewer identity.Identity, input UpdateInput) map[string]any {
	if input.empty() {
		return nil
	}

	isCreator := existing.ContadoPor == viewer.Email
	updates := map[string]any{}

	if input.Etiquetado != nil {
		updates["etiquetado"] = *input.Etiquetado
		updates["etiquetado_por"] = viewer.Email
	}
	if input.Ubicacion != nil {
		updates["ubicacion"] = *input.Ubicacion
		updates["ubicado_por"] = viewer.Email
	}
	if input.Unidades != nil && isCreator {
		updates["unidades"] = *input.Unidades
		updates["contado_por"] = viewer.Email
	}
	if input.Unidades2 != nil && !isCreator {
		updates["unidades_2"] = *input.Unidades2
		updates["contado_por_2"] = viewer.Email
	}
	if input.Confirm != nil {
		if *input.Confirm {
			// The verifier can only ever stamp their own identity.
			updates["confirmado_por"] = viewer.Email
		} else {
			updates["confirmado_por"] = nil
		}
	}

	return updates
}

// FilterForViewer converts a record to its wire shape, hiding the counts the
// viewer is not entitled to see. Each counter sees only their own count, so
// the second count stays blind to the first. Admins see both and get a
// mismatch flag when the counts disagree.
func FilterForViewer(item *models.InventoryItem, viewer identity.Identity) ItemDTO {
	dto := modelToDTO(item)

	if viewer.IsAdmin {
		if item.Unidades != nil && item.Unidades2 != nil && *item.Unidades != *item.Unidades2 {
			dto.Mismatched = true
		}
		return dto
	}

	if item.ContadoPor != viewer.Email {
		dto.Unidades = nil
	}
	if item.ContadoPor2 == nil || *item.ContadoPor2 != viewer.Email {
		dto.Unidades2 = nil
	}
	return dto
}
