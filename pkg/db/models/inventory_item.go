package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryItem is one physical batch of glass parts. Two people count each
// batch independently: the creator's count lands in Unidades, the second
// counter's in Unidades2. ConfirmadoPor is set when a verifier has checked
// that both counts agree and cleared when the check is undone.
type InventoryItem struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Etiquetado    string    `gorm:"column:etiquetado;not null"`
	Ubicacion     string    `gorm:"column:ubicacion;not null"`
	Unidades      *int64    `gorm:"column:unidades"`
	Unidades2     *int64    `gorm:"column:unidades_2"`
	EtiquetadoPor string    `gorm:"column:etiquetado_por;not null"`
	UbicadoPor    string    `gorm:"column:ubicado_por;not null"`
	ContadoPor    string    `gorm:"column:contado_por;not null"`
	ContadoPor2   *string   `gorm:"column:contado_por_2"`
	ConfirmadoPor *string   `gorm:"column:confirmado_por"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table name used by the hosted schema.
func (InventoryItem) TableName() string {
	return "inventory"
}

// BeforeCreate assigns an ID when the dialect has no uuid default (sqlite in tests).
func (i *InventoryItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
