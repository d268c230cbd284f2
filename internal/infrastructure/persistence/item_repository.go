package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
)

// ItemModel is the GORM model for warehouse items
type ItemModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_items_tenant_sku_warehouse,priority:1"`
	SKU           string          `gorm:"size:100;not null;uniqueIndex:idx_items_tenant_sku_warehouse,priority:2"`
	Warehouse     string          `gorm:"size:100;not null;uniqueIndex:idx_items_tenant_sku_warehouse,priority:3"`
	Brand         string          `gorm:"size:100"`
	Description   string          `gorm:"size:500"`
	UOM           string          `gorm:"size:20;not null"`
	LengthCm      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	WidthCm       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	HeightCm      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	WeightKg      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StartingStock int64           `gorm:"not null;default:0"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the model
func (ItemModel) TableName() string {
	return "items"
}

// ToEntity converts the model to a domain entity
func (m *ItemModel) ToEntity() *inventory.Item {
	return &inventory.Item{
		TenantEntity: shared.TenantEntity{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			TenantID: m.TenantID,
		},
		SKU:           m.SKU,
		Warehouse:     m.Warehouse,
		Brand:         m.Brand,
		Description:   m.Description,
		UOM:           inventory.UnitOfMeasure(m.UOM),
		LengthCm:      m.LengthCm,
		WidthCm:       m.WidthCm,
		HeightCm:      m.HeightCm,
		WeightKg:      m.WeightKg,
		StartingStock: m.StartingStock,
	}
}

// ItemModelFromEntity creates a model from a domain entity
func ItemModelFromEntity(e *inventory.Item) *ItemModel {
	return &ItemModel{
		ID:            e.ID,
		TenantID:      e.TenantID,
		SKU:           e.SKU,
		Warehouse:     e.Warehouse,
		Brand:         e.Brand,
		Description:   e.Description,
		UOM:           e.UOM.String(),
		LengthCm:      e.LengthCm,
		WidthCm:       e.WidthCm,
		HeightCm:      e.HeightCm,
		WeightKg:      e.WeightKg,
		StartingStock: e.StartingStock,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// ItemRepository implements the inventory.ItemRepository interface
type ItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Save persists an item, updating metadata on (tenant, sku, warehouse) conflict
func (r *ItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	model := ItemModelFromEntity(item)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "sku"}, {Name: "warehouse"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"brand",
			"description",
			"uom",
			"length_cm",
			"width_cm",
			"height_cm",
			"weight_kg",
			"starting_stock",
			"updated_at",
		}),
	}).Create(model).Error
}

// SaveBatch persists multiple items
func (r *ItemRepository) SaveBatch(ctx context.Context, items []*inventory.Item) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]*ItemModel, len(items))
	for i, item := range items {
		models[i] = ItemModelFromEntity(item)
	}
	return r.db.WithContext(ctx).CreateInBatches(models, 100).Error
}

// ListByTenant returns all items belonging to the tenant in stable order
func (r *ItemRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*inventory.Item, error) {
	var models []ItemModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("sku ASC, warehouse ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	items := make([]*inventory.Item, len(models))
	for i, model := range models {
		items[i] = model.ToEntity()
	}
	return items, nil
}

// FindBySKUAndWarehouse retrieves one stock position's item
func (r *ItemRepository) FindBySKUAndWarehouse(ctx context.Context, tenantID uuid.UUID, sku, warehouse string) (*inventory.Item, error) {
	var model ItemModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND sku = ? AND warehouse = ?", tenantID, sku, warehouse).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// DeleteByTenant removes all items for a tenant
func (r *ItemRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&ItemModel{}).Error
}

// Ensure ItemRepository implements the interface
var _ inventory.ItemRepository = (*ItemRepository)(nil)
