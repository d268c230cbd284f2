package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
)

// StockInModel is the GORM model for inbound stock events
type StockInModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index:idx_stock_in_tenant_date,priority:1"`
	SKU         string    `gorm:"size:100;not null;index"`
	Warehouse   string    `gorm:"size:100;not null"`
	ArrivalDate time.Time `gorm:"type:date;not null;index:idx_stock_in_tenant_date,priority:2"`
	ArrivedQty  int64     `gorm:"not null"`
	UOM         string    `gorm:"size:20;not null"`
	DONumber    string    `gorm:"size:100"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the model
func (StockInModel) TableName() string {
	return "stock_in_events"
}

// ToEntity converts the model to a domain entity
func (m *StockInModel) ToEntity() *inventory.StockInEvent {
	return &inventory.StockInEvent{
		TenantEntity: shared.TenantEntity{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			TenantID: m.TenantID,
		},
		SKU:         m.SKU,
		Warehouse:   m.Warehouse,
		ArrivalDate: m.ArrivalDate.UTC(),
		ArrivedQty:  m.ArrivedQty,
		UOM:         inventory.UnitOfMeasure(m.UOM),
		DONumber:    m.DONumber,
	}
}

// StockInModelFromEntity creates a model from a domain entity
func StockInModelFromEntity(e *inventory.StockInEvent) *StockInModel {
	return &StockInModel{
		ID:          e.ID,
		TenantID:    e.TenantID,
		SKU:         e.SKU,
		Warehouse:   e.Warehouse,
		ArrivalDate: e.ArrivalDate,
		ArrivedQty:  e.ArrivedQty,
		UOM:         e.UOM.String(),
		DONumber:    e.DONumber,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// StockOutModel is the GORM model for outbound stock events
type StockOutModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_out_tenant_date,priority:1"`
	SKU               string          `gorm:"size:100;not null;index"`
	Warehouse         string          `gorm:"size:100;not null"`
	OrderDate         time.Time       `gorm:"type:date;not null;index:idx_stock_out_tenant_date,priority:2"`
	OrderedQty        int64           `gorm:"not null"`
	UOM               string          `gorm:"size:20;not null"`
	DONumber          string          `gorm:"size:100"`
	ConsigneeName     string          `gorm:"size:200"`
	FulfillmentStatus string          `gorm:"size:20;not null"`
	DeliveredDate     *time.Time      `gorm:"type:date"`
	TotalWeightKg     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the model
func (StockOutModel) TableName() string {
	return "stock_out_events"
}

// ToEntity converts the model to a domain entity
func (m *StockOutModel) ToEntity() *inventory.StockOutEvent {
	e := &inventory.StockOutEvent{
		TenantEntity: shared.TenantEntity{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			TenantID: m.TenantID,
		},
		SKU:               m.SKU,
		Warehouse:         m.Warehouse,
		OrderDate:         m.OrderDate.UTC(),
		OrderedQty:        m.OrderedQty,
		UOM:               inventory.UnitOfMeasure(m.UOM),
		DONumber:          m.DONumber,
		ConsigneeName:     m.ConsigneeName,
		FulfillmentStatus: inventory.FulfillmentStatus(m.FulfillmentStatus),
		TotalWeightKg:     m.TotalWeightKg,
	}
	if m.DeliveredDate != nil {
		delivered := m.DeliveredDate.UTC()
		e.DeliveredDate = &delivered
	}
	return e
}

// StockOutModelFromEntity creates a model from a domain entity
func StockOutModelFromEntity(e *inventory.StockOutEvent) *StockOutModel {
	return &StockOutModel{
		ID:                e.ID,
		TenantID:          e.TenantID,
		SKU:               e.SKU,
		Warehouse:         e.Warehouse,
		OrderDate:         e.OrderDate,
		OrderedQty:        e.OrderedQty,
		UOM:               e.UOM.String(),
		DONumber:          e.DONumber,
		ConsigneeName:     e.ConsigneeName,
		FulfillmentStatus: e.FulfillmentStatus.String(),
		DeliveredDate:     e.DeliveredDate,
		TotalWeightKg:     e.TotalWeightKg,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

// StockMovementRepository implements the inventory.StockMovementRepository interface
type StockMovementRepository struct {
	db *gorm.DB
}

// NewStockMovementRepository creates a new stock movement repository
func NewStockMovementRepository(db *gorm.DB) *StockMovementRepository {
	return &StockMovementRepository{db: db}
}

// SaveStockIn persists an inbound event
func (r *StockMovementRepository) SaveStockIn(ctx context.Context, event *inventory.StockInEvent) error {
	return r.db.WithContext(ctx).Create(StockInModelFromEntity(event)).Error
}

// SaveStockOut persists an outbound event
func (r *StockMovementRepository) SaveStockOut(ctx context.Context, event *inventory.StockOutEvent) error {
	return r.db.WithContext(ctx).Create(StockOutModelFromEntity(event)).Error
}

// SaveStockInBatch persists multiple inbound events
func (r *StockMovementRepository) SaveStockInBatch(ctx context.Context, events []*inventory.StockInEvent) error {
	if len(events) == 0 {
		return nil
	}
	models := make([]*StockInModel, len(events))
	for i, e := range events {
		models[i] = StockInModelFromEntity(e)
	}
	return r.db.WithContext(ctx).CreateInBatches(models, 100).Error
}

// SaveStockOutBatch persists multiple outbound events
func (r *StockMovementRepository) SaveStockOutBatch(ctx context.Context, events []*inventory.StockOutEvent) error {
	if len(events) == 0 {
		return nil
	}
	models := make([]*StockOutModel, len(events))
	for i, e := range events {
		models[i] = StockOutModelFromEntity(e)
	}
	return r.db.WithContext(ctx).CreateInBatches(models, 100).Error
}

// ListStockIn returns the full stock-in history for the tenant
func (r *StockMovementRepository) ListStockIn(ctx context.Context, tenantID uuid.UUID) ([]*inventory.StockInEvent, error) {
	var models []StockInModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("arrival_date ASC, created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	events := make([]*inventory.StockInEvent, len(models))
	for i, model := range models {
		events[i] = model.ToEntity()
	}
	return events, nil
}

// ListStockOut returns the full stock-out history for the tenant
func (r *StockMovementRepository) ListStockOut(ctx context.Context, tenantID uuid.UUID) ([]*inventory.StockOutEvent, error) {
	var models []StockOutModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("order_date ASC, created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	events := make([]*inventory.StockOutEvent, len(models))
	for i, model := range models {
		events[i] = model.ToEntity()
	}
	return events, nil
}

// Ensure StockMovementRepository implements the interface
var _ inventory.StockMovementRepository = (*StockMovementRepository)(nil)
