package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wms/backend/internal/domain/billing"
	"github.com/wms/backend/internal/domain/shared"
)

// TenantPricingModel is the GORM model for per-tenant rate tables.
// The full configuration is stored as one JSON document: rates change as
// a unit when a contract is renegotiated, and the engine always reads
// them together.
type TenantPricingModel struct {
	ID        uuid.UUID             `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex"`
	Config    billing.PricingConfig `gorm:"type:jsonb;serializer:json;not null"`
	CreatedAt time.Time             `gorm:"not null"`
	UpdatedAt time.Time             `gorm:"not null"`
}

// TableName returns the table name for the model
func (TenantPricingModel) TableName() string {
	return "tenant_pricing"
}

// PricingRepository implements the billing.PricingRepository interface
type PricingRepository struct {
	db *gorm.DB
}

// NewPricingRepository creates a new pricing repository
func NewPricingRepository(db *gorm.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// GetByTenant returns the tenant's pricing configuration
func (r *PricingRepository) GetByTenant(ctx context.Context, tenantID uuid.UUID) (*billing.PricingConfig, error) {
	var model TenantPricingModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewDomainError(shared.ErrNotFound.Code, "No pricing configured for tenant")
		}
		return nil, err
	}
	config := model.Config
	return &config, nil
}

// Upsert stores the tenant's pricing configuration, replacing any existing one
func (r *PricingRepository) Upsert(ctx context.Context, tenantID uuid.UUID, config billing.PricingConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	now := time.Now()
	model := &TenantPricingModel{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Config:    config,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"config", "updated_at"}),
	}).Create(model).Error
}

// Ensure PricingRepository implements the interface
var _ billing.PricingRepository = (*PricingRepository)(nil)
