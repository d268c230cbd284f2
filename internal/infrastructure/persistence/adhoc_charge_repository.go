package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/billing"
	"github.com/wms/backend/internal/domain/shared"
)

// AdHocChargeModel is the GORM model for manually entered charges
type AdHocChargeModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_ad_hoc_tenant_date,priority:1"`
	Date        time.Time       `gorm:"type:date;not null;index:idx_ad_hoc_tenant_date,priority:2"`
	Category    string          `gorm:"size:20;not null"`
	Description string          `gorm:"size:500"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the model
func (AdHocChargeModel) TableName() string {
	return "ad_hoc_charges"
}

// ToEntity converts the model to a domain entity
func (m *AdHocChargeModel) ToEntity() *billing.AdHocCharge {
	return &billing.AdHocCharge{
		TenantEntity: shared.TenantEntity{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			TenantID: m.TenantID,
		},
		Date:        m.Date.UTC(),
		Category:    billing.ChargeCategory(m.Category),
		Description: m.Description,
		Amount:      m.Amount,
	}
}

// AdHocChargeModelFromEntity creates a model from a domain entity
func AdHocChargeModelFromEntity(e *billing.AdHocCharge) *AdHocChargeModel {
	return &AdHocChargeModel{
		ID:          e.ID,
		TenantID:    e.TenantID,
		Date:        e.Date,
		Category:    e.Category.String(),
		Description: e.Description,
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// AdHocChargeRepository implements the billing.AdHocChargeRepository interface
type AdHocChargeRepository struct {
	db *gorm.DB
}

// NewAdHocChargeRepository creates a new ad-hoc charge repository
func NewAdHocChargeRepository(db *gorm.DB) *AdHocChargeRepository {
	return &AdHocChargeRepository{db: db}
}

// Save persists an ad-hoc charge
func (r *AdHocChargeRepository) Save(ctx context.Context, charge *billing.AdHocCharge) error {
	return r.db.WithContext(ctx).Create(AdHocChargeModelFromEntity(charge)).Error
}

// ListByTenant returns all ad-hoc charges for the tenant
func (r *AdHocChargeRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*billing.AdHocCharge, error) {
	var models []AdHocChargeModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("date ASC, created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	charges := make([]*billing.AdHocCharge, len(models))
	for i, model := range models {
		charges[i] = model.ToEntity()
	}
	return charges, nil
}

// Delete removes an ad-hoc charge by ID
func (r *AdHocChargeRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&AdHocChargeModel{}).Error
}

// Ensure AdHocChargeRepository implements the interface
var _ billing.AdHocChargeRepository = (*AdHocChargeRepository)(nil)
