package billing

import (
	"context"

	"github.com/google/uuid"
)

// AdHocChargeRepository provides read access to manually entered charges
type AdHocChargeRepository interface {
	// ListByTenant returns all ad-hoc charges for the tenant
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*AdHocCharge, error)
}

// PricingRepository provides access to per-tenant rate tables
type PricingRepository interface {
	// GetByTenant returns the tenant's pricing configuration
	GetByTenant(ctx context.Context, tenantID uuid.UUID) (*PricingConfig, error)
}
