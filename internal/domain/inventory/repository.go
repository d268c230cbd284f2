package inventory

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository provides read access to an organization's item catalog
type ItemRepository interface {
	// ListByTenant returns all items belonging to the tenant
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*Item, error)
}

// StockMovementRepository provides read access to the append-only movement log
type StockMovementRepository interface {
	// ListStockIn returns the full stock-in history for the tenant
	ListStockIn(ctx context.Context, tenantID uuid.UUID) ([]*StockInEvent, error)
	// ListStockOut returns the full stock-out history for the tenant
	ListStockOut(ctx context.Context, tenantID uuid.UUID) ([]*StockOutEvent, error)
}
