package inventory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/shared"
)

// cubicCmPerCBM converts cubic centimeters to cubic meters
var cubicCmPerCBM = decimal.NewFromInt(1_000_000)

// UnitOfMeasure is the packing unit a stock movement is counted in
type UnitOfMeasure string

const (
	UOMCarton UnitOfMeasure = "Ctn"
	UOMPack   UnitOfMeasure = "Pack"
)

// String returns the string representation
func (u UnitOfMeasure) String() string {
	return string(u)
}

// IsValid returns true if the unit of measure is valid
func (u UnitOfMeasure) IsValid() bool {
	return u == UOMCarton || u == UOMPack
}

// StockKey identifies one stock position: an SKU held at a specific warehouse.
// The same SKU stored at two warehouses is two independent positions.
type StockKey struct {
	SKU       string
	Warehouse string
}

// String returns "sku@warehouse"
func (k StockKey) String() string {
	return k.SKU + "@" + k.Warehouse
}

// Item represents a stored product at a specific warehouse.
// StartingStock is the on-hand balance at the epoch before which no
// stock movement history exists; metadata fields may change later but
// identity and starting stock are fixed once movements reference the item.
type Item struct {
	shared.TenantEntity
	SKU           string
	Warehouse     string
	Brand         string
	Description   string
	UOM           UnitOfMeasure
	LengthCm      decimal.Decimal
	WidthCm       decimal.Decimal
	HeightCm      decimal.Decimal
	WeightKg      decimal.Decimal
	StartingStock int64
}

// NewItem creates a new item with validation
func NewItem(tenantID uuid.UUID, sku, warehouse string, uom UnitOfMeasure) (*Item, error) {
	sku = strings.TrimSpace(sku)
	warehouse = strings.TrimSpace(warehouse)

	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if warehouse == "" {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse cannot be empty")
	}
	if !uom.IsValid() {
		return nil, shared.NewDomainError("INVALID_UOM", "Unit of measure must be Ctn or Pack")
	}

	return &Item{
		TenantEntity: shared.NewTenantEntity(tenantID),
		SKU:          sku,
		Warehouse:    warehouse,
		UOM:          uom,
	}, nil
}

// Key returns the stock position identity for this item
func (i *Item) Key() StockKey {
	return StockKey{SKU: i.SKU, Warehouse: i.Warehouse}
}

// WithDimensions sets the carton dimensions in centimeters
func (i *Item) WithDimensions(lengthCm, widthCm, heightCm decimal.Decimal) *Item {
	i.LengthCm = lengthCm
	i.WidthCm = widthCm
	i.HeightCm = heightCm
	return i
}

// WithWeight sets the per-unit weight in kilograms
func (i *Item) WithWeight(weightKg decimal.Decimal) *Item {
	i.WeightKg = weightKg
	return i
}

// WithStartingStock sets the balance at the history epoch
func (i *Item) WithStartingStock(qty int64) *Item {
	i.StartingStock = qty
	return i
}

// VolumeCBM returns the volumetric size of one unit in cubic meters:
// (length x width x height in cm) / 1,000,000.
func (i *Item) VolumeCBM() decimal.Decimal {
	return i.LengthCm.Mul(i.WidthCm).Mul(i.HeightCm).Div(cubicCmPerCBM)
}
