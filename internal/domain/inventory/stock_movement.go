package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

// FulfillmentStatus is the delivery state of an outbound shipment
type FulfillmentStatus string

const (
	StatusPending     FulfillmentStatus = "Pending"
	StatusDelivered   FulfillmentStatus = "Delivered"
	StatusSelfCollect FulfillmentStatus = "Self collect"
)

// String returns the string representation
func (s FulfillmentStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is valid
func (s FulfillmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusDelivered, StatusSelfCollect:
		return true
	}
	return false
}

// StockInEvent records goods arriving at a warehouse. Events are
// append-only: the balance for (sku, warehouse) increases as of ArrivalDate.
type StockInEvent struct {
	shared.TenantEntity
	SKU         string
	Warehouse   string
	ArrivalDate time.Time
	ArrivedQty  int64
	UOM         UnitOfMeasure
	DONumber    string
}

// NewStockInEvent creates a stock-in event with validation
func NewStockInEvent(tenantID uuid.UUID, sku, warehouse string, arrivalDate time.Time, arrivedQty int64, uom UnitOfMeasure) (*StockInEvent, error) {
	if sku == "" || warehouse == "" {
		return nil, shared.NewDomainError("INVALID_STOCK_KEY", "SKU and warehouse are required")
	}
	if arrivedQty <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Arrived quantity must be positive")
	}
	if !uom.IsValid() {
		return nil, shared.NewDomainError("INVALID_UOM", "Unit of measure must be Ctn or Pack")
	}
	return &StockInEvent{
		TenantEntity: shared.NewTenantEntity(tenantID),
		SKU:          sku,
		Warehouse:    warehouse,
		ArrivalDate:  valueobject.DateOf(arrivalDate),
		ArrivedQty:   arrivedQty,
		UOM:          uom,
	}, nil
}

// Key returns the stock position this event belongs to
func (e *StockInEvent) Key() StockKey {
	return StockKey{SKU: e.SKU, Warehouse: e.Warehouse}
}

// WithDONumber attaches the delivery-order reference
func (e *StockInEvent) WithDONumber(doNo string) *StockInEvent {
	e.DONumber = doNo
	return e
}

// StockOutEvent records an outbound order. The balance decreases as of
// OrderDate regardless of fulfillment status: ordering reserves stock
// immediately, not at delivery.
//
// TotalWeightKg is a snapshot captured when the order was recorded
// (orderedQty x the item's weight at that moment). It is never recomputed,
// so later item weight edits do not change historical transport billing.
type StockOutEvent struct {
	shared.TenantEntity
	SKU               string
	Warehouse         string
	OrderDate         time.Time
	OrderedQty        int64
	UOM               UnitOfMeasure
	DONumber          string
	ConsigneeName     string
	FulfillmentStatus FulfillmentStatus
	DeliveredDate     *time.Time
	TotalWeightKg     decimal.Decimal
}

// NewStockOutEvent creates a stock-out event with validation
func NewStockOutEvent(tenantID uuid.UUID, sku, warehouse string, orderDate time.Time, orderedQty int64, uom UnitOfMeasure, status FulfillmentStatus) (*StockOutEvent, error) {
	if sku == "" || warehouse == "" {
		return nil, shared.NewDomainError("INVALID_STOCK_KEY", "SKU and warehouse are required")
	}
	if orderedQty <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Ordered quantity must be positive")
	}
	if !uom.IsValid() {
		return nil, shared.NewDomainError("INVALID_UOM", "Unit of measure must be Ctn or Pack")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Fulfillment status must be Pending, Delivered or Self collect")
	}
	return &StockOutEvent{
		TenantEntity:      shared.NewTenantEntity(tenantID),
		SKU:               sku,
		Warehouse:         warehouse,
		OrderDate:         valueobject.DateOf(orderDate),
		OrderedQty:        orderedQty,
		UOM:               uom,
		FulfillmentStatus: status,
	}, nil
}

// Key returns the stock position this event belongs to
func (e *StockOutEvent) Key() StockKey {
	return StockKey{SKU: e.SKU, Warehouse: e.Warehouse}
}

// WithDONumber attaches the delivery-order reference
func (e *StockOutEvent) WithDONumber(doNo string) *StockOutEvent {
	e.DONumber = doNo
	return e
}

// WithConsignee sets the consignee the order ships to
func (e *StockOutEvent) WithConsignee(name string) *StockOutEvent {
	e.ConsigneeName = name
	return e
}

// WithWeightSnapshot captures the total shipment weight at order time
func (e *StockOutEvent) WithWeightSnapshot(totalWeightKg decimal.Decimal) *StockOutEvent {
	e.TotalWeightKg = totalWeightKg
	return e
}

// WithDeliveredDate records when the shipment was delivered
func (e *StockOutEvent) WithDeliveredDate(d time.Time) *StockOutEvent {
	date := valueobject.DateOf(d)
	e.DeliveredDate = &date
	return e
}

// IsDelivered returns true when the shipment incurs transport charges
func (e *StockOutEvent) IsDelivered() bool {
	return e.FulfillmentStatus == StatusDelivered
}
