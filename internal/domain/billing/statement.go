package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

// StatementInput is the immutable snapshot a statement is computed from.
// Collections carry the tenant's full history; the calculator filters by
// period itself so monthly and custom-range statements share one path.
type StatementInput struct {
	TenantID     uuid.UUID
	Period       valueobject.Period
	Pricing      PricingConfig
	Items        []*inventory.Item
	StockIn      []*inventory.StockInEvent
	StockOut     []*inventory.StockOutEvent
	AdHocCharges []*AdHocCharge
}

// AdHocLine itemizes one manual charge on the statement
type AdHocLine struct {
	Date        string          `json:"date"`
	Category    ChargeCategory  `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Statement is the itemized billing result for one tenant and period.
// It is either fully computed or not produced at all; there is no partial
// statement.
type Statement struct {
	TenantID    uuid.UUID          `json:"tenant_id"`
	Period      valueobject.Period `json:"period"`
	Fulfillment FulfillmentCharge  `json:"fulfillment"`
	Storage     StorageCharge      `json:"storage"`
	Transport   TransportCharge    `json:"transport"`
	Handling    HandlingCharge     `json:"handling"`
	Consumable  ConsumableCharge   `json:"consumable"`
	AdHoc       []AdHocLine        `json:"ad_hoc_charges"`
	GrandTotal  decimal.Decimal    `json:"grand_total"`
}

// StatementCalculator composes the five charge calculators into one
// statement. It holds no state; every build is a pure function of its
// input.
type StatementCalculator struct{}

// NewStatementCalculator creates a new StatementCalculator
func NewStatementCalculator() *StatementCalculator {
	return &StatementCalculator{}
}

// BuildStatement computes the full statement for the input's period.
// It validates the pricing configuration, builds the stock ledger (failing
// loudly on movements that reference unknown items), filters each event
// collection to the period, and runs the five calculators.
func (c *StatementCalculator) BuildStatement(input StatementInput) (*Statement, error) {
	if err := input.Pricing.Validate(); err != nil {
		return nil, err
	}

	ledger, err := inventory.NewStockLedger(input.Items, input.StockIn, input.StockOut)
	if err != nil {
		return nil, err
	}

	inPeriodIns := filterStockIn(input.StockIn, input.Period)
	inPeriodOuts := filterStockOut(input.StockOut, input.Period)
	inPeriodAdHoc := filterAdHoc(input.AdHocCharges, input.Period)

	fulfillment := CalculateFulfillment(inPeriodOuts, input.Pricing.FulfillmentTiers)

	storage, err := CalculateStorage(input.Period, ledger, input.Pricing.Storage)
	if err != nil {
		return nil, err
	}

	transport := CalculateTransport(inPeriodOuts, input.Pricing.Transport.Courier)
	handling := CalculateHandling(inPeriodIns, inPeriodOuts, inPeriodAdHoc, input.Pricing.Handling.InboundOutbound)
	consumable := CalculateConsumables(fulfillment.ShipmentCount, input.Pricing.ConsumableItems, inPeriodAdHoc)

	adHocLines := make([]AdHocLine, 0, len(inPeriodAdHoc))
	for _, charge := range inPeriodAdHoc {
		adHocLines = append(adHocLines, AdHocLine{
			Date:        charge.Date.Format(valueobject.DateLayout),
			Category:    charge.Category,
			Description: charge.Description,
			Amount:      charge.Amount,
		})
	}

	grandTotal := fulfillment.Total.
		Add(storage.Total).
		Add(transport.Total).
		Add(handling.Total).
		Add(consumable.Total)

	return &Statement{
		TenantID:    input.TenantID,
		Period:      input.Period,
		Fulfillment: fulfillment,
		Storage:     storage,
		Transport:   transport,
		Handling:    handling,
		Consumable:  consumable,
		AdHoc:       adHocLines,
		GrandTotal:  grandTotal,
	}, nil
}

func filterStockIn(events []*inventory.StockInEvent, period valueobject.Period) []*inventory.StockInEvent {
	filtered := make([]*inventory.StockInEvent, 0, len(events))
	for _, e := range events {
		if period.Contains(e.ArrivalDate) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func filterStockOut(events []*inventory.StockOutEvent, period valueobject.Period) []*inventory.StockOutEvent {
	filtered := make([]*inventory.StockOutEvent, 0, len(events))
	for _, e := range events {
		if period.Contains(e.OrderDate) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func filterAdHoc(charges []*AdHocCharge, period valueobject.Period) []*AdHocCharge {
	filtered := make([]*AdHocCharge, 0, len(charges))
	for _, c := range charges {
		if period.Contains(c.Date) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
