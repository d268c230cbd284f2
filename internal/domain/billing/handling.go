package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/inventory"
)

// HandlingDirection distinguishes inbound receiving from outbound picking
type HandlingDirection string

const (
	HandlingInbound  HandlingDirection = "Inbound"
	HandlingOutbound HandlingDirection = "Outbound"
)

// HandlingLine itemizes one movement's handling cost
type HandlingLine struct {
	Date      time.Time                `json:"date"`
	Direction HandlingDirection        `json:"direction"`
	DONumber  string                   `json:"do_number"`
	SKU       string                   `json:"sku"`
	UOM       inventory.UnitOfMeasure  `json:"uom"`
	Quantity  int64                    `json:"quantity"`
	UnitRate  decimal.Decimal          `json:"unit_rate"`
	Cost      decimal.Decimal          `json:"cost"`
}

// HandlingCharge is the handling fee for a period
type HandlingCharge struct {
	Lines      []HandlingLine  `json:"lines"`
	AdHocTotal decimal.Decimal `json:"ad_hoc_total"`
	Total      decimal.Decimal `json:"total"`
}

func handlingRate(uom inventory.UnitOfMeasure, rates InboundOutboundRates) decimal.Decimal {
	if uom == inventory.UOMCarton {
		return rates.PerCarton
	}
	return rates.PerUnit
}

// CalculateHandling prices every movement at quantity times the per-carton
// or per-unit rate, by the movement's unit of measure. Outbound movements
// are charged regardless of fulfillment status. Ad-hoc Handling charges are
// added on top. Zero-cost movements are omitted from the itemized detail;
// they never change the total.
func CalculateHandling(ins []*inventory.StockInEvent, outs []*inventory.StockOutEvent, adHoc []*AdHocCharge, rates InboundOutboundRates) HandlingCharge {
	charge := HandlingCharge{Total: decimal.Zero}

	for _, e := range ins {
		rate := handlingRate(e.UOM, rates)
		cost := rate.Mul(decimal.NewFromInt(e.ArrivedQty))
		if !cost.IsPositive() {
			continue
		}
		charge.Lines = append(charge.Lines, HandlingLine{
			Date:      e.ArrivalDate,
			Direction: HandlingInbound,
			DONumber:  e.DONumber,
			SKU:       e.SKU,
			UOM:       e.UOM,
			Quantity:  e.ArrivedQty,
			UnitRate:  rate,
			Cost:      cost,
		})
		charge.Total = charge.Total.Add(cost)
	}

	for _, e := range outs {
		rate := handlingRate(e.UOM, rates)
		cost := rate.Mul(decimal.NewFromInt(e.OrderedQty))
		if !cost.IsPositive() {
			continue
		}
		charge.Lines = append(charge.Lines, HandlingLine{
			Date:      e.OrderDate,
			Direction: HandlingOutbound,
			DONumber:  e.DONumber,
			SKU:       e.SKU,
			UOM:       e.UOM,
			Quantity:  e.OrderedQty,
			UnitRate:  rate,
			Cost:      cost,
		})
		charge.Total = charge.Total.Add(cost)
	}

	charge.AdHocTotal = sumAdHoc(adHoc, ChargeHandling)
	charge.Total = charge.Total.Add(charge.AdHocTotal)
	return charge
}
