package billing

import (
	"github.com/shopspring/decimal"
)

// ConsumableLine itemizes one consumable item's period total
type ConsumableLine struct {
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	RatePerShipment decimal.Decimal `json:"rate_per_shipment"`
	ShipmentCount   int64           `json:"shipment_count"`
	Cost            decimal.Decimal `json:"cost"`
}

// ConsumableCharge is the packing material charge for a period
type ConsumableCharge struct {
	PerShipmentRate decimal.Decimal  `json:"per_shipment_rate"`
	RateBasedTotal  decimal.Decimal  `json:"rate_based_total"`
	AdHocTotal      decimal.Decimal  `json:"ad_hoc_total"`
	Lines           []ConsumableLine `json:"lines"`
	Total           decimal.Decimal  `json:"total"`
}

// CalculateConsumables bills every configured consumable once per shipment
// in the period, then adds ad-hoc Consumable charges on top.
func CalculateConsumables(shipmentCount int64, items []ConsumableItem, adHoc []*AdHocCharge) ConsumableCharge {
	count := decimal.NewFromInt(shipmentCount)

	perShipment := decimal.Zero
	lines := make([]ConsumableLine, 0, len(items))
	for _, item := range items {
		perShipment = perShipment.Add(item.PricePerShipment)
		lines = append(lines, ConsumableLine{
			Name:            item.Name,
			Unit:            item.Unit,
			RatePerShipment: item.PricePerShipment,
			ShipmentCount:   shipmentCount,
			Cost:            item.PricePerShipment.Mul(count),
		})
	}

	rateBased := perShipment.Mul(count)
	adHocTotal := sumAdHoc(adHoc, ChargeConsumable)

	return ConsumableCharge{
		PerShipmentRate: perShipment,
		RateBasedTotal:  rateBased,
		AdHocTotal:      adHocTotal,
		Lines:           lines,
		Total:           rateBased.Add(adHocTotal),
	}
}
