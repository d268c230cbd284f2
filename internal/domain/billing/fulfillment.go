package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/inventory"
)

// FulfillmentLine itemizes one shipment on the statement
type FulfillmentLine struct {
	Date      time.Time       `json:"date"`
	DONumber  string          `json:"do_number"`
	Consignee string          `json:"consignee"`
	SKU       string          `json:"sku"`
	Quantity  int64           `json:"quantity"`
	UnitRate  decimal.Decimal `json:"unit_rate"`
	Cost      decimal.Decimal `json:"cost"`
}

// FulfillmentCharge is the pick-and-pack service charge for a period
type FulfillmentCharge struct {
	ShipmentCount int64             `json:"shipment_count"`
	AppliedRate   decimal.Decimal   `json:"applied_rate"`
	Lines         []FulfillmentLine `json:"lines"`
	Total         decimal.Decimal   `json:"total"`
}

// CalculateFulfillment charges every stock-out event in the period as one
// shipment, regardless of fulfillment status. The rate is the highest
// volume tier the shipment count qualifies for; with no qualifying tier
// the charge is zero.
func CalculateFulfillment(shipments []*inventory.StockOutEvent, tiers []FulfillmentTier) FulfillmentCharge {
	count := int64(len(shipments))
	rate := RateForVolume(tiers, count)

	lines := make([]FulfillmentLine, 0, len(shipments))
	for _, s := range shipments {
		lines = append(lines, FulfillmentLine{
			Date:      s.OrderDate,
			DONumber:  s.DONumber,
			Consignee: s.ConsigneeName,
			SKU:       s.SKU,
			Quantity:  s.OrderedQty,
			UnitRate:  rate,
			Cost:      rate,
		})
	}

	return FulfillmentCharge{
		ShipmentCount: count,
		AppliedRate:   rate,
		Lines:         lines,
		Total:         rate.Mul(decimal.NewFromInt(count)),
	}
}
