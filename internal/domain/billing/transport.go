package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/inventory"
)

var (
	threeKg      = decimal.NewFromInt(3)
	twentyFiveKg = decimal.NewFromInt(25)
	fiftyKg      = decimal.NewFromInt(50)
)

// TransportLine itemizes one delivered shipment's courier cost
type TransportLine struct {
	DONumber      string          `json:"do_number"`
	OrderDate     time.Time       `json:"order_date"`
	DeliveredDate *time.Time      `json:"delivered_date,omitempty"`
	Consignee     string          `json:"consignee"`
	WeightKg      decimal.Decimal `json:"weight_kg"`
	Cost          decimal.Decimal `json:"cost"`
}

// TransportCharge is the courier charge for a period
type TransportCharge struct {
	Shipments []TransportLine `json:"shipments"`
	Total     decimal.Decimal `json:"total"`
}

// CourierCost prices one shipment by its snapshotted weight:
// under 3 kg pays the base rate; at 3 kg and above each started kilogram
// beyond the first three adds the per-kg rate. Inside the 25-50 kg band
// the within-state flat rate caps the result. Zero weight costs nothing.
func CourierCost(weightKg decimal.Decimal, rates CourierRates) decimal.Decimal {
	cost := decimal.Zero
	switch {
	case weightKg.IsPositive() && weightKg.LessThan(threeKg):
		cost = rates.First3Kg
	case weightKg.GreaterThanOrEqual(threeKg):
		extraKg := weightKg.Sub(threeKg).Ceil()
		cost = rates.First3Kg.Add(extraKg.Mul(rates.PerAdditionalKg))
	}
	if weightKg.GreaterThanOrEqual(twentyFiveKg) && weightKg.LessThanOrEqual(fiftyKg) {
		cost = decimal.Min(cost, rates.FlatRate25To50KgWithinState)
	}
	return cost
}

// CalculateTransport charges courier costs for delivered shipments only;
// pending and self-collect orders never incur transport charges. Shipments
// that price to zero are left off the chargeable list.
func CalculateTransport(shipments []*inventory.StockOutEvent, rates CourierRates) TransportCharge {
	charge := TransportCharge{Total: decimal.Zero}
	for _, s := range shipments {
		if !s.IsDelivered() {
			continue
		}
		cost := CourierCost(s.TotalWeightKg, rates)
		if !cost.IsPositive() {
			continue
		}
		charge.Shipments = append(charge.Shipments, TransportLine{
			DONumber:      s.DONumber,
			OrderDate:     s.OrderDate,
			DeliveredDate: s.DeliveredDate,
			Consignee:     s.ConsigneeName,
			WeightKg:      s.TotalWeightKg,
			Cost:          cost,
		})
		charge.Total = charge.Total.Add(cost)
	}
	return charge
}
