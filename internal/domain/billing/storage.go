package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

// daysPerBillingMonth is the fixed divisor converting a pallet-month rate
// into a daily rate. The operator bills every month as 30 days regardless
// of calendar length; this is contract policy, not an approximation to fix.
var daysPerBillingMonth = decimal.NewFromInt(30)

// StorageDay is one day's storage cost on the statement breakdown
type StorageDay struct {
	Date     time.Time       `json:"date"`
	TotalCBM decimal.Decimal `json:"total_cbm"`
	Pallets  decimal.Decimal `json:"pallets"`
	Cost     decimal.Decimal `json:"cost"`
}

// StorageCharge is the storage rental charge for a period
type StorageCharge struct {
	Days  []StorageDay    `json:"days"`
	Total decimal.Decimal `json:"total"`
}

// CalculateStorage reconstructs every item's balance for each day of the
// period, converts positive balances to CBM, derives pallet counts, and
// prices each day at one thirtieth of the pallet-month rate.
//
// A zero pallet volume or zero monthly rate disables the charge entirely;
// neither is a fault.
func CalculateStorage(period valueobject.Period, ledger *inventory.StockLedger, rates StorageRates) (StorageCharge, error) {
	charge := StorageCharge{Total: decimal.Zero}
	// Without a rate there is nothing to price, so the daily breakdown is
	// skipped too. A zero pallet volume only zeroes the pallet conversion
	// and still emits one row per day.
	if !rates.RatePerPalletPerMonth.IsPositive() {
		return charge, nil
	}

	dailyRate := rates.RatePerPalletPerMonth.Div(daysPerBillingMonth)
	days := period.Days()

	dailyCBM := make([]decimal.Decimal, days)
	for i := range dailyCBM {
		dailyCBM[i] = decimal.Zero
	}

	for _, item := range ledger.Items() {
		volume := item.VolumeCBM()
		if !volume.IsPositive() {
			continue
		}
		balances, err := ledger.DailyBalances(item.SKU, item.Warehouse, period)
		if err != nil {
			return StorageCharge{}, err
		}
		for i, balance := range balances {
			if balance > 0 {
				dailyCBM[i] = dailyCBM[i].Add(volume.Mul(decimal.NewFromInt(balance)))
			}
		}
	}

	charge.Days = make([]StorageDay, 0, days)
	for i := 0; i < days; i++ {
		pallets := decimal.Zero
		if rates.PalletVolumeCBM.IsPositive() {
			pallets = dailyCBM[i].Div(rates.PalletVolumeCBM)
		}
		cost := pallets.Mul(dailyRate)
		charge.Days = append(charge.Days, StorageDay{
			Date:     period.Day(i),
			TotalCBM: dailyCBM[i],
			Pallets:  pallets,
			Cost:     cost,
		})
		charge.Total = charge.Total.Add(cost)
	}

	return charge, nil
}
