package inventory

import (
	"fmt"
	"sort"
	"time"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

// StockLedger reconstructs point-in-time stock balances from an immutable
// snapshot of items and their movement history. It is a pure read model:
// callers pass full event collections and the ledger filters by stock
// position and cutoff date.
//
// A movement referencing a (sku, warehouse) pair with no matching item is
// treated as ledger corruption in the upstream data and fails construction.
type StockLedger struct {
	keys      []StockKey
	positions map[StockKey]*stockPosition
}

type stockPosition struct {
	item *Item
	ins  []*StockInEvent
	outs []*StockOutEvent
}

// NewStockLedger builds a ledger from snapshot collections.
// Events are indexed per stock position and sorted by date so balances can
// be reconstructed by walking forward instead of re-scanning history.
func NewStockLedger(items []*Item, ins []*StockInEvent, outs []*StockOutEvent) (*StockLedger, error) {
	l := &StockLedger{
		positions: make(map[StockKey]*stockPosition, len(items)),
	}

	for _, item := range items {
		key := item.Key()
		if _, exists := l.positions[key]; exists {
			return nil, shared.NewDomainError("DUPLICATE_ITEM",
				fmt.Sprintf("Duplicate item for stock position %s", key))
		}
		l.positions[key] = &stockPosition{item: item}
		l.keys = append(l.keys, key)
	}

	// Deterministic iteration order regardless of input order
	sort.Slice(l.keys, func(i, j int) bool {
		if l.keys[i].SKU != l.keys[j].SKU {
			return l.keys[i].SKU < l.keys[j].SKU
		}
		return l.keys[i].Warehouse < l.keys[j].Warehouse
	})

	for _, e := range ins {
		pos, ok := l.positions[e.Key()]
		if !ok {
			return nil, unknownItemError(e.Key())
		}
		pos.ins = append(pos.ins, e)
	}
	for _, e := range outs {
		pos, ok := l.positions[e.Key()]
		if !ok {
			return nil, unknownItemError(e.Key())
		}
		pos.outs = append(pos.outs, e)
	}

	for _, pos := range l.positions {
		sort.SliceStable(pos.ins, func(i, j int) bool {
			return pos.ins[i].ArrivalDate.Before(pos.ins[j].ArrivalDate)
		})
		sort.SliceStable(pos.outs, func(i, j int) bool {
			return pos.outs[i].OrderDate.Before(pos.outs[j].OrderDate)
		})
	}

	return l, nil
}

func unknownItemError(key StockKey) error {
	return shared.NewDomainError(shared.ErrUnknownItem.Code,
		fmt.Sprintf("Stock movement references unknown item %s", key))
}

// Items returns all items in deterministic (sku, warehouse) order
func (l *StockLedger) Items() []*Item {
	items := make([]*Item, 0, len(l.keys))
	for _, key := range l.keys {
		items = append(items, l.positions[key].item)
	}
	return items
}

// BalanceAsOf returns the on-hand balance for a stock position at
// end-of-day on asOf: starting stock plus arrivals dated on or before the
// cutoff, minus orders dated on or before the cutoff. Orders reduce the
// balance regardless of fulfillment status.
func (l *StockLedger) BalanceAsOf(sku, warehouse string, asOf time.Time) (int64, error) {
	pos, ok := l.positions[StockKey{SKU: sku, Warehouse: warehouse}]
	if !ok {
		return 0, unknownItemError(StockKey{SKU: sku, Warehouse: warehouse})
	}

	cutoff := valueobject.DateOf(asOf)
	balance := pos.item.StartingStock
	for _, e := range pos.ins {
		if e.ArrivalDate.After(cutoff) {
			break
		}
		balance += e.ArrivedQty
	}
	for _, e := range pos.outs {
		if e.OrderDate.After(cutoff) {
			break
		}
		balance -= e.OrderedQty
	}
	return balance, nil
}

// DailyBalances returns the end-of-day balance for every day of the period,
// in period order. The first day is reconstructed from history; subsequent
// days apply only that day's movement deltas.
func (l *StockLedger) DailyBalances(sku, warehouse string, period valueobject.Period) ([]int64, error) {
	pos, ok := l.positions[StockKey{SKU: sku, Warehouse: warehouse}]
	if !ok {
		return nil, unknownItemError(StockKey{SKU: sku, Warehouse: warehouse})
	}

	balances := make([]int64, period.Days())

	// Balance the day before the period starts
	balance := pos.item.StartingStock
	inIdx, outIdx := 0, 0
	dayBefore := period.Start().AddDate(0, 0, -1)
	for inIdx < len(pos.ins) && !pos.ins[inIdx].ArrivalDate.After(dayBefore) {
		balance += pos.ins[inIdx].ArrivedQty
		inIdx++
	}
	for outIdx < len(pos.outs) && !pos.outs[outIdx].OrderDate.After(dayBefore) {
		balance -= pos.outs[outIdx].OrderedQty
		outIdx++
	}

	for i := 0; i < period.Days(); i++ {
		day := period.Day(i)
		for inIdx < len(pos.ins) && !pos.ins[inIdx].ArrivalDate.After(day) {
			balance += pos.ins[inIdx].ArrivedQty
			inIdx++
		}
		for outIdx < len(pos.outs) && !pos.outs[outIdx].OrderDate.After(day) {
			balance -= pos.outs[outIdx].OrderedQty
			outIdx++
		}
		balances[i] = balance
	}

	return balances, nil
}
