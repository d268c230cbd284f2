package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustItem(t *testing.T, tenantID uuid.UUID, sku, warehouse string, startingStock int64) *Item {
	t.Helper()
	item, err := NewItem(tenantID, sku, warehouse, UOMCarton)
	require.NoError(t, err)
	return item.WithStartingStock(startingStock)
}

func mustStockIn(t *testing.T, tenantID uuid.UUID, sku, warehouse string, day time.Time, qty int64) *StockInEvent {
	t.Helper()
	e, err := NewStockInEvent(tenantID, sku, warehouse, day, qty, UOMCarton)
	require.NoError(t, err)
	return e
}

func mustStockOut(t *testing.T, tenantID uuid.UUID, sku, warehouse string, day time.Time, qty int64, status FulfillmentStatus) *StockOutEvent {
	t.Helper()
	e, err := NewStockOutEvent(tenantID, sku, warehouse, day, qty, UOMCarton, status)
	require.NoError(t, err)
	return e
}

func TestStockLedger_BalanceAsOf(t *testing.T) {
	tenantID := uuid.New()
	item := mustItem(t, tenantID, "SKU-001", "Sabah", 100)

	ins := []*StockInEvent{
		mustStockIn(t, tenantID, "SKU-001", "Sabah", date(2024, 5, 10), 50),
		mustStockIn(t, tenantID, "SKU-001", "Sabah", date(2024, 5, 20), 25),
	}
	outs := []*StockOutEvent{
		mustStockOut(t, tenantID, "SKU-001", "Sabah", date(2024, 5, 15), 30, StatusPending),
	}

	ledger, err := NewStockLedger([]*Item{item}, ins, outs)
	require.NoError(t, err)

	tests := []struct {
		asOf    time.Time
		balance int64
	}{
		{date(2024, 5, 1), 100},          // before any movements
		{date(2024, 5, 9), 100},          // day before first arrival
		{date(2024, 5, 10), 150},         // arrival day counts (inclusive cutoff)
		{date(2024, 5, 15), 120},         // pending order still reduces balance
		{date(2024, 5, 20), 145},         // second arrival
		{date(2024, 5, 31), 145},         // after all movements
		{date(2024, 5, 31).Add(5 * time.Hour), 145}, // intra-day time ignored
	}

	for _, tt := range tests {
		balance, err := ledger.BalanceAsOf("SKU-001", "Sabah", tt.asOf)
		require.NoError(t, err)
		assert.Equal(t, tt.balance, balance, "as of %s", tt.asOf)
	}
}

func TestStockLedger_WarehouseIsolation(t *testing.T) {
	tenantID := uuid.New()
	sabah := mustItem(t, tenantID, "SKU-001", "Sabah", 10)
	sarawak := mustItem(t, tenantID, "SKU-001", "Sarawak", 20)

	ins := []*StockInEvent{
		mustStockIn(t, tenantID, "SKU-001", "Sarawak", date(2024, 5, 5), 7),
	}

	ledger, err := NewStockLedger([]*Item{sabah, sarawak}, ins, nil)
	require.NoError(t, err)

	balance, err := ledger.BalanceAsOf("SKU-001", "Sabah", date(2024, 5, 31))
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance, "Sabah must not see Sarawak arrivals")

	balance, err = ledger.BalanceAsOf("SKU-001", "Sarawak", date(2024, 5, 31))
	require.NoError(t, err)
	assert.Equal(t, int64(27), balance)
}

// The difference between two balances must equal the net movement between
// the two cutoffs: balance(d2) - balance(d1) = arrivals(d1,d2] - orders(d1,d2].
func TestStockLedger_DeltaEqualsNetMovement(t *testing.T) {
	tenantID := uuid.New()
	item := mustItem(t, tenantID, "SKU-001", "Sabah", 500)

	ins := []*StockInEvent{
		mustStockIn(t, tenantID, "SKU-001", "Sabah", date(2024, 5, 3), 40),
		mustStockIn(t, tenantID, "SKU-001", "Sabah", date(2024, 5, 12), 60),
		mustStockIn(t, tenantID, "SKU-001", "Sabah", date(2024, 5, 28), 15),
	}
	outs := []*StockOutEvent{
		mustStockOut(t, tenantID, "SKU-001", "Sabah", date(2024, 5, 7), 20, StatusDelivered),
		mustStockOut(t, tenantID, "SKU-001", "Sabah", date(2024, 5, 12), 35, StatusPending),
		mustStockOut(t, tenantID, "SKU-001", "Sabah", date(2024, 5, 30), 10, StatusSelfCollect),
	}

	ledger, err := NewStockLedger([]*Item{item}, ins, outs)
	require.NoError(t, err)

	d1 := date(2024, 5, 7)
	d2 := date(2024, 5, 28)

	b1, err := ledger.BalanceAsOf("SKU-001", "Sabah", d1)
	require.NoError(t, err)
	b2, err := ledger.BalanceAsOf("SKU-001", "Sabah", d2)
	require.NoError(t, err)

	// (d1, d2]: arrivals 60+15=75, orders 35
	assert.Equal(t, int64(75-35), b2-b1)
}

func TestStockLedger_DailyBalances(t *testing.T) {
	tenantID := uuid.New()
	item := mustItem(t, tenantID, "SKU-001", "Sabah", 0)

	ins := []*StockInEvent{
		mustStockIn(t, tenantID, "SKU-001", "Sabah", date(2024, 5, 2), 100),
	}
	outs := []*StockOutEvent{
		mustStockOut(t, tenantID, "SKU-001", "Sabah", date(2024, 5, 4), 40, StatusDelivered),
	}

	ledger, err := NewStockLedger([]*Item{item}, ins, outs)
	require.NoError(t, err)

	period := valueobject.MustNewPeriod(date(2024, 5, 1), date(2024, 5, 5))
	balances, err := ledger.DailyBalances("SKU-001", "Sabah", period)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 100, 100, 60, 60}, balances)
}

// Daily stepping must agree with per-day full reconstruction.
func TestStockLedger_DailyBalancesMatchBalanceAsOf(t *testing.T) {
	tenantID := uuid.New()
	item := mustItem(t, tenantID, "SKU-001", "Sabah", 250)

	ins := []*StockInEvent{
		mustStockIn(t, tenantID, "SKU-001", "Sabah", date(2024, 4, 20), 30), // before period
		mustStockIn(t, tenantID, "SKU-001", "Sabah", date(2024, 5, 6), 45),
		mustStockIn(t, tenantID, "SKU-001", "Sabah", date(2024, 5, 6), 5), // same-day pair
		mustStockIn(t, tenantID, "SKU-001", "Sabah", date(2024, 6, 1), 99), // after period
	}
	outs := []*StockOutEvent{
		mustStockOut(t, tenantID, "SKU-001", "Sabah", date(2024, 5, 1), 12, StatusPending),
		mustStockOut(t, tenantID, "SKU-001", "Sabah", date(2024, 5, 18), 80, StatusDelivered),
	}

	ledger, err := NewStockLedger([]*Item{item}, ins, outs)
	require.NoError(t, err)

	period := valueobject.PeriodForMonth(2024, time.May)
	balances, err := ledger.DailyBalances("SKU-001", "Sabah", period)
	require.NoError(t, err)
	require.Len(t, balances, 31)

	for i := 0; i < period.Days(); i++ {
		expected, err := ledger.BalanceAsOf("SKU-001", "Sabah", period.Day(i))
		require.NoError(t, err)
		assert.Equal(t, expected, balances[i], "day %s", period.Day(i))
	}
}

func TestNewStockLedger_UnknownItem(t *testing.T) {
	tenantID := uuid.New()
	item := mustItem(t, tenantID, "SKU-001", "Sabah", 0)

	orphan := mustStockIn(t, tenantID, "SKU-999", "Sabah", date(2024, 5, 1), 10)

	_, err := NewStockLedger([]*Item{item}, []*StockInEvent{orphan}, nil)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.ErrUnknownItem.Code, domainErr.Code)
}

func TestNewStockLedger_DuplicateItem(t *testing.T) {
	tenantID := uuid.New()
	a := mustItem(t, tenantID, "SKU-001", "Sabah", 0)
	b := mustItem(t, tenantID, "SKU-001", "Sabah", 5)

	_, err := NewStockLedger([]*Item{a, b}, nil, nil)
	assert.Error(t, err)
}

func TestStockLedger_BalanceAsOf_UnknownPosition(t *testing.T) {
	ledger, err := NewStockLedger(nil, nil, nil)
	require.NoError(t, err)

	_, err = ledger.BalanceAsOf("SKU-001", "Sabah", date(2024, 5, 1))
	assert.Error(t, err)
}

func TestStockLedger_ItemsDeterministicOrder(t *testing.T) {
	tenantID := uuid.New()
	items := []*Item{
		mustItem(t, tenantID, "SKU-B", "Sarawak", 0),
		mustItem(t, tenantID, "SKU-A", "Sarawak", 0),
		mustItem(t, tenantID, "SKU-A", "Sabah", 0),
	}

	ledger, err := NewStockLedger(items, nil, nil)
	require.NoError(t, err)

	got := ledger.Items()
	require.Len(t, got, 3)
	assert.Equal(t, StockKey{"SKU-A", "Sabah"}, got[0].Key())
	assert.Equal(t, StockKey{"SKU-A", "Sarawak"}, got[1].Key())
	assert.Equal(t, StockKey{"SKU-B", "Sarawak"}, got[2].Key())
}
