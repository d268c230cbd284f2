package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateConsumables(t *testing.T) {
	items := []ConsumableItem{
		{Name: "Poly bag", PricePerShipment: dec("0.20"), Unit: "pcs"},
		{Name: "Tape", PricePerShipment: dec("0.10"), Unit: "roll"},
	}

	charge := CalculateConsumables(50, items, nil)

	assert.True(t, charge.PerShipmentRate.Equal(dec("0.30")))
	assert.True(t, charge.RateBasedTotal.Equal(dec("15.00")), "got %s", charge.RateBasedTotal)
	assert.True(t, charge.Total.Equal(dec("15.00")))

	require.Len(t, charge.Lines, 2)
	assert.Equal(t, "Poly bag", charge.Lines[0].Name)
	assert.Equal(t, int64(50), charge.Lines[0].ShipmentCount)
	assert.True(t, charge.Lines[0].Cost.Equal(dec("10.00")))
	assert.True(t, charge.Lines[1].Cost.Equal(dec("5.00")))
}

func TestCalculateConsumables_NoShipments(t *testing.T) {
	items := []ConsumableItem{
		{Name: "Poly bag", PricePerShipment: dec("0.20"), Unit: "pcs"},
	}

	charge := CalculateConsumables(0, items, nil)
	assert.True(t, charge.RateBasedTotal.IsZero())
	assert.True(t, charge.Total.IsZero())
}

func TestCalculateConsumables_AdHocAddedOnTop(t *testing.T) {
	tenantID := uuid.New()
	shrinkWrap, err := NewAdHocCharge(tenantID, date(2024, 5, 16), ChargeConsumable, "Shrink wrap", dec("12.50"))
	require.NoError(t, err)
	relabel, err := NewAdHocCharge(tenantID, date(2024, 5, 15), ChargeHandling, "Relabelling", dec("99.00"))
	require.NoError(t, err)

	charge := CalculateConsumables(10, []ConsumableItem{
		{Name: "Poly bag", PricePerShipment: dec("0.20"), Unit: "pcs"},
	}, []*AdHocCharge{shrinkWrap, relabel})

	assert.True(t, charge.AdHocTotal.Equal(dec("12.50")))
	assert.True(t, charge.Total.Equal(dec("14.50")), "got %s", charge.Total)
}
