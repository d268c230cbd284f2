package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

// ChargeCategory classifies a manually entered charge
type ChargeCategory string

const (
	ChargeHandling   ChargeCategory = "Handling"
	ChargeConsumable ChargeCategory = "Consumable"
)

// String returns the string representation
func (c ChargeCategory) String() string {
	return string(c)
}

// IsValid returns true if the category is valid
func (c ChargeCategory) IsValid() bool {
	return c == ChargeHandling || c == ChargeConsumable
}

// AdHocCharge is a manually entered cost that bypasses the rate tables.
// It is summed straight into its category's total for the period
// containing its date.
type AdHocCharge struct {
	shared.TenantEntity
	Date        time.Time
	Category    ChargeCategory
	Description string
	Amount      decimal.Decimal
}

// NewAdHocCharge creates an ad-hoc charge with validation
func NewAdHocCharge(tenantID uuid.UUID, day time.Time, category ChargeCategory, description string, amount decimal.Decimal) (*AdHocCharge, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHARGE_CATEGORY", "Charge category must be Handling or Consumable")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Charge amount cannot be negative")
	}
	return &AdHocCharge{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Date:         valueobject.DateOf(day),
		Category:     category,
		Description:  description,
		Amount:       amount,
	}, nil
}

// sumAdHoc totals the charges of one category
func sumAdHoc(charges []*AdHocCharge, category ChargeCategory) decimal.Decimal {
	total := decimal.Zero
	for _, c := range charges {
		if c.Category == category {
			total = total.Add(c.Amount)
		}
	}
	return total
}
