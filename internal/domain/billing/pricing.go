package billing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/shared"
)

// FulfillmentTier is one step of the volume discount ladder. The tier
// applies when the monthly shipment count reaches MinMonthlyVolume; the
// rate then applies to every shipment in the month (retroactive discount,
// not marginal).
type FulfillmentTier struct {
	MinMonthlyVolume int64           `json:"min_monthly_volume"`
	PricePerShipment decimal.Decimal `json:"price_per_shipment"`
}

// StorageRates prices warehouse space per pallet-month. PalletVolumeCBM
// converts accumulated stock volume into pallet counts; zero means storage
// is not billed.
type StorageRates struct {
	RatePerPalletPerMonth decimal.Decimal `json:"rate_per_pallet_per_month"`
	PalletVolumeCBM       decimal.Decimal `json:"pallet_volume_cbm"`
}

// CourierRates prices door delivery by weight. The flat within-state rate
// caps the computed cost for shipments in the 25-50 kg band.
type CourierRates struct {
	First3Kg                    decimal.Decimal `json:"first_3kg"`
	PerAdditionalKg             decimal.Decimal `json:"per_additional_kg"`
	FlatRate25To50KgWithinState decimal.Decimal `json:"flat_rate_25_to_50kg_within_state"`
}

// OceanFreightRates are quoted per CBM on the two sea lanes the operator
// serves. They are reference rates applied manually, never by the engine.
type OceanFreightRates struct {
	KlangToSibuPerCBM     decimal.Decimal `json:"klang_to_sibu_per_cbm"`
	KlangToKinabaluPerCBM decimal.Decimal `json:"klang_to_kinabalu_per_cbm"`
}

// TransportRates groups all transport pricing
type TransportRates struct {
	Courier      CourierRates      `json:"courier"`
	OceanFreight OceanFreightRates `json:"ocean_freight"`
}

// InboundOutboundRates price handling per unit moved in or out
type InboundOutboundRates struct {
	PerPallet decimal.Decimal `json:"per_pallet"`
	PerCarton decimal.Decimal `json:"per_carton"`
	PerUnit   decimal.Decimal `json:"per_unit"`
}

// ManpowerRates are reference rates for palletize/loose container and
// truck unloading jobs, billed as ad-hoc handling charges when incurred.
type ManpowerRates struct {
	Palletize40Ft     decimal.Decimal `json:"palletize_40ft"`
	Palletize20Ft     decimal.Decimal `json:"palletize_20ft"`
	Palletize5To10Ton decimal.Decimal `json:"palletize_5_to_10_ton"`
	Palletize1To3Ton  decimal.Decimal `json:"palletize_1_to_3_ton"`
	Loose40Ft         decimal.Decimal `json:"loose_40ft"`
	Loose20Ft         decimal.Decimal `json:"loose_20ft"`
	Loose5To10Ton     decimal.Decimal `json:"loose_5_to_10_ton"`
	Loose1To3Ton      decimal.Decimal `json:"loose_1_to_3_ton"`
}

// HandlingRates groups all handling pricing
type HandlingRates struct {
	Manpower        ManpowerRates        `json:"manpower"`
	InboundOutbound InboundOutboundRates `json:"inbound_outbound"`
}

// ConsumableItem is a packing material billed per shipment
type ConsumableItem struct {
	Name             string          `json:"name"`
	PricePerShipment decimal.Decimal `json:"price_per_shipment"`
	Unit             string          `json:"unit"`
}

// PricingConfig is the per-organization rate table. It is pure data,
// managed outside the engine; zero rates mean the corresponding charge
// simply does not apply.
type PricingConfig struct {
	FulfillmentTiers []FulfillmentTier `json:"fulfillment_tiers"`
	ConsumableItems  []ConsumableItem  `json:"consumable_items"`
	Storage          StorageRates      `json:"storage"`
	Transport        TransportRates    `json:"transport"`
	Handling         HandlingRates     `json:"handling"`
}

// Validate checks the configuration for structural faults. Zero values are
// always acceptable (they disable the charge); negative rates are not.
func (p PricingConfig) Validate() error {
	for i, tier := range p.FulfillmentTiers {
		if tier.MinMonthlyVolume < 0 {
			return invalidPricing(fmt.Sprintf("fulfillment tier %d has negative minimum volume", i))
		}
		if tier.PricePerShipment.IsNegative() {
			return invalidPricing(fmt.Sprintf("fulfillment tier %d has negative price", i))
		}
	}
	for i, item := range p.ConsumableItems {
		if item.Name == "" {
			return invalidPricing(fmt.Sprintf("consumable item %d has no name", i))
		}
		if item.PricePerShipment.IsNegative() {
			return invalidPricing(fmt.Sprintf("consumable item %q has negative price", item.Name))
		}
	}
	if p.Storage.RatePerPalletPerMonth.IsNegative() || p.Storage.PalletVolumeCBM.IsNegative() {
		return invalidPricing("storage rates cannot be negative")
	}
	if p.Transport.Courier.First3Kg.IsNegative() ||
		p.Transport.Courier.PerAdditionalKg.IsNegative() ||
		p.Transport.Courier.FlatRate25To50KgWithinState.IsNegative() {
		return invalidPricing("courier rates cannot be negative")
	}
	if p.Handling.InboundOutbound.PerPallet.IsNegative() ||
		p.Handling.InboundOutbound.PerCarton.IsNegative() ||
		p.Handling.InboundOutbound.PerUnit.IsNegative() {
		return invalidPricing("handling rates cannot be negative")
	}
	return nil
}

func invalidPricing(detail string) error {
	return shared.NewDomainError(shared.ErrInvalidPricing.Code, "Pricing configuration is invalid: "+detail)
}

// RateForVolume selects the fulfillment rate for a monthly shipment count:
// the highest-volume tier whose minimum the count reaches, boundary
// inclusive. Returns zero when no tier qualifies.
func RateForVolume(tiers []FulfillmentTier, shipmentCount int64) decimal.Decimal {
	sorted := make([]FulfillmentTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinMonthlyVolume > sorted[j].MinMonthlyVolume
	})
	for _, tier := range sorted {
		if shipmentCount >= tier.MinMonthlyVolume {
			return tier.PricePerShipment
		}
	}
	return decimal.Zero
}
