// Package billing implements the statement computation engine for a
// multi-tenant warehouse operation. It converts an organization's
// append-only stock movement history and ad-hoc charges into itemized
// cost statements over an arbitrary date range.
//
// Charge categories:
//   - Fulfillment: per-shipment pick-and-pack fee, tiered by monthly shipment volume
//   - Storage: daily stock balance x item CBM, billed per pallet-month
//   - Transport: courier charges for delivered shipments, by weight band
//   - Handling: inbound/outbound per-carton or per-unit fees plus ad-hoc charges
//   - Consumable: per-shipment material costs plus ad-hoc charges
//
// The engine is purely computational: calculators operate on immutable
// snapshots passed in by the caller, never read the clock, and produce
// identical output for identical input. Persistence and presentation live
// in outer layers.
//
// Key types:
//   - PricingConfig: per-organization rate table
//   - StatementCalculator: composes the five calculators over a Period
//   - Statement: the itemized result with per-category detail and totals
//
// The billing domain reads from the inventory domain's StockLedger for
// point-in-time balance reconstruction.
package billing
