package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/billing"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
	"github.com/wms/backend/internal/infrastructure/telemetry"
)

// StatementCache stores computed statements keyed by tenant and period.
// A nil statement with a nil error is a cache miss. Implementations must
// tolerate concurrent use.
type StatementCache interface {
	Get(ctx context.Context, tenantID uuid.UUID, period valueobject.Period) (*billing.Statement, error)
	Set(ctx context.Context, statement *billing.Statement) error
}

// StatementService computes billing statements from persisted tenant data.
// It loads the tenant's items, movement history, pricing, and ad-hoc
// charges, hands them to the domain calculator, and caches results for
// periods that can no longer change.
type StatementService struct {
	itemRepo     inventory.ItemRepository
	movementRepo inventory.StockMovementRepository
	pricingRepo  billing.PricingRepository
	adHocRepo    billing.AdHocChargeRepository
	calculator   *billing.StatementCalculator
	cache        StatementCache
	logger       *zap.Logger
}

// NewStatementService creates a new StatementService. The cache is
// optional; pass nil to compute every statement from scratch.
func NewStatementService(
	itemRepo inventory.ItemRepository,
	movementRepo inventory.StockMovementRepository,
	pricingRepo billing.PricingRepository,
	adHocRepo billing.AdHocChargeRepository,
	cache StatementCache,
	logger *zap.Logger,
) *StatementService {
	return &StatementService{
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		pricingRepo:  pricingRepo,
		adHocRepo:    adHocRepo,
		calculator:   billing.NewStatementCalculator(),
		cache:        cache,
		logger:       logger,
	}
}

// BuildStatement computes the statement for an arbitrary period.
func (s *StatementService) BuildStatement(ctx context.Context, tenantID uuid.UUID, period valueobject.Period) (*billing.Statement, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "billing_statement", "build",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrPeriod, period.String()))
	defer span.End()

	if cached := s.cacheGet(ctx, tenantID, period); cached != nil {
		telemetry.AddEvent(span, "statement_cache_hit")
		return cached, nil
	}

	input, err := s.loadInput(ctx, tenantID, period)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	statement, err := s.calculator.BuildStatement(*input)
	if err != nil {
		s.logger.Warn("Statement computation failed",
			zap.String("tenant_id", tenantID.String()),
			zap.String("period", period.String()),
			zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Statement computed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("period", period.String()),
		zap.Int64("shipments", statement.Fulfillment.ShipmentCount),
		zap.String("grand_total", statement.GrandTotal.String()))

	s.cacheSet(ctx, statement)
	return statement, nil
}

// BuildMonthlyStatement computes the statement for one calendar month.
func (s *StatementService) BuildMonthlyStatement(ctx context.Context, tenantID uuid.UUID, year int, month time.Month) (*billing.Statement, error) {
	if month < time.January || month > time.December {
		return nil, shared.NewDomainError(shared.ErrInvalidPeriod.Code, "Month must be between 1 and 12")
	}
	return s.BuildStatement(ctx, tenantID, valueobject.PeriodForMonth(year, month))
}

// MonthlySummary is one month's category totals on the annual view
type MonthlySummary struct {
	Month       int             `json:"month"`
	Fulfillment decimal.Decimal `json:"fulfillment"`
	Storage     decimal.Decimal `json:"storage"`
	Transport   decimal.Decimal `json:"transport"`
	Handling    decimal.Decimal `json:"handling"`
	Consumable  decimal.Decimal `json:"consumable"`
	Total       decimal.Decimal `json:"total"`
}

// AnnualSummary aggregates twelve monthly statements
type AnnualSummary struct {
	TenantID uuid.UUID        `json:"tenant_id"`
	Year     int              `json:"year"`
	Months   []MonthlySummary `json:"months"`
	Total    decimal.Decimal  `json:"total"`
}

// BuildAnnualSummary computes category totals for every month of the year.
// Loading happens once per month; cached months are reused.
func (s *StatementService) BuildAnnualSummary(ctx context.Context, tenantID uuid.UUID, year int) (*AnnualSummary, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "billing_statement", "annual_summary",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
		telemetry.WithAttribute("year", year))
	defer span.End()

	summary := &AnnualSummary{
		TenantID: tenantID,
		Year:     year,
		Months:   make([]MonthlySummary, 0, 12),
		Total:    decimal.Zero,
	}

	for month := time.January; month <= time.December; month++ {
		statement, err := s.BuildStatement(ctx, tenantID, valueobject.PeriodForMonth(year, month))
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		summary.Months = append(summary.Months, MonthlySummary{
			Month:       int(month),
			Fulfillment: statement.Fulfillment.Total,
			Storage:     statement.Storage.Total,
			Transport:   statement.Transport.Total,
			Handling:    statement.Handling.Total,
			Consumable:  statement.Consumable.Total,
			Total:       statement.GrandTotal,
		})
		summary.Total = summary.Total.Add(statement.GrandTotal)
	}

	return summary, nil
}

func (s *StatementService) loadInput(ctx context.Context, tenantID uuid.UUID, period valueobject.Period) (*billing.StatementInput, error) {
	pricing, err := s.pricingRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("Failed to load pricing", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return nil, err
	}

	items, err := s.itemRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("Failed to load items", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return nil, err
	}

	// Movements are loaded unfiltered: balances on any statement day depend
	// on the full history before it.
	stockIn, err := s.movementRepo.ListStockIn(ctx, tenantID)
	if err != nil {
		s.logger.Error("Failed to load stock-in events", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return nil, err
	}

	stockOut, err := s.movementRepo.ListStockOut(ctx, tenantID)
	if err != nil {
		s.logger.Error("Failed to load stock-out events", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return nil, err
	}

	adHoc, err := s.adHocRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("Failed to load ad-hoc charges", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return nil, err
	}

	return &billing.StatementInput{
		TenantID:     tenantID,
		Period:       period,
		Pricing:      *pricing,
		Items:        items,
		StockIn:      stockIn,
		StockOut:     stockOut,
		AdHocCharges: adHoc,
	}, nil
}

// periodClosed reports whether the period ended before today (UTC). Only
// closed periods are safe to cache: an open period's statement changes as
// movements arrive.
func periodClosed(period valueobject.Period) bool {
	today := valueobject.DateOf(time.Now().UTC())
	return period.End().Before(today)
}

func (s *StatementService) cacheGet(ctx context.Context, tenantID uuid.UUID, period valueobject.Period) *billing.Statement {
	if s.cache == nil || !periodClosed(period) {
		return nil
	}
	statement, err := s.cache.Get(ctx, tenantID, period)
	if err != nil {
		// Cache trouble never fails the request
		s.logger.Warn("Statement cache read failed",
			zap.String("tenant_id", tenantID.String()),
			zap.String("period", period.String()),
			zap.Error(err))
		return nil
	}
	return statement
}

func (s *StatementService) cacheSet(ctx context.Context, statement *billing.Statement) {
	if s.cache == nil || !periodClosed(statement.Period) {
		return
	}
	if err := s.cache.Set(ctx, statement); err != nil {
		s.logger.Warn("Statement cache write failed",
			zap.String("tenant_id", statement.TenantID.String()),
			zap.String("period", statement.Period.String()),
			zap.Error(err))
	}
}
