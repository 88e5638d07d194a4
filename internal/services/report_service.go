package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"grana/internal/analytics"
	"grana/internal/cache"
	apperrors "grana/internal/errors"
)

// reportService derives dashboard aggregates from the ledger. Year snapshots
// are fetched once and cached with a short TTL; mutating services call
// InvalidateYear so a write is never shadowed by a stale aggregate for
// longer than it takes the next read to refetch.
type reportService struct {
	db        *gorm.DB
	snapshots *cache.TTL[analytics.Snapshot]
}

// NewReportService creates a new ReportServicer with the given snapshot TTL.
func NewReportService(db *gorm.DB, ttl time.Duration) ReportServicer {
	return &reportService{
		db:        db,
		snapshots: cache.NewTTL[analytics.Snapshot](ttl),
	}
}

// snapshot fetches one year of a user's ledger, serving from cache when the
// entry is still fresh.
func (s *reportService) snapshot(userID string, year int) (analytics.Snapshot, error) {
	key := cache.YearKey(userID, year)
	if snap, ok := s.snapshots.Get(key); ok {
		return snap, nil
	}

	snap := analytics.Snapshot{Year: year}
	if err := s.db.Where("user_id = ? AND year = ?", userID, year).Find(&snap.Expenses).Error; err != nil {
		return snap, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Where("user_id = ? AND year = ?", userID, year).Find(&snap.Incomes).Error; err != nil {
		return snap, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.snapshots.Set(key, snap)
	return snap, nil
}

// InvalidateYear drops the cached snapshot for a (user, year).
func (s *reportService) InvalidateYear(userID string, year int) {
	s.snapshots.Delete(cache.YearKey(userID, year))
}

// MonthlySummary returns the twelve monthly aggregates of a year.
func (s *reportService) MonthlySummary(userID string, year int) ([]analytics.MonthAggregate, error) {
	snap, err := s.snapshot(userID, year)
	if err != nil {
		return nil, err
	}
	totals := analytics.MonthlyTotals(snap)
	return totals[:], nil
}

// Interest returns one month's interest breakdown.
func (s *reportService) Interest(userID string, year, month int) (*analytics.InterestBreakdown, error) {
	snap, err := s.snapshot(userID, year)
	if err != nil {
		return nil, err
	}
	breakdown := analytics.MonthInterest(snap.MonthExpenses(month))
	return &breakdown, nil
}

// Categories returns one month's spending per normalized category, capped at
// limit entries with the overflow merged into "Outros".
func (s *reportService) Categories(userID string, year, month, limit int) (map[string]decimal.Decimal, error) {
	snap, err := s.snapshot(userID, year)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = analytics.TopFlatCategories
	}
	return analytics.CompactTop(analytics.CategoryTotals(snap.MonthExpenses(month)), limit), nil
}

// Projection returns the forward installment commitment series starting at
// (fromMonth, fromYear), fetching as many year snapshots as the horizon
// spans.
func (s *reportService) Projection(userID string, fromMonth, fromYear, horizon int) (*analytics.Projection, error) {
	if horizon <= 0 {
		horizon = analytics.DefaultProjectionMonths
	}

	lastYear := fromYear + (fromMonth+horizon-1)/12
	snapshots := make([]analytics.Snapshot, 0, lastYear-fromYear+1)
	for year := fromYear; year <= lastYear; year++ {
		snap, err := s.snapshot(userID, year)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}

	proj := analytics.InstallmentProjection(snapshots, fromMonth, fromYear, horizon)
	return &proj, nil
}

// Growth returns the filtered month-over-month growth series per category.
func (s *reportService) Growth(userID string, year int, filter analytics.FilterState) (map[string][11]decimal.Decimal, error) {
	snap, err := s.snapshot(userID, year)
	if err != nil {
		return nil, err
	}

	series := make(map[string][11]decimal.Decimal)
	for category, values := range analytics.MonthlyCategoryTotals(snap) {
		series[category] = analytics.GrowthSeries(values)
	}
	return analytics.ApplyFilter(series, filter), nil
}
