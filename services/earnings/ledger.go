package earnings

import (
	"fmt"
	"time"

	bookingRepo "pawhub/database/repository/booking"
	ledgerRepo "pawhub/database/repository/ledger"
	providerRepo "pawhub/database/repository/provider"
	"pawhub/models"
	"pawhub/utils"
)

// EarningsService defines the commission ledger: derived monthly rows, admin
// collection operations and rollups.
type EarningsService interface {
	// MonthRow computes the ledger row for one provider-month. The month
	// accepts loose formats ("2024/3") and is canonicalised to "YYYY-MM".
	MonthRow(providerID, rawMonth string) (*models.MonthlyEarnings, error)
	// History computes the most recent n month rows, newest first.
	History(providerID string, n int) ([]models.MonthlyEarnings, error)
	// Arrears sums unpaid commission over all months strictly before the
	// current one.
	Arrears(providerID string) (*models.ArrearsReport, error)
	// Adjustments returns the append-only mutation log for one provider-month.
	Adjustments(providerID, rawMonth string) ([]models.CollectionAdjustment, error)

	// CollectAll marks the month's full commission collected.
	CollectAll(adminID, providerID, rawMonth, note string) (*models.MonthlyEarnings, error)
	// Uncollect resets the month's collected amount to zero.
	Uncollect(adminID, providerID, rawMonth, note string) (*models.MonthlyEarnings, error)
	// SetCollected sets the collected amount, clamped to the month's total
	// commission.
	SetCollected(adminID, providerID, rawMonth string, amountDa int, note string) (*models.MonthlyEarnings, error)
	// AddCollected records a partial payment, clamped at the total due.
	AddCollected(adminID, providerID, rawMonth string, amountDa int, note string) (*models.MonthlyEarnings, error)
	// SubtractCollected backs out part of a recorded payment. Subtracting
	// more than was recorded fails without mutating anything.
	SubtractCollected(adminID, providerID, rawMonth string, amountDa int, note string) (*models.MonthlyEarnings, error)

	// GlobalStats aggregates the ledger across all providers of one kind.
	GlobalStats(kind models.ProviderKind, rawMonth string) (*models.GlobalStats, error)
	// ExportMonth renders the month's ledger for one provider kind as an
	// XLSX workbook.
	ExportMonth(kind models.ProviderKind, rawMonth string) ([]byte, error)
}

// DefaultEarningsService is the production implementation.
type DefaultEarningsService struct {
	BookingRepo  bookingRepo.BookingRepository
	ProviderRepo providerRepo.ProviderRepository
	LedgerRepo   ledgerRepo.LedgerRepository
}

// MonthRow computes the ledger row for one provider-month. Only COMPLETED
// bookings earn: cancelled and expired ones contribute to the counts but
// never to the money columns.
func (s *DefaultEarningsService) MonthRow(providerID, rawMonth string) (*models.MonthlyEarnings, error) {
	month := models.CanonMonth(rawMonth)
	from, to, err := models.MonthBounds(month)
	if err != nil {
		return nil, utils.NewServiceError(utils.ErrValidation, err.Error())
	}

	bookings, err := s.BookingRepo.ListByProviderBetween(providerID, from, to)
	if err != nil {
		return nil, err
	}

	row := buildRow(providerID, month, bookings)

	rec, err := s.LedgerRepo.GetRecord(providerID, month)
	if err != nil {
		return nil, err
	}
	applyRecord(row, rec)
	return row, nil
}

// buildRow folds a month's bookings into the derived ledger row.
func buildRow(providerID, month string, bookings []models.Booking) *models.MonthlyEarnings {
	row := &models.MonthlyEarnings{
		ProviderID:   providerID,
		Month:        month,
		BookingCount: len(bookings),
	}
	for _, b := range bookings {
		switch b.Status {
		case models.BookingPending, models.BookingPendingProCheck, models.BookingAwaitingConfirm:
			row.Counts.Pending++
		case models.BookingConfirmed:
			row.Counts.Confirmed++
		case models.BookingCompleted:
			row.Counts.Completed++
			row.TotalAmountDa += b.PriceDa
			row.TotalCommissionDa += b.CommissionDa
		case models.BookingCancelled:
			row.Counts.Cancelled++
		case models.BookingExpired:
			row.Counts.Expired++
		}
	}
	row.NetAmountDa = row.TotalAmountDa - row.TotalCommissionDa
	return row
}

// applyRecord merges the persisted collection state into the derived row.
func applyRecord(row *models.MonthlyEarnings, rec *models.CollectionRecord) {
	if rec != nil {
		row.CollectedDa = rec.AmountDa
	}
	row.RemainingDa = row.TotalCommissionDa - row.CollectedDa
	if row.RemainingDa < 0 {
		row.RemainingDa = 0
	}
	row.Collected = row.TotalCommissionDa > 0 && row.CollectedDa >= row.TotalCommissionDa
}

// History computes the most recent n month rows, newest first.
func (s *DefaultEarningsService) History(providerID string, n int) ([]models.MonthlyEarnings, error) {
	if n < 1 {
		n = 12
	}
	months := models.MonthsBack(time.Now(), n)
	rows := make([]models.MonthlyEarnings, 0, len(months))
	for _, m := range months {
		row, err := s.MonthRow(providerID, m)
		if err != nil {
			return nil, err
		}
		rows = append(rows, *row)
	}
	return rows, nil
}

// Arrears sums unpaid commission over all months strictly before the current
// one. The report is recomputed from bookings on every call, never stored.
func (s *DefaultEarningsService) Arrears(providerID string) (*models.ArrearsReport, error) {
	completed, err := s.BookingRepo.ListByProvider(providerID, models.BookingCompleted, 0)
	if err != nil {
		return nil, err
	}

	currentMonth := models.MonthKey(time.Now())
	months := map[string]bool{}
	for _, b := range completed {
		if len(b.ScheduledAt) < len(models.MonthLayout) {
			continue
		}
		m := b.ScheduledAt[:len(models.MonthLayout)]
		if m < currentMonth {
			months[m] = true
		}
	}

	report := &models.ArrearsReport{ProviderID: providerID}
	keys := sortedKeys(months)
	for _, m := range keys {
		row, err := s.MonthRow(providerID, m)
		if err != nil {
			return nil, err
		}
		if row.RemainingDa > 0 {
			report.ArrearsDa += row.RemainingDa
			report.Months = append(report.Months, *row)
		}
	}
	return report, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	// Month keys sort lexicographically in chronological order.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// Adjustments returns the append-only mutation log for one provider-month.
func (s *DefaultEarningsService) Adjustments(providerID, rawMonth string) ([]models.CollectionAdjustment, error) {
	return s.LedgerRepo.ListAdjustments(providerID, models.CanonMonth(rawMonth))
}

// ensureProvider verifies the provider exists before ledger work.
func (s *DefaultEarningsService) ensureProvider(providerID string) error {
	p, err := s.ProviderRepo.GetByID(providerID)
	if err != nil {
		return fmt.Errorf("failed to fetch provider: %w", err)
	}
	if p == nil {
		return utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("provider %s not found", providerID))
	}
	return nil
}
