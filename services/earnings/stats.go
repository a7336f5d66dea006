package earnings

import (
	"pawhub/models"
	"pawhub/utils"
)

// GlobalStats aggregates the ledger across all providers of one kind for one
// month.
func (s *DefaultEarningsService) GlobalStats(kind models.ProviderKind, rawMonth string) (*models.GlobalStats, error) {
	if !kind.Valid() {
		return nil, utils.NewServiceError(utils.ErrValidation, "unknown provider kind")
	}
	month := models.CanonMonth(rawMonth)

	providers, err := s.ProviderRepo.ListByKind(kind)
	if err != nil {
		return nil, err
	}

	stats := &models.GlobalStats{
		Kind:      kind,
		Month:     month,
		Providers: len(providers),
	}
	for _, p := range providers {
		row, err := s.MonthRow(p.ID, month)
		if err != nil {
			return nil, err
		}
		stats.TotalBookings += row.BookingCount
		stats.CompletedBookings += row.Counts.Completed
		stats.TotalCommissionDa += row.TotalCommissionDa
		stats.CollectedDa += row.CollectedDa
		stats.RemainingDa += row.RemainingDa
	}
	return stats, nil
}
