package earnings

import (
	"fmt"

	"pawhub/models"
	"pawhub/utils"

	"github.com/xuri/excelize/v2"
)

// ExportMonth renders the month's ledger for one provider kind as an XLSX
// workbook, one row per provider.
func (s *DefaultEarningsService) ExportMonth(kind models.ProviderKind, rawMonth string) ([]byte, error) {
	if !kind.Valid() {
		return nil, utils.NewServiceError(utils.ErrValidation, "unknown provider kind")
	}
	month := models.CanonMonth(rawMonth)

	providers, err := s.ProviderRepo.ListByKind(kind)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := fmt.Sprintf("Commissions %s", month)
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"Provider", "Kind", "Bookings", "Completed", "Total (DA)", "Commission (DA)", "Collected (DA)", "Remaining (DA)", "Settled"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	rowIndex := 2
	for _, p := range providers {
		row, err := s.MonthRow(p.ID, month)
		if err != nil {
			return nil, err
		}

		values := []interface{}{
			p.DisplayName,
			string(p.Kind),
			row.BookingCount,
			row.Counts.Completed,
			row.TotalAmountDa,
			row.TotalCommissionDa,
			row.CollectedDa,
			row.RemainingDa,
			row.Collected,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowIndex)
			f.SetCellValue(sheetName, cell, v)
		}
		rowIndex++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
