package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dmarchal/game-price-comparator/internal/models"
)

const sheetName = "Comparison"

var headers = []string{
	"Game",
	"Steam App ID",
	"Steam Price (EUR)",
	"Marketplace Price (EUR)",
	"Merchant",
	"Saving (EUR)",
	"Saving (%)",
	"Marketplace URL",
}

// DefaultFilename returns the timestamped report name for a run.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("comparaison_prix_%s.xlsx", now.Format("20060102_150405"))
}

// SortRows orders rows by percent saving, best deal first. Rows whose
// saving is undefined sort last, keeping their relative order so the
// report stays deterministic.
func SortRows(rows []models.ComparisonRow) []models.ComparisonRow {
	sorted := make([]models.ComparisonRow, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := sorted[i].Savings.Percent, sorted[j].Savings.Percent
		if pi == nil {
			return false
		}
		if pj == nil {
			return true
		}
		return *pi > *pj
	})

	return sorted
}

// WriteXLSX persists the comparison as a spreadsheet, sorted with
// SortRows. Numeric cells stay empty for absent amounts so incomplete
// games remain visible without faking a zero. Amounts are rounded to
// two decimals here, at the presentation layer only.
func WriteXLSX(filename string, rows []models.ComparisonRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range SortRows(rows) {
		values := []interface{}{
			row.Game.Title,
			row.Game.AppID,
			roundedOrNil(row.Reference.Amount),
			roundedOrNil(row.Quote.Amount),
			row.Quote.Merchant,
			roundedOrNil(row.Savings.Absolute),
			roundedOrNil(row.Savings.Percent),
			row.Quote.SourceURL,
		}

		for col, value := range values {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

func roundedOrNil(value *float64) interface{} {
	if value == nil {
		return nil
	}
	return math.Round(*value*100) / 100
}
