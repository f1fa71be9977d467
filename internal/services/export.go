package services

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/codyseavey/shoprank/internal/models"
)

// TopRankingsSheet is the worksheet name of the top rankings export
const TopRankingsSheet = "Top Rankings"

var topRankingsHeader = []interface{}{
	"Rank", "Rank Change", "Product", "Brand", "Platform",
	"Price", "Original Price", "Discount Rate", "Rating", "Reviews", "URL",
}

// WriteRankingsXLSX writes ranking rows as a single-sheet workbook to w
func WriteRankingsXLSX(w io.Writer, rows []models.RankingRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TopRankingsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(TopRankingsSheet, "A1", &topRankingsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(TopRankingsSheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			r.Rank,
			optionalInt(r.RankChange),
			r.ProductName,
			optionalString(r.Brand),
			r.PlatformName,
			r.Price.StringFixed(2),
			optionalDecimal(r.OriginalPrice),
			optionalDecimal(r.DiscountRate),
			optionalDecimal(r.Rating),
			r.ReviewCount,
			r.ProductURL,
		}
		if err := f.SetSheetRow(TopRankingsSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func optionalInt(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func optionalString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func optionalDecimal(v decimal.NullDecimal) string {
	if !v.Valid {
		return ""
	}
	return v.Decimal.StringFixed(2)
}
