// Package export writes the quotes list view to downloadable files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jsamuelsen/associate-quotes/internal/domain"
	"github.com/jsamuelsen/associate-quotes/internal/view"
)

const (
	// ContentType is the MIME type of XLSX workbooks.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// SheetName is the worksheet holding the quotes.
	SheetName = "Quotes"

	defaultSheet = "Sheet1"

	// amountFormat groups rupees the Indian way (lakh, crore) to match the
	// list view: 12,34,567.50 rather than 1,234,567.50.
	amountFormat = `[>=10000000]"₹"##\,##\,##\,##0.00;[>=100000]"₹"##\,##\,##0.00;"₹"##,##0.00`
)

// Headings are the exported columns: the table columns without Actions.
var Headings = view.Columns[:len(view.Columns)-1]

// WriteQuotes writes quotes, already filtered, as an XLSX workbook to w.
// Cells carry the same text as the list view except Quote Value, which is
// numeric so the sheet can total it. Invalid amounts are written as the placeholder.
func WriteQuotes(w io.Writer, quotes []domain.Quote) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "94A3B8", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	numFmt := amountFormat

	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}

	header := make([]any, len(Headings))
	for i, h := range Headings {
		header[i] = h
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	last, _ := excelize.CoordinatesToCellName(len(Headings), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i := range quotes {
		rowNum := i + 2
		r := view.NewRow(i+1, &quotes[i])

		var amount any = view.Placeholder
		if quotes[i].TotalAmount.Valid {
			amount = quotes[i].TotalAmount.Value.InexactFloat64()
		}

		cells := []any{
			r.Number,
			r.QuoteCode,
			r.QuoteDate,
			r.CompanyName.Text,
			r.PrimaryCustomer.Text,
			r.Origin,
			r.ServiceType,
			r.QuoteCreator,
			amount,
			r.Status.Label,
			r.Approved,
			r.Ageing,
			r.CreatedBy,
		}

		start, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(SheetName, start, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", rowNum, err)
		}

		amountCell, _ := excelize.CoordinatesToCellName(amountColumn, rowNum)
		if err := f.SetCellStyle(SheetName, amountCell, amountCell, amountStyle); err != nil {
			return fmt.Errorf("styling row %d: %w", rowNum, err)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(Headings))
	if err := f.SetColWidth(SheetName, "A", lastCol, 18); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

// amountColumn is the 1-based position of Quote Value.
const amountColumn = 9
