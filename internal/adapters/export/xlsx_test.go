package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jsamuelsen/associate-quotes/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestHeadings(t *testing.T) {
	require.Len(t, Headings, 13)
	assert.Equal(t, "S.No", Headings[0])
	assert.Equal(t, "Quote Value", Headings[amountColumn-1])
	assert.Equal(t, "Created By", Headings[len(Headings)-1])
}

func TestWriteQuotes(t *testing.T) {
	quotes := []domain.Quote{
		{
			QuoteID:     "1",
			QuoteCode:   strPtr("QT-001"),
			QuoteDate:   "2024-03-05",
			CompanyName: "Acme",
			TotalAmount: domain.NewAmount(decimal.RequireFromString("1234567.5")),
			QuoteStatus: "Draft",
		},
		{
			QuoteID:     "2",
			QuoteCode:   strPtr("QT-002"),
			TotalAmount: domain.ParseAmount("bad"),
			IsApproved:  true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteQuotes(&buf, quotes))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Headings, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "QT-001", rows[1][1])
	assert.Equal(t, "05/03/2024", rows[1][2])
	assert.Equal(t, "Acme", rows[1][3])
	assert.Equal(t, "Draft", rows[1][9])

	raw, err := f.GetCellValue(SheetName, "I2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1234567.5", raw)

	styleID, err := f.GetCellStyle(SheetName, "I2")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.CustomNumFmt)
	assert.Equal(t, amountFormat, *style.CustomNumFmt)
	assert.Contains(t, *style.CustomNumFmt, `[>=100000]"₹"##\,##\,##0.00`)

	assert.Equal(t, "2", rows[2][0])
	assert.Equal(t, "-", rows[2][8])
	assert.Equal(t, "Yes", rows[2][10])
}

func TestWriteQuotes_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteQuotes(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
