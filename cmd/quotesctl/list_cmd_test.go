package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jsamuelsen/associate-quotes/internal/adapters/export"
	"github.com/jsamuelsen/associate-quotes/internal/domain"
	"github.com/jsamuelsen/associate-quotes/internal/mocks"
	"github.com/jsamuelsen/associate-quotes/internal/platform/config"
	"github.com/jsamuelsen/associate-quotes/internal/ports"
	"github.com/jsamuelsen/associate-quotes/internal/view"
)

func strPtr(s string) *string { return &s }

func testQuotes() []domain.Quote {
	return []domain.Quote{
		{
			QuoteID:     "q-1",
			QuoteCode:   strPtr("QT-001"),
			QuoteName:   strPtr("Annual Audit"),
			QuoteDate:   "2024-03-05",
			CompanyName: "Acme Pvt Ltd",
			TotalAmount: domain.NewAmount(decimal.NewFromInt(1234567)),
			QuoteStatus: "Draft",
		},
		{
			QuoteID:     "q-2",
			QuoteCode:   strPtr("QT-002"),
			QuoteName:   strPtr("GST Filing"),
			QuoteStatus: "Rejected",
		},
	}
}

// testCLI returns a cli backed by lister and the built-in config defaults.
func testCLI(lister ports.QuoteLister) *cli {
	return &cli{
		loadConfig: func(string) (*config.Config, error) {
			return &config.Config{
				App: config.AppConfig{Name: "associate-quotes", Version: "test", Environment: "test"},
				Log: config.LogConfig{Level: "error", Format: "pretty"},
			}, nil
		},
		newLister: func(*config.Config, *slog.Logger) (ports.QuoteLister, error) {
			return lister, nil
		},
	}
}

func runCLI(t *testing.T, c *cli, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd(c)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestList_Table(t *testing.T) {
	lister := mocks.NewMockQuoteLister(t)
	lister.EXPECT().ListLatestQuotes(mock.Anything, domain.LatestQuotesFilter{
		CompanyID:   strPtr("C-7"),
		AssociateID: strPtr("A-100"),
		IsAssociate: true,
	}).Return(&ports.LatestQuotes{Quotes: testQuotes(), HasData: true}, nil)

	out, _, err := runCLI(t, testCLI(lister), "list", "--company", "C-7", "--associate", "A-100")

	require.NoError(t, err)
	assert.Contains(t, out, "Quote ID")
	assert.Contains(t, out, "QT-001")
	assert.Contains(t, out, "₹12,34,567")
	assert.Contains(t, out, "05/03/2024")
	assert.Contains(t, out, "Showing 2 quotes")
	assert.NotContains(t, out, "Actions")
}

func TestList_TablePaged(t *testing.T) {
	lister := mocks.NewMockQuoteLister(t)
	lister.EXPECT().ListLatestQuotes(mock.Anything, mock.Anything).
		Return(&ports.LatestQuotes{Quotes: testQuotes(), HasData: true}, nil)

	out, _, err := runCLI(t, testCLI(lister), "list", "--associate", "A-100", "--page", "2", "--page-size", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "QT-002")
	assert.NotContains(t, out, "QT-001")
	assert.Contains(t, out, "Showing 2 quotes (page 2 of 2)")
}

func TestList_TableNoMatches(t *testing.T) {
	lister := mocks.NewMockQuoteLister(t)
	lister.EXPECT().ListLatestQuotes(mock.Anything, mock.Anything).
		Return(&ports.LatestQuotes{Quotes: testQuotes(), HasData: true}, nil)

	out, _, err := runCLI(t, testCLI(lister), "list", "-q", "zzz")

	require.NoError(t, err)
	assert.Contains(t, out, "No quotes found")
	assert.NotContains(t, out, "Showing")
}

func TestList_JSON(t *testing.T) {
	lister := mocks.NewMockQuoteLister(t)
	lister.EXPECT().ListLatestQuotes(mock.Anything, domain.LatestQuotesFilter{
		AssociateID: strPtr("A-100"),
		IsAssociate: true,
	}).Return(&ports.LatestQuotes{Quotes: testQuotes(), HasData: true}, nil)

	out, _, err := runCLI(t, testCLI(lister), "list", "--associate", "A-100", "--query", "gst", "-o", "json")

	require.NoError(t, err)

	var table view.Table
	require.NoError(t, json.Unmarshal([]byte(out), &table))
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "QT-002", table.Rows[0].QuoteCode)
	assert.Equal(t, view.ToneRejected, table.Rows[0].Status.Tone)
	assert.Equal(t, "gst", table.Query)
}

func TestList_XLSX(t *testing.T) {
	lister := mocks.NewMockQuoteLister(t)
	lister.EXPECT().ListLatestQuotes(mock.Anything, mock.Anything).
		Return(&ports.LatestQuotes{Quotes: testQuotes(), HasData: true}, nil)

	path := filepath.Join(t.TempDir(), "out.xlsx")

	_, _, err := runCLI(t, testCLI(lister), "list", "-o", "xlsx", "--file", path, "-q", "audit")
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "QT-001", rows[1][1])
}

func TestList_XLSXToStdout(t *testing.T) {
	lister := mocks.NewMockQuoteLister(t)
	lister.EXPECT().ListLatestQuotes(mock.Anything, mock.Anything).
		Return(&ports.LatestQuotes{Quotes: testQuotes(), HasData: true}, nil)

	out, _, err := runCLI(t, testCLI(lister), "list", "-o", "xlsx", "--file", "-")

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix([]byte(out), []byte("PK")), "xlsx is a zip archive")
}

func TestList_LoadFailed(t *testing.T) {
	lister := mocks.NewMockQuoteLister(t)
	lister.EXPECT().ListLatestQuotes(mock.Anything, mock.Anything).
		Return(nil, domain.NewUnavailableError("quotes-service", "connection refused"))

	out, stderr, err := runCLI(t, testCLI(lister), "list")

	require.ErrorIs(t, err, errLoadFailed)
	assert.Empty(t, out)
	assert.Contains(t, stderr, view.ErrorMessage)
}

func TestList_InvalidOutput(t *testing.T) {
	_, _, err := runCLI(t, testCLI(mocks.NewMockQuoteLister(t)), "list", "-o", "csv")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --output")
}

func TestList_ConfigError(t *testing.T) {
	c := testCLI(mocks.NewMockQuoteLister(t))
	c.loadConfig = func(string) (*config.Config, error) {
		return nil, errors.New("invalid config: session.profile_secret is required")
	}

	_, _, err := runCLI(t, c, "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile_secret")
}

func TestList_ProfileFlag(t *testing.T) {
	var got string

	c := testCLI(mocks.NewMockQuoteLister(t))
	c.loadConfig = func(profile string) (*config.Config, error) {
		got = profile
		return nil, os.ErrNotExist
	}

	_, _, err := runCLI(t, c, "list", "--profile", "qa")

	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, "qa", got)
}
