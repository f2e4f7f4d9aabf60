package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/associate-quotes/internal/adapters/export"
	"github.com/jsamuelsen/associate-quotes/internal/adapters/identity"
	"github.com/jsamuelsen/associate-quotes/internal/app"
	"github.com/jsamuelsen/associate-quotes/internal/domain"
	"github.com/jsamuelsen/associate-quotes/internal/view"
)

// Output formats for list.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputXLSX  = "xlsx"
)

// errLoadFailed is returned after the error state has been reported.
var errLoadFailed = errors.New(view.ErrorMessage)

type listOptions struct {
	query     string
	company   string
	associate string
	output    string
	file      string
	page      int
	pageSize  int
}

func newListCmd(c *cli, profile *string) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the latest quotes for an associate",
		Example: `  quotesctl list --company C-7 --associate A-100
  quotesctl list --associate A-100 --query audit --output json
  quotesctl list --associate A-100 --output xlsx --file quotes.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.output {
			case outputTable, outputJSON, outputXLSX:
			default:
				return fmt.Errorf("invalid --output %q: want table, json or xlsx", opts.output)
			}

			cfg, err := c.loadConfig(*profile)
			if err != nil {
				return err
			}

			logger := newLogger(cfg, cmd.ErrOrStderr())

			lister, err := c.newLister(cfg, logger)
			if err != nil {
				return err
			}

			service := app.NewQuoteService(app.QuoteServiceConfig{Lister: lister, Logger: logger})
			state := service.LatestQuotes(cmd.Context(), identity.Static(opts.company, opts.associate))

			if state.Failed {
				return errLoadFailed
			}

			switch opts.output {
			case outputJSON:
				return writeJSON(cmd.OutOrStdout(), renderList(state, &opts))
			case outputXLSX:
				return writeXLSX(cmd.OutOrStdout(), opts.file, view.Filter(state.Quotes, opts.query))
			default:
				return writeTable(cmd.OutOrStdout(), renderList(state, &opts))
			}
		},
	}

	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "Search text matched against quote code and name")
	cmd.Flags().StringVar(&opts.company, "company", "", "Company ID to scope the list")
	cmd.Flags().StringVar(&opts.associate, "associate", "", "Associate ID to scope the list")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTable, "Output format: table, json or xlsx")
	cmd.Flags().StringVar(&opts.file, "file", "quotes.xlsx", "Destination for xlsx output; - writes to stdout")
	cmd.Flags().IntVar(&opts.page, "page", 1, "Page to show")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "Rows per page; 0 shows all")

	return cmd
}

func renderList(state app.BoardState, opts *listOptions) view.Table {
	return view.Render(view.State{
		Quotes:  state.Quotes,
		Loading: state.Loading,
		Failed:  state.Failed,
	}, view.Options{
		Query:    opts.query,
		Page:     opts.page,
		PageSize: max(opts.pageSize, 0),
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// writeTable prints the rows without the Actions column, then the footer.
func writeTable(w io.Writer, t view.Table) error {
	rows := make([][]string, 0, len(t.Rows))
	for i := range t.Rows {
		r := &t.Rows[i]
		rows = append(rows, []string{
			strconv.Itoa(r.Number),
			r.QuoteCode,
			r.QuoteDate,
			r.CompanyName.Text,
			r.PrimaryCustomer.Text,
			r.Origin,
			r.ServiceType,
			r.QuoteCreator,
			r.Amount,
			r.Status.Label,
			r.Approved,
			r.Ageing,
			r.CreatedBy,
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(export.Headings...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})

	if _, err := fmt.Fprintln(w, tbl.Render()); err != nil {
		return err
	}

	if t.Footer == nil {
		_, err := fmt.Fprintln(w, "No quotes found")
		return err
	}

	line := t.Footer.Label
	if p := t.Footer.Pager; p != nil {
		line += fmt.Sprintf(" (page %d of %d)", p.Page, p.Pages)
	}

	_, err := fmt.Fprintln(w, line)

	return err
}

// writeXLSX writes the workbook to path, or to stdout when path is "-".
func writeXLSX(stdout io.Writer, path string, quotes []domain.Quote) (err error) {
	if path == "-" {
		return export.WriteQuotes(stdout, quotes)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	return export.WriteQuotes(f, quotes)
}
