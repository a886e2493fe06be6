// Package export renders reconciliation reports as tables, JSON, YAML,
// CSV or XLSX workbooks.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/reconcile-cli/internal/model"
	"github.com/sells-group/reconcile-cli/internal/reconcile"
)

// Format is an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
)

// Formats lists every supported format.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatXLSX}

// ParseFormat validates s case-insensitively. An empty string is the table
// format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatTable, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", eris.Errorf("export: unknown format %q", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Binary reports whether the format should not be written to a terminal.
func (f Format) Binary() bool {
	return f == FormatXLSX
}

// columns are shared by the table, CSV and XLSX renderings.
var columns = []string{"USER", "DATE", "CONFIRM_DATES", "ACTUAL", "REPORTED", "DIFF", "STATUS"}

// Write renders r to w. JSON and YAML carry the whole report; the other
// formats carry the summary rows.
func Write(w io.Writer, f Format, r *reconcile.Report) error {
	if r == nil {
		return eris.New("export: nil report")
	}

	switch f {
	case FormatTable, "":
		return writeTable(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return eris.Wrap(err, "export: encode json")
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return eris.Wrap(err, "export: encode yaml")
		}
		if err := enc.Close(); err != nil {
			return eris.Wrap(err, "export: close yaml encoder")
		}
		return nil
	case FormatCSV:
		return writeCSV(w, r.Rows)
	case FormatXLSX:
		return WriteXLSX(w, r.Rows)
	default:
		return eris.Errorf("export: unknown format %q", f)
	}
}

func writeTable(out io.Writer, r *reconcile.Report) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(columns, "\t"))
	_, _ = fmt.Fprintln(w, "----\t----\t-------------\t------\t--------\t----\t------")

	for _, row := range r.Rows {
		_, _ = fmt.Fprintln(w, strings.Join(rowCells(row), "\t"))
	}
	if err := w.Flush(); err != nil {
		return eris.Wrap(err, "export: flush table")
	}

	if _, err := fmt.Fprintf(out, "\n%d rows: %d OK, %d MISMATCH (log rows %d, report rows %d)\n",
		r.Totals.SummaryRows, r.Totals.OK, r.Totals.Mismatch, r.Totals.LogRows, r.Totals.ReportRows); err != nil {
		return eris.Wrap(err, "export: write totals")
	}
	return nil
}

func writeCSV(out io.Writer, rows []model.SummaryRow) error {
	w := csv.NewWriter(out)
	if err := w.Write(columns); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, row := range rows {
		if err := w.Write(rowCells(row)); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return nil
}

// rowCells formats a summary row; confirm dates are joined with a space.
func rowCells(row model.SummaryRow) []string {
	return []string{
		row.Reviewer,
		row.Date,
		strings.Join(row.ConfirmDates, " "),
		strconv.Itoa(row.Actual),
		strconv.Itoa(row.Reported),
		strconv.Itoa(row.Diff),
		string(row.Status),
	}
}
