// Package sheet turns uploaded CSV and XLSX files into header-keyed records.
package sheet

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/reconcile-cli/internal/fetcher"
	"github.com/sells-group/reconcile-cli/internal/model"
)

// DefaultHeaderKeywords locate the header row of an XLSX sheet when no
// keywords are configured.
var DefaultHeaderKeywords = []string{"user", "review", "ユーザー", "名前"}

// Options configures parsing.
type Options struct {
	// HeaderKeywords are matched case-insensitively against XLSX cells; the
	// first row containing any of them is the header.
	HeaderKeywords []string
}

func (o Options) keywords() []string {
	if len(o.HeaderKeywords) == 0 {
		return DefaultHeaderKeywords
	}
	return o.HeaderKeywords
}

// Parse reads r as the file called name. The extension picks the format.
func Parse(ctx context.Context, name string, r io.Reader, opts Options) ([]model.Record, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))

	var (
		records []model.Record
		err     error
	)
	switch ext {
	case "csv":
		records, err = parseCSV(ctx, r)
	case "xlsx":
		records, err = parseXLSX(r, opts)
	default:
		return nil, eris.Errorf("sheet: unsupported file type %q", ext)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sheet: parse %s", name)
	}

	zap.L().Debug("sheet: parsed",
		zap.String("name", name),
		zap.Int("records", len(records)),
	)
	return records, nil
}

// parseCSV treats the first row as the header. Fields past the header are
// dropped and missing trailing fields are left out of the record.
func parseCSV(ctx context.Context, r io.Reader) ([]model.Record, error) {
	rows, err := fetcher.ReadCSV(ctx, r, fetcher.CSVOptions{})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []model.Record{}, nil
	}

	header := trimHeader(rows[0])
	records := make([]model.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(model.Record, len(header))
		for i, key := range header {
			if key == "" || i >= len(row) {
				continue
			}
			rec[key] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseXLSX reads the first sheet. Rows above the header row are ignored,
// blank rows are skipped and short rows are padded with "".
func parseXLSX(r io.Reader, opts Options) ([]model.Record, error) {
	rows, err := fetcher.ReadXLSX(r, fetcher.XLSXOptions{})
	if err != nil {
		return nil, err
	}
	if allBlank(rows) {
		return nil, eris.New("empty sheet")
	}

	hdr := findHeaderRow(rows, opts.keywords())
	if hdr < 0 {
		return nil, eris.New("header row not found")
	}

	header := trimHeader(rows[hdr])
	records := make([]model.Record, 0, len(rows)-hdr-1)
	for _, row := range rows[hdr+1:] {
		if isBlank(row) {
			continue
		}
		rec := make(model.Record, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			v := ""
			if i < len(row) {
				v = row[i]
			}
			rec[key] = v
		}
		records = append(records, rec)
	}
	return records, nil
}

func findHeaderRow(rows [][]string, keywords []string) int {
	lower := make([]string, len(keywords))
	for i, k := range keywords {
		lower[i] = strings.ToLower(k)
	}
	for i, row := range rows {
		for _, cell := range row {
			c := strings.ToLower(cell)
			for _, k := range lower {
				if k != "" && strings.Contains(c, k) {
					return i
				}
			}
		}
	}
	return -1
}

func trimHeader(row []string) []string {
	out := make([]string, len(row))
	for i, h := range row {
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func allBlank(rows [][]string) bool {
	for _, row := range rows {
		if !isBlank(row) {
			return false
		}
	}
	return true
}

func isBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
