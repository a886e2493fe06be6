package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/reconcile-cli/internal/export"
	"github.com/sells-group/reconcile-cli/internal/fetcher"
	"github.com/sells-group/reconcile-cli/internal/reconcile"
	"github.com/sells-group/reconcile-cli/internal/sheet"
)

var (
	reconcileLog          string
	reconcileReport       string
	reconcileFormat       string
	reconcileOutput       string
	reconcileReportDates  []string
	reconcileConfirmDates []string
	reconcileMismatchOnly bool
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare a reviewer report against the activity log",
	Long: `Loads the activity log and the reviewer report, then prints one summary
row per report line with the actual count, the reported count and a status.

Sources may be local paths or http(s):// and ftp:// URLs.`,
	Example: `  reconcile-cli reconcile --log log.xlsx --report report.csv
  reconcile-cli reconcile --log https://example.com/log.csv --report report.xlsx --mismatch-only
  reconcile-cli reconcile --log log.csv --report report.csv --format xlsx --output summary.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("reconcile"); err != nil {
			return err
		}

		formatName := reconcileFormat
		if formatName == "" {
			formatName = cfg.Output.Format
		}
		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}
		if format.Binary() && reconcileOutput == "" {
			return eris.Errorf("%s output requires --output", format)
		}

		opener := fetcher.NewOpener(fetcher.Options{
			UserAgent:  cfg.Fetch.UserAgent,
			Timeout:    time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			MaxRetries: cfg.Fetch.MaxRetries,
			RatePerSec: cfg.Fetch.RatePerSec,
		})

		pair, err := sheet.LoadPair(ctx,
			openerSource(opener, reconcileLog),
			openerSource(opener, reconcileReport),
			sheet.Options{HeaderKeywords: cfg.Ingest.HeaderKeywords},
		)
		if err != nil {
			return eris.Wrap(err, "reconcile: load inputs")
		}

		report := reconcile.Build(pair.Logs, pair.Reports, reconcile.Filter{
			ReportDates:  reconcileReportDates,
			ConfirmDates: reconcileConfirmDates,
			MismatchOnly: reconcileMismatchOnly,
		})

		if err := writeReport(cmd.OutOrStdout(), reconcileOutput, format, report); err != nil {
			return err
		}

		zap.L().Info("reconcile complete",
			zap.String("report_id", report.ID),
			zap.Int("log_rows", report.Totals.LogRows),
			zap.Int("report_rows", report.Totals.ReportRows),
			zap.Int("rows", report.Totals.SummaryRows),
			zap.Int("mismatch", report.Totals.Mismatch),
			zap.String("format", string(format)),
		)
		return nil
	},
}

func openerSource(o *fetcher.Opener, src string) sheet.Source {
	return sheet.Source{
		Name: fetcher.SourceName(src),
		Open: func(ctx context.Context) (io.ReadCloser, error) {
			return o.Open(ctx, src)
		},
	}
}

// writeReport renders report to path, or to out when path is empty.
func writeReport(out io.Writer, path string, format export.Format, report *reconcile.Report) error {
	if path == "" {
		return export.Write(out, format, report)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "reconcile: create output")
	}
	if err := export.Write(f, format, report); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return eris.Wrap(err, "reconcile: close output")
	}
	zap.L().Info("report written", zap.String("path", path))
	return nil
}

func init() {
	f := reconcileCmd.Flags()
	f.StringVar(&reconcileLog, "log", "", "activity log source: path or http(s)/ftp URL (required)")
	f.StringVar(&reconcileReport, "report", "", "reviewer report source: path or http(s)/ftp URL (required)")
	f.StringVar(&reconcileFormat, "format", "", "output format: table, json, yaml, csv or xlsx (default from config)")
	f.StringVarP(&reconcileOutput, "output", "o", "", "write to this file instead of stdout")
	f.StringArrayVar(&reconcileReportDates, "report-date", nil, "keep rows with this report date as entered (repeatable)")
	f.StringArrayVar(&reconcileConfirmDates, "confirm-date", nil, "keep rows whose confirm dates include this YYYY-MM-DD date (repeatable)")
	f.BoolVar(&reconcileMismatchOnly, "mismatch-only", false, "keep only MISMATCH rows")
	_ = reconcileCmd.MarkFlagRequired("log")
	_ = reconcileCmd.MarkFlagRequired("report")
	rootCmd.AddCommand(reconcileCmd)
}
