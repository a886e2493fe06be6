package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sells-group/reconcile-cli/internal/reconcile"
)

const (
	testLogCSV    = "ConfirmedBy,ConfirmedAtJST\nalice,2026-01-15 09:00\nalice,2026-01-16 09:00\nbob,1/16/2026\n"
	testReportCSV = "reviewer,date,reported_count\nalice,15+16/1/2026,2\nbob,16/1/2026,3\n"
)

func writeInputs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "log.csv")
	reportPath := filepath.Join(dir, "report.csv")
	require.NoError(t, os.WriteFile(logPath, []byte(testLogCSV), 0o644))
	require.NoError(t, os.WriteFile(reportPath, []byte(testReportCSV), 0o644))
	return logPath, reportPath
}

// runReconcile executes the reconcile command with the given flag values
// and returns its stdout.
func runReconcile(t *testing.T, setup func()) (string, error) {
	t.Helper()
	cfg = testConfig()

	reconcileLog, reconcileReport = "", ""
	reconcileFormat, reconcileOutput = "", ""
	reconcileReportDates, reconcileConfirmDates = nil, nil
	reconcileMismatchOnly = false
	setup()

	var out bytes.Buffer
	reconcileCmd.SetOut(&out)
	reconcileCmd.SetContext(context.Background())
	defer reconcileCmd.SetOut(nil)
	defer reconcileCmd.SetContext(context.TODO())

	err := reconcileCmd.RunE(reconcileCmd, nil)
	return out.String(), err
}

func TestReconcileCmd_Table(t *testing.T) {
	logPath, reportPath := writeInputs(t)

	out, err := runReconcile(t, func() {
		reconcileLog, reconcileReport = logPath, reportPath
	})
	require.NoError(t, err)
	assert.Contains(t, out, "USER")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "MISMATCH")
	assert.Contains(t, out, "2 rows: 1 OK, 1 MISMATCH")
}

func TestReconcileCmd_JSONWithFilters(t *testing.T) {
	logPath, reportPath := writeInputs(t)

	out, err := runReconcile(t, func() {
		reconcileLog, reconcileReport = logPath, reportPath
		reconcileFormat = "json"
		reconcileMismatchOnly = true
		reconcileConfirmDates = []string{"2026-01-16"}
	})
	require.NoError(t, err)

	var report reconcile.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "bob", report.Rows[0].Reviewer)
	assert.Equal(t, 1, report.Rows[0].Actual)
	assert.Equal(t, 3, report.Rows[0].Reported)
}

func TestReconcileCmd_RemoteSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testReportCSV))
	}))
	defer srv.Close()

	logPath, _ := writeInputs(t)
	out, err := runReconcile(t, func() {
		reconcileLog = logPath
		reconcileReport = srv.URL + "/exports/report.csv?token=x"
		reconcileFormat = "csv"
	})
	require.NoError(t, err)
	assert.Contains(t, out, "bob,16/1/2026,2026-01-16,1,3,-2,MISMATCH")
}

func TestReconcileCmd_XLSXOutput(t *testing.T) {
	logPath, reportPath := writeInputs(t)
	outPath := filepath.Join(t.TempDir(), "summary.xlsx")

	_, err := runReconcile(t, func() {
		reconcileLog, reconcileReport = logPath, reportPath
		reconcileFormat = "xlsx"
		reconcileOutput = outPath
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck
	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestReconcileCmd_XLSXNeedsOutput(t *testing.T) {
	logPath, reportPath := writeInputs(t)

	_, err := runReconcile(t, func() {
		reconcileLog, reconcileReport = logPath, reportPath
		reconcileFormat = "xlsx"
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires --output")
}

func TestReconcileCmd_FormatFromConfig(t *testing.T) {
	logPath, reportPath := writeInputs(t)

	out, err := runReconcile(t, func() {
		reconcileLog, reconcileReport = logPath, reportPath
		cfg.Output.Format = "yaml"
	})
	require.NoError(t, err)
	assert.Contains(t, out, "totals:")
}

func TestReconcileCmd_BadFormat(t *testing.T) {
	_, err := runReconcile(t, func() {
		reconcileFormat = "xml"
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestReconcileCmd_MissingInput(t *testing.T) {
	_, reportPath := writeInputs(t)

	_, err := runReconcile(t, func() {
		reconcileLog = filepath.Join(t.TempDir(), "missing.csv")
		reconcileReport = reportPath
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load inputs")
}

func TestReconcileCmd_InvalidConfig(t *testing.T) {
	_, err := runReconcile(t, func() {
		cfg.Fetch.MaxRetries = 0
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch.max_retries")
}
